// Package api holds the OpenAPI contract served by the HTTP adapter.
package api

import _ "embed"

// Spec is openapi.yaml as shipped with the binary.
//
//go:embed openapi.yaml
var Spec []byte
