// Package identity models who is acting: a closed Role enumeration and the
// request-scoped Actor built from the external profile store.
package identity
