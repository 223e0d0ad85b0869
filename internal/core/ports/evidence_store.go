package ports

import (
	"context"
	"io"
)

// EvidenceStore uploads evidence files to the external object store. The
// returned reference is opaque to the core and stored as is.
type EvidenceStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader) (ref string, err error)
}
