package errs

import "errors"

// Kind classifies an error for callers that react differently per class
// (retry, block, re-authenticate).
type Kind string

const (
	KindValidation    Kind = "validation"
	KindAuthorization Kind = "authorization"
	KindConflict      Kind = "conflict"
	KindNotFound      Kind = "not_found"
	KindExternal      Kind = "external"
	KindInternal      Kind = "internal"
)

// KindOf walks the error chain. When several kinds match (errors.Join),
// authorization wins over conflict, conflict over not found, and so on down.
// A corrupt stored record is always internal.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrCorruptRecord):
		return KindInternal
	case errors.Is(err, ErrNotAuthorized):
		return KindAuthorization
	case errors.Is(err, ErrStateConflict):
		return KindConflict
	case errors.Is(err, ErrObjectNotFound):
		return KindNotFound
	case errors.Is(err, ErrExternalDependency):
		return KindExternal
	case errors.Is(err, ErrValueIsRequired),
		errors.Is(err, ErrValueIsInvalid),
		errors.Is(err, ErrValueIsOutOfRange):
		return KindValidation
	default:
		return KindInternal
	}
}
