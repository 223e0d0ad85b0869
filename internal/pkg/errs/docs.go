// Package errs provides the error types shared by the production workflow service.
//
// Every type follows the same pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() for formatting and Unwrap() returning the sentinel
//
// Validation failures use ValueIsRequiredError, ValueIsInvalidError and
// ValueIsOutOfRangeError. Missing rows use ObjectNotFoundError. Workflow
// failures use AuthorizationError (role or assignment check failed),
// StateConflictError (stage not current, already approved, or a concurrent
// transition won) and ExternalDependencyError (identity lookup, object store
// or broker failure).
//
// KindOf maps any of them, wrapped or joined, to a Kind that the HTTP layer
// turns into a status code.
package errs
