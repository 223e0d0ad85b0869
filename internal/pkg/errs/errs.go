package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrObjectNotFound     = errors.New("object not found")
	ErrValueIsInvalid     = errors.New("value is invalid")
	ErrValueIsOutOfRange  = errors.New("value is out of range")
	ErrValueIsRequired    = errors.New("value is required")
	ErrNotAuthorized      = errors.New("not authorized")
	ErrStateConflict      = errors.New("state conflict")
	ErrExternalDependency = errors.New("external dependency failed")
	ErrCorruptRecord      = errors.New("stored record is corrupt")
)

func sanitize(input string) string {
	return strings.ReplaceAll(input, "\n", " ")
}

func withCause(msg string, cause error) string {
	if cause == nil {
		return msg
	}
	return fmt.Sprintf("%s (cause: %v)", msg, cause)
}

// ObjectNotFoundError reports a missing aggregate or row.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %v)",
			ErrObjectNotFound, e.ParamName, sanitize(fmt.Sprintf("%v", e.ID)), e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError reports a value that failed a domain rule.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName), e.Cause)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError reports a value outside [Min, Max].
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, min, max any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: min, Max: max}
}

func NewValueIsOutOfRangeErrorWithCause(paramName string, value, min, max any, cause error) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: min, Max: max, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %v is %s, min value is %v, max value is %v",
		ErrValueIsInvalid, sanitize(fmt.Sprintf("%v", e.Value)), e.ParamName, e.Min, e.Max)
	return withCause(msg, e.Cause)
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ValueIsRequiredError reports a missing mandatory value.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName), e.Cause)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// AuthorizationError reports that an actor may not perform Action.
// It is never recovered locally; callers must re-authenticate or give up.
type AuthorizationError struct {
	Action string
	Reason string
	Cause  error
}

func NewAuthorizationError(action, reason string) *AuthorizationError {
	return &AuthorizationError{Action: action, Reason: reason}
}

func NewAuthorizationErrorWithCause(action, reason string, cause error) *AuthorizationError {
	return &AuthorizationError{Action: action, Reason: reason, Cause: cause}
}

func (e *AuthorizationError) Error() string {
	msg := fmt.Sprintf("%s: %s", ErrNotAuthorized, e.Action)
	if e.Reason != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Reason)
	}
	return withCause(msg, e.Cause)
}

func (e *AuthorizationError) Unwrap() error {
	return ErrNotAuthorized
}

// StateConflictError reports that the aggregate is not in the state the
// operation expects. It is safe to retry after re-reading.
type StateConflictError struct {
	Subject string
	Reason  string
	Cause   error
}

func NewStateConflictError(subject, reason string) *StateConflictError {
	return &StateConflictError{Subject: subject, Reason: reason}
}

func NewStateConflictErrorWithCause(subject, reason string, cause error) *StateConflictError {
	return &StateConflictError{Subject: subject, Reason: reason, Cause: cause}
}

func (e *StateConflictError) Error() string {
	return withCause(fmt.Sprintf("%s: %s %s", ErrStateConflict, e.Subject, e.Reason), e.Cause)
}

func (e *StateConflictError) Unwrap() error {
	return ErrStateConflict
}

// ExternalDependencyError reports a failed or timed out call to a
// collaborator outside the service (identity store, object store, broker).
type ExternalDependencyError struct {
	Dependency string
	Cause      error
}

func NewExternalDependencyError(dependency string, cause error) *ExternalDependencyError {
	return &ExternalDependencyError{Dependency: dependency, Cause: cause}
}

func (e *ExternalDependencyError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrExternalDependency, e.Dependency), e.Cause)
}

func (e *ExternalDependencyError) Unwrap() error {
	return ErrExternalDependency
}

// CorruptRecordError reports a stored row that no longer satisfies the
// domain rules. It is a server-side fault, never the caller's.
type CorruptRecordError struct {
	Subject string
	ID      any
	Cause   error
}

func NewCorruptRecordError(subject string, id any, cause error) *CorruptRecordError {
	return &CorruptRecordError{Subject: subject, ID: id, Cause: cause}
}

func (e *CorruptRecordError) Error() string {
	return withCause(fmt.Sprintf("%s: %s %s", ErrCorruptRecord, e.Subject, sanitize(fmt.Sprintf("%v", e.ID))), e.Cause)
}

func (e *CorruptRecordError) Unwrap() error {
	return ErrCorruptRecord
}
