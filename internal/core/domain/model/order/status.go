package order

import (
	"fmt"

	"production/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Active ──(terminal stage approved)──> Completed
//
// Completed is final.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Active orders have exactly one stage record in progress.
	Active

	// Completed orders have every stage record approved.
	Completed
)

func getStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Active:    "active",
		Completed: "completed",
	}
}

// ParseStatus converts a stored status string.
func ParseStatus(s string) (Status, error) {
	for st, str := range getStatusStrings() {
		if str == s {
			return st, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
//
// Valid statuses are: Active, Completed.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the stored name: "active", "completed", or "unknown" for
// invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// ValidateMutable rejects workflow changes on a finished order.
func (s Status) ValidateMutable() error {
	if s != Active {
		return errs.NewStateConflictError("order", fmt.Sprintf("is %s and can no longer change", s))
	}
	return nil
}

// Complete transitions the status to Completed.
//
// Returns:
//   - (Completed, nil) from Active
//   - (Unknown, StateConflictError) otherwise
func (s Status) Complete() (Status, error) {
	if s != Active {
		return Unknown, errs.NewStateConflictError("order", fmt.Sprintf("cannot complete from status %s", s))
	}
	return Completed, nil
}
