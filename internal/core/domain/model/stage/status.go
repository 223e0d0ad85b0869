package stage

import (
	"fmt"
	"strings"

	"production/internal/pkg/errs"
)

// Status is the state of a single stage record.
//
// State transitions:
//
//	Pending ──Start──> InProgress ──Approve──> Approved
//
// There are no reverse transitions and no skipping.
type Status int

const (
	// StatusUnknown catches uninitialised values.
	StatusUnknown Status = iota
	Pending
	InProgress
	Approved
)

func getStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:    "pending",
		InProgress: "in_progress",
		Approved:   "approved",
	}
}

// ParseStatus converts a stored or submitted status string.
func ParseStatus(s string) (Status, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for st, str := range getStatusStrings() {
		if str == key {
			return st, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("stage status", fmt.Errorf("%q is not a valid status", s))
}

func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("stage status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Start moves a pending record into work.
//
// Returns:
//   - (InProgress, nil) from Pending
//   - (StatusUnknown, StateConflictError) from any other status
func (s Status) Start() (Status, error) {
	if s != Pending {
		return StatusUnknown, errs.NewStateConflictError(
			"stage record", fmt.Sprintf("cannot start from status %s", s))
	}
	return InProgress, nil
}

// Approve closes a record that is in work. Approving a pending or already
// approved record is a conflict, never a silent no-op.
func (s Status) Approve() (Status, error) {
	if s != InProgress {
		return StatusUnknown, errs.NewStateConflictError(
			"stage record", fmt.Sprintf("is not currently approvable (status %s)", s))
	}
	return Approved, nil
}
