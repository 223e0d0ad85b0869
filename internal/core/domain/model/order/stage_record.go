package order

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/stage"
	"production/internal/pkg/errs"
)

// QualityAuditNote is written to the quality review record when it is approved.
const QualityAuditNote = "QC: reviewed and approved"

const maxNotesLength = 4000

// StageRecordState is the stored form of a stage record, used to restore it.
// Zero UUIDs and nil times mean "not set".
type StageRecordState struct {
	Stage           stage.Stage
	Status          stage.Status
	StartedAt       *time.Time
	ApprovedAt      *time.Time
	ApprovedBy      kernel.UUID
	EvidenceRef     string
	EvidenceHistory []string
	Notes           string
	AssignedUser    kernel.UUID
	AssignedBy      kernel.UUID
	AssignedAt      *time.Time
}

// StageRecord tracks one stage of one order. It is owned by Order and changed
// only through Order's methods.
type StageRecord struct {
	state StageRecordState
}

func newPendingStageRecord(s stage.Stage) *StageRecord {
	return &StageRecord{state: StageRecordState{Stage: s, Status: stage.Pending}}
}

func restoreStageRecord(st StageRecordState) (*StageRecord, error) {
	if err := errors.Join(st.Stage.Validate(), st.Status.Validate()); err != nil {
		return nil, err
	}
	if st.Status != stage.Pending && st.StartedAt == nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("stage record",
			fmt.Errorf("%s is %s without a start time", st.Stage, st.Status))
	}
	if st.Status == stage.Approved && st.ApprovedAt == nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("stage record",
			fmt.Errorf("%s is approved without an approval time", st.Stage))
	}
	st.EvidenceHistory = slices.Clone(st.EvidenceHistory)
	return &StageRecord{state: st}, nil
}

// State returns a copy of the record's fields.
func (r *StageRecord) State() StageRecordState {
	cp := r.state
	cp.EvidenceHistory = slices.Clone(r.state.EvidenceHistory)
	return cp
}

func (r *StageRecord) Stage() stage.Stage {
	return r.state.Stage
}

func (r *StageRecord) Status() stage.Status {
	return r.state.Status
}

func (r *StageRecord) EvidenceRef() string {
	return r.state.EvidenceRef
}

func (r *StageRecord) Notes() string {
	return r.state.Notes
}

// AssignedUser returns the assignee, or false when nobody is assigned.
func (r *StageRecord) AssignedUser() (kernel.UUID, bool) {
	return r.state.AssignedUser, !r.state.AssignedUser.IsZero()
}

// IsAssignedTo reports whether userID is the current assignee.
func (r *StageRecord) IsAssignedTo(userID kernel.UUID) bool {
	return !r.state.AssignedUser.IsZero() && r.state.AssignedUser.IsEqual(userID)
}

func (r *StageRecord) start(now time.Time) error {
	next, err := r.state.Status.Start()
	if err != nil {
		return err
	}
	r.state.Status = next
	r.state.StartedAt = &now
	return nil
}

func (r *StageRecord) approve(by kernel.UUID, now time.Time) error {
	next, err := r.state.Status.Approve()
	if err != nil {
		return errs.NewStateConflictErrorWithCause(
			"stage "+r.state.Stage.String(), "is not currently approvable", err)
	}
	r.state.Status = next
	r.state.ApprovedAt = &now
	r.state.ApprovedBy = by
	return nil
}

func (r *StageRecord) attachEvidence(ref string) {
	r.state.EvidenceRef = ref
	r.state.EvidenceHistory = append(r.state.EvidenceHistory, ref)
}

func (r *StageRecord) setNotes(notes string) error {
	if len(notes) > maxNotesLength {
		return errs.NewValueIsOutOfRangeError("notes length", len(notes), 0, maxNotesLength)
	}
	r.state.Notes = notes
	return nil
}

func (r *StageRecord) assign(user, by kernel.UUID, now time.Time) {
	r.state.AssignedUser = user
	r.state.AssignedBy = by
	r.state.AssignedAt = &now
}
