package order

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/stage"
	"production/internal/pkg/errs"
)

const maxClientNameLength = 200

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")
)

// Details are the header fields a supervisor fills in when placing an order.
type Details struct {
	ClientName   string
	SalesChannel SalesChannel
	DueDate      *time.Time
}

// State is the stored form of an order, used by repositories to restore it.
type State struct {
	ID           kernel.UUID
	Code         Code
	ClientName   string
	SalesChannel SalesChannel
	Type         Type
	Quantity     int
	DueDate      *time.Time
	CreatedBy    kernel.UUID
	CreatedAt    time.Time
	Status       Status
	CurrentStage stage.Stage
	LineItems    []LineItem
	Stages       []StageRecordState
	Version      int
}

// Order is the aggregate root of a manufacturing order. It owns its line items
// and exactly one stage record per catalog stage.
//
// Order follows these invariants:
//   - At least one line item; quantity is the sum of their units
//   - Stage records are kept in catalog order, one per stage
//   - While Active, exactly one record is in_progress and it is the current stage;
//     every earlier record is approved and every later one pending
//   - When Completed, every record is approved and the current stage is dispatch
//   - Record statuses only move forward
//
// Every mutating method re-checks these rules against the loaded state, so a
// caller that raced with another transition gets a StateConflictError rather
// than a corrupted order.
type Order struct {
	id           kernel.UUID
	code         Code
	clientName   string
	salesChannel SalesChannel
	orderType    Type
	quantity     int
	dueDate      *time.Time
	createdBy    kernel.UUID
	createdAt    time.Time
	status       Status
	currentStage stage.Stage
	lineItems    []LineItem
	stages       []*StageRecord
	version      int
	events       []kernel.DomainEvent

	isConstructed bool
}

// NewOrder places an order. The first stage starts immediately; the other five
// records are created pending.
//
// Parameters:
//   - id: identifier of the new order
//   - code: generated or custom human readable code
//   - details: client, sales channel and optional due date
//   - items: one or more product snapshots
//   - createdBy: the acting user
//   - now: creation time, also the start time of the first stage
//
// Returns a ValueIsRequiredError when items is empty or when the channel
// demands a due date that was not given. All field errors are joined.
func NewOrder(id kernel.UUID, code Code, details Details, items []LineItem, createdBy kernel.UUID, now time.Time) (*Order, error) {
	o := &Order{
		status:        Active,
		currentStage:  stage.First(),
		createdAt:     now,
		version:       1,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCode(code),
		o.setClientName(details.ClientName),
		o.setSalesChannel(details.SalesChannel),
		o.setLineItems(items),
		o.setCreatedBy(createdBy),
	); err != nil {
		return nil, err
	}
	if err := o.setDueDate(details.DueDate); err != nil {
		return nil, err
	}

	o.stages = make([]*StageRecord, 0, len(stage.All()))
	for _, s := range stage.All() {
		o.stages = append(o.stages, newPendingStageRecord(s))
	}
	if err := o.stages[0].start(now); err != nil {
		return nil, err
	}

	o.record(CreatedEvent{
		eventMeta: newEventMeta(EventCreated, o.id, now),
		Code:      o.code.String(),
		Client:    o.clientName,
		Quantity:  o.quantity,
		Type:      o.orderType.String(),
		CreatedBy: createdBy.String(),
	})
	return o, nil
}

// RestoreOrder rebuilds an order from storage and verifies the stage invariants.
// A row set that violates them is reported as a ValueIsInvalidError instead of
// being loaded half-consistent.
func RestoreOrder(st State) (*Order, error) {
	o := &Order{
		orderType:     st.Type,
		createdAt:     st.CreatedAt,
		status:        st.Status,
		currentStage:  st.CurrentStage,
		version:       st.Version,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(st.ID),
		o.setCode(st.Code),
		o.setClientName(st.ClientName),
		o.setSalesChannel(st.SalesChannel),
		o.setLineItems(st.LineItems),
		o.setCreatedBy(st.CreatedBy),
		st.Status.Validate(),
		st.CurrentStage.Validate(),
	); err != nil {
		return nil, err
	}
	// Stored due dates are kept even when the channel rules changed since.
	o.dueDate = cloneTime(st.DueDate)
	if st.Quantity != o.quantity {
		return nil, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("stored %d does not match line items total %d", st.Quantity, o.quantity))
	}

	stages, err := restoreStages(st.Stages)
	if err != nil {
		return nil, err
	}
	o.stages = stages
	if err := o.checkStageInvariants(); err != nil {
		return nil, err
	}
	return o, nil
}

func restoreStages(states []StageRecordState) ([]*StageRecord, error) {
	catalog := stage.All()
	if len(states) != len(catalog) {
		return nil, errs.NewValueIsInvalidErrorWithCause("stages",
			fmt.Errorf("expected %d stage records, got %d", len(catalog), len(states)))
	}
	byIndex := make([]*StageRecord, len(catalog))
	for _, s := range states {
		rec, err := restoreStageRecord(s)
		if err != nil {
			return nil, err
		}
		i := rec.Stage().Index()
		if byIndex[i] != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause("stages", fmt.Errorf("duplicate record for %s", rec.Stage()))
		}
		byIndex[i] = rec
	}
	return byIndex, nil
}

func (o *Order) checkStageInvariants() error {
	cur := o.currentStage.Index()
	for i, rec := range o.stages {
		var want stage.Status
		switch {
		case o.status == Completed || i < cur:
			want = stage.Approved
		case i == cur:
			want = stage.InProgress
		default:
			want = stage.Pending
		}
		if rec.Status() != want {
			return errs.NewValueIsInvalidErrorWithCause("stages",
				fmt.Errorf("%s is %s, expected %s with current stage %s", rec.Stage(), rec.Status(), want, o.currentStage))
		}
	}
	if o.status == Completed && o.currentStage != stage.Terminal() {
		return errs.NewValueIsInvalidErrorWithCause("currentStage",
			fmt.Errorf("completed order must rest on %s, not %s", stage.Terminal(), o.currentStage))
	}
	return nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) Code() Code {
	return o.code
}

func (o *Order) ClientName() string {
	return o.clientName
}

func (o *Order) SalesChannel() SalesChannel {
	return o.salesChannel
}

func (o *Order) Type() Type {
	return o.orderType
}

func (o *Order) Quantity() int {
	return o.quantity
}

// DueDate returns the contracted date, or nil when it is left to the lead time estimate.
func (o *Order) DueDate() *time.Time {
	return cloneTime(o.dueDate)
}

func (o *Order) CreatedBy() kernel.UUID {
	return o.createdBy
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) CurrentStage() stage.Stage {
	return o.currentStage
}

// Version is the optimistic concurrency token of the loaded state.
func (o *Order) Version() int {
	return o.version
}

// SetStoredVersion records the version a repository wrote, so the same
// aggregate can be updated again within a unit of work.
func (o *Order) SetStoredVersion(v int) {
	o.version = v
}

func (o *Order) LineItems() []LineItem {
	return slices.Clone(o.lineItems)
}

// StageRecords returns the records in catalog order.
func (o *Order) StageRecords() []*StageRecord {
	return slices.Clone(o.stages)
}

// StageRecord returns the record of s, or a ValueIsInvalidError for unknown stages.
func (o *Order) StageRecord(s stage.Stage) (*StageRecord, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return o.stages[s.Index()], nil
}

// EstimatedDueDate is the contracted due date when set, otherwise the creation
// time plus the longest line item lead time. It is computed on every call and
// never stored.
func (o *Order) EstimatedDueDate() time.Time {
	if o.dueDate != nil {
		return *o.dueDate
	}
	return EstimateDueDate(o.createdAt, o.lineItems)
}

// EstimateDueDate adds the longest lead time of items to createdAt.
func EstimateDueDate(createdAt time.Time, items []LineItem) time.Time {
	maxDays := 0
	for _, li := range items {
		maxDays = max(maxDays, li.LeadTimeDays())
	}
	return DueDateAfter(createdAt, maxDays)
}

// DueDateAfter is createdAt moved forward by the longest lead time in days.
// Read models that only load the maximum lead time use it directly.
func DueDateAfter(createdAt time.Time, leadTimeDays int) time.Time {
	return createdAt.AddDate(0, 0, leadTimeDays)
}

// Assign sets or clears (zero assignee) the user responsible for a stage.
// Any record status is accepted, so work can be handed over before or
// during a stage. The role check belongs to the caller.
func (o *Order) Assign(s stage.Stage, assignee, by kernel.UUID, now time.Time) error {
	if err := by.Validate(); err != nil {
		return err
	}
	rec, err := o.StageRecord(s)
	if err != nil {
		return err
	}

	rec.assign(assignee, by, now)

	assignedTo := ""
	if !assignee.IsZero() {
		assignedTo = assignee.String()
	}
	o.record(StageAssignedEvent{
		eventMeta:  newEventMeta(EventStageAssigned, o.id, now),
		Stage:      s.String(),
		AssignedTo: assignedTo,
		AssignedBy: by.String(),
	})
	return nil
}

// AttachEvidence stores an evidence reference on the current stage. notes,
// when non-nil, replaces the record's notes in the same change.
//
// Errors:
//   - ValueIsInvalidError for the quality gate, which takes no evidence
//   - ValueIsRequiredError for an empty reference
//   - StateConflictError when s is not the in-progress current stage
func (o *Order) AttachEvidence(s stage.Stage, ref string, notes *string, by kernel.UUID, now time.Time) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if !s.RequiresEvidence() {
		return errs.NewValueIsInvalidErrorWithCause("stage",
			fmt.Errorf("%s is approved by acknowledgment and takes no evidence", s))
	}
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return errs.NewValueIsRequiredError("evidenceRef")
	}

	rec, err := o.currentRecord(s, "is not the stage in progress")
	if err != nil {
		return err
	}
	if notes != nil {
		if err := rec.setNotes(*notes); err != nil {
			return err
		}
	}
	rec.attachEvidence(ref)

	o.record(EvidenceAttachedEvent{
		eventMeta:   newEventMeta(EventEvidenceAttached, o.id, now),
		Stage:       s.String(),
		EvidenceRef: ref,
		AttachedBy:  by.String(),
	})
	return nil
}

// SaveNotes replaces the free text notes of a stage. It is allowed at any
// record status and on completed orders.
func (o *Order) SaveNotes(s stage.Stage, text string) error {
	rec, err := o.StageRecord(s)
	if err != nil {
		return err
	}
	return rec.setNotes(text)
}

// ApproveStage approves the current stage and advances the order.
//
// The quality review stage needs qcAcknowledged; on approval its notes are
// replaced by QualityAuditNote. Approving the terminal stage completes the
// order and leaves the current stage on it.
//
// Returns the resulting current stage. On error the order is unchanged.
func (o *Order) ApproveStage(s stage.Stage, qcAcknowledged bool, by kernel.UUID, now time.Time) (stage.Stage, error) {
	if err := errors.Join(s.Validate(), by.Validate()); err != nil {
		return stage.Unknown, err
	}
	rec, err := o.currentRecord(s, "is not currently approvable")
	if err != nil {
		return stage.Unknown, err
	}
	if s == stage.QualityReview && !qcAcknowledged {
		return stage.Unknown, errs.NewValueIsRequiredErrorWithCause("qualityAcknowledged",
			errors.New("quality review must be acknowledged before approval"))
	}

	next, hasNext := s.Successor()
	var nextRec *StageRecord
	if hasNext {
		nextRec = o.stages[next.Index()]
		if nextRec.Status() != stage.Pending {
			return stage.Unknown, errs.NewStateConflictError("stage "+next.String(),
				fmt.Sprintf("is %s and cannot be started", nextRec.Status()))
		}
	}

	// All checks passed; the mutations below cannot fail part way.
	if err := rec.approve(by, now); err != nil {
		return stage.Unknown, err
	}
	if s == stage.QualityReview {
		rec.state.Notes = QualityAuditNote
	}
	if hasNext {
		if err := nextRec.start(now); err != nil {
			return stage.Unknown, err
		}
		o.currentStage = next
	} else {
		completed, err := o.status.Complete()
		if err != nil {
			return stage.Unknown, err
		}
		o.status = completed
	}

	o.record(StageApprovedEvent{
		eventMeta:    newEventMeta(EventStageApproved, o.id, now),
		Stage:        s.String(),
		CurrentStage: o.currentStage.String(),
		ApprovedBy:   by.String(),
	})
	if o.status == Completed {
		o.record(CompletedEvent{
			eventMeta: newEventMeta(EventCompleted, o.id, now),
			Code:      o.code.String(),
		})
	}
	return o.currentStage, nil
}

func (o *Order) currentRecord(s stage.Stage, reason string) (*StageRecord, error) {
	if err := o.status.ValidateMutable(); err != nil {
		return nil, err
	}
	rec, err := o.StageRecord(s)
	if err != nil {
		return nil, err
	}
	if s != o.currentStage || rec.Status() != stage.InProgress {
		return nil, errs.NewStateConflictError("stage "+s.String(), reason)
	}
	return rec, nil
}

// DomainEvents returns the events recorded since the order was created or loaded.
func (o *Order) DomainEvents() []kernel.DomainEvent {
	return slices.Clone(o.events)
}

func (o *Order) ClearDomainEvents() {
	o.events = nil
}

func (o *Order) record(e kernel.DomainEvent) {
	o.events = append(o.events, e)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCode(code Code) error {
	if err := code.Validate(); err != nil {
		return err
	}
	o.code = code
	return nil
}

func (o *Order) setClientName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("clientName")
	}
	if len(name) > maxClientNameLength {
		return errs.NewValueIsOutOfRangeError("clientName length", len(name), 1, maxClientNameLength)
	}
	o.clientName = name
	return nil
}

func (o *Order) setSalesChannel(ch SalesChannel) error {
	if err := ch.Validate(); err != nil {
		return err
	}
	o.salesChannel = ch
	return nil
}

// setLineItems also derives quantity and, for new orders, the order type.
func (o *Order) setLineItems(items []LineItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("lineItems")
	}
	total := 0
	for i, li := range items {
		if err := li.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("lineItems[%d]", i), err)
		}
		total += li.Units()
	}
	o.lineItems = slices.Clone(items)
	o.quantity = total
	if o.orderType == TypeUnknown {
		o.orderType = TypeForQuantity(total)
	}
	return nil
}

func (o *Order) setCreatedBy(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("createdBy", err)
	}
	o.createdBy = id
	return nil
}

// setDueDate keeps only the calendar date. The channel must already be set.
func (o *Order) setDueDate(due *time.Time) error {
	if due == nil {
		if o.salesChannel.RequiresDueDate() {
			return errs.NewValueIsRequiredErrorWithCause("dueDate",
				fmt.Errorf("sales channel %s requires a due date", o.salesChannel))
		}
		o.dueDate = nil
		return nil
	}
	d := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, time.UTC)
	o.dueDate = &d
	return nil
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	cp := *t
	return &cp
}
