package order

import (
	"time"

	"production/internal/core/domain/model/kernel"
)

const (
	EventCreated          = "order.created"
	EventStageAssigned    = "order.stage.assigned"
	EventEvidenceAttached = "order.stage.evidence_attached"
	EventStageApproved    = "order.stage.approved"
	EventCompleted        = "order.completed"
)

type eventMeta struct {
	id         kernel.UUID
	name       string
	orderID    kernel.UUID
	occurredAt time.Time
}

func newEventMeta(name string, orderID kernel.UUID, at time.Time) eventMeta {
	return eventMeta{id: kernel.NewUUID(), name: name, orderID: orderID, occurredAt: at}
}

func (m eventMeta) EventID() kernel.UUID { return m.id }

func (m eventMeta) EventName() string { return m.name }

func (m eventMeta) AggregateID() kernel.UUID { return m.orderID }

func (m eventMeta) OccurredAt() time.Time { return m.occurredAt }

// CreatedEvent is recorded once, when the order and its six stage records are placed.
type CreatedEvent struct {
	eventMeta
	Code      string `json:"code"`
	Client    string `json:"client"`
	Quantity  int    `json:"quantity"`
	Type      string `json:"type"`
	CreatedBy string `json:"createdBy"`
}

type StageAssignedEvent struct {
	eventMeta
	Stage      string `json:"stage"`
	AssignedTo string `json:"assignedTo,omitempty"` // empty when the assignment was cleared
	AssignedBy string `json:"assignedBy"`
}

type EvidenceAttachedEvent struct {
	eventMeta
	Stage       string `json:"stage"`
	EvidenceRef string `json:"evidenceRef"`
	AttachedBy  string `json:"attachedBy"`
}

type StageApprovedEvent struct {
	eventMeta
	Stage        string `json:"stage"`
	CurrentStage string `json:"currentStage"`
	ApprovedBy   string `json:"approvedBy"`
}

type CompletedEvent struct {
	eventMeta
	Code string `json:"code"`
}
