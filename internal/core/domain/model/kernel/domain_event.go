package kernel

import "time"

// DomainEvent is a fact recorded by an aggregate during a command. Events are
// persisted to the outbox in the same transaction as the aggregate itself.
type DomainEvent interface {
	EventID() UUID
	EventName() string
	AggregateID() UUID
	OccurredAt() time.Time
}

// AggregateRoot exposes the events an aggregate recorded since it was loaded.
type AggregateRoot interface {
	DomainEvents() []DomainEvent
	ClearDomainEvents()
}
