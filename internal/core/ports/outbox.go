package ports

import (
	"context"
	"time"

	"production/internal/core/domain/model/kernel"
)

// OutboxMessage is a serialized domain event waiting to be relayed.
type OutboxMessage struct {
	ID          kernel.UUID
	Name        string
	AggregateID kernel.UUID
	Payload     []byte
	OccurredAt  time.Time
}

// OutboxRepository reads and acknowledges outbox rows.
type OutboxRepository interface {
	// Pending returns up to limit unpublished messages, oldest first, locking
	// them so concurrent relays skip rather than duplicate them.
	Pending(ctx context.Context, limit int) ([]OutboxMessage, error)

	// MarkPublished stamps the given messages as delivered.
	MarkPublished(ctx context.Context, ids []kernel.UUID, at time.Time) error
}

// EventPublisher delivers one outbox message to downstream consumers.
type EventPublisher interface {
	Publish(ctx context.Context, msg OutboxMessage) error
}
