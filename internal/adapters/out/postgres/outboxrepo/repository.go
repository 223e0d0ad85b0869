// Package outboxrepo stores domain events next to the state change that
// produced them, for relay by a background job.
package outboxrepo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MessageDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name        string     `gorm:"size:100;not null"`
	AggregateID uuid.UUID  `gorm:"type:uuid;not null;index"`
	Payload     []byte     `gorm:"type:jsonb;not null"`
	OccurredAt  time.Time  `gorm:"type:timestamptz;not null"`
	PublishedAt *time.Time `gorm:"type:timestamptz;index:ix_outbox_pending"`
}

func (MessageDTO) TableName() string {
	return "outbox_messages"
}

type GormOutboxRepository struct {
	db *gorm.DB
}

func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

// Append serializes events into outbox rows. It must run on the same
// transaction as the aggregate write.
func (r *GormOutboxRepository) Append(ctx context.Context, events []kernel.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	rows := make([]MessageDTO, 0, len(events))
	for _, e := range events {
		payload, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("encode %s: %w", e.EventName(), err)
		}
		rows = append(rows, MessageDTO{
			ID:          e.EventID().Bytes(),
			Name:        e.EventName(),
			AggregateID: e.AggregateID().Bytes(),
			Payload:     payload,
			OccurredAt:  e.OccurredAt().UTC(),
		})
	}
	return r.db.WithContext(ctx).Create(&rows).Error
}

// Pending locks up to limit unpublished rows with SKIP LOCKED.
func (r *GormOutboxRepository) Pending(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	var rows []MessageDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("published_at IS NULL").
		Order("occurred_at, id").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	msgs := make([]ports.OutboxMessage, 0, len(rows))
	for _, row := range rows {
		id, err := kernel.UUIDFrom(row.ID)
		if err != nil {
			return nil, err
		}
		aggregateID, err := kernel.UUIDFrom(row.AggregateID)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, ports.OutboxMessage{
			ID:          id,
			Name:        row.Name,
			AggregateID: aggregateID,
			Payload:     row.Payload,
			OccurredAt:  row.OccurredAt,
		})
	}
	return msgs, nil
}

func (r *GormOutboxRepository) MarkPublished(ctx context.Context, ids []kernel.UUID, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Bytes())
	}
	return r.db.WithContext(ctx).Model(&MessageDTO{}).
		Where("id IN ?", raw).
		Update("published_at", at).Error
}
