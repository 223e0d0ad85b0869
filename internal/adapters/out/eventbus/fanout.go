// Package eventbus combines several event publishers behind one
// ports.EventPublisher.
package eventbus

import (
	"context"
	"log/slog"

	"production/internal/core/ports"
)

// Fanout delivers each message to the primary publisher and then to every
// secondary one. Only a primary failure is returned, so the outbox row stays
// pending and is retried. Secondary failures are logged and dropped, which
// keeps best-effort channels such as live notifications from holding back
// the broker.
type Fanout struct {
	primary     ports.EventPublisher
	secondaries []ports.EventPublisher
	logger      *slog.Logger
}

func NewFanout(primary ports.EventPublisher, logger *slog.Logger, secondaries ...ports.EventPublisher) *Fanout {
	return &Fanout{
		primary:     primary,
		secondaries: secondaries,
		logger:      logger.With("component", "EventFanout"),
	}
}

func (f *Fanout) Publish(ctx context.Context, msg ports.OutboxMessage) error {
	if f.primary != nil {
		if err := f.primary.Publish(ctx, msg); err != nil {
			return err
		}
	}
	for _, p := range f.secondaries {
		if err := p.Publish(ctx, msg); err != nil {
			f.logger.WarnContext(ctx, "secondary publish failed",
				"event", msg.Name,
				"event_id", msg.ID.String(),
				"error", err)
		}
	}
	return nil
}
