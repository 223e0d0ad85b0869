package commands

import (
	"context"
	"log/slog"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/ports"
)

// PublishOutboxCommandHandler drains the outbox. Messages are delivered at
// least once: a crash between Publish and Commit re-sends them on the next run.
type PublishOutboxCommandHandler struct {
	uowFactory OutboxUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

func NewPublishOutboxCommandHandler(
	uowFactory OutboxUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) PublishOutboxCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return PublishOutboxCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With("component", "PublishOutboxCommandHandler"),
	}
}

// Handle publishes one batch in order and stops at the first failure. The
// messages delivered before it are still marked published. Returns the
// number of messages marked.
func (h *PublishOutboxCommandHandler) Handle(ctx context.Context, cmd PublishOutboxCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OutboxRepository()
	pending, err := repo.Pending(ctx, cmd.BatchSize())
	if err != nil {
		return 0, err
	}
	if len(pending) == 0 {
		return 0, nil
	}

	published := make([]kernel.UUID, 0, len(pending))
	var publishErr error
	for _, msg := range pending {
		if publishErr = h.publisher.Publish(ctx, msg); publishErr != nil {
			h.logger.ErrorContext(ctx, "failed to publish outbox message",
				"messageID", msg.ID.String(), "event", msg.Name, "error", publishErr)
			break
		}
		published = append(published, msg.ID)
	}

	if len(published) > 0 {
		if err := repo.MarkPublished(ctx, published, time.Now().UTC()); err != nil {
			return 0, err
		}
		if err := uow.Commit(ctx); err != nil {
			return 0, err
		}
		h.logger.InfoContext(ctx, "outbox messages published", "count", len(published))
	}

	return len(published), publishErr
}
