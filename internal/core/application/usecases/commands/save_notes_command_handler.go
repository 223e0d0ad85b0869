package commands

import (
	"context"
	"log/slog"

	"production/internal/core/domain/model/order"
	"production/internal/core/domain/services"
)

type SaveNotesCommandHandler struct {
	uowFactory OrderUoWFactory
	authz      services.StageAuthorizer
	logger     *slog.Logger
}

func NewSaveNotesCommandHandler(uowFactory OrderUoWFactory, logger *slog.Logger) SaveNotesCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return SaveNotesCommandHandler{
		uowFactory: uowFactory,
		authz:      services.NewStageAuthorizer(),
		logger:     logger.With("component", "SaveNotesCommandHandler"),
	}
}

// Handle saves notes for any active actor. The order is still locked so the
// write does not interleave with an approval of the same order.
func (h *SaveNotesCommandHandler) Handle(ctx context.Context, cmd SaveNotesCommand) (order.StageRecordState, error) {
	if err := cmd.Validate(); err != nil {
		return order.StageRecordState{}, err
	}
	if err := h.authz.AuthorizeNotes(cmd.Actor()); err != nil {
		return order.StageRecordState{}, err
	}

	o, err := mutateOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		return o.SaveNotes(cmd.Stage(), cmd.Text())
	})
	if err != nil {
		return order.StageRecordState{}, err
	}

	h.logger.DebugContext(ctx, "notes saved", "orderID", o.ID().String(), "stage", cmd.Stage().String())
	return recordState(o, cmd.Stage())
}
