package commands

import (
	"context"
	"log/slog"
	"time"

	"production/internal/core/domain/model/order"
	"production/internal/core/domain/services"
)

// AttachEvidenceCommandHandler stores an evidence reference on the stage in progress.
//
// Example:
//
//	cmd, _ := NewAttachEvidenceCommand(orderID, stage.Printing, "s3://evidence/print.jpg", nil, actor)
//	rec, err := handler.Handle(ctx, cmd)
type AttachEvidenceCommandHandler struct {
	uowFactory OrderUoWFactory
	authz      services.StageAuthorizer
	logger     *slog.Logger
}

func NewAttachEvidenceCommandHandler(uowFactory OrderUoWFactory, logger *slog.Logger) AttachEvidenceCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return AttachEvidenceCommandHandler{
		uowFactory: uowFactory,
		authz:      services.NewStageAuthorizer(),
		logger:     logger.With("component", "AttachEvidenceCommandHandler"),
	}
}

func (h *AttachEvidenceCommandHandler) Handle(ctx context.Context, cmd AttachEvidenceCommand) (order.StageRecordState, error) {
	if err := cmd.Validate(); err != nil {
		return order.StageRecordState{}, err
	}

	o, err := mutateOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		if err := h.authz.AuthorizeAct(cmd.Actor(), o, cmd.Stage()); err != nil {
			return err
		}
		return o.AttachEvidence(cmd.Stage(), cmd.EvidenceRef(), cmd.Notes(), cmd.Actor().ID(), time.Now().UTC())
	})
	if err != nil {
		return order.StageRecordState{}, err
	}

	h.logger.InfoContext(ctx, "evidence attached",
		"orderID", o.ID().String(), "stage", cmd.Stage().String(), "ref", cmd.EvidenceRef())
	return recordState(o, cmd.Stage())
}
