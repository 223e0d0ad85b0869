package commands

import (
	"context"
	"log/slog"
	"time"

	"production/internal/core/domain/model/order"
	"production/internal/core/domain/model/stage"
	"production/internal/core/domain/services"
	"production/internal/pkg/observability"
)

// ApproveStageResult is the state of the order after an approval.
type ApproveStageResult struct {
	CurrentStage stage.Stage
	Completed    bool
}

// ApproveStageCommandHandler approves a stage and starts the next one in the
// same transaction. Two concurrent approvals of the same stage serialize on
// the order row lock; the second sees the stage already approved and fails
// with a StateConflictError.
type ApproveStageCommandHandler struct {
	uowFactory OrderUoWFactory
	authz      services.StageAuthorizer
	metrics    *observability.WorkflowMetrics
	logger     *slog.Logger
}

func NewApproveStageCommandHandler(
	uowFactory OrderUoWFactory,
	metrics *observability.WorkflowMetrics,
	logger *slog.Logger,
) ApproveStageCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return ApproveStageCommandHandler{
		uowFactory: uowFactory,
		authz:      services.NewStageAuthorizer(),
		metrics:    metrics,
		logger:     logger.With("component", "ApproveStageCommandHandler"),
	}
}

func (h *ApproveStageCommandHandler) Handle(ctx context.Context, cmd ApproveStageCommand) (ApproveStageResult, error) {
	if err := cmd.Validate(); err != nil {
		return ApproveStageResult{}, err
	}

	var current stage.Stage
	o, err := mutateOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		if err := h.authz.AuthorizeApprove(cmd.Actor(), o, cmd.Stage()); err != nil {
			return err
		}
		var err error
		current, err = o.ApproveStage(cmd.Stage(), cmd.QualityAcknowledged(), cmd.Actor().ID(), time.Now().UTC())
		return err
	})
	if err != nil {
		return ApproveStageResult{}, err
	}

	result := ApproveStageResult{CurrentStage: current, Completed: o.Status() == order.Completed}
	h.metrics.StageApproved(ctx, cmd.Stage().String(), result.Completed)
	h.logger.InfoContext(ctx, "stage approved",
		"orderID", o.ID().String(),
		"stage", cmd.Stage().String(),
		"currentStage", current.String(),
		"completed", result.Completed,
	)
	return result, nil
}
