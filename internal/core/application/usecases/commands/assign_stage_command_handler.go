package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/core/domain/services"
	"production/internal/core/ports"
	"production/internal/pkg/errs"
)

// AssignStageCommandHandler sets the responsible user of a stage.
type AssignStageCommandHandler struct {
	uowFactory    OrderUoWFactory
	profiles      ports.ProfileDirectory
	lookupTimeout time.Duration
	authz         services.StageAuthorizer
	logger        *slog.Logger
}

func NewAssignStageCommandHandler(
	uowFactory OrderUoWFactory,
	profiles ports.ProfileDirectory,
	lookupTimeout time.Duration,
	logger *slog.Logger,
) AssignStageCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	if lookupTimeout <= 0 {
		lookupTimeout = 3 * time.Second
	}
	return AssignStageCommandHandler{
		uowFactory:    uowFactory,
		profiles:      profiles,
		lookupTimeout: lookupTimeout,
		authz:         services.NewStageAuthorizer(),
		logger:        logger.With("component", "AssignStageCommandHandler"),
	}
}

// Handle checks the actor may assign, resolves the assignee outside the
// transaction and then updates the locked order. Returns the updated record.
func (h *AssignStageCommandHandler) Handle(ctx context.Context, cmd AssignStageCommand) (order.StageRecordState, error) {
	if err := cmd.Validate(); err != nil {
		return order.StageRecordState{}, err
	}
	if err := h.authz.AuthorizeAssign(cmd.Actor()); err != nil {
		return order.StageRecordState{}, err
	}

	var assignee kernel.UUID
	if id, ok := cmd.Assignee(); ok {
		if err := h.resolveAssignee(ctx, id); err != nil {
			return order.StageRecordState{}, err
		}
		assignee = id
	}

	o, err := mutateOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		return o.Assign(cmd.Stage(), assignee, cmd.Actor().ID(), time.Now().UTC())
	})
	if err != nil {
		return order.StageRecordState{}, err
	}

	h.logger.InfoContext(ctx, "stage assigned",
		"orderID", o.ID().String(), "stage", cmd.Stage().String(), "assignee", assignee.String())
	return recordState(o, cmd.Stage())
}

func (h *AssignStageCommandHandler) resolveAssignee(ctx context.Context, id kernel.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, h.lookupTimeout)
	defer cancel()

	actor, err := h.profiles.Lookup(ctx, id)
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return errs.NewValueIsInvalidErrorWithCause("assignee", err)
	case err != nil:
		return err
	case !actor.IsActive():
		return errs.NewValueIsInvalidErrorWithCause("assignee", errors.New("profile is inactive"))
	}
	return nil
}
