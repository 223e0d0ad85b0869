package commands

import (
	"errors"

	"production/internal/core/domain/model/identity"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/stage"
	"production/internal/pkg/guard"
)

var ErrApproveStageCommandIsNotConstructed = errors.New(
	"ApproveStageCommand must be created via NewApproveStageCommand constructor",
)

// ApproveStageCommand approves the current stage of an order.
// qualityAcknowledged is only consulted for the quality review stage.
type ApproveStageCommand struct { //nolint:recvcheck //using for validation
	orderID             kernel.UUID
	stage               stage.Stage
	qualityAcknowledged bool
	actor               identity.Actor

	guard guard.ConstructorGuard
}

func NewApproveStageCommand(
	orderID kernel.UUID,
	s stage.Stage,
	qualityAcknowledged bool,
	actor identity.Actor,
) (ApproveStageCommand, error) {
	if err := errors.Join(
		validateOrderID(orderID),
		s.Validate(),
		validateActor(actor),
	); err != nil {
		return ApproveStageCommand{}, err
	}
	return ApproveStageCommand{
		orderID:             orderID,
		stage:               s,
		qualityAcknowledged: qualityAcknowledged,
		actor:               actor,
		guard:               guard.NewConstructorGuard(),
	}, nil
}

func (c ApproveStageCommand) Validate() error {
	return c.guard.Validate(ErrApproveStageCommandIsNotConstructed)
}

func (c ApproveStageCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c ApproveStageCommand) Stage() stage.Stage {
	return c.stage
}

func (c ApproveStageCommand) QualityAcknowledged() bool {
	return c.qualityAcknowledged
}

func (c ApproveStageCommand) Actor() identity.Actor {
	return c.actor
}
