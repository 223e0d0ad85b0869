package commands

import (
	"errors"

	"production/internal/core/domain/model/identity"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/stage"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

var ErrAssignStageCommandIsNotConstructed = errors.New(
	"AssignStageCommand must be created via NewAssignStageCommand constructor",
)

// AssignStageCommand hands a stage of an order to a user, or clears the
// assignment when assignee is nil.
type AssignStageCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	stage    stage.Stage
	assignee *kernel.UUID
	actor    identity.Actor

	guard guard.ConstructorGuard
}

func NewAssignStageCommand(
	orderID kernel.UUID,
	s stage.Stage,
	assignee *kernel.UUID,
	actor identity.Actor,
) (AssignStageCommand, error) {
	if err := errors.Join(
		validateOrderID(orderID),
		s.Validate(),
		validateActor(actor),
	); err != nil {
		return AssignStageCommand{}, err
	}
	if assignee != nil {
		if err := assignee.Validate(); err != nil {
			return AssignStageCommand{}, errs.NewValueIsInvalidErrorWithCause("assignee", err)
		}
		copied := *assignee
		assignee = &copied
	}

	return AssignStageCommand{
		orderID:  orderID,
		stage:    s,
		assignee: assignee,
		actor:    actor,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c AssignStageCommand) Validate() error {
	return c.guard.Validate(ErrAssignStageCommandIsNotConstructed)
}

func (c AssignStageCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c AssignStageCommand) Stage() stage.Stage {
	return c.stage
}

// Assignee returns the target user; ok is false when the assignment is cleared.
func (c AssignStageCommand) Assignee() (id kernel.UUID, ok bool) {
	if c.assignee == nil {
		return kernel.UUID{}, false
	}
	return *c.assignee, true
}

func (c AssignStageCommand) Actor() identity.Actor {
	return c.actor
}

func validateOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderID", err)
	}
	return nil
}

func validateActor(actor identity.Actor) error {
	if err := actor.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("actor", err)
	}
	return nil
}
