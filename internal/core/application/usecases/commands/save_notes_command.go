package commands

import (
	"errors"

	"production/internal/core/domain/model/identity"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/stage"
	"production/internal/pkg/guard"
)

var ErrSaveNotesCommandIsNotConstructed = errors.New(
	"SaveNotesCommand must be created via NewSaveNotesCommand constructor",
)

// SaveNotesCommand replaces the notes of one stage. Empty text clears them.
type SaveNotesCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	stage   stage.Stage
	text    string
	actor   identity.Actor

	guard guard.ConstructorGuard
}

func NewSaveNotesCommand(orderID kernel.UUID, s stage.Stage, text string, actor identity.Actor) (SaveNotesCommand, error) {
	if err := errors.Join(
		validateOrderID(orderID),
		s.Validate(),
		validateActor(actor),
	); err != nil {
		return SaveNotesCommand{}, err
	}
	return SaveNotesCommand{
		orderID: orderID,
		stage:   s,
		text:    text,
		actor:   actor,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c SaveNotesCommand) Validate() error {
	return c.guard.Validate(ErrSaveNotesCommandIsNotConstructed)
}

func (c SaveNotesCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c SaveNotesCommand) Stage() stage.Stage {
	return c.stage
}

func (c SaveNotesCommand) Text() string {
	return c.text
}

func (c SaveNotesCommand) Actor() identity.Actor {
	return c.actor
}
