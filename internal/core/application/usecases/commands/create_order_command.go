package commands

import (
	"errors"
	"strings"
	"time"

	"production/internal/core/domain/model/identity"
	"production/internal/core/domain/model/order"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a request to place a new manufacturing order.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(actor, "Colegio San Martin", order.Institutional, &due, "",
//	    []order.ProductSnapshot{{ProductName: "Polo", Units: 40, LeadTimeDays: 12}})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	o, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	actor        identity.Actor
	clientName   string
	salesChannel order.SalesChannel
	dueDate      *time.Time
	customCode   *order.Code
	items        []order.ProductSnapshot

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the request shape. customCode may be empty,
// in which case a code is generated. Domain rules (due date per channel, line
// item ranges) are enforced when the order is built.
func NewCreateOrderCommand(
	actor identity.Actor,
	clientName string,
	salesChannel order.SalesChannel,
	dueDate *time.Time,
	customCode string,
	items []order.ProductSnapshot,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		actor:        actor,
		clientName:   strings.TrimSpace(clientName),
		salesChannel: salesChannel,
		dueDate:      dueDate,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setCustomCode(customCode),
		cmd.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) Actor() identity.Actor {
	return c.actor
}

func (c CreateOrderCommand) Details() order.Details {
	return order.Details{ClientName: c.clientName, SalesChannel: c.salesChannel, DueDate: c.dueDate}
}

// CustomCode returns the code typed in by the caller, if any.
func (c CreateOrderCommand) CustomCode() (order.Code, bool) {
	if c.customCode == nil {
		return order.Code{}, false
	}
	return *c.customCode, true
}

func (c CreateOrderCommand) Items() []order.ProductSnapshot {
	return append([]order.ProductSnapshot(nil), c.items...)
}

func (c *CreateOrderCommand) setActor(actor identity.Actor) error {
	return validateActor(actor)
}

func (c *CreateOrderCommand) setCustomCode(code string) error {
	if strings.TrimSpace(code) == "" {
		return nil
	}
	parsed, err := order.NewCustomCode(code)
	if err != nil {
		return err
	}
	c.customCode = &parsed
	return nil
}

func (c *CreateOrderCommand) setItems(items []order.ProductSnapshot) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("lineItems")
	}
	c.items = append([]order.ProductSnapshot(nil), items...)
	return nil
}
