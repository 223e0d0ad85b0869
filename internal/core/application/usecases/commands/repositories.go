// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, authorization against
// the row-locked aggregate, mutation, and a single commit.
package commands

import (
	"context"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/core/domain/model/stage"
	"production/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// OutboxRepoFactory provides access to the outbox within a transaction.
	OutboxRepoFactory interface {
		OutboxRepository() ports.OutboxRepository
	}

	// OrderUoW manages transactions for order operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// OutboxUoW manages transactions for the outbox relay.
	OutboxUoW interface {
		TxManager
		OutboxRepoFactory
	}

	// OutboxUoWFactory creates new outbox unit of work instances.
	OutboxUoWFactory interface {
		Create() OutboxUoW
	}

	// CodeAllocator hands out order codes; services.CodeGenerator implements it.
	CodeAllocator interface {
		Next(ctx context.Context) order.Code
	}
)

// mutateOrder locks the order, applies fn and commits. Any error, including
// one from fn, rolls the whole unit back.
//
// Example:
//
//	o, err := mutateOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
//	    if err := h.authz.AuthorizeApprove(cmd.Actor(), o, cmd.Stage()); err != nil {
//	        return err
//	    }
//	    _, err := o.ApproveStage(cmd.Stage(), cmd.QualityAcknowledged(), cmd.Actor().ID(), now)
//	    return err
//	})
func mutateOrder(ctx context.Context, factory OrderUoWFactory, id kernel.UUID, fn func(o *order.Order) error) (*order.Order, error) {
	uow := factory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}

	if err = fn(o); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}

func recordState(o *order.Order, s stage.Stage) (order.StageRecordState, error) {
	rec, err := o.StageRecord(s)
	if err != nil {
		return order.StageRecordState{}, err
	}
	return rec.State(), nil
}
