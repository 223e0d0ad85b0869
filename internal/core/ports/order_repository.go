// Package ports defines the contracts between the workflow core and its
// infrastructure: persistence, the code sequence, the identity store, the
// object store and the event broker.
package ports

import (
	"context"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// An aggregate is always stored and loaded whole: header, line items and all
// six stage records.
type OrderRepository interface {
	// Add persists a new order in one statement batch. A duplicate code is
	// reported as a StateConflictError so the caller can retry with a new code.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists header and stage record changes. It succeeds only when
	// the stored version still equals aggregate.Version(); otherwise it
	// returns a StateConflictError and writes nothing.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get loads an order without locking it. Returns ObjectNotFoundError when missing.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate loads an order and holds a row lock on it until the
	// surrounding transaction ends. This is the serialization point for every
	// mutation of one order; it must be called inside UnitOfWork.Begin.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
