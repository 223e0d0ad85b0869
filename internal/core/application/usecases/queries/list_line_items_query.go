package queries

import (
	"errors"

	"production/internal/core/domain/model/kernel"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

var ErrListLineItemsQueryIsNotConstructed = errors.New(
	"ListLineItemsQuery must be created via NewListLineItemsQuery constructor",
)

type ListLineItemsQuery struct {
	orderID kernel.UUID
	guard   guard.ConstructorGuard
}

func NewListLineItemsQuery(orderID kernel.UUID) (ListLineItemsQuery, error) {
	if orderID.IsZero() {
		return ListLineItemsQuery{}, errs.NewValueIsRequiredError("orderID")
	}
	return ListLineItemsQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q ListLineItemsQuery) Validate() error {
	return q.guard.Validate(ErrListLineItemsQueryIsNotConstructed)
}

func (q ListLineItemsQuery) OrderID() kernel.UUID {
	return q.orderID
}

// LineItemReadModel is the product snapshot stored with the order.
// ProductID is nil for items typed in by hand.
type LineItemReadModel struct {
	ID           kernel.UUID
	ProductID    *kernel.UUID
	ProductName  string
	ImageRef     string
	Category     string
	SKU          string
	Units        int
	LeadTimeDays int
}
