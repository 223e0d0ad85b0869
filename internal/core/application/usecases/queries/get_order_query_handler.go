package queries

import (
	"context"
	"database/sql"
	"errors"

	"production/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetOrderQueryHandler reads the order header. The estimated due date is the
// contracted one when set, otherwise creation time plus the longest lead time
// among the line items.
//
// Example:
//
//	handler := NewGetOrderQueryHandler(db)
//	query, _ := NewGetOrderQuery(orderID)
//
//	o, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    return echo.ErrNotFound
//	}
type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderReadModel, error) {
	if err := query.Validate(); err != nil {
		return OrderReadModel{}, err
	}

	row := h.db.WithContext(ctx).Raw(`SELECT `+orderColumns+`
		FROM orders o
		WHERE o.id = ?
	`, query.OrderID().Bytes()).Row()

	m, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return OrderReadModel{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
		}
		return OrderReadModel{}, err
	}
	return m, nil
}
