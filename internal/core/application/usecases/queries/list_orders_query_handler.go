package queries

import (
	"context"

	"gorm.io/gorm"
)

// ListOrdersQueryHandler returns order headers sorted by creation time, newest
// first, with code as the tie breaker.
type ListOrdersQueryHandler struct {
	db *gorm.DB
}

func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db}
}

func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderReadModel, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	stmt := `SELECT ` + orderColumns + ` FROM orders o`
	var args []any
	if query.Filter() != FilterAll {
		stmt += ` WHERE o.status = ?`
		args = append(args, string(query.Filter()))
	}
	stmt += ` ORDER BY o.created_at DESC, o.code DESC`

	rows, err := h.db.WithContext(ctx).Raw(stmt, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]OrderReadModel, 0)
	for rows.Next() {
		m, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, m)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}
