package queries

import (
	"context"

	"production/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListLineItemsQueryHandler lists line items in the order they were entered.
// A missing order is ObjectNotFoundError rather than an empty list.
type ListLineItemsQueryHandler struct {
	db *gorm.DB
}

func NewListLineItemsQueryHandler(db *gorm.DB) ListLineItemsQueryHandler {
	return ListLineItemsQueryHandler{db: db}
}

func (h ListLineItemsQueryHandler) Handle(ctx context.Context, query ListLineItemsQuery) ([]LineItemReadModel, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			product_id,
			product_name,
			image_ref,
			category,
			sku,
			units,
			lead_time_days
		FROM order_line_items
		WHERE order_id = ?
		ORDER BY position
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]LineItemReadModel, 0)
	for rows.Next() {
		var item LineItemReadModel
		var id uuid.UUID
		var productID *uuid.UUID

		if err = rows.Scan(
			&id,
			&productID,
			&item.ProductName,
			&item.ImageRef,
			&item.Category,
			&item.SKU,
			&item.Units,
			&item.LeadTimeDays,
		); err != nil {
			return nil, err
		}

		if item.ID, err = kernel.UUIDFrom(id); err != nil {
			return nil, err
		}
		if item.ProductID, err = optionalUUID(productID); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	if len(items) == 0 {
		if err := ensureOrderExists(ctx, h.db, query.OrderID()); err != nil {
			return nil, err
		}
	}
	return items, nil
}
