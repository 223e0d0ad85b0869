// Package queries contains read operations for retrieving workflow state.
// Handlers read with plain SQL through gorm and return read models shaped for
// the HTTP layer rather than aggregates.
package queries

import (
	"context"
	"errors"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/core/domain/model/stage"
	"production/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderReadModel is the order header as listed and shown on the detail page.
type OrderReadModel struct {
	ID               kernel.UUID
	Code             string
	ClientName       string
	SalesChannel     order.SalesChannel
	Type             order.Type
	Quantity         int
	DueDate          *time.Time
	EstimatedDueDate time.Time
	CreatedBy        kernel.UUID
	CreatedAt        time.Time
	Status           order.Status
	CurrentStage     stage.Stage
	Version          int
}

const orderColumns = `
		o.id,
		o.code,
		o.client_name,
		o.sales_channel,
		o.order_type,
		o.quantity,
		o.due_date,
		o.created_by,
		o.created_at,
		o.status,
		o.current_stage,
		o.version,
		COALESCE((SELECT MAX(li.lead_time_days) FROM order_line_items li WHERE li.order_id = o.id), 0)`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(rows rowScanner) (OrderReadModel, error) {
	var (
		m                               OrderReadModel
		id, createdBy                   uuid.UUID
		channel, orderType, status, cur string
		maxLeadDays                     int
	)
	if err := rows.Scan(
		&id,
		&m.Code,
		&m.ClientName,
		&channel,
		&orderType,
		&m.Quantity,
		&m.DueDate,
		&createdBy,
		&m.CreatedAt,
		&status,
		&cur,
		&m.Version,
		&maxLeadDays,
	); err != nil {
		return OrderReadModel{}, err
	}

	var err, idErr, byErr, chErr, typeErr, statusErr, stageErr error
	m.ID, idErr = kernel.UUIDFrom(id)
	m.CreatedBy, byErr = kernel.UUIDFrom(createdBy)
	m.SalesChannel, chErr = order.ParseSalesChannel(channel)
	m.Type, typeErr = order.ParseType(orderType)
	m.Status, statusErr = order.ParseStatus(status)
	m.CurrentStage, stageErr = stage.Parse(cur)
	if err = errors.Join(idErr, byErr, chErr, typeErr, statusErr, stageErr); err != nil {
		return OrderReadModel{}, err
	}

	m.CreatedAt = m.CreatedAt.UTC()
	if m.DueDate != nil {
		due := time.Date(m.DueDate.Year(), m.DueDate.Month(), m.DueDate.Day(), 0, 0, 0, 0, time.UTC)
		m.DueDate = &due
		m.EstimatedDueDate = due
	} else {
		m.EstimatedDueDate = order.DueDateAfter(m.CreatedAt, maxLeadDays)
	}
	return m, nil
}

// ensureOrderExists turns an empty child listing into ObjectNotFoundError
// when the order itself is missing.
func ensureOrderExists(ctx context.Context, db *gorm.DB, id kernel.UUID) error {
	var exists bool
	if err := db.WithContext(ctx).
		Raw(`SELECT EXISTS (SELECT 1 FROM orders WHERE id = ?)`, id.Bytes()).
		Scan(&exists).Error; err != nil {
		return err
	}
	if !exists {
		return errs.NewObjectNotFoundError("order", id.String())
	}
	return nil
}

func optionalUUID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil || *raw == uuid.Nil {
		return nil, nil //nolint:nilnil // absent reference
	}
	id, err := kernel.UUIDFrom(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}
