package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/core/domain/services"
	"production/internal/pkg/errs"
	"production/internal/pkg/observability"
)

// maxCodeAttempts bounds retries when a generated code collides with an
// existing one under the unique index.
const maxCodeAttempts = 3

// CreateOrderCommandHandler places orders. The order row, its line items and
// its six stage records are written in one transaction.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, codeGenerator, metrics, logger)
//	o, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
//	fmt.Println(o.Code()) // OP-2026-0042
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	codes      CodeAllocator
	authz      services.StageAuthorizer
	metrics    *observability.WorkflowMetrics
	logger     *slog.Logger
}

// NewCreateOrderCommandHandler creates a handler for order creation. metrics may be nil.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	codes CodeAllocator,
	metrics *observability.WorkflowMetrics,
	logger *slog.Logger,
) CreateOrderCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		codes:      codes,
		authz:      services.NewStageAuthorizer(),
		metrics:    metrics,
		logger:     logger.With("component", "CreateOrderCommandHandler"),
	}
}

// Handle authorizes the actor, builds the aggregate and persists it. When a
// generated code is already taken (a concurrent writer or an imported row),
// a new code is drawn up to maxCodeAttempts times. A custom code is never
// replaced; its conflict is returned as is.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if err := h.authz.AuthorizeCreateOrder(cmd.Actor()); err != nil {
		return nil, err
	}

	items, err := buildLineItems(cmd.Items())
	if err != nil {
		return nil, err
	}

	customCode, hasCustom := cmd.CustomCode()

	var lastErr error
	for attempt := 1; attempt <= maxCodeAttempts; attempt++ {
		code := customCode
		if !hasCustom {
			code = h.codes.Next(ctx)
		}

		o, err := order.NewOrder(kernel.NewUUID(), code, cmd.Details(), items, cmd.Actor().ID(), time.Now().UTC())
		if err != nil {
			return nil, err
		}

		err = h.persist(ctx, o)
		if err == nil {
			h.metrics.OrderCreated(ctx, o.Type().String(), o.SalesChannel().String())
			h.logger.InfoContext(ctx, "order created",
				"orderID", o.ID().String(), "code", o.Code().String(), "quantity", o.Quantity())
			return o, nil
		}

		if hasCustom || !errors.Is(err, errs.ErrStateConflict) {
			return nil, err
		}
		lastErr = err
		h.logger.WarnContext(ctx, "order code already taken, retrying",
			"code", code.String(), "attempt", attempt)
	}

	return nil, fmt.Errorf("no free order code after %d attempts: %w", maxCodeAttempts, lastErr)
}

func (h *CreateOrderCommandHandler) persist(ctx context.Context, o *order.Order) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.OrderRepository().Add(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func buildLineItems(snapshots []order.ProductSnapshot) ([]order.LineItem, error) {
	items := make([]order.LineItem, 0, len(snapshots))
	var errList []error
	for i, s := range snapshots {
		li, err := order.NewLineItem(s)
		if err != nil {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("lineItems[%d]", i), err))
			continue
		}
		items = append(items, li)
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}
	return items, nil
}
