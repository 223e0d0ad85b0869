package queries

import (
	"context"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/core/domain/model/stage"
	"production/internal/core/domain/services"
)

// OrderReader loads an order aggregate without locking it.
type OrderReader interface {
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
}

// GetStagePermissionsQueryHandler evaluates StageAuthorizer against a plain
// read of the order. The answers are advisory; every command re-checks them
// against the locked aggregate.
type GetStagePermissionsQueryHandler struct {
	orders OrderReader
	authz  services.StageAuthorizer
}

func NewGetStagePermissionsQueryHandler(orders OrderReader) GetStagePermissionsQueryHandler {
	return GetStagePermissionsQueryHandler{orders: orders, authz: services.NewStageAuthorizer()}
}

func (h GetStagePermissionsQueryHandler) Handle(
	ctx context.Context,
	query GetStagePermissionsQuery,
) ([]StagePermission, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	o, err := h.orders.Get(ctx, query.OrderID())
	if err != nil {
		return nil, err
	}

	actor := query.Actor()
	canAssign := h.authz.CanAssign(actor)
	canNotes := h.authz.AuthorizeNotes(actor) == nil

	perms := make([]StagePermission, 0, len(stage.All()))
	for _, s := range stage.All() {
		canAct := h.authz.CanAct(actor, o, s)
		perms = append(perms, StagePermission{
			Stage:      s,
			IsCurrent:  o.Status() == order.Active && o.CurrentStage() == s,
			CanAct:     canAct,
			CanUpload:  canAct && s.RequiresEvidence(),
			CanApprove: h.authz.CanApprove(actor, o, s),
			CanAssign:  canAssign,
			CanNotes:   canNotes,
		})
	}
	return perms, nil
}
