package queries

import (
	"errors"

	"production/internal/core/domain/model/identity"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/stage"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

var ErrGetStagePermissionsQueryIsNotConstructed = errors.New(
	"GetStagePermissionsQuery must be created via NewGetStagePermissionsQuery constructor",
)

// GetStagePermissionsQuery asks what the calling actor may do on each stage
// of an order, so a client can hide actions it would be refused.
type GetStagePermissionsQuery struct {
	orderID kernel.UUID
	actor   identity.Actor
	guard   guard.ConstructorGuard
}

func NewGetStagePermissionsQuery(orderID kernel.UUID, actor identity.Actor) (GetStagePermissionsQuery, error) {
	var idErr, actorErr error
	if orderID.IsZero() {
		idErr = errs.NewValueIsRequiredError("orderID")
	}
	if actor.Validate() != nil {
		actorErr = errs.NewValueIsRequiredError("actor")
	}
	if err := errors.Join(idErr, actorErr); err != nil {
		return GetStagePermissionsQuery{}, err
	}
	return GetStagePermissionsQuery{orderID: orderID, actor: actor, guard: guard.NewConstructorGuard()}, nil
}

func (q GetStagePermissionsQuery) Validate() error {
	return q.guard.Validate(ErrGetStagePermissionsQueryIsNotConstructed)
}

func (q GetStagePermissionsQuery) OrderID() kernel.UUID {
	return q.orderID
}

func (q GetStagePermissionsQuery) Actor() identity.Actor {
	return q.actor
}

// StagePermission answers the authorization question only. IsCurrent tells
// whether the stage can be approved right now as a matter of state.
type StagePermission struct {
	Stage      stage.Stage
	IsCurrent  bool
	CanAct     bool
	CanUpload  bool
	CanApprove bool
	CanAssign  bool
	CanNotes   bool
}
