package services

import (
	"fmt"

	"production/internal/core/domain/model/identity"
	"production/internal/core/domain/model/order"
	"production/internal/core/domain/model/stage"
	"production/internal/pkg/errs"
)

// StageAuthorizer is the single place where role and assignment rules live.
//
// Rules:
//   - admin and supervisor may act on every stage, always
//   - operator may act only on the current in-progress stage, and only when
//     assigned to it
//   - only admin and supervisor may approve, assign or create orders
//   - inactive actors and unknown roles are denied everything
//
// Mutating handlers authorize against the row-locked aggregate inside the
// transaction. The evidence upload also checks a plain read first so a
// refused actor never reaches the object store; only the locked check is
// authoritative.
//
// Example usage:
//
//	authz := services.NewStageAuthorizer()
//	if err := authz.AuthorizeApprove(actor, o, stage.Printing); err != nil {
//	    return err // *errs.AuthorizationError
//	}
type StageAuthorizer struct{}

func NewStageAuthorizer() StageAuthorizer {
	return StageAuthorizer{}
}

// CanAct reports whether actor may upload evidence or otherwise work stage s of o.
func (a StageAuthorizer) CanAct(actor identity.Actor, o *order.Order, s stage.Stage) bool {
	return a.AuthorizeAct(actor, o, s) == nil
}

// CanApprove reports whether actor may approve stage s. It does not check
// that s is currently approvable; that is a state question for the aggregate.
func (a StageAuthorizer) CanApprove(actor identity.Actor, o *order.Order, s stage.Stage) bool {
	return a.AuthorizeApprove(actor, o, s) == nil
}

func (a StageAuthorizer) CanAssign(actor identity.Actor) bool {
	return a.AuthorizeAssign(actor) == nil
}

func (a StageAuthorizer) CanCreateOrder(actor identity.Actor) bool {
	return a.AuthorizeCreateOrder(actor) == nil
}

// AuthorizeAct returns an AuthorizationError unless CanAct holds.
func (a StageAuthorizer) AuthorizeAct(actor identity.Actor, o *order.Order, s stage.Stage) error {
	action := "work stage " + s.String()
	if err := a.checkActor(actor, action); err != nil {
		return err
	}
	if err := o.Validate(); err != nil {
		return err
	}
	rec, err := o.StageRecord(s)
	if err != nil {
		return err
	}

	switch actor.Role() {
	case identity.Admin, identity.Supervisor:
		return nil
	case identity.Operator:
		if !rec.IsAssignedTo(actor.ID()) {
			return errs.NewAuthorizationError(action, "operator is not assigned to this stage")
		}
		if o.Status() != order.Active || o.CurrentStage() != s || rec.Status() != stage.InProgress {
			return errs.NewAuthorizationError(action, "operators may only work the current stage")
		}
		return nil
	case identity.RoleUnknown:
		return errs.NewAuthorizationError(action, "role is not recognised")
	}
	return errs.NewAuthorizationError(action, fmt.Sprintf("role %d is not recognised", actor.Role()))
}

// AuthorizeApprove enforces separation of duties: operators never approve,
// even a stage they are assigned to.
func (a StageAuthorizer) AuthorizeApprove(actor identity.Actor, o *order.Order, s stage.Stage) error {
	action := "approve stage " + s.String()
	if err := a.checkActor(actor, action); err != nil {
		return err
	}
	if err := a.requireManager(actor, action); err != nil {
		return err
	}
	return a.AuthorizeAct(actor, o, s)
}

func (a StageAuthorizer) AuthorizeAssign(actor identity.Actor) error {
	const action = "assign stage"
	if err := a.checkActor(actor, action); err != nil {
		return err
	}
	return a.requireManager(actor, action)
}

func (a StageAuthorizer) AuthorizeCreateOrder(actor identity.Actor) error {
	const action = "create order"
	if err := a.checkActor(actor, action); err != nil {
		return err
	}
	return a.requireManager(actor, action)
}

// AuthorizeNotes allows any active actor with a known role. Notes are a side
// channel and are not gated by assignment or stage status.
func (a StageAuthorizer) AuthorizeNotes(actor identity.Actor) error {
	return a.checkActor(actor, "save notes")
}

func (a StageAuthorizer) checkActor(actor identity.Actor, action string) error {
	if err := actor.Validate(); err != nil {
		return errs.NewAuthorizationErrorWithCause(action, "no authenticated actor", err)
	}
	if !actor.IsActive() {
		return errs.NewAuthorizationError(action, "profile is inactive")
	}
	if err := actor.Role().Validate(); err != nil {
		return errs.NewAuthorizationErrorWithCause(action, "role is not recognised", err)
	}
	return nil
}

func (a StageAuthorizer) requireManager(actor identity.Actor, action string) error {
	if !actor.Role().IsManager() {
		return errs.NewAuthorizationError(action, fmt.Sprintf("role %s may not %s", actor.Role(), action))
	}
	return nil
}
