package commands

import (
	"errors"
	"strings"

	"production/internal/core/domain/model/identity"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/stage"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

var ErrAttachEvidenceCommandIsNotConstructed = errors.New(
	"AttachEvidenceCommand must be created via NewAttachEvidenceCommand constructor",
)

// AttachEvidenceCommand records an already stored evidence reference on the
// current stage. notes, when non-nil, replaces the stage notes in the same change.
type AttachEvidenceCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	stage       stage.Stage
	evidenceRef string
	notes       *string
	actor       identity.Actor

	guard guard.ConstructorGuard
}

func NewAttachEvidenceCommand(
	orderID kernel.UUID,
	s stage.Stage,
	evidenceRef string,
	notes *string,
	actor identity.Actor,
) (AttachEvidenceCommand, error) {
	evidenceRef = strings.TrimSpace(evidenceRef)

	var refErr error
	if evidenceRef == "" {
		refErr = errs.NewValueIsRequiredError("evidenceRef")
	}
	if err := errors.Join(
		validateOrderID(orderID),
		s.Validate(),
		refErr,
		validateActor(actor),
	); err != nil {
		return AttachEvidenceCommand{}, err
	}

	return AttachEvidenceCommand{
		orderID:     orderID,
		stage:       s,
		evidenceRef: evidenceRef,
		notes:       copyString(notes),
		actor:       actor,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c AttachEvidenceCommand) Validate() error {
	return c.guard.Validate(ErrAttachEvidenceCommandIsNotConstructed)
}

func (c AttachEvidenceCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c AttachEvidenceCommand) Stage() stage.Stage {
	return c.stage
}

func (c AttachEvidenceCommand) EvidenceRef() string {
	return c.evidenceRef
}

func (c AttachEvidenceCommand) Notes() *string {
	return copyString(c.notes)
}

func (c AttachEvidenceCommand) Actor() identity.Actor {
	return c.actor
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
