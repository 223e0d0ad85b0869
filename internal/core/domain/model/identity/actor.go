package identity

import (
	"errors"
	"strings"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/stage"
	"production/internal/pkg/guard"
)

var ErrActorIsNotConstructed = errors.New("Actor must be created via NewActor")

// Actor is the authenticated user a request acts on behalf of. It is resolved
// once per request from the profile directory and passed explicitly to every
// command and query.
type Actor struct {
	id        kernel.UUID
	role      Role
	fullName  string
	homeStage stage.Stage
	active    bool
	guard     guard.ConstructorGuard
}

// NewActor validates the identity fields. homeStage is the stage an operator
// normally works on; stage.Unknown means none. It is informational and never
// grants access on its own.
func NewActor(id kernel.UUID, role Role, fullName string, homeStage stage.Stage, active bool) (Actor, error) {
	var stageErr error
	if homeStage != stage.Unknown {
		stageErr = homeStage.Validate()
	}
	if err := errors.Join(id.Validate(), role.Validate(), stageErr); err != nil {
		return Actor{}, err
	}

	return Actor{
		id:        id,
		role:      role,
		fullName:  strings.TrimSpace(fullName),
		homeStage: homeStage,
		active:    active,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}

func (a Actor) ID() kernel.UUID {
	return a.id
}

func (a Actor) Role() Role {
	return a.role
}

func (a Actor) FullName() string {
	return a.fullName
}

func (a Actor) HomeStage() stage.Stage {
	return a.homeStage
}

func (a Actor) IsActive() bool {
	return a.active
}
