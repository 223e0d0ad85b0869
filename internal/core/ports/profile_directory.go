package ports

import (
	"context"

	"production/internal/core/domain/model/identity"
	"production/internal/core/domain/model/kernel"
)

// ProfileDirectory resolves a user id issued by the identity provider into an
// Actor. Unknown users are an ObjectNotFoundError; an unreachable store is an
// ExternalDependencyError.
type ProfileDirectory interface {
	Lookup(ctx context.Context, userID kernel.UUID) (identity.Actor, error)
}
