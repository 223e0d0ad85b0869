package profilerepo

import (
	"context"

	"production/internal/core/domain/model/identity"
	"production/internal/core/domain/model/stage"

	"gorm.io/gorm/clause"
)

// Save seeds a profile row for the tests in profilerepo_test. Production rows
// are written by the identity provider's sync, never by this service.
func (d *GormProfileDirectory) Save(ctx context.Context, actor identity.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	dto := ProfileDTO{
		UserID:   actor.ID().Bytes(),
		FullName: actor.FullName(),
		Role:     actor.Role().String(),
		IsActive: actor.IsActive(),
	}
	if actor.HomeStage() != stage.Unknown {
		dto.Stage = actor.HomeStage().String()
	}
	return d.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&dto).Error
}
