// Package profilerepo reads user profiles mirrored from the identity provider.
package profilerepo

import (
	"context"
	"errors"

	"production/internal/core/domain/model/identity"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/stage"
	"production/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProfileDTO is one row of the profiles table. Stage is empty for users
// without a home stage.
type ProfileDTO struct {
	UserID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName string    `gorm:"size:200"`
	Role     string    `gorm:"size:32;not null"`
	Stage    string    `gorm:"size:32"`
	IsActive bool      `gorm:"not null;default:true"`
}

func (ProfileDTO) TableName() string {
	return "profiles"
}

// GormProfileDirectory implements ports.ProfileDirectory.
type GormProfileDirectory struct {
	db *gorm.DB
}

func NewGormProfileDirectory(db *gorm.DB) *GormProfileDirectory {
	return &GormProfileDirectory{db: db}
}

// Lookup returns ObjectNotFoundError for unknown users and CorruptRecordError
// for rows the domain rejects. Any other failure is an ExternalDependencyError.
func (d *GormProfileDirectory) Lookup(ctx context.Context, userID kernel.UUID) (identity.Actor, error) {
	if err := userID.Validate(); err != nil {
		return identity.Actor{}, err
	}

	var dto ProfileDTO
	if err := d.db.WithContext(ctx).First(&dto, "user_id = ?", userID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return identity.Actor{}, errs.NewObjectNotFoundError("profile", userID.String())
		}
		return identity.Actor{}, errs.NewExternalDependencyError("profile store", err)
	}
	actor, err := toDomain(dto)
	if err != nil {
		return identity.Actor{}, errs.NewCorruptRecordError("profile", userID.String(), err)
	}
	return actor, nil
}

func toDomain(dto ProfileDTO) (identity.Actor, error) {
	role, err := identity.ParseRole(dto.Role)
	if err != nil {
		return identity.Actor{}, err
	}
	home := stage.Unknown
	if dto.Stage != "" {
		if home, err = stage.Parse(dto.Stage); err != nil {
			return identity.Actor{}, err
		}
	}
	id, err := kernel.UUIDFrom(dto.UserID)
	if err != nil {
		return identity.Actor{}, err
	}
	return identity.NewActor(id, role, dto.FullName, home, dto.IsActive)
}
