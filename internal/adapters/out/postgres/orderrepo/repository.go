package orderrepo

import (
	"context"
	"errors"
	"fmt"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const uniqueViolation = "23505"

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts the header, line items and stage records. A taken code or id
// is reported as a StateConflictError.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if isUniqueViolation(err) {
			return errs.NewStateConflictErrorWithCause("order code "+dto.Code, "is already taken", err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the header and every stage record, guarded by the version
// the aggregate was loaded with. Stage rows are written in catalog order so
// the approved row is released before its successor becomes in_progress.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	result := db.Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
		Updates(map[string]any{
			"client_name":   dto.ClientName,
			"sales_channel": dto.SalesChannel,
			"due_date":      dto.DueDate,
			"status":        dto.Status,
			"current_stage": dto.CurrentStage,
			"version":       gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.missingOrStale(ctx, aggregate)
	}

	for _, s := range dto.Stages {
		res := db.Model(&StageRecordDTO{}).
			Where("order_id = ? AND stage = ?", s.OrderID, s.Stage).
			Updates(map[string]any{
				"status":           s.Status,
				"started_at":       s.StartedAt,
				"approved_at":      s.ApprovedAt,
				"approved_by":      s.ApprovedBy,
				"evidence_ref":     s.EvidenceRef,
				"evidence_history": s.EvidenceHistory,
				"notes":            s.Notes,
				"assigned_user":    s.AssignedUser,
				"assigned_by":      s.AssignedBy,
				"assigned_at":      s.AssignedAt,
			})
		if res.Error != nil {
			if isUniqueViolation(res.Error) {
				return errs.NewStateConflictErrorWithCause("order "+aggregate.ID().String(),
					"would have two stages in progress", res.Error)
			}
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errs.NewValueIsInvalidErrorWithCause("stages",
				fmt.Errorf("order %s has no %s record", aggregate.ID(), s.Stage))
		}
	}

	aggregate.SetStoredVersion(aggregate.Version() + 1)
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get loads an order without locking it.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.load(ctx, id, false)
}

// GetForUpdate locks the header row with SELECT ... FOR UPDATE. Children are
// read after the lock is held, so they reflect the last committed mutation.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.load(ctx, id, true)
}

func (r *GormOrderRepository) load(ctx context.Context, id kernel.UUID, lock bool) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx)
	header := db
	if lock {
		header = header.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var dto OrderDTO
	if err := header.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	if err := db.Where("order_id = ?", dto.ID).Order("position").Find(&dto.LineItems).Error; err != nil {
		return nil, err
	}
	if err := db.Where("order_id = ?", dto.ID).Order("position").Find(&dto.Stages).Error; err != nil {
		return nil, err
	}

	o, err := toDomain(dto)
	if err != nil {
		return nil, errs.NewCorruptRecordError("order", id.String(), err)
	}
	return o, nil
}

func (r *GormOrderRepository) missingOrStale(ctx context.Context, aggregate *order.Order) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", aggregate.ID().Bytes()).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}
	return errs.NewStateConflictError("order "+aggregate.ID().String(),
		fmt.Sprintf("was modified after version %d was read", aggregate.Version()))
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
