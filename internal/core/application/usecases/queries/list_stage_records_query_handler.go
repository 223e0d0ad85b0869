package queries

import (
	"context"
	"errors"
	"time"

	"production/internal/core/domain/model/stage"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// ListStageRecordsQueryHandler lists the six stage records of an order in
// catalog order.
type ListStageRecordsQueryHandler struct {
	db *gorm.DB
}

func NewListStageRecordsQueryHandler(db *gorm.DB) ListStageRecordsQueryHandler {
	return ListStageRecordsQueryHandler{db: db}
}

func (h ListStageRecordsQueryHandler) Handle(
	ctx context.Context,
	query ListStageRecordsQuery,
) ([]StageRecordReadModel, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			s.stage,
			s.status,
			s.started_at,
			s.approved_at,
			s.approved_by,
			s.evidence_ref,
			s.evidence_history,
			s.notes,
			s.assigned_user,
			COALESCE(p.full_name, ''),
			s.assigned_by,
			s.assigned_at
		FROM order_stages s
		LEFT JOIN profiles p ON p.user_id = s.assigned_user
		WHERE s.order_id = ?
		ORDER BY s.position
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]StageRecordReadModel, 0, len(stage.All()))
	for rows.Next() {
		rec, err := scanStageRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	if len(records) == 0 {
		if err := ensureOrderExists(ctx, h.db, query.OrderID()); err != nil {
			return nil, err
		}
	}
	return records, nil
}

func scanStageRecord(rows rowScanner) (StageRecordReadModel, error) {
	var (
		rec                                StageRecordReadModel
		name, status                       string
		approvedBy, assignedUser, assignBy *uuid.UUID
		history                            pq.StringArray
	)
	if err := rows.Scan(
		&name,
		&status,
		&rec.StartedAt,
		&rec.ApprovedAt,
		&approvedBy,
		&rec.EvidenceRef,
		&history,
		&rec.Notes,
		&assignedUser,
		&rec.AssignedUserName,
		&assignBy,
		&rec.AssignedAt,
	); err != nil {
		return StageRecordReadModel{}, err
	}

	var stageErr, statusErr, approvedErr, assigneeErr, byErr error
	rec.Stage, stageErr = stage.Parse(name)
	rec.Status, statusErr = stage.ParseStatus(status)
	rec.ApprovedBy, approvedErr = optionalUUID(approvedBy)
	rec.AssignedUser, assigneeErr = optionalUUID(assignedUser)
	rec.AssignedBy, byErr = optionalUUID(assignBy)
	if err := errors.Join(stageErr, statusErr, approvedErr, assigneeErr, byErr); err != nil {
		return StageRecordReadModel{}, err
	}

	rec.EvidenceHistory = []string(history)
	if rec.EvidenceHistory == nil {
		rec.EvidenceHistory = []string{}
	}
	rec.StartedAt = utc(rec.StartedAt)
	rec.ApprovedAt = utc(rec.ApprovedAt)
	rec.AssignedAt = utc(rec.AssignedAt)
	return rec, nil
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
