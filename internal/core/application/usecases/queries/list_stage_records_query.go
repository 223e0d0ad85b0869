package queries

import (
	"errors"
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/stage"
	"production/internal/pkg/errs"
	"production/internal/pkg/guard"
)

var ErrListStageRecordsQueryIsNotConstructed = errors.New(
	"ListStageRecordsQuery must be created via NewListStageRecordsQuery constructor",
)

type ListStageRecordsQuery struct {
	orderID kernel.UUID
	guard   guard.ConstructorGuard
}

func NewListStageRecordsQuery(orderID kernel.UUID) (ListStageRecordsQuery, error) {
	if orderID.IsZero() {
		return ListStageRecordsQuery{}, errs.NewValueIsRequiredError("orderID")
	}
	return ListStageRecordsQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q ListStageRecordsQuery) Validate() error {
	return q.guard.Validate(ErrListStageRecordsQueryIsNotConstructed)
}

func (q ListStageRecordsQuery) OrderID() kernel.UUID {
	return q.orderID
}

// StageRecordReadModel is one stage of an order. AssignedUserName comes from
// the profile mirror and is empty when the profile is unknown.
type StageRecordReadModel struct {
	Stage            stage.Stage
	Status           stage.Status
	StartedAt        *time.Time
	ApprovedAt       *time.Time
	ApprovedBy       *kernel.UUID
	EvidenceRef      string
	EvidenceHistory  []string
	Notes            string
	AssignedUser     *kernel.UUID
	AssignedUserName string
	AssignedBy       *kernel.UUID
	AssignedAt       *time.Time
}
