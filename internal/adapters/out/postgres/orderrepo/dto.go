// Package orderrepo persists order aggregates across three tables: the order
// header, its line items and its six stage records.
package orderrepo

import (
	"time"

	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/core/domain/model/stage"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// OrderDTO is the header row. Code is unique; Version is the optimistic lock.
type OrderDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Code         string     `gorm:"size:64;not null;uniqueIndex:ux_orders_code"`
	ClientName   string     `gorm:"size:200;not null"`
	SalesChannel string     `gorm:"size:32;not null"`
	OrderType    string     `gorm:"size:32;not null"`
	Quantity     int        `gorm:"not null"`
	DueDate      *time.Time `gorm:"type:date"`
	CreatedBy    uuid.UUID  `gorm:"type:uuid;not null"`
	CreatedAt    time.Time  `gorm:"not null;index:ix_orders_created_at"`
	Status       string     `gorm:"size:16;not null;index:ix_orders_status"`
	CurrentStage string     `gorm:"size:32;not null"`
	Version      int        `gorm:"not null;default:1"`

	LineItems []LineItemDTO    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Stages    []StageRecordDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// LineItemDTO is a product snapshot taken when the order was placed.
type LineItemDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	Position     int        `gorm:"not null"`
	ProductID    *uuid.UUID `gorm:"type:uuid"`
	ProductName  string     `gorm:"size:200;not null"`
	ImageRef     string     `gorm:"size:2048"`
	Category     string     `gorm:"size:100"`
	SKU          string     `gorm:"column:sku;size:100"`
	Units        int        `gorm:"not null"`
	LeadTimeDays int        `gorm:"not null"`
}

func (LineItemDTO) TableName() string {
	return "order_line_items"
}

// StageRecordDTO is keyed by (order_id, stage). Position mirrors the catalog
// order so rows sort without a lookup table.
type StageRecordDTO struct {
	OrderID         uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Stage           string         `gorm:"size:32;primaryKey"`
	Position        int            `gorm:"not null"`
	Status          string         `gorm:"size:16;not null"`
	StartedAt       *time.Time     `gorm:"type:timestamptz"`
	ApprovedAt      *time.Time     `gorm:"type:timestamptz"`
	ApprovedBy      *uuid.UUID     `gorm:"type:uuid"`
	EvidenceRef     string         `gorm:"type:text"`
	EvidenceHistory pq.StringArray `gorm:"type:text[]"`
	Notes           string         `gorm:"type:text"`
	AssignedUser    *uuid.UUID     `gorm:"type:uuid;index"`
	AssignedBy      *uuid.UUID     `gorm:"type:uuid"`
	AssignedAt      *time.Time     `gorm:"type:timestamptz"`
}

func (StageRecordDTO) TableName() string {
	return "order_stages"
}

func fromDomain(o *order.Order) OrderDTO {
	dto := OrderDTO{
		ID:           o.ID().Bytes(),
		Code:         o.Code().String(),
		ClientName:   o.ClientName(),
		SalesChannel: o.SalesChannel().String(),
		OrderType:    o.Type().String(),
		Quantity:     o.Quantity(),
		DueDate:      o.DueDate(),
		CreatedBy:    o.CreatedBy().Bytes(),
		CreatedAt:    o.CreatedAt(),
		Status:       o.Status().String(),
		CurrentStage: o.CurrentStage().String(),
		Version:      o.Version(),
	}

	for i, li := range o.LineItems() {
		snap := li.Snapshot()
		dto.LineItems = append(dto.LineItems, LineItemDTO{
			ID:           li.ID().Bytes(),
			OrderID:      dto.ID,
			Position:     i,
			ProductID:    optionalUUID(snap.ProductID),
			ProductName:  snap.ProductName,
			ImageRef:     snap.ImageRef,
			Category:     snap.Category,
			SKU:          snap.SKU,
			Units:        snap.Units,
			LeadTimeDays: snap.LeadTimeDays,
		})
	}

	for _, rec := range o.StageRecords() {
		dto.Stages = append(dto.Stages, stageFromDomain(dto.ID, rec.State()))
	}
	return dto
}

func stageFromDomain(orderID uuid.UUID, st order.StageRecordState) StageRecordDTO {
	history := pq.StringArray(st.EvidenceHistory)
	if history == nil {
		history = pq.StringArray{}
	}
	return StageRecordDTO{
		OrderID:         orderID,
		Stage:           st.Stage.String(),
		Position:        st.Stage.Index(),
		Status:          st.Status.String(),
		StartedAt:       st.StartedAt,
		ApprovedAt:      st.ApprovedAt,
		ApprovedBy:      optionalUUID(st.ApprovedBy),
		EvidenceRef:     st.EvidenceRef,
		EvidenceHistory: history,
		Notes:           st.Notes,
		AssignedUser:    optionalUUID(st.AssignedUser),
		AssignedBy:      optionalUUID(st.AssignedBy),
		AssignedAt:      st.AssignedAt,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	code, err := order.RestoreCode(dto.Code)
	if err != nil {
		return nil, err
	}
	channel, err := order.ParseSalesChannel(dto.SalesChannel)
	if err != nil {
		return nil, err
	}
	orderType, err := order.ParseType(dto.OrderType)
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	current, err := stage.Parse(dto.CurrentStage)
	if err != nil {
		return nil, err
	}
	createdBy, err := kernel.UUIDFromBytes(dto.CreatedBy[:])
	if err != nil {
		return nil, err
	}

	items := make([]order.LineItem, 0, len(dto.LineItems))
	for _, li := range dto.LineItems {
		item, err := lineItemToDomain(li)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	stages := make([]order.StageRecordState, 0, len(dto.Stages))
	for _, s := range dto.Stages {
		st, err := stageToDomain(s)
		if err != nil {
			return nil, err
		}
		stages = append(stages, st)
	}

	return order.RestoreOrder(order.State{
		ID:           id,
		Code:         code,
		ClientName:   dto.ClientName,
		SalesChannel: channel,
		Type:         orderType,
		Quantity:     dto.Quantity,
		DueDate:      utcDate(dto.DueDate),
		CreatedBy:    createdBy,
		CreatedAt:    dto.CreatedAt.UTC(),
		Status:       status,
		CurrentStage: current,
		LineItems:    items,
		Stages:       stages,
		Version:      dto.Version,
	})
}

func lineItemToDomain(dto LineItemDTO) (order.LineItem, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return order.LineItem{}, err
	}
	return order.RestoreLineItem(id, order.ProductSnapshot{
		ProductID:    fromOptionalUUID(dto.ProductID),
		ProductName:  dto.ProductName,
		ImageRef:     dto.ImageRef,
		Category:     dto.Category,
		SKU:          dto.SKU,
		Units:        dto.Units,
		LeadTimeDays: dto.LeadTimeDays,
	})
}

func stageToDomain(dto StageRecordDTO) (order.StageRecordState, error) {
	s, err := stage.Parse(dto.Stage)
	if err != nil {
		return order.StageRecordState{}, err
	}
	status, err := stage.ParseStatus(dto.Status)
	if err != nil {
		return order.StageRecordState{}, err
	}
	return order.StageRecordState{
		Stage:           s,
		Status:          status,
		StartedAt:       dto.StartedAt,
		ApprovedAt:      dto.ApprovedAt,
		ApprovedBy:      fromOptionalUUID(dto.ApprovedBy),
		EvidenceRef:     dto.EvidenceRef,
		EvidenceHistory: []string(dto.EvidenceHistory),
		Notes:           dto.Notes,
		AssignedUser:    fromOptionalUUID(dto.AssignedUser),
		AssignedBy:      fromOptionalUUID(dto.AssignedBy),
		AssignedAt:      dto.AssignedAt,
	}, nil
}

func optionalUUID(id kernel.UUID) *uuid.UUID {
	if id.IsZero() {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

// fromOptionalUUID maps NULL and the nil UUID to the zero kernel.UUID.
func fromOptionalUUID(id *uuid.UUID) kernel.UUID {
	if id == nil || *id == uuid.Nil {
		return kernel.UUID{}
	}
	u, _ := kernel.UUIDFrom(*id)
	return u
}

func utcDate(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &d
}
