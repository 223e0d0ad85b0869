package http

import (
	"time"

	"production/internal/core/application/usecases/queries"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/generated/servers"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

func toOrder(m queries.OrderReadModel) servers.Order {
	return servers.Order{
		Id:               m.ID.Bytes(),
		Code:             m.Code,
		ClientName:       m.ClientName,
		SalesChannel:     m.SalesChannel.String(),
		OrderType:        servers.OrderOrderType(m.Type.String()),
		Quantity:         m.Quantity,
		DueDate:          toDate(m.DueDate),
		EstimatedDueDate: m.EstimatedDueDate,
		CreatedBy:        m.CreatedBy.Bytes(),
		CreatedAt:        m.CreatedAt,
		Status:           servers.OrderStatus(m.Status.String()),
		CurrentStage:     servers.StageName(m.CurrentStage.String()),
		Version:          m.Version,
	}
}

func toOrders(list []queries.OrderReadModel) []servers.Order {
	out := make([]servers.Order, 0, len(list))
	for _, m := range list {
		out = append(out, toOrder(m))
	}
	return out
}

// toOrderFromAggregate renders a freshly created order without a read back.
func toOrderFromAggregate(o *order.Order) servers.Order {
	return servers.Order{
		Id:               o.ID().Bytes(),
		Code:             o.Code().String(),
		ClientName:       o.ClientName(),
		SalesChannel:     o.SalesChannel().String(),
		OrderType:        servers.OrderOrderType(o.Type().String()),
		Quantity:         o.Quantity(),
		DueDate:          toDate(o.DueDate()),
		EstimatedDueDate: o.EstimatedDueDate(),
		CreatedBy:        o.CreatedBy().Bytes(),
		CreatedAt:        o.CreatedAt(),
		Status:           servers.OrderStatus(o.Status().String()),
		CurrentStage:     servers.StageName(o.CurrentStage().String()),
		Version:          o.Version(),
	}
}

func toLineItems(items []queries.LineItemReadModel) []servers.LineItem {
	out := make([]servers.LineItem, 0, len(items))
	for _, li := range items {
		out = append(out, servers.LineItem{
			Id:           li.ID.Bytes(),
			ProductId:    optionalUUID(li.ProductID),
			ProductName:  li.ProductName,
			ImageRef:     optionalString(li.ImageRef),
			Category:     optionalString(li.Category),
			Sku:          optionalString(li.SKU),
			Units:        li.Units,
			LeadTimeDays: li.LeadTimeDays,
		})
	}
	return out
}

func toStageRecords(records []queries.StageRecordReadModel) []servers.StageRecord {
	out := make([]servers.StageRecord, 0, len(records))
	for _, r := range records {
		out = append(out, servers.StageRecord{
			Stage:            servers.StageName(r.Stage.String()),
			Label:            r.Stage.Label(),
			Status:           servers.StageRecordStatus(r.Status.String()),
			StartedAt:        r.StartedAt,
			ApprovedAt:       r.ApprovedAt,
			ApprovedBy:       optionalUUID(r.ApprovedBy),
			EvidenceRef:      optionalString(r.EvidenceRef),
			EvidenceHistory:  nonNil(r.EvidenceHistory),
			Notes:            optionalString(r.Notes),
			AssignedUser:     optionalUUID(r.AssignedUser),
			AssignedUserName: optionalString(r.AssignedUserName),
			AssignedBy:       optionalUUID(r.AssignedBy),
			AssignedAt:       r.AssignedAt,
		})
	}
	return out
}

// toStageRecordFromState renders the record a command returned. The
// assignee name is not known here; clients reload the stage list for it.
func toStageRecordFromState(st order.StageRecordState) servers.StageRecord {
	return servers.StageRecord{
		Stage:           servers.StageName(st.Stage.String()),
		Label:           st.Stage.Label(),
		Status:          servers.StageRecordStatus(st.Status.String()),
		StartedAt:       st.StartedAt,
		ApprovedAt:      st.ApprovedAt,
		ApprovedBy:      zeroableUUID(st.ApprovedBy),
		EvidenceRef:     optionalString(st.EvidenceRef),
		EvidenceHistory: nonNil(st.EvidenceHistory),
		Notes:           optionalString(st.Notes),
		AssignedUser:    zeroableUUID(st.AssignedUser),
		AssignedBy:      zeroableUUID(st.AssignedBy),
		AssignedAt:      st.AssignedAt,
	}
}

func toPermissions(perms []queries.StagePermission) []servers.StagePermission {
	out := make([]servers.StagePermission, 0, len(perms))
	for _, p := range perms {
		out = append(out, servers.StagePermission{
			Stage:      servers.StageName(p.Stage.String()),
			IsCurrent:  p.IsCurrent,
			CanAct:     p.CanAct,
			CanUpload:  p.CanUpload,
			CanApprove: p.CanApprove,
			CanAssign:  p.CanAssign,
			CanNotes:   p.CanNotes,
		})
	}
	return out
}

func toSnapshots(items []servers.NewLineItem) ([]order.ProductSnapshot, error) {
	out := make([]order.ProductSnapshot, 0, len(items))
	for _, li := range items {
		snap := order.ProductSnapshot{
			ProductName:  li.ProductName,
			ImageRef:     stringValue(li.ImageRef),
			Category:     stringValue(li.Category),
			SKU:          stringValue(li.Sku),
			Units:        li.Units,
			LeadTimeDays: li.LeadTimeDays,
		}
		if li.ProductId != nil {
			id, err := kernel.UUIDFrom(*li.ProductId)
			if err != nil {
				return nil, err
			}
			snap.ProductID = id
		}
		out = append(out, snap)
	}
	return out, nil
}

func toDate(t *time.Time) *openapi_types.Date {
	if t == nil {
		return nil
	}
	return &openapi_types.Date{Time: *t}
}

func optionalUUID(id *kernel.UUID) *openapi_types.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func zeroableUUID(id kernel.UUID) *openapi_types.UUID {
	if id.IsZero() {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
