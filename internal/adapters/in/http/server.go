package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"production/internal/core/application/usecases/commands"
	"production/internal/core/application/usecases/queries"
	"production/internal/core/domain/model/identity"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/order"
	"production/internal/core/domain/model/stage"
	"production/internal/generated/servers"

	"github.com/labstack/echo/v4"
)

// Command and query handlers as the server uses them. The concrete handlers
// from the use case packages satisfy these.
type (
	CreateOrderHandler interface {
		Handle(ctx context.Context, cmd commands.CreateOrderCommand) (*order.Order, error)
	}
	AssignStageHandler interface {
		Handle(ctx context.Context, cmd commands.AssignStageCommand) (order.StageRecordState, error)
	}
	AttachEvidenceHandler interface {
		Handle(ctx context.Context, cmd commands.AttachEvidenceCommand) (order.StageRecordState, error)
	}
	UploadEvidenceHandler interface {
		Handle(ctx context.Context, cmd commands.UploadEvidenceCommand) (order.StageRecordState, error)
	}
	SaveNotesHandler interface {
		Handle(ctx context.Context, cmd commands.SaveNotesCommand) (order.StageRecordState, error)
	}
	ApproveStageHandler interface {
		Handle(ctx context.Context, cmd commands.ApproveStageCommand) (commands.ApproveStageResult, error)
	}
	GetOrderHandler interface {
		Handle(ctx context.Context, q queries.GetOrderQuery) (queries.OrderReadModel, error)
	}
	ListOrdersHandler interface {
		Handle(ctx context.Context, q queries.ListOrdersQuery) ([]queries.OrderReadModel, error)
	}
	ListLineItemsHandler interface {
		Handle(ctx context.Context, q queries.ListLineItemsQuery) ([]queries.LineItemReadModel, error)
	}
	ListStageRecordsHandler interface {
		Handle(ctx context.Context, q queries.ListStageRecordsQuery) ([]queries.StageRecordReadModel, error)
	}
	GetStagePermissionsHandler interface {
		Handle(ctx context.Context, q queries.GetStagePermissionsQuery) ([]queries.StagePermission, error)
	}
)

// Handlers groups every use case the API exposes.
type Handlers struct {
	CreateOrder    CreateOrderHandler
	AssignStage    AssignStageHandler
	AttachEvidence AttachEvidenceHandler
	UploadEvidence UploadEvidenceHandler
	SaveNotes      SaveNotesHandler
	ApproveStage   ApproveStageHandler

	GetOrder            GetOrderHandler
	ListOrders          ListOrdersHandler
	ListLineItems       ListLineItemsHandler
	ListStageRecords    ListStageRecordsHandler
	GetStagePermissions GetStagePermissionsHandler
}

// Server implements servers.ServerInterface on top of the use case handlers.
// Every route under /api/v1 runs behind the actor middleware, so handlers can
// rely on an actor being present.
type Server struct {
	h Handlers
}

var _ servers.ServerInterface = (*Server)(nil)

func NewServer(h Handlers) *Server {
	return &Server{h: h}
}

// ListOrders handles GET /api/v1/orders.
func (s *Server) ListOrders(ctx echo.Context, params servers.ListOrdersParams) error {
	var raw string
	if params.Status != nil {
		raw = string(*params.Status)
	}
	filter, err := queries.ParseStatusFilter(raw)
	if err != nil {
		return err
	}
	q, err := queries.NewListOrdersQuery(filter)
	if err != nil {
		return err
	}

	list, err := s.h.ListOrders.Handle(ctx.Request().Context(), q)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toOrders(list))
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body servers.CreateOrderJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return err
	}
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}

	channel, err := order.ParseSalesChannel(stringValue((*string)(body.SalesChannel)))
	if err != nil {
		return err
	}
	var due *time.Time
	if body.DueDate != nil {
		d := body.DueDate.Time
		due = &d
	}
	items, err := toSnapshots(body.LineItems)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCreateOrderCommand(actor, body.ClientName, channel, due, stringValue(body.Code), items)
	if err != nil {
		return err
	}
	o, err := s.h.CreateOrder.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, toOrderFromAggregate(o))
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context, orderID servers.OrderId) error {
	id, err := orderIDFrom(orderID)
	if err != nil {
		return err
	}
	q, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return err
	}
	m, err := s.h.GetOrder.Handle(ctx.Request().Context(), q)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toOrder(m))
}

// ListLineItems handles GET /api/v1/orders/{orderId}/items.
func (s *Server) ListLineItems(ctx echo.Context, orderID servers.OrderId) error {
	id, err := orderIDFrom(orderID)
	if err != nil {
		return err
	}
	q, err := queries.NewListLineItemsQuery(id)
	if err != nil {
		return err
	}
	items, err := s.h.ListLineItems.Handle(ctx.Request().Context(), q)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toLineItems(items))
}

// ListStageRecords handles GET /api/v1/orders/{orderId}/stages.
func (s *Server) ListStageRecords(ctx echo.Context, orderID servers.OrderId) error {
	id, err := orderIDFrom(orderID)
	if err != nil {
		return err
	}
	q, err := queries.NewListStageRecordsQuery(id)
	if err != nil {
		return err
	}
	records, err := s.h.ListStageRecords.Handle(ctx.Request().Context(), q)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toStageRecords(records))
}

// GetStagePermissions handles GET /api/v1/orders/{orderId}/permissions.
func (s *Server) GetStagePermissions(ctx echo.Context, orderID servers.OrderId) error {
	id, err := orderIDFrom(orderID)
	if err != nil {
		return err
	}
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}
	q, err := queries.NewGetStagePermissionsQuery(id, actor)
	if err != nil {
		return err
	}
	perms, err := s.h.GetStagePermissions.Handle(ctx.Request().Context(), q)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toPermissions(perms))
}

// AssignStage handles PUT /api/v1/orders/{orderId}/stages/{stage}/assignee.
func (s *Server) AssignStage(ctx echo.Context, orderID servers.OrderId, stageName servers.Stage) error {
	target, err := s.stageTarget(ctx, orderID, stageName)
	if err != nil {
		return err
	}
	var body servers.AssignStageJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return err
	}

	var assignee *kernel.UUID
	if body.Assignee != nil {
		id, err := kernel.UUIDFrom(*body.Assignee)
		if err != nil {
			return err
		}
		assignee = &id
	}

	cmd, err := commands.NewAssignStageCommand(target.orderID, target.stage, assignee, target.actor)
	if err != nil {
		return err
	}
	st, err := s.h.AssignStage.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toStageRecordFromState(st))
}

// AttachEvidence handles PUT /api/v1/orders/{orderId}/stages/{stage}/evidence.
func (s *Server) AttachEvidence(ctx echo.Context, orderID servers.OrderId, stageName servers.Stage) error {
	target, err := s.stageTarget(ctx, orderID, stageName)
	if err != nil {
		return err
	}
	var body servers.AttachEvidenceJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return err
	}

	cmd, err := commands.NewAttachEvidenceCommand(target.orderID, target.stage, body.EvidenceRef, body.Notes, target.actor)
	if err != nil {
		return err
	}
	st, err := s.h.AttachEvidence.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toStageRecordFromState(st))
}

// UploadEvidence handles POST /api/v1/orders/{orderId}/stages/{stage}/evidence/upload.
func (s *Server) UploadEvidence(ctx echo.Context, orderID servers.OrderId, stageName servers.Stage) error {
	target, err := s.stageTarget(ctx, orderID, stageName)
	if err != nil {
		return err
	}

	fh, err := ctx.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "multipart field file is required")
	}
	file, err := fh.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	var notes *string
	if v := ctx.FormValue("notes"); strings.TrimSpace(v) != "" {
		notes = &v
	}

	cmd, err := commands.NewUploadEvidenceCommand(
		target.orderID,
		target.stage,
		fh.Filename,
		fh.Header.Get(echo.HeaderContentType),
		file,
		notes,
		target.actor,
	)
	if err != nil {
		return err
	}
	st, err := s.h.UploadEvidence.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toStageRecordFromState(st))
}

// SaveNotes handles PUT /api/v1/orders/{orderId}/stages/{stage}/notes.
func (s *Server) SaveNotes(ctx echo.Context, orderID servers.OrderId, stageName servers.Stage) error {
	target, err := s.stageTarget(ctx, orderID, stageName)
	if err != nil {
		return err
	}
	var body servers.SaveNotesJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return err
	}

	cmd, err := commands.NewSaveNotesCommand(target.orderID, target.stage, body.Notes, target.actor)
	if err != nil {
		return err
	}
	st, err := s.h.SaveNotes.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, toStageRecordFromState(st))
}

// ApproveStage handles POST /api/v1/orders/{orderId}/stages/{stage}/approve.
// The body is optional; it only matters for the quality review stage.
func (s *Server) ApproveStage(ctx echo.Context, orderID servers.OrderId, stageName servers.Stage) error {
	target, err := s.stageTarget(ctx, orderID, stageName)
	if err != nil {
		return err
	}
	var body servers.ApproveStageJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return err
	}
	acknowledged := body.QualityAcknowledged != nil && *body.QualityAcknowledged

	cmd, err := commands.NewApproveStageCommand(target.orderID, target.stage, acknowledged, target.actor)
	if err != nil {
		return err
	}
	res, err := s.h.ApproveStage.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, servers.ApproveStageResult{
		CurrentStage: servers.StageName(res.CurrentStage.String()),
		Completed:    res.Completed,
	})
}

type stageTarget struct {
	orderID kernel.UUID
	stage   stage.Stage
	actor   identity.Actor
}

func (s *Server) stageTarget(ctx echo.Context, orderID servers.OrderId, stageName servers.Stage) (stageTarget, error) {
	id, err := orderIDFrom(orderID)
	if err != nil {
		return stageTarget{}, err
	}
	st, err := stage.Parse(stageName)
	if err != nil {
		return stageTarget{}, err
	}
	actor, err := actorFrom(ctx)
	if err != nil {
		return stageTarget{}, err
	}
	return stageTarget{orderID: id, stage: st, actor: actor}, nil
}

func orderIDFrom(raw servers.OrderId) (kernel.UUID, error) {
	return kernel.UUIDFrom(raw)
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
