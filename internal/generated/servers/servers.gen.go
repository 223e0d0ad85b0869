// Package servers provides primitives to interact with the openapi HTTP API.
//
// The file follows the layout oapi-codegen emits for echo servers. Running
// go generate (see generate.go) rebuilds it from api/openapi.yaml.
package servers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

const (
	UserHeaderScopes = "userHeader.Scopes"
)

// Defines values for ListOrdersParamsStatus.
const (
	ListOrdersParamsStatusActive    ListOrdersParamsStatus = "active"
	ListOrdersParamsStatusAll       ListOrdersParamsStatus = "all"
	ListOrdersParamsStatusCompleted ListOrdersParamsStatus = "completed"
)

// Defines values for NewOrderSalesChannel.
const (
	Institutional NewOrderSalesChannel = "institutional"
	Retail        NewOrderSalesChannel = "retail"
	Wholesale     NewOrderSalesChannel = "wholesale"
)

// Defines values for OrderOrderType.
const (
	Production OrderOrderType = "production"
	Sale       OrderOrderType = "sale"
)

// Defines values for OrderStatus.
const (
	Active    OrderStatus = "active"
	Completed OrderStatus = "completed"
)

// Defines values for StageRecordStatus.
const (
	Approved   StageRecordStatus = "approved"
	InProgress StageRecordStatus = "in_progress"
	Pending    StageRecordStatus = "pending"
)

// ApproveStageRequest defines model for ApproveStageRequest.
type ApproveStageRequest struct {
	QualityAcknowledged *bool `json:"qualityAcknowledged,omitempty"`
}

// ApproveStageResult defines model for ApproveStageResult.
type ApproveStageResult struct {
	Completed    bool      `json:"completed"`
	CurrentStage StageName `json:"currentStage"`
}

// AssignStageRequest defines model for AssignStageRequest.
type AssignStageRequest struct {
	// Assignee Omit or null to clear the assignment.
	Assignee *openapi_types.UUID `json:"assignee"`
}

// AttachEvidenceRequest defines model for AttachEvidenceRequest.
type AttachEvidenceRequest struct {
	EvidenceRef string  `json:"evidenceRef"`
	Notes       *string `json:"notes,omitempty"`
}

// LineItem defines model for LineItem.
type LineItem struct {
	Category     *string             `json:"category,omitempty"`
	Id           openapi_types.UUID  `json:"id"`
	ImageRef     *string             `json:"imageRef,omitempty"`
	LeadTimeDays int                 `json:"leadTimeDays"`
	ProductId    *openapi_types.UUID `json:"productId,omitempty"`
	ProductName  string              `json:"productName"`
	Sku          *string             `json:"sku,omitempty"`
	Units        int                 `json:"units"`
}

// NewLineItem defines model for NewLineItem.
type NewLineItem struct {
	Category     *string             `json:"category,omitempty"`
	ImageRef     *string             `json:"imageRef,omitempty"`
	LeadTimeDays int                 `json:"leadTimeDays"`
	ProductId    *openapi_types.UUID `json:"productId,omitempty"`
	ProductName  string              `json:"productName"`
	Sku          *string             `json:"sku,omitempty"`
	Units        int                 `json:"units"`
}

// NewOrder defines model for NewOrder.
type NewOrder struct {
	ClientName   string                `json:"clientName"`
	Code         *string               `json:"code,omitempty"`
	DueDate      *openapi_types.Date   `json:"dueDate,omitempty"`
	LineItems    []NewLineItem         `json:"lineItems"`
	SalesChannel *NewOrderSalesChannel `json:"salesChannel,omitempty"`
}

// NewOrderSalesChannel defines model for NewOrder.SalesChannel.
type NewOrderSalesChannel string

// Order defines model for Order.
type Order struct {
	ClientName       string              `json:"clientName"`
	Code             string              `json:"code"`
	CreatedAt        time.Time           `json:"createdAt"`
	CreatedBy        openapi_types.UUID  `json:"createdBy"`
	CurrentStage     StageName           `json:"currentStage"`
	DueDate          *openapi_types.Date `json:"dueDate,omitempty"`
	EstimatedDueDate time.Time           `json:"estimatedDueDate"`
	Id               openapi_types.UUID  `json:"id"`
	OrderType        OrderOrderType      `json:"orderType"`
	Quantity         int                 `json:"quantity"`
	SalesChannel     string              `json:"salesChannel"`
	Status           OrderStatus         `json:"status"`
	Version          int                 `json:"version"`
}

// OrderOrderType defines model for Order.OrderType.
type OrderOrderType string

// OrderStatus defines model for Order.Status.
type OrderStatus string

// Problem defines model for Problem.
type Problem struct {
	Detail   *string `json:"detail,omitempty"`
	Instance *string `json:"instance,omitempty"`
	Status   int     `json:"status"`
	Title    string  `json:"title"`
	Type     string  `json:"type"`
}

// SaveNotesRequest defines model for SaveNotesRequest.
type SaveNotesRequest struct {
	Notes string `json:"notes"`
}

// StageName defines model for StageName.
type StageName string

// StagePermission defines model for StagePermission.
type StagePermission struct {
	CanAct     bool      `json:"canAct"`
	CanApprove bool      `json:"canApprove"`
	CanAssign  bool      `json:"canAssign"`
	CanNotes   bool      `json:"canNotes"`
	CanUpload  bool      `json:"canUpload"`
	IsCurrent  bool      `json:"isCurrent"`
	Stage      StageName `json:"stage"`
}

// StageRecord defines model for StageRecord.
type StageRecord struct {
	ApprovedAt       *time.Time          `json:"approvedAt,omitempty"`
	ApprovedBy       *openapi_types.UUID `json:"approvedBy,omitempty"`
	AssignedAt       *time.Time          `json:"assignedAt,omitempty"`
	AssignedBy       *openapi_types.UUID `json:"assignedBy,omitempty"`
	AssignedUser     *openapi_types.UUID `json:"assignedUser,omitempty"`
	AssignedUserName *string             `json:"assignedUserName,omitempty"`
	EvidenceHistory  []string            `json:"evidenceHistory"`
	EvidenceRef      *string             `json:"evidenceRef,omitempty"`
	Label            string              `json:"label"`
	Notes            *string             `json:"notes,omitempty"`
	Stage            StageName           `json:"stage"`
	StartedAt        *time.Time          `json:"startedAt,omitempty"`
	Status           StageRecordStatus   `json:"status"`
}

// StageRecordStatus defines model for StageRecord.Status.
type StageRecordStatus string

// OrderId defines model for OrderId.
type OrderId = openapi_types.UUID

// Stage defines model for Stage.
type Stage = string

// ListOrdersParams defines parameters for ListOrders.
type ListOrdersParams struct {
	Status *ListOrdersParamsStatus `form:"status,omitempty" json:"status,omitempty"`
}

// ListOrdersParamsStatus defines parameters for ListOrders.
type ListOrdersParamsStatus string

// CreateOrderJSONRequestBody defines body for CreateOrder for application/json ContentType.
type CreateOrderJSONRequestBody = NewOrder

// ApproveStageJSONRequestBody defines body for ApproveStage for application/json ContentType.
type ApproveStageJSONRequestBody = ApproveStageRequest

// AssignStageJSONRequestBody defines body for AssignStage for application/json ContentType.
type AssignStageJSONRequestBody = AssignStageRequest

// AttachEvidenceJSONRequestBody defines body for AttachEvidence for application/json ContentType.
type AttachEvidenceJSONRequestBody = AttachEvidenceRequest

// SaveNotesJSONRequestBody defines body for SaveNotes for application/json ContentType.
type SaveNotesJSONRequestBody = SaveNotesRequest

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// List orders, newest first
	// (GET /orders)
	ListOrders(ctx echo.Context, params ListOrdersParams) error
	// Create an order with its line items
	// (POST /orders)
	CreateOrder(ctx echo.Context) error
	// Get an order header
	// (GET /orders/{orderId})
	GetOrder(ctx echo.Context, orderId OrderId) error
	// List the line items of an order
	// (GET /orders/{orderId}/items)
	ListLineItems(ctx echo.Context, orderId OrderId) error
	// What the caller may do on each stage
	// (GET /orders/{orderId}/permissions)
	GetStagePermissions(ctx echo.Context, orderId OrderId) error
	// List the six stage records of an order
	// (GET /orders/{orderId}/stages)
	ListStageRecords(ctx echo.Context, orderId OrderId) error
	// Approve the stage in progress and start the next one
	// (POST /orders/{orderId}/stages/{stage}/approve)
	ApproveStage(ctx echo.Context, orderId OrderId, stage Stage) error
	// Set or clear the user responsible for a stage
	// (PUT /orders/{orderId}/stages/{stage}/assignee)
	AssignStage(ctx echo.Context, orderId OrderId, stage Stage) error
	// Attach an already stored evidence reference
	// (PUT /orders/{orderId}/stages/{stage}/evidence)
	AttachEvidence(ctx echo.Context, orderId OrderId, stage Stage) error
	// Upload an evidence file and attach it
	// (POST /orders/{orderId}/stages/{stage}/evidence/upload)
	UploadEvidence(ctx echo.Context, orderId OrderId, stage Stage) error
	// Replace the notes of a stage
	// (PUT /orders/{orderId}/stages/{stage}/notes)
	SaveNotes(ctx echo.Context, orderId OrderId, stage Stage) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// ListOrders converts echo context to params.
func (w *ServerInterfaceWrapper) ListOrders(ctx echo.Context) error {
	var err error

	ctx.Set(UserHeaderScopes, []string{})

	// Parameter object where we will unmarshal all parameters from the context
	var params ListOrdersParams
	// ------------- Optional query parameter "status" -------------

	err = runtime.BindQueryParameter("form", true, false, "status", ctx.QueryParams(), &params.Status)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter status: %s", err))
	}

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.ListOrders(ctx, params)
	return err
}

// CreateOrder converts echo context to params.
func (w *ServerInterfaceWrapper) CreateOrder(ctx echo.Context) error {
	var err error

	ctx.Set(UserHeaderScopes, []string{})

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.CreateOrder(ctx)
	return err
}

// GetOrder converts echo context to params.
func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	var err error
	// ------------- Path parameter "orderId" -------------
	var orderId OrderId

	err = runtime.BindStyledParameterWithOptions("simple", "orderId", ctx.Param("orderId"), &orderId, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter orderId: %s", err))
	}

	ctx.Set(UserHeaderScopes, []string{})

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.GetOrder(ctx, orderId)
	return err
}

// ListLineItems converts echo context to params.
func (w *ServerInterfaceWrapper) ListLineItems(ctx echo.Context) error {
	var err error
	// ------------- Path parameter "orderId" -------------
	var orderId OrderId

	err = runtime.BindStyledParameterWithOptions("simple", "orderId", ctx.Param("orderId"), &orderId, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter orderId: %s", err))
	}

	ctx.Set(UserHeaderScopes, []string{})

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.ListLineItems(ctx, orderId)
	return err
}

// GetStagePermissions converts echo context to params.
func (w *ServerInterfaceWrapper) GetStagePermissions(ctx echo.Context) error {
	var err error
	// ------------- Path parameter "orderId" -------------
	var orderId OrderId

	err = runtime.BindStyledParameterWithOptions("simple", "orderId", ctx.Param("orderId"), &orderId, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter orderId: %s", err))
	}

	ctx.Set(UserHeaderScopes, []string{})

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.GetStagePermissions(ctx, orderId)
	return err
}

// ListStageRecords converts echo context to params.
func (w *ServerInterfaceWrapper) ListStageRecords(ctx echo.Context) error {
	var err error
	// ------------- Path parameter "orderId" -------------
	var orderId OrderId

	err = runtime.BindStyledParameterWithOptions("simple", "orderId", ctx.Param("orderId"), &orderId, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter orderId: %s", err))
	}

	ctx.Set(UserHeaderScopes, []string{})

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.ListStageRecords(ctx, orderId)
	return err
}

// bindStagePath binds the orderId and stage path parameters shared by the stage routes.
func bindStagePath(ctx echo.Context) (OrderId, Stage, error) {
	var orderId OrderId
	var stage Stage

	err := runtime.BindStyledParameterWithOptions("simple", "orderId", ctx.Param("orderId"), &orderId, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return orderId, stage, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter orderId: %s", err))
	}

	err = runtime.BindStyledParameterWithOptions("simple", "stage", ctx.Param("stage"), &stage, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return orderId, stage, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter stage: %s", err))
	}

	ctx.Set(UserHeaderScopes, []string{})
	return orderId, stage, nil
}

// ApproveStage converts echo context to params.
func (w *ServerInterfaceWrapper) ApproveStage(ctx echo.Context) error {
	orderId, stage, err := bindStagePath(ctx)
	if err != nil {
		return err
	}
	return w.Handler.ApproveStage(ctx, orderId, stage)
}

// AssignStage converts echo context to params.
func (w *ServerInterfaceWrapper) AssignStage(ctx echo.Context) error {
	orderId, stage, err := bindStagePath(ctx)
	if err != nil {
		return err
	}
	return w.Handler.AssignStage(ctx, orderId, stage)
}

// AttachEvidence converts echo context to params.
func (w *ServerInterfaceWrapper) AttachEvidence(ctx echo.Context) error {
	orderId, stage, err := bindStagePath(ctx)
	if err != nil {
		return err
	}
	return w.Handler.AttachEvidence(ctx, orderId, stage)
}

// UploadEvidence converts echo context to params.
func (w *ServerInterfaceWrapper) UploadEvidence(ctx echo.Context) error {
	orderId, stage, err := bindStagePath(ctx)
	if err != nil {
		return err
	}
	return w.Handler.UploadEvidence(ctx, orderId, stage)
}

// SaveNotes converts echo context to params.
func (w *ServerInterfaceWrapper) SaveNotes(ctx echo.Context) error {
	orderId, stage, err := bindStagePath(ctx)
	if err != nil {
		return err
	}
	return w.Handler.SaveNotes(ctx, orderId, stage)
}

// EchoRouter is a simple interface which specifies echo.Route addition functions which
// are present on both echo.Echo and echo.Group, since we want to allow using
// either of them for path registration
type EchoRouter interface {
	CONNECT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	HEAD(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	OPTIONS(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	TRACE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// Registers handlers, and prepends BaseURL to the paths, so that the paths
// can be served under a prefix.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {

	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.GET(baseURL+"/orders", wrapper.ListOrders)
	router.POST(baseURL+"/orders", wrapper.CreateOrder)
	router.GET(baseURL+"/orders/:orderId", wrapper.GetOrder)
	router.GET(baseURL+"/orders/:orderId/items", wrapper.ListLineItems)
	router.GET(baseURL+"/orders/:orderId/permissions", wrapper.GetStagePermissions)
	router.GET(baseURL+"/orders/:orderId/stages", wrapper.ListStageRecords)
	router.POST(baseURL+"/orders/:orderId/stages/:stage/approve", wrapper.ApproveStage)
	router.PUT(baseURL+"/orders/:orderId/stages/:stage/assignee", wrapper.AssignStage)
	router.PUT(baseURL+"/orders/:orderId/stages/:stage/evidence", wrapper.AttachEvidence)
	router.POST(baseURL+"/orders/:orderId/stages/:stage/evidence/upload", wrapper.UploadEvidence)
	router.PUT(baseURL+"/orders/:orderId/stages/:stage/notes", wrapper.SaveNotes)

}
