// Package http exposes the application's boundary operations over an echo
// server. Handlers stay thin: parse the request, build a command or query,
// dispatch, map domain errors to status codes. The actor's identity and role
// travel with the request; authentication is out of scope.
package http

import (
	"errors"
	"net/http"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/sequence"
	"fulfillment/internal/core/domain/model/task"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	generateNumberHandler  commands.GenerateNumberCommandHandler
	createOrderHandler     commands.CreateOrderCommandHandler
	confirmOrderHandler    commands.ConfirmOrderCommandHandler
	createItemTasksHandler commands.CreateItemTasksCommandHandler
	transitionTaskHandler  commands.TransitionTaskCommandHandler
	assignTaskHandler      commands.AssignTaskCommandHandler

	getBoardHandler queries.GetBoardQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	generateNumberHandler commands.GenerateNumberCommandHandler,
	createOrderHandler commands.CreateOrderCommandHandler,
	confirmOrderHandler commands.ConfirmOrderCommandHandler,
	createItemTasksHandler commands.CreateItemTasksCommandHandler,
	transitionTaskHandler commands.TransitionTaskCommandHandler,
	assignTaskHandler commands.AssignTaskCommandHandler,
	getBoardHandler queries.GetBoardQueryHandler,
) *Server {
	return &Server{
		generateNumberHandler:  generateNumberHandler,
		createOrderHandler:     createOrderHandler,
		confirmOrderHandler:    confirmOrderHandler,
		createItemTasksHandler: createItemTasksHandler,
		transitionTaskHandler:  transitionTaskHandler,
		assignTaskHandler:      assignTaskHandler,
		getBoardHandler:        getBoardHandler,
	}
}

// RegisterRoutes mounts all endpoints under /api/v1. Every route is tenant
// scoped through the path.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	v1 := e.Group("/api/v1/tenants/:tenantId")
	v1.POST("/numbers", s.GenerateNumber)
	v1.POST("/orders", s.CreateOrder)
	v1.POST("/orders/:orderId/confirm", s.ConfirmOrder)
	v1.POST("/items/:itemId/tasks", s.CreateItemTasks)
	v1.POST("/tasks/:taskId/transition", s.TransitionTask)
	v1.POST("/tasks/:taskId/assign", s.AssignTask)
	v1.GET("/board", s.GetBoard)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type generateNumberRequest struct {
	SequenceType string `json:"sequence_type"`
}

type generateNumberResponse struct {
	Number string `json:"number"`
}

// GenerateNumber handles POST /api/v1/tenants/:tenantId/numbers.
// Draws the next document number from the tenant's counter.
func (s *Server) GenerateNumber(ctx echo.Context) error {
	tenantID, err := parseID(ctx, "tenantId")
	if err != nil {
		return badRequest(ctx, "Invalid tenant id")
	}

	var req generateNumberRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	sequenceType, err := sequence.SequenceTypeFromString(req.SequenceType)
	if err != nil {
		return badRequest(ctx, "Unknown sequence type: "+req.SequenceType)
	}

	cmd, err := commands.NewGenerateNumberCommand(tenantID, sequenceType)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	number, err := s.generateNumberHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, generateNumberResponse{Number: number})
}

type createOrderRequest struct {
	Items []struct {
		Description string `json:"description"`
		Quantity    int    `json:"quantity"`
	} `json:"items"`
	TotalAmount string `json:"total_amount"`
}

type createOrderResponse struct {
	ID     string `json:"id"`
	Number string `json:"number"`
}

// CreateOrder handles POST /api/v1/tenants/:tenantId/orders.
// Creates the order, draws its number and generates the item task sets in one
// transaction.
func (s *Server) CreateOrder(ctx echo.Context) error {
	tenantID, err := parseID(ctx, "tenantId")
	if err != nil {
		return badRequest(ctx, "Invalid tenant id")
	}

	var req createOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	totalAmount, err := decimal.NewFromString(req.TotalAmount)
	if err != nil {
		return badRequest(ctx, "Invalid total amount: "+req.TotalAmount)
	}

	items := make([]commands.ItemSpec, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, commands.ItemSpec{
			Description: item.Description,
			Quantity:    item.Quantity,
		})
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(tenantID, orderID, items, totalAmount)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	number, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, createOrderResponse{
		ID:     orderID.String(),
		Number: number,
	})
}

// ConfirmOrder handles POST /api/v1/tenants/:tenantId/orders/:orderId/confirm.
// Confirms a draft order and runs the confirmation automation.
func (s *Server) ConfirmOrder(ctx echo.Context) error {
	tenantID, err := parseID(ctx, "tenantId")
	if err != nil {
		return badRequest(ctx, "Invalid tenant id")
	}

	orderID, err := parseID(ctx, "orderId")
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewConfirmOrderCommand(tenantID, orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.confirmOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type createItemTasksRequest struct {
	DueDate *time.Time `json:"due_date,omitempty"`
}

type createItemTasksResponse struct {
	Created int `json:"created"`
}

// CreateItemTasks handles POST /api/v1/tenants/:tenantId/items/:itemId/tasks.
// Generates the missing workflow tasks for an order item; safe to retry.
func (s *Server) CreateItemTasks(ctx echo.Context) error {
	tenantID, err := parseID(ctx, "tenantId")
	if err != nil {
		return badRequest(ctx, "Invalid tenant id")
	}

	itemID, err := parseID(ctx, "itemId")
	if err != nil {
		return badRequest(ctx, "Invalid item id")
	}

	var req createItemTasksRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCreateItemTasksCommand(tenantID, itemID, req.DueDate)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	created, err := s.createItemTasksHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, createItemTasksResponse{Created: created})
}

type transitionTaskRequest struct {
	Status  string `json:"status"`
	ActorID string `json:"actor_id"`
	Role    string `json:"role"`
	Notes   string `json:"notes,omitempty"`
}

// TransitionTask handles POST /api/v1/tenants/:tenantId/tasks/:taskId/transition.
// Moves a task to a new status on behalf of the requesting actor, applying the
// stage's gating rules.
func (s *Server) TransitionTask(ctx echo.Context) error {
	tenantID, err := parseID(ctx, "tenantId")
	if err != nil {
		return badRequest(ctx, "Invalid tenant id")
	}

	taskID, err := parseID(ctx, "taskId")
	if err != nil {
		return badRequest(ctx, "Invalid task id")
	}

	var req transitionTaskRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	targetStatus, err := task.StatusFromString(req.Status)
	if err != nil {
		return badRequest(ctx, "Unknown status: "+req.Status)
	}

	actor, err := parseActor(req.ActorID, req.Role)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewTransitionTaskCommand(tenantID, taskID, targetStatus, actor, req.Notes)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.transitionTaskHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type assignTaskRequest struct {
	AssigneeKind string `json:"assignee_kind"`
	AssigneeID   string `json:"assignee_id"`
}

// AssignTask handles POST /api/v1/tenants/:tenantId/tasks/:taskId/assign.
// Assigns the task to a user or an external worker.
func (s *Server) AssignTask(ctx echo.Context) error {
	tenantID, err := parseID(ctx, "tenantId")
	if err != nil {
		return badRequest(ctx, "Invalid tenant id")
	}

	taskID, err := parseID(ctx, "taskId")
	if err != nil {
		return badRequest(ctx, "Invalid task id")
	}

	var req assignTaskRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	assignee, err := parseAssignee(req.AssigneeKind, req.AssigneeID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewAssignTaskCommand(tenantID, taskID, assignee)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.assignTaskHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type boardTaskResponse struct {
	ID              string  `json:"id"`
	OrderID         string  `json:"order_id"`
	OrderNumber     string  `json:"order_number"`
	OrderItemID     *string `json:"order_item_id,omitempty"`
	ItemDescription string  `json:"item_description,omitempty"`
	Status          string  `json:"status"`
	AssigneeKind    string  `json:"assignee_kind"`
	AssigneeID      *string `json:"assignee_id,omitempty"`
}

type boardColumnResponse struct {
	StageID    string              `json:"stage_id"`
	StageName  string              `json:"stage_name"`
	StageCode  string              `json:"stage_code"`
	StageOrder int                 `json:"stage_order"`
	Tasks      []boardTaskResponse `json:"tasks"`
}

// GetBoard handles GET /api/v1/tenants/:tenantId/board.
// Optional query parameters: include_completed, assignee_id, order_id.
func (s *Server) GetBoard(ctx echo.Context) error {
	tenantID, err := parseID(ctx, "tenantId")
	if err != nil {
		return badRequest(ctx, "Invalid tenant id")
	}

	includeCompleted := ctx.QueryParam("include_completed") == "true"

	var assigneeID *kernel.UUID
	if raw := ctx.QueryParam("assignee_id"); raw != "" {
		id, parseErr := kernel.UUIDFromString(raw)
		if parseErr != nil {
			return badRequest(ctx, "Invalid assignee id")
		}
		assigneeID = &id
	}

	var orderID *kernel.UUID
	if raw := ctx.QueryParam("order_id"); raw != "" {
		id, parseErr := kernel.UUIDFromString(raw)
		if parseErr != nil {
			return badRequest(ctx, "Invalid order id")
		}
		orderID = &id
	}

	query, err := queries.NewGetBoardQuery(tenantID, includeCompleted, assigneeID, orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	columns, err := s.getBoardHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	response := make([]boardColumnResponse, 0, len(columns))
	for _, column := range columns {
		tasks := make([]boardTaskResponse, 0, len(column.Tasks))
		for _, card := range column.Tasks {
			tasks = append(tasks, buildBoardTaskResponse(card))
		}

		response = append(response, boardColumnResponse{
			StageID:    column.StageID.String(),
			StageName:  column.StageName,
			StageCode:  column.StageCode,
			StageOrder: column.StageOrder,
			Tasks:      tasks,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

func buildBoardTaskResponse(card queries.BoardTask) boardTaskResponse {
	resp := boardTaskResponse{
		ID:              card.ID.String(),
		OrderID:         card.OrderID.String(),
		OrderNumber:     card.OrderNumber,
		ItemDescription: card.ItemDescription,
		Status:          card.Status.String(),
		AssigneeKind:    card.AssigneeKind.String(),
	}

	if card.OrderItemID != nil {
		itemID := card.OrderItemID.String()
		resp.OrderItemID = &itemID
	}
	if card.AssigneeID != nil {
		assigneeID := card.AssigneeID.String()
		resp.AssigneeID = &assigneeID
	}

	return resp
}

func parseID(ctx echo.Context, param string) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param(param))
}

func parseActor(actorID, roleName string) (task.Actor, error) {
	role, err := task.RoleFromString(roleName)
	if err != nil {
		return task.Actor{}, err
	}
	if role == task.RoleSystem {
		return task.SystemActor(), nil
	}

	id, err := kernel.UUIDFromString(actorID)
	if err != nil {
		return task.Actor{}, err
	}

	return task.NewActor(id, role)
}

func parseAssignee(kind, id string) (task.Assignee, error) {
	if kind == "none" {
		return task.NoAssignee(), nil
	}

	assigneeID, err := kernel.UUIDFromString(id)
	if err != nil {
		return task.Assignee{}, err
	}

	switch kind {
	case "user":
		return task.AssignToUser(assigneeID)
	case "worker":
		return task.AssignToWorker(assigneeID)
	default:
		return task.Assignee{}, errs.NewValueIsInvalidError("assignee_kind must be user, worker or none")
	}
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, errorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// domainError maps failures from the application layer onto HTTP statuses.
// Gating violations are conflicts, permission checks are forbidden, lock
// timeouts ask the caller to retry.
func domainError(ctx echo.Context, err error) error {
	var status int
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrTransientLockTimeout):
		status = http.StatusServiceUnavailable
	case errors.Is(err, task.ErrPermissionDenied):
		status = http.StatusForbidden
	case errors.Is(err, task.ErrInvalidTransition),
		errors.Is(err, task.ErrPhotoRequired),
		errors.Is(err, task.ErrApprovalRequired):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		status = http.StatusUnprocessableEntity
	default:
		status = http.StatusInternalServerError
	}

	return ctx.JSON(status, errorResponse{
		Code:    status,
		Message: err.Error(),
	})
}
