// Package http exposes the custody engine over a REST API. It coordinates
// between HTTP handlers and application use cases, enforcing the role-based
// permission gate before any mutating operation reaches the engine.
package http

import (
	"errors"
	"net/http"

	"custody/internal/core/application/usecases/commands"
	"custody/internal/core/application/usecases/queries"
	"custody/internal/core/domain/model/item"
	"custody/internal/core/domain/model/kernel"
	"custody/internal/core/ports"
	"custody/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Actor identity and role travel in headers. Authentication itself happens
// upstream; the engine trusts the gateway-populated values.
const (
	HeaderActorID   = "X-Actor-Id"
	HeaderActorRole = "X-Actor-Role"
)

// Server handles HTTP requests for custody operations.
type Server struct {
	// Command handlers
	createItemHandler  commands.CreateItemCommandHandler
	receiveItemHandler commands.ReceiveItemCommandHandler
	forwardItemHandler commands.ForwardItemCommandHandler
	returnItemHandler  commands.ReturnItemCommandHandler
	archiveItemHandler commands.ArchiveItemCommandHandler

	// Query handlers
	listItemsHandler      queries.ListItemsQueryHandler
	getItemHistoryHandler queries.GetItemHistoryQueryHandler

	gate ports.PermissionGate
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createItemHandler commands.CreateItemCommandHandler,
	receiveItemHandler commands.ReceiveItemCommandHandler,
	forwardItemHandler commands.ForwardItemCommandHandler,
	returnItemHandler commands.ReturnItemCommandHandler,
	archiveItemHandler commands.ArchiveItemCommandHandler,
	listItemsHandler queries.ListItemsQueryHandler,
	getItemHistoryHandler queries.GetItemHistoryQueryHandler,
	gate ports.PermissionGate,
) *Server {
	return &Server{
		createItemHandler:     createItemHandler,
		receiveItemHandler:    receiveItemHandler,
		forwardItemHandler:    forwardItemHandler,
		returnItemHandler:     returnItemHandler,
		archiveItemHandler:    archiveItemHandler,
		listItemsHandler:      listItemsHandler,
		getItemHistoryHandler: getItemHistoryHandler,
		gate:                  gate,
	}
}

// RegisterRoutes attaches all custody endpoints to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/items", s.CreateItem)
	api.POST("/items/:id/receive", s.ReceiveItem)
	api.POST("/items/:id/forward", s.ForwardItem)
	api.POST("/items/:id/return", s.ReturnItem)
	api.POST("/items/:id/archive", s.ArchiveItem)

	api.GET("/items", s.ListItems)
	api.GET("/items/:id/history", s.GetItemHistory)
}

// CreateItem handles POST /api/v1/items - registers a new tracked item.
func (s *Server) CreateItem(ctx echo.Context) error {
	actorID, err := actorFromHeaders(ctx)
	if err != nil {
		return jsonError(ctx, http.StatusBadRequest, "Invalid or missing actor header")
	}
	if !s.gate.CanCreate(ctx.Request().Header.Get(HeaderActorRole)) {
		return jsonError(ctx, http.StatusForbidden, "Role is not allowed to create items")
	}

	var req CreateItemRequest
	if err := ctx.Bind(&req); err != nil {
		return jsonError(ctx, http.StatusBadRequest, "Invalid request body")
	}

	priority, err := item.PriorityFromString(req.Priority)
	if err != nil {
		return domainError(ctx, err)
	}

	cmd, err := commands.NewCreateItemCommand(
		req.Subject, req.Description, req.TypeID, req.ProjectID, priority, actorID)
	if err != nil {
		return domainError(ctx, err)
	}

	created, err := s.createItemHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, toItemResponse(created))
}

// ReceiveItem handles POST /api/v1/items/:id/receive - acknowledges custody.
func (s *Server) ReceiveItem(ctx echo.Context) error {
	actorID, itemID, ok := s.mutationPreamble(ctx)
	if !ok {
		return nil
	}

	cmd, err := commands.NewReceiveItemCommand(itemID, actorID)
	if err != nil {
		return domainError(ctx, err)
	}

	entry, err := s.receiveItemHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toMovementResponse(entry))
}

// ForwardItem handles POST /api/v1/items/:id/forward - hands the item to
// another actor.
func (s *Server) ForwardItem(ctx echo.Context) error {
	actorID, itemID, ok := s.mutationPreamble(ctx)
	if !ok {
		return nil
	}

	var req ForwardItemRequest
	if err := ctx.Bind(&req); err != nil {
		return jsonError(ctx, http.StatusBadRequest, "Invalid request body")
	}
	targetID, err := parseUUID("targetId", req.TargetID)
	if err != nil {
		return domainError(ctx, err)
	}

	cmd, err := commands.NewForwardItemCommand(itemID, actorID, targetID, req.Notes)
	if err != nil {
		return domainError(ctx, err)
	}

	entry, err := s.forwardItemHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toMovementResponse(entry))
}

// ReturnItem handles POST /api/v1/items/:id/return - sends the item back to
// the actor it most recently arrived from.
func (s *Server) ReturnItem(ctx echo.Context) error {
	actorID, itemID, ok := s.mutationPreamble(ctx)
	if !ok {
		return nil
	}

	var req ReturnItemRequest
	if err := ctx.Bind(&req); err != nil {
		return jsonError(ctx, http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := commands.NewReturnItemCommand(itemID, actorID, req.Notes)
	if err != nil {
		return domainError(ctx, err)
	}

	entry, err := s.returnItemHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toMovementResponse(entry))
}

// ArchiveItem handles POST /api/v1/items/:id/archive - moves the item into
// its terminal archived state.
func (s *Server) ArchiveItem(ctx echo.Context) error {
	actorID, itemID, ok := s.mutationPreamble(ctx)
	if !ok {
		return nil
	}

	var req ArchiveItemRequest
	if err := ctx.Bind(&req); err != nil {
		return jsonError(ctx, http.StatusBadRequest, "Invalid request body")
	}
	locationID, err := parseUUID("archiveLocationId", req.ArchiveLocationID)
	if err != nil {
		return domainError(ctx, err)
	}

	cmd, err := commands.NewArchiveItemCommand(
		itemID, actorID, locationID, req.PhysicalNote, req.AttachmentRef, req.Notes)
	if err != nil {
		return domainError(ctx, err)
	}

	entry, err := s.archiveItemHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toMovementResponse(entry))
}

// ListItems handles GET /api/v1/items - lists the actor's visible items with
// their custody categories. An optional category query parameter filters the
// listing; absence or "All" returns every visible category.
func (s *Server) ListItems(ctx echo.Context) error {
	actorID, err := actorFromHeaders(ctx)
	if err != nil {
		return jsonError(ctx, http.StatusBadRequest, "Invalid or missing actor header")
	}

	query, err := queries.NewListItemsQuery(actorID, ctx.QueryParam("category"))
	if err != nil {
		return domainError(ctx, err)
	}

	rows, err := s.listItemsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	response := make([]ItemResponse, len(rows))
	for i, row := range rows {
		response[i] = toListItemResponse(row)
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetItemHistory handles GET /api/v1/items/:id/history - returns the full
// movement ledger of an item, oldest first.
func (s *Server) GetItemHistory(ctx echo.Context) error {
	itemID, err := parseUUID("itemId", ctx.Param("id"))
	if err != nil {
		return domainError(ctx, err)
	}

	query, err := queries.NewGetItemHistoryQuery(itemID)
	if err != nil {
		return domainError(ctx, err)
	}

	rows, err := s.getItemHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	response := make([]HistoryEntryResponse, len(rows))
	for i, row := range rows {
		response[i] = toHistoryEntryResponse(row)
	}
	return ctx.JSON(http.StatusOK, response)
}

// mutationPreamble resolves the acting user and target item of a transfer
// endpoint and enforces the permission gate. When it reports false the error
// response has already been written and the caller must stop.
func (s *Server) mutationPreamble(ctx echo.Context) (kernel.UUID, kernel.UUID, bool) {
	actorID, err := actorFromHeaders(ctx)
	if err != nil {
		_ = jsonError(ctx, http.StatusBadRequest, "Invalid or missing actor header")
		return kernel.UUID{}, kernel.UUID{}, false
	}
	if !s.gate.CanUpdate(ctx.Request().Header.Get(HeaderActorRole)) {
		_ = jsonError(ctx, http.StatusForbidden, "Role is not allowed to modify items")
		return kernel.UUID{}, kernel.UUID{}, false
	}

	itemID, err := parseUUID("itemId", ctx.Param("id"))
	if err != nil {
		_ = domainError(ctx, err)
		return kernel.UUID{}, kernel.UUID{}, false
	}

	return actorID, itemID, true
}

func actorFromHeaders(ctx echo.Context) (kernel.UUID, error) {
	return parseUUID("actorId", ctx.Request().Header.Get(HeaderActorID))
}

// parseUUID folds malformed identifiers into the validation taxonomy so they
// surface as a 400, not an internal error.
func parseUUID(paramName string, raw string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(paramName, err)
	}
	return id, nil
}

func jsonError(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, Error{Code: code, Message: message})
}

// domainError translates engine errors into HTTP statuses. Validation failures
// map to 400, missing objects to 404, holder violations to 403, and state
// conflicts to 409. Anything unclassified is a 500.
func domainError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return jsonError(ctx, http.StatusBadRequest, err.Error())
	case errors.Is(err, errs.ErrObjectNotFound):
		return jsonError(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrNotAuthorized):
		return jsonError(ctx, http.StatusForbidden, err.Error())
	case errors.Is(err, errs.ErrAlreadyArchived),
		errors.Is(err, errs.ErrNoReturnTarget),
		errors.Is(err, errs.ErrVersionIsInvalid):
		return jsonError(ctx, http.StatusConflict, err.Error())
	default:
		return jsonError(ctx, http.StatusInternalServerError, "Internal server error")
	}
}
