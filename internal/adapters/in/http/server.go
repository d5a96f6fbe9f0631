// Package http exposes the fulfillment use cases over a JSON API.
// Customer endpoints act on the caller's own orders; admin endpoints resolve
// requests and manage delivery routes.
package http

import (
	"net/http"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	submitCancellationHandler  commands.SubmitCancellationCommandHandler
	resolveCancellationHandler commands.ResolveCancellationCommandHandler
	submitReturnHandler        commands.SubmitReturnCommandHandler
	resolveReturnHandler       commands.ResolveReturnCommandHandler
	executeAssignmentHandler   commands.ExecuteRouteAssignmentCommandHandler
	setRouteStatusHandler      commands.SetRouteStatusCommandHandler
	deleteRouteHandler         commands.DeleteRouteCommandHandler
	refundOrderHandler         commands.RefundOrderCommandHandler

	// Query handlers
	previewAssignmentHandler queries.PreviewRouteAssignmentQueryHandler
	pendingRequestsHandler   queries.GetPendingRequestsQueryHandler
}

// NewServer creates the HTTP server with the required command and query
// handlers.
func NewServer(
	submitCancellationHandler commands.SubmitCancellationCommandHandler,
	resolveCancellationHandler commands.ResolveCancellationCommandHandler,
	submitReturnHandler commands.SubmitReturnCommandHandler,
	resolveReturnHandler commands.ResolveReturnCommandHandler,
	executeAssignmentHandler commands.ExecuteRouteAssignmentCommandHandler,
	setRouteStatusHandler commands.SetRouteStatusCommandHandler,
	deleteRouteHandler commands.DeleteRouteCommandHandler,
	refundOrderHandler commands.RefundOrderCommandHandler,
	previewAssignmentHandler queries.PreviewRouteAssignmentQueryHandler,
	pendingRequestsHandler queries.GetPendingRequestsQueryHandler,
) *Server {
	return &Server{
		submitCancellationHandler:  submitCancellationHandler,
		resolveCancellationHandler: resolveCancellationHandler,
		submitReturnHandler:        submitReturnHandler,
		resolveReturnHandler:       resolveReturnHandler,
		executeAssignmentHandler:   executeAssignmentHandler,
		setRouteStatusHandler:      setRouteStatusHandler,
		deleteRouteHandler:         deleteRouteHandler,
		refundOrderHandler:         refundOrderHandler,
		previewAssignmentHandler:   previewAssignmentHandler,
		pendingRequestsHandler:     pendingRequestsHandler,
	}
}

// RegisterRoutes wires all endpoints under /api/v1 behind the bearer-token
// middleware. Admin-only endpoints additionally require the admin role.
func (s *Server) RegisterRoutes(e *echo.Echo, auth Auth) {
	api := e.Group("/api/v1", auth.Authenticate)

	api.POST("/orders/:id/cancellation", s.SubmitCancellation)
	api.POST("/orders/:id/return", s.SubmitReturn)

	api.POST("/orders/:id/cancellation/resolution", s.ResolveCancellation, RequireAdmin)
	api.POST("/orders/:id/return/resolution", s.ResolveReturn, RequireAdmin)
	api.POST("/orders/:id/refund", s.RefundOrder, RequireAdmin)

	api.GET("/routes/assignment/preview", s.PreviewRouteAssignment, RequireAdmin)
	api.POST("/routes/assignment", s.ExecuteRouteAssignment, RequireAdmin)
	api.PUT("/routes/:id/status", s.SetRouteStatus, RequireAdmin)
	api.DELETE("/routes/:id", s.DeleteRoute, RequireAdmin)

	api.GET("/requests/pending", s.GetPendingRequests, RequireAdmin)
}

// SubmitCancellation handles POST /api/v1/orders/:id/cancellation. An
// unrouted order is cancelled on the spot; a routed one becomes a pending
// request.
func (s *Server) SubmitCancellation(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}

	var request SubmitCancellationRequest
	if err = bind(ctx, &request); err != nil {
		return err
	}

	cmd, err := commands.NewSubmitCancellationCommand(
		orderID, userIDFromContext(ctx), actorFromContext(ctx), request.Reason,
	)
	if err != nil {
		return badRequest(ctx, err)
	}

	result, err := s.submitCancellationHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, SubmitCancellationResponse{
		Outcome: result.Outcome.String(),
		OrderID: orderID.String(),
		Status:  result.Status.String(),
	})
}

// ResolveCancellation handles POST /api/v1/orders/:id/cancellation/resolution.
func (s *Server) ResolveCancellation(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}

	var request ResolveRequest
	if err = bind(ctx, &request); err != nil {
		return err
	}

	resolution, err := commands.ResolutionFromString(request.Resolution)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewResolveCancellationCommand(orderID, resolution, request.Note)
	if err != nil {
		return badRequest(ctx, err)
	}

	status, err := s.resolveCancellationHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, ResolutionResponse{
		OrderID: orderID.String(),
		Status:  status.String(),
	})
}

// SubmitReturn handles POST /api/v1/orders/:id/return. Only the order's
// owner may ask for a return, and only within the return window.
func (s *Server) SubmitReturn(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}

	var request SubmitReturnRequest
	if err = bind(ctx, &request); err != nil {
		return err
	}

	cmd, err := commands.NewSubmitReturnCommand(orderID, userIDFromContext(ctx), request.Reason)
	if err != nil {
		return badRequest(ctx, err)
	}

	daysRemaining, err := s.submitReturnHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, SubmitReturnResponse{DaysRemaining: daysRemaining})
}

// ResolveReturn handles POST /api/v1/orders/:id/return/resolution.
func (s *Server) ResolveReturn(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}

	var request ResolveRequest
	if err = bind(ctx, &request); err != nil {
		return err
	}

	resolution, err := commands.ResolutionFromString(request.Resolution)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewResolveReturnCommand(orderID, resolution, request.Note)
	if err != nil {
		return badRequest(ctx, err)
	}

	status, err := s.resolveReturnHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, ResolutionResponse{
		OrderID: orderID.String(),
		Status:  status.String(),
	})
}

// PreviewRouteAssignment handles GET /api/v1/routes/assignment/preview.
// Accepts the proposed delivery date as the suggested_date query parameter,
// RFC 3339 or plain date.
func (s *Server) PreviewRouteAssignment(ctx echo.Context) error {
	suggestedDate, err := parseDate(ctx.QueryParam("suggested_date"))
	if err != nil {
		return badRequest(ctx, err)
	}

	query, err := queries.NewPreviewRouteAssignmentQuery(suggestedDate)
	if err != nil {
		return badRequest(ctx, err)
	}

	plan, err := s.previewAssignmentHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := PreviewResponse{
		NewRoutes:      make([]ProposedRouteJSON, 0, len(plan.NewRoutes)),
		ExistingRoutes: make([]ReusableRouteJSON, 0, len(plan.ExistingRoutes)),
	}
	for _, proposed := range plan.NewRoutes {
		response.NewRoutes = append(response.NewRoutes, ProposedRouteJSON{
			City:          proposed.City,
			OrderCount:    proposed.OrderCount,
			SuggestedDate: proposed.SuggestedDate,
		})
	}
	for _, reusable := range plan.ExistingRoutes {
		response.ExistingRoutes = append(response.ExistingRoutes, ReusableRouteJSON{
			RouteID:      reusable.RouteID.String(),
			City:         reusable.City,
			OrderCount:   reusable.OrderCount,
			DeliveryDate: reusable.DeliveryDate,
			Status:       reusable.Status.String(),
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// ExecuteRouteAssignment handles POST /api/v1/routes/assignment. The body
// lists the city/date pairs to run, usually taken from a preview.
func (s *Server) ExecuteRouteAssignment(ctx echo.Context) error {
	var request ExecuteAssignmentRequest
	if err := bind(ctx, &request); err != nil {
		return err
	}

	assignments := make([]commands.RouteAssignment, 0, len(request.Assignments))
	for _, entry := range request.Assignments {
		assignment, err := commands.NewRouteAssignment(entry.City, entry.DeliveryDate)
		if err != nil {
			return badRequest(ctx, err)
		}
		assignments = append(assignments, assignment)
	}

	cmd, err := commands.NewExecuteRouteAssignmentCommand(assignments)
	if err != nil {
		return badRequest(ctx, err)
	}

	report, err := s.executeAssignmentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	response := AssignmentReportResponse{
		AssignedOrders: report.AssignedOrders,
		CreatedRoutes:  report.CreatedRoutes,
		ReusedRoutes:   report.ReusedRoutes,
		Cities:         make([]CityAssignmentResponse, 0, len(report.Cities)),
		Skipped:        make([]SkippedCityResponse, 0, len(report.Skipped)),
	}
	for _, city := range report.Cities {
		response.Cities = append(response.Cities, CityAssignmentResponse{
			City:           city.City,
			RouteID:        city.RouteID.String(),
			RouteCreated:   city.RouteCreated,
			OrdersAssigned: city.OrdersAssigned,
		})
	}
	for _, skipped := range report.Skipped {
		response.Skipped = append(response.Skipped, SkippedCityResponse{
			City:   skipped.City,
			Reason: skipped.Reason,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// SetRouteStatus handles PUT /api/v1/routes/:id/status.
func (s *Server) SetRouteStatus(ctx echo.Context) error {
	routeID, err := pathUUID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}

	var request SetRouteStatusRequest
	if err = bind(ctx, &request); err != nil {
		return err
	}

	status, err := kernel.StatusFromString(request.Status)
	if err != nil {
		return badRequest(ctx, err)
	}

	cmd, err := commands.NewSetRouteStatusCommand(routeID, status)
	if err != nil {
		return badRequest(ctx, err)
	}

	report, err := s.setRouteStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, PropagationResponse{
		OrdersUpdated: report.OrdersUpdated,
		OrdersSkipped: report.OrdersSkipped,
	})
}

// DeleteRoute handles DELETE /api/v1/routes/:id. Orders on the route are
// released back to the assignable pool before the route goes away.
func (s *Server) DeleteRoute(ctx echo.Context) error {
	routeID, err := pathUUID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewDeleteRouteCommand(routeID)
	if err != nil {
		return badRequest(ctx, err)
	}

	unlinked, err := s.deleteRouteHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, DeleteRouteResponse{OrdersUnlinked: unlinked})
}

// RefundOrder handles POST /api/v1/orders/:id/refund.
func (s *Server) RefundOrder(ctx echo.Context) error {
	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewRefundOrderCommand(orderID)
	if err != nil {
		return badRequest(ctx, err)
	}

	result, err := s.refundOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, RefundResponse{
		RefundID: result.RefundID,
		Outcome:  string(result.Outcome),
	})
}

// GetPendingRequests handles GET /api/v1/requests/pending, the admin triage
// queue, oldest request first.
func (s *Server) GetPendingRequests(ctx echo.Context) error {
	requests, err := s.pendingRequestsHandler.Handle(
		ctx.Request().Context(), queries.NewGetPendingRequestsQuery(),
	)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]PendingRequestResponse, 0, len(requests))
	for _, request := range requests {
		response = append(response, PendingRequestResponse{
			OrderID:     request.OrderID.String(),
			UserID:      request.UserID.String(),
			RequestType: request.RequestType,
			Reason:      request.Reason,
			RequestedAt: request.RequestedAt,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

func pathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param(name))
}

// bind decodes and tag-validates the request body, writing the 400 response
// itself when either step fails.
func bind(ctx echo.Context, request interface{}) error {
	if err := ctx.Bind(request); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "invalid request body",
		})
	}

	if err := ctx.Validate(request); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	}

	return nil
}

func badRequest(ctx echo.Context, err error) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: err.Error(),
	})
}

func parseDate(value string) (time.Time, error) {
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, nil
	}
	return time.Parse("2006-01-02", value)
}
