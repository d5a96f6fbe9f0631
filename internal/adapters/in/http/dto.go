package http

import "time"

// SubmitCancellationRequest is the body of POST /orders/:id/cancellation.
// The reason is optional.
type SubmitCancellationRequest struct {
	Reason string `json:"reason"`
}

// SubmitCancellationResponse reports which path the cancellation took and
// the status the order ended up in.
type SubmitCancellationResponse struct {
	Outcome string `json:"outcome"`
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

// ResolveRequest is the body of the two admin resolution endpoints.
type ResolveRequest struct {
	Resolution string `json:"resolution" validate:"required,oneof=approve reject"`
	Note       string `json:"note"`
}

// ResolutionResponse reports the status an order settled on after an admin
// verdict.
type ResolutionResponse struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

// SubmitReturnRequest is the body of POST /orders/:id/return. The reason is
// optional.
type SubmitReturnRequest struct {
	Reason string `json:"reason"`
}

// SubmitReturnResponse reports how many days of the return window remain.
type SubmitReturnResponse struct {
	DaysRemaining int `json:"days_remaining"`
}

// AssignmentJSON is one city/date pair of a batch assignment run, typically
// taken from a preview's entries.
type AssignmentJSON struct {
	City         string    `json:"city" validate:"required"`
	DeliveryDate time.Time `json:"delivery_date" validate:"required"`
}

// ExecuteAssignmentRequest is the body of POST /routes/assignment.
type ExecuteAssignmentRequest struct {
	Assignments []AssignmentJSON `json:"assignments" validate:"required,min=1,dive"`
}

// CityAssignmentResponse is one per-city entry of the assignment report.
type CityAssignmentResponse struct {
	City           string `json:"city"`
	RouteID        string `json:"route_id"`
	RouteCreated   bool   `json:"route_created"`
	OrdersAssigned int    `json:"orders_assigned"`
}

// SkippedCityResponse names a city the batch could not assign and why.
type SkippedCityResponse struct {
	City   string `json:"city"`
	Reason string `json:"reason"`
}

// AssignmentReportResponse is the full batch assignment report.
type AssignmentReportResponse struct {
	AssignedOrders int                      `json:"assigned_orders"`
	CreatedRoutes  int                      `json:"created_routes"`
	ReusedRoutes   int                      `json:"reused_routes"`
	Cities         []CityAssignmentResponse `json:"cities"`
	Skipped        []SkippedCityResponse    `json:"skipped"`
}

// ProposedRouteJSON is a preview entry for a city with no active route.
type ProposedRouteJSON struct {
	City          string    `json:"city"`
	OrderCount    int       `json:"order_count"`
	SuggestedDate time.Time `json:"suggested_date"`
}

// ReusableRouteJSON is a preview entry for a city with an active route.
type ReusableRouteJSON struct {
	RouteID      string    `json:"route_id"`
	City         string    `json:"city"`
	OrderCount   int       `json:"order_count"`
	DeliveryDate time.Time `json:"delivery_date"`
	Status       string    `json:"status"`
}

// PreviewResponse is the advisory assignment plan.
type PreviewResponse struct {
	NewRoutes      []ProposedRouteJSON `json:"new_routes"`
	ExistingRoutes []ReusableRouteJSON `json:"existing_routes"`
}

// SetRouteStatusRequest is the body of PUT /routes/:id/status.
type SetRouteStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// PropagationResponse reports how the route status change propagated to the
// route's orders.
type PropagationResponse struct {
	OrdersUpdated int `json:"orders_updated"`
	OrdersSkipped int `json:"orders_skipped"`
}

// DeleteRouteResponse reports how many orders the deleted route released.
type DeleteRouteResponse struct {
	OrdersUnlinked int `json:"orders_unlinked"`
}

// RefundResponse carries the gateway's refund reference.
type RefundResponse struct {
	RefundID string `json:"refund_id"`
	Outcome  string `json:"outcome"`
}

// PendingRequestResponse is one entry of the admin triage queue.
type PendingRequestResponse struct {
	OrderID     string    `json:"order_id"`
	UserID      string    `json:"user_id"`
	RequestType string    `json:"request_type"`
	Reason      string    `json:"reason"`
	RequestedAt time.Time `json:"requested_at"`
}
