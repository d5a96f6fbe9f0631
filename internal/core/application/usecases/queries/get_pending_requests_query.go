package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetPendingRequestsQueryIsNotConstructed = errors.New(
	"GetPendingRequestsQuery must be created via NewGetPendingRequestsQuery constructor",
)

// GetPendingRequestsQuery retrieves the admin triage queue: every order
// sitting in cancellation_requested or return_requested, oldest first.
type GetPendingRequestsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetPendingRequestsQuery creates a query for the triage queue.
// This is a parameterless query.
func NewGetPendingRequestsQuery() GetPendingRequestsQuery {
	return GetPendingRequestsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetPendingRequestsQueryIsNotConstructed if validation fails.
func (q GetPendingRequestsQuery) Validate() error {
	return q.guard.Validate(ErrGetPendingRequestsQueryIsNotConstructed)
}

// GetPendingRequestsQueryResponse is one triage queue entry. RequestType is
// the order's current status name: "cancellation_requested" or
// "return_requested".
type GetPendingRequestsQueryResponse struct {
	OrderID     kernel.UUID
	UserID      kernel.UUID
	RequestType string
	Reason      string
	RequestedAt time.Time
}
