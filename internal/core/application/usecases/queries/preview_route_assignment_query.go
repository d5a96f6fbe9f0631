// Package queries contains read-only operations for the HTTP API.
// Implements the Query side of the CQRS architecture: handlers read
// projections straight from the database, bypassing the aggregates, and
// never mutate anything.
package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrPreviewRouteAssignmentQueryIsNotConstructed = errors.New(
		"PreviewRouteAssignmentQuery must be created via NewPreviewRouteAssignmentQuery constructor",
	)
	ErrSuggestedDateIsRequired = errors.New("suggested delivery date is required")
)

// PreviewRouteAssignmentQuery asks for a dry run of the batch assignment:
// which routes would be created, which reused, and how many orders each
// would pick up. Nothing is persisted; running the preview twice over
// unchanged data yields the same answer.
//
// Example:
//
//	query, err := NewPreviewRouteAssignmentQuery(time.Now().AddDate(0, 0, 3))
//	if err != nil {
//	    return fmt.Errorf("invalid preview data: %w", err)
//	}
//
//	plan, err := NewPreviewRouteAssignmentQueryHandler(db).Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("preview failed: %w", err)
//	}
//	fmt.Printf("Would create %d routes, reuse %d\n", len(plan.NewRoutes), len(plan.ExistingRoutes))
type PreviewRouteAssignmentQuery struct {
	suggestedDate time.Time

	guard guard.ConstructorGuard
}

// NewPreviewRouteAssignmentQuery creates a preview query with the delivery
// date proposed for routes that would be created.
func NewPreviewRouteAssignmentQuery(suggestedDate time.Time) (PreviewRouteAssignmentQuery, error) {
	if suggestedDate.IsZero() {
		return PreviewRouteAssignmentQuery{}, ErrSuggestedDateIsRequired
	}

	return PreviewRouteAssignmentQuery{
		suggestedDate: suggestedDate,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrPreviewRouteAssignmentQueryIsNotConstructed if validation fails.
func (q PreviewRouteAssignmentQuery) Validate() error {
	return q.guard.Validate(ErrPreviewRouteAssignmentQueryIsNotConstructed)
}

// SuggestedDate returns the proposed delivery date for new routes.
func (q PreviewRouteAssignmentQuery) SuggestedDate() time.Time {
	return q.suggestedDate
}

// ProposedRouteResponse is a preview entry for a city with no active route.
type ProposedRouteResponse struct {
	City          string
	OrderCount    int
	SuggestedDate time.Time
}

// ReusableRouteResponse is a preview entry for a city whose active route
// would absorb the batch. The route keeps its own date and status.
type ReusableRouteResponse struct {
	RouteID      kernel.UUID
	City         string
	OrderCount   int
	DeliveryDate time.Time
	Status       kernel.Status
}

// PreviewRouteAssignmentQueryResponse is the advisory assignment plan.
type PreviewRouteAssignmentQueryResponse struct {
	NewRoutes      []ProposedRouteResponse
	ExistingRoutes []ReusableRouteResponse
}
