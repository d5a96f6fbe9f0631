package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/route"
)

// RouteRepository defines the persistence contract for delivery routes.
//
// The store enforces at-most-one active route per normalized city with a
// partial unique index; Add surfaces a violation as
// errs.ErrObjectAlreadyExists so the batch executor can retry the city as a
// reuse.
type RouteRepository interface {
	// Add persists a new route.
	Add(ctx context.Context, aggregate *route.DeliveryRoute) error

	// Update persists changes to an existing route.
	Update(ctx context.Context, aggregate *route.DeliveryRoute) error

	// Get retrieves a route by id. Returns errs.ObjectNotFoundError if absent.
	Get(ctx context.Context, id kernel.UUID) (*route.DeliveryRoute, error)

	// GetActiveByCity retrieves the active (pending/processing) route for a
	// city, matched trim + case-insensitively.
	// Returns errs.ObjectNotFoundError if none.
	GetActiveByCity(ctx context.Context, city string) (*route.DeliveryRoute, error)

	// Delete removes a route. Orders are un-linked by the caller first;
	// deletion never cascades.
	Delete(ctx context.Context, id kernel.UUID) error
}
