// Package ports defines the contracts between the application core and
// infrastructure: repositories, the unit of work, and the payment gateway.
// These interfaces enable dependency inversion and testability.
package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
//
// Update is status-guarded: the write only applies while the stored status
// still equals the status the aggregate was loaded with, and returns an
// errs.VersionIsInvalidError otherwise. This is what makes check-then-set
// transitions safe under concurrent requests.
type OrderRepository interface {
	// Add persists a new order aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order, guarded on the status
	// the aggregate was loaded with.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by id. Returns errs.ObjectNotFoundError if absent.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetEligibleByCity retrieves the orders a batch assignment for the city
	// would pick up: no route, status pending or processing, shipping city
	// matching trim + case-insensitively. The set is resolved at call time,
	// never cached, so the executor acts on current data rather than a
	// stale preview.
	GetEligibleByCity(ctx context.Context, city string) ([]*order.Order, error)

	// GetAllByRoute retrieves every order linked to the route, regardless of
	// status. Used by status propagation and route deletion.
	GetAllByRoute(ctx context.Context, routeID kernel.UUID) ([]*order.Order, error)
}
