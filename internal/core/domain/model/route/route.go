package route

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ErrRouteIsNotConstructed is returned when a DeliveryRoute instance was not
// created through NewRoute or RestoreRoute.
var ErrRouteIsNotConstructed = errors.New("DeliveryRoute must be created via NewRoute or RestoreRoute")

// DeliveryRoute is the aggregate root for a city + delivery date batch.
//
// Invariants:
//   - city must have normalized text (a route for a blank city is useless)
//   - status is restricted to the route vocabulary (no cancellation/return
//     side branches)
//   - a city has at most one route in an active status (pending/processing)
//     at a time; the batcher enforces this with reuse-before-create backed
//     by a partial unique index
//
// The route never holds a list of its orders; orders point at the route and
// are found by query. Deleting a route un-links its orders rather than
// cascading.
type DeliveryRoute struct {
	id           kernel.UUID
	city         string
	deliveryDate time.Time
	status       kernel.Status

	isConstructed bool
}

// NewRoute creates a route for a city and delivery date, in pending status.
func NewRoute(id kernel.UUID, city string, deliveryDate time.Time) (*DeliveryRoute, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if city == "" {
		return nil, errs.NewValueIsRequiredError("city")
	}
	if deliveryDate.IsZero() {
		return nil, errs.NewValueIsRequiredError("deliveryDate")
	}

	return &DeliveryRoute{
		id:            id,
		city:          city,
		deliveryDate:  deliveryDate,
		status:        kernel.Pending,
		isConstructed: true,
	}, nil
}

// RestoreRoute reconstructs a route from persistence.
func RestoreRoute(id kernel.UUID, city string, deliveryDate time.Time, status kernel.Status) (*DeliveryRoute, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if city == "" {
		return nil, errs.NewValueIsRequiredError("city")
	}
	if err := status.ValidateForRoute(); err != nil {
		return nil, err
	}

	return &DeliveryRoute{
		id:            id,
		city:          city,
		deliveryDate:  deliveryDate,
		status:        status,
		isConstructed: true,
	}, nil
}

// Validate ensures the route was constructed through a factory method.
func (r *DeliveryRoute) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRouteIsNotConstructed
	}
	return nil
}

// IsEqual compares two routes by identifier.
func (r *DeliveryRoute) IsEqual(other *DeliveryRoute) bool {
	return other != nil && r.id.IsEqual(other.id)
}

// ID returns the route's unique identifier.
func (r *DeliveryRoute) ID() kernel.UUID { return r.id }

// City returns the route's city as entered (matching is trim +
// case-insensitive, see services.NormalizeCity).
func (r *DeliveryRoute) City() string { return r.city }

// DeliveryDate returns the scheduled delivery date.
func (r *DeliveryRoute) DeliveryDate() time.Time { return r.deliveryDate }

// Status returns the route's status.
func (r *DeliveryRoute) Status() kernel.Status { return r.status }

// IsActive reports whether the route still accepts orders
// (pending/processing). The batcher reuses active routes instead of
// creating duplicates for a city.
func (r *DeliveryRoute) IsActive() bool {
	return r.status.IsActiveRoute()
}

// ChangeStatus sets the route's status. The caller (the propagation
// command) is responsible for applying the change to every linked order in
// the same transaction.
func (r *DeliveryRoute) ChangeStatus(status kernel.Status) error {
	if err := status.ValidateForRoute(); err != nil {
		return err
	}
	if r.status.IsTerminal() {
		return errs.NewInvalidStateError("change route status", r.status.String())
	}

	r.status = status
	return nil
}
