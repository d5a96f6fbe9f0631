package kernel

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state shared by orders and delivery routes.
// Orders use the full vocabulary; routes use the subset without the
// cancellation/return side branches.
//
// Order state machine:
//
//	pending ──> processing ──> shipped ──> delivered
//	   │             │                          │
//	   └──────┬──────┘                          └──> return_requested ──> returned
//	          ├──> cancelled (no route)                     │
//	          └──> cancellation_requested ──> cancelled     └──> delivered (rejected)
//	                       │
//	                       └──> restored status (rejected)
//
// cancelled and returned are terminal: no operation transitions out of them.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status assigned on checkout.
	Pending

	// Processing indicates the order is being prepared, or a route is
	// accepting orders and has not yet departed.
	Processing

	// Shipped indicates the order (or its route) is out for delivery.
	Shipped

	// Delivered indicates the order reached the customer. Returns are only
	// possible from this status.
	Delivered

	// CancellationRequested is the side branch entered when a customer
	// cancels an order that is already scheduled on a delivery route.
	// An administrator resolves it to cancelled or back to a route-derived
	// status.
	CancellationRequested

	// ReturnRequested is the side branch entered when a customer requests a
	// return of a delivered order within the return window.
	ReturnRequested

	// Cancelled is terminal.
	Cancelled

	// Returned is terminal.
	Returned
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:               "unknown",
		Pending:               "pending",
		Processing:            "processing",
		Shipped:               "shipped",
		Delivered:             "delivered",
		CancellationRequested: "cancellation_requested",
		ReturnRequested:       "return_requested",
		Cancelled:             "cancelled",
		Returned:              "returned",
	}
}

// StatusFromString parses the persisted/API representation of a status.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that the Status is one of the defined values.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the lowercase wire/persistence name of the status.
// Implements fmt.Stringer and is safe on any value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status is cancelled or returned.
// No operation transitions out of a terminal status.
func (s Status) IsTerminal() bool {
	return s == Cancelled || s == Returned
}

// IsActiveRoute reports whether a route in this status still accepts orders.
// The batcher reuses an active route for a city instead of creating another.
func (s Status) IsActiveRoute() bool {
	return s == Pending || s == Processing
}

// IsEligibleForAssignment reports whether an unrouted order in this status is
// a candidate for route batching.
func (s Status) IsEligibleForAssignment() bool {
	return s == Pending || s == Processing
}

// AcceptsPropagation reports whether a route status change may overwrite an
// order in this status. Orders in the cancellation/return side branches and
// terminal orders keep their status; propagating over them would silently
// erase a customer-initiated request.
func (s Status) AcceptsPropagation() bool {
	switch s {
	case Pending, Processing, Shipped, Delivered:
		return true
	default:
		return false
	}
}

// ValidateForRoute checks that the status is usable on a delivery route.
// The cancellation/return side branches are order-only.
func (s Status) ValidateForRoute() error {
	if err := s.Validate(); err != nil {
		return err
	}
	if s == CancellationRequested || s == ReturnRequested {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid route status", s.String()))
	}
	return nil
}
