package order

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through NewOrder or RestoreOrder. This ensures all orders are validated.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

// ReturnWindowDays is how long after delivery a return may be requested,
// inclusive: a request on day 30 succeeds, on day 31 it fails.
const ReturnWindowDays = 30

// CancellationOutcome tells the caller which path a cancellation took, so a
// customer can be messaged "your order was cancelled" vs. "your request was
// submitted for review".
type CancellationOutcome int

const (
	// DirectCancellation: the order had no delivery route and was cancelled
	// in one step.
	DirectCancellation CancellationOutcome = iota + 1

	// CancellationRequest: the order is scheduled on a route; the
	// cancellation became a request awaiting admin resolution.
	CancellationRequest
)

// String returns the wire name of the outcome.
func (c CancellationOutcome) String() string {
	switch c {
	case DirectCancellation:
		return "direct_cancellation"
	case CancellationRequest:
		return "cancellation_request"
	default:
		return "unknown"
	}
}

// Order is the aggregate root for a customer order. It owns the lifecycle
// status, the payment state, the delivery-route link, and the
// cancellation/return metadata.
//
// Invariants:
//   - Must have valid id and user id, at least one item, and a valid address
//   - A routed order's status mirrors its route's status, except while the
//     order sits in a cancellation/return side branch or a terminal status
//   - cancelled/returned are terminal; no method transitions out of them
//   - Only created through NewOrder or RestoreOrder
//
// Orders are never deleted: closure is represented by terminal statuses.
type Order struct {
	id     kernel.UUID
	userID kernel.UUID
	status kernel.Status

	paymentMethod   PaymentMethod
	paymentStatus   PaymentStatus
	paymentIntentID string

	items           []Item
	shippingAddress Address

	// routeID is the assigned delivery route (nil if unassigned);
	// deliveryDate is synced to the route's date on assignment.
	routeID      *kernel.UUID
	deliveryDate *time.Time

	cancellationReason      string
	cancellationRequestedAt *time.Time
	cancelledBy             *kernel.Actor

	returnReason      string
	returnRequestedAt *time.Time
	returnApprovedAt  *time.Time

	createdAt time.Time
	updatedAt time.Time

	// loadedStatus is the status read from storage; repositories use it as
	// an optimistic-concurrency guard when writing the aggregate back.
	loadedStatus kernel.Status

	isConstructed bool
}

// NewOrder creates an order at checkout: status pending, payment pending,
// no route.
func NewOrder(
	id kernel.UUID,
	userID kernel.UUID,
	items []Item,
	shippingAddress Address,
	paymentMethod PaymentMethod,
	now time.Time,
) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := userID.Validate(); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errs.NewValueIsRequiredError("items")
	}
	if err := paymentMethod.Validate(); err != nil {
		return nil, err
	}

	return &Order{
		id:              id,
		userID:          userID,
		status:          kernel.Pending,
		paymentMethod:   paymentMethod,
		paymentStatus:   PaymentPending,
		items:           append([]Item(nil), items...),
		shippingAddress: shippingAddress,
		createdAt:       now,
		updatedAt:       now,
		loadedStatus:    kernel.Pending,
		isConstructed:   true,
	}, nil
}

// RestoreOrderParams carries the persisted state of an order back into the
// domain. Used only by repositories.
type RestoreOrderParams struct {
	ID              kernel.UUID
	UserID          kernel.UUID
	Status          kernel.Status
	PaymentMethod   PaymentMethod
	PaymentStatus   PaymentStatus
	PaymentIntentID string
	Items           []Item
	ShippingAddress Address
	RouteID         *kernel.UUID
	DeliveryDate    *time.Time

	CancellationReason      string
	CancellationRequestedAt *time.Time
	CancelledBy             *kernel.Actor

	ReturnReason      string
	ReturnRequestedAt *time.Time
	ReturnApprovedAt  *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RestoreOrder reconstructs an order from persistence, validating the
// persisted state. The restored status doubles as the optimistic-concurrency
// guard for the next write.
func RestoreOrder(p RestoreOrderParams) (*Order, error) {
	if err := p.ID.Validate(); err != nil {
		return nil, err
	}
	if err := p.UserID.Validate(); err != nil {
		return nil, err
	}
	if err := p.Status.Validate(); err != nil {
		return nil, err
	}
	if err := p.PaymentMethod.Validate(); err != nil {
		return nil, err
	}
	if err := p.PaymentStatus.Validate(); err != nil {
		return nil, err
	}
	if p.RouteID != nil {
		if err := p.RouteID.Validate(); err != nil {
			return nil, err
		}
	}
	if p.CancelledBy != nil {
		if err := p.CancelledBy.Validate(); err != nil {
			return nil, err
		}
	}

	return &Order{
		id:                      p.ID,
		userID:                  p.UserID,
		status:                  p.Status,
		paymentMethod:           p.PaymentMethod,
		paymentStatus:           p.PaymentStatus,
		paymentIntentID:         p.PaymentIntentID,
		items:                   append([]Item(nil), p.Items...),
		shippingAddress:         p.ShippingAddress,
		routeID:                 p.RouteID,
		deliveryDate:            p.DeliveryDate,
		cancellationReason:      p.CancellationReason,
		cancellationRequestedAt: p.CancellationRequestedAt,
		cancelledBy:             p.CancelledBy,
		returnReason:            p.ReturnReason,
		returnRequestedAt:       p.ReturnRequestedAt,
		returnApprovedAt:        p.ReturnApprovedAt,
		createdAt:               p.CreatedAt,
		updatedAt:               p.UpdatedAt,
		loadedStatus:            p.Status,
		isConstructed:           true,
	}, nil
}

// Validate ensures the Order was constructed through a factory method.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID { return o.id }

// UserID returns the owning customer's identifier.
func (o *Order) UserID() kernel.UUID { return o.userID }

// Status returns the current lifecycle status.
func (o *Order) Status() kernel.Status { return o.status }

// LoadedStatus returns the status the aggregate had when it was read from
// storage. Repositories guard writes with it.
func (o *Order) LoadedStatus() kernel.Status { return o.loadedStatus }

// PaymentMethod returns how the order was paid.
func (o *Order) PaymentMethod() PaymentMethod { return o.paymentMethod }

// PaymentStatus returns the settlement state.
func (o *Order) PaymentStatus() PaymentStatus { return o.paymentStatus }

// PaymentIntentID returns the gateway payment reference, empty if none.
func (o *Order) PaymentIntentID() string { return o.paymentIntentID }

// Items returns a copy of the order lines.
func (o *Order) Items() []Item { return append([]Item(nil), o.items...) }

// ShippingAddress returns the delivery destination snapshot.
func (o *Order) ShippingAddress() Address { return o.shippingAddress }

// RouteID returns the assigned delivery route id, nil if unassigned.
func (o *Order) RouteID() *kernel.UUID { return o.routeID }

// DeliveryDate returns the scheduled delivery date, nil if unassigned.
func (o *Order) DeliveryDate() *time.Time { return o.deliveryDate }

// CancellationReason returns the customer's reason plus any admin notes.
func (o *Order) CancellationReason() string { return o.cancellationReason }

// CancellationRequestedAt returns when cancellation was requested.
func (o *Order) CancellationRequestedAt() *time.Time { return o.cancellationRequestedAt }

// CancelledBy returns who initiated the cancellation, nil if none.
func (o *Order) CancelledBy() *kernel.Actor { return o.cancelledBy }

// ReturnReason returns the customer's return reason plus any admin notes.
func (o *Order) ReturnReason() string { return o.returnReason }

// ReturnRequestedAt returns when the return was requested.
func (o *Order) ReturnRequestedAt() *time.Time { return o.returnRequestedAt }

// ReturnApprovedAt returns when the return was approved.
func (o *Order) ReturnApprovedAt() *time.Time { return o.returnApprovedAt }

// CreatedAt returns the checkout time.
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// UpdatedAt returns the last mutation time.
func (o *Order) UpdatedAt() time.Time { return o.updatedAt }

// IsEligibleForAssignment reports whether the batcher may pick this order
// up: no route yet and status pending or processing.
func (o *Order) IsEligibleForAssignment() bool {
	return o.routeID == nil && o.status.IsEligibleForAssignment()
}

// ConfirmPayment records the gateway's charge confirmation.
func (o *Order) ConfirmPayment(paymentIntentID string, now time.Time) error {
	if paymentIntentID == "" {
		return errs.NewValueIsRequiredError("paymentIntentID")
	}
	o.paymentIntentID = paymentIntentID
	o.paymentStatus = PaymentPaid
	o.touch(now)
	return nil
}

// Cancel handles a cancellation requested by requesterID acting as actor.
// A customer may only cancel their own order; admins may cancel any.
//
// An order already scheduled on a delivery route is not cancelled directly:
// it transitions to cancellation_requested for admin resolution. An
// unrouted order in pending or processing is cancelled in one step.
// Terminal orders, delivered orders, and orders already in a side branch
// are rejected with a message naming the current status.
func (o *Order) Cancel(actor kernel.Actor, requesterID kernel.UUID, reason string, now time.Time) (CancellationOutcome, error) {
	const op = "cancel order"

	if err := actor.Validate(); err != nil {
		return 0, err
	}
	if actor == kernel.ActorUser && !o.userID.IsEqual(requesterID) {
		return 0, errs.NewForbiddenError(op, "order belongs to another user")
	}

	switch o.status {
	case kernel.Cancelled:
		return 0, errs.NewInvalidStateErrorWithDetail(op, o.status.String(),
			"order is already cancelled")
	case kernel.Returned:
		return 0, errs.NewInvalidStateErrorWithDetail(op, o.status.String(),
			"returned orders cannot be cancelled")
	case kernel.Delivered:
		return 0, errs.NewInvalidStateErrorWithDetail(op, o.status.String(),
			"delivered orders must go through the return flow")
	case kernel.ReturnRequested:
		return 0, errs.NewInvalidStateErrorWithDetail(op, o.status.String(),
			"order is awaiting return resolution")
	case kernel.CancellationRequested:
		return 0, errs.NewInvalidStateErrorWithDetail(op, o.status.String(),
			"cancellation has already been requested")
	}

	if o.routeID != nil {
		o.status = kernel.CancellationRequested
		o.stampCancellation(actor, reason, now)
		return CancellationRequest, nil
	}

	if o.status != kernel.Pending && o.status != kernel.Processing {
		return 0, errs.NewInvalidStateError(op, o.status.String())
	}

	o.status = kernel.Cancelled
	o.stampCancellation(actor, reason, now)
	return DirectCancellation, nil
}

func (o *Order) stampCancellation(actor kernel.Actor, reason string, now time.Time) {
	requestedAt := now
	o.cancellationReason = reason
	o.cancellationRequestedAt = &requestedAt
	o.cancelledBy = &actor
	o.touch(now)
}

// ApproveCancellation resolves a cancellation request: the order becomes
// cancelled and exits its route (the route itself is untouched).
func (o *Order) ApproveCancellation(note string, now time.Time) error {
	if o.status != kernel.CancellationRequested {
		return errs.NewInvalidStateError("approve cancellation", o.status.String())
	}

	o.status = kernel.Cancelled
	o.routeID = nil
	o.deliveryDate = nil
	o.cancellationReason = appendNote(o.cancellationReason, note)
	o.touch(now)
	return nil
}

// RejectCancellation resolves a cancellation request by restoring a status
// consistent with route presence and the delivery date: processing while the
// route's date is in the future (or unset), shipped once it has passed,
// pending when there is no route.
func (o *Order) RejectCancellation(note string, now time.Time) error {
	if o.status != kernel.CancellationRequested {
		return errs.NewInvalidStateError("reject cancellation", o.status.String())
	}

	switch {
	case o.routeID == nil:
		o.status = kernel.Pending
	case o.deliveryDate != nil && o.deliveryDate.Before(now):
		o.status = kernel.Shipped
	default:
		o.status = kernel.Processing
	}

	o.cancelledBy = nil
	o.cancellationReason = appendNote(o.cancellationReason, note)
	o.touch(now)
	return nil
}

// RequestReturn submits a return for a delivered order on behalf of userID.
// Returns the days remaining in the window on success.
func (o *Order) RequestReturn(userID kernel.UUID, reason string, now time.Time) (int, error) {
	const op = "request return"

	if !o.userID.IsEqual(userID) {
		return 0, errs.NewForbiddenError(op, "order belongs to another user")
	}

	switch o.status {
	case kernel.Returned:
		return 0, errs.NewInvalidStateErrorWithDetail(op, o.status.String(),
			"order is already returned")
	case kernel.ReturnRequested:
		return 0, errs.NewInvalidStateErrorWithDetail(op, o.status.String(),
			"return has already been requested")
	case kernel.Delivered:
		// fall through to the window check
	default:
		return 0, errs.NewInvalidStateErrorWithDetail(op, o.status.String(),
			"only delivered orders can be returned")
	}

	days := o.daysSinceDelivery(now)
	if days > ReturnWindowDays {
		return 0, errs.NewReturnWindowExpiredError(days, ReturnWindowDays)
	}

	requestedAt := now
	o.status = kernel.ReturnRequested
	o.returnReason = reason
	o.returnRequestedAt = &requestedAt
	o.touch(now)

	return ReturnWindowDays - days, nil
}

// daysSinceDelivery is floor((now - deliveryDate_or_updatedAt) / 1 day).
// The delivery date is the anchor when the order was routed; otherwise the
// last update stands in for the delivery moment.
func (o *Order) daysSinceDelivery(now time.Time) int {
	anchor := o.updatedAt
	if o.deliveryDate != nil {
		anchor = *o.deliveryDate
	}
	elapsed := now.Sub(anchor)
	if elapsed < 0 {
		return 0
	}
	return int(elapsed / (24 * time.Hour))
}

// ApproveReturn resolves a return request: the order becomes returned.
func (o *Order) ApproveReturn(note string, now time.Time) error {
	if o.status != kernel.ReturnRequested {
		return errs.NewInvalidStateError("approve return", o.status.String())
	}

	approvedAt := now
	o.status = kernel.Returned
	o.returnApprovedAt = &approvedAt
	o.returnReason = appendNote(o.returnReason, note)
	o.touch(now)
	return nil
}

// RejectReturn resolves a return request: the order goes back to delivered.
func (o *Order) RejectReturn(note string, now time.Time) error {
	if o.status != kernel.ReturnRequested {
		return errs.NewInvalidStateError("reject return", o.status.String())
	}

	o.status = kernel.Delivered
	o.returnReason = appendNote(o.returnReason, note)
	o.touch(now)
	return nil
}

// AssignToRoute links the order to a delivery route, syncing the order's
// status and delivery date to the route's. Only eligible orders (no route,
// pending/processing) may be assigned.
func (o *Order) AssignToRoute(routeID kernel.UUID, routeStatus kernel.Status, deliveryDate time.Time, now time.Time) error {
	if err := routeID.Validate(); err != nil {
		return err
	}
	if err := routeStatus.ValidateForRoute(); err != nil {
		return err
	}
	if !o.IsEligibleForAssignment() {
		return errs.NewInvalidStateError("assign order to route", o.status.String())
	}

	date := deliveryDate
	o.routeID = &routeID
	o.deliveryDate = &date
	o.status = routeStatus
	o.touch(now)
	return nil
}

// ApplyRouteStatus propagates a route status change onto the order.
// Orders in a cancellation/return side branch or a terminal status are
// skipped (returns false) so a route update cannot erase a customer request.
func (o *Order) ApplyRouteStatus(status kernel.Status, now time.Time) (bool, error) {
	if err := status.ValidateForRoute(); err != nil {
		return false, err
	}
	if !o.status.AcceptsPropagation() {
		return false, nil
	}

	o.status = status
	o.touch(now)
	return true, nil
}

// UnlinkFromRoute detaches the order when its route is deleted. The route
// link and delivery date are cleared; a route-derived in-flight status
// (pending/processing/shipped) resets to pending so the order becomes
// eligible for batching again. Side-branch, delivered and terminal statuses
// are untouched.
func (o *Order) UnlinkFromRoute(now time.Time) {
	o.routeID = nil
	o.deliveryDate = nil

	switch o.status {
	case kernel.Pending, kernel.Processing, kernel.Shipped:
		o.status = kernel.Pending
	}

	o.touch(now)
}

// EnsureRefundable checks the refund preconditions: card payment, paid, a
// gateway payment reference on file, and a terminal (cancelled/returned)
// order status.
func (o *Order) EnsureRefundable() error {
	const op = "refund order"

	if o.paymentMethod != PaymentMethodCard {
		return errs.NewInvalidStateErrorWithDetail(op, o.status.String(),
			"payment method is not the card gateway")
	}
	if o.paymentStatus != PaymentPaid {
		return errs.NewInvalidStateErrorWithDetail(op, o.status.String(),
			"payment status is "+o.paymentStatus.String()+", not paid")
	}
	if o.paymentIntentID == "" {
		return errs.NewInvalidStateErrorWithDetail(op, o.status.String(),
			"order has no gateway payment reference")
	}
	if !o.status.IsTerminal() {
		return errs.NewInvalidStateErrorWithDetail(op, o.status.String(),
			"only cancelled or returned orders can be refunded")
	}
	return nil
}

// MarkRefunded records that the gateway accepted the refund.
func (o *Order) MarkRefunded(now time.Time) {
	o.paymentStatus = PaymentRefunded
	o.touch(now)
}

func (o *Order) touch(now time.Time) {
	o.updatedAt = now
}

func appendNote(existing, note string) string {
	if note == "" {
		return existing
	}
	if existing == "" {
		return note
	}
	return existing + "; " + note
}
