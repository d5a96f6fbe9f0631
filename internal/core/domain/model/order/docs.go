// Package order contains the Order aggregate root and its value objects.
//
// Order owns the lifecycle state machine of a customer order: the main line
// pending -> processing -> shipped -> delivered, the cancellation and return
// side branches with their request/approve/reject workflows, the link to a
// delivery route, and the payment state consulted by the refund flow.
//
// All transition rules live here. Application handlers load the aggregate,
// call a transition method, and persist the result; they never compute a
// status themselves. Two rules deserve a callout:
//
//   - An order linked to a delivery route is never cancelled directly; a
//     cancellation becomes a request that an administrator resolves.
//   - A route status propagation must not overwrite an order that sits in a
//     cancellation/return side branch or a terminal status (ApplyRouteStatus
//     reports such orders as skipped).
package order
