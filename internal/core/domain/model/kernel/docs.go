// Package kernel contains the shared kernel of the fulfillment domain:
// value objects used by more than one aggregate.
//
// It provides:
//   - UUID: identifier value object wrapping github.com/google/uuid
//   - Status: the lifecycle status vocabulary shared by Order and DeliveryRoute
//   - Actor: who performed an action (customer or administrator)
//
// Order and DeliveryRoute deliberately share one Status type: a route's
// status is propagated onto its linked orders, so keeping a single
// vocabulary makes that sync a plain assignment instead of a mapping.
package kernel
