// Package route contains the DeliveryRoute aggregate root: a geographic
// delivery batch identified by city and delivery date. Routes are created
// by the assignment batcher (or manually by an administrator); their status
// changes are cascaded onto linked orders by the propagation command.
package route
