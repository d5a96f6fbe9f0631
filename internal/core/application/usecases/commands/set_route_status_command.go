package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrSetRouteStatusCommandIsNotConstructed = errors.New(
	"SetRouteStatusCommand must be created via NewSetRouteStatusCommand constructor",
)

// SetRouteStatusCommand represents a logistics update to a delivery route:
// the route moves to the given status and the change is propagated onto
// every linked order that is still following its route.
type SetRouteStatusCommand struct { //nolint:recvcheck //using for validation
	routeID kernel.UUID
	status  kernel.Status

	guard guard.ConstructorGuard
}

// NewSetRouteStatusCommand creates a command to change a route's status.
// The status must belong to the route vocabulary; cancellation and return
// side branches are order-only.
func NewSetRouteStatusCommand(routeID kernel.UUID, status kernel.Status) (SetRouteStatusCommand, error) {
	command := SetRouteStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setRouteID(routeID),
		command.setStatus(status),
	); err != nil {
		return SetRouteStatusCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrSetRouteStatusCommandIsNotConstructed if validation fails.
func (c SetRouteStatusCommand) Validate() error {
	return c.guard.Validate(ErrSetRouteStatusCommandIsNotConstructed)
}

// RouteID returns the identifier of the route to update.
func (c SetRouteStatusCommand) RouteID() kernel.UUID {
	return c.routeID
}

// Status returns the target status.
func (c SetRouteStatusCommand) Status() kernel.Status {
	return c.status
}

func (c *SetRouteStatusCommand) setRouteID(routeID kernel.UUID) error {
	if err := routeID.Validate(); err != nil {
		return err
	}

	c.routeID = routeID
	return nil
}

func (c *SetRouteStatusCommand) setStatus(status kernel.Status) error {
	if err := status.ValidateForRoute(); err != nil {
		return err
	}

	c.status = status
	return nil
}
