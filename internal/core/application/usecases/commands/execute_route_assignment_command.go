package commands

import (
	"errors"
	"strings"
	"time"

	"fulfillment/internal/pkg/guard"
)

var (
	ErrExecuteRouteAssignmentCommandIsNotConstructed = errors.New(
		"ExecuteRouteAssignmentCommand must be created via NewExecuteRouteAssignmentCommand constructor",
	)
	ErrAssignmentsAreRequired   = errors.New("at least one assignment is required")
	ErrAssignmentCityIsRequired = errors.New("assignment city is required")
	ErrDeliveryDateIsRequired   = errors.New("delivery date is required")
)

// RouteAssignment pairs a city with the delivery date a new route for that
// city would get. Typically taken from a preview's newRoutes/existingRoutes
// entries; a reused route keeps its own date regardless of the one given
// here.
type RouteAssignment struct {
	city string
	date time.Time
}

// NewRouteAssignment creates one city assignment for a batch run.
func NewRouteAssignment(city string, date time.Time) (RouteAssignment, error) {
	if strings.TrimSpace(city) == "" {
		return RouteAssignment{}, ErrAssignmentCityIsRequired
	}
	if date.IsZero() {
		return RouteAssignment{}, ErrDeliveryDateIsRequired
	}

	return RouteAssignment{city: city, date: date}, nil
}

// City returns the shipping city this assignment targets. Matching against
// orders and routes is trim + case-insensitive.
func (a RouteAssignment) City() string {
	return a.city
}

// Date returns the delivery date for a route created by this assignment.
func (a RouteAssignment) Date() time.Time {
	return a.date
}

// ExecuteRouteAssignmentCommand runs a batch assignment: for every listed
// city, the assignable orders are re-resolved and attached to that city's
// active delivery route, creating the route first where none exists.
//
// Example:
//
//	assignment, err := NewRouteAssignment("London", time.Now().AddDate(0, 0, 3))
//	if err != nil {
//	    return fmt.Errorf("invalid assignment: %w", err)
//	}
//
//	cmd, err := NewExecuteRouteAssignmentCommand([]RouteAssignment{assignment})
//	if err != nil {
//	    return fmt.Errorf("invalid assignment data: %w", err)
//	}
//
//	handler := NewExecuteRouteAssignmentCommandHandler(uowFactory)
//	report, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("assignment run failed: %w", err)
//	}
//	fmt.Printf("Assigned %d orders across %d cities", report.AssignedOrders, len(report.Cities))
type ExecuteRouteAssignmentCommand struct { //nolint:recvcheck //using for validation
	assignments []RouteAssignment

	guard guard.ConstructorGuard
}

// NewExecuteRouteAssignmentCommand creates a command to run a batch
// assignment over the given city assignments.
func NewExecuteRouteAssignmentCommand(assignments []RouteAssignment) (ExecuteRouteAssignmentCommand, error) {
	if len(assignments) == 0 {
		return ExecuteRouteAssignmentCommand{}, ErrAssignmentsAreRequired
	}

	for _, assignment := range assignments {
		if strings.TrimSpace(assignment.city) == "" {
			return ExecuteRouteAssignmentCommand{}, ErrAssignmentCityIsRequired
		}
		if assignment.date.IsZero() {
			return ExecuteRouteAssignmentCommand{}, ErrDeliveryDateIsRequired
		}
	}

	return ExecuteRouteAssignmentCommand{
		assignments: append([]RouteAssignment(nil), assignments...),
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrExecuteRouteAssignmentCommandIsNotConstructed if validation
// fails.
func (c ExecuteRouteAssignmentCommand) Validate() error {
	return c.guard.Validate(ErrExecuteRouteAssignmentCommandIsNotConstructed)
}

// Assignments returns the city assignments for this run.
func (c ExecuteRouteAssignmentCommand) Assignments() []RouteAssignment {
	return append([]RouteAssignment(nil), c.assignments...)
}
