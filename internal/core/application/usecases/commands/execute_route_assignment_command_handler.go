package commands

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/route"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// errNothingToAssign signals that a city had no assignable orders by the
// time its transaction ran. Not an error for the run as a whole.
var errNothingToAssign = errors.New("no assignable orders in city")

// CityAssignmentResult records what one committed city transaction did.
type CityAssignmentResult struct {
	City           string
	RouteID        kernel.UUID
	RouteCreated   bool
	OrdersAssigned int
}

// SkippedCity records a city whose transaction failed. The failure is
// isolated: other cities in the same run still commit.
type SkippedCity struct {
	City   string
	Reason string
}

// RouteAssignmentReport summarizes a batch assignment run.
type RouteAssignmentReport struct {
	AssignedOrders int
	CreatedRoutes  int
	ReusedRoutes   int
	Cities         []CityAssignmentResult
	Skipped        []SkippedCity
}

// ExecuteRouteAssignmentCommandHandler runs the batch assignment. Each
// assignment gets its own transaction, created through the factory, so one
// failing city never rolls back the others. The eligible-order set is re-read
// inside each city's transaction rather than carried over from a preview.
//
// Two runs racing on the same city are resolved by the storage layer's
// one-active-route-per-city constraint: the loser's route insert fails with
// errs.ErrObjectAlreadyExists and the city is retried once, finding and
// reusing the winner's route.
type ExecuteRouteAssignmentCommandHandler struct {
	uowFactory UoWFactory
}

// NewExecuteRouteAssignmentCommandHandler creates a handler for batch
// assignment runs.
func NewExecuteRouteAssignmentCommandHandler(uowFactory UoWFactory) ExecuteRouteAssignmentCommandHandler {
	return ExecuteRouteAssignmentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the batch assignment command and reports per-city what
// was created, reused and assigned. The command itself only fails on
// validation; per-city failures are reported in the Skipped list.
func (h ExecuteRouteAssignmentCommandHandler) Handle(
	ctx context.Context, command ExecuteRouteAssignmentCommand,
) (RouteAssignmentReport, error) {
	if err := command.Validate(); err != nil {
		return RouteAssignmentReport{}, err
	}

	var report RouteAssignmentReport
	for _, assignment := range command.Assignments() {
		result, err := h.assignCity(ctx, assignment.City(), assignment.Date())
		if errors.Is(err, errs.ErrObjectAlreadyExists) {
			// lost the create race, the winner's route is committed now
			result, err = h.assignCity(ctx, assignment.City(), assignment.Date())
		}
		if errors.Is(err, errNothingToAssign) {
			continue
		}
		if err != nil {
			report.Skipped = append(report.Skipped, SkippedCity{City: assignment.City(), Reason: err.Error()})
			continue
		}

		report.Cities = append(report.Cities, result)
		report.AssignedOrders += result.OrdersAssigned
		if result.RouteCreated {
			report.CreatedRoutes++
		} else {
			report.ReusedRoutes++
		}
	}

	return report, nil
}

// assignCity processes one city in its own transaction: load the assignable
// orders, find or create the active route, link every order to it.
func (h ExecuteRouteAssignmentCommandHandler) assignCity(
	ctx context.Context, city string, deliveryDate time.Time,
) (CityAssignmentResult, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CityAssignmentResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ordersRepo := uow.OrderRepository()
	routesRepo := uow.RouteRepository()

	orders, err := ordersRepo.GetEligibleByCity(ctx, city)
	if err != nil {
		return CityAssignmentResult{}, err
	}
	if len(orders) == 0 {
		return CityAssignmentResult{}, errNothingToAssign
	}

	routeAggregate, created, err := h.findOrCreateRoute(ctx, routesRepo, city, deliveryDate)
	if err != nil {
		return CityAssignmentResult{}, err
	}

	now := time.Now().UTC()
	for _, orderAggregate := range orders {
		if err = orderAggregate.AssignToRoute(
			routeAggregate.ID(), routeAggregate.Status(), routeAggregate.DeliveryDate(), now,
		); err != nil {
			return CityAssignmentResult{}, err
		}
		if err = ordersRepo.Update(ctx, orderAggregate); err != nil {
			return CityAssignmentResult{}, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return CityAssignmentResult{}, err
	}

	return CityAssignmentResult{
		City:           city,
		RouteID:        routeAggregate.ID(),
		RouteCreated:   created,
		OrdersAssigned: len(orders),
	}, nil
}

// findOrCreateRoute reuses the city's active route if one exists, otherwise
// creates one with the run's delivery date. A create that collides with a
// concurrent run surfaces errs.ErrObjectAlreadyExists to the caller, which
// must retry in a fresh transaction.
func (h ExecuteRouteAssignmentCommandHandler) findOrCreateRoute(
	ctx context.Context, routesRepo ports.RouteRepository, city string, deliveryDate time.Time,
) (*route.DeliveryRoute, bool, error) {
	existing, err := routesRepo.GetActiveByCity(ctx, city)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, false, err
	}

	created, err := route.NewRoute(kernel.NewUUID(), city, deliveryDate)
	if err != nil {
		return nil, false, err
	}

	if err = routesRepo.Add(ctx, created); err != nil {
		return nil, false, err
	}

	return created, true, nil
}
