package commands

import (
	"context"
	"time"
)

// RoutePropagationReport summarizes a route status change: how many linked
// orders followed the route and how many were left alone because they sit in
// a cancellation/return side branch or a terminal status.
type RoutePropagationReport struct {
	OrdersUpdated int
	OrdersSkipped int
}

// SetRouteStatusCommandHandler changes a route's status and propagates it to
// the route's orders in the same transaction, so a route and its orders can
// never be observed disagreeing after commit.
type SetRouteStatusCommandHandler struct {
	uowFactory UoWFactory
}

// NewSetRouteStatusCommandHandler creates a handler for route status
// changes.
func NewSetRouteStatusCommandHandler(uowFactory UoWFactory) SetRouteStatusCommandHandler {
	return SetRouteStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the route status command and reports the propagation
// counts.
func (h SetRouteStatusCommandHandler) Handle(
	ctx context.Context, command SetRouteStatusCommand,
) (RoutePropagationReport, error) {
	if err := command.Validate(); err != nil {
		return RoutePropagationReport{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return RoutePropagationReport{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ordersRepo := uow.OrderRepository()
	routesRepo := uow.RouteRepository()

	routeAggregate, err := routesRepo.Get(ctx, command.RouteID())
	if err != nil {
		return RoutePropagationReport{}, err
	}

	if err = routeAggregate.ChangeStatus(command.Status()); err != nil {
		return RoutePropagationReport{}, err
	}

	if err = routesRepo.Update(ctx, routeAggregate); err != nil {
		return RoutePropagationReport{}, err
	}

	orders, err := ordersRepo.GetAllByRoute(ctx, command.RouteID())
	if err != nil {
		return RoutePropagationReport{}, err
	}

	now := time.Now().UTC()
	var report RoutePropagationReport
	for _, orderAggregate := range orders {
		applied, err := orderAggregate.ApplyRouteStatus(command.Status(), now)
		if err != nil {
			return RoutePropagationReport{}, err
		}
		if !applied {
			report.OrdersSkipped++
			continue
		}

		if err = ordersRepo.Update(ctx, orderAggregate); err != nil {
			return RoutePropagationReport{}, err
		}
		report.OrdersUpdated++
	}

	if err = uow.Commit(ctx); err != nil {
		return RoutePropagationReport{}, err
	}

	return report, nil
}
