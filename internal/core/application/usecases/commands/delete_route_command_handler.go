package commands

import (
	"context"
	"time"
)

// DeleteRouteCommandHandler removes a route after detaching its orders.
// Unlinking and deletion happen in one transaction, so no order is ever
// observed pointing at a route that no longer exists.
type DeleteRouteCommandHandler struct {
	uowFactory UoWFactory
}

// NewDeleteRouteCommandHandler creates a handler for route deletions.
func NewDeleteRouteCommandHandler(uowFactory UoWFactory) DeleteRouteCommandHandler {
	return DeleteRouteCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the deletion command. Returns how many orders were
// detached from the route.
func (h DeleteRouteCommandHandler) Handle(ctx context.Context, command DeleteRouteCommand) (int, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ordersRepo := uow.OrderRepository()
	routesRepo := uow.RouteRepository()

	// existence check, so a bad id reports not-found rather than deleting
	// zero rows silently
	if _, err := routesRepo.Get(ctx, command.RouteID()); err != nil {
		return 0, err
	}

	orders, err := ordersRepo.GetAllByRoute(ctx, command.RouteID())
	if err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	for _, orderAggregate := range orders {
		orderAggregate.UnlinkFromRoute(now)
		if err = ordersRepo.Update(ctx, orderAggregate); err != nil {
			return 0, err
		}
	}

	if err = routesRepo.Delete(ctx, command.RouteID()); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return len(orders), nil
}
