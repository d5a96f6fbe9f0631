package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDeleteRouteCommandHandler_Handle_UnlinksOrdersBeforeDeleting(t *testing.T) {
	ctx := t.Context()
	routeAggregate := restoreRoute(t, "Leeds", kernel.Pending)
	routeID := routeAggregate.ID()
	deliveryDate := routeAggregate.DeliveryDate()

	inFlight := restoreOrder(t, func(p *order.RestoreOrderParams) {
		p.Status = kernel.Shipped
		p.RouteID = &routeID
		p.DeliveryDate = &deliveryDate
	})
	delivered := restoreOrder(t, func(p *order.RestoreOrderParams) {
		p.Status = kernel.Delivered
		p.RouteID = &routeID
		p.DeliveryDate = &deliveryDate
	})

	cmd, _ := commands.NewDeleteRouteCommand(routeID)

	ordersRepo := new(MockOrderRepository)
	routesRepo := new(MockRouteRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(ordersRepo).Once(),
		uow.On("RouteRepository").Return(routesRepo).Once(),
		routesRepo.On("Get", ctx, routeID).Return(routeAggregate, nil).Once(),
		ordersRepo.On("GetAllByRoute", ctx, routeID).
			Return([]*order.Order{inFlight, delivered}, nil).Once(),
		ordersRepo.On("Update", ctx, inFlight).Return(nil).Once(),
		ordersRepo.On("Update", ctx, delivered).Return(nil).Once(),
		routesRepo.On("Delete", ctx, routeID).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDeleteRouteCommandHandler(factory)
	unlinked, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, 2, unlinked)

	// in-flight order resets to pending and is assignable again
	assert.Nil(t, inFlight.RouteID())
	assert.Equal(t, kernel.Pending, inFlight.Status())
	assert.True(t, inFlight.IsEligibleForAssignment())

	// delivered order keeps its status, only the link is gone
	assert.Nil(t, delivered.RouteID())
	assert.Equal(t, kernel.Delivered, delivered.Status())

	ordersRepo.AssertExpectations(t)
	routesRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestDeleteRouteCommandHandler_Handle_RouteNotFound(t *testing.T) {
	ctx := t.Context()
	routeID := kernel.NewUUID()
	cmd, _ := commands.NewDeleteRouteCommand(routeID)

	routesRepo := new(MockRouteRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(new(MockOrderRepository)).Once(),
		uow.On("RouteRepository").Return(routesRepo).Once(),
		routesRepo.On("Get", ctx, routeID).
			Return(nil, errs.NewObjectNotFoundError("routeID", routeID)).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDeleteRouteCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	routesRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
