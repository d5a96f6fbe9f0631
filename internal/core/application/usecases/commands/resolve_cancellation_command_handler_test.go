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

// requestedOrder builds an order sitting in cancellation_requested with a
// route link, the state an admin sees in the triage queue.
func requestedOrder(t *testing.T) *order.Order {
	t.Helper()
	routeID := kernel.NewUUID()
	requestedAt := fixedNow.AddDate(0, 0, -1)
	actor := kernel.ActorUser
	deliveryDate := fixedNow.AddDate(0, 0, 2)
	return restoreOrder(t, func(p *order.RestoreOrderParams) {
		p.Status = kernel.CancellationRequested
		p.RouteID = &routeID
		p.DeliveryDate = &deliveryDate
		p.CancellationReason = "changed my mind"
		p.CancellationRequestedAt = &requestedAt
		p.CancelledBy = &actor
	})
}

func TestResolveCancellationCommandHandler_Handle_Approve(t *testing.T) {
	ctx := t.Context()
	aggregate := requestedOrder(t)
	cmd, _ := commands.NewResolveCancellationCommand(aggregate.ID(), commands.ResolutionApprove, "restocked")

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		repo.On("Update", ctx, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewResolveCancellationCommandHandler(factory)
	status, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, kernel.Cancelled, status)
	assert.Equal(t, kernel.Cancelled, aggregate.Status())
	assert.Nil(t, aggregate.RouteID())
	assert.Nil(t, aggregate.DeliveryDate())
	assert.Equal(t, "changed my mind; restocked", aggregate.CancellationReason())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestResolveCancellationCommandHandler_Handle_RejectRestoresRouteStatus(t *testing.T) {
	ctx := t.Context()
	aggregate := requestedOrder(t) // delivery date in the future
	cmd, _ := commands.NewResolveCancellationCommand(aggregate.ID(), commands.ResolutionReject, "already picked")

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		repo.On("Update", ctx, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewResolveCancellationCommandHandler(factory)
	status, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, kernel.Processing, status)
	assert.Equal(t, kernel.Processing, aggregate.Status())
	assert.NotNil(t, aggregate.RouteID())
	assert.Nil(t, aggregate.CancelledBy())
}

func TestResolveCancellationCommandHandler_Handle_NoPendingRequest(t *testing.T) {
	ctx := t.Context()
	aggregate := restoreOrder(t, nil) // plain pending order
	cmd, _ := commands.NewResolveCancellationCommand(aggregate.ID(), commands.ResolutionApprove, "")

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewResolveCancellationCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrInvalidState)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
