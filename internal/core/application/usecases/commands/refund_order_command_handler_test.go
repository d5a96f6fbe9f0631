package commands_test

import (
	"errors"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const refundTimeout = 5 * time.Second

// refundableOrder builds a cancelled card order with a confirmed payment,
// the state a refund is legal in.
func refundableOrder(t *testing.T) *order.Order {
	t.Helper()
	return restoreOrder(t, func(p *order.RestoreOrderParams) {
		p.Status = kernel.Cancelled
	})
}

func TestRefundOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	aggregate := refundableOrder(t)
	cmd, _ := commands.NewRefundOrderCommand(aggregate.ID())

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	gateway := new(MockPaymentGateway)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		// the gateway call runs under a derived deadline context
		gateway.On("Refund", mock.Anything, "pi_test_123").
			Return(ports.RefundResult{RefundID: "re_42", Outcome: ports.RefundSucceeded}, nil).Once(),
		repo.On("Update", ctx, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRefundOrderCommandHandler(factory, gateway, refundTimeout)
	result, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, "re_42", result.RefundID)
	assert.Equal(t, order.PaymentRefunded, aggregate.PaymentStatus())
	repo.AssertExpectations(t)
	gateway.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestRefundOrderCommandHandler_Handle_PendingOutcomeIsAccepted(t *testing.T) {
	ctx := t.Context()
	aggregate := refundableOrder(t)
	cmd, _ := commands.NewRefundOrderCommand(aggregate.ID())

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	gateway := new(MockPaymentGateway)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		gateway.On("Refund", mock.Anything, "pi_test_123").
			Return(ports.RefundResult{RefundID: "re_43", Outcome: ports.RefundPending}, nil).Once(),
		repo.On("Update", ctx, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRefundOrderCommandHandler(factory, gateway, refundTimeout)
	_, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, order.PaymentRefunded, aggregate.PaymentStatus())
}

func TestRefundOrderCommandHandler_Handle_GatewayErrorLeavesOrderUntouched(t *testing.T) {
	ctx := t.Context()
	aggregate := refundableOrder(t)
	cmd, _ := commands.NewRefundOrderCommand(aggregate.ID())

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	gateway := new(MockPaymentGateway)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		gateway.On("Refund", mock.Anything, "pi_test_123").
			Return(ports.RefundResult{}, errors.New("dial tcp: i/o timeout")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRefundOrderCommandHandler(factory, gateway, refundTimeout)
	_, err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrUpstreamGateway)
	assert.Equal(t, order.PaymentPaid, aggregate.PaymentStatus())
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestRefundOrderCommandHandler_Handle_RejectedOutcome(t *testing.T) {
	ctx := t.Context()
	aggregate := refundableOrder(t)
	cmd, _ := commands.NewRefundOrderCommand(aggregate.ID())

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	gateway := new(MockPaymentGateway)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		gateway.On("Refund", mock.Anything, "pi_test_123").
			Return(ports.RefundResult{RefundID: "re_44", Outcome: ports.RefundFailed}, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRefundOrderCommandHandler(factory, gateway, refundTimeout)
	_, err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrUpstreamGateway)
	assert.Equal(t, order.PaymentPaid, aggregate.PaymentStatus())
}

func TestRefundOrderCommandHandler_Handle_NotRefundableSkipsGateway(t *testing.T) {
	ctx := t.Context()
	// pending order, not terminal
	aggregate := restoreOrder(t, nil)
	cmd, _ := commands.NewRefundOrderCommand(aggregate.ID())

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	gateway := new(MockPaymentGateway)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRefundOrderCommandHandler(factory, gateway, refundTimeout)
	_, err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrInvalidState)
	gateway.AssertNotCalled(t, "Refund", mock.Anything, mock.Anything)
}

func TestRefundOrderCommandHandler_Handle_CashOrderRejected(t *testing.T) {
	ctx := t.Context()
	aggregate := restoreOrder(t, func(p *order.RestoreOrderParams) {
		p.Status = kernel.Cancelled
		p.PaymentMethod = order.PaymentMethodCashOnDelivery
		p.PaymentStatus = order.PaymentPaid
		p.PaymentIntentID = ""
	})
	cmd, _ := commands.NewRefundOrderCommand(aggregate.ID())

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	gateway := new(MockPaymentGateway)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewRefundOrderCommandHandler(factory, gateway, refundTimeout)
	_, err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrInvalidState)
	gateway.AssertNotCalled(t, "Refund", mock.Anything, mock.Anything)
}
