package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

const refundOperation = "refund order"

// RefundOrderCommandHandler initiates a refund through the payment gateway.
//
// The gateway call runs under its own deadline. Any gateway failure, timeout
// included, returns an errs.UpstreamGatewayError before the order is
// mutated, so the operation is safe to retry: the payment status flips to
// refunded only after the gateway has accepted the refund. An order already
// refunded fails the precondition check, which keeps a retry of a completed
// refund from charging the gateway twice.
type RefundOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	gateway    ports.PaymentGateway
	timeout    time.Duration
}

// NewRefundOrderCommandHandler creates a handler for refund initiation.
// The timeout bounds the gateway call.
func NewRefundOrderCommandHandler(
	uowFactory OrderUoWFactory, gateway ports.PaymentGateway, timeout time.Duration,
) RefundOrderCommandHandler {
	return RefundOrderCommandHandler{
		uowFactory: uowFactory,
		gateway:    gateway,
		timeout:    timeout,
	}
}

// Handle processes the refund command and returns the gateway's refund
// reference on success.
func (h RefundOrderCommandHandler) Handle(
	ctx context.Context, command RefundOrderCommand,
) (ports.RefundResult, error) {
	if err := command.Validate(); err != nil {
		return ports.RefundResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ports.RefundResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ordersRepo := uow.OrderRepository()

	aggregate, err := ordersRepo.Get(ctx, command.OrderID())
	if err != nil {
		return ports.RefundResult{}, err
	}

	if err = aggregate.EnsureRefundable(); err != nil {
		return ports.RefundResult{}, err
	}

	gatewayCtx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	result, err := h.gateway.Refund(gatewayCtx, aggregate.PaymentIntentID())
	if err != nil {
		return ports.RefundResult{}, errs.NewUpstreamGatewayErrorWithCause(refundOperation, err)
	}
	if !result.Outcome.Accepted() {
		return ports.RefundResult{}, errs.NewUpstreamGatewayError(refundOperation, string(result.Outcome))
	}

	aggregate.MarkRefunded(time.Now().UTC())

	if err = ordersRepo.Update(ctx, aggregate); err != nil {
		return ports.RefundResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return ports.RefundResult{}, err
	}

	return result, nil
}
