package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// SubmitCancellationResult reports which path a cancellation took and the
// status the order ended up in, so callers can show the resulting state
// without a second read.
type SubmitCancellationResult struct {
	Outcome order.CancellationOutcome
	Status  kernel.Status
}

// SubmitCancellationCommandHandler processes cancellation submissions.
// Loads the order, lets the aggregate decide between direct cancellation and
// a pending request, and persists the result under the status guard so two
// racing submissions cannot both win.
type SubmitCancellationCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewSubmitCancellationCommandHandler creates a handler for cancellation
// submissions.
func NewSubmitCancellationCommandHandler(uowFactory OrderUoWFactory) SubmitCancellationCommandHandler {
	return SubmitCancellationCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the cancellation command and reports which path it took:
// order.DirectCancellation for an unrouted order cancelled in one step, or
// order.CancellationRequest when the order is on a route and the request
// awaits admin resolution. A user actor must own the order; the aggregate
// rejects anyone else with a Forbidden error.
func (h SubmitCancellationCommandHandler) Handle(
	ctx context.Context, command SubmitCancellationCommand,
) (SubmitCancellationResult, error) {
	if err := command.Validate(); err != nil {
		return SubmitCancellationResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return SubmitCancellationResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ordersRepo := uow.OrderRepository()

	aggregate, err := ordersRepo.Get(ctx, command.OrderID())
	if err != nil {
		return SubmitCancellationResult{}, err
	}

	outcome, err := aggregate.Cancel(command.Actor(), command.UserID(), command.Reason(), time.Now().UTC())
	if err != nil {
		return SubmitCancellationResult{}, err
	}

	if err = ordersRepo.Update(ctx, aggregate); err != nil {
		return SubmitCancellationResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return SubmitCancellationResult{}, err
	}

	return SubmitCancellationResult{Outcome: outcome, Status: aggregate.Status()}, nil
}
