package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

// ResolveCancellationCommandHandler applies an admin verdict to a pending
// cancellation request. The aggregate rejects the verdict unless the order
// is still in cancellation_requested, so a stale admin tab cannot overwrite
// a request resolved by someone else.
type ResolveCancellationCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewResolveCancellationCommandHandler creates a handler for cancellation
// resolutions.
func NewResolveCancellationCommandHandler(uowFactory OrderUoWFactory) ResolveCancellationCommandHandler {
	return ResolveCancellationCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the resolution command and returns the status the order
// settled on: cancelled on approval, the restored status on rejection.
func (h ResolveCancellationCommandHandler) Handle(
	ctx context.Context, command ResolveCancellationCommand,
) (kernel.Status, error) {
	if err := command.Validate(); err != nil {
		return kernel.Unknown, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.Unknown, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ordersRepo := uow.OrderRepository()

	aggregate, err := ordersRepo.Get(ctx, command.OrderID())
	if err != nil {
		return kernel.Unknown, err
	}

	now := time.Now().UTC()
	if command.Resolution() == ResolutionApprove {
		err = aggregate.ApproveCancellation(command.Note(), now)
	} else {
		err = aggregate.RejectCancellation(command.Note(), now)
	}
	if err != nil {
		return kernel.Unknown, err
	}

	if err = ordersRepo.Update(ctx, aggregate); err != nil {
		return kernel.Unknown, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.Unknown, err
	}

	return aggregate.Status(), nil
}
