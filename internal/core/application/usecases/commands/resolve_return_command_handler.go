package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

// ResolveReturnCommandHandler applies an admin verdict to a pending return
// request.
type ResolveReturnCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewResolveReturnCommandHandler creates a handler for return resolutions.
func NewResolveReturnCommandHandler(uowFactory OrderUoWFactory) ResolveReturnCommandHandler {
	return ResolveReturnCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the resolution command and returns the status the order
// settled on: returned on approval, delivered on rejection.
func (h ResolveReturnCommandHandler) Handle(
	ctx context.Context, command ResolveReturnCommand,
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
		err = aggregate.ApproveReturn(command.Note(), now)
	} else {
		err = aggregate.RejectReturn(command.Note(), now)
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
