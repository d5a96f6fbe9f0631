package commands

import (
	"context"
	"time"
)

// SubmitReturnCommandHandler processes return submissions for delivered
// orders. Ownership is verified before state, so a non-owner probing another
// customer's order learns nothing about its status.
type SubmitReturnCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewSubmitReturnCommandHandler creates a handler for return submissions.
func NewSubmitReturnCommandHandler(uowFactory OrderUoWFactory) SubmitReturnCommandHandler {
	return SubmitReturnCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the return command. On success it reports how many days
// remain in the return window, for the customer-facing confirmation.
func (h SubmitReturnCommandHandler) Handle(ctx context.Context, command SubmitReturnCommand) (int, error) {
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

	aggregate, err := ordersRepo.Get(ctx, command.OrderID())
	if err != nil {
		return 0, err
	}

	daysRemaining, err := aggregate.RequestReturn(command.UserID(), command.Reason(), time.Now().UTC())
	if err != nil {
		return 0, err
	}

	if err = ordersRepo.Update(ctx, aggregate); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return daysRemaining, nil
}
