package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrSubmitCancellationCommandIsNotConstructed = errors.New(
	"SubmitCancellationCommand must be created via NewSubmitCancellationCommand constructor",
)

// SubmitCancellationCommand represents a request to cancel an order.
// Carries the requesting user's id: a customer may only cancel their own
// order, while an admin actor may cancel any. Whether this cancels
// immediately or opens a request for review depends on the order's state:
// orders already scheduled on a delivery route go through admin resolution.
//
// Example:
//
//	cmd, err := NewSubmitCancellationCommand(orderID, userID, kernel.ActorUser, "ordered by mistake")
//	if err != nil {
//	    return fmt.Errorf("invalid cancellation data: %w", err)
//	}
//
//	handler := NewSubmitCancellationCommandHandler(uowFactory)
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("failed to cancel order: %w", err)
//	}
//	fmt.Printf("Cancellation outcome: %s", result.Outcome)
type SubmitCancellationCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	userID  kernel.UUID
	actor   kernel.Actor
	reason  string

	guard guard.ConstructorGuard
}

// NewSubmitCancellationCommand creates a command to cancel an order.
// Validates that both ids are valid and the actor is user or admin. The
// reason is optional.
func NewSubmitCancellationCommand(
	orderID kernel.UUID, userID kernel.UUID, actor kernel.Actor, reason string,
) (SubmitCancellationCommand, error) {
	command := SubmitCancellationCommand{
		reason: reason,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setUserID(userID),
		command.setActor(actor),
	); err != nil {
		return SubmitCancellationCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrSubmitCancellationCommandIsNotConstructed if validation fails.
func (c SubmitCancellationCommand) Validate() error {
	return c.guard.Validate(ErrSubmitCancellationCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to cancel.
func (c SubmitCancellationCommand) OrderID() kernel.UUID {
	return c.orderID
}

// UserID returns the requesting caller's identifier.
func (c SubmitCancellationCommand) UserID() kernel.UUID {
	return c.userID
}

// Actor returns who initiates the cancellation.
func (c SubmitCancellationCommand) Actor() kernel.Actor {
	return c.actor
}

// Reason returns the customer-facing cancellation reason, possibly empty.
func (c SubmitCancellationCommand) Reason() string {
	return c.reason
}

func (c *SubmitCancellationCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *SubmitCancellationCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	c.userID = userID
	return nil
}

func (c *SubmitCancellationCommand) setActor(actor kernel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}
