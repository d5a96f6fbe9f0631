package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrSubmitReturnCommandIsNotConstructed = errors.New(
	"SubmitReturnCommand must be created via NewSubmitReturnCommand constructor",
)

// SubmitReturnCommand represents a customer's request to return a delivered
// order. Carries the requesting user's id so ownership is checked before
// anything else; the return window (30 days after delivery, inclusive) is
// enforced by the aggregate.
type SubmitReturnCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	userID  kernel.UUID
	reason  string

	guard guard.ConstructorGuard
}

// NewSubmitReturnCommand creates a command to request a return.
// Validates that both ids are valid. The reason is optional.
func NewSubmitReturnCommand(orderID kernel.UUID, userID kernel.UUID, reason string) (SubmitReturnCommand, error) {
	command := SubmitReturnCommand{
		reason: reason,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setUserID(userID),
	); err != nil {
		return SubmitReturnCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrSubmitReturnCommandIsNotConstructed if validation fails.
func (c SubmitReturnCommand) Validate() error {
	return c.guard.Validate(ErrSubmitReturnCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to return.
func (c SubmitReturnCommand) OrderID() kernel.UUID {
	return c.orderID
}

// UserID returns the requesting customer's identifier.
func (c SubmitReturnCommand) UserID() kernel.UUID {
	return c.userID
}

// Reason returns the customer's return reason, possibly empty.
func (c SubmitReturnCommand) Reason() string {
	return c.reason
}

func (c *SubmitReturnCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *SubmitReturnCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}

	c.userID = userID
	return nil
}
