package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrResolveCancellationCommandIsNotConstructed = errors.New(
	"ResolveCancellationCommand must be created via NewResolveCancellationCommand constructor",
)

// ResolveCancellationCommand represents an administrator's verdict on a
// pending cancellation request: approve cancels the order and removes it
// from its route, reject restores a status consistent with the route's
// delivery date. The note, if given, is appended to the cancellation reason
// for the audit trail.
type ResolveCancellationCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	resolution Resolution
	note       string

	guard guard.ConstructorGuard
}

// NewResolveCancellationCommand creates a command to resolve a cancellation
// request. The note is optional.
func NewResolveCancellationCommand(orderID kernel.UUID, resolution Resolution, note string) (ResolveCancellationCommand, error) {
	command := ResolveCancellationCommand{
		note:  note,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setResolution(resolution),
	); err != nil {
		return ResolveCancellationCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrResolveCancellationCommandIsNotConstructed if validation fails.
func (c ResolveCancellationCommand) Validate() error {
	return c.guard.Validate(ErrResolveCancellationCommandIsNotConstructed)
}

// OrderID returns the identifier of the order under resolution.
func (c ResolveCancellationCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Resolution returns the verdict.
func (c ResolveCancellationCommand) Resolution() Resolution {
	return c.resolution
}

// Note returns the optional admin note.
func (c ResolveCancellationCommand) Note() string {
	return c.note
}

func (c *ResolveCancellationCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ResolveCancellationCommand) setResolution(resolution Resolution) error {
	if err := resolution.Validate(); err != nil {
		return err
	}

	c.resolution = resolution
	return nil
}
