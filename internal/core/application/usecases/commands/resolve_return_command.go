package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrResolveReturnCommandIsNotConstructed = errors.New(
	"ResolveReturnCommand must be created via NewResolveReturnCommand constructor",
)

// ResolveReturnCommand represents an administrator's verdict on a pending
// return request: approve moves the order to returned, reject restores
// delivered. The note, if given, is appended to the return reason.
type ResolveReturnCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	resolution Resolution
	note       string

	guard guard.ConstructorGuard
}

// NewResolveReturnCommand creates a command to resolve a return request.
// The note is optional.
func NewResolveReturnCommand(orderID kernel.UUID, resolution Resolution, note string) (ResolveReturnCommand, error) {
	command := ResolveReturnCommand{
		note:  note,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setResolution(resolution),
	); err != nil {
		return ResolveReturnCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrResolveReturnCommandIsNotConstructed if validation fails.
func (c ResolveReturnCommand) Validate() error {
	return c.guard.Validate(ErrResolveReturnCommandIsNotConstructed)
}

// OrderID returns the identifier of the order under resolution.
func (c ResolveReturnCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Resolution returns the verdict.
func (c ResolveReturnCommand) Resolution() Resolution {
	return c.resolution
}

// Note returns the optional admin note.
func (c ResolveReturnCommand) Note() string {
	return c.note
}

func (c *ResolveReturnCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ResolveReturnCommand) setResolution(resolution Resolution) error {
	if err := resolution.Validate(); err != nil {
		return err
	}

	c.resolution = resolution
	return nil
}
