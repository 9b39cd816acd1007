package commands

import (
	"errors"

	"bookrider/internal/core/domain/model/kernel"
	"bookrider/internal/pkg/errs"
	"bookrider/internal/pkg/guard"
)

// ErrAcceptOrderCommandIsNotConstructed is returned when the command was
// not created via its constructor.
var ErrAcceptOrderCommandIsNotConstructed = errors.New(
	"AcceptOrderCommand must be created via NewAcceptOrderCommand constructor")

// AcceptOrderCommand records a librarian accepting a pending order.
type AcceptOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	librarianID string

	guard guard.ConstructorGuard
}

// NewAcceptOrderCommand creates a validated command.
func NewAcceptOrderCommand(orderID kernel.UUID, librarianID string) (AcceptOrderCommand, error) {
	cmd := AcceptOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setLibrarianID(librarianID),
	); err != nil {
		return AcceptOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AcceptOrderCommand) Validate() error {
	return c.guard.Validate(ErrAcceptOrderCommandIsNotConstructed)
}

// OrderID returns the order to accept.
func (c AcceptOrderCommand) OrderID() kernel.UUID { return c.orderID }

// LibrarianID returns the accepting librarian's identity.
func (c AcceptOrderCommand) LibrarianID() string { return c.librarianID }

func (c *AcceptOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *AcceptOrderCommand) setLibrarianID(librarianID string) error {
	if librarianID == "" {
		return errs.NewValueIsRequiredError("librarianID")
	}
	c.librarianID = librarianID
	return nil
}
