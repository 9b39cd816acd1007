package commands

import (
	"errors"

	"bookrider/internal/core/domain/model/kernel"
	"bookrider/internal/pkg/errs"
	"bookrider/internal/pkg/guard"
)

// ErrCancelOrderCommandIsNotConstructed is returned when the command was
// not created via its constructor.
var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor")

// CancelOrderCommand cancels a user's own order before it is in transit.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	userID  string

	guard guard.ConstructorGuard
}

// NewCancelOrderCommand creates a validated command.
func NewCancelOrderCommand(orderID kernel.UUID, userID string) (CancelOrderCommand, error) {
	cmd := CancelOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setUserID(userID),
	); err != nil {
		return CancelOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

// OrderID returns the order to cancel.
func (c CancelOrderCommand) OrderID() kernel.UUID { return c.orderID }

// UserID returns the requesting user's identity.
func (c CancelOrderCommand) UserID() string { return c.userID }

func (c *CancelOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CancelOrderCommand) setUserID(userID string) error {
	if userID == "" {
		return errs.NewValueIsRequiredError("userID")
	}
	c.userID = userID
	return nil
}
