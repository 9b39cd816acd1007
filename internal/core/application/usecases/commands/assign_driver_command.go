package commands

import (
	"errors"

	"bookrider/internal/core/domain/model/kernel"
	"bookrider/internal/pkg/errs"
	"bookrider/internal/pkg/guard"
)

// ErrAssignDriverCommandIsNotConstructed is returned when the command
// was not created via its constructor.
var ErrAssignDriverCommandIsNotConstructed = errors.New(
	"AssignDriverCommand must be created via NewAssignDriverCommand constructor")

// AssignDriverCommand records a driver taking an accepted order.
type AssignDriverCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	driverID string

	guard guard.ConstructorGuard
}

// NewAssignDriverCommand creates a validated command.
func NewAssignDriverCommand(orderID kernel.UUID, driverID string) (AssignDriverCommand, error) {
	cmd := AssignDriverCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setDriverID(driverID),
	); err != nil {
		return AssignDriverCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignDriverCommand) Validate() error {
	return c.guard.Validate(ErrAssignDriverCommandIsNotConstructed)
}

// OrderID returns the order to take.
func (c AssignDriverCommand) OrderID() kernel.UUID { return c.orderID }

// DriverID returns the taking driver's identity.
func (c AssignDriverCommand) DriverID() string { return c.driverID }

func (c *AssignDriverCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *AssignDriverCommand) setDriverID(driverID string) error {
	if driverID == "" {
		return errs.NewValueIsRequiredError("driverID")
	}
	c.driverID = driverID
	return nil
}
