package commands

import (
	"errors"

	"bookrider/internal/core/domain/model/kernel"
	"bookrider/internal/pkg/errs"
	"bookrider/internal/pkg/guard"
)

// ErrPickUpOrderCommandIsNotConstructed is returned when the command was
// not created via its constructor.
var ErrPickUpOrderCommandIsNotConstructed = errors.New(
	"PickUpOrderCommand must be created via NewPickUpOrderCommand constructor")

// PickUpOrderCommand records the assigned driver collecting the books.
type PickUpOrderCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	driverID string

	guard guard.ConstructorGuard
}

// NewPickUpOrderCommand creates a validated command.
func NewPickUpOrderCommand(orderID kernel.UUID, driverID string) (PickUpOrderCommand, error) {
	cmd := PickUpOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setDriverID(driverID),
	); err != nil {
		return PickUpOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PickUpOrderCommand) Validate() error {
	return c.guard.Validate(ErrPickUpOrderCommandIsNotConstructed)
}

// OrderID returns the order being picked up.
func (c PickUpOrderCommand) OrderID() kernel.UUID { return c.orderID }

// DriverID returns the collecting driver's identity.
func (c PickUpOrderCommand) DriverID() string { return c.driverID }

func (c *PickUpOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *PickUpOrderCommand) setDriverID(driverID string) error {
	if driverID == "" {
		return errs.NewValueIsRequiredError("driverID")
	}
	c.driverID = driverID
	return nil
}
