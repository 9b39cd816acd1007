package commands

import (
	"errors"

	"bookrider/internal/core/domain/model/kernel"
	"bookrider/internal/pkg/errs"
	"bookrider/internal/pkg/guard"
)

// ErrDeliverOrderCommandIsNotConstructed is returned when the command
// was not created via its constructor.
var ErrDeliverOrderCommandIsNotConstructed = errors.New(
	"DeliverOrderCommand must be created via NewDeliverOrderCommand constructor")

// DeliverOrderCommand confirms delivery at the driver's reported
// location, optionally with a proof-of-delivery photo.
type DeliverOrderCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	driverID       string
	driverLocation kernel.Coordinate
	photoURL       string

	guard guard.ConstructorGuard
}

// NewDeliverOrderCommand creates a validated command. The reported
// latitude and longitude must form a valid coordinate.
func NewDeliverOrderCommand(
	orderID kernel.UUID,
	driverID string,
	latitude float64,
	longitude float64,
	photoURL string,
) (DeliverOrderCommand, error) {
	cmd := DeliverOrderCommand{
		photoURL: photoURL,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setDriverID(driverID),
		cmd.setDriverLocation(latitude, longitude),
	); err != nil {
		return DeliverOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c DeliverOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeliverOrderCommandIsNotConstructed)
}

// OrderID returns the order being delivered.
func (c DeliverOrderCommand) OrderID() kernel.UUID { return c.orderID }

// DriverID returns the delivering driver's identity.
func (c DeliverOrderCommand) DriverID() string { return c.driverID }

// DriverLocation returns where the driver reported from.
func (c DeliverOrderCommand) DriverLocation() kernel.Coordinate { return c.driverLocation }

// PhotoURL returns the proof-of-delivery photo URL, possibly empty.
func (c DeliverOrderCommand) PhotoURL() string { return c.photoURL }

func (c *DeliverOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *DeliverOrderCommand) setDriverID(driverID string) error {
	if driverID == "" {
		return errs.NewValueIsRequiredError("driverID")
	}
	c.driverID = driverID
	return nil
}

func (c *DeliverOrderCommand) setDriverLocation(latitude, longitude float64) error {
	location, err := kernel.NewCoordinate(latitude, longitude)
	if err != nil {
		return err
	}
	c.driverLocation = location
	return nil
}
