package commands

import (
	"errors"

	"bookrider/internal/pkg/errs"
	"bookrider/internal/pkg/guard"
)

// ErrSetDeliveryAddressCommandIsNotConstructed is returned when the
// command was not created via its constructor.
var ErrSetDeliveryAddressCommandIsNotConstructed = errors.New(
	"SetDeliveryAddressCommand must be created via NewSetDeliveryAddressCommand constructor")

// SetDeliveryAddressCommand replaces the delivery address on the user's
// cart.
type SetDeliveryAddressCommand struct { //nolint:recvcheck //using for validation
	userID     string
	street     string
	city       string
	postalCode string

	guard guard.ConstructorGuard
}

// NewSetDeliveryAddressCommand creates a validated command. Street and
// city are required; the postal code may be empty.
func NewSetDeliveryAddressCommand(userID, street, city, postalCode string) (SetDeliveryAddressCommand, error) {
	cmd := SetDeliveryAddressCommand{
		postalCode: postalCode,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setUserID(userID),
		cmd.setStreet(street),
		cmd.setCity(city),
	); err != nil {
		return SetDeliveryAddressCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SetDeliveryAddressCommand) Validate() error {
	return c.guard.Validate(ErrSetDeliveryAddressCommandIsNotConstructed)
}

// UserID returns the acting user's identity.
func (c SetDeliveryAddressCommand) UserID() string { return c.userID }

// Street returns the address street line.
func (c SetDeliveryAddressCommand) Street() string { return c.street }

// City returns the address city.
func (c SetDeliveryAddressCommand) City() string { return c.city }

// PostalCode returns the address postal code, possibly empty.
func (c SetDeliveryAddressCommand) PostalCode() string { return c.postalCode }

func (c *SetDeliveryAddressCommand) setUserID(userID string) error {
	if userID == "" {
		return errs.NewValueIsRequiredError("userID")
	}
	c.userID = userID
	return nil
}

func (c *SetDeliveryAddressCommand) setStreet(street string) error {
	if street == "" {
		return errs.NewValueIsRequiredError("street")
	}
	c.street = street
	return nil
}

func (c *SetDeliveryAddressCommand) setCity(city string) error {
	if city == "" {
		return errs.NewValueIsRequiredError("city")
	}
	c.city = city
	return nil
}
