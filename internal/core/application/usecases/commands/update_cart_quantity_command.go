package commands

import (
	"errors"
	"fmt"

	"bookrider/internal/core/domain/model/kernel"
	"bookrider/internal/pkg/errs"
	"bookrider/internal/pkg/guard"
)

// ErrUpdateCartQuantityCommandIsNotConstructed is returned when the
// command was not created via its constructor.
var ErrUpdateCartQuantityCommandIsNotConstructed = errors.New(
	"UpdateCartQuantityCommand must be created via NewUpdateCartQuantityCommand constructor")

// UpdateCartQuantityCommand changes how many copies of one book line
// the user wants.
type UpdateCartQuantityCommand struct { //nolint:recvcheck //using for validation
	userID    string
	subItemID kernel.UUID
	quantity  int

	guard guard.ConstructorGuard
}

// NewUpdateCartQuantityCommand creates a validated command.
func NewUpdateCartQuantityCommand(userID string, subItemID kernel.UUID, quantity int) (UpdateCartQuantityCommand, error) {
	cmd := UpdateCartQuantityCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setUserID(userID),
		cmd.setSubItemID(subItemID),
		cmd.setQuantity(quantity),
	); err != nil {
		return UpdateCartQuantityCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateCartQuantityCommand) Validate() error {
	return c.guard.Validate(ErrUpdateCartQuantityCommandIsNotConstructed)
}

// UserID returns the acting user's identity.
func (c UpdateCartQuantityCommand) UserID() string { return c.userID }

// SubItemID returns the book line to change.
func (c UpdateCartQuantityCommand) SubItemID() kernel.UUID { return c.subItemID }

// Quantity returns the new number of copies.
func (c UpdateCartQuantityCommand) Quantity() int { return c.quantity }

func (c *UpdateCartQuantityCommand) setUserID(userID string) error {
	if userID == "" {
		return errs.NewValueIsRequiredError("userID")
	}
	c.userID = userID
	return nil
}

func (c *UpdateCartQuantityCommand) setSubItemID(subItemID kernel.UUID) error {
	if err := subItemID.Validate(); err != nil {
		return err
	}
	c.subItemID = subItemID
	return nil
}

func (c *UpdateCartQuantityCommand) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid", fmt.Errorf("%d is not greater than 0", quantity))
	}
	c.quantity = quantity
	return nil
}
