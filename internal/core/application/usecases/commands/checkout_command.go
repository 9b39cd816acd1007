package commands

import (
	"errors"

	"bookrider/internal/pkg/errs"
	"bookrider/internal/pkg/guard"
)

// ErrCheckoutCommandIsNotConstructed is returned when the command was
// not created via its constructor.
var ErrCheckoutCommandIsNotConstructed = errors.New(
	"CheckoutCommand must be created via NewCheckoutCommand constructor")

// CheckoutCommand turns the user's cart into pending delivery orders.
type CheckoutCommand struct { //nolint:recvcheck //using for validation
	userID       string
	noteToDriver string

	guard guard.ConstructorGuard
}

// NewCheckoutCommand creates a validated checkout request. The note to
// the driver may be empty.
func NewCheckoutCommand(userID, noteToDriver string) (CheckoutCommand, error) {
	cmd := CheckoutCommand{
		noteToDriver: noteToDriver,
		guard:        guard.NewConstructorGuard(),
	}

	if err := cmd.setUserID(userID); err != nil {
		return CheckoutCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CheckoutCommand) Validate() error {
	return c.guard.Validate(ErrCheckoutCommandIsNotConstructed)
}

// UserID returns the checking-out user's identity.
func (c CheckoutCommand) UserID() string { return c.userID }

// NoteToDriver returns the free-text note put on every created order.
func (c CheckoutCommand) NoteToDriver() string { return c.noteToDriver }

func (c *CheckoutCommand) setUserID(userID string) error {
	if userID == "" {
		return errs.NewValueIsRequiredError("userID")
	}
	c.userID = userID
	return nil
}
