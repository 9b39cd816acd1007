package commands

import (
	"errors"
	"fmt"

	"bookrider/internal/core/domain/model/kernel"
	"bookrider/internal/pkg/errs"
	"bookrider/internal/pkg/guard"
)

// ErrGenerateQuoteCommandIsNotConstructed is returned when the command
// was not created via its constructor.
var ErrGenerateQuoteCommandIsNotConstructed = errors.New(
	"GenerateQuoteCommand must be created via NewGenerateQuoteCommand constructor")

// GenerateQuoteCommand asks for delivery prices of a book to the user's
// cart address from the nearest libraries stocking it.
type GenerateQuoteCommand struct { //nolint:recvcheck //using for validation
	userID   string
	bookID   kernel.UUID
	quantity int

	guard guard.ConstructorGuard
}

// NewGenerateQuoteCommand creates a validated quote request.
func NewGenerateQuoteCommand(userID string, bookID kernel.UUID, quantity int) (GenerateQuoteCommand, error) {
	cmd := GenerateQuoteCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setUserID(userID),
		cmd.setBookID(bookID),
		cmd.setQuantity(quantity),
	); err != nil {
		return GenerateQuoteCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c GenerateQuoteCommand) Validate() error {
	return c.guard.Validate(ErrGenerateQuoteCommandIsNotConstructed)
}

// UserID returns the requesting user's identity.
func (c GenerateQuoteCommand) UserID() string { return c.userID }

// BookID returns the requested book.
func (c GenerateQuoteCommand) BookID() kernel.UUID { return c.bookID }

// Quantity returns the requested number of copies.
func (c GenerateQuoteCommand) Quantity() int { return c.quantity }

func (c *GenerateQuoteCommand) setUserID(userID string) error {
	if userID == "" {
		return errs.NewValueIsRequiredError("userID")
	}
	c.userID = userID
	return nil
}

func (c *GenerateQuoteCommand) setBookID(bookID kernel.UUID) error {
	if err := bookID.Validate(); err != nil {
		return err
	}
	c.bookID = bookID
	return nil
}

func (c *GenerateQuoteCommand) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid", fmt.Errorf("%d is not greater than 0", quantity))
	}
	c.quantity = quantity
	return nil
}
