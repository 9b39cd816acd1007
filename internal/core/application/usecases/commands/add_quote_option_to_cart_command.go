package commands

import (
	"errors"

	"bookrider/internal/core/domain/model/kernel"
	"bookrider/internal/pkg/errs"
	"bookrider/internal/pkg/guard"
)

// ErrAddQuoteOptionToCartCommandIsNotConstructed is returned when the
// command was not created via its constructor.
var ErrAddQuoteOptionToCartCommandIsNotConstructed = errors.New(
	"AddQuoteOptionToCartCommand must be created via NewAddQuoteOptionToCartCommand constructor")

// AddQuoteOptionToCartCommand accepts one option of a previously
// generated quote into the user's cart.
type AddQuoteOptionToCartCommand struct { //nolint:recvcheck //using for validation
	userID   string
	quoteID  kernel.UUID
	optionID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAddQuoteOptionToCartCommand creates a validated command.
func NewAddQuoteOptionToCartCommand(userID string, quoteID, optionID kernel.UUID) (AddQuoteOptionToCartCommand, error) {
	cmd := AddQuoteOptionToCartCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setUserID(userID),
		cmd.setQuoteID(quoteID),
		cmd.setOptionID(optionID),
	); err != nil {
		return AddQuoteOptionToCartCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AddQuoteOptionToCartCommand) Validate() error {
	return c.guard.Validate(ErrAddQuoteOptionToCartCommandIsNotConstructed)
}

// UserID returns the acting user's identity.
func (c AddQuoteOptionToCartCommand) UserID() string { return c.userID }

// QuoteID returns the quote the option belongs to.
func (c AddQuoteOptionToCartCommand) QuoteID() kernel.UUID { return c.quoteID }

// OptionID returns the accepted option.
func (c AddQuoteOptionToCartCommand) OptionID() kernel.UUID { return c.optionID }

func (c *AddQuoteOptionToCartCommand) setUserID(userID string) error {
	if userID == "" {
		return errs.NewValueIsRequiredError("userID")
	}
	c.userID = userID
	return nil
}

func (c *AddQuoteOptionToCartCommand) setQuoteID(quoteID kernel.UUID) error {
	if err := quoteID.Validate(); err != nil {
		return err
	}
	c.quoteID = quoteID
	return nil
}

func (c *AddQuoteOptionToCartCommand) setOptionID(optionID kernel.UUID) error {
	if err := optionID.Validate(); err != nil {
		return err
	}
	c.optionID = optionID
	return nil
}
