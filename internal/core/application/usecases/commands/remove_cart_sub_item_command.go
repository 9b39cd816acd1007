package commands

import (
	"errors"

	"bookrider/internal/core/domain/model/kernel"
	"bookrider/internal/pkg/errs"
	"bookrider/internal/pkg/guard"
)

// ErrRemoveCartSubItemCommandIsNotConstructed is returned when the
// command was not created via its constructor.
var ErrRemoveCartSubItemCommandIsNotConstructed = errors.New(
	"RemoveCartSubItemCommand must be created via NewRemoveCartSubItemCommand constructor")

// RemoveCartSubItemCommand takes one book line out of the user's cart.
type RemoveCartSubItemCommand struct { //nolint:recvcheck //using for validation
	userID    string
	subItemID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRemoveCartSubItemCommand creates a validated command.
func NewRemoveCartSubItemCommand(userID string, subItemID kernel.UUID) (RemoveCartSubItemCommand, error) {
	cmd := RemoveCartSubItemCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setUserID(userID),
		cmd.setSubItemID(subItemID),
	); err != nil {
		return RemoveCartSubItemCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RemoveCartSubItemCommand) Validate() error {
	return c.guard.Validate(ErrRemoveCartSubItemCommandIsNotConstructed)
}

// UserID returns the acting user's identity.
func (c RemoveCartSubItemCommand) UserID() string { return c.userID }

// SubItemID returns the book line to remove.
func (c RemoveCartSubItemCommand) SubItemID() kernel.UUID { return c.subItemID }

func (c *RemoveCartSubItemCommand) setUserID(userID string) error {
	if userID == "" {
		return errs.NewValueIsRequiredError("userID")
	}
	c.userID = userID
	return nil
}

func (c *RemoveCartSubItemCommand) setSubItemID(subItemID kernel.UUID) error {
	if err := subItemID.Validate(); err != nil {
		return err
	}
	c.subItemID = subItemID
	return nil
}
