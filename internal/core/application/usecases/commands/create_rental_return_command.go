package commands

import (
	"errors"

	"bookrider/internal/core/domain/model/rental"
	"bookrider/internal/pkg/errs"
	"bookrider/internal/pkg/guard"
)

// ErrCreateRentalReturnCommandIsNotConstructed is returned when the
// command was not created via its constructor.
var ErrCreateRentalReturnCommandIsNotConstructed = errors.New(
	"CreateRentalReturnCommand must be created via NewCreateRentalReturnCommand constructor")

// CreateRentalReturnCommand requests sending rented books back. With
// inPerson set the user brings them back themselves; otherwise a pickup
// order per library is created.
type CreateRentalReturnCommand struct { //nolint:recvcheck //using for validation
	userID   string
	items    []rental.ReturnItem
	inPerson bool

	guard guard.ConstructorGuard
}

// NewCreateRentalReturnCommand creates a validated command. Items must
// already be constructed return lines and there must be at least one.
func NewCreateRentalReturnCommand(userID string, items []rental.ReturnItem, inPerson bool) (CreateRentalReturnCommand, error) {
	cmd := CreateRentalReturnCommand{
		inPerson: inPerson,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setUserID(userID),
		cmd.setItems(items),
	); err != nil {
		return CreateRentalReturnCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateRentalReturnCommand) Validate() error {
	return c.guard.Validate(ErrCreateRentalReturnCommandIsNotConstructed)
}

// UserID returns the returning user's identity.
func (c CreateRentalReturnCommand) UserID() string { return c.userID }

// Items returns the requested return lines.
func (c CreateRentalReturnCommand) Items() []rental.ReturnItem { return c.items }

// InPerson reports whether the user brings the books back themselves.
func (c CreateRentalReturnCommand) InPerson() bool { return c.inPerson }

func (c *CreateRentalReturnCommand) setUserID(userID string) error {
	if userID == "" {
		return errs.NewValueIsRequiredError("userID")
	}
	c.userID = userID
	return nil
}

func (c *CreateRentalReturnCommand) setItems(items []rental.ReturnItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	c.items = append([]rental.ReturnItem(nil), items...)
	return nil
}
