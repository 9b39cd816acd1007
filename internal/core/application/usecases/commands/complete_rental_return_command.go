package commands

import (
	"errors"

	"bookrider/internal/core/domain/model/kernel"
	"bookrider/internal/pkg/errs"
	"bookrider/internal/pkg/guard"
)

// ErrCompleteRentalReturnCommandIsNotConstructed is returned when the
// command was not created via its constructor.
var ErrCompleteRentalReturnCommandIsNotConstructed = errors.New(
	"CompleteRentalReturnCommand must be created via NewCompleteRentalReturnCommand constructor")

// CompleteRentalReturnCommand records a librarian confirming the books
// of a rental return are physically back.
type CompleteRentalReturnCommand struct { //nolint:recvcheck //using for validation
	returnID    kernel.UUID
	librarianID string

	guard guard.ConstructorGuard
}

// NewCompleteRentalReturnCommand creates a validated command.
func NewCompleteRentalReturnCommand(returnID kernel.UUID, librarianID string) (CompleteRentalReturnCommand, error) {
	cmd := CompleteRentalReturnCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setReturnID(returnID),
		cmd.setLibrarianID(librarianID),
	); err != nil {
		return CompleteRentalReturnCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteRentalReturnCommand) Validate() error {
	return c.guard.Validate(ErrCompleteRentalReturnCommandIsNotConstructed)
}

// ReturnID returns the rental return being completed.
func (c CompleteRentalReturnCommand) ReturnID() kernel.UUID { return c.returnID }

// LibrarianID returns the confirming librarian's identity.
func (c CompleteRentalReturnCommand) LibrarianID() string { return c.librarianID }

func (c *CompleteRentalReturnCommand) setReturnID(returnID kernel.UUID) error {
	if err := returnID.Validate(); err != nil {
		return err
	}
	c.returnID = returnID
	return nil
}

func (c *CompleteRentalReturnCommand) setLibrarianID(librarianID string) error {
	if librarianID == "" {
		return errs.NewValueIsRequiredError("librarianID")
	}
	c.librarianID = librarianID
	return nil
}
