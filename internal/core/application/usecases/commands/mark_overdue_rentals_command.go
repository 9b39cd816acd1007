package commands

import (
	"errors"

	"bookrider/internal/pkg/guard"
)

var ErrMarkOverdueRentalsCommandIsNotConstructed = errors.New(
	"MarkOverdueRentalsCommand must be created via NewMarkOverdueRentalsCommand constructor")

// MarkOverdueRentalsCommand triggers the sweep that flips active
// rentals past their return deadline to Overdue. A batch operation run
// by the scheduler; it carries no parameters.
type MarkOverdueRentalsCommand struct {
	guard guard.ConstructorGuard
}

// NewMarkOverdueRentalsCommand creates a command to trigger the sweep.
func NewMarkOverdueRentalsCommand() MarkOverdueRentalsCommand {
	return MarkOverdueRentalsCommand{guard: guard.NewConstructorGuard()}
}

// Validate ensures the command was created through the constructor.
func (c MarkOverdueRentalsCommand) Validate() error {
	return c.guard.Validate(ErrMarkOverdueRentalsCommandIsNotConstructed)
}
