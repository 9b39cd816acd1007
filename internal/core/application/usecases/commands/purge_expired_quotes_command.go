package commands

import (
	"errors"

	"bookrider/internal/pkg/guard"
)

var ErrPurgeExpiredQuotesCommandIsNotConstructed = errors.New(
	"PurgeExpiredQuotesCommand must be created via NewPurgeExpiredQuotesCommand constructor")

// PurgeExpiredQuotesCommand triggers deletion of quotes whose validity
// window has closed. Expired quotes are useless to checkout and only
// grow the table; the scheduler runs this periodically.
type PurgeExpiredQuotesCommand struct {
	guard guard.ConstructorGuard
}

// NewPurgeExpiredQuotesCommand creates a command to trigger the purge.
func NewPurgeExpiredQuotesCommand() PurgeExpiredQuotesCommand {
	return PurgeExpiredQuotesCommand{guard: guard.NewConstructorGuard()}
}

// Validate ensures the command was created through the constructor.
func (c PurgeExpiredQuotesCommand) Validate() error {
	return c.guard.Validate(ErrPurgeExpiredQuotesCommandIsNotConstructed)
}
