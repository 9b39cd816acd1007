package ports

import (
	"context"

	"bookrider/internal/core/domain/model/billing"
)

// TransactionRepository defines the persistence contract for the
// append-only ledger. Entries are only ever added, never updated.
type TransactionRepository interface {
	// Add persists a new ledger entry.
	Add(ctx context.Context, aggregate *billing.Transaction) error

	// GetAllByUserID retrieves a user's ledger entries, newest first.
	GetAllByUserID(ctx context.Context, userID string) ([]*billing.Transaction, error)
}
