package ports

import (
	"context"
	"time"

	"bookrider/internal/core/domain/model/kernel"
	"bookrider/internal/core/domain/model/quote"
)

// QuoteRepository defines the persistence contract for quotes, kept so
// cart and checkout can re-validate option expiry after generation.
type QuoteRepository interface {
	// Add persists a new quote with its options.
	Add(ctx context.Context, aggregate *quote.Quote) error

	// Get retrieves a quote with its options.
	Get(ctx context.Context, id kernel.UUID) (*quote.Quote, error)

	// DeleteExpired removes quotes whose validity ended before the given
	// instant, options included. Returns how many quotes were removed.
	// Used by the purge job.
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}
