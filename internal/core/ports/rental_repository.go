package ports

import (
	"context"
	"time"

	"bookrider/internal/core/domain/model/kernel"
	"bookrider/internal/core/domain/model/rental"
)

// RentalRepository defines the persistence contract for rentals.
type RentalRepository interface {
	// Add persists a new rental.
	Add(ctx context.Context, aggregate *rental.Rental) error

	// Update persists changes to an existing rental.
	Update(ctx context.Context, aggregate *rental.Rental) error

	// Get retrieves a rental by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*rental.Rental, error)

	// GetByIDs retrieves the rentals with the given identifiers.
	// Missing identifiers yield an ObjectNotFoundError.
	GetByIDs(ctx context.Context, ids []kernel.UUID) ([]*rental.Rental, error)

	// GetActivePastDeadline retrieves rentals still Active whose return
	// deadline lies before asOf. Used by the overdue sweep.
	GetActivePastDeadline(ctx context.Context, asOf time.Time) ([]*rental.Rental, error)
}

// RentalReturnRepository defines the persistence contract for rental
// returns.
type RentalReturnRepository interface {
	// Add persists a new rental return with its items.
	Add(ctx context.Context, aggregate *rental.RentalReturn) error

	// Update persists changes to an existing rental return.
	Update(ctx context.Context, aggregate *rental.RentalReturn) error

	// Get retrieves a rental return with its items.
	Get(ctx context.Context, id kernel.UUID) (*rental.RentalReturn, error)
}
