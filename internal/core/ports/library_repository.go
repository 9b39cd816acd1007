package ports

import (
	"context"

	"bookrider/internal/core/domain/model/kernel"
	"bookrider/internal/core/domain/model/library"
)

// LibraryRepository defines the read and cache contract for library
// reference data.
type LibraryRepository interface {
	// Get retrieves a library by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*library.Library, error)

	// GetCandidatesByBook retrieves up to limit libraries stocking the
	// book, nearest to the given coordinate first.
	GetCandidatesByBook(ctx context.Context, bookID kernel.UUID, near kernel.Coordinate, limit int) ([]*library.Library, error)

	// Update persists a library, used to cache a freshly geocoded
	// coordinate on its address.
	Update(ctx context.Context, aggregate *library.Library) error
}

// BookRepository defines the read contract for book reference data.
type BookRepository interface {
	// Get retrieves a book by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*library.Book, error)
}
