package ports

import (
	"context"

	"bookrider/internal/core/domain/model/cart"
)

// CartRepository defines the persistence contract for shopping carts.
// Each user has at most one cart.
type CartRepository interface {
	// Add persists a new cart.
	Add(ctx context.Context, aggregate *cart.ShoppingCart) error

	// Update persists changes to an existing cart. The cart's items are
	// replaced wholesale. The update checks the aggregate's version
	// against the stored row; a lost race is rejected with a
	// ConcurrentModificationError, never last-writer-wins.
	Update(ctx context.Context, aggregate *cart.ShoppingCart) error

	// GetByUserID retrieves the user's cart, or an ObjectNotFoundError
	// when the user has none yet.
	GetByUserID(ctx context.Context, userID string) (*cart.ShoppingCart, error)
}
