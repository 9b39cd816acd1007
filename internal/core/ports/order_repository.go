// Package ports defines the interfaces between the domain core and the
// infrastructure adapters: repositories, the unit of work, the
// navigation clients and the notification channel. They enable
// dependency inversion and testability.
package ports

import (
	"context"

	"bookrider/internal/core/domain/model/kernel"
	"bookrider/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate with its items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order. expectedStatus is
	// the status the caller read before applying the transition; when
	// the stored row no longer matches, the update is rejected with a
	// ConcurrentModificationError and nothing is written.
	Update(ctx context.Context, aggregate *order.Order, expectedStatus order.Status) error

	// Get retrieves an order aggregate with its items.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
