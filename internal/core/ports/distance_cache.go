package ports

import (
	"context"

	"bookrider/internal/core/domain/model/kernel"
	"bookrider/internal/core/domain/model/navigation"
)

// DistanceCache stores routed distances per coordinate pair so repeated
// quotes and cart re-pricings between the same library and destination
// skip the routing engine. Entries keep only route totals; step-by-step
// guidance is transient and never cached.
type DistanceCache interface {
	// Get returns the cached result for the pair and profile. The bool
	// reports whether the pair was cached; a miss is not an error.
	Get(ctx context.Context, start, end kernel.Coordinate, profile navigation.TransportProfile) (navigation.NavigationResult, bool, error)

	// Put stores the result's totals for the pair and profile. Storing
	// an already cached pair is a no-op.
	Put(ctx context.Context, start, end kernel.Coordinate, profile navigation.TransportProfile, result navigation.NavigationResult) error
}
