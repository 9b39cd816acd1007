// Package routecache puts a persistent distance cache in front of a
// router. Quote generation and cart re-pricing route the same
// library-to-destination pairs over and over; the cache answers those
// repeats without touching the routing engine.
package routecache

import (
	"context"

	"bookrider/internal/core/domain/model/kernel"
	"bookrider/internal/core/domain/model/navigation"
	"bookrider/internal/core/ports"
)

// Router implements ports.Router by consulting the distance cache
// before delegating to the wrapped router. Cache failures never fail a
// route; the engine is always the fallback.
type Router struct {
	inner ports.Router
	cache ports.DistanceCache
}

// NewRouter wraps a router with the given distance cache.
func NewRouter(inner ports.Router, cache ports.DistanceCache) Router {
	return Router{inner: inner, cache: cache}
}

// Route returns the cached totals for the pair when present, and
// otherwise routes through the wrapped router and caches the outcome.
func (r Router) Route(
	ctx context.Context,
	start, end kernel.Coordinate,
	profile navigation.TransportProfile,
) (navigation.NavigationResult, error) {
	if cached, ok, err := r.cache.Get(ctx, start, end, profile); err == nil && ok {
		return cached, nil
	}

	result, err := r.inner.Route(ctx, start, end, profile)
	if err != nil {
		return navigation.NavigationResult{}, err
	}

	// Best effort; a failed write only costs the next call a re-route.
	_ = r.cache.Put(ctx, start, end, profile, result)
	return result, nil
}
