package ports

import (
	"context"

	"bookrider/internal/core/domain/model/kernel"
	"bookrider/internal/core/domain/model/navigation"
)

// Geocoder resolves a postal address to a coordinate.
type Geocoder interface {
	// Resolve geocodes the address assembled from street, city and
	// postal code. Fails with navigation.ErrAddressNotFound when no
	// candidate exists and wraps transport failures in
	// navigation.ExternalAPIFailureError.
	Resolve(ctx context.Context, street, city, postalCode string) (kernel.Coordinate, error)
}

// Router computes a route between two coordinates using the given
// transport profile.
type Router interface {
	// Route returns the route from start to end. Unroutable coordinates
	// fail with navigation.InvalidCoordinatesError, an empty or
	// degenerate route with navigation.ErrNoRouteFound, and upstream
	// failures with navigation.ExternalAPIFailureError.
	Route(ctx context.Context, start, end kernel.Coordinate, profile navigation.TransportProfile) (navigation.NavigationResult, error)
}
