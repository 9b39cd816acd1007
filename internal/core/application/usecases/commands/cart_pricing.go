package commands

import (
	"context"

	"bookrider/internal/core/domain/model/cart"
	"bookrider/internal/core/domain/model/kernel"
	"bookrider/internal/core/domain/model/library"
	"bookrider/internal/core/domain/model/navigation"
	"bookrider/internal/core/domain/services"
	"bookrider/internal/core/ports"
)

// resolveLibraryCoordinate returns the library's coordinate, geocoding
// and caching it on the library record on first use.
func resolveLibraryCoordinate(
	ctx context.Context,
	geocoder ports.Geocoder,
	libraries ports.LibraryRepository,
	lib *library.Library,
) (kernel.Coordinate, error) {
	if coordinate := lib.Address().Coordinate(); coordinate != nil {
		return *coordinate, nil
	}

	address := lib.Address()
	coordinate, err := geocoder.Resolve(ctx, address.Street(), address.City(), address.PostalCode())
	if err != nil {
		return kernel.Coordinate{}, err
	}
	if err := lib.CacheCoordinate(coordinate); err != nil {
		return kernel.Coordinate{}, err
	}
	if err := libraries.Update(ctx, lib); err != nil {
		return kernel.Coordinate{}, err
	}
	return coordinate, nil
}

// repriceCartItem recomputes one library item's delivery cost against
// the cart's current delivery address. A no-op when the library has no
// item in the cart.
func repriceCartItem(
	ctx context.Context,
	geocoder ports.Geocoder,
	router ports.Router,
	libraries ports.LibraryRepository,
	calculator services.DeliveryCostCalculator,
	sc *cart.ShoppingCart,
	libraryID kernel.UUID,
) error {
	var item *cart.Item
	for _, candidate := range sc.Items() {
		if candidate.LibraryID().IsEqual(libraryID) {
			item = candidate
			break
		}
	}
	if item == nil {
		return nil
	}

	address := sc.DeliveryAddress()
	if address == nil {
		return cart.ErrDeliveryAddressRequired
	}
	destination := address.Coordinate()
	if destination == nil {
		return cart.ErrDeliveryAddressRequired
	}

	lib, err := libraries.Get(ctx, libraryID)
	if err != nil {
		return err
	}
	origin, err := resolveLibraryCoordinate(ctx, geocoder, libraries, lib)
	if err != nil {
		return err
	}

	route, err := router.Route(ctx, origin, *destination, navigation.Car)
	if err != nil {
		return err
	}
	cost, err := calculator.Cost(route.TotalDistanceKm(), item.TotalQuantity())
	if err != nil {
		return err
	}
	return sc.SetItemDeliveryCost(libraryID, cost)
}
