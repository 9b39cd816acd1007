package openroute

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"bookrider/internal/core/domain/model/kernel"
	"bookrider/internal/core/domain/model/navigation"
)

const geocoderFailureMessage = "External geocoding service is currently unavailable"

// Geocoder resolves postal addresses via the /geocode/search endpoint.
type Geocoder struct {
	client Client
}

// NewGeocoder creates a geocoder on the shared client.
func NewGeocoder(client Client) Geocoder {
	return Geocoder{client: client}
}

type geocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// Resolve geocodes the address assembled from street, city and postal
// code. The first candidate wins; no candidates at all surface as
// navigation.ErrAddressNotFound.
func (g Geocoder) Resolve(ctx context.Context, street, city, postalCode string) (kernel.Coordinate, error) {
	query := url.Values{}
	query.Set("text", strings.Join([]string{street, city, postalCode}, " "))

	status, body, err := g.client.get(ctx, "/geocode/search", query, geocoderFailureMessage)
	if err != nil {
		return kernel.Coordinate{}, err
	}
	if status != http.StatusOK {
		return kernel.Coordinate{}, navigation.NewExternalAPIFailureError(geocoderFailureMessage, nil)
	}

	var parsed geocodeResponse
	if err = json.Unmarshal(body, &parsed); err != nil {
		return kernel.Coordinate{}, navigation.NewExternalAPIFailureError(geocoderFailureMessage, err)
	}
	if len(parsed.Features) == 0 {
		return kernel.Coordinate{}, navigation.ErrAddressNotFound
	}

	// GeoJSON order is longitude first.
	coordinates := parsed.Features[0].Geometry.Coordinates
	if len(coordinates) < 2 {
		return kernel.Coordinate{}, navigation.ErrAddressNotFound
	}
	return kernel.NewCoordinate(coordinates[1], coordinates[0])
}
