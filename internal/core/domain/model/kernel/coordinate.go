package kernel

import (
	"errors"
	"fmt"
	"math"

	"bookrider/internal/pkg/errs"
	"bookrider/internal/pkg/guard"
)

const (
	// MinLatitude and MaxLatitude bound valid latitudes in decimal degrees.
	MinLatitude = -90.0
	MaxLatitude = 90.0
	// MinLongitude and MaxLongitude bound valid longitudes in decimal degrees.
	MinLongitude = -180.0
	MaxLongitude = 180.0

	// EarthRadiusKm is the mean radius of Earth used by the haversine formula.
	EarthRadiusKm = 6371.0
)

// ErrCoordinateIsNotConstructed is returned when attempting to use an
// improperly initialized Coordinate. Coordinates must be created via the
// NewCoordinate constructor to ensure their values are within bounds.
var ErrCoordinateIsNotConstructed = errs.NewValueIsRequiredError(
	"coordinate must be created via NewCoordinate constructor")

// Coordinate is a geographic position in signed decimal degrees (WGS-84).
// It is an immutable value object; equality is exact field equality.
// The zero value is invalid and fails validation; use NewCoordinate.
//
// Example:
//
//	coord, err := kernel.NewCoordinate(53.4285, 14.5528)
//	if err != nil {
//	    // handle out-of-range latitude/longitude
//	}
type Coordinate struct { //nolint:recvcheck //using for validation
	latitude  float64
	longitude float64
	guard     guard.ConstructorGuard
}

// NewCoordinate creates a Coordinate with the given latitude and longitude.
// Latitude must be within [-90, 90] and longitude within [-180, 180];
// violations are reported with the offending value and its bounds.
func NewCoordinate(latitude, longitude float64) (Coordinate, error) {
	coord := Coordinate{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(coord.setLatitude(latitude), coord.setLongitude(longitude)); err != nil {
		return Coordinate{}, err
	}

	return coord, nil
}

// Validate checks that the Coordinate was created through its constructor.
func (c Coordinate) Validate() error {
	return c.guard.Validate(ErrCoordinateIsNotConstructed)
}

// Latitude returns the latitude in decimal degrees.
func (c Coordinate) Latitude() float64 {
	return c.latitude
}

// Longitude returns the longitude in decimal degrees.
func (c Coordinate) Longitude() float64 {
	return c.longitude
}

// String implements fmt.Stringer. The longitude-first ordering matches the
// convention of the routing service wire format.
func (c Coordinate) String() string {
	return fmt.Sprintf("%g,%g", c.longitude, c.latitude)
}

// IsEqual compares two coordinates by exact field equality.
// Both coordinates must be properly constructed.
func (c Coordinate) IsEqual(other Coordinate) (bool, error) {
	if err := errors.Join(c.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return c.latitude == other.latitude && c.longitude == other.longitude, nil
}

// DistanceMeters returns the great-circle distance to another coordinate in
// meters, computed with the haversine formula on a sphere of EarthRadiusKm.
// The result is symmetric and zero for identical coordinates.
func (c Coordinate) DistanceMeters(other Coordinate) (float64, error) {
	if err := errors.Join(c.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	lat1 := degreesToRadians(c.latitude)
	lat2 := degreesToRadians(other.latitude)
	deltaLat := degreesToRadians(other.latitude - c.latitude)
	deltaLon := degreesToRadians(other.longitude - c.longitude)

	h := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	arc := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusKm * arc * 1000, nil
}

func (c *Coordinate) setLatitude(latitude float64) error {
	if latitude < MinLatitude || latitude > MaxLatitude {
		return errs.NewValueIsOutOfRangeError("latitude", latitude, MinLatitude, MaxLatitude)
	}

	c.latitude = latitude
	return nil
}

func (c *Coordinate) setLongitude(longitude float64) error {
	if longitude < MinLongitude || longitude > MaxLongitude {
		return errs.NewValueIsOutOfRangeError("longitude", longitude, MinLongitude, MaxLongitude)
	}

	c.longitude = longitude
	return nil
}

func degreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
