package kernel

import (
	"errors"
	"fmt"
	"strings"

	"bookrider/internal/pkg/errs"
	"bookrider/internal/pkg/guard"
)

// ErrAddressIsNotConstructed is returned when attempting to use an improperly
// initialized Address.
var ErrAddressIsNotConstructed = errs.NewValueIsRequiredError(
	"address must be created via NewAddress constructor")

// Address is a postal address together with an optionally cached geographic
// coordinate. Addresses are effectively immutable once geocoded: the
// coordinate is resolved once and attached with WithCoordinate, so repeated
// geocoding of the same address is avoided.
type Address struct { //nolint:recvcheck //using for validation
	street     string
	city       string
	postalCode string
	coordinate *Coordinate

	guard guard.ConstructorGuard
}

// NewAddress creates an Address without a resolved coordinate.
// Street and city are required; the postal code may be empty.
func NewAddress(street, city, postalCode string) (Address, error) {
	address := Address{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		address.setStreet(street),
		address.setCity(city),
	); err != nil {
		return Address{}, err
	}

	address.postalCode = strings.TrimSpace(postalCode)
	return address, nil
}

// RestoreAddress rebuilds an Address from persistence, including a coordinate
// when one was cached.
func RestoreAddress(street, city, postalCode string, coordinate *Coordinate) (Address, error) {
	address, err := NewAddress(street, city, postalCode)
	if err != nil {
		return Address{}, err
	}

	if coordinate != nil {
		if err := coordinate.Validate(); err != nil {
			return Address{}, err
		}
		coord := *coordinate
		address.coordinate = &coord
	}

	return address, nil
}

// Validate checks that the Address was created through a constructor.
func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

// Street returns the street line of the address.
func (a Address) Street() string {
	return a.street
}

// City returns the city of the address.
func (a Address) City() string {
	return a.city
}

// PostalCode returns the postal code of the address, possibly empty.
func (a Address) PostalCode() string {
	return a.postalCode
}

// Coordinate returns the cached geographic coordinate, or nil when the
// address has not been geocoded yet.
func (a Address) Coordinate() *Coordinate {
	if a.coordinate == nil {
		return nil
	}
	coord := *a.coordinate
	return &coord
}

// IsGeocoded reports whether a coordinate has been resolved for the address.
func (a Address) IsGeocoded() bool {
	return a.coordinate != nil
}

// WithCoordinate returns a copy of the address with the resolved coordinate
// cached on it.
func (a Address) WithCoordinate(coordinate Coordinate) (Address, error) {
	if err := errors.Join(a.Validate(), coordinate.Validate()); err != nil {
		return Address{}, err
	}

	a.coordinate = &coordinate
	return a, nil
}

// String returns the free-text form of the address used for geocoding
// lookups: "street city postalCode".
func (a Address) String() string {
	return strings.TrimSpace(fmt.Sprintf("%s %s %s", a.street, a.city, a.postalCode))
}

func (a *Address) setStreet(street string) error {
	street = strings.TrimSpace(street)
	if street == "" {
		return errs.NewValueIsRequiredError("street")
	}

	a.street = street
	return nil
}

func (a *Address) setCity(city string) error {
	city = strings.TrimSpace(city)
	if city == "" {
		return errs.NewValueIsRequiredError("city")
	}

	a.city = city
	return nil
}
