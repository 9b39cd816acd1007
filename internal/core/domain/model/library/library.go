package library

import (
	"errors"

	"bookrider/internal/core/domain/model/kernel"
	"bookrider/internal/pkg/errs"
	"bookrider/internal/pkg/guard"
)

// ErrLibraryIsNotConstructed is returned when a Library instance was not
// created through the constructor.
var ErrLibraryIsNotConstructed = errors.New(
	"Library must be created via NewLibrary constructor")

// Library is a lending library participating in deliveries. Its address
// caches the geocoded coordinate after the first resolution so quote
// generation does not geocode the same library twice.
type Library struct {
	id      kernel.UUID
	name    string
	address kernel.Address

	guard guard.ConstructorGuard
}

// NewLibrary creates a validated library.
func NewLibrary(id kernel.UUID, name string, address kernel.Address) (*Library, error) {
	if err := errors.Join(id.Validate(), address.Validate()); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}

	return &Library{
		id:      id,
		name:    name,
		address: address,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the library was built through the constructor.
func (l *Library) Validate() error {
	if l == nil {
		return ErrLibraryIsNotConstructed
	}
	return l.guard.Validate(ErrLibraryIsNotConstructed)
}

// ID returns the library's unique identifier.
func (l *Library) ID() kernel.UUID { return l.id }

// Name returns the library's display name.
func (l *Library) Name() string { return l.name }

// Address returns the library's address.
func (l *Library) Address() kernel.Address { return l.address }

// CacheCoordinate stores a freshly geocoded coordinate on the address.
// The caller persists the library afterwards so the next quote skips
// the geocoder.
func (l *Library) CacheCoordinate(coordinate kernel.Coordinate) error {
	address, err := l.address.WithCoordinate(coordinate)
	if err != nil {
		return err
	}
	l.address = address
	return nil
}

// Book is a title stocked by libraries. Reference data managed outside
// this system; carried here for quoting and display.
type Book struct {
	id    kernel.UUID
	title string
}

// NewBook creates a validated book.
func NewBook(id kernel.UUID, title string) (*Book, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if title == "" {
		return nil, errs.NewValueIsRequiredError("title")
	}
	return &Book{id: id, title: title}, nil
}

// ID returns the book's unique identifier.
func (b *Book) ID() kernel.UUID { return b.id }

// Title returns the book's title.
func (b *Book) Title() string { return b.title }
