// Package libraryrepo persists library and book reference data, plus
// the stock relation between them used to find quote candidates.
package libraryrepo

import (
	"bookrider/internal/core/domain/model/kernel"
	"bookrider/internal/core/domain/model/library"

	"github.com/google/uuid"
)

// LibraryDTO is the database row of a library.
type LibraryDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name       string
	Street     string
	City       string
	PostalCode string
	Latitude   *float64
	Longitude  *float64
}

// TableName overrides GORM's default naming to use "libraries".
func (LibraryDTO) TableName() string {
	return "libraries"
}

// BookDTO is the database row of a book.
type BookDTO struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title string
}

// TableName overrides GORM's default naming to use "books".
func (BookDTO) TableName() string {
	return "books"
}

// LibraryBookDTO records that a library stocks a book.
type LibraryBookDTO struct {
	LibraryID uuid.UUID `gorm:"type:uuid;primaryKey"`
	BookID    uuid.UUID `gorm:"type:uuid;primaryKey;index"`
}

// TableName overrides GORM's default naming to use "library_books".
func (LibraryBookDTO) TableName() string {
	return "library_books"
}

func fromDomain(aggregate *library.Library) LibraryDTO {
	address := aggregate.Address()
	dto := LibraryDTO{
		ID:         aggregate.ID().Bytes(),
		Name:       aggregate.Name(),
		Street:     address.Street(),
		City:       address.City(),
		PostalCode: address.PostalCode(),
	}
	if coordinate := address.Coordinate(); coordinate != nil {
		latitude := coordinate.Latitude()
		longitude := coordinate.Longitude()
		dto.Latitude = &latitude
		dto.Longitude = &longitude
	}
	return dto
}

func toDomain(dto LibraryDTO) (*library.Library, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var coordinate *kernel.Coordinate
	if dto.Latitude != nil && dto.Longitude != nil {
		resolved, coordErr := kernel.NewCoordinate(*dto.Latitude, *dto.Longitude)
		if coordErr != nil {
			return nil, coordErr
		}
		coordinate = &resolved
	}

	address, err := kernel.RestoreAddress(dto.Street, dto.City, dto.PostalCode, coordinate)
	if err != nil {
		return nil, err
	}
	return library.NewLibrary(id, dto.Name, address)
}

func bookToDomain(dto BookDTO) (*library.Book, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return library.NewBook(id, dto.Title)
}
