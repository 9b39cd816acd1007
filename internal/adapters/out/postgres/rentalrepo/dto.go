// Package rentalrepo persists rental aggregates.
package rentalrepo

import (
	"time"

	"bookrider/internal/core/domain/model/kernel"
	"bookrider/internal/core/domain/model/rental"

	"github.com/google/uuid"
)

// RentalDTO is the database row of a rental.
type RentalDTO struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID          uuid.UUID `gorm:"type:uuid;index"`
	BookID           uuid.UUID `gorm:"type:uuid"`
	LibraryID        uuid.UUID `gorm:"type:uuid;index"`
	UserID           string    `gorm:"index"`
	Quantity         int
	ReturnedQuantity int
	Status           string `gorm:"index"`
	RentedAt         time.Time
	ReturnDeadline   time.Time `gorm:"index"`
	ReturnedAt       *time.Time
}

// TableName overrides GORM's default naming to use "rentals".
func (RentalDTO) TableName() string {
	return "rentals"
}

func fromDomain(aggregate *rental.Rental) RentalDTO {
	return RentalDTO{
		ID:               aggregate.ID().Bytes(),
		OrderID:          aggregate.OrderID().Bytes(),
		BookID:           aggregate.BookID().Bytes(),
		LibraryID:        aggregate.LibraryID().Bytes(),
		UserID:           aggregate.UserID(),
		Quantity:         aggregate.Quantity(),
		ReturnedQuantity: aggregate.ReturnedQuantity(),
		Status:           aggregate.Status().String(),
		RentedAt:         aggregate.RentedAt(),
		ReturnDeadline:   aggregate.ReturnDeadline(),
		ReturnedAt:       aggregate.ReturnedAt(),
	}
}

func toDomain(dto RentalDTO) (*rental.Rental, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}
	bookID, err := kernel.UUIDFromBytes(dto.BookID[:])
	if err != nil {
		return nil, err
	}
	libraryID, err := kernel.UUIDFromBytes(dto.LibraryID[:])
	if err != nil {
		return nil, err
	}
	status, err := rental.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return rental.RestoreRental(
		id, bookID, libraryID, orderID, dto.UserID,
		dto.Quantity, dto.RentedAt, dto.ReturnDeadline,
		dto.ReturnedQuantity, dto.ReturnedAt, status)
}
