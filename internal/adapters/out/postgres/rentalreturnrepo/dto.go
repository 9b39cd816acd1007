// Package rentalreturnrepo persists rental returns with their lines.
package rentalreturnrepo

import (
	"time"

	"bookrider/internal/core/domain/model/kernel"
	"bookrider/internal/core/domain/model/rental"

	"github.com/google/uuid"
)

// RentalReturnDTO is the database row of a rental return.
type RentalReturnDTO struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ReturnOrderID *uuid.UUID `gorm:"type:uuid"`
	Status        string
	CreatedAt     time.Time
	ReturnedAt    *time.Time

	Items []RentalReturnItemDTO `gorm:"foreignKey:RentalReturnID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default naming to use "rental_returns".
func (RentalReturnDTO) TableName() string {
	return "rental_returns"
}

// RentalReturnItemDTO is one rental's share of a return.
type RentalReturnItemDTO struct {
	RentalReturnID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	RentalID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ReturnedQuantity int
}

// TableName overrides GORM's default naming to use "rental_return_items".
func (RentalReturnItemDTO) TableName() string {
	return "rental_return_items"
}

func fromDomain(aggregate *rental.RentalReturn) RentalReturnDTO {
	dto := RentalReturnDTO{
		ID:         aggregate.ID().Bytes(),
		Status:     aggregate.Status().String(),
		CreatedAt:  aggregate.CreatedAt(),
		ReturnedAt: aggregate.ReturnedAt(),
	}
	if orderID := aggregate.ReturnOrderID(); orderID != nil {
		raw := orderID.Bytes()
		dto.ReturnOrderID = &raw
	}

	for _, item := range aggregate.Items() {
		dto.Items = append(dto.Items, RentalReturnItemDTO{
			RentalReturnID:   dto.ID,
			RentalID:         item.RentalID().Bytes(),
			ReturnedQuantity: item.ReturnedQuantity(),
		})
	}
	return dto
}

func toDomain(dto RentalReturnDTO) (*rental.RentalReturn, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var returnOrderID *kernel.UUID
	if dto.ReturnOrderID != nil {
		orderID, orderErr := kernel.UUIDFromBytes((*dto.ReturnOrderID)[:])
		if orderErr != nil {
			return nil, orderErr
		}
		returnOrderID = &orderID
	}

	status, err := rental.ReturnStatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	items := make([]rental.ReturnItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		rentalID, itemErr := kernel.UUIDFromBytes(itemDTO.RentalID[:])
		if itemErr != nil {
			return nil, itemErr
		}
		item, itemErr := rental.NewReturnItem(rentalID, itemDTO.ReturnedQuantity)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return rental.RestoreRentalReturn(id, returnOrderID, status, dto.CreatedAt, dto.ReturnedAt, items)
}
