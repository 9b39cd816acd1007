// Package cartrepo persists shopping carts. A cart's items and
// sub-items are replaced wholesale on every save; the version column
// backs the optimistic concurrency check.
package cartrepo

import (
	"time"

	"bookrider/internal/core/domain/model/cart"
	"bookrider/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartDTO is the database row of a shopping cart.
type CartDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID     string    `gorm:"uniqueIndex"`
	Street     *string
	City       *string
	PostalCode *string
	Latitude   *float64
	Longitude  *float64
	TotalCost  decimal.Decimal `gorm:"type:numeric(12,2)"`
	Version    int64
	UpdatedAt  time.Time

	Items    []CartItemDTO    `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	SubItems []CartSubItemDTO `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default naming to use "carts".
func (CartDTO) TableName() string {
	return "carts"
}

// CartItemDTO is one library's share of a cart.
type CartItemDTO struct {
	CartID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	LibraryID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	LibraryName       string
	TotalDeliveryCost decimal.Decimal `gorm:"type:numeric(12,2)"`
}

// TableName overrides GORM's default naming to use "cart_items".
func (CartItemDTO) TableName() string {
	return "cart_items"
}

// CartSubItemDTO is one book line within a library's cart item.
type CartSubItemDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CartID    uuid.UUID `gorm:"type:uuid;index"`
	LibraryID uuid.UUID `gorm:"type:uuid"`
	BookID    uuid.UUID `gorm:"type:uuid"`
	BookTitle string
	Quantity  int
}

// TableName overrides GORM's default naming to use "cart_sub_items".
func (CartSubItemDTO) TableName() string {
	return "cart_sub_items"
}

func fromDomain(aggregate *cart.ShoppingCart) CartDTO {
	dto := CartDTO{
		ID:        aggregate.ID().Bytes(),
		UserID:    aggregate.UserID(),
		TotalCost: aggregate.TotalCost(),
		Version:   aggregate.Version(),
		UpdatedAt: aggregate.UpdatedAt(),
	}

	if address := aggregate.DeliveryAddress(); address != nil {
		street := address.Street()
		city := address.City()
		postalCode := address.PostalCode()
		dto.Street = &street
		dto.City = &city
		dto.PostalCode = &postalCode
		if coordinate := address.Coordinate(); coordinate != nil {
			latitude := coordinate.Latitude()
			longitude := coordinate.Longitude()
			dto.Latitude = &latitude
			dto.Longitude = &longitude
		}
	}

	for _, item := range aggregate.Items() {
		dto.Items = append(dto.Items, CartItemDTO{
			CartID:            dto.ID,
			LibraryID:         item.LibraryID().Bytes(),
			LibraryName:       item.LibraryName(),
			TotalDeliveryCost: item.TotalDeliveryCost(),
		})
		for _, sub := range item.SubItems() {
			dto.SubItems = append(dto.SubItems, CartSubItemDTO{
				ID:        sub.ID().Bytes(),
				CartID:    dto.ID,
				LibraryID: item.LibraryID().Bytes(),
				BookID:    sub.BookID().Bytes(),
				BookTitle: sub.BookTitle(),
				Quantity:  sub.Quantity(),
			})
		}
	}
	return dto
}

func toDomain(dto CartDTO) (*cart.ShoppingCart, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var address *kernel.Address
	if dto.Street != nil && dto.City != nil {
		var coordinate *kernel.Coordinate
		if dto.Latitude != nil && dto.Longitude != nil {
			resolved, coordErr := kernel.NewCoordinate(*dto.Latitude, *dto.Longitude)
			if coordErr != nil {
				return nil, coordErr
			}
			coordinate = &resolved
		}
		postalCode := ""
		if dto.PostalCode != nil {
			postalCode = *dto.PostalCode
		}
		restored, addrErr := kernel.RestoreAddress(*dto.Street, *dto.City, postalCode, coordinate)
		if addrErr != nil {
			return nil, addrErr
		}
		address = &restored
	}

	items, err := itemsToDomain(dto)
	if err != nil {
		return nil, err
	}

	return cart.RestoreShoppingCart(id, dto.UserID, address, items, dto.Version, dto.UpdatedAt)
}

func itemsToDomain(dto CartDTO) ([]*cart.Item, error) {
	subsByLibrary := make(map[uuid.UUID][]*cart.SubItem)
	for _, subDTO := range dto.SubItems {
		subID, err := kernel.UUIDFromBytes(subDTO.ID[:])
		if err != nil {
			return nil, err
		}
		bookID, err := kernel.UUIDFromBytes(subDTO.BookID[:])
		if err != nil {
			return nil, err
		}
		sub, err := cart.RestoreSubItem(subID, bookID, subDTO.BookTitle, subDTO.Quantity)
		if err != nil {
			return nil, err
		}
		subsByLibrary[subDTO.LibraryID] = append(subsByLibrary[subDTO.LibraryID], sub)
	}

	items := make([]*cart.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		libraryID, err := kernel.UUIDFromBytes(itemDTO.LibraryID[:])
		if err != nil {
			return nil, err
		}
		item, err := cart.RestoreItem(
			libraryID, itemDTO.LibraryName, itemDTO.TotalDeliveryCost,
			subsByLibrary[itemDTO.LibraryID])
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
