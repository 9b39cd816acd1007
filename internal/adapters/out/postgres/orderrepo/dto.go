// Package orderrepo persists order aggregates with their items. Items
// are exclusively owned by their order: they are written and deleted
// together with the order row, never on their own.
package orderrepo

import (
	"time"

	"bookrider/internal/core/domain/model/kernel"
	"bookrider/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AddressDTO is a postal address embedded into the orders table, with
// the geocoded coordinate when one was resolved.
type AddressDTO struct {
	Street     string
	City       string
	PostalCode string
	Latitude   *float64
	Longitude  *float64
}

func addressFromDomain(address kernel.Address) AddressDTO {
	dto := AddressDTO{
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

func addressToDomain(dto AddressDTO) (kernel.Address, error) {
	var coordinate *kernel.Coordinate
	if dto.Latitude != nil && dto.Longitude != nil {
		resolved, err := kernel.NewCoordinate(*dto.Latitude, *dto.Longitude)
		if err != nil {
			return kernel.Address{}, err
		}
		coordinate = &resolved
	}
	return kernel.RestoreAddress(dto.Street, dto.City, dto.PostalCode, coordinate)
}

// OrderDTO is the database row of an order aggregate.
type OrderDTO struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID           string     `gorm:"index"`
	LibraryID        uuid.UUID  `gorm:"type:uuid;index"`
	Pickup           AddressDTO `gorm:"embedded;embeddedPrefix:pickup_"`
	Destination      AddressDTO `gorm:"embedded;embeddedPrefix:destination_"`
	DriverID         *string    `gorm:"index"`
	LibrarianID      *string
	IsReturn         bool
	Status           string `gorm:"index"`
	PaymentStatus    string
	Amount           decimal.Decimal `gorm:"type:numeric(12,2)"`
	NoteToDriver     string
	DeliveryPhotoURL *string
	CreatedAt        time.Time
	AcceptedAt       *time.Time
	DriverAssignedAt *time.Time
	PickedUpAt       *time.Time
	DeliveredAt      *time.Time

	Items []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default naming to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO is one order line.
type OrderItemDTO struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID          uuid.UUID `gorm:"type:uuid;index"`
	BookID           uuid.UUID `gorm:"type:uuid"`
	BookTitle        string
	Quantity         int
	ReturnDeadline   *time.Time
	ReturnedQuantity int
	ReturnedAt       *time.Time
}

// TableName overrides GORM's default naming to use "order_items".
func (OrderItemDTO) TableName() string {
	return "order_items"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	items := make([]OrderItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, OrderItemDTO{
			ID:               item.ID().Bytes(),
			OrderID:          aggregate.ID().Bytes(),
			BookID:           item.BookID().Bytes(),
			BookTitle:        item.BookTitle(),
			Quantity:         item.Quantity(),
			ReturnDeadline:   item.ReturnDeadline(),
			ReturnedQuantity: item.ReturnedQuantity(),
			ReturnedAt:       item.ReturnedAt(),
		})
	}

	return OrderDTO{
		ID:               aggregate.ID().Bytes(),
		UserID:           aggregate.UserID(),
		LibraryID:        aggregate.LibraryID().Bytes(),
		Pickup:           addressFromDomain(aggregate.PickupAddress()),
		Destination:      addressFromDomain(aggregate.DestinationAddress()),
		DriverID:         aggregate.DriverID(),
		LibrarianID:      aggregate.LibrarianID(),
		IsReturn:         aggregate.IsReturn(),
		Status:           aggregate.Status().String(),
		PaymentStatus:    aggregate.PaymentStatus().String(),
		Amount:           aggregate.Amount(),
		NoteToDriver:     aggregate.NoteToDriver(),
		DeliveryPhotoURL: aggregate.DeliveryPhotoURL(),
		CreatedAt:        aggregate.CreatedAt(),
		AcceptedAt:       aggregate.AcceptedAt(),
		DriverAssignedAt: aggregate.DriverAssignedAt(),
		PickedUpAt:       aggregate.PickedUpAt(),
		DeliveredAt:      aggregate.DeliveredAt(),
		Items:            items,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	libraryID, err := kernel.UUIDFromBytes(dto.LibraryID[:])
	if err != nil {
		return nil, err
	}
	pickup, err := addressToDomain(dto.Pickup)
	if err != nil {
		return nil, err
	}
	destination, err := addressToDomain(dto.Destination)
	if err != nil {
		return nil, err
	}
	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}
	paymentStatus, err := order.PaymentStatusFromString(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}

	items := make([]*order.OrderItem, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, err := itemToDomain(itemDTO)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return order.RestoreOrder(
		id,
		dto.UserID,
		libraryID,
		pickup,
		destination,
		dto.DriverID,
		dto.LibrarianID,
		dto.IsReturn,
		status,
		paymentStatus,
		dto.Amount,
		dto.NoteToDriver,
		dto.DeliveryPhotoURL,
		dto.CreatedAt,
		dto.AcceptedAt,
		dto.DriverAssignedAt,
		dto.PickedUpAt,
		dto.DeliveredAt,
		items,
	)
}

func itemToDomain(dto OrderItemDTO) (*order.OrderItem, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	bookID, err := kernel.UUIDFromBytes(dto.BookID[:])
	if err != nil {
		return nil, err
	}
	return order.RestoreOrderItem(
		id, bookID, dto.BookTitle, dto.Quantity,
		dto.ReturnDeadline, dto.ReturnedQuantity, dto.ReturnedAt)
}
