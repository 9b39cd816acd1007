package queries

import (
	"context"
	"database/sql"
	"errors"

	"bookrider/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetCartQueryHandler reads the user's cart from the database.
type GetCartQueryHandler struct {
	db *gorm.DB
}

// NewGetCartQueryHandler creates a handler for cart queries.
func NewGetCartQueryHandler(db *gorm.DB) GetCartQueryHandler {
	return GetCartQueryHandler{db: db}
}

// Handle returns the user's cart, or an empty response when the user
// has never put anything in one.
func (h GetCartQueryHandler) Handle(
	ctx context.Context,
	query GetCartQuery,
) (GetCartQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCartQueryResponse{}, err
	}

	var resp GetCartQueryResponse
	var id uuid.UUID
	var street, city, postalCode sql.NullString
	var latitude, longitude sql.NullFloat64

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			street,
			city,
			postal_code,
			latitude,
			longitude,
			total_cost,
			version,
			updated_at
		FROM carts
		WHERE user_id = ?
	`, query.UserID()).Row()

	err := row.Scan(
		&id,
		&street,
		&city,
		&postalCode,
		&latitude,
		&longitude,
		&resp.TotalCost,
		&resp.Version,
		&resp.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		resp.Items = make([]CartItemResponse, 0)
		return resp, nil
	}
	if err != nil {
		return GetCartQueryResponse{}, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetCartQueryResponse{}, err
	}
	if street.Valid {
		address := &CartAddressResponse{
			Street:     street.String,
			City:       city.String,
			PostalCode: postalCode.String,
		}
		if latitude.Valid && longitude.Valid {
			address.Latitude = &latitude.Float64
			address.Longitude = &longitude.Float64
		}
		resp.DeliveryAddress = address
	}

	resp.Items, err = h.readItems(ctx, id)
	if err != nil {
		return GetCartQueryResponse{}, err
	}
	return resp, nil
}

func (h GetCartQueryHandler) readItems(ctx context.Context, cartID uuid.UUID) ([]CartItemResponse, error) {
	items := make([]CartItemResponse, 0)
	index := make(map[uuid.UUID]int)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			library_id,
			library_name,
			total_delivery_cost
		FROM cart_items
		WHERE cart_id = ?
		ORDER BY library_name, library_id
	`, cartID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item CartItemResponse
		var libraryID uuid.UUID

		if err = rows.Scan(&libraryID, &item.LibraryName, &item.TotalDeliveryCost); err != nil {
			return nil, err
		}
		if item.LibraryID, err = kernel.UUIDFromBytes(libraryID[:]); err != nil {
			return nil, err
		}
		item.SubItems = make([]CartSubItemResponse, 0)

		index[libraryID] = len(items)
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	subRows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			library_id,
			book_id,
			book_title,
			quantity
		FROM cart_sub_items
		WHERE cart_id = ?
		ORDER BY book_title, id
	`, cartID).Rows()
	if err != nil {
		return nil, err
	}
	defer subRows.Close()

	for subRows.Next() {
		var sub CartSubItemResponse
		var id, libraryID, bookID uuid.UUID

		if err = subRows.Scan(&id, &libraryID, &bookID, &sub.BookTitle, &sub.Quantity); err != nil {
			return nil, err
		}
		if sub.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if sub.BookID, err = kernel.UUIDFromBytes(bookID[:]); err != nil {
			return nil, err
		}

		if i, ok := index[libraryID]; ok {
			items[i].SubItems = append(items[i].SubItems, sub)
		}
	}
	return items, subRows.Err()
}
