package queries

import (
	"context"

	"bookrider/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetUserOrdersQueryHandler reads a user's order history straight from
// the database, items included.
type GetUserOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetUserOrdersQueryHandler creates a handler for order history
// queries.
func NewGetUserOrdersQueryHandler(db *gorm.DB) GetUserOrdersQueryHandler {
	return GetUserOrdersQueryHandler{db: db}
}

// Handle returns the user's orders, newest first, with their items.
func (h GetUserOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetUserOrdersQuery,
) ([]GetUserOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetUserOrdersQueryResponse, 0)
	index := make(map[uuid.UUID]int)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			library_id,
			status,
			payment_status,
			is_return,
			amount,
			note_to_driver,
			delivery_photo_url,
			created_at,
			delivered_at
		FROM orders
		WHERE user_id = ?
		ORDER BY created_at DESC, id
	`, query.UserID()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetUserOrdersQueryResponse
		var id, libraryID uuid.UUID

		err = rows.Scan(
			&id,
			&libraryID,
			&resp.Status,
			&resp.PaymentStatus,
			&resp.IsReturn,
			&resp.Amount,
			&resp.NoteToDriver,
			&resp.DeliveryPhotoURL,
			&resp.CreatedAt,
			&resp.DeliveredAt,
		)
		if err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.LibraryID, err = kernel.UUIDFromBytes(libraryID[:]); err != nil {
			return nil, err
		}
		resp.Items = make([]OrderItemResponse, 0)

		index[id] = len(orders)
		orders = append(orders, resp)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	if err = h.attachItems(ctx, query.UserID(), orders, index); err != nil {
		return nil, err
	}
	return orders, nil
}

func (h GetUserOrdersQueryHandler) attachItems(
	ctx context.Context,
	userID string,
	orders []GetUserOrdersQueryResponse,
	index map[uuid.UUID]int,
) error {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			i.order_id,
			i.book_id,
			i.book_title,
			i.quantity,
			i.return_deadline,
			i.returned_quantity
		FROM order_items i
		JOIN orders o ON o.id = i.order_id
		WHERE o.user_id = ?
		ORDER BY i.order_id, i.id
	`, userID).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item OrderItemResponse
		var orderID, bookID uuid.UUID

		err = rows.Scan(
			&orderID,
			&bookID,
			&item.BookTitle,
			&item.Quantity,
			&item.ReturnDeadline,
			&item.ReturnedQuantity,
		)
		if err != nil {
			return err
		}
		if item.BookID, err = kernel.UUIDFromBytes(bookID[:]); err != nil {
			return err
		}

		if i, ok := index[orderID]; ok {
			orders[i].Items = append(orders[i].Items, item)
		}
	}
	return rows.Err()
}
