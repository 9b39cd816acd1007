package queries

import (
	"context"
	"time"

	"bookrider/internal/core/domain/model/kernel"
	"bookrider/internal/core/domain/model/rental"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetUserRentalsQueryHandler reads a user's rentals from the database.
// The accrued late fee is computed through the rental aggregate so the
// list always matches what a return would actually charge.
type GetUserRentalsQueryHandler struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGetUserRentalsQueryHandler creates a handler for rental list
// queries.
func NewGetUserRentalsQueryHandler(db *gorm.DB) GetUserRentalsQueryHandler {
	return GetUserRentalsQueryHandler{db: db, now: time.Now}
}

// Handle returns the user's rentals, most recent first.
func (h GetUserRentalsQueryHandler) Handle(
	ctx context.Context,
	query GetUserRentalsQuery,
) ([]GetUserRentalsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rentals := make([]GetUserRentalsQueryResponse, 0)
	now := h.now()

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			r.id,
			r.order_id,
			r.book_id,
			b.title,
			r.library_id,
			l.name,
			r.quantity,
			r.returned_quantity,
			r.status,
			r.rented_at,
			r.return_deadline,
			r.returned_at
		FROM rentals r
		JOIN books b ON b.id = r.book_id
		JOIN libraries l ON l.id = r.library_id
		WHERE r.user_id = ?
		ORDER BY r.rented_at DESC, r.id
	`, query.UserID()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetUserRentalsQueryResponse
		var id, orderID, bookID, libraryID uuid.UUID
		var returnedQuantity int

		err = rows.Scan(
			&id,
			&orderID,
			&bookID,
			&resp.BookTitle,
			&libraryID,
			&resp.LibraryName,
			&resp.Quantity,
			&returnedQuantity,
			&resp.Status,
			&resp.RentedAt,
			&resp.ReturnDeadline,
			&resp.ReturnedAt,
		)
		if err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.BookID, err = kernel.UUIDFromBytes(bookID[:]); err != nil {
			return nil, err
		}
		if resp.LibraryID, err = kernel.UUIDFromBytes(libraryID[:]); err != nil {
			return nil, err
		}
		resp.Outstanding = resp.Quantity - returnedQuantity

		status, err := rental.StatusFromString(resp.Status)
		if err != nil {
			return nil, err
		}
		rentalOrderID, err := kernel.UUIDFromBytes(orderID[:])
		if err != nil {
			return nil, err
		}
		aggregate, err := rental.RestoreRental(
			resp.ID, resp.BookID, resp.LibraryID, rentalOrderID, query.UserID(),
			resp.Quantity, resp.RentedAt, resp.ReturnDeadline,
			returnedQuantity, resp.ReturnedAt, status)
		if err != nil {
			return nil, err
		}
		resp.LateFee = aggregate.LateFee(now)

		rentals = append(rentals, resp)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return rentals, nil
}
