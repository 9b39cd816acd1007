package queries

import (
	"context"

	"bookrider/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetUserTransactionsQueryHandler reads a user's ledger from the
// database.
type GetUserTransactionsQueryHandler struct {
	db *gorm.DB
}

// NewGetUserTransactionsQueryHandler creates a handler for ledger
// queries.
func NewGetUserTransactionsQueryHandler(db *gorm.DB) GetUserTransactionsQueryHandler {
	return GetUserTransactionsQueryHandler{db: db}
}

// Handle returns the user's ledger entries, newest first.
func (h GetUserTransactionsQueryHandler) Handle(
	ctx context.Context,
	query GetUserTransactionsQuery,
) ([]GetUserTransactionsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	transactions := make([]GetUserTransactionsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			tx_type,
			amount,
			order_id,
			rental_return_id,
			created_at
		FROM transactions
		WHERE user_id = ?
		ORDER BY created_at DESC, id
	`, query.UserID()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetUserTransactionsQueryResponse
		var id uuid.UUID
		var orderID, rentalReturnID uuid.NullUUID

		err = rows.Scan(
			&id,
			&resp.TxType,
			&resp.Amount,
			&orderID,
			&rentalReturnID,
			&resp.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.OrderID, err = optionalUUID(orderID); err != nil {
			return nil, err
		}
		if resp.RentalReturnID, err = optionalUUID(rentalReturnID); err != nil {
			return nil, err
		}

		transactions = append(transactions, resp)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return transactions, nil
}

func optionalUUID(id uuid.NullUUID) (*kernel.UUID, error) {
	if !id.Valid {
		return nil, nil
	}
	converted, err := kernel.UUIDFromBytes(id.UUID[:])
	if err != nil {
		return nil, err
	}
	return &converted, nil
}
