package queries

import (
	"errors"
	"time"

	"bookrider/internal/core/domain/model/kernel"
	"bookrider/internal/pkg/errs"
	"bookrider/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetUserTransactionsQueryIsNotConstructed = errors.New(
	"GetUserTransactionsQuery must be created via NewGetUserTransactionsQuery constructor")

// GetUserTransactionsQuery retrieves a user's ledger entries. Drivers
// see their payouts through the same query.
type GetUserTransactionsQuery struct {
	userID string

	guard guard.ConstructorGuard
}

// NewGetUserTransactionsQuery creates a validated query.
func NewGetUserTransactionsQuery(userID string) (GetUserTransactionsQuery, error) {
	if userID == "" {
		return GetUserTransactionsQuery{}, errs.NewValueIsRequiredError("userID")
	}
	return GetUserTransactionsQuery{userID: userID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetUserTransactionsQuery) Validate() error {
	return q.guard.Validate(ErrGetUserTransactionsQueryIsNotConstructed)
}

// UserID returns whose ledger to read.
func (q GetUserTransactionsQuery) UserID() string { return q.userID }

// GetUserTransactionsQueryResponse is one ledger entry.
type GetUserTransactionsQueryResponse struct {
	ID             kernel.UUID
	TxType         string
	Amount         decimal.Decimal
	OrderID        *kernel.UUID
	RentalReturnID *kernel.UUID
	CreatedAt      time.Time
}
