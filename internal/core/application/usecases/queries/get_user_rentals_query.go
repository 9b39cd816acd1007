package queries

import (
	"errors"
	"time"

	"bookrider/internal/core/domain/model/kernel"
	"bookrider/internal/pkg/errs"
	"bookrider/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetUserRentalsQueryIsNotConstructed = errors.New(
	"GetUserRentalsQuery must be created via NewGetUserRentalsQuery constructor")

// GetUserRentalsQuery retrieves the books a user currently holds or has
// held, with the late fee accrued so far.
type GetUserRentalsQuery struct {
	userID string

	guard guard.ConstructorGuard
}

// NewGetUserRentalsQuery creates a validated query.
func NewGetUserRentalsQuery(userID string) (GetUserRentalsQuery, error) {
	if userID == "" {
		return GetUserRentalsQuery{}, errs.NewValueIsRequiredError("userID")
	}
	return GetUserRentalsQuery{userID: userID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetUserRentalsQuery) Validate() error {
	return q.guard.Validate(ErrGetUserRentalsQueryIsNotConstructed)
}

// UserID returns whose rentals to list.
func (q GetUserRentalsQuery) UserID() string { return q.userID }

// GetUserRentalsQueryResponse is one rental in the user's list.
type GetUserRentalsQueryResponse struct {
	ID             kernel.UUID
	BookID         kernel.UUID
	BookTitle      string
	LibraryID      kernel.UUID
	LibraryName    string
	Quantity       int
	Outstanding    int
	Status         string
	RentedAt       time.Time
	ReturnDeadline time.Time
	ReturnedAt     *time.Time
	LateFee        decimal.Decimal
}
