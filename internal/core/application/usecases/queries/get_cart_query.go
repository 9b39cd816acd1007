package queries

import (
	"errors"
	"time"

	"bookrider/internal/core/domain/model/kernel"
	"bookrider/internal/pkg/errs"
	"bookrider/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetCartQueryIsNotConstructed = errors.New(
	"GetCartQuery must be created via NewGetCartQuery constructor")

// GetCartQuery retrieves the user's shopping cart as a read model. A
// user with no cart yet gets an empty response, not an error.
type GetCartQuery struct {
	userID string

	guard guard.ConstructorGuard
}

// NewGetCartQuery creates a validated query.
func NewGetCartQuery(userID string) (GetCartQuery, error) {
	if userID == "" {
		return GetCartQuery{}, errs.NewValueIsRequiredError("userID")
	}
	return GetCartQuery{userID: userID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCartQuery) Validate() error {
	return q.guard.Validate(ErrGetCartQueryIsNotConstructed)
}

// UserID returns whose cart to read.
func (q GetCartQuery) UserID() string { return q.userID }

// GetCartQueryResponse is the cart read model.
type GetCartQueryResponse struct {
	ID              kernel.UUID
	DeliveryAddress *CartAddressResponse
	TotalCost       decimal.Decimal
	Version         int64
	UpdatedAt       time.Time
	Items           []CartItemResponse
}

// CartAddressResponse is the cart's delivery address, when set.
type CartAddressResponse struct {
	Street     string
	City       string
	PostalCode string
	Latitude   *float64
	Longitude  *float64
}

// CartItemResponse is one library's share of the cart.
type CartItemResponse struct {
	LibraryID         kernel.UUID
	LibraryName       string
	TotalDeliveryCost decimal.Decimal
	SubItems          []CartSubItemResponse
}

// CartSubItemResponse is one book line within a library item.
type CartSubItemResponse struct {
	ID        kernel.UUID
	BookID    kernel.UUID
	BookTitle string
	Quantity  int
}
