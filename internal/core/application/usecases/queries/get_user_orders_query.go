// Package queries contains read-only operations in the CQRS
// architecture. Query handlers bypass the domain aggregates and read
// the database directly into flat response models.
package queries

import (
	"errors"
	"time"

	"bookrider/internal/core/domain/model/kernel"
	"bookrider/internal/pkg/errs"
	"bookrider/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetUserOrdersQueryIsNotConstructed = errors.New(
	"GetUserOrdersQuery must be created via NewGetUserOrdersQuery constructor")

// GetUserOrdersQuery retrieves a user's orders, newest first.
//
// Example:
//
//	query, _ := queries.NewGetUserOrdersQuery("user-1")
//	handler := queries.NewGetUserOrdersQueryHandler(db)
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get orders: %w", err)
//	}
type GetUserOrdersQuery struct {
	userID string

	guard guard.ConstructorGuard
}

// NewGetUserOrdersQuery creates a validated query.
func NewGetUserOrdersQuery(userID string) (GetUserOrdersQuery, error) {
	if userID == "" {
		return GetUserOrdersQuery{}, errs.NewValueIsRequiredError("userID")
	}
	return GetUserOrdersQuery{userID: userID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetUserOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetUserOrdersQueryIsNotConstructed)
}

// UserID returns whose orders to list.
func (q GetUserOrdersQuery) UserID() string { return q.userID }

// GetUserOrdersQueryResponse is one order in the user's history.
type GetUserOrdersQueryResponse struct {
	ID               kernel.UUID
	LibraryID        kernel.UUID
	Status           string
	PaymentStatus    string
	IsReturn         bool
	Amount           decimal.Decimal
	NoteToDriver     string
	DeliveryPhotoURL *string
	CreatedAt        time.Time
	DeliveredAt      *time.Time
	Items            []OrderItemResponse
}

// OrderItemResponse is one line of an order in the history view.
type OrderItemResponse struct {
	BookID           kernel.UUID
	BookTitle        string
	Quantity         int
	ReturnDeadline   *time.Time
	ReturnedQuantity int
}
