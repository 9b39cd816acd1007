package order

import (
	"errors"
	"fmt"
	"time"

	"bookrider/internal/core/domain/model/kernel"
	"bookrider/internal/pkg/errs"
	"bookrider/internal/pkg/guard"
)

// ErrOrderItemIsNotConstructed is returned when an OrderItem instance was
// not created through a constructor.
var ErrOrderItemIsNotConstructed = errors.New(
	"OrderItem must be created via NewOrderItem or RestoreOrderItem constructor")

// OrderItem is a line of an order: one book title in some quantity.
// Order exclusively owns its items; deleting an order removes them.
//
// After delivery the item carries the return deadline that seeds the
// corresponding rental, and return progress is mirrored back onto it.
// returnedQuantity never exceeds quantity.
type OrderItem struct {
	id               kernel.UUID
	bookID           kernel.UUID
	bookTitle        string
	quantity         int
	returnDeadline   *time.Time
	returnedQuantity int
	returnedAt       *time.Time

	guard guard.ConstructorGuard
}

// NewOrderItem creates a new order line. Quantity must be positive.
func NewOrderItem(id kernel.UUID, bookID kernel.UUID, bookTitle string, quantity int) (*OrderItem, error) {
	item := &OrderItem{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		item.setID(id),
		item.setBookID(bookID),
		item.setBookTitle(bookTitle),
		item.setQuantity(quantity),
	); err != nil {
		return nil, err
	}

	return item, nil
}

// RestoreOrderItem rehydrates an order line from persistence.
func RestoreOrderItem(
	id kernel.UUID,
	bookID kernel.UUID,
	bookTitle string,
	quantity int,
	returnDeadline *time.Time,
	returnedQuantity int,
	returnedAt *time.Time,
) (*OrderItem, error) {
	item, err := NewOrderItem(id, bookID, bookTitle, quantity)
	if err != nil {
		return nil, err
	}

	if returnedQuantity < 0 || returnedQuantity > quantity {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"returnedQuantity is invalid",
			fmt.Errorf("%d is outside [0, %d]", returnedQuantity, quantity))
	}

	item.returnDeadline = returnDeadline
	item.returnedQuantity = returnedQuantity
	item.returnedAt = returnedAt
	return item, nil
}

// Validate ensures the item was built through a constructor.
func (i *OrderItem) Validate() error {
	if i == nil {
		return ErrOrderItemIsNotConstructed
	}
	return i.guard.Validate(ErrOrderItemIsNotConstructed)
}

// ID returns the item's unique identifier.
func (i *OrderItem) ID() kernel.UUID {
	return i.id
}

// BookID returns the identifier of the ordered book.
func (i *OrderItem) BookID() kernel.UUID {
	return i.bookID
}

// BookTitle returns the title of the ordered book.
func (i *OrderItem) BookTitle() string {
	return i.bookTitle
}

// Quantity returns the ordered quantity.
func (i *OrderItem) Quantity() int {
	return i.quantity
}

// ReturnDeadline returns when the books must be returned by,
// or nil before delivery.
func (i *OrderItem) ReturnDeadline() *time.Time {
	return i.returnDeadline
}

// ReturnedQuantity returns how many copies have been returned so far.
func (i *OrderItem) ReturnedQuantity() int {
	return i.returnedQuantity
}

// ReturnedAt returns when the last copy was returned, or nil.
func (i *OrderItem) ReturnedAt() *time.Time {
	return i.returnedAt
}

// IsFullyReturned reports whether every copy has come back.
func (i *OrderItem) IsFullyReturned() bool {
	return i.returnedQuantity == i.quantity
}

// startReturnWindow stamps the return deadline once, at delivery time.
func (i *OrderItem) startReturnWindow(deadline time.Time) {
	if i.returnDeadline == nil {
		i.returnDeadline = &deadline
	}
}

// MarkReturned mirrors return progress from the rental tracker onto the
// originating order line. The returned quantity must not exceed what is
// still outstanding.
func (i *OrderItem) MarkReturned(quantity int, at time.Time) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid", fmt.Errorf("%d is not greater than 0", quantity))
	}
	outstanding := i.quantity - i.returnedQuantity
	if quantity > outstanding {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid",
			fmt.Errorf("%d exceeds outstanding quantity %d", quantity, outstanding))
	}

	i.returnedQuantity += quantity
	if i.IsFullyReturned() {
		i.returnedAt = &at
	}
	return nil
}

func (i *OrderItem) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *OrderItem) setBookID(bookID kernel.UUID) error {
	if err := bookID.Validate(); err != nil {
		return err
	}
	i.bookID = bookID
	return nil
}

func (i *OrderItem) setBookTitle(bookTitle string) error {
	if bookTitle == "" {
		return errs.NewValueIsRequiredError("bookTitle")
	}
	i.bookTitle = bookTitle
	return nil
}

func (i *OrderItem) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid", fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}
