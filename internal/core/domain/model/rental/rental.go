package rental

import (
	"errors"
	"fmt"
	"math"
	"time"

	"bookrider/internal/core/domain/model/kernel"
	"bookrider/internal/pkg/errs"
	"bookrider/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	// ErrRentalIsNotConstructed is returned when a Rental instance was
	// not created through a constructor.
	ErrRentalIsNotConstructed = errors.New(
		"Rental must be created via NewRental or RestoreRental constructor")

	// ErrOverReturn indicates an attempt to return more copies than are
	// still outstanding on the rental.
	ErrOverReturn = errors.New("returned quantity exceeds outstanding quantity")

	// ErrRentalAlreadyReturned indicates a return attempt against a
	// rental with nothing outstanding.
	ErrRentalAlreadyReturned = errors.New("rental is already fully returned")
)

// DailyLateFee is charged per started day past the return deadline.
var DailyLateFee = decimal.RequireFromString("1.00")

// OverReturnError names the rental and quantities of a rejected return.
type OverReturnError struct {
	RentalID    kernel.UUID
	Requested   int
	Outstanding int
}

func NewOverReturnError(rentalID kernel.UUID, requested, outstanding int) *OverReturnError {
	return &OverReturnError{RentalID: rentalID, Requested: requested, Outstanding: outstanding}
}

func (e *OverReturnError) Error() string {
	return fmt.Sprintf("%v: rental %s, requested %d, outstanding %d",
		ErrOverReturn, e.RentalID, e.Requested, e.Outstanding)
}

func (e *OverReturnError) Unwrap() error {
	return ErrOverReturn
}

// Rental tracks the copies of one book a user holds from one delivered
// order. It is created exactly once per delivered non-return order line
// and accumulates returns until every copy is back.
type Rental struct {
	id               kernel.UUID
	bookID           kernel.UUID
	libraryID        kernel.UUID
	orderID          kernel.UUID
	userID           string
	quantity         int
	rentedAt         time.Time
	returnDeadline   time.Time
	returnedQuantity int
	returnedAt       *time.Time
	status           Status

	guard guard.ConstructorGuard
}

// NewRental creates an active rental at delivery time.
func NewRental(
	id kernel.UUID,
	bookID kernel.UUID,
	libraryID kernel.UUID,
	orderID kernel.UUID,
	userID string,
	quantity int,
	rentedAt time.Time,
	returnDeadline time.Time,
) (*Rental, error) {
	rental := &Rental{
		rentedAt:       rentedAt,
		returnDeadline: returnDeadline,
		status:         Active,
		guard:          guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		rental.setID(id),
		rental.setBookID(bookID),
		rental.setLibraryID(libraryID),
		rental.setOrderID(orderID),
		rental.setUserID(userID),
		rental.setQuantity(quantity),
	); err != nil {
		return nil, err
	}

	if !returnDeadline.After(rentedAt) {
		return nil, errs.NewValueIsInvalidError("returnDeadline is not after rentedAt")
	}

	return rental, nil
}

// RestoreRental rehydrates a rental from persistence.
func RestoreRental(
	id kernel.UUID,
	bookID kernel.UUID,
	libraryID kernel.UUID,
	orderID kernel.UUID,
	userID string,
	quantity int,
	rentedAt time.Time,
	returnDeadline time.Time,
	returnedQuantity int,
	returnedAt *time.Time,
	status Status,
) (*Rental, error) {
	rental, err := NewRental(id, bookID, libraryID, orderID, userID, quantity, rentedAt, returnDeadline)
	if err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if returnedQuantity < 0 || returnedQuantity > quantity {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"returnedQuantity is invalid",
			fmt.Errorf("%d is outside [0, %d]", returnedQuantity, quantity))
	}

	rental.returnedQuantity = returnedQuantity
	rental.returnedAt = returnedAt
	rental.status = status
	return rental, nil
}

// Validate ensures the rental was built through a constructor.
func (r *Rental) Validate() error {
	if r == nil {
		return ErrRentalIsNotConstructed
	}
	return r.guard.Validate(ErrRentalIsNotConstructed)
}

// ID returns the rental's unique identifier.
func (r *Rental) ID() kernel.UUID { return r.id }

// BookID returns the rented book's identifier.
func (r *Rental) BookID() kernel.UUID { return r.bookID }

// LibraryID returns the owning library's identifier.
func (r *Rental) LibraryID() kernel.UUID { return r.libraryID }

// OrderID returns the originating delivery order. The reference is used
// for lookup and display, not lifecycle.
func (r *Rental) OrderID() kernel.UUID { return r.orderID }

// UserID returns the renting user's identity.
func (r *Rental) UserID() string { return r.userID }

// Quantity returns how many copies were rented.
func (r *Rental) Quantity() int { return r.quantity }

// RentedAt returns when the rental started.
func (r *Rental) RentedAt() time.Time { return r.rentedAt }

// ReturnDeadline returns when the copies must be back.
func (r *Rental) ReturnDeadline() time.Time { return r.returnDeadline }

// ReturnedQuantity returns how many copies are already back.
func (r *Rental) ReturnedQuantity() int { return r.returnedQuantity }

// ReturnedAt returns when the last copy came back, or nil.
func (r *Rental) ReturnedAt() *time.Time { return r.returnedAt }

// Status returns the rental's current status.
func (r *Rental) Status() Status { return r.status }

// Outstanding returns how many copies the user still holds.
func (r *Rental) Outstanding() int {
	return r.quantity - r.returnedQuantity
}

// Return records quantity copies coming back at the given time.
//
// Returning more than Outstanding fails with OverReturnError and leaves
// the rental unchanged. A full return moves the rental to Returned and
// stamps returnedAt; a partial return leaves the current status in place.
func (r *Rental) Return(quantity int, at time.Time) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid", fmt.Errorf("%d is not greater than 0", quantity))
	}
	if r.status == Returned {
		return ErrRentalAlreadyReturned
	}
	outstanding := r.Outstanding()
	if quantity > outstanding {
		return NewOverReturnError(r.id, quantity, outstanding)
	}

	r.returnedQuantity += quantity
	if r.Outstanding() == 0 {
		r.status = Returned
		r.returnedAt = &at
	}
	return nil
}

// IsOverdue reports whether the deadline has passed with copies still
// outstanding.
func (r *Rental) IsOverdue(asOf time.Time) bool {
	return r.status != Returned && asOf.After(r.returnDeadline)
}

// MarkOverdue moves an active rental past its deadline to Overdue.
// A no-op unless the rental is Active and actually overdue.
func (r *Rental) MarkOverdue(asOf time.Time) bool {
	if r.status != Active || !r.IsOverdue(asOf) {
		return false
	}
	r.status = Overdue
	return true
}

// LateFee returns the fee owed as of the given time: zero up to and
// including the deadline, then DailyLateFee per started day late.
func (r *Rental) LateFee(asOf time.Time) decimal.Decimal {
	if !asOf.After(r.returnDeadline) {
		return kernel.RoundMoney(kernel.ZeroMoney())
	}
	daysLate := int64(math.Ceil(asOf.Sub(r.returnDeadline).Hours() / 24))
	return kernel.RoundMoney(DailyLateFee.Mul(decimal.NewFromInt(daysLate)))
}

func (r *Rental) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Rental) setBookID(bookID kernel.UUID) error {
	if err := bookID.Validate(); err != nil {
		return err
	}
	r.bookID = bookID
	return nil
}

func (r *Rental) setLibraryID(libraryID kernel.UUID) error {
	if err := libraryID.Validate(); err != nil {
		return err
	}
	r.libraryID = libraryID
	return nil
}

func (r *Rental) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	r.orderID = orderID
	return nil
}

func (r *Rental) setUserID(userID string) error {
	if userID == "" {
		return errs.NewValueIsRequiredError("userID")
	}
	r.userID = userID
	return nil
}

func (r *Rental) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid", fmt.Errorf("%d is not greater than 0", quantity))
	}
	r.quantity = quantity
	return nil
}
