package order

import (
	"errors"
	"fmt"
	"time"

	"bookrider/internal/core/domain/model/kernel"
	"bookrider/internal/pkg/errs"
	"bookrider/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

const (
	// MaxDeliveryDistanceMeters is how close the driver must be to the
	// destination to confirm delivery.
	MaxDeliveryDistanceMeters = 200.0

	// ReturnDeadlineDays is the rental window started at delivery.
	ReturnDeadlineDays = 30
)

// ErrOrderIsNotConstructed is returned when an Order instance was not
// created through a constructor.
var ErrOrderIsNotConstructed = errors.New(
	"Order must be created via NewOrder or RestoreOrder constructor")

// Order is the aggregate root of a book delivery. It manages the
// lifecycle from checkout through librarian acceptance, driver assignment
// and transit to delivery, or cancellation.
//
// Order follows these invariants:
//   - Status transitions are linear and never skip states
//   - Each lifecycle timestamp is stamped exactly once
//   - Only the assigned driver can pick up and deliver
//   - Delivery requires the driver within MaxDeliveryDistanceMeters of
//     the destination
//   - returnedQuantity of every item never exceeds its quantity
type Order struct {
	id                 kernel.UUID
	userID             string
	libraryID          kernel.UUID
	pickupAddress      kernel.Address
	destinationAddress kernel.Address
	driverID           *string
	librarianID        *string
	isReturn           bool
	status             Status
	paymentStatus      PaymentStatus
	amount             decimal.Decimal
	noteToDriver       string
	deliveryPhotoURL   *string

	createdAt        time.Time
	acceptedAt       *time.Time
	driverAssignedAt *time.Time
	pickedUpAt       *time.Time
	deliveredAt      *time.Time

	items []*OrderItem

	guard guard.ConstructorGuard
}

// NewOrder creates a pending, unpaid order at checkout time.
//
// A regular order moves books from a library to the user; a return order
// (isReturn) moves them back, and delivering it never starts new rentals.
func NewOrder(
	id kernel.UUID,
	userID string,
	libraryID kernel.UUID,
	pickupAddress kernel.Address,
	destinationAddress kernel.Address,
	isReturn bool,
	amount decimal.Decimal,
	noteToDriver string,
	items []*OrderItem,
	now time.Time,
) (*Order, error) {
	order := &Order{
		isReturn:      isReturn,
		status:        Pending,
		paymentStatus: PaymentPending,
		noteToDriver:  noteToDriver,
		createdAt:     now,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		order.setID(id),
		order.setUserID(userID),
		order.setLibraryID(libraryID),
		order.setPickupAddress(pickupAddress),
		order.setDestinationAddress(destinationAddress),
		order.setAmount(amount),
		order.setItems(items),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// RestoreOrder rehydrates an order from persistence without replaying
// transitions. The stored status and timestamps are trusted as-is.
func RestoreOrder(
	id kernel.UUID,
	userID string,
	libraryID kernel.UUID,
	pickupAddress kernel.Address,
	destinationAddress kernel.Address,
	driverID *string,
	librarianID *string,
	isReturn bool,
	status Status,
	paymentStatus PaymentStatus,
	amount decimal.Decimal,
	noteToDriver string,
	deliveryPhotoURL *string,
	createdAt time.Time,
	acceptedAt *time.Time,
	driverAssignedAt *time.Time,
	pickedUpAt *time.Time,
	deliveredAt *time.Time,
	items []*OrderItem,
) (*Order, error) {
	order, err := NewOrder(id, userID, libraryID, pickupAddress, destinationAddress,
		isReturn, amount, noteToDriver, items, createdAt)
	if err != nil {
		return nil, err
	}

	if err := errors.Join(status.Validate(), paymentStatus.Validate()); err != nil {
		return nil, err
	}

	order.driverID = driverID
	order.librarianID = librarianID
	order.status = status
	order.paymentStatus = paymentStatus
	order.deliveryPhotoURL = deliveryPhotoURL
	order.acceptedAt = acceptedAt
	order.driverAssignedAt = driverAssignedAt
	order.pickedUpAt = pickedUpAt
	order.deliveredAt = deliveredAt
	return order, nil
}

// Validate ensures the order was built through a constructor.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID { return o.id }

// UserID returns the ordering user's identity.
func (o *Order) UserID() string { return o.userID }

// LibraryID returns the library the books come from (or go back to,
// for a return order).
func (o *Order) LibraryID() kernel.UUID { return o.libraryID }

// PickupAddress returns where the driver collects the books.
func (o *Order) PickupAddress() kernel.Address { return o.pickupAddress }

// DestinationAddress returns where the books are delivered.
func (o *Order) DestinationAddress() kernel.Address { return o.destinationAddress }

// DriverID returns the assigned driver's identity, or nil.
func (o *Order) DriverID() *string { return o.driverID }

// LibrarianID returns the accepting librarian's identity, or nil.
func (o *Order) LibrarianID() *string { return o.librarianID }

// IsReturn reports whether this order brings books back to the library.
func (o *Order) IsReturn() bool { return o.isReturn }

// Status returns the current lifecycle status.
func (o *Order) Status() Status { return o.status }

// PaymentStatus returns the current payment status.
func (o *Order) PaymentStatus() PaymentStatus { return o.paymentStatus }

// Amount returns the total delivery price charged to the user.
func (o *Order) Amount() decimal.Decimal { return o.amount }

// NoteToDriver returns the user's free-text note for the driver.
func (o *Order) NoteToDriver() string { return o.noteToDriver }

// DeliveryPhotoURL returns the proof-of-delivery photo, or nil.
func (o *Order) DeliveryPhotoURL() *string { return o.deliveryPhotoURL }

// CreatedAt returns when the order was created.
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// AcceptedAt returns when a librarian accepted the order, or nil.
func (o *Order) AcceptedAt() *time.Time { return o.acceptedAt }

// DriverAssignedAt returns when a driver was assigned, or nil.
func (o *Order) DriverAssignedAt() *time.Time { return o.driverAssignedAt }

// PickedUpAt returns when the driver collected the books, or nil.
func (o *Order) PickedUpAt() *time.Time { return o.pickedUpAt }

// DeliveredAt returns when the books were delivered, or nil.
func (o *Order) DeliveredAt() *time.Time { return o.deliveredAt }

// Items returns the order lines. The slice is shared with the aggregate;
// callers must not modify it.
func (o *Order) Items() []*OrderItem { return o.items }

// MarkPaid records a successful payment transaction against the order.
func (o *Order) MarkPaid() error {
	newStatus, err := o.paymentStatus.MarkPaid()
	if err != nil {
		return err
	}
	o.paymentStatus = newStatus
	return nil
}

// Accept records a librarian accepting the order.
//
// Valid only from Pending. Stamps acceptedAt exactly once.
func (o *Order) Accept(librarianID string, now time.Time) error {
	if librarianID == "" {
		return errs.NewValueIsRequiredError("librarianID")
	}

	newStatus, err := o.status.Accept()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.librarianID = &librarianID
	o.acceptedAt = &now
	return nil
}

// AssignDriver records a driver taking the order and moves it to
// Processing.
//
// Valid only from Accepted; an order that already has a driver cannot be
// reassigned.
func (o *Order) AssignDriver(driverID string, now time.Time) error {
	if driverID == "" {
		return errs.NewValueIsRequiredError("driverID")
	}
	if o.driverID != nil {
		return NewInvalidTransitionError(o.status, Processing)
	}

	newStatus, err := o.status.AssignDriver()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.driverID = &driverID
	o.driverAssignedAt = &now
	return nil
}

// PickUp records the assigned driver collecting the books and moves the
// order to InTransit.
func (o *Order) PickUp(driverID string, now time.Time) error {
	if err := o.requireDriver(driverID); err != nil {
		return err
	}

	newStatus, err := o.status.PickUp()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.pickedUpAt = &now
	return nil
}

// Deliver confirms delivery by the assigned driver.
//
// The driver's reported location must be within MaxDeliveryDistanceMeters
// of the destination coordinate. On success the order becomes Delivered,
// deliveredAt is stamped, the photo URL is recorded and each item's
// return window starts (deliveredAt + ReturnDeadlineDays).
func (o *Order) Deliver(driverID string, driverLocation kernel.Coordinate, photoURL string, now time.Time) error {
	if err := o.requireDriver(driverID); err != nil {
		return err
	}

	destination := o.destinationAddress.Coordinate()
	if destination == nil {
		return ErrDestinationNotGeocoded
	}
	distance, err := driverLocation.DistanceMeters(*destination)
	if err != nil {
		return err
	}
	if distance > MaxDeliveryDistanceMeters {
		return ErrDriverTooFar
	}

	newStatus, err := o.status.Deliver()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.deliveredAt = &now
	if photoURL != "" {
		o.deliveryPhotoURL = &photoURL
	}

	if !o.isReturn {
		deadline := now.AddDate(0, 0, ReturnDeadlineDays)
		for _, item := range o.items {
			item.startReturnWindow(deadline)
		}
	}
	return nil
}

// Cancel cancels the order. Valid only from Pending or Accepted.
// If the order was already paid the payment is marked refunded.
func (o *Order) Cancel() error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = newStatus
	if o.paymentStatus == PaymentPaid {
		refunded, err := o.paymentStatus.Refund()
		if err != nil {
			return err
		}
		o.paymentStatus = refunded
	}
	return nil
}

// PayoutAmount returns what the driver earns for this order:
// the amount minus the platform's service fee share.
func (o *Order) PayoutAmount(serviceFeePercentage decimal.Decimal) decimal.Decimal {
	fee := o.amount.Mul(serviceFeePercentage)
	return kernel.RoundMoney(o.amount.Sub(fee))
}

func (o *Order) requireDriver(driverID string) error {
	if driverID == "" {
		return errs.NewValueIsRequiredError("driverID")
	}
	if o.driverID == nil || *o.driverID != driverID {
		return ErrNotOrderDriver
	}
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setUserID(userID string) error {
	if userID == "" {
		return errs.NewValueIsRequiredError("userID")
	}
	o.userID = userID
	return nil
}

func (o *Order) setLibraryID(libraryID kernel.UUID) error {
	if err := libraryID.Validate(); err != nil {
		return err
	}
	o.libraryID = libraryID
	return nil
}

func (o *Order) setPickupAddress(address kernel.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}
	o.pickupAddress = address
	return nil
}

func (o *Order) setDestinationAddress(address kernel.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}
	o.destinationAddress = address
	return nil
}

func (o *Order) setAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause(
			"amount is invalid", fmt.Errorf("%s is negative", amount))
	}
	o.amount = amount
	return nil
}

func (o *Order) setItems(items []*OrderItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.items = items
	return nil
}
