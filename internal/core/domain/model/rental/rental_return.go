package rental

import (
	"errors"
	"fmt"
	"time"

	"bookrider/internal/core/domain/model/kernel"
	"bookrider/internal/pkg/errs"
	"bookrider/internal/pkg/guard"
)

var (
	// ErrRentalReturnIsNotConstructed is returned when a RentalReturn
	// instance was not created through a constructor.
	ErrRentalReturnIsNotConstructed = errors.New(
		"RentalReturn must be created via NewRentalReturn or RestoreRentalReturn constructor")

	// ErrReturnAlreadyCompleted indicates a completion attempt against a
	// return that was already completed.
	ErrReturnAlreadyCompleted = errors.New("rental return is already completed")
)

// ReturnStatus represents the state of a rental return.
type ReturnStatus int

const (
	// UnknownReturnStatus represents an invalid or undefined status.
	UnknownReturnStatus ReturnStatus = iota

	// InProgress means a pickup order is on its way to collect the books.
	InProgress

	// InPerson means the user brings the books back themselves, with no
	// pickup order involved.
	InPerson

	// Completed means a librarian confirmed the books are back. Terminal.
	Completed
)

func getReturnStatusStrings() map[ReturnStatus]string {
	return map[ReturnStatus]string{
		UnknownReturnStatus: "UNKNOWN",
		InProgress:          "IN_PROGRESS",
		InPerson:            "IN_PERSON",
		Completed:           "COMPLETED",
	}
}

// ReturnStatusFromString parses a persisted return status string.
func ReturnStatusFromString(s string) (ReturnStatus, error) {
	for status, str := range getReturnStatusStrings() {
		if status != UnknownReturnStatus && str == s {
			return status, nil
		}
	}
	return UnknownReturnStatus, errs.NewValueIsInvalidError(
		fmt.Sprintf("return status %q", s))
}

// Validate checks if the ReturnStatus value is valid.
func (s ReturnStatus) Validate() error {
	if s != InProgress && s != InPerson && s != Completed {
		return errs.NewValueIsInvalidError("return status")
	}
	return nil
}

// String returns the persisted name of the status.
func (s ReturnStatus) String() string {
	if str, ok := getReturnStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// ReturnItem is one rental's share of a rental return.
type ReturnItem struct {
	rentalID         kernel.UUID
	returnedQuantity int
}

// NewReturnItem creates a validated return line.
func NewReturnItem(rentalID kernel.UUID, returnedQuantity int) (ReturnItem, error) {
	if err := rentalID.Validate(); err != nil {
		return ReturnItem{}, err
	}
	if returnedQuantity <= 0 {
		return ReturnItem{}, errs.NewValueIsInvalidErrorWithCause(
			"returnedQuantity is invalid",
			fmt.Errorf("%d is not greater than 0", returnedQuantity))
	}
	return ReturnItem{rentalID: rentalID, returnedQuantity: returnedQuantity}, nil
}

// RentalID returns the rental this line returns copies of.
func (i ReturnItem) RentalID() kernel.UUID { return i.rentalID }

// ReturnedQuantity returns how many copies this line brings back.
func (i ReturnItem) ReturnedQuantity() int { return i.returnedQuantity }

// RentalReturn groups the rentals a user sends back to one library in a
// single act, either via a pickup order or in person. A librarian
// completes it once the books are physically back.
type RentalReturn struct {
	id            kernel.UUID
	returnOrderID *kernel.UUID
	status        ReturnStatus
	createdAt     time.Time
	returnedAt    *time.Time
	items         []ReturnItem

	guard guard.ConstructorGuard
}

// NewRentalReturn creates a return backed by a pickup order (InProgress).
func NewRentalReturn(id kernel.UUID, returnOrderID kernel.UUID, items []ReturnItem, now time.Time) (*RentalReturn, error) {
	rr, err := newRentalReturn(id, items, now)
	if err != nil {
		return nil, err
	}
	if err := returnOrderID.Validate(); err != nil {
		return nil, err
	}
	rr.returnOrderID = &returnOrderID
	rr.status = InProgress
	return rr, nil
}

// NewInPersonRentalReturn creates a return the user handles themselves,
// with no pickup order (InPerson).
func NewInPersonRentalReturn(id kernel.UUID, items []ReturnItem, now time.Time) (*RentalReturn, error) {
	rr, err := newRentalReturn(id, items, now)
	if err != nil {
		return nil, err
	}
	rr.status = InPerson
	return rr, nil
}

func newRentalReturn(id kernel.UUID, items []ReturnItem, now time.Time) (*RentalReturn, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errs.NewValueIsRequiredError("items")
	}

	return &RentalReturn{
		id:        id,
		createdAt: now,
		items:     append([]ReturnItem(nil), items...),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// RestoreRentalReturn rehydrates a rental return from persistence.
func RestoreRentalReturn(
	id kernel.UUID,
	returnOrderID *kernel.UUID,
	status ReturnStatus,
	createdAt time.Time,
	returnedAt *time.Time,
	items []ReturnItem,
) (*RentalReturn, error) {
	rr, err := newRentalReturn(id, items, createdAt)
	if err != nil {
		return nil, err
	}
	if err := status.Validate(); err != nil {
		return nil, err
	}
	if returnOrderID != nil {
		if err := returnOrderID.Validate(); err != nil {
			return nil, err
		}
	}

	rr.returnOrderID = returnOrderID
	rr.status = status
	rr.returnedAt = returnedAt
	return rr, nil
}

// Validate ensures the return was built through a constructor.
func (rr *RentalReturn) Validate() error {
	if rr == nil {
		return ErrRentalReturnIsNotConstructed
	}
	return rr.guard.Validate(ErrRentalReturnIsNotConstructed)
}

// ID returns the return's unique identifier.
func (rr *RentalReturn) ID() kernel.UUID { return rr.id }

// ReturnOrderID returns the pickup order bringing the books back,
// or nil for an in-person return.
func (rr *RentalReturn) ReturnOrderID() *kernel.UUID { return rr.returnOrderID }

// Status returns the return's current status.
func (rr *RentalReturn) Status() ReturnStatus { return rr.status }

// CreatedAt returns when the return was requested.
func (rr *RentalReturn) CreatedAt() time.Time { return rr.createdAt }

// ReturnedAt returns when a librarian completed the return, or nil.
func (rr *RentalReturn) ReturnedAt() *time.Time { return rr.returnedAt }

// Items returns a copy of the return lines.
func (rr *RentalReturn) Items() []ReturnItem {
	return append([]ReturnItem(nil), rr.items...)
}

// Complete marks the books as physically back at the library.
func (rr *RentalReturn) Complete(now time.Time) error {
	if rr.status == Completed {
		return ErrReturnAlreadyCompleted
	}
	rr.status = Completed
	rr.returnedAt = &now
	return nil
}
