package billing

import (
	"errors"
	"fmt"
	"time"

	"bookrider/internal/core/domain/model/kernel"
	"bookrider/internal/pkg/errs"
	"bookrider/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrTransactionIsNotConstructed is returned when a Transaction instance
// was not created through a constructor.
var ErrTransactionIsNotConstructed = errors.New(
	"Transaction must be created via a New...Transaction constructor")

// Type classifies a ledger entry.
type Type int

const (
	// UnknownType represents an invalid or undefined type.
	UnknownType Type = iota

	// UserPayment is a user paying for a delivery.
	UserPayment

	// DriverPayout is the driver's share of a delivered order.
	DriverPayout

	// LateFee is a charge for returning rented books late.
	LateFee

	// Refund is money returned to the user after a cancellation.
	Refund
)

func getTypeStrings() map[Type]string {
	return map[Type]string{
		UnknownType:  "UNKNOWN",
		UserPayment:  "USER_PAYMENT",
		DriverPayout: "DRIVER_PAYOUT",
		LateFee:      "LATE_FEE",
		Refund:       "REFUND",
	}
}

// TypeFromString parses a persisted transaction type string.
func TypeFromString(s string) (Type, error) {
	for t, str := range getTypeStrings() {
		if t != UnknownType && str == s {
			return t, nil
		}
	}
	return UnknownType, errs.NewValueIsInvalidError(fmt.Sprintf("transaction type %q", s))
}

// Validate checks if the Type value is valid.
func (t Type) Validate() error {
	if t != UserPayment && t != DriverPayout && t != LateFee && t != Refund {
		return errs.NewValueIsInvalidError("transaction type")
	}
	return nil
}

// String returns the persisted name of the type.
func (t Type) String() string {
	if str, ok := getTypeStrings()[t]; ok {
		return str
	}
	return "UNKNOWN"
}

// Transaction is one append-only ledger entry. Entries are never mutated
// after creation; corrections are new entries.
type Transaction struct {
	id             kernel.UUID
	userID         string
	orderID        *kernel.UUID
	rentalReturnID *kernel.UUID
	amount         decimal.Decimal
	txType         Type
	createdAt      time.Time

	guard guard.ConstructorGuard
}

// NewTransaction creates a ledger entry. orderID and rentalReturnID are
// optional back-references to what the money was for.
func NewTransaction(
	id kernel.UUID,
	userID string,
	orderID *kernel.UUID,
	rentalReturnID *kernel.UUID,
	amount decimal.Decimal,
	txType Type,
	now time.Time,
) (*Transaction, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if userID == "" {
		return nil, errs.NewValueIsRequiredError("userID")
	}
	if err := txType.Validate(); err != nil {
		return nil, err
	}
	if amount.IsNegative() {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"amount is invalid", fmt.Errorf("%s is negative", amount))
	}
	if orderID != nil {
		if err := orderID.Validate(); err != nil {
			return nil, err
		}
	}
	if rentalReturnID != nil {
		if err := rentalReturnID.Validate(); err != nil {
			return nil, err
		}
	}

	return &Transaction{
		id:             id,
		userID:         userID,
		orderID:        orderID,
		rentalReturnID: rentalReturnID,
		amount:         kernel.RoundMoney(amount),
		txType:         txType,
		createdAt:      now,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the transaction was built through a constructor.
func (t *Transaction) Validate() error {
	if t == nil {
		return ErrTransactionIsNotConstructed
	}
	return t.guard.Validate(ErrTransactionIsNotConstructed)
}

// ID returns the entry's unique identifier.
func (t *Transaction) ID() kernel.UUID { return t.id }

// UserID returns whose money moved.
func (t *Transaction) UserID() string { return t.userID }

// OrderID returns the related order, or nil.
func (t *Transaction) OrderID() *kernel.UUID { return t.orderID }

// RentalReturnID returns the related rental return, or nil.
func (t *Transaction) RentalReturnID() *kernel.UUID { return t.rentalReturnID }

// Amount returns the entry's amount. Always non-negative; the type says
// which way the money moved.
func (t *Transaction) Amount() decimal.Decimal { return t.amount }

// TxType returns the entry's classification.
func (t *Transaction) TxType() Type { return t.txType }

// CreatedAt returns when the entry was recorded.
func (t *Transaction) CreatedAt() time.Time { return t.createdAt }
