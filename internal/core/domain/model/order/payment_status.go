package order

import (
	"fmt"

	"bookrider/internal/pkg/errs"
)

// PaymentStatus tracks payment for an order, orthogonally to the delivery
// state machine. Checkout must record a successful payment before the
// order can advance past Pending.
type PaymentStatus int

const (
	// UnknownPaymentStatus represents an invalid or undefined value.
	UnknownPaymentStatus PaymentStatus = iota

	// PaymentPending means no payment has been recorded yet.
	PaymentPending

	// PaymentPaid means the user's payment transaction was recorded.
	PaymentPaid

	// PaymentRefunded means the payment was refunded after cancellation.
	PaymentRefunded
)

func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		UnknownPaymentStatus: "UNKNOWN",
		PaymentPending:       "PENDING",
		PaymentPaid:          "PAID",
		PaymentRefunded:      "REFUNDED",
	}
}

// PaymentStatusFromString parses a persisted payment status string.
func PaymentStatusFromString(s string) (PaymentStatus, error) {
	for status, str := range getPaymentStatusStrings() {
		if status != UnknownPaymentStatus && str == s {
			return status, nil
		}
	}
	return UnknownPaymentStatus, errs.NewValueIsInvalidError(
		fmt.Sprintf("payment status %q", s))
}

// Validate checks if the PaymentStatus value is valid.
func (s PaymentStatus) Validate() error {
	if s != PaymentPending && s != PaymentPaid && s != PaymentRefunded {
		return errs.NewValueIsInvalidError("payment status")
	}
	return nil
}

// String returns the persisted name of the payment status.
func (s PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// MarkPaid transitions the payment status to PaymentPaid.
// Only pending payments can be paid.
func (s PaymentStatus) MarkPaid() (PaymentStatus, error) {
	if s != PaymentPending {
		return 0, errs.NewValueIsInvalidError(
			fmt.Sprintf("payment status %s cannot be marked paid", s))
	}
	return PaymentPaid, nil
}

// Refund transitions the payment status to PaymentRefunded.
// Only paid orders can be refunded.
func (s PaymentStatus) Refund() (PaymentStatus, error) {
	if s != PaymentPaid {
		return 0, errs.NewValueIsInvalidError(
			fmt.Sprintf("payment status %s cannot be refunded", s))
	}
	return PaymentRefunded, nil
}
