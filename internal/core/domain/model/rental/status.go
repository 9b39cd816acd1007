package rental

import (
	"fmt"

	"bookrider/internal/pkg/errs"
)

// Status represents the state of a rental.
//
// State transitions:
//
//	Active ──┬──> Returned
//	         │        ▲
//	         └──> Overdue
//
// A rental becomes Overdue when the sweep finds it past its deadline,
// and Returned once every copy is back. Returned is terminal.
type Status int

const (
	// UnknownRentalStatus represents an invalid or undefined status.
	UnknownRentalStatus Status = iota

	// Active means the user still holds at least one copy and the
	// deadline has not passed.
	Active

	// Returned means every copy is back at the library. Terminal.
	Returned

	// Overdue means the deadline passed with copies still outstanding.
	Overdue
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		UnknownRentalStatus: "UNKNOWN",
		Active:              "ACTIVE",
		Returned:            "RETURNED",
		Overdue:             "OVERDUE",
	}
}

// StatusFromString parses a persisted rental status string.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if status != UnknownRentalStatus && str == s {
			return status, nil
		}
	}
	return UnknownRentalStatus, errs.NewValueIsInvalidError(
		fmt.Sprintf("rental status %q", s))
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if s != Active && s != Returned && s != Overdue {
		return errs.NewValueIsInvalidError("rental status")
	}
	return nil
}

// String returns the persisted name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}
