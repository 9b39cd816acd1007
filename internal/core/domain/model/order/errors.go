package order

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTransition indicates a request to move an order to a
	// status the state machine does not allow from its current status.
	ErrInvalidTransition = errors.New("invalid order status transition")

	// ErrUnknownStatus indicates a status token that is not part of the
	// order state machine.
	ErrUnknownStatus = errors.New("unknown order status")

	// ErrNotOrderDriver indicates an attempt by a driver to act on an
	// order assigned to someone else.
	ErrNotOrderDriver = errors.New("driver is not assigned to this order")

	// ErrDriverTooFar indicates a delivery confirmation attempted too far
	// from the destination address.
	ErrDriverTooFar = errors.New("driver is too far from the delivery destination")

	// ErrDestinationNotGeocoded indicates a delivery confirmation against
	// a destination address that has no resolved coordinate.
	ErrDestinationNotGeocoded = errors.New("destination address has no resolved coordinate")
)

// InvalidTransitionError names the current and the requested status of a
// rejected transition.
type InvalidTransitionError struct {
	Current   Status
	Requested Status
}

func NewInvalidTransitionError(current, requested Status) *InvalidTransitionError {
	return &InvalidTransitionError{Current: current, Requested: requested}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%v: %s -> %s", ErrInvalidTransition, e.Current, e.Requested)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// UnknownStatusError names the token that could not be parsed as a status.
type UnknownStatusError struct {
	Token string
}

func NewUnknownStatusError(token string) *UnknownStatusError {
	return &UnknownStatusError{Token: token}
}

func (e *UnknownStatusError) Error() string {
	return fmt.Sprintf("%v: %s", ErrUnknownStatus, e.Token)
}

func (e *UnknownStatusError) Unwrap() error {
	return ErrUnknownStatus
}
