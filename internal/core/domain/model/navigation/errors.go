package navigation

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCoordinates indicates that the routing engine could not
	// anchor one of the supplied coordinates to the road network.
	ErrInvalidCoordinates = errors.New("invalid coordinates")

	// ErrInvalidTransportProfile indicates an unrecognized transport
	// profile token.
	ErrInvalidTransportProfile = errors.New("invalid transport profile")

	// ErrNoRouteFound indicates that no route exists between the supplied
	// coordinates. The message is stable and shown to clients as-is.
	ErrNoRouteFound = errors.New("No valid route found. Please check the coordinates.")

	// ErrAddressNotFound indicates that geocoding produced no candidate
	// for the supplied address. The message is stable and shown to clients.
	ErrAddressNotFound = errors.New("No valid address found for the provided address.")

	// ErrExternalAPIFailure indicates that an upstream navigation service
	// failed or was unreachable.
	ErrExternalAPIFailure = errors.New("external API failure")
)

// InvalidCoordinatesError carries the routing engine's description of which
// coordinate could not be resolved.
type InvalidCoordinatesError struct {
	Message string
}

// NewInvalidCoordinatesError wraps an upstream coordinate rejection message.
func NewInvalidCoordinatesError(message string) *InvalidCoordinatesError {
	return &InvalidCoordinatesError{Message: message}
}

// NewUnroutableCoordinateError reports a coordinate the engine cannot anchor
// to the network. index is 0 for the route start and 1 for the route end.
// Both components appear in the message, longitude first, matching the
// engine's lon-lat wire order, so the out-of-range value is always shown.
func NewUnroutableCoordinateError(index int, latitude, longitude float64) *InvalidCoordinatesError {
	return &InvalidCoordinatesError{
		Message: fmt.Sprintf(
			"Could not find routable point within a radius of 350.0 meters of specified coordinate %d: %.7f %.7f",
			index, longitude, latitude),
	}
}

func (e *InvalidCoordinatesError) Error() string {
	return e.Message
}

func (e *InvalidCoordinatesError) Unwrap() error {
	return ErrInvalidCoordinates
}

// InvalidTransportProfileError names the profile token that was rejected.
type InvalidTransportProfileError struct {
	Token string
}

func NewInvalidTransportProfileError(token string) *InvalidTransportProfileError {
	return &InvalidTransportProfileError{Token: token}
}

func (e *InvalidTransportProfileError) Error() string {
	return fmt.Sprintf("invalid transport profile: %s", e.Token)
}

func (e *InvalidTransportProfileError) Unwrap() error {
	return ErrInvalidTransportProfile
}

// ExternalAPIFailureError reports an upstream navigation service failure.
// The message is safe to show to clients; the cause carries the raw
// transport error for logs only.
type ExternalAPIFailureError struct {
	Message string
	Cause   error
}

func NewExternalAPIFailureError(message string, cause error) *ExternalAPIFailureError {
	return &ExternalAPIFailureError{Message: message, Cause: cause}
}

func (e *ExternalAPIFailureError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %v)", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ExternalAPIFailureError) Unwrap() error {
	return ErrExternalAPIFailure
}
