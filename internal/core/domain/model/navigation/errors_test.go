package navigation_test

import (
	"errors"
	"testing"

	"bookrider/internal/core/domain/model/navigation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUnroutableCoordinateError(t *testing.T) {
	err := navigation.NewUnroutableCoordinateError(1, 53.434444, 290.504721)

	assert.Equal(t,
		"Could not find routable point within a radius of 350.0 meters of specified coordinate 1: 290.5047210 53.4344440",
		err.Error())
	require.ErrorIs(t, err, navigation.ErrInvalidCoordinates)
}

func TestNewUnroutableCoordinateError_InvalidLongitudeShown(t *testing.T) {
	err := navigation.NewUnroutableCoordinateError(0, 53.434444, 290.504721)

	assert.Contains(t, err.Error(), "290.5047210")
	assert.Contains(t, err.Error(), "coordinate 0")
}

func TestNewInvalidCoordinatesError(t *testing.T) {
	err := navigation.NewInvalidCoordinatesError("upstream said no")

	assert.Equal(t, "upstream said no", err.Error())
	require.ErrorIs(t, err, navigation.ErrInvalidCoordinates)
}

func TestErrNoRouteFound_Message(t *testing.T) {
	assert.Equal(t,
		"No valid route found. Please check the coordinates.",
		navigation.ErrNoRouteFound.Error())
}

func TestErrAddressNotFound_Message(t *testing.T) {
	assert.Equal(t,
		"No valid address found for the provided address.",
		navigation.ErrAddressNotFound.Error())
}

func TestNewExternalAPIFailureError(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := navigation.NewExternalAPIFailureError(
			"External routing service is currently unavailable", nil)

		assert.Equal(t, "External routing service is currently unavailable", err.Error())
		require.ErrorIs(t, err, navigation.ErrExternalAPIFailure)
	})

	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := navigation.NewExternalAPIFailureError(
			"External routing service is currently unavailable", cause)

		assert.Contains(t, err.Error(), "connection refused")
	})
}
