package rental_test

import (
	"testing"
	"time"

	"bookrider/internal/core/domain/model/kernel"
	"bookrider/internal/core/domain/model/rental"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReturnItems(t *testing.T) []rental.ReturnItem {
	t.Helper()
	item, err := rental.NewReturnItem(kernel.NewUUID(), 2)
	require.NoError(t, err)
	return []rental.ReturnItem{item}
}

func TestNewRentalReturn(t *testing.T) {
	now := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)

	t.Run("pickup return starts in progress", func(t *testing.T) {
		orderID := kernel.NewUUID()

		rr, err := rental.NewRentalReturn(kernel.NewUUID(), orderID, newTestReturnItems(t), now)

		require.NoError(t, err)
		assert.Equal(t, rental.InProgress, rr.Status())
		require.NotNil(t, rr.ReturnOrderID())
		assert.True(t, orderID.IsEqual(*rr.ReturnOrderID()))
		assert.Nil(t, rr.ReturnedAt())
	})

	t.Run("in-person return has no order", func(t *testing.T) {
		rr, err := rental.NewInPersonRentalReturn(kernel.NewUUID(), newTestReturnItems(t), now)

		require.NoError(t, err)
		assert.Equal(t, rental.InPerson, rr.Status())
		assert.Nil(t, rr.ReturnOrderID())
	})

	t.Run("requires at least one item", func(t *testing.T) {
		_, err := rental.NewInPersonRentalReturn(kernel.NewUUID(), nil, now)
		require.Error(t, err)
	})
}

func TestRentalReturn_Complete(t *testing.T) {
	now := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)
	completedAt := now.Add(2 * time.Hour)

	rr, err := rental.NewInPersonRentalReturn(kernel.NewUUID(), newTestReturnItems(t), now)
	require.NoError(t, err)

	require.NoError(t, rr.Complete(completedAt))
	assert.Equal(t, rental.Completed, rr.Status())
	require.NotNil(t, rr.ReturnedAt())
	assert.Equal(t, completedAt, *rr.ReturnedAt())

	t.Run("repeat completion fails", func(t *testing.T) {
		require.ErrorIs(t, rr.Complete(completedAt), rental.ErrReturnAlreadyCompleted)
	})
}

func TestNewReturnItem(t *testing.T) {
	_, err := rental.NewReturnItem(kernel.NewUUID(), 0)
	require.Error(t, err)

	var zeroID kernel.UUID
	_, err = rental.NewReturnItem(zeroID, 1)
	require.Error(t, err)
}
