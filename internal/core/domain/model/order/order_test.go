package order_test

import (
	"testing"
	"time"

	"bookrider/internal/core/domain/model/kernel"
	"bookrider/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestItem(t *testing.T, quantity int) *order.OrderItem {
	t.Helper()
	item, err := order.NewOrderItem(kernel.NewUUID(), kernel.NewUUID(), "The Go Programming Language", quantity)
	require.NoError(t, err)
	return item
}

func newTestAddress(t *testing.T, lat, lon float64) kernel.Address {
	t.Helper()
	coord, err := kernel.NewCoordinate(lat, lon)
	require.NoError(t, err)
	address, err := kernel.RestoreAddress("Wyszynskiego 10", "Szczecin", "70-201", &coord)
	require.NoError(t, err)
	return address
}

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(),
		"reader-1",
		kernel.NewUUID(),
		newTestAddress(t, 53.4285, 14.5528),
		newTestAddress(t, 53.4300, 14.5550),
		false,
		decimal.RequireFromString("20.40"),
		"leave at the door",
		[]*order.OrderItem{newTestItem(t, 3)},
		time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	o := newTestOrder(t)

	assert.Equal(t, order.Pending, o.Status())
	assert.Equal(t, order.PaymentPending, o.PaymentStatus())
	assert.Nil(t, o.DriverID())
	assert.Nil(t, o.LibrarianID())
	assert.Nil(t, o.AcceptedAt())
	assert.False(t, o.IsReturn())
	require.NoError(t, o.Validate())

	t.Run("requires at least one item", func(t *testing.T) {
		_, err := order.NewOrder(
			kernel.NewUUID(), "reader-1", kernel.NewUUID(),
			newTestAddress(t, 53.4285, 14.5528), newTestAddress(t, 53.43, 14.555),
			false, decimal.Zero, "", nil, time.Now())
		require.Error(t, err)
	})

	t.Run("rejects negative amount", func(t *testing.T) {
		_, err := order.NewOrder(
			kernel.NewUUID(), "reader-1", kernel.NewUUID(),
			newTestAddress(t, 53.4285, 14.5528), newTestAddress(t, 53.43, 14.555),
			false, decimal.RequireFromString("-1"), "",
			[]*order.OrderItem{newTestItem(t, 1)}, time.Now())
		require.Error(t, err)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var zero order.Order
		require.ErrorIs(t, zero.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestOrder_Lifecycle(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	atDestination, err := kernel.NewCoordinate(53.4300, 14.5550)
	require.NoError(t, err)

	t.Run("happy path stamps each timestamp once", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.MarkPaid())

		require.NoError(t, o.Accept("librarian-1", now))
		assert.Equal(t, order.Accepted, o.Status())
		require.NotNil(t, o.LibrarianID())
		assert.Equal(t, "librarian-1", *o.LibrarianID())
		require.NotNil(t, o.AcceptedAt())
		assert.Equal(t, now, *o.AcceptedAt())

		require.NoError(t, o.AssignDriver("driver-1", now.Add(time.Hour)))
		assert.Equal(t, order.Processing, o.Status())
		require.NotNil(t, o.DriverAssignedAt())

		require.NoError(t, o.PickUp("driver-1", now.Add(2*time.Hour)))
		assert.Equal(t, order.InTransit, o.Status())
		require.NotNil(t, o.PickedUpAt())

		deliveredAt := now.Add(3 * time.Hour)
		require.NoError(t, o.Deliver("driver-1", atDestination, "https://cdn/photo.jpg", deliveredAt))
		assert.Equal(t, order.Delivered, o.Status())
		require.NotNil(t, o.DeliveredAt())
		require.NotNil(t, o.DeliveryPhotoURL())

		// Delivery starts the 30 day return window on every line.
		for _, item := range o.Items() {
			require.NotNil(t, item.ReturnDeadline())
			assert.Equal(t, deliveredAt.AddDate(0, 0, 30), *item.ReturnDeadline())
		}
	})

	t.Run("repeat accept fails", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Accept("librarian-1", now))

		err := o.Accept("librarian-2", now)

		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Equal(t, "librarian-1", *o.LibrarianID())
	})

	t.Run("driver cannot be reassigned", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Accept("librarian-1", now))
		require.NoError(t, o.AssignDriver("driver-1", now))

		err := o.AssignDriver("driver-2", now)

		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Equal(t, "driver-1", *o.DriverID())
	})

	t.Run("only the assigned driver can pick up", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Accept("librarian-1", now))
		require.NoError(t, o.AssignDriver("driver-1", now))

		err := o.PickUp("driver-2", now)

		require.ErrorIs(t, err, order.ErrNotOrderDriver)
	})

	t.Run("delivery far from destination fails", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Accept("librarian-1", now))
		require.NoError(t, o.AssignDriver("driver-1", now))
		require.NoError(t, o.PickUp("driver-1", now))

		farAway, err := kernel.NewCoordinate(52.2297, 21.0122)
		require.NoError(t, err)
		err = o.Deliver("driver-1", farAway, "", now)

		require.ErrorIs(t, err, order.ErrDriverTooFar)
		assert.Equal(t, order.InTransit, o.Status())
	})

	t.Run("skipping states fails", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Accept("librarian-1", now))
		require.NoError(t, o.AssignDriver("driver-1", now))

		err := o.Deliver("driver-1", atDestination, "", now)

		require.ErrorIs(t, err, order.ErrInvalidTransition)
	})

	t.Run("cancel refunds a paid order", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.MarkPaid())
		require.NoError(t, o.Accept("librarian-1", now))

		require.NoError(t, o.Cancel())

		assert.Equal(t, order.Canceled, o.Status())
		assert.Equal(t, order.PaymentRefunded, o.PaymentStatus())
	})

	t.Run("cancel after driver assignment fails", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Accept("librarian-1", now))
		require.NoError(t, o.AssignDriver("driver-1", now))

		require.ErrorIs(t, o.Cancel(), order.ErrInvalidTransition)
	})

	t.Run("return order delivery starts no rentals", func(t *testing.T) {
		o, err := order.NewOrder(
			kernel.NewUUID(), "reader-1", kernel.NewUUID(),
			newTestAddress(t, 53.4285, 14.5528), newTestAddress(t, 53.4300, 14.5550),
			true, decimal.RequireFromString("12.00"), "",
			[]*order.OrderItem{newTestItem(t, 1)}, now)
		require.NoError(t, err)
		require.NoError(t, o.Accept("librarian-1", now))
		require.NoError(t, o.AssignDriver("driver-1", now))
		require.NoError(t, o.PickUp("driver-1", now))

		require.NoError(t, o.Deliver("driver-1", atDestination, "", now))

		for _, item := range o.Items() {
			assert.Nil(t, item.ReturnDeadline())
		}
	})
}

func TestOrder_PayoutAmount(t *testing.T) {
	o := newTestOrder(t) // amount 20.40

	payout := o.PayoutAmount(decimal.RequireFromString("0.20"))

	assert.True(t, payout.Equal(decimal.RequireFromString("16.32")),
		"got %s", payout)
}

func TestOrderItem_MarkReturned(t *testing.T) {
	now := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

	t.Run("partial then full return", func(t *testing.T) {
		item := newTestItem(t, 5)

		require.NoError(t, item.MarkReturned(3, now))
		assert.Equal(t, 3, item.ReturnedQuantity())
		assert.False(t, item.IsFullyReturned())
		assert.Nil(t, item.ReturnedAt())

		require.NoError(t, item.MarkReturned(2, now))
		assert.True(t, item.IsFullyReturned())
		require.NotNil(t, item.ReturnedAt())
	})

	t.Run("over-return is rejected", func(t *testing.T) {
		item := newTestItem(t, 5)
		require.NoError(t, item.MarkReturned(3, now))

		require.Error(t, item.MarkReturned(3, now))
		assert.Equal(t, 3, item.ReturnedQuantity())
	})

	t.Run("non-positive quantity is rejected", func(t *testing.T) {
		item := newTestItem(t, 5)
		require.Error(t, item.MarkReturned(0, now))
		require.Error(t, item.MarkReturned(-1, now))
	})
}

func TestRestoreOrder(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	acceptedAt := now.Add(time.Hour)
	librarianID := "librarian-1"

	o, err := order.RestoreOrder(
		kernel.NewUUID(), "reader-1", kernel.NewUUID(),
		newTestAddress(t, 53.4285, 14.5528), newTestAddress(t, 53.4300, 14.5550),
		nil, &librarianID, false,
		order.Accepted, order.PaymentPaid,
		decimal.RequireFromString("20.40"), "", nil,
		now, &acceptedAt, nil, nil, nil,
		[]*order.OrderItem{newTestItem(t, 3)})

	require.NoError(t, err)
	assert.Equal(t, order.Accepted, o.Status())
	assert.Equal(t, order.PaymentPaid, o.PaymentStatus())
	require.NotNil(t, o.AcceptedAt())

	t.Run("invalid stored status is rejected", func(t *testing.T) {
		_, err := order.RestoreOrder(
			kernel.NewUUID(), "reader-1", kernel.NewUUID(),
			newTestAddress(t, 53.4285, 14.5528), newTestAddress(t, 53.4300, 14.5550),
			nil, nil, false,
			order.UnknownStatus, order.PaymentPending,
			decimal.Zero, "", nil,
			now, nil, nil, nil, nil,
			[]*order.OrderItem{newTestItem(t, 1)})
		require.Error(t, err)
	})
}
