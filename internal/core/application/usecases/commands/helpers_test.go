package commands_test

import (
	"testing"
	"time"

	"bookrider/internal/core/domain/model/kernel"
	"bookrider/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func mustCoordinate(t *testing.T, latitude, longitude float64) kernel.Coordinate {
	t.Helper()
	coordinate, err := kernel.NewCoordinate(latitude, longitude)
	require.NoError(t, err)
	return coordinate
}

func geocodedAddress(t *testing.T, latitude, longitude float64) kernel.Address {
	t.Helper()
	coordinate := mustCoordinate(t, latitude, longitude)
	address, err := kernel.RestoreAddress("Nowy Swiat 1", "Warszawa", "00-001", &coordinate)
	require.NoError(t, err)
	return address
}

// pendingOrder builds a paid, pending order with a single one-copy item
// and a geocoded destination at (52.2297, 21.0122).
func pendingOrder(t *testing.T, userID string) *order.Order {
	t.Helper()
	item, err := order.NewOrderItem(kernel.NewUUID(), kernel.NewUUID(), "Solaris", 1)
	require.NoError(t, err)

	aggregate, err := order.NewOrder(
		kernel.NewUUID(), userID, kernel.NewUUID(),
		geocodedAddress(t, 53.4285, 14.5528),
		geocodedAddress(t, 52.2297, 21.0122),
		false,
		decimal.RequireFromString("20.40"),
		"",
		[]*order.OrderItem{item},
		time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	require.NoError(t, aggregate.MarkPaid())
	return aggregate
}

func acceptedOrder(t *testing.T, userID, librarianID string) *order.Order {
	t.Helper()
	aggregate := pendingOrder(t, userID)
	require.NoError(t, aggregate.Accept(librarianID, time.Date(2025, 3, 1, 12, 5, 0, 0, time.UTC)))
	return aggregate
}

func inTransitOrder(t *testing.T, userID, driverID string) *order.Order {
	t.Helper()
	aggregate := acceptedOrder(t, userID, "librarian-1")
	require.NoError(t, aggregate.AssignDriver(driverID, time.Date(2025, 3, 1, 12, 10, 0, 0, time.UTC)))
	require.NoError(t, aggregate.PickUp(driverID, time.Date(2025, 3, 1, 12, 20, 0, 0, time.UTC)))
	return aggregate
}
