package commands_test

import (
	"testing"

	"bookrider/internal/core/application/usecases/commands"
	"bookrider/internal/core/domain/model/cart"
	"bookrider/internal/core/domain/model/kernel"
	"bookrider/internal/core/domain/model/library"
	"bookrider/internal/core/domain/model/navigation"
	"bookrider/internal/core/domain/services"
	"bookrider/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRemoveCartSubItemCommandHandler_Handle_RepricesRemainingLine(t *testing.T) {
	ctx := t.Context()
	libraryID := kernel.NewUUID()
	sc, err := cart.NewShoppingCart(kernel.NewUUID(), "user-1")
	require.NoError(t, err)
	require.NoError(t, sc.SetDeliveryAddress(geocodedAddress(t, 52.2297, 21.0122)))
	removed, err := sc.AddBook(libraryID, "Central", kernel.NewUUID(), "Solaris", 2,
		decimal.RequireFromString("12.00"))
	require.NoError(t, err)
	_, err = sc.AddBook(libraryID, "Central", kernel.NewUUID(), "The Invincible", 1,
		decimal.RequireFromString("13.20"))
	require.NoError(t, err)

	lib, err := library.NewLibrary(libraryID, "Central", geocodedAddress(t, 52.2319, 21.0067))
	require.NoError(t, err)
	route, err := navigation.NewNavigationResult(10_000, 18, nil)
	require.NoError(t, err)

	cmd, err := commands.NewRemoveCartSubItemCommand("user-1", removed.ID())
	require.NoError(t, err)

	router := new(MockRouter)
	carts := new(MockCartRepository)
	libraries := new(MockLibraryRepository)
	uow := new(MockCartUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CartRepository").Return(carts).Once(),
		carts.On("GetByUserID", mock.Anything, "user-1").Return(sc, nil).Once(),
		uow.On("LibraryRepository").Return(libraries).Once(),
		libraries.On("Get", mock.Anything, libraryID).Return(lib, nil).Once(),
		router.On("Route", mock.Anything, mock.Anything, mock.Anything, navigation.Car).
			Return(route, nil).Once(),
		carts.On("Update", mock.Anything, sc).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCartUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockNotifier)
	notifier.On("Notify", "user-1", ports.TopicCart).Once()

	h := commands.NewRemoveCartSubItemCommandHandler(
		factory, new(MockGeocoder), router, services.NewDeliveryCostCalculator(), notifier)
	require.NoError(t, h.Handle(ctx, cmd))

	require.Len(t, sc.Items(), 1)
	require.Len(t, sc.Items()[0].SubItems(), 1)
	require.Equal(t, "The Invincible", sc.Items()[0].SubItems()[0].BookTitle())
	// 10 km, 1 remaining copy: (10.00 + 5.00) * 1.2
	require.True(t, sc.TotalCost().Equal(decimal.RequireFromString("18.00")),
		"total cost %s", sc.TotalCost())
	router.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestRemoveCartSubItemCommandHandler_Handle_LastLineRemovesItem(t *testing.T) {
	ctx := t.Context()
	libraryID := kernel.NewUUID()
	sc, err := cart.NewShoppingCart(kernel.NewUUID(), "user-1")
	require.NoError(t, err)
	require.NoError(t, sc.SetDeliveryAddress(geocodedAddress(t, 52.2297, 21.0122)))
	sub, err := sc.AddBook(libraryID, "Central", kernel.NewUUID(), "Solaris", 1,
		decimal.RequireFromString("12.00"))
	require.NoError(t, err)

	cmd, err := commands.NewRemoveCartSubItemCommand("user-1", sub.ID())
	require.NoError(t, err)

	router := new(MockRouter)
	carts := new(MockCartRepository)
	libraries := new(MockLibraryRepository)
	uow := new(MockCartUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CartRepository").Return(carts).Once(),
		carts.On("GetByUserID", mock.Anything, "user-1").Return(sc, nil).Once(),
		uow.On("LibraryRepository").Return(libraries).Once(),
		carts.On("Update", mock.Anything, sc).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCartUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockNotifier)
	notifier.On("Notify", "user-1", ports.TopicCart).Once()

	h := commands.NewRemoveCartSubItemCommandHandler(
		factory, new(MockGeocoder), router, services.NewDeliveryCostCalculator(), notifier)
	require.NoError(t, h.Handle(ctx, cmd))

	require.True(t, sc.IsEmpty())
	require.True(t, sc.TotalCost().IsZero(), "total cost %s", sc.TotalCost())
	// The library's item left with its last line; nothing to re-price.
	libraries.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	router.AssertNotCalled(t, "Route",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
