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
	"bookrider/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUpdateCartQuantityCommandHandler_Handle_RepricesOwningItem(t *testing.T) {
	ctx := t.Context()
	libraryID := kernel.NewUUID()
	sc, err := cart.NewShoppingCart(kernel.NewUUID(), "user-1")
	require.NoError(t, err)
	require.NoError(t, sc.SetDeliveryAddress(geocodedAddress(t, 52.2297, 21.0122)))
	sub, err := sc.AddBook(libraryID, "Central", kernel.NewUUID(), "Solaris", 1,
		decimal.RequireFromString("12.00"))
	require.NoError(t, err)

	lib, err := library.NewLibrary(libraryID, "Central", geocodedAddress(t, 52.2319, 21.0067))
	require.NoError(t, err)
	route, err := navigation.NewNavigationResult(10_000, 18, nil)
	require.NoError(t, err)

	cmd, err := commands.NewUpdateCartQuantityCommand("user-1", sub.ID(), 3)
	require.NoError(t, err)

	geocoder := new(MockGeocoder)
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

	h := commands.NewUpdateCartQuantityCommandHandler(
		factory, geocoder, router, services.NewDeliveryCostCalculator(), notifier)
	require.NoError(t, h.Handle(ctx, cmd))

	require.Equal(t, 3, sub.Quantity())
	// 10 km, 3 copies: (10.00 + 5.00 + 2.00) * 1.2
	require.True(t, sc.TotalCost().Equal(decimal.RequireFromString("20.40")),
		"total cost %s", sc.TotalCost())
	// The library coordinate was cached, so no geocoding happened.
	geocoder.AssertNotCalled(t, "Resolve",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	router.AssertExpectations(t)
	carts.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestUpdateCartQuantityCommandHandler_Handle_UnknownSubItem(t *testing.T) {
	ctx := t.Context()
	sc, err := cart.NewShoppingCart(kernel.NewUUID(), "user-1")
	require.NoError(t, err)

	cmd, err := commands.NewUpdateCartQuantityCommand("user-1", kernel.NewUUID(), 2)
	require.NoError(t, err)

	router := new(MockRouter)
	carts := new(MockCartRepository)
	uow := new(MockCartUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CartRepository").Return(carts).Once(),
		carts.On("GetByUserID", mock.Anything, "user-1").Return(sc, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCartUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewUpdateCartQuantityCommandHandler(
		factory, new(MockGeocoder), router, services.NewDeliveryCostCalculator(), new(MockNotifier))
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	router.AssertNotCalled(t, "Route",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	carts.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
