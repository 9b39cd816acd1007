package commands_test

import (
	"testing"

	"bookrider/internal/core/application/usecases/commands"
	"bookrider/internal/core/domain/model/cart"
	"bookrider/internal/core/domain/model/kernel"
	"bookrider/internal/core/domain/model/library"
	"bookrider/internal/core/domain/model/navigation"
	"bookrider/internal/core/domain/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGenerateQuoteCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	bookID := kernel.NewUUID()
	sc, err := cart.NewShoppingCart(kernel.NewUUID(), "user-1")
	require.NoError(t, err)
	require.NoError(t, sc.SetDeliveryAddress(geocodedAddress(t, 52.2297, 21.0122)))

	book, err := library.NewBook(bookID, "Solaris")
	require.NoError(t, err)
	lib, err := library.NewLibrary(kernel.NewUUID(), "Central", geocodedAddress(t, 52.2319, 21.0067))
	require.NoError(t, err)

	route, err := navigation.NewNavigationResult(10_000, 18, nil)
	require.NoError(t, err)

	cmd, err := commands.NewGenerateQuoteCommand("user-1", bookID, 3)
	require.NoError(t, err)

	carts := new(MockCartRepository)
	books := new(MockBookRepository)
	libraries := new(MockLibraryRepository)
	quotes := new(MockQuoteRepository)
	router := new(MockRouter)
	uow := new(MockCartUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CartRepository").Return(carts).Once(),
		carts.On("GetByUserID", mock.Anything, "user-1").Return(sc, nil).Once(),
		uow.On("BookRepository").Return(books).Once(),
		books.On("Get", mock.Anything, bookID).Return(book, nil).Once(),
		uow.On("LibraryRepository").Return(libraries).Once(),
		libraries.On("GetCandidatesByBook", mock.Anything, bookID, mock.Anything, commands.MaxQuoteCandidates).
			Return([]*library.Library{lib}, nil).Once(),
		router.On("Route", mock.Anything, mock.Anything, mock.Anything, navigation.Car).
			Return(route, nil).Once(),
		uow.On("QuoteRepository").Return(quotes).Once(),
		quotes.On("Add", mock.Anything, mock.AnythingOfType("*quote.Quote")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockQuoteUoWFactory)
	factory.On("Create").Return(uow).Once()

	geocoder := new(MockGeocoder)

	h := commands.NewGenerateQuoteCommandHandler(factory, geocoder, router, services.NewDeliveryCostCalculator())
	generated, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	require.Len(t, generated.Options(), 1)
	option := generated.Options()[0]
	require.Equal(t, "Central", option.LibraryName())
	require.True(t, option.TotalDeliveryCost().Equal(decimal.RequireFromString("20.40")),
		"option cost %s", option.TotalDeliveryCost())
	// the library was already geocoded, so the geocoder stays untouched
	geocoder.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGenerateQuoteCommandHandler_Handle_NoCandidates(t *testing.T) {
	ctx := t.Context()
	bookID := kernel.NewUUID()
	sc, err := cart.NewShoppingCart(kernel.NewUUID(), "user-1")
	require.NoError(t, err)
	require.NoError(t, sc.SetDeliveryAddress(geocodedAddress(t, 52.2297, 21.0122)))

	book, err := library.NewBook(bookID, "Solaris")
	require.NoError(t, err)

	cmd, err := commands.NewGenerateQuoteCommand("user-1", bookID, 1)
	require.NoError(t, err)

	carts := new(MockCartRepository)
	books := new(MockBookRepository)
	libraries := new(MockLibraryRepository)
	quotes := new(MockQuoteRepository)
	uow := new(MockCartUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CartRepository").Return(carts).Once(),
		carts.On("GetByUserID", mock.Anything, "user-1").Return(sc, nil).Once(),
		uow.On("BookRepository").Return(books).Once(),
		books.On("Get", mock.Anything, bookID).Return(book, nil).Once(),
		uow.On("LibraryRepository").Return(libraries).Once(),
		libraries.On("GetCandidatesByBook", mock.Anything, bookID, mock.Anything, commands.MaxQuoteCandidates).
			Return([]*library.Library{}, nil).Once(),
		uow.On("QuoteRepository").Return(quotes).Once(),
		quotes.On("Add", mock.Anything, mock.AnythingOfType("*quote.Quote")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockQuoteUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewGenerateQuoteCommandHandler(
		factory, new(MockGeocoder), new(MockRouter), services.NewDeliveryCostCalculator())
	generated, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Empty(t, generated.Options())
}

func TestGenerateQuoteCommandHandler_Handle_NoDeliveryAddress(t *testing.T) {
	ctx := t.Context()
	sc, err := cart.NewShoppingCart(kernel.NewUUID(), "user-1")
	require.NoError(t, err)

	cmd, err := commands.NewGenerateQuoteCommand("user-1", kernel.NewUUID(), 1)
	require.NoError(t, err)

	carts := new(MockCartRepository)
	uow := new(MockCartUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CartRepository").Return(carts).Once(),
		carts.On("GetByUserID", mock.Anything, "user-1").Return(sc, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockQuoteUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewGenerateQuoteCommandHandler(
		factory, new(MockGeocoder), new(MockRouter), services.NewDeliveryCostCalculator())
	_, err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, cart.ErrDeliveryAddressRequired)
}

func TestGenerateQuoteCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.GenerateQuoteCommand{} // not constructed properly

	h := commands.NewGenerateQuoteCommandHandler(
		new(MockQuoteUoWFactory), new(MockGeocoder), new(MockRouter), services.NewDeliveryCostCalculator())
	_, err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, commands.ErrGenerateQuoteCommandIsNotConstructed)
}
