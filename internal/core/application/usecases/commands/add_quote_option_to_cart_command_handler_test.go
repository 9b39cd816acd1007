package commands_test

import (
	"testing"
	"time"

	"bookrider/internal/core/application/usecases/commands"
	"bookrider/internal/core/domain/model/cart"
	"bookrider/internal/core/domain/model/kernel"
	"bookrider/internal/core/domain/model/quote"
	"bookrider/internal/core/domain/services"
	"bookrider/internal/core/ports"
	"bookrider/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func quoteWithOption(t *testing.T, userID string, validUntil time.Time) (*quote.Quote, quote.Option) {
	t.Helper()
	option, err := quote.NewOption(
		kernel.NewUUID(), kernel.NewUUID(), "Central",
		decimal.RequireFromString("10"), decimal.RequireFromString("20.40"))
	require.NoError(t, err)

	q, err := quote.RestoreQuote(
		kernel.NewUUID(), userID, kernel.NewUUID(), "Solaris", 3,
		[]quote.Option{option}, validUntil)
	require.NoError(t, err)
	return q, option
}

func TestAddQuoteOptionToCartCommandHandler_Handle_CreatesCart(t *testing.T) {
	ctx := t.Context()
	q, option := quoteWithOption(t, "user-1", time.Now().Add(quote.TTL))
	cmd, err := commands.NewAddQuoteOptionToCartCommand("user-1", q.ID(), option.ID())
	require.NoError(t, err)

	quotes := new(MockQuoteRepository)
	carts := new(MockCartRepository)
	uow := new(MockCartUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("QuoteRepository").Return(quotes).Once(),
		quotes.On("Get", mock.Anything, q.ID()).Return(q, nil).Once(),
		uow.On("CartRepository").Return(carts).Once(),
		carts.On("GetByUserID", mock.Anything, "user-1").
			Return(nil, errs.NewObjectNotFoundError("userID", "user-1")).Once(),
		carts.On("Add", mock.Anything, mock.MatchedBy(func(sc *cart.ShoppingCart) bool {
			return sc.UserID() == "user-1" && len(sc.Items()) == 1 &&
				sc.TotalCost().Equal(decimal.RequireFromString("20.40"))
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCartUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockNotifier)
	notifier.On("Notify", "user-1", ports.TopicCart).Once()

	h := commands.NewAddQuoteOptionToCartCommandHandler(factory, services.NewDeliveryCostCalculator(), notifier)
	require.NoError(t, h.Handle(ctx, cmd))
	carts.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestAddQuoteOptionToCartCommandHandler_Handle_ExpiredQuote(t *testing.T) {
	ctx := t.Context()
	q, option := quoteWithOption(t, "user-1", time.Now().Add(-time.Minute))
	cmd, err := commands.NewAddQuoteOptionToCartCommand("user-1", q.ID(), option.ID())
	require.NoError(t, err)

	quotes := new(MockQuoteRepository)
	uow := new(MockCartUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("QuoteRepository").Return(quotes).Once(),
		quotes.On("Get", mock.Anything, q.ID()).Return(q, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCartUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAddQuoteOptionToCartCommandHandler(factory, services.NewDeliveryCostCalculator(), new(MockNotifier))
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, quote.ErrQuoteExpired)
	uow.AssertNotCalled(t, "CartRepository")
}

func TestAddQuoteOptionToCartCommandHandler_Handle_ForeignQuoteLooksMissing(t *testing.T) {
	ctx := t.Context()
	q, option := quoteWithOption(t, "user-1", time.Now().Add(quote.TTL))
	cmd, err := commands.NewAddQuoteOptionToCartCommand("user-2", q.ID(), option.ID())
	require.NoError(t, err)

	quotes := new(MockQuoteRepository)
	uow := new(MockCartUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("QuoteRepository").Return(quotes).Once(),
		quotes.On("Get", mock.Anything, q.ID()).Return(q, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCartUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewAddQuoteOptionToCartCommandHandler(factory, services.NewDeliveryCostCalculator(), new(MockNotifier))
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestAddQuoteOptionToCartCommandHandler_Handle_RepeatLibraryUsesMarginalPrice(t *testing.T) {
	ctx := t.Context()
	libraryID := kernel.NewUUID()
	option, err := quote.NewOption(
		kernel.NewUUID(), libraryID, "Central",
		decimal.RequireFromString("10"), decimal.RequireFromString("20.40"))
	require.NoError(t, err)
	q, err := quote.RestoreQuote(
		kernel.NewUUID(), "user-1", kernel.NewUUID(), "Fiasko", 3,
		[]quote.Option{option}, time.Now().Add(quote.TTL))
	require.NoError(t, err)

	sc, err := cart.NewShoppingCart(kernel.NewUUID(), "user-1")
	require.NoError(t, err)
	_, err = sc.AddBook(libraryID, "Central", kernel.NewUUID(), "Solaris", 1,
		decimal.RequireFromString("12.00"))
	require.NoError(t, err)

	cmd, err := commands.NewAddQuoteOptionToCartCommand("user-1", q.ID(), option.ID())
	require.NoError(t, err)

	quotes := new(MockQuoteRepository)
	carts := new(MockCartRepository)
	uow := new(MockCartUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("QuoteRepository").Return(quotes).Once(),
		quotes.On("Get", mock.Anything, q.ID()).Return(q, nil).Once(),
		uow.On("CartRepository").Return(carts).Once(),
		carts.On("GetByUserID", mock.Anything, "user-1").Return(sc, nil).Once(),
		carts.On("Update", mock.Anything, sc).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCartUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockNotifier)
	notifier.On("Notify", "user-1", ports.TopicCart).Once()

	h := commands.NewAddQuoteOptionToCartCommandHandler(factory, services.NewDeliveryCostCalculator(), notifier)
	require.NoError(t, h.Handle(ctx, cmd))

	// 12.00 base plus 3 extra copies at the marginal price, 3.60
	require.Len(t, sc.Items(), 1)
	require.True(t, sc.TotalCost().Equal(decimal.RequireFromString("15.60")),
		"total cost %s", sc.TotalCost())
}
