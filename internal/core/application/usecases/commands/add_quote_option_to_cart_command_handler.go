package commands

import (
	"context"
	"errors"
	"time"

	"bookrider/internal/core/domain/model/cart"
	"bookrider/internal/core/domain/model/kernel"
	"bookrider/internal/core/domain/services"
	"bookrider/internal/core/ports"
	"bookrider/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// AddQuoteOptionToCartCommandHandler moves an accepted quote option into
// the user's cart.
//
// The option must still be within the quote's validity window; an
// expired quote fails with quote.ErrQuoteExpired. When the option's
// library already has a cart item, the accepted copies are added on the
// marginal price instead of a second base cost.
type AddQuoteOptionToCartCommandHandler struct {
	uowFactory CartUoWFactory
	calculator services.DeliveryCostCalculator
	notifier   ports.Notifier
	now        func() time.Time
}

// NewAddQuoteOptionToCartCommandHandler creates a handler for accepting
// quote options.
func NewAddQuoteOptionToCartCommandHandler(
	uowFactory CartUoWFactory,
	calculator services.DeliveryCostCalculator,
	notifier ports.Notifier,
) AddQuoteOptionToCartCommandHandler {
	return AddQuoteOptionToCartCommandHandler{
		uowFactory: uowFactory,
		calculator: calculator,
		notifier:   notifier,
		now:        time.Now,
	}
}

// Handle accepts the option into the cart and saves it under the
// optimistic version check.
func (h *AddQuoteOptionToCartCommandHandler) Handle(ctx context.Context, cmd AddQuoteOptionToCartCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	storedQuote, err := uow.QuoteRepository().Get(ctx, cmd.QuoteID())
	if err != nil {
		return err
	}
	if storedQuote.UserID() != cmd.UserID() {
		return errs.NewObjectNotFoundError("quoteID", cmd.QuoteID())
	}

	option, err := storedQuote.OptionByID(cmd.OptionID(), h.now())
	if err != nil {
		return err
	}

	carts := uow.CartRepository()
	userCart, created, err := loadOrCreateCart(ctx, carts, cmd.UserID())
	if err != nil {
		return err
	}

	itemCost, err := h.itemCost(userCart, option.LibraryID(), option.TotalDeliveryCost(), storedQuote.Quantity())
	if err != nil {
		return err
	}

	if _, err := userCart.AddBook(
		option.LibraryID(), option.LibraryName(),
		storedQuote.BookID(), storedQuote.BookTitle(),
		storedQuote.Quantity(), itemCost,
	); err != nil {
		return err
	}

	if created {
		err = carts.Add(ctx, userCart)
	} else {
		err = carts.Update(ctx, userCart)
	}
	if err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.Notify(cmd.UserID(), ports.TopicCart)
	return nil
}

// itemCost computes the library item's new total: the option's price for
// a new library, or the current total plus the marginal price when the
// library is already in the cart.
func (h *AddQuoteOptionToCartCommandHandler) itemCost(
	userCart *cart.ShoppingCart,
	libraryID kernel.UUID,
	optionCost decimal.Decimal,
	quantity int,
) (decimal.Decimal, error) {
	for _, item := range userCart.Items() {
		if item.LibraryID().IsEqual(libraryID) {
			marginal, err := h.calculator.RepeatLibraryCost(quantity)
			if err != nil {
				return decimal.Decimal{}, err
			}
			return item.TotalDeliveryCost().Add(marginal), nil
		}
	}
	return optionCost, nil
}

// loadOrCreateCart fetches the user's cart or starts an empty one when
// none exists yet. The created flag tells the caller whether to Add or
// Update on save.
func loadOrCreateCart(ctx context.Context, carts ports.CartRepository, userID string) (*cart.ShoppingCart, bool, error) {
	userCart, err := carts.GetByUserID(ctx, userID)
	if err == nil {
		return userCart, false, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, false, err
	}

	userCart, err = cart.NewShoppingCart(kernel.NewUUID(), userID)
	if err != nil {
		return nil, false, err
	}
	return userCart, true, nil
}
