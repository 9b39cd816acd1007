package commands

import (
	"context"
	"time"

	"bookrider/internal/core/domain/model/cart"
	"bookrider/internal/core/domain/model/kernel"
	"bookrider/internal/core/domain/model/navigation"
	"bookrider/internal/core/domain/model/quote"
	"bookrider/internal/core/domain/services"
	"bookrider/internal/core/ports"

	"github.com/shopspring/decimal"
)

// MaxQuoteCandidates caps how many nearby libraries a quote prices.
const MaxQuoteCandidates = 5

// GenerateQuoteCommandHandler prices a book delivery to the user's cart
// address from the nearest candidate libraries.
//
// For each candidate the handler geocodes the library address (once,
// cached afterwards), routes library -> destination by car and prices
// the route. Libraries already present in the user's cart get the
// cheaper marginal price instead of a fresh base cost. A book no
// library stocks yields a quote with no options, not an error.
type GenerateQuoteCommandHandler struct {
	uowFactory QuoteUoWFactory
	geocoder   ports.Geocoder
	router     ports.Router
	calculator services.DeliveryCostCalculator
	now        func() time.Time
}

// NewGenerateQuoteCommandHandler creates a handler for quote generation.
func NewGenerateQuoteCommandHandler(
	uowFactory QuoteUoWFactory,
	geocoder ports.Geocoder,
	router ports.Router,
	calculator services.DeliveryCostCalculator,
) GenerateQuoteCommandHandler {
	return GenerateQuoteCommandHandler{
		uowFactory: uowFactory,
		geocoder:   geocoder,
		router:     router,
		calculator: calculator,
		now:        time.Now,
	}
}

// Handle generates, persists and returns the quote.
func (h *GenerateQuoteCommandHandler) Handle(ctx context.Context, cmd GenerateQuoteCommand) (*quote.Quote, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	userCart, err := uow.CartRepository().GetByUserID(ctx, cmd.UserID())
	if err != nil {
		return nil, err
	}
	address := userCart.DeliveryAddress()
	if address == nil || address.Coordinate() == nil {
		return nil, cart.ErrDeliveryAddressRequired
	}
	destination := *address.Coordinate()

	book, err := uow.BookRepository().Get(ctx, cmd.BookID())
	if err != nil {
		return nil, err
	}

	libraries := uow.LibraryRepository()
	candidates, err := libraries.GetCandidatesByBook(ctx, cmd.BookID(), destination, MaxQuoteCandidates)
	if err != nil {
		return nil, err
	}

	options := make([]quote.Option, 0, len(candidates))
	for _, candidate := range candidates {
		origin, err := resolveLibraryCoordinate(ctx, h.geocoder, libraries, candidate)
		if err != nil {
			return nil, err
		}

		route, err := h.router.Route(ctx, origin, destination, navigation.Car)
		if err != nil {
			return nil, err
		}

		cost, err := h.priceCandidate(userCart, candidate.ID(), route, cmd.Quantity())
		if err != nil {
			return nil, err
		}

		option, err := quote.NewOption(
			kernel.NewUUID(), candidate.ID(), candidate.Name(),
			route.TotalDistanceKm(), cost)
		if err != nil {
			return nil, err
		}
		options = append(options, option)
	}

	generated, err := quote.NewQuote(
		kernel.NewUUID(), cmd.UserID(), cmd.BookID(), book.Title(),
		cmd.Quantity(), options, h.now())
	if err != nil {
		return nil, err
	}

	if err := uow.QuoteRepository().Add(ctx, generated); err != nil {
		return nil, err
	}
	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}
	return generated, nil
}

// priceCandidate prices one library's option. A library that already
// has a cart item only pays the marginal per-copy price.
func (h *GenerateQuoteCommandHandler) priceCandidate(
	userCart *cart.ShoppingCart,
	libraryID kernel.UUID,
	route navigation.NavigationResult,
	quantity int,
) (decimal.Decimal, error) {
	for _, item := range userCart.Items() {
		if item.LibraryID().IsEqual(libraryID) {
			return h.calculator.RepeatLibraryCost(quantity)
		}
	}
	return h.calculator.Cost(route.TotalDistanceKm(), quantity)
}
