package commands

import (
	"context"

	"bookrider/internal/core/domain/services"
	"bookrider/internal/core/ports"
)

// UpdateCartQuantityCommandHandler changes a book line's quantity and
// re-prices the owning library item.
type UpdateCartQuantityCommandHandler struct {
	uowFactory CartUoWFactory
	geocoder   ports.Geocoder
	router     ports.Router
	calculator services.DeliveryCostCalculator
	notifier   ports.Notifier
}

// NewUpdateCartQuantityCommandHandler creates a handler for quantity
// changes.
func NewUpdateCartQuantityCommandHandler(
	uowFactory CartUoWFactory,
	geocoder ports.Geocoder,
	router ports.Router,
	calculator services.DeliveryCostCalculator,
	notifier ports.Notifier,
) UpdateCartQuantityCommandHandler {
	return UpdateCartQuantityCommandHandler{
		uowFactory: uowFactory,
		geocoder:   geocoder,
		router:     router,
		calculator: calculator,
		notifier:   notifier,
	}
}

// Handle applies the new quantity and saves the re-priced cart.
func (h *UpdateCartQuantityCommandHandler) Handle(ctx context.Context, cmd UpdateCartQuantityCommand) error {
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

	carts := uow.CartRepository()
	userCart, err := carts.GetByUserID(ctx, cmd.UserID())
	if err != nil {
		return err
	}

	if err := userCart.UpdateQuantity(cmd.SubItemID(), cmd.Quantity()); err != nil {
		return err
	}
	if libraryID, found := owningLibrary(userCart, cmd.SubItemID()); found {
		if err := repriceCartItem(ctx, h.geocoder, h.router, uow.LibraryRepository(), h.calculator, userCart, libraryID); err != nil {
			return err
		}
	}

	if err := carts.Update(ctx, userCart); err != nil {
		return err
	}
	if err := uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.Notify(cmd.UserID(), ports.TopicCart)
	return nil
}
