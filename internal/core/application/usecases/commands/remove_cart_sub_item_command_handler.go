package commands

import (
	"context"

	"bookrider/internal/core/domain/model/cart"
	"bookrider/internal/core/domain/model/kernel"
	"bookrider/internal/core/domain/services"
	"bookrider/internal/core/ports"
)

// RemoveCartSubItemCommandHandler removes a book line from the cart and
// re-prices the owning library item if anything from that library
// remains.
type RemoveCartSubItemCommandHandler struct {
	uowFactory CartUoWFactory
	geocoder   ports.Geocoder
	router     ports.Router
	calculator services.DeliveryCostCalculator
	notifier   ports.Notifier
}

// NewRemoveCartSubItemCommandHandler creates a handler for cart line
// removal.
func NewRemoveCartSubItemCommandHandler(
	uowFactory CartUoWFactory,
	geocoder ports.Geocoder,
	router ports.Router,
	calculator services.DeliveryCostCalculator,
	notifier ports.Notifier,
) RemoveCartSubItemCommandHandler {
	return RemoveCartSubItemCommandHandler{
		uowFactory: uowFactory,
		geocoder:   geocoder,
		router:     router,
		calculator: calculator,
		notifier:   notifier,
	}
}

// Handle removes the line and saves the re-priced cart.
func (h *RemoveCartSubItemCommandHandler) Handle(ctx context.Context, cmd RemoveCartSubItemCommand) error {
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

	libraryID, found := owningLibrary(userCart, cmd.SubItemID())
	if err := userCart.RemoveSubItem(cmd.SubItemID()); err != nil {
		return err
	}
	if found {
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

// owningLibrary finds which library item carries the sub-item, so the
// item can be re-priced after the mutation.
func owningLibrary(sc *cart.ShoppingCart, subItemID kernel.UUID) (kernel.UUID, bool) {
	for _, item := range sc.Items() {
		for _, sub := range item.SubItems() {
			if sub.ID().IsEqual(subItemID) {
				return item.LibraryID(), true
			}
		}
	}
	return kernel.UUID{}, false
}
