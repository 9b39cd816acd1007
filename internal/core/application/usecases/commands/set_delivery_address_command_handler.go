package commands

import (
	"context"

	"bookrider/internal/core/domain/model/kernel"
	"bookrider/internal/core/domain/services"
	"bookrider/internal/core/ports"
)

// SetDeliveryAddressCommandHandler geocodes and stores the cart's
// delivery address, then re-prices every library item against the new
// destination.
type SetDeliveryAddressCommandHandler struct {
	uowFactory CartUoWFactory
	geocoder   ports.Geocoder
	router     ports.Router
	calculator services.DeliveryCostCalculator
	notifier   ports.Notifier
}

// NewSetDeliveryAddressCommandHandler creates a handler for delivery
// address changes.
func NewSetDeliveryAddressCommandHandler(
	uowFactory CartUoWFactory,
	geocoder ports.Geocoder,
	router ports.Router,
	calculator services.DeliveryCostCalculator,
	notifier ports.Notifier,
) SetDeliveryAddressCommandHandler {
	return SetDeliveryAddressCommandHandler{
		uowFactory: uowFactory,
		geocoder:   geocoder,
		router:     router,
		calculator: calculator,
		notifier:   notifier,
	}
}

// Handle resolves the address and saves the re-priced cart.
func (h *SetDeliveryAddressCommandHandler) Handle(ctx context.Context, cmd SetDeliveryAddressCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	coordinate, err := h.geocoder.Resolve(ctx, cmd.Street(), cmd.City(), cmd.PostalCode())
	if err != nil {
		return err
	}
	address, err := kernel.RestoreAddress(cmd.Street(), cmd.City(), cmd.PostalCode(), &coordinate)
	if err != nil {
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
	userCart, created, err := loadOrCreateCart(ctx, carts, cmd.UserID())
	if err != nil {
		return err
	}
	if err := userCart.SetDeliveryAddress(address); err != nil {
		return err
	}

	libraries := uow.LibraryRepository()
	for _, item := range userCart.Items() {
		if err := repriceCartItem(ctx, h.geocoder, h.router, libraries, h.calculator, userCart, item.LibraryID()); err != nil {
			return err
		}
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
