package commands

import (
	"context"
	"time"

	"bookrider/internal/core/ports"
)

// PickUpOrderCommandHandler moves a processing order to InTransit once
// its assigned driver collects the books.
type PickUpOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
	now        func() time.Time
}

// NewPickUpOrderCommandHandler creates a handler for pickups.
func NewPickUpOrderCommandHandler(uowFactory OrderUoWFactory, notifier ports.Notifier) PickUpOrderCommandHandler {
	return PickUpOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		now:        time.Now,
	}
}

// Handle applies the transition under the expected-status check.
func (h *PickUpOrderCommandHandler) Handle(ctx context.Context, cmd PickUpOrderCommand) error {
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

	orders := uow.OrderRepository()
	aggregate, err := orders.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	expectedStatus := aggregate.Status()
	if err := aggregate.PickUp(cmd.DriverID(), h.now()); err != nil {
		return err
	}
	if err := orders.Update(ctx, aggregate, expectedStatus); err != nil {
		return err
	}
	if err := uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.Notify(aggregate.UserID(), ports.TopicOrders)
	return nil
}
