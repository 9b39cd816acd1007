package commands

import (
	"context"
	"time"

	"bookrider/internal/core/ports"
)

// AcceptOrderCommandHandler moves a pending order to Accepted on behalf
// of a librarian.
type AcceptOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
	now        func() time.Time
}

// NewAcceptOrderCommandHandler creates a handler for order acceptance.
func NewAcceptOrderCommandHandler(uowFactory OrderUoWFactory, notifier ports.Notifier) AcceptOrderCommandHandler {
	return AcceptOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		now:        time.Now,
	}
}

// Handle applies the transition under the expected-status check.
func (h *AcceptOrderCommandHandler) Handle(ctx context.Context, cmd AcceptOrderCommand) error {
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
	if err := aggregate.Accept(cmd.LibrarianID(), h.now()); err != nil {
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
