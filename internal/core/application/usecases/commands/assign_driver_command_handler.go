package commands

import (
	"context"
	"time"

	"bookrider/internal/core/ports"
)

// AssignDriverCommandHandler moves an accepted order to Processing with
// the taking driver recorded. Two drivers racing for the same order are
// serialized by the expected-status check; the loser gets a
// ConcurrentModificationError.
type AssignDriverCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
	now        func() time.Time
}

// NewAssignDriverCommandHandler creates a handler for driver assignment.
func NewAssignDriverCommandHandler(uowFactory OrderUoWFactory, notifier ports.Notifier) AssignDriverCommandHandler {
	return AssignDriverCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		now:        time.Now,
	}
}

// Handle applies the transition under the expected-status check.
func (h *AssignDriverCommandHandler) Handle(ctx context.Context, cmd AssignDriverCommand) error {
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
	if err := aggregate.AssignDriver(cmd.DriverID(), h.now()); err != nil {
		return err
	}
	if err := orders.Update(ctx, aggregate, expectedStatus); err != nil {
		return err
	}
	if err := uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.Notify(aggregate.UserID(), ports.TopicOrders)
	h.notifier.Notify(cmd.DriverID(), ports.TopicOrders)
	return nil
}
