package commands

import (
	"context"
	"time"

	"bookrider/internal/core/domain/model/billing"
	"bookrider/internal/core/domain/model/kernel"
	"bookrider/internal/core/domain/model/order"
	"bookrider/internal/core/ports"
	"bookrider/internal/pkg/errs"
)

// CancelOrderCommandHandler cancels an order on the owning user's
// behalf. A paid order is refunded in the same transaction.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	notifier   ports.Notifier
	now        func() time.Time
}

// NewCancelOrderCommandHandler creates a handler for cancellations.
func NewCancelOrderCommandHandler(uowFactory OrderUoWFactory, notifier ports.Notifier) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		now:        time.Now,
	}
}

// Handle cancels the order and records the refund when money had moved.
// Orders belonging to another user are reported as not found.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
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
	if aggregate.UserID() != cmd.UserID() {
		return errs.NewObjectNotFoundError("orderID", cmd.OrderID())
	}

	wasPaid := aggregate.PaymentStatus() == order.PaymentPaid
	expectedStatus := aggregate.Status()
	if err := aggregate.Cancel(); err != nil {
		return err
	}
	if err := orders.Update(ctx, aggregate, expectedStatus); err != nil {
		return err
	}

	if wasPaid {
		orderID := aggregate.ID()
		refund, err := billing.NewTransaction(
			kernel.NewUUID(),
			aggregate.UserID(),
			&orderID,
			nil,
			aggregate.Amount(),
			billing.Refund,
			h.now(),
		)
		if err != nil {
			return err
		}
		if err := uow.TransactionRepository().Add(ctx, refund); err != nil {
			return err
		}
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.Notify(aggregate.UserID(), ports.TopicOrders)
	return nil
}
