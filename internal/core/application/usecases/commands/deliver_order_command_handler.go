package commands

import (
	"context"
	"time"

	"bookrider/internal/core/domain/model/billing"
	"bookrider/internal/core/domain/model/kernel"
	"bookrider/internal/core/domain/model/order"
	"bookrider/internal/core/domain/model/rental"
	"bookrider/internal/core/domain/services"
	"bookrider/internal/core/ports"
)

// DeliverOrderCommandHandler completes a delivery. In one transaction it
// moves the order to Delivered, starts a rental per order line (unless
// the order is a return) and records the driver's payout in the ledger.
type DeliverOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	calculator services.DeliveryCostCalculator
	notifier   ports.Notifier
	now        func() time.Time
}

// NewDeliverOrderCommandHandler creates a handler for delivery confirmation.
func NewDeliverOrderCommandHandler(
	uowFactory OrderUoWFactory,
	calculator services.DeliveryCostCalculator,
	notifier ports.Notifier,
) DeliverOrderCommandHandler {
	return DeliverOrderCommandHandler{
		uowFactory: uowFactory,
		calculator: calculator,
		notifier:   notifier,
		now:        time.Now,
	}
}

// Handle confirms the delivery and persists everything it produced.
func (h *DeliverOrderCommandHandler) Handle(ctx context.Context, cmd DeliverOrderCommand) error {
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

	deliveredAt := h.now()
	expectedStatus := aggregate.Status()
	if err := aggregate.Deliver(cmd.DriverID(), cmd.DriverLocation(), cmd.PhotoURL(), deliveredAt); err != nil {
		return err
	}
	if err := orders.Update(ctx, aggregate, expectedStatus); err != nil {
		return err
	}

	if !aggregate.IsReturn() {
		if err := h.startRentals(ctx, uow, aggregate, deliveredAt); err != nil {
			return err
		}
	}
	if err := h.recordPayout(ctx, uow, aggregate, deliveredAt); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.Notify(aggregate.UserID(), ports.TopicOrders)
	h.notifier.Notify(aggregate.UserID(), ports.TopicRentals)
	h.notifier.Notify(cmd.DriverID(), ports.TopicOrders)
	return nil
}

// startRentals creates one active rental per order line. Deliver has
// already stamped each item's return deadline.
func (h *DeliverOrderCommandHandler) startRentals(
	ctx context.Context, uow OrderUoW, aggregate *order.Order, deliveredAt time.Time,
) error {
	rentals := uow.RentalRepository()
	for _, item := range aggregate.Items() {
		deadline := item.ReturnDeadline()
		if deadline == nil {
			continue
		}
		newRental, err := rental.NewRental(
			kernel.NewUUID(),
			item.BookID(),
			aggregate.LibraryID(),
			aggregate.ID(),
			aggregate.UserID(),
			item.Quantity(),
			deliveredAt,
			*deadline,
		)
		if err != nil {
			return err
		}
		if err := rentals.Add(ctx, newRental); err != nil {
			return err
		}
	}
	return nil
}

func (h *DeliverOrderCommandHandler) recordPayout(
	ctx context.Context, uow OrderUoW, aggregate *order.Order, deliveredAt time.Time,
) error {
	orderID := aggregate.ID()
	payout, err := billing.NewTransaction(
		kernel.NewUUID(),
		*aggregate.DriverID(),
		&orderID,
		nil,
		aggregate.PayoutAmount(h.calculator.ServiceFeePercentage()),
		billing.DriverPayout,
		deliveredAt,
	)
	if err != nil {
		return err
	}
	return uow.TransactionRepository().Add(ctx, payout)
}
