package commands

import (
	"context"
	"time"

	"bookrider/internal/core/domain/model/kernel"
	"bookrider/internal/core/domain/model/order"
	"bookrider/internal/core/ports"
)

// CompleteRentalReturnCommandHandler finishes a rental return on a
// librarian's confirmation. In one transaction it applies the returned
// quantities to each rental, mirrors the progress onto the originating
// order lines and marks the return completed.
type CompleteRentalReturnCommandHandler struct {
	uowFactory ReturnUoWFactory
	notifier   ports.Notifier
	now        func() time.Time
}

// NewCompleteRentalReturnCommandHandler creates a handler for return
// completion.
func NewCompleteRentalReturnCommandHandler(uowFactory ReturnUoWFactory, notifier ports.Notifier) CompleteRentalReturnCommandHandler {
	return CompleteRentalReturnCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		now:        time.Now,
	}
}

// Handle completes the return and notifies the user.
func (h *CompleteRentalReturnCommandHandler) Handle(ctx context.Context, cmd CompleteRentalReturnCommand) error {
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

	returns := uow.RentalReturnRepository()
	rr, err := returns.Get(ctx, cmd.ReturnID())
	if err != nil {
		return err
	}

	now := h.now()
	if err := rr.Complete(now); err != nil {
		return err
	}

	ids := make([]kernel.UUID, 0, len(rr.Items()))
	for _, item := range rr.Items() {
		ids = append(ids, item.RentalID())
	}
	rentals := uow.RentalRepository()
	fetched, err := rentals.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}
	byID := make(map[kernel.UUID]int, len(fetched))
	for i, r := range fetched {
		byID[r.ID()] = i
	}

	var userID string
	touchedOrders := make(map[kernel.UUID]*order.Order)
	for _, item := range rr.Items() {
		r := fetched[byID[item.RentalID()]]
		userID = r.UserID()
		if err := r.Return(item.ReturnedQuantity(), now); err != nil {
			return err
		}
		if err := rentals.Update(ctx, r); err != nil {
			return err
		}
		if err := h.mirrorOntoOrder(ctx, uow, touchedOrders, r.OrderID(), r.BookID(),
			item.ReturnedQuantity(), now); err != nil {
			return err
		}
	}

	if err := returns.Update(ctx, rr); err != nil {
		return err
	}
	if err := uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.Notify(userID, ports.TopicRentals)
	return nil
}

// mirrorOntoOrder records the return progress on the originating order
// line so the user's order history reflects what is back.
func (h *CompleteRentalReturnCommandHandler) mirrorOntoOrder(
	ctx context.Context,
	uow ReturnUoW,
	touched map[kernel.UUID]*order.Order,
	orderID kernel.UUID,
	bookID kernel.UUID,
	quantity int,
	now time.Time,
) error {
	orders := uow.OrderRepository()
	aggregate, ok := touched[orderID]
	if !ok {
		var err error
		aggregate, err = orders.Get(ctx, orderID)
		if err != nil {
			return err
		}
		touched[orderID] = aggregate
	}

	for _, item := range aggregate.Items() {
		if item.BookID().IsEqual(bookID) {
			if err := item.MarkReturned(quantity, now); err != nil {
				return err
			}
			break
		}
	}
	return orders.Update(ctx, aggregate, aggregate.Status())
}
