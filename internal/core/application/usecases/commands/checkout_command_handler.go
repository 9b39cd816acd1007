package commands

import (
	"context"
	"time"

	"bookrider/internal/core/domain/model/billing"
	"bookrider/internal/core/domain/model/kernel"
	"bookrider/internal/core/domain/model/order"
	"bookrider/internal/core/ports"
)

// CheckoutCommandHandler turns the cart into one pending order per
// library, records the user's payment for each and clears the cart,
// all in one transaction.
//
// The cart must have a delivery address and at least one item. Each
// order's pickup address is its library's address, the destination is
// the cart's delivery address and the amount is the library item's
// delivery cost. The payment ledger entry is recorded and the order
// marked paid before the transaction commits; an order never leaves
// Pending unpaid.
type CheckoutCommandHandler struct {
	uowFactory CheckoutUoWFactory
	notifier   ports.Notifier
	now        func() time.Time
}

// NewCheckoutCommandHandler creates a handler for checkouts.
func NewCheckoutCommandHandler(uowFactory CheckoutUoWFactory, notifier ports.Notifier) CheckoutCommandHandler {
	return CheckoutCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		now:        time.Now,
	}
}

// Handle creates the orders and returns them.
func (h *CheckoutCommandHandler) Handle(ctx context.Context, cmd CheckoutCommand) ([]*order.Order, error) {
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

	carts := uow.CartRepository()
	userCart, err := carts.GetByUserID(ctx, cmd.UserID())
	if err != nil {
		return nil, err
	}
	if err := userCart.EnsureReadyForCheckout(); err != nil {
		return nil, err
	}
	destination := *userCart.DeliveryAddress()

	orders := uow.OrderRepository()
	ledger := uow.TransactionRepository()
	libraries := uow.LibraryRepository()
	now := h.now()

	created := make([]*order.Order, 0, len(userCart.Items()))
	for _, item := range userCart.Items() {
		lib, err := libraries.Get(ctx, item.LibraryID())
		if err != nil {
			return nil, err
		}

		orderItems := make([]*order.OrderItem, 0, len(item.SubItems()))
		for _, sub := range item.SubItems() {
			orderItem, err := order.NewOrderItem(kernel.NewUUID(), sub.BookID(), sub.BookTitle(), sub.Quantity())
			if err != nil {
				return nil, err
			}
			orderItems = append(orderItems, orderItem)
		}

		newOrder, err := order.NewOrder(
			kernel.NewUUID(), cmd.UserID(), item.LibraryID(),
			lib.Address(), destination, false,
			item.TotalDeliveryCost(), cmd.NoteToDriver(), orderItems, now)
		if err != nil {
			return nil, err
		}

		orderID := newOrder.ID()
		payment, err := billing.NewTransaction(
			kernel.NewUUID(), cmd.UserID(), &orderID, nil,
			newOrder.Amount(), billing.UserPayment, now)
		if err != nil {
			return nil, err
		}
		if err := newOrder.MarkPaid(); err != nil {
			return nil, err
		}

		if err := orders.Add(ctx, newOrder); err != nil {
			return nil, err
		}
		if err := ledger.Add(ctx, payment); err != nil {
			return nil, err
		}
		created = append(created, newOrder)
	}

	userCart.Clear()
	if err := carts.Update(ctx, userCart); err != nil {
		return nil, err
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.notifier.Notify(cmd.UserID(), ports.TopicOrders)
	h.notifier.Notify(cmd.UserID(), ports.TopicCart)
	return created, nil
}
