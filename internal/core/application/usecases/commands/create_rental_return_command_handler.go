package commands

import (
	"context"
	"time"

	"bookrider/internal/core/domain/model/billing"
	"bookrider/internal/core/domain/model/cart"
	"bookrider/internal/core/domain/model/kernel"
	"bookrider/internal/core/domain/model/navigation"
	"bookrider/internal/core/domain/model/order"
	"bookrider/internal/core/domain/model/rental"
	"bookrider/internal/core/domain/services"
	"bookrider/internal/core/ports"
	"bookrider/internal/pkg/errs"
)

// returnGroup collects one library's share of a return request.
type returnGroup struct {
	libraryID kernel.UUID
	rentals   []*rental.Rental
	items     []rental.ReturnItem
}

// CreateRentalReturnCommandHandler starts sending rented books back.
//
// Requested rentals are grouped by owning library. For each library the
// handler creates a RentalReturn and, unless the return is in person, a
// pickup order from the user's address back to the library, charged like
// a regular delivery. Late fees for overdue rentals are charged either
// way. Everything happens in one transaction.
type CreateRentalReturnCommandHandler struct {
	uowFactory ReturnUoWFactory
	geocoder   ports.Geocoder
	router     ports.Router
	calculator services.DeliveryCostCalculator
	notifier   ports.Notifier
	now        func() time.Time
}

// NewCreateRentalReturnCommandHandler creates a handler for return requests.
func NewCreateRentalReturnCommandHandler(
	uowFactory ReturnUoWFactory,
	geocoder ports.Geocoder,
	router ports.Router,
	calculator services.DeliveryCostCalculator,
	notifier ports.Notifier,
) CreateRentalReturnCommandHandler {
	return CreateRentalReturnCommandHandler{
		uowFactory: uowFactory,
		geocoder:   geocoder,
		router:     router,
		calculator: calculator,
		notifier:   notifier,
		now:        time.Now,
	}
}

// Handle creates the rental returns and returns them in library order.
func (h *CreateRentalReturnCommandHandler) Handle(
	ctx context.Context, cmd CreateRentalReturnCommand,
) ([]*rental.RentalReturn, error) {
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

	groups, err := h.loadGroups(ctx, uow, cmd)
	if err != nil {
		return nil, err
	}

	var pickupAddress *kernel.Address
	if !cmd.InPerson() {
		pickupAddress, err = h.userAddress(ctx, uow, cmd.UserID())
		if err != nil {
			return nil, err
		}
	}

	now := h.now()
	returns := make([]*rental.RentalReturn, 0, len(groups))
	for _, group := range groups {
		rr, err := h.createReturn(ctx, uow, cmd, group, pickupAddress, now)
		if err != nil {
			return nil, err
		}
		if err := h.chargeLateFees(ctx, uow, cmd.UserID(), group, rr.ID(), now); err != nil {
			return nil, err
		}
		returns = append(returns, rr)
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.notifier.Notify(cmd.UserID(), ports.TopicRentals)
	if !cmd.InPerson() {
		h.notifier.Notify(cmd.UserID(), ports.TopicOrders)
	}
	return returns, nil
}

// loadGroups fetches the requested rentals, verifies ownership and
// outstanding quantities, and groups them by owning library preserving
// request order.
func (h *CreateRentalReturnCommandHandler) loadGroups(
	ctx context.Context, uow ReturnUoW, cmd CreateRentalReturnCommand,
) ([]*returnGroup, error) {
	ids := make([]kernel.UUID, 0, len(cmd.Items()))
	for _, item := range cmd.Items() {
		ids = append(ids, item.RentalID())
	}
	rentals, err := uow.RentalRepository().GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[kernel.UUID]*rental.Rental, len(rentals))
	for _, r := range rentals {
		byID[r.ID()] = r
	}

	var groups []*returnGroup
	byLibrary := make(map[kernel.UUID]*returnGroup)
	for _, item := range cmd.Items() {
		r, ok := byID[item.RentalID()]
		if !ok || r.UserID() != cmd.UserID() {
			return nil, errs.NewObjectNotFoundError("rentalID", item.RentalID())
		}
		if item.ReturnedQuantity() > r.Outstanding() {
			return nil, rental.NewOverReturnError(r.ID(), item.ReturnedQuantity(), r.Outstanding())
		}

		group, ok := byLibrary[r.LibraryID()]
		if !ok {
			group = &returnGroup{libraryID: r.LibraryID()}
			byLibrary[r.LibraryID()] = group
			groups = append(groups, group)
		}
		group.rentals = append(group.rentals, r)
		group.items = append(group.items, item)
	}
	return groups, nil
}

// userAddress returns the user's geocoded delivery address from their
// cart. A pickup cannot be routed without one.
func (h *CreateRentalReturnCommandHandler) userAddress(
	ctx context.Context, uow ReturnUoW, userID string,
) (*kernel.Address, error) {
	userCart, err := uow.CartRepository().GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	address := userCart.DeliveryAddress()
	if address == nil || address.Coordinate() == nil {
		return nil, cart.ErrDeliveryAddressRequired
	}
	return address, nil
}

// createReturn creates one library's RentalReturn and, for a pickup
// return, the paid return order carrying the books back.
func (h *CreateRentalReturnCommandHandler) createReturn(
	ctx context.Context,
	uow ReturnUoW,
	cmd CreateRentalReturnCommand,
	group *returnGroup,
	pickupAddress *kernel.Address,
	now time.Time,
) (*rental.RentalReturn, error) {
	if cmd.InPerson() {
		rr, err := rental.NewInPersonRentalReturn(kernel.NewUUID(), group.items, now)
		if err != nil {
			return nil, err
		}
		return rr, uow.RentalReturnRepository().Add(ctx, rr)
	}

	returnOrder, err := h.createReturnOrder(ctx, uow, cmd.UserID(), group, *pickupAddress, now)
	if err != nil {
		return nil, err
	}
	rr, err := rental.NewRentalReturn(kernel.NewUUID(), returnOrder.ID(), group.items, now)
	if err != nil {
		return nil, err
	}
	return rr, uow.RentalReturnRepository().Add(ctx, rr)
}

func (h *CreateRentalReturnCommandHandler) createReturnOrder(
	ctx context.Context,
	uow ReturnUoW,
	userID string,
	group *returnGroup,
	pickupAddress kernel.Address,
	now time.Time,
) (*order.Order, error) {
	libraries := uow.LibraryRepository()
	lib, err := libraries.Get(ctx, group.libraryID)
	if err != nil {
		return nil, err
	}
	destination, err := resolveLibraryCoordinate(ctx, h.geocoder, libraries, lib)
	if err != nil {
		return nil, err
	}

	route, err := h.router.Route(ctx, *pickupAddress.Coordinate(), destination, navigation.Car)
	if err != nil {
		return nil, err
	}
	totalQuantity := 0
	for _, item := range group.items {
		totalQuantity += item.ReturnedQuantity()
	}
	amount, err := h.calculator.Cost(route.TotalDistanceKm(), totalQuantity)
	if err != nil {
		return nil, err
	}

	orderItems, err := h.buildOrderItems(ctx, uow, group)
	if err != nil {
		return nil, err
	}
	returnOrder, err := order.NewOrder(
		kernel.NewUUID(), userID, group.libraryID,
		pickupAddress, lib.Address(), true, amount, "", orderItems, now)
	if err != nil {
		return nil, err
	}

	orderID := returnOrder.ID()
	payment, err := billing.NewTransaction(
		kernel.NewUUID(), userID, &orderID, nil, amount, billing.UserPayment, now)
	if err != nil {
		return nil, err
	}
	if err := returnOrder.MarkPaid(); err != nil {
		return nil, err
	}

	if err := uow.OrderRepository().Add(ctx, returnOrder); err != nil {
		return nil, err
	}
	if err := uow.TransactionRepository().Add(ctx, payment); err != nil {
		return nil, err
	}
	return returnOrder, nil
}

func (h *CreateRentalReturnCommandHandler) buildOrderItems(
	ctx context.Context, uow ReturnUoW, group *returnGroup,
) ([]*order.OrderItem, error) {
	books := uow.BookRepository()
	items := make([]*order.OrderItem, 0, len(group.rentals))
	for i, r := range group.rentals {
		book, err := books.Get(ctx, r.BookID())
		if err != nil {
			return nil, err
		}
		item, err := order.NewOrderItem(
			kernel.NewUUID(), r.BookID(), book.Title(), group.items[i].ReturnedQuantity())
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// chargeLateFees records one LATE_FEE ledger entry per overdue rental in
// the group.
func (h *CreateRentalReturnCommandHandler) chargeLateFees(
	ctx context.Context,
	uow ReturnUoW,
	userID string,
	group *returnGroup,
	returnID kernel.UUID,
	now time.Time,
) error {
	ledger := uow.TransactionRepository()
	for _, r := range group.rentals {
		fee := r.LateFee(now)
		if !fee.IsPositive() {
			continue
		}
		entry, err := billing.NewTransaction(
			kernel.NewUUID(), userID, nil, &returnID, fee, billing.LateFee, now)
		if err != nil {
			return err
		}
		if err := ledger.Add(ctx, entry); err != nil {
			return err
		}
	}
	return nil
}
