package cart

import (
	"errors"
	"fmt"
	"time"

	"bookrider/internal/core/domain/model/kernel"
	"bookrider/internal/pkg/errs"
	"bookrider/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	// ErrShoppingCartIsNotConstructed is returned when a ShoppingCart
	// instance was not created through a constructor.
	ErrShoppingCartIsNotConstructed = errors.New(
		"ShoppingCart must be created via NewShoppingCart or RestoreShoppingCart constructor")

	// ErrDeliveryAddressRequired indicates a checkout attempt with no
	// delivery address on the cart.
	ErrDeliveryAddressRequired = errors.New("delivery address is required")

	// ErrEmptyCart indicates a checkout attempt with no items in the cart.
	ErrEmptyCart = errors.New("shopping cart is empty")
)

// SubItem is one book title in some quantity within a library's cart item.
type SubItem struct {
	id        kernel.UUID
	bookID    kernel.UUID
	bookTitle string
	quantity  int
}

// RestoreSubItem rehydrates a sub-item from persistence.
func RestoreSubItem(id kernel.UUID, bookID kernel.UUID, bookTitle string, quantity int) (*SubItem, error) {
	if err := errors.Join(id.Validate(), bookID.Validate()); err != nil {
		return nil, err
	}
	if bookTitle == "" {
		return nil, errs.NewValueIsRequiredError("bookTitle")
	}
	if quantity <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid", fmt.Errorf("%d is not greater than 0", quantity))
	}
	return &SubItem{id: id, bookID: bookID, bookTitle: bookTitle, quantity: quantity}, nil
}

// ID returns the sub-item's unique identifier.
func (s *SubItem) ID() kernel.UUID { return s.id }

// BookID returns the book's identifier.
func (s *SubItem) BookID() kernel.UUID { return s.bookID }

// BookTitle returns the book's title.
func (s *SubItem) BookTitle() string { return s.bookTitle }

// Quantity returns how many copies are in the cart.
func (s *SubItem) Quantity() int { return s.quantity }

// Item groups the sub-items of one library together with that library's
// delivery cost.
type Item struct {
	libraryID         kernel.UUID
	libraryName       string
	totalDeliveryCost decimal.Decimal
	subItems          []*SubItem
}

// RestoreItem rehydrates a library item from persistence.
func RestoreItem(libraryID kernel.UUID, libraryName string, totalDeliveryCost decimal.Decimal, subItems []*SubItem) (*Item, error) {
	if err := libraryID.Validate(); err != nil {
		return nil, err
	}
	if libraryName == "" {
		return nil, errs.NewValueIsRequiredError("libraryName")
	}
	if len(subItems) == 0 {
		return nil, errs.NewValueIsRequiredError("subItems")
	}
	return &Item{
		libraryID:         libraryID,
		libraryName:       libraryName,
		totalDeliveryCost: totalDeliveryCost,
		subItems:          subItems,
	}, nil
}

// LibraryID returns the library's identifier.
func (i *Item) LibraryID() kernel.UUID { return i.libraryID }

// LibraryName returns the library's display name.
func (i *Item) LibraryName() string { return i.libraryName }

// TotalDeliveryCost returns the delivery cost for everything from this
// library.
func (i *Item) TotalDeliveryCost() decimal.Decimal { return i.totalDeliveryCost }

// SubItems returns the library's sub-items. The slice is shared with the
// aggregate; callers must not modify it.
func (i *Item) SubItems() []*SubItem { return i.subItems }

// TotalQuantity returns the number of copies ordered from this library.
func (i *Item) TotalQuantity() int {
	total := 0
	for _, sub := range i.subItems {
		total += sub.quantity
	}
	return total
}

func (i *Item) findSubItem(subItemID kernel.UUID) *SubItem {
	for _, sub := range i.subItems {
		if sub.id.IsEqual(subItemID) {
			return sub
		}
	}
	return nil
}

// ShoppingCart holds the books a user intends to order, grouped per
// library, with per-library and cart-wide delivery totals that are
// recomputed after every mutation.
//
// The version field backs the optimistic concurrency check on save:
// two racing writers never silently overwrite each other.
type ShoppingCart struct {
	id              kernel.UUID
	userID          string
	deliveryAddress *kernel.Address
	totalCost       decimal.Decimal
	items           []*Item
	version         int64
	updatedAt       time.Time

	guard guard.ConstructorGuard
}

// NewShoppingCart creates an empty cart for a user.
func NewShoppingCart(id kernel.UUID, userID string) (*ShoppingCart, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if userID == "" {
		return nil, errs.NewValueIsRequiredError("userID")
	}

	return &ShoppingCart{
		id:        id,
		userID:    userID,
		totalCost: kernel.ZeroMoney(),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// RestoreShoppingCart rehydrates a cart from persistence. The stored
// totals are recomputed rather than trusted.
func RestoreShoppingCart(
	id kernel.UUID,
	userID string,
	deliveryAddress *kernel.Address,
	items []*Item,
	version int64,
	updatedAt time.Time,
) (*ShoppingCart, error) {
	sc, err := NewShoppingCart(id, userID)
	if err != nil {
		return nil, err
	}
	if deliveryAddress != nil {
		if err := deliveryAddress.Validate(); err != nil {
			return nil, err
		}
	}

	sc.deliveryAddress = deliveryAddress
	sc.items = items
	sc.version = version
	sc.updatedAt = updatedAt
	sc.recomputeTotal()
	return sc, nil
}

// Validate ensures the cart was built through a constructor.
func (sc *ShoppingCart) Validate() error {
	if sc == nil {
		return ErrShoppingCartIsNotConstructed
	}
	return sc.guard.Validate(ErrShoppingCartIsNotConstructed)
}

// ID returns the cart's unique identifier.
func (sc *ShoppingCart) ID() kernel.UUID { return sc.id }

// UserID returns the owning user's identity.
func (sc *ShoppingCart) UserID() string { return sc.userID }

// DeliveryAddress returns the cart's delivery address, or nil.
func (sc *ShoppingCart) DeliveryAddress() *kernel.Address { return sc.deliveryAddress }

// TotalCost returns the cart-wide delivery total, always the exact sum
// of the per-library costs.
func (sc *ShoppingCart) TotalCost() decimal.Decimal { return sc.totalCost }

// Items returns the per-library items. The slice is shared with the
// aggregate; callers must not modify it.
func (sc *ShoppingCart) Items() []*Item { return sc.items }

// Version returns the optimistic concurrency version.
func (sc *ShoppingCart) Version() int64 { return sc.version }

// UpdatedAt returns when the cart was last saved.
func (sc *ShoppingCart) UpdatedAt() time.Time { return sc.updatedAt }

// IsEmpty reports whether the cart has no items.
func (sc *ShoppingCart) IsEmpty() bool { return len(sc.items) == 0 }

// SetDeliveryAddress replaces the cart's delivery address.
// Existing per-library costs become stale and must be re-priced by the
// caller via SetItemDeliveryCost.
func (sc *ShoppingCart) SetDeliveryAddress(address kernel.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}
	sc.deliveryAddress = &address
	return nil
}

// AddBook puts quantity copies of a book from a library into the cart
// and sets that library's delivery cost as re-priced by the caller.
//
// Adding a book already present in the library's item increases its
// quantity instead of duplicating the sub-item. Returns the sub-item
// carrying the book.
func (sc *ShoppingCart) AddBook(
	libraryID kernel.UUID,
	libraryName string,
	bookID kernel.UUID,
	bookTitle string,
	quantity int,
	itemDeliveryCost decimal.Decimal,
) (*SubItem, error) {
	if err := errors.Join(libraryID.Validate(), bookID.Validate()); err != nil {
		return nil, err
	}
	if libraryName == "" {
		return nil, errs.NewValueIsRequiredError("libraryName")
	}
	if bookTitle == "" {
		return nil, errs.NewValueIsRequiredError("bookTitle")
	}
	if quantity <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid", fmt.Errorf("%d is not greater than 0", quantity))
	}

	item := sc.findItem(libraryID)
	if item == nil {
		item = &Item{libraryID: libraryID, libraryName: libraryName}
		sc.items = append(sc.items, item)
	}

	subItem := item.findSubItemByBook(bookID)
	if subItem == nil {
		subItem = &SubItem{
			id:        kernel.NewUUID(),
			bookID:    bookID,
			bookTitle: bookTitle,
			quantity:  quantity,
		}
		item.subItems = append(item.subItems, subItem)
	} else {
		subItem.quantity += quantity
	}

	item.totalDeliveryCost = kernel.RoundMoney(itemDeliveryCost)
	sc.recomputeTotal()
	return subItem, nil
}

// UpdateQuantity changes the quantity of a sub-item anywhere in the cart.
func (sc *ShoppingCart) UpdateQuantity(subItemID kernel.UUID, quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid", fmt.Errorf("%d is not greater than 0", quantity))
	}

	for _, item := range sc.items {
		if sub := item.findSubItem(subItemID); sub != nil {
			sub.quantity = quantity
			return nil
		}
	}
	return errs.NewObjectNotFoundError("subItemID", subItemID)
}

// RemoveSubItem removes a sub-item from the cart. When the removal
// empties a library's item the item goes too.
func (sc *ShoppingCart) RemoveSubItem(subItemID kernel.UUID) error {
	for itemIdx, item := range sc.items {
		for subIdx, sub := range item.subItems {
			if !sub.id.IsEqual(subItemID) {
				continue
			}
			item.subItems = append(item.subItems[:subIdx], item.subItems[subIdx+1:]...)
			if len(item.subItems) == 0 {
				sc.items = append(sc.items[:itemIdx], sc.items[itemIdx+1:]...)
			}
			sc.recomputeTotal()
			return nil
		}
	}
	return errs.NewObjectNotFoundError("subItemID", subItemID)
}

// SetItemDeliveryCost replaces a library item's delivery cost after the
// caller re-priced it, and recomputes the cart total.
func (sc *ShoppingCart) SetItemDeliveryCost(libraryID kernel.UUID, cost decimal.Decimal) error {
	item := sc.findItem(libraryID)
	if item == nil {
		return errs.NewObjectNotFoundError("libraryID", libraryID)
	}
	item.totalDeliveryCost = kernel.RoundMoney(cost)
	sc.recomputeTotal()
	return nil
}

// Clear empties the cart, keeping the delivery address. Used after a
// successful checkout.
func (sc *ShoppingCart) Clear() {
	sc.items = nil
	sc.recomputeTotal()
}

// EnsureReadyForCheckout verifies the cart can be checked out: it must
// have a delivery address and at least one item.
func (sc *ShoppingCart) EnsureReadyForCheckout() error {
	if sc.deliveryAddress == nil {
		return ErrDeliveryAddressRequired
	}
	if sc.IsEmpty() {
		return ErrEmptyCart
	}
	return nil
}

func (sc *ShoppingCart) findItem(libraryID kernel.UUID) *Item {
	for _, item := range sc.items {
		if item.libraryID.IsEqual(libraryID) {
			return item
		}
	}
	return nil
}

func (i *Item) findSubItemByBook(bookID kernel.UUID) *SubItem {
	for _, sub := range i.subItems {
		if sub.bookID.IsEqual(bookID) {
			return sub
		}
	}
	return nil
}

// recomputeTotal keeps the cart-wide total the exact sum of the
// per-library costs. Called after every mutation, never deferred.
func (sc *ShoppingCart) recomputeTotal() {
	total := kernel.ZeroMoney()
	for _, item := range sc.items {
		total = total.Add(item.totalDeliveryCost)
	}
	sc.totalCost = kernel.RoundMoney(total)
}
