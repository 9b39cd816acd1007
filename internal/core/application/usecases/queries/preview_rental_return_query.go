package queries

import (
	"errors"

	"bookrider/internal/core/domain/model/kernel"
	"bookrider/internal/core/domain/model/rental"
	"bookrider/internal/pkg/errs"
	"bookrider/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrPreviewRentalReturnQueryIsNotConstructed = errors.New(
	"PreviewRentalReturnQuery must be created via NewPreviewRentalReturnQuery constructor")

// PreviewRentalReturnQuery prices a rental return without creating
// anything: the late fees accrued so far plus, for a pickup return, the
// per-library delivery cost. The numbers match what CreateRentalReturn
// would charge at the same instant.
type PreviewRentalReturnQuery struct {
	userID   string
	items    []rental.ReturnItem
	inPerson bool

	guard guard.ConstructorGuard
}

// NewPreviewRentalReturnQuery creates a validated query.
func NewPreviewRentalReturnQuery(userID string, items []rental.ReturnItem, inPerson bool) (PreviewRentalReturnQuery, error) {
	if userID == "" {
		return PreviewRentalReturnQuery{}, errs.NewValueIsRequiredError("userID")
	}
	if len(items) == 0 {
		return PreviewRentalReturnQuery{}, errs.NewValueIsRequiredError("items")
	}
	return PreviewRentalReturnQuery{
		userID:   userID,
		items:    append([]rental.ReturnItem(nil), items...),
		inPerson: inPerson,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q PreviewRentalReturnQuery) Validate() error {
	return q.guard.Validate(ErrPreviewRentalReturnQueryIsNotConstructed)
}

// UserID returns whose rentals are being returned.
func (q PreviewRentalReturnQuery) UserID() string { return q.userID }

// Items returns the rentals and quantities to price.
func (q PreviewRentalReturnQuery) Items() []rental.ReturnItem { return q.items }

// InPerson reports whether the user brings the books back personally,
// skipping the delivery cost.
func (q PreviewRentalReturnQuery) InPerson() bool { return q.inPerson }

// PreviewRentalReturnQueryResponse is the priced return.
type PreviewRentalReturnQueryResponse struct {
	Groups            []PreviewReturnGroupResponse
	TotalLateFees     decimal.Decimal
	TotalDeliveryCost decimal.Decimal
	TotalDue          decimal.Decimal
}

// PreviewReturnGroupResponse is one library's share of the return.
type PreviewReturnGroupResponse struct {
	LibraryID    kernel.UUID
	LibraryName  string
	DistanceKm   decimal.Decimal
	DeliveryCost decimal.Decimal
	Items        []PreviewReturnItemResponse
}

// PreviewReturnItemResponse is one rental within a group.
type PreviewReturnItemResponse struct {
	RentalID         kernel.UUID
	BookTitle        string
	ReturnedQuantity int
	LateFee          decimal.Decimal
}
