package quote

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"bookrider/internal/core/domain/model/kernel"
	"bookrider/internal/pkg/errs"
	"bookrider/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// TTL is how long a quote and its options stay accepted for checkout.
const TTL = 15 * time.Minute

var (
	// ErrQuoteIsNotConstructed is returned when a Quote instance was not
	// created through a constructor.
	ErrQuoteIsNotConstructed = errors.New(
		"Quote must be created via NewQuote or RestoreQuote constructor")

	// ErrQuoteExpired indicates an attempt to act on a quote option past
	// its validity window.
	ErrQuoteExpired = errors.New("quote has expired")
)

// Option is one candidate library's priced offer to deliver the
// requested book.
type Option struct {
	id                kernel.UUID
	libraryID         kernel.UUID
	libraryName       string
	distanceKm        decimal.Decimal
	totalDeliveryCost decimal.Decimal
}

// NewOption creates a validated quote option.
func NewOption(
	id kernel.UUID,
	libraryID kernel.UUID,
	libraryName string,
	distanceKm decimal.Decimal,
	totalDeliveryCost decimal.Decimal,
) (Option, error) {
	if err := errors.Join(id.Validate(), libraryID.Validate()); err != nil {
		return Option{}, err
	}
	if libraryName == "" {
		return Option{}, errs.NewValueIsRequiredError("libraryName")
	}
	if distanceKm.IsNegative() {
		return Option{}, errs.NewValueIsInvalidErrorWithCause(
			"distanceKm is invalid", fmt.Errorf("%s is negative", distanceKm))
	}

	return Option{
		id:                id,
		libraryID:         libraryID,
		libraryName:       libraryName,
		distanceKm:        distanceKm,
		totalDeliveryCost: kernel.RoundMoney(totalDeliveryCost),
	}, nil
}

// ID returns the option's unique identifier.
func (o Option) ID() kernel.UUID { return o.id }

// LibraryID returns the offering library's identifier.
func (o Option) LibraryID() kernel.UUID { return o.libraryID }

// LibraryName returns the offering library's display name.
func (o Option) LibraryName() string { return o.libraryName }

// DistanceKm returns the routed distance from the library to the
// delivery address.
func (o Option) DistanceKm() decimal.Decimal { return o.distanceKm }

// TotalDeliveryCost returns the full price of accepting this option.
func (o Option) TotalDeliveryCost() decimal.Decimal { return o.totalDeliveryCost }

// Quote is the priced answer to "how much to deliver this book here":
// the candidate libraries' options ordered cheapest first, valid for TTL.
//
// A quote with no options is a valid answer meaning no library stocks
// the book.
type Quote struct {
	id         kernel.UUID
	userID     string
	bookID     kernel.UUID
	bookTitle  string
	quantity   int
	validUntil time.Time
	options    []Option

	guard guard.ConstructorGuard
}

// NewQuote creates a quote valid for TTL from now. Options are sorted by
// cost, ties broken by distance, then by library ID for a stable order.
func NewQuote(
	id kernel.UUID,
	userID string,
	bookID kernel.UUID,
	bookTitle string,
	quantity int,
	options []Option,
	now time.Time,
) (*Quote, error) {
	return newQuote(id, userID, bookID, bookTitle, quantity, options, now.Add(TTL))
}

// RestoreQuote rehydrates a quote from persistence with its original
// expiry.
func RestoreQuote(
	id kernel.UUID,
	userID string,
	bookID kernel.UUID,
	bookTitle string,
	quantity int,
	options []Option,
	validUntil time.Time,
) (*Quote, error) {
	return newQuote(id, userID, bookID, bookTitle, quantity, options, validUntil)
}

func newQuote(
	id kernel.UUID,
	userID string,
	bookID kernel.UUID,
	bookTitle string,
	quantity int,
	options []Option,
	validUntil time.Time,
) (*Quote, error) {
	if err := errors.Join(id.Validate(), bookID.Validate()); err != nil {
		return nil, err
	}
	if userID == "" {
		return nil, errs.NewValueIsRequiredError("userID")
	}
	if bookTitle == "" {
		return nil, errs.NewValueIsRequiredError("bookTitle")
	}
	if quantity <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid", fmt.Errorf("%d is not greater than 0", quantity))
	}

	sorted := append([]Option(nil), options...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].totalDeliveryCost.Equal(sorted[j].totalDeliveryCost) {
			return sorted[i].totalDeliveryCost.LessThan(sorted[j].totalDeliveryCost)
		}
		if !sorted[i].distanceKm.Equal(sorted[j].distanceKm) {
			return sorted[i].distanceKm.LessThan(sorted[j].distanceKm)
		}
		return sorted[i].libraryID.String() < sorted[j].libraryID.String()
	})

	return &Quote{
		id:         id,
		userID:     userID,
		bookID:     bookID,
		bookTitle:  bookTitle,
		quantity:   quantity,
		validUntil: validUntil,
		options:    sorted,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the quote was built through a constructor.
func (q *Quote) Validate() error {
	if q == nil {
		return ErrQuoteIsNotConstructed
	}
	return q.guard.Validate(ErrQuoteIsNotConstructed)
}

// ID returns the quote's unique identifier.
func (q *Quote) ID() kernel.UUID { return q.id }

// UserID returns the requesting user's identity.
func (q *Quote) UserID() string { return q.userID }

// BookID returns the quoted book's identifier.
func (q *Quote) BookID() kernel.UUID { return q.bookID }

// BookTitle returns the quoted book's title.
func (q *Quote) BookTitle() string { return q.bookTitle }

// Quantity returns the requested number of copies.
func (q *Quote) Quantity() int { return q.quantity }

// ValidUntil returns when the quote and all its options expire.
func (q *Quote) ValidUntil() time.Time { return q.validUntil }

// Options returns a copy of the options, cheapest first.
func (q *Quote) Options() []Option {
	return append([]Option(nil), q.options...)
}

// IsExpired reports whether the validity window has passed.
func (q *Quote) IsExpired(now time.Time) bool {
	return now.After(q.validUntil)
}

// OptionByID finds an option and verifies the quote is still valid.
// Expired quotes fail with ErrQuoteExpired regardless of the option.
func (q *Quote) OptionByID(optionID kernel.UUID, now time.Time) (Option, error) {
	if q.IsExpired(now) {
		return Option{}, ErrQuoteExpired
	}
	for _, option := range q.options {
		if option.id.IsEqual(optionID) {
			return option, nil
		}
	}
	return Option{}, errs.NewObjectNotFoundError("optionID", optionID)
}
