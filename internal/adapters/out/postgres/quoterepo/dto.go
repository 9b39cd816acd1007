// Package quoterepo persists quotes with their options. Quotes are
// written once and read back until they expire; they are never updated.
package quoterepo

import (
	"time"

	"bookrider/internal/core/domain/model/kernel"
	"bookrider/internal/core/domain/model/quote"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// QuoteDTO is the database row of a quote.
type QuoteDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID     string    `gorm:"index"`
	BookID     uuid.UUID `gorm:"type:uuid"`
	BookTitle  string
	Quantity   int
	ValidUntil time.Time

	Options []QuoteOptionDTO `gorm:"foreignKey:QuoteID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default naming to use "quotes".
func (QuoteDTO) TableName() string {
	return "quotes"
}

// QuoteOptionDTO is one library's priced offer within a quote.
type QuoteOptionDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	QuoteID           uuid.UUID `gorm:"type:uuid;index"`
	LibraryID         uuid.UUID `gorm:"type:uuid"`
	LibraryName       string
	DistanceKm        decimal.Decimal `gorm:"type:numeric(12,3)"`
	TotalDeliveryCost decimal.Decimal `gorm:"type:numeric(12,2)"`
}

// TableName overrides GORM's default naming to use "quote_options".
func (QuoteOptionDTO) TableName() string {
	return "quote_options"
}

func fromDomain(aggregate *quote.Quote) QuoteDTO {
	dto := QuoteDTO{
		ID:         aggregate.ID().Bytes(),
		UserID:     aggregate.UserID(),
		BookID:     aggregate.BookID().Bytes(),
		BookTitle:  aggregate.BookTitle(),
		Quantity:   aggregate.Quantity(),
		ValidUntil: aggregate.ValidUntil(),
	}
	for _, option := range aggregate.Options() {
		dto.Options = append(dto.Options, QuoteOptionDTO{
			ID:                option.ID().Bytes(),
			QuoteID:           dto.ID,
			LibraryID:         option.LibraryID().Bytes(),
			LibraryName:       option.LibraryName(),
			DistanceKm:        option.DistanceKm(),
			TotalDeliveryCost: option.TotalDeliveryCost(),
		})
	}
	return dto
}

func toDomain(dto QuoteDTO) (*quote.Quote, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	bookID, err := kernel.UUIDFromBytes(dto.BookID[:])
	if err != nil {
		return nil, err
	}

	options := make([]quote.Option, 0, len(dto.Options))
	for _, optionDTO := range dto.Options {
		optionID, optionErr := kernel.UUIDFromBytes(optionDTO.ID[:])
		if optionErr != nil {
			return nil, optionErr
		}
		libraryID, optionErr := kernel.UUIDFromBytes(optionDTO.LibraryID[:])
		if optionErr != nil {
			return nil, optionErr
		}
		option, optionErr := quote.NewOption(
			optionID, libraryID, optionDTO.LibraryName,
			optionDTO.DistanceKm, optionDTO.TotalDeliveryCost)
		if optionErr != nil {
			return nil, optionErr
		}
		options = append(options, option)
	}

	return quote.RestoreQuote(
		id, dto.UserID, bookID, dto.BookTitle, dto.Quantity, options, dto.ValidUntil)
}
