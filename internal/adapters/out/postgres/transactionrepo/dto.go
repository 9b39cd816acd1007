// Package transactionrepo persists the append-only billing ledger.
package transactionrepo

import (
	"time"

	"bookrider/internal/core/domain/model/billing"
	"bookrider/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionDTO is the database row of a ledger entry.
type TransactionDTO struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID         string          `gorm:"index"`
	OrderID        *uuid.UUID      `gorm:"type:uuid"`
	RentalReturnID *uuid.UUID      `gorm:"type:uuid"`
	Amount         decimal.Decimal `gorm:"type:numeric(12,2)"`
	TxType         string
	CreatedAt      time.Time `gorm:"index"`
}

// TableName overrides GORM's default naming to use "transactions".
func (TransactionDTO) TableName() string {
	return "transactions"
}

func fromDomain(aggregate *billing.Transaction) TransactionDTO {
	dto := TransactionDTO{
		ID:        aggregate.ID().Bytes(),
		UserID:    aggregate.UserID(),
		Amount:    aggregate.Amount(),
		TxType:    aggregate.TxType().String(),
		CreatedAt: aggregate.CreatedAt(),
	}
	if orderID := aggregate.OrderID(); orderID != nil {
		raw := orderID.Bytes()
		dto.OrderID = &raw
	}
	if returnID := aggregate.RentalReturnID(); returnID != nil {
		raw := returnID.Bytes()
		dto.RentalReturnID = &raw
	}
	return dto
}

func toDomain(dto TransactionDTO) (*billing.Transaction, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	txType, err := billing.TypeFromString(dto.TxType)
	if err != nil {
		return nil, err
	}

	var orderID, rentalReturnID *kernel.UUID
	if dto.OrderID != nil {
		resolved, refErr := kernel.UUIDFromBytes(dto.OrderID[:])
		if refErr != nil {
			return nil, refErr
		}
		orderID = &resolved
	}
	if dto.RentalReturnID != nil {
		resolved, refErr := kernel.UUIDFromBytes(dto.RentalReturnID[:])
		if refErr != nil {
			return nil, refErr
		}
		rentalReturnID = &resolved
	}

	return billing.NewTransaction(
		id, dto.UserID, orderID, rentalReturnID, dto.Amount, txType, dto.CreatedAt)
}
