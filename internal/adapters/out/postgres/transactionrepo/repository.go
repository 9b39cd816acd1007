package transactionrepo

import (
	"context"

	"bookrider/internal/core/domain/model/billing"
	"bookrider/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormTransactionRepository implements TransactionRepository using GORM.
type GormTransactionRepository struct {
	db *gorm.DB
}

// NewGormTransactionRepository creates a new GORM transaction repository.
func NewGormTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{db: db}
}

// Add persists a new ledger entry.
func (r *GormTransactionRepository) Add(ctx context.Context, aggregate *billing.Transaction) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetAllByUserID retrieves a user's ledger entries, newest first.
func (r *GormTransactionRepository) GetAllByUserID(ctx context.Context, userID string) ([]*billing.Transaction, error) {
	if userID == "" {
		return nil, errs.NewValueIsRequiredError("userID")
	}

	var dtos []TransactionDTO
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	transactions := make([]*billing.Transaction, 0, len(dtos))
	for _, dto := range dtos {
		entry, domainErr := toDomain(dto)
		if domainErr != nil {
			return nil, domainErr
		}
		transactions = append(transactions, entry)
	}
	return transactions, nil
}
