package cartrepo

import (
	"context"
	"errors"
	"time"

	"bookrider/internal/core/domain/model/cart"
	"bookrider/internal/core/domain/model/kernel"
	"bookrider/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCartRepository implements CartRepository using GORM.
type GormCartRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormCartRepository creates a new GORM cart repository.
func NewGormCartRepository(db *gorm.DB, tracker aggregateTracker) *GormCartRepository {
	return &GormCartRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new cart.
func (r *GormCartRepository) Add(ctx context.Context, aggregate *cart.ShoppingCart) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.UpdatedAt = time.Now()
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing cart. The stored version must still match
// the version the aggregate was loaded with; a lost race is rejected
// with a ConcurrentModificationError and nothing is written. Items and
// sub-items are replaced wholesale.
func (r *GormCartRepository) Update(ctx context.Context, aggregate *cart.ShoppingCart) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&CartDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(map[string]any{
			"street":      dto.Street,
			"city":        dto.City,
			"postal_code": dto.PostalCode,
			"latitude":    dto.Latitude,
			"longitude":   dto.Longitude,
			"total_cost":  dto.TotalCost,
			"version":     dto.Version + 1,
			"updated_at":  time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewConcurrentModificationError("cartID", aggregate.ID())
	}

	if err := r.replaceItems(ctx, dto); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// GetByUserID retrieves the user's cart with its items and sub-items.
func (r *GormCartRepository) GetByUserID(ctx context.Context, userID string) (*cart.ShoppingCart, error) {
	if userID == "" {
		return nil, errs.NewValueIsRequiredError("userID")
	}

	var dto CartDTO
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("SubItems").
		First(&dto, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("userID", userID)
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormCartRepository) replaceItems(ctx context.Context, dto CartDTO) error {
	err := r.db.WithContext(ctx).
		Delete(&CartSubItemDTO{}, "cart_id = ?", dto.ID).Error
	if err != nil {
		return err
	}
	err = r.db.WithContext(ctx).
		Delete(&CartItemDTO{}, "cart_id = ?", dto.ID).Error
	if err != nil {
		return err
	}

	if len(dto.Items) > 0 {
		if err = r.db.WithContext(ctx).Create(&dto.Items).Error; err != nil {
			return err
		}
	}
	if len(dto.SubItems) > 0 {
		if err = r.db.WithContext(ctx).Create(&dto.SubItems).Error; err != nil {
			return err
		}
	}
	return nil
}
