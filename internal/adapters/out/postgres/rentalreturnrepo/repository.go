package rentalreturnrepo

import (
	"context"
	"errors"

	"bookrider/internal/core/domain/model/kernel"
	"bookrider/internal/core/domain/model/rental"
	"bookrider/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormRentalReturnRepository implements RentalReturnRepository using GORM.
type GormRentalReturnRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormRentalReturnRepository creates a new GORM rental return repository.
func NewGormRentalReturnRepository(db *gorm.DB, tracker aggregateTracker) *GormRentalReturnRepository {
	return &GormRentalReturnRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new rental return with its lines.
func (r *GormRentalReturnRepository) Add(ctx context.Context, aggregate *rental.RentalReturn) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing rental return. The lines never change after
// creation; only the status and completion timestamp move.
func (r *GormRentalReturnRepository) Update(ctx context.Context, aggregate *rental.RentalReturn) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&RentalReturnDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"status":      dto.Status,
			"returned_at": dto.ReturnedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("returnID", aggregate.ID())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a rental return with its lines.
func (r *GormRentalReturnRepository) Get(ctx context.Context, id kernel.UUID) (*rental.RentalReturn, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RentalReturnDTO
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("returnID", id)
		}
		return nil, err
	}

	return toDomain(dto)
}
