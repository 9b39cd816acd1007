package rentalrepo

import (
	"context"
	"errors"
	"time"

	"bookrider/internal/core/domain/model/kernel"
	"bookrider/internal/core/domain/model/rental"
	"bookrider/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormRentalRepository implements RentalRepository using GORM.
type GormRentalRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormRentalRepository creates a new GORM rental repository.
func NewGormRentalRepository(db *gorm.DB, tracker aggregateTracker) *GormRentalRepository {
	return &GormRentalRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new rental.
func (r *GormRentalRepository) Add(ctx context.Context, aggregate *rental.Rental) error {
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

// Update saves an existing rental.
func (r *GormRentalRepository) Update(ctx context.Context, aggregate *rental.Rental) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&RentalDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"returned_quantity": dto.ReturnedQuantity,
			"status":            dto.Status,
			"returned_at":       dto.ReturnedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("rentalID", aggregate.ID())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a rental by its unique identifier.
func (r *GormRentalRepository) Get(ctx context.Context, id kernel.UUID) (*rental.Rental, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RentalDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("rentalID", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByIDs retrieves the rentals with the given identifiers, in the
// order requested. Any missing identifier fails the whole lookup with
// an ObjectNotFoundError naming it.
func (r *GormRentalRepository) GetByIDs(ctx context.Context, ids []kernel.UUID) ([]*rental.Rental, error) {
	if len(ids) == 0 {
		return nil, errs.NewValueIsRequiredError("ids")
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		raw = append(raw, id.Bytes())
	}

	var dtos []RentalDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "id IN ?", raw).Error; err != nil {
		return nil, err
	}

	found := make(map[uuid.UUID]RentalDTO, len(dtos))
	for _, dto := range dtos {
		found[dto.ID] = dto
	}

	rentals := make([]*rental.Rental, 0, len(ids))
	for _, id := range ids {
		dto, ok := found[id.Bytes()]
		if !ok {
			return nil, errs.NewObjectNotFoundError("rentalID", id)
		}
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		rentals = append(rentals, aggregate)
	}
	return rentals, nil
}

// GetActivePastDeadline retrieves rentals still Active whose deadline
// lies before asOf. Used by the overdue sweep.
func (r *GormRentalRepository) GetActivePastDeadline(ctx context.Context, asOf time.Time) ([]*rental.Rental, error) {
	var dtos []RentalDTO
	err := r.db.WithContext(ctx).
		Find(&dtos, "status = ? AND return_deadline < ?", rental.Active.String(), asOf).Error
	if err != nil {
		return nil, err
	}

	rentals := make([]*rental.Rental, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		rentals = append(rentals, aggregate)
	}
	return rentals, nil
}
