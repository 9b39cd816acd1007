package distancerepo

import (
	"context"
	"errors"

	"bookrider/internal/core/domain/model/kernel"
	"bookrider/internal/core/domain/model/navigation"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDistanceCacheRepository implements DistanceCache using GORM.
// Entries are plain key-value rows, not aggregates, so the repository
// works directly on the database without unit of work tracking.
type GormDistanceCacheRepository struct {
	db *gorm.DB
}

// NewGormDistanceCacheRepository creates a new GORM distance cache.
func NewGormDistanceCacheRepository(db *gorm.DB) *GormDistanceCacheRepository {
	return &GormDistanceCacheRepository{db: db}
}

// Get returns the cached route totals for the pair and profile. A row
// that no longer builds a valid result counts as a miss.
func (r *GormDistanceCacheRepository) Get(
	ctx context.Context,
	start, end kernel.Coordinate,
	profile navigation.TransportProfile,
) (navigation.NavigationResult, bool, error) {
	var dto DistanceCacheDTO
	err := r.db.WithContext(ctx).
		Where("start_latitude = ? AND start_longitude = ? AND end_latitude = ? AND end_longitude = ? AND profile = ?",
			start.Latitude(), start.Longitude(), end.Latitude(), end.Longitude(), profile.WireString()).
		First(&dto).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return navigation.NavigationResult{}, false, nil
	}
	if err != nil {
		return navigation.NavigationResult{}, false, err
	}

	result, err := navigation.NewNavigationResult(dto.DistanceMeters, dto.DurationMinutes, nil)
	if err != nil {
		return navigation.NavigationResult{}, false, nil
	}
	return result, true, nil
}

// Put stores the result's totals for the pair and profile. An already
// cached pair keeps its existing row.
func (r *GormDistanceCacheRepository) Put(
	ctx context.Context,
	start, end kernel.Coordinate,
	profile navigation.TransportProfile,
	result navigation.NavigationResult,
) error {
	if err := result.Validate(); err != nil {
		return err
	}

	dto := DistanceCacheDTO{
		StartLatitude:   start.Latitude(),
		StartLongitude:  start.Longitude(),
		EndLatitude:     end.Latitude(),
		EndLongitude:    end.Longitude(),
		Profile:         profile.WireString(),
		DistanceMeters:  result.TotalDistanceMeters(),
		DurationMinutes: result.TotalDurationMinutes(),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&dto).Error
}
