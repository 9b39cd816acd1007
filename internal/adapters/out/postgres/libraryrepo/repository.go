package libraryrepo

import (
	"context"
	"errors"
	"math"
	"sort"

	"bookrider/internal/core/domain/model/kernel"
	"bookrider/internal/core/domain/model/library"
	"bookrider/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormLibraryRepository implements LibraryRepository using GORM.
type GormLibraryRepository struct {
	db *gorm.DB
}

// NewGormLibraryRepository creates a new GORM library repository.
func NewGormLibraryRepository(db *gorm.DB) *GormLibraryRepository {
	return &GormLibraryRepository{db: db}
}

// Get retrieves a library by its unique identifier.
func (r *GormLibraryRepository) Get(ctx context.Context, id kernel.UUID) (*library.Library, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto LibraryDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("libraryID", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetCandidatesByBook retrieves up to limit libraries stocking the
// book, nearest to the given coordinate first. Libraries without a
// cached coordinate sort last; their distance is settled once quoting
// geocodes them.
func (r *GormLibraryRepository) GetCandidatesByBook(
	ctx context.Context,
	bookID kernel.UUID,
	near kernel.Coordinate,
	limit int,
) ([]*library.Library, error) {
	if err := errors.Join(bookID.Validate(), near.Validate()); err != nil {
		return nil, err
	}

	var dtos []LibraryDTO
	err := r.db.WithContext(ctx).
		Joins("JOIN library_books lb ON lb.library_id = libraries.id").
		Where("lb.book_id = ?", bookID.Bytes()).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	type candidate struct {
		aggregate *library.Library
		distance  float64
	}
	candidates := make([]candidate, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, domainErr := toDomain(dto)
		if domainErr != nil {
			return nil, domainErr
		}

		distance := math.MaxFloat64
		if coordinate := aggregate.Address().Coordinate(); coordinate != nil {
			if distance, domainErr = near.DistanceMeters(*coordinate); domainErr != nil {
				return nil, domainErr
			}
		}
		candidates = append(candidates, candidate{aggregate: aggregate, distance: distance})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].distance < candidates[j].distance
	})
	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}

	libraries := make([]*library.Library, 0, len(candidates))
	for _, c := range candidates {
		libraries = append(libraries, c.aggregate)
	}
	return libraries, nil
}

// Update persists a library, used to cache a freshly geocoded
// coordinate on its address.
func (r *GormLibraryRepository) Update(ctx context.Context, aggregate *library.Library) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&LibraryDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"name":        dto.Name,
			"street":      dto.Street,
			"city":        dto.City,
			"postal_code": dto.PostalCode,
			"latitude":    dto.Latitude,
			"longitude":   dto.Longitude,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("libraryID", aggregate.ID())
	}
	return nil
}

// GormBookRepository implements BookRepository using GORM.
type GormBookRepository struct {
	db *gorm.DB
}

// NewGormBookRepository creates a new GORM book repository.
func NewGormBookRepository(db *gorm.DB) *GormBookRepository {
	return &GormBookRepository{db: db}
}

// Get retrieves a book by its unique identifier.
func (r *GormBookRepository) Get(ctx context.Context, id kernel.UUID) (*library.Book, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto BookDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("bookID", id)
		}
		return nil, err
	}

	return bookToDomain(dto)
}
