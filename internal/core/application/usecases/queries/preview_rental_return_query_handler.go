package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"bookrider/internal/core/domain/model/cart"
	"bookrider/internal/core/domain/model/kernel"
	"bookrider/internal/core/domain/model/navigation"
	"bookrider/internal/core/domain/model/rental"
	"bookrider/internal/core/domain/services"
	"bookrider/internal/core/ports"
	"bookrider/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PreviewRentalReturnQueryHandler prices a rental return. Unlike the
// other query handlers it talks to the routing service, because a
// pickup return is priced over the real route from the user's address
// to each library. Nothing is written.
type PreviewRentalReturnQueryHandler struct {
	db         *gorm.DB
	geocoder   ports.Geocoder
	router     ports.Router
	calculator services.DeliveryCostCalculator
	now        func() time.Time
}

// NewPreviewRentalReturnQueryHandler creates a handler for return
// price previews.
func NewPreviewRentalReturnQueryHandler(
	db *gorm.DB,
	geocoder ports.Geocoder,
	router ports.Router,
	calculator services.DeliveryCostCalculator,
) PreviewRentalReturnQueryHandler {
	return PreviewRentalReturnQueryHandler{
		db:         db,
		geocoder:   geocoder,
		router:     router,
		calculator: calculator,
		now:        time.Now,
	}
}

type previewRental struct {
	aggregate     *rental.Rental
	bookTitle     string
	libraryName   string
	libraryStreet string
	libraryCity   string
	libraryPostal string
	libraryLat    sql.NullFloat64
	libraryLon    sql.NullFloat64
	requestedQty  int
}

type previewGroup struct {
	libraryID kernel.UUID
	rentals   []previewRental
}

// Handle prices the requested return as of now.
func (h PreviewRentalReturnQueryHandler) Handle(
	ctx context.Context,
	query PreviewRentalReturnQuery,
) (PreviewRentalReturnQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return PreviewRentalReturnQueryResponse{}, err
	}

	groups, err := h.loadGroups(ctx, query)
	if err != nil {
		return PreviewRentalReturnQueryResponse{}, err
	}

	var userLocation kernel.Coordinate
	if !query.InPerson() {
		if userLocation, err = h.userLocation(ctx, query.UserID()); err != nil {
			return PreviewRentalReturnQueryResponse{}, err
		}
	}

	now := h.now()
	resp := PreviewRentalReturnQueryResponse{
		Groups:            make([]PreviewReturnGroupResponse, 0, len(groups)),
		TotalLateFees:     decimal.Zero,
		TotalDeliveryCost: decimal.Zero,
	}

	for _, group := range groups {
		priced, err := h.priceGroup(ctx, query, group, userLocation, now)
		if err != nil {
			return PreviewRentalReturnQueryResponse{}, err
		}
		for _, item := range priced.Items {
			resp.TotalLateFees = resp.TotalLateFees.Add(item.LateFee)
		}
		resp.TotalDeliveryCost = resp.TotalDeliveryCost.Add(priced.DeliveryCost)
		resp.Groups = append(resp.Groups, priced)
	}
	resp.TotalDue = resp.TotalLateFees.Add(resp.TotalDeliveryCost)
	return resp, nil
}

// loadGroups reads the requested rentals and groups them by library,
// preserving the order of the request. A rental belonging to another
// user is reported as missing.
func (h PreviewRentalReturnQueryHandler) loadGroups(
	ctx context.Context,
	query PreviewRentalReturnQuery,
) ([]previewGroup, error) {
	byLibrary := make(map[kernel.UUID]int)
	groups := make([]previewGroup, 0)

	for _, item := range query.Items() {
		loaded, err := h.loadRental(ctx, query.UserID(), item)
		if err != nil {
			return nil, err
		}
		if item.ReturnedQuantity() > loaded.aggregate.Outstanding() {
			return nil, rental.NewOverReturnError(
				item.RentalID(), item.ReturnedQuantity(), loaded.aggregate.Outstanding())
		}

		libraryID := loaded.aggregate.LibraryID()
		i, ok := byLibrary[libraryID]
		if !ok {
			i = len(groups)
			byLibrary[libraryID] = i
			groups = append(groups, previewGroup{libraryID: libraryID})
		}
		groups[i].rentals = append(groups[i].rentals, loaded)
	}
	return groups, nil
}

func (h PreviewRentalReturnQueryHandler) loadRental(
	ctx context.Context,
	userID string,
	item rental.ReturnItem,
) (previewRental, error) {
	var loaded previewRental
	var id, bookID, libraryID, orderID uuid.UUID
	var rentalUserID, status string
	var quantity, returnedQuantity int
	var rentedAt, returnDeadline time.Time
	var returnedAt *time.Time

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			r.id,
			r.order_id,
			r.book_id,
			b.title,
			r.library_id,
			l.name,
			l.street,
			l.city,
			l.postal_code,
			l.latitude,
			l.longitude,
			r.user_id,
			r.quantity,
			r.returned_quantity,
			r.status,
			r.rented_at,
			r.return_deadline,
			r.returned_at
		FROM rentals r
		JOIN books b ON b.id = r.book_id
		JOIN libraries l ON l.id = r.library_id
		WHERE r.id = ?
	`, item.RentalID().Bytes()).Row()

	err := row.Scan(
		&id,
		&orderID,
		&bookID,
		&loaded.bookTitle,
		&libraryID,
		&loaded.libraryName,
		&loaded.libraryStreet,
		&loaded.libraryCity,
		&loaded.libraryPostal,
		&loaded.libraryLat,
		&loaded.libraryLon,
		&rentalUserID,
		&quantity,
		&returnedQuantity,
		&status,
		&rentedAt,
		&returnDeadline,
		&returnedAt,
	)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && rentalUserID != userID) {
		return previewRental{}, errs.NewObjectNotFoundError("rentalID", item.RentalID())
	}
	if err != nil {
		return previewRental{}, err
	}

	parsedStatus, err := rental.StatusFromString(status)
	if err != nil {
		return previewRental{}, err
	}
	rentalID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return previewRental{}, err
	}
	rentalBookID, err := kernel.UUIDFromBytes(bookID[:])
	if err != nil {
		return previewRental{}, err
	}
	rentalLibraryID, err := kernel.UUIDFromBytes(libraryID[:])
	if err != nil {
		return previewRental{}, err
	}
	rentalOrderID, err := kernel.UUIDFromBytes(orderID[:])
	if err != nil {
		return previewRental{}, err
	}

	loaded.aggregate, err = rental.RestoreRental(
		rentalID, rentalBookID, rentalLibraryID, rentalOrderID, rentalUserID,
		quantity, rentedAt, returnDeadline, returnedQuantity, returnedAt, parsedStatus)
	if err != nil {
		return previewRental{}, err
	}
	loaded.requestedQty = item.ReturnedQuantity()
	return loaded, nil
}

// userLocation reads the geocoded delivery address off the user's cart.
// A pickup return cannot be priced without one.
func (h PreviewRentalReturnQueryHandler) userLocation(ctx context.Context, userID string) (kernel.Coordinate, error) {
	var latitude, longitude sql.NullFloat64

	row := h.db.WithContext(ctx).Raw(`
		SELECT latitude, longitude
		FROM carts
		WHERE user_id = ?
	`, userID).Row()

	err := row.Scan(&latitude, &longitude)
	if errors.Is(err, sql.ErrNoRows) {
		return kernel.Coordinate{}, cart.ErrDeliveryAddressRequired
	}
	if err != nil {
		return kernel.Coordinate{}, err
	}
	if !latitude.Valid || !longitude.Valid {
		return kernel.Coordinate{}, cart.ErrDeliveryAddressRequired
	}
	return kernel.NewCoordinate(latitude.Float64, longitude.Float64)
}

func (h PreviewRentalReturnQueryHandler) priceGroup(
	ctx context.Context,
	query PreviewRentalReturnQuery,
	group previewGroup,
	userLocation kernel.Coordinate,
	now time.Time,
) (PreviewReturnGroupResponse, error) {
	priced := PreviewReturnGroupResponse{
		LibraryID:    group.libraryID,
		LibraryName:  group.rentals[0].libraryName,
		DistanceKm:   decimal.Zero,
		DeliveryCost: decimal.Zero,
		Items:        make([]PreviewReturnItemResponse, 0, len(group.rentals)),
	}

	totalQuantity := 0
	for _, loaded := range group.rentals {
		priced.Items = append(priced.Items, PreviewReturnItemResponse{
			RentalID:         loaded.aggregate.ID(),
			BookTitle:        loaded.bookTitle,
			ReturnedQuantity: loaded.requestedQty,
			LateFee:          loaded.aggregate.LateFee(now),
		})
		totalQuantity += loaded.requestedQty
	}

	if query.InPerson() {
		return priced, nil
	}

	libraryLocation, err := h.libraryLocation(ctx, group.rentals[0])
	if err != nil {
		return PreviewReturnGroupResponse{}, err
	}
	route, err := h.router.Route(ctx, userLocation, libraryLocation, navigation.Car)
	if err != nil {
		return PreviewReturnGroupResponse{}, err
	}
	priced.DistanceKm = route.TotalDistanceKm()
	priced.DeliveryCost, err = h.calculator.Cost(priced.DistanceKm, totalQuantity)
	if err != nil {
		return PreviewReturnGroupResponse{}, err
	}
	return priced, nil
}

// libraryLocation prefers the coordinate cached on the library row and
// geocodes its address otherwise. The preview never writes the result
// back; the next CreateRentalReturn does the caching.
func (h PreviewRentalReturnQueryHandler) libraryLocation(ctx context.Context, loaded previewRental) (kernel.Coordinate, error) {
	if loaded.libraryLat.Valid && loaded.libraryLon.Valid {
		return kernel.NewCoordinate(loaded.libraryLat.Float64, loaded.libraryLon.Float64)
	}
	return h.geocoder.Resolve(ctx, loaded.libraryStreet, loaded.libraryCity, loaded.libraryPostal)
}
