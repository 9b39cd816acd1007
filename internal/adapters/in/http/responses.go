package http

import (
	"time"

	"bookrider/internal/core/application/usecases/queries"
	"bookrider/internal/core/domain/model/order"
	"bookrider/internal/core/domain/model/quote"
	"bookrider/internal/core/domain/model/rental"

	"github.com/shopspring/decimal"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type quoteOptionResponse struct {
	ID                string          `json:"id"`
	LibraryID         string          `json:"libraryId"`
	LibraryName       string          `json:"libraryName"`
	DistanceKm        decimal.Decimal `json:"distanceKm"`
	TotalDeliveryCost decimal.Decimal `json:"totalDeliveryCost"`
}

type quoteResponse struct {
	ID         string                `json:"id"`
	BookID     string                `json:"bookId"`
	BookTitle  string                `json:"bookTitle"`
	Quantity   int                   `json:"quantity"`
	ValidUntil time.Time             `json:"validUntil"`
	Options    []quoteOptionResponse `json:"options"`
}

func newQuoteResponse(q *quote.Quote) quoteResponse {
	options := make([]quoteOptionResponse, 0, len(q.Options()))
	for _, option := range q.Options() {
		options = append(options, quoteOptionResponse{
			ID:                option.ID().String(),
			LibraryID:         option.LibraryID().String(),
			LibraryName:       option.LibraryName(),
			DistanceKm:        option.DistanceKm(),
			TotalDeliveryCost: option.TotalDeliveryCost(),
		})
	}
	return quoteResponse{
		ID:         q.ID().String(),
		BookID:     q.BookID().String(),
		BookTitle:  q.BookTitle(),
		Quantity:   q.Quantity(),
		ValidUntil: q.ValidUntil(),
		Options:    options,
	}
}

type orderItemResponse struct {
	BookID           string     `json:"bookId"`
	BookTitle        string     `json:"bookTitle"`
	Quantity         int        `json:"quantity"`
	ReturnDeadline   *time.Time `json:"returnDeadline,omitempty"`
	ReturnedQuantity int        `json:"returnedQuantity"`
}

type orderResponse struct {
	ID               string              `json:"id"`
	LibraryID        string              `json:"libraryId"`
	Status           string              `json:"status"`
	PaymentStatus    string              `json:"paymentStatus"`
	IsReturn         bool                `json:"isReturn"`
	Amount           decimal.Decimal     `json:"amount"`
	NoteToDriver     string              `json:"noteToDriver,omitempty"`
	DeliveryPhotoURL *string             `json:"deliveryPhotoUrl,omitempty"`
	CreatedAt        time.Time           `json:"createdAt"`
	DeliveredAt      *time.Time          `json:"deliveredAt,omitempty"`
	Items            []orderItemResponse `json:"items"`
}

func newOrderResponse(o *order.Order) orderResponse {
	items := make([]orderItemResponse, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, orderItemResponse{
			BookID:           item.BookID().String(),
			BookTitle:        item.BookTitle(),
			Quantity:         item.Quantity(),
			ReturnDeadline:   item.ReturnDeadline(),
			ReturnedQuantity: item.ReturnedQuantity(),
		})
	}
	return orderResponse{
		ID:               o.ID().String(),
		LibraryID:        o.LibraryID().String(),
		Status:           o.Status().String(),
		PaymentStatus:    o.PaymentStatus().String(),
		IsReturn:         o.IsReturn(),
		Amount:           o.Amount(),
		NoteToDriver:     o.NoteToDriver(),
		DeliveryPhotoURL: o.DeliveryPhotoURL(),
		CreatedAt:        o.CreatedAt(),
		DeliveredAt:      o.DeliveredAt(),
		Items:            items,
	}
}

func newOrderResponses(orders []*order.Order) []orderResponse {
	response := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, newOrderResponse(o))
	}
	return response
}

func newOrderHistoryResponse(orders []queries.GetUserOrdersQueryResponse) []orderResponse {
	response := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		items := make([]orderItemResponse, 0, len(o.Items))
		for _, item := range o.Items {
			items = append(items, orderItemResponse{
				BookID:           item.BookID.String(),
				BookTitle:        item.BookTitle,
				Quantity:         item.Quantity,
				ReturnDeadline:   item.ReturnDeadline,
				ReturnedQuantity: item.ReturnedQuantity,
			})
		}
		response = append(response, orderResponse{
			ID:               o.ID.String(),
			LibraryID:        o.LibraryID.String(),
			Status:           o.Status,
			PaymentStatus:    o.PaymentStatus,
			IsReturn:         o.IsReturn,
			Amount:           o.Amount,
			NoteToDriver:     o.NoteToDriver,
			DeliveryPhotoURL: o.DeliveryPhotoURL,
			CreatedAt:        o.CreatedAt,
			DeliveredAt:      o.DeliveredAt,
			Items:            items,
		})
	}
	return response
}

type cartAddressResponse struct {
	Street     string   `json:"street"`
	City       string   `json:"city"`
	PostalCode string   `json:"postalCode"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
}

type cartSubItemResponse struct {
	ID        string `json:"id"`
	BookID    string `json:"bookId"`
	BookTitle string `json:"bookTitle"`
	Quantity  int    `json:"quantity"`
}

type cartItemResponse struct {
	LibraryID         string                `json:"libraryId"`
	LibraryName       string                `json:"libraryName"`
	TotalDeliveryCost decimal.Decimal       `json:"totalDeliveryCost"`
	SubItems          []cartSubItemResponse `json:"subItems"`
}

type cartResponse struct {
	ID              string               `json:"id,omitempty"`
	DeliveryAddress *cartAddressResponse `json:"deliveryAddress,omitempty"`
	TotalCost       decimal.Decimal      `json:"totalCost"`
	Version         int64                `json:"version"`
	Items           []cartItemResponse   `json:"items"`
}

func newCartResponse(c queries.GetCartQueryResponse) cartResponse {
	response := cartResponse{
		TotalCost: c.TotalCost,
		Version:   c.Version,
		Items:     make([]cartItemResponse, 0, len(c.Items)),
	}
	if c.ID.Validate() == nil {
		response.ID = c.ID.String()
	}
	if c.DeliveryAddress != nil {
		response.DeliveryAddress = &cartAddressResponse{
			Street:     c.DeliveryAddress.Street,
			City:       c.DeliveryAddress.City,
			PostalCode: c.DeliveryAddress.PostalCode,
			Latitude:   c.DeliveryAddress.Latitude,
			Longitude:  c.DeliveryAddress.Longitude,
		}
	}
	for _, item := range c.Items {
		subItems := make([]cartSubItemResponse, 0, len(item.SubItems))
		for _, subItem := range item.SubItems {
			subItems = append(subItems, cartSubItemResponse{
				ID:        subItem.ID.String(),
				BookID:    subItem.BookID.String(),
				BookTitle: subItem.BookTitle,
				Quantity:  subItem.Quantity,
			})
		}
		response.Items = append(response.Items, cartItemResponse{
			LibraryID:         item.LibraryID.String(),
			LibraryName:       item.LibraryName,
			TotalDeliveryCost: item.TotalDeliveryCost,
			SubItems:          subItems,
		})
	}
	return response
}

type rentalResponse struct {
	ID             string          `json:"id"`
	BookID         string          `json:"bookId"`
	BookTitle      string          `json:"bookTitle"`
	LibraryID      string          `json:"libraryId"`
	LibraryName    string          `json:"libraryName"`
	Quantity       int             `json:"quantity"`
	Outstanding    int             `json:"outstanding"`
	Status         string          `json:"status"`
	RentedAt       time.Time       `json:"rentedAt"`
	ReturnDeadline time.Time       `json:"returnDeadline"`
	ReturnedAt     *time.Time      `json:"returnedAt,omitempty"`
	LateFee        decimal.Decimal `json:"lateFee"`
}

func newRentalResponses(rentals []queries.GetUserRentalsQueryResponse) []rentalResponse {
	response := make([]rentalResponse, 0, len(rentals))
	for _, r := range rentals {
		response = append(response, rentalResponse{
			ID:             r.ID.String(),
			BookID:         r.BookID.String(),
			BookTitle:      r.BookTitle,
			LibraryID:      r.LibraryID.String(),
			LibraryName:    r.LibraryName,
			Quantity:       r.Quantity,
			Outstanding:    r.Outstanding,
			Status:         r.Status,
			RentedAt:       r.RentedAt,
			ReturnDeadline: r.ReturnDeadline,
			ReturnedAt:     r.ReturnedAt,
			LateFee:        r.LateFee,
		})
	}
	return response
}

type rentalReturnItemResponse struct {
	RentalID         string `json:"rentalId"`
	ReturnedQuantity int    `json:"returnedQuantity"`
}

type rentalReturnResponse struct {
	ID            string                     `json:"id"`
	ReturnOrderID *string                    `json:"returnOrderId,omitempty"`
	Status        string                     `json:"status"`
	CreatedAt     time.Time                  `json:"createdAt"`
	ReturnedAt    *time.Time                 `json:"returnedAt,omitempty"`
	Items         []rentalReturnItemResponse `json:"items"`
}

func newRentalReturnResponses(returns []*rental.RentalReturn) []rentalReturnResponse {
	response := make([]rentalReturnResponse, 0, len(returns))
	for _, rr := range returns {
		items := make([]rentalReturnItemResponse, 0, len(rr.Items()))
		for _, item := range rr.Items() {
			items = append(items, rentalReturnItemResponse{
				RentalID:         item.RentalID().String(),
				ReturnedQuantity: item.ReturnedQuantity(),
			})
		}
		entry := rentalReturnResponse{
			ID:         rr.ID().String(),
			Status:     rr.Status().String(),
			CreatedAt:  rr.CreatedAt(),
			ReturnedAt: rr.ReturnedAt(),
			Items:      items,
		}
		if orderID := rr.ReturnOrderID(); orderID != nil {
			s := orderID.String()
			entry.ReturnOrderID = &s
		}
		response = append(response, entry)
	}
	return response
}

type previewReturnItemResponse struct {
	RentalID         string          `json:"rentalId"`
	BookTitle        string          `json:"bookTitle"`
	ReturnedQuantity int             `json:"returnedQuantity"`
	LateFee          decimal.Decimal `json:"lateFee"`
}

type previewReturnGroupResponse struct {
	LibraryID    string                      `json:"libraryId"`
	LibraryName  string                      `json:"libraryName"`
	DistanceKm   decimal.Decimal             `json:"distanceKm"`
	DeliveryCost decimal.Decimal             `json:"deliveryCost"`
	Items        []previewReturnItemResponse `json:"items"`
}

type previewReturnResponse struct {
	Groups            []previewReturnGroupResponse `json:"groups"`
	TotalLateFees     decimal.Decimal              `json:"totalLateFees"`
	TotalDeliveryCost decimal.Decimal              `json:"totalDeliveryCost"`
	TotalDue          decimal.Decimal              `json:"totalDue"`
}

func newPreviewReturnResponse(preview queries.PreviewRentalReturnQueryResponse) previewReturnResponse {
	groups := make([]previewReturnGroupResponse, 0, len(preview.Groups))
	for _, group := range preview.Groups {
		items := make([]previewReturnItemResponse, 0, len(group.Items))
		for _, item := range group.Items {
			items = append(items, previewReturnItemResponse{
				RentalID:         item.RentalID.String(),
				BookTitle:        item.BookTitle,
				ReturnedQuantity: item.ReturnedQuantity,
				LateFee:          item.LateFee,
			})
		}
		groups = append(groups, previewReturnGroupResponse{
			LibraryID:    group.LibraryID.String(),
			LibraryName:  group.LibraryName,
			DistanceKm:   group.DistanceKm,
			DeliveryCost: group.DeliveryCost,
			Items:        items,
		})
	}
	return previewReturnResponse{
		Groups:            groups,
		TotalLateFees:     preview.TotalLateFees,
		TotalDeliveryCost: preview.TotalDeliveryCost,
		TotalDue:          preview.TotalDue,
	}
}

type transactionResponse struct {
	ID             string          `json:"id"`
	TxType         string          `json:"type"`
	Amount         decimal.Decimal `json:"amount"`
	OrderID        *string         `json:"orderId,omitempty"`
	RentalReturnID *string         `json:"rentalReturnId,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
}

func newTransactionResponses(transactions []queries.GetUserTransactionsQueryResponse) []transactionResponse {
	response := make([]transactionResponse, 0, len(transactions))
	for _, tx := range transactions {
		entry := transactionResponse{
			ID:        tx.ID.String(),
			TxType:    tx.TxType,
			Amount:    tx.Amount,
			CreatedAt: tx.CreatedAt,
		}
		if tx.OrderID != nil {
			s := tx.OrderID.String()
			entry.OrderID = &s
		}
		if tx.RentalReturnID != nil {
			s := tx.RentalReturnID.String()
			entry.RentalReturnID = &s
		}
		response = append(response, entry)
	}
	return response
}
