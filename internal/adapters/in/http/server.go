// Package http exposes the application use cases over a JSON API.
// Handlers translate requests into commands and queries, and domain
// errors into status codes; no business logic lives here.
package http

import (
	"errors"
	"net/http"

	"bookrider/internal/core/application/usecases/commands"
	"bookrider/internal/core/application/usecases/queries"
	"bookrider/internal/core/domain/model/cart"
	"bookrider/internal/core/domain/model/kernel"
	"bookrider/internal/core/domain/model/navigation"
	"bookrider/internal/core/domain/model/order"
	"bookrider/internal/core/domain/model/quote"
	"bookrider/internal/core/domain/model/rental"
	"bookrider/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Identity headers. Authentication itself lives upstream; the gateway
// forwards the authenticated principal here.
const (
	headerUserID = "X-User-Id"
)

// Handlers bundles the use case handlers the server dispatches to.
type Handlers struct {
	GenerateQuote        commands.GenerateQuoteCommandHandler
	AddQuoteOptionToCart commands.AddQuoteOptionToCartCommandHandler
	SetDeliveryAddress   commands.SetDeliveryAddressCommandHandler
	UpdateCartQuantity   commands.UpdateCartQuantityCommandHandler
	RemoveCartSubItem    commands.RemoveCartSubItemCommandHandler
	Checkout             commands.CheckoutCommandHandler
	AcceptOrder          commands.AcceptOrderCommandHandler
	AssignDriver         commands.AssignDriverCommandHandler
	PickUpOrder          commands.PickUpOrderCommandHandler
	DeliverOrder         commands.DeliverOrderCommandHandler
	CancelOrder          commands.CancelOrderCommandHandler
	CreateRentalReturn   commands.CreateRentalReturnCommandHandler
	CompleteRentalReturn commands.CompleteRentalReturnCommandHandler

	GetCart             queries.GetCartQueryHandler
	GetUserOrders       queries.GetUserOrdersQueryHandler
	GetUserRentals      queries.GetUserRentalsQueryHandler
	GetUserTransactions queries.GetUserTransactionsQueryHandler
	PreviewRentalReturn queries.PreviewRentalReturnQueryHandler
}

// Server dispatches HTTP requests to the application use cases.
type Server struct {
	handlers Handlers
}

// NewServer creates a new HTTP server over the given handlers.
func NewServer(handlers Handlers) *Server {
	return &Server{handlers: handlers}
}

// RegisterRoutes mounts all API endpoints on the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/quotes", s.GenerateQuote)

	api.GET("/cart", s.GetCart)
	api.PUT("/cart/address", s.SetDeliveryAddress)
	api.POST("/cart/items", s.AddQuoteOptionToCart)
	api.PATCH("/cart/items/:subItemID", s.UpdateCartQuantity)
	api.DELETE("/cart/items/:subItemID", s.RemoveCartSubItem)
	api.POST("/cart/checkout", s.Checkout)

	api.GET("/orders", s.GetOrders)
	api.POST("/orders/:orderID/accept", s.AcceptOrder)
	api.POST("/orders/:orderID/driver", s.AssignDriver)
	api.POST("/orders/:orderID/pickup", s.PickUpOrder)
	api.POST("/orders/:orderID/delivery", s.DeliverOrder)
	api.POST("/orders/:orderID/cancel", s.CancelOrder)

	api.GET("/rentals", s.GetRentals)
	api.POST("/returns", s.CreateRentalReturn)
	api.POST("/returns/preview", s.PreviewRentalReturn)
	api.POST("/returns/:returnID/complete", s.CompleteRentalReturn)

	api.GET("/transactions", s.GetTransactions)
}

// GenerateQuote handles POST /api/v1/quotes.
func (s *Server) GenerateQuote(ctx echo.Context) error {
	userID, err := requireUserID(ctx)
	if err != nil {
		return err
	}

	var request struct {
		BookID   string `json:"bookId"`
		Quantity int    `json:"quantity"`
	}
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	bookID, err := kernel.UUIDFromString(request.BookID)
	if err != nil {
		return badRequest(ctx, "Invalid book identifier")
	}

	cmd, err := commands.NewGenerateQuoteCommand(userID, bookID, request.Quantity)
	if err != nil {
		return writeError(ctx, err)
	}

	generated, err := s.handlers.GenerateQuote.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, newQuoteResponse(generated))
}

// GetCart handles GET /api/v1/cart.
func (s *Server) GetCart(ctx echo.Context) error {
	userID, err := requireUserID(ctx)
	if err != nil {
		return err
	}

	query, err := queries.NewGetCartQuery(userID)
	if err != nil {
		return writeError(ctx, err)
	}

	response, err := s.handlers.GetCart.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, newCartResponse(response))
}

// SetDeliveryAddress handles PUT /api/v1/cart/address.
func (s *Server) SetDeliveryAddress(ctx echo.Context) error {
	userID, err := requireUserID(ctx)
	if err != nil {
		return err
	}

	var request struct {
		Street     string `json:"street"`
		City       string `json:"city"`
		PostalCode string `json:"postalCode"`
	}
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewSetDeliveryAddressCommand(userID, request.Street, request.City, request.PostalCode)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.handlers.SetDeliveryAddress.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AddQuoteOptionToCart handles POST /api/v1/cart/items.
func (s *Server) AddQuoteOptionToCart(ctx echo.Context) error {
	userID, err := requireUserID(ctx)
	if err != nil {
		return err
	}

	var request struct {
		QuoteID  string `json:"quoteId"`
		OptionID string `json:"optionId"`
	}
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	quoteID, err := kernel.UUIDFromString(request.QuoteID)
	if err != nil {
		return badRequest(ctx, "Invalid quote identifier")
	}
	optionID, err := kernel.UUIDFromString(request.OptionID)
	if err != nil {
		return badRequest(ctx, "Invalid option identifier")
	}

	cmd, err := commands.NewAddQuoteOptionToCartCommand(userID, quoteID, optionID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.handlers.AddQuoteOptionToCart.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// UpdateCartQuantity handles PATCH /api/v1/cart/items/:subItemID.
func (s *Server) UpdateCartQuantity(ctx echo.Context) error {
	userID, err := requireUserID(ctx)
	if err != nil {
		return err
	}
	subItemID, err := kernel.UUIDFromString(ctx.Param("subItemID"))
	if err != nil {
		return badRequest(ctx, "Invalid sub-item identifier")
	}

	var request struct {
		Quantity int `json:"quantity"`
	}
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewUpdateCartQuantityCommand(userID, subItemID, request.Quantity)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.handlers.UpdateCartQuantity.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RemoveCartSubItem handles DELETE /api/v1/cart/items/:subItemID.
func (s *Server) RemoveCartSubItem(ctx echo.Context) error {
	userID, err := requireUserID(ctx)
	if err != nil {
		return err
	}
	subItemID, err := kernel.UUIDFromString(ctx.Param("subItemID"))
	if err != nil {
		return badRequest(ctx, "Invalid sub-item identifier")
	}

	cmd, err := commands.NewRemoveCartSubItemCommand(userID, subItemID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.handlers.RemoveCartSubItem.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// Checkout handles POST /api/v1/cart/checkout.
func (s *Server) Checkout(ctx echo.Context) error {
	userID, err := requireUserID(ctx)
	if err != nil {
		return err
	}

	var request struct {
		NoteToDriver string `json:"noteToDriver"`
	}
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCheckoutCommand(userID, request.NoteToDriver)
	if err != nil {
		return writeError(ctx, err)
	}

	orders, err := s.handlers.Checkout.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, newOrderResponses(orders))
}

// GetOrders handles GET /api/v1/orders.
func (s *Server) GetOrders(ctx echo.Context) error {
	userID, err := requireUserID(ctx)
	if err != nil {
		return err
	}

	query, err := queries.NewGetUserOrdersQuery(userID)
	if err != nil {
		return writeError(ctx, err)
	}

	orders, err := s.handlers.GetUserOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, newOrderHistoryResponse(orders))
}

// AcceptOrder handles POST /api/v1/orders/:orderID/accept.
func (s *Server) AcceptOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return badRequest(ctx, "Invalid order identifier")
	}

	var request struct {
		LibrarianID string `json:"librarianId"`
	}
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewAcceptOrderCommand(orderID, request.LibrarianID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.handlers.AcceptOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AssignDriver handles POST /api/v1/orders/:orderID/driver.
func (s *Server) AssignDriver(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return badRequest(ctx, "Invalid order identifier")
	}

	var request struct {
		DriverID string `json:"driverId"`
	}
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewAssignDriverCommand(orderID, request.DriverID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.handlers.AssignDriver.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// PickUpOrder handles POST /api/v1/orders/:orderID/pickup.
func (s *Server) PickUpOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return badRequest(ctx, "Invalid order identifier")
	}

	var request struct {
		DriverID string `json:"driverId"`
	}
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewPickUpOrderCommand(orderID, request.DriverID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.handlers.PickUpOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DeliverOrder handles POST /api/v1/orders/:orderID/delivery.
func (s *Server) DeliverOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return badRequest(ctx, "Invalid order identifier")
	}

	var request struct {
		DriverID  string  `json:"driverId"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
		PhotoURL  string  `json:"photoUrl"`
	}
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewDeliverOrderCommand(
		orderID, request.DriverID, request.Latitude, request.Longitude, request.PhotoURL)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.handlers.DeliverOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelOrder handles POST /api/v1/orders/:orderID/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	userID, err := requireUserID(ctx)
	if err != nil {
		return err
	}
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return badRequest(ctx, "Invalid order identifier")
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, userID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.handlers.CancelOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetRentals handles GET /api/v1/rentals.
func (s *Server) GetRentals(ctx echo.Context) error {
	userID, err := requireUserID(ctx)
	if err != nil {
		return err
	}

	query, err := queries.NewGetUserRentalsQuery(userID)
	if err != nil {
		return writeError(ctx, err)
	}

	rentals, err := s.handlers.GetUserRentals.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, newRentalResponses(rentals))
}

// returnItemsFromRequest converts request lines to domain return items.
func returnItemsFromRequest(lines []struct {
	RentalID string `json:"rentalId"`
	Quantity int    `json:"quantity"`
}) ([]rental.ReturnItem, error) {
	items := make([]rental.ReturnItem, 0, len(lines))
	for _, line := range lines {
		rentalID, err := kernel.UUIDFromString(line.RentalID)
		if err != nil {
			return nil, err
		}
		item, err := rental.NewReturnItem(rentalID, line.Quantity)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// CreateRentalReturn handles POST /api/v1/returns.
func (s *Server) CreateRentalReturn(ctx echo.Context) error {
	userID, err := requireUserID(ctx)
	if err != nil {
		return err
	}

	var request struct {
		Items []struct {
			RentalID string `json:"rentalId"`
			Quantity int    `json:"quantity"`
		} `json:"items"`
		InPerson bool `json:"inPerson"`
	}
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	items, err := returnItemsFromRequest(request.Items)
	if err != nil {
		return writeError(ctx, err)
	}

	cmd, err := commands.NewCreateRentalReturnCommand(userID, items, request.InPerson)
	if err != nil {
		return writeError(ctx, err)
	}

	returns, err := s.handlers.CreateRentalReturn.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, newRentalReturnResponses(returns))
}

// PreviewRentalReturn handles POST /api/v1/returns/preview.
func (s *Server) PreviewRentalReturn(ctx echo.Context) error {
	userID, err := requireUserID(ctx)
	if err != nil {
		return err
	}

	var request struct {
		Items []struct {
			RentalID string `json:"rentalId"`
			Quantity int    `json:"quantity"`
		} `json:"items"`
		InPerson bool `json:"inPerson"`
	}
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}
	items, err := returnItemsFromRequest(request.Items)
	if err != nil {
		return writeError(ctx, err)
	}

	query, err := queries.NewPreviewRentalReturnQuery(userID, items, request.InPerson)
	if err != nil {
		return writeError(ctx, err)
	}

	preview, err := s.handlers.PreviewRentalReturn.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, newPreviewReturnResponse(preview))
}

// CompleteRentalReturn handles POST /api/v1/returns/:returnID/complete.
func (s *Server) CompleteRentalReturn(ctx echo.Context) error {
	returnID, err := kernel.UUIDFromString(ctx.Param("returnID"))
	if err != nil {
		return badRequest(ctx, "Invalid return identifier")
	}

	var request struct {
		LibrarianID string `json:"librarianId"`
	}
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCompleteRentalReturnCommand(returnID, request.LibrarianID)
	if err != nil {
		return writeError(ctx, err)
	}

	if err = s.handlers.CompleteRentalReturn.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetTransactions handles GET /api/v1/transactions.
func (s *Server) GetTransactions(ctx echo.Context) error {
	userID, err := requireUserID(ctx)
	if err != nil {
		return err
	}

	query, err := queries.NewGetUserTransactionsQuery(userID)
	if err != nil {
		return writeError(ctx, err)
	}

	transactions, err := s.handlers.GetUserTransactions.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, newTransactionResponses(transactions))
}

// requireUserID reads the authenticated user from the request headers.
func requireUserID(ctx echo.Context) (string, error) {
	userID := ctx.Request().Header.Get(headerUserID)
	if userID == "" {
		return "", ctx.JSON(http.StatusUnauthorized, Error{
			Code:    http.StatusUnauthorized,
			Message: "Missing " + headerUserID + " header",
		})
	}
	return userID, nil
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// writeError maps domain errors to status codes. Unclassified errors
// become a bare 500 so internals never leak to clients.
func writeError(ctx echo.Context, err error) error {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		return ctx.JSON(status, Error{
			Code:    status,
			Message: "Internal server error",
		})
	}
	return ctx.JSON(status, Error{
		Code:    status,
		Message: err.Error(),
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrConcurrentModification),
		errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, rental.ErrOverReturn),
		errors.Is(err, rental.ErrRentalAlreadyReturned),
		errors.Is(err, rental.ErrReturnAlreadyCompleted):
		return http.StatusConflict
	case errors.Is(err, navigation.ErrExternalAPIFailure):
		return http.StatusBadGateway
	case errors.Is(err, order.ErrNotOrderDriver):
		return http.StatusForbidden
	case errors.Is(err, navigation.ErrInvalidCoordinates),
		errors.Is(err, navigation.ErrInvalidTransportProfile),
		errors.Is(err, navigation.ErrNoRouteFound),
		errors.Is(err, navigation.ErrAddressNotFound),
		errors.Is(err, quote.ErrQuoteExpired),
		errors.Is(err, cart.ErrDeliveryAddressRequired),
		errors.Is(err, cart.ErrEmptyCart),
		errors.Is(err, order.ErrDriverTooFar),
		errors.Is(err, order.ErrDestinationNotGeocoded):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrValueIsRequired), errors.Is(err, errs.ErrValueIsInvalid):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
