// Package http exposes the dispatch core over a REST API.
// It translates HTTP requests into commands and queries and maps domain
// errors onto status codes; no business rules live here.
package http

import (
	"errors"
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Handlers bundles the command and query handlers the server routes to.
type Handlers struct {
	CreateOrder    commands.CreateOrderCommandHandler
	ConfirmOrder   commands.ConfirmOrderCommandHandler
	MarkOrderReady commands.MarkOrderReadyCommandHandler
	CancelOrder    commands.CancelOrderCommandHandler

	CreateCourier       commands.CreateCourierCommandHandler
	ApproveCourier      commands.ApproveCourierCommandHandler
	ReportCourierStatus commands.ReportCourierStatusCommandHandler

	AcceptDelivery   commands.AcceptDeliveryCommandHandler
	CollectDelivery  commands.CollectDeliveryCommandHandler
	CompleteDelivery commands.CompleteDeliveryCommandHandler
	CancelDelivery   commands.CancelDeliveryCommandHandler

	GetReadyOrders      queries.GetReadyOrdersQueryHandler
	GetActiveDeliveries queries.GetActiveDeliveriesQueryHandler
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers Handlers
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(handlers Handlers) *Server {
	return &Server{handlers: handlers}
}

// RegisterRoutes mounts all API routes on the given echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.POST("/orders/:id/confirm", s.ConfirmOrder)
	api.POST("/orders/:id/ready", s.MarkOrderReady)
	api.POST("/orders/:id/cancel", s.CancelOrder)
	api.GET("/orders/ready", s.GetReadyOrders)

	api.POST("/couriers", s.CreateCourier)
	api.POST("/couriers/:id/approve", s.ApproveCourier)
	api.POST("/couriers/:id/status", s.ReportCourierStatus)

	api.POST("/deliveries/:id/accept", s.AcceptDelivery)
	api.POST("/deliveries/:id/collect", s.CollectDelivery)
	api.POST("/deliveries/:id/delivered", s.CompleteDelivery)
	api.POST("/deliveries/:id/cancel", s.CancelDelivery)
	api.GET("/deliveries/active", s.GetActiveDeliveries)
}

// errorBody is the JSON error envelope returned on failures.
type errorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// orderItemRequest is one order line in the create-order payload.
type orderItemRequest struct {
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
}

// createOrderRequest is the POST /orders payload.
type createOrderRequest struct {
	RestaurantID    string  `json:"restaurant_id"`
	PickupLatitude  float64 `json:"pickup_latitude"`
	PickupLongitude float64 `json:"pickup_longitude"`

	Street           string   `json:"street"`
	Number           string   `json:"number"`
	Complement       string   `json:"complement"`
	Neighborhood     string   `json:"neighborhood"`
	City             string   `json:"city"`
	PostalCode       string   `json:"postal_code"`
	DropoffLatitude  *float64 `json:"dropoff_latitude"`
	DropoffLongitude *float64 `json:"dropoff_longitude"`

	Items         []orderItemRequest `json:"items"`
	PaymentMethod string             `json:"payment_method"`

	Subtotal    string  `json:"subtotal"`
	DeliveryFee string  `json:"delivery_fee"`
	ServiceFee  string  `json:"service_fee"`
	Discount    string  `json:"discount"`
	Tendered    *string `json:"tendered"`
}

// CreateOrder handles POST /api/v1/orders - registers a new pending order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req createOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	restaurantID, err := kernel.UUIDFromString(req.RestaurantID)
	if err != nil {
		return badRequest(ctx, "Invalid restaurant id: "+err.Error())
	}

	items := make([]commands.CreateOrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, commands.CreateOrderItem{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(commands.CreateOrderParams{
		OrderID:          orderID,
		RestaurantID:     restaurantID,
		PickupLatitude:   req.PickupLatitude,
		PickupLongitude:  req.PickupLongitude,
		Street:           req.Street,
		Number:           req.Number,
		Complement:       req.Complement,
		Neighborhood:     req.Neighborhood,
		City:             req.City,
		PostalCode:       req.PostalCode,
		DropoffLatitude:  req.DropoffLatitude,
		DropoffLongitude: req.DropoffLongitude,
		Items:            items,
		PaymentMethod:    req.PaymentMethod,
		Subtotal:         req.Subtotal,
		DeliveryFee:      req.DeliveryFee,
		ServiceFee:       req.ServiceFee,
		Discount:         req.Discount,
		Tendered:         req.Tendered,
	})
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if err := s.handlers.CreateOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": orderID.String()})
}

// ConfirmOrder handles POST /api/v1/orders/:id/confirm.
func (s *Server) ConfirmOrder(ctx echo.Context) error {
	orderID, err := pathID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewConfirmOrderCommand(orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.handlers.ConfirmOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// MarkOrderReady handles POST /api/v1/orders/:id/ready - reconciles cash,
// marks the order ready, and dispatches a courier if one is available.
func (s *Server) MarkOrderReady(ctx echo.Context) error {
	orderID, err := pathID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewMarkOrderReadyCommand(orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.handlers.MarkOrderReady.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// cancelOrderRequest is the POST /orders/:id/cancel payload.
type cancelOrderRequest struct {
	Note string `json:"note"`
}

// CancelOrder handles POST /api/v1/orders/:id/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := pathID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid order id")
	}

	var req cancelOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewCancelOrderCommand(orderID, req.Note)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.handlers.CancelOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetReadyOrders handles GET /api/v1/orders/ready - the ready-order board.
func (s *Server) GetReadyOrders(ctx echo.Context) error {
	query := queries.NewGetReadyOrdersQuery()

	orders, err := s.handlers.GetReadyOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve ready orders")
	}

	type readyOrderResponse struct {
		ID        string  `json:"id"`
		Total     string  `json:"total"`
		CourierID *string `json:"courier_id"`
		Latitude  float64 `json:"pickup_latitude"`
		Longitude float64 `json:"pickup_longitude"`
	}

	response := make([]readyOrderResponse, 0, len(orders))
	for _, o := range orders {
		var courierID *string
		if o.CourierID != nil {
			id := o.CourierID.String()
			courierID = &id
		}

		response = append(response, readyOrderResponse{
			ID:        o.ID.String(),
			Total:     o.Total,
			CourierID: courierID,
			Latitude:  o.Pickup.Latitude(),
			Longitude: o.Pickup.Longitude(),
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// createCourierRequest is the POST /couriers payload.
type createCourierRequest struct {
	Name    string `json:"name"`
	Vehicle string `json:"vehicle"`
}

// CreateCourier handles POST /api/v1/couriers - onboards a new courier.
func (s *Server) CreateCourier(ctx echo.Context) error {
	var req createCourierRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	courierID := kernel.NewUUID()
	cmd, err := commands.NewCreateCourierCommand(courierID, req.Name, req.Vehicle)
	if err != nil {
		return badRequest(ctx, "Invalid courier data: "+err.Error())
	}

	if err := s.handlers.CreateCourier.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": courierID.String()})
}

// ApproveCourier handles POST /api/v1/couriers/:id/approve.
func (s *Server) ApproveCourier(ctx echo.Context) error {
	courierID, err := pathID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid courier id")
	}

	cmd, err := commands.NewApproveCourierCommand(courierID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.handlers.ApproveCourier.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// reportCourierStatusRequest is the POST /couriers/:id/status payload.
type reportCourierStatusRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Available bool    `json:"available"`
}

// ReportCourierStatus handles POST /api/v1/couriers/:id/status - the courier
// app reporting position and shift state.
func (s *Server) ReportCourierStatus(ctx echo.Context) error {
	courierID, err := pathID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid courier id")
	}

	var req reportCourierStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewReportCourierStatusCommand(courierID, req.Latitude, req.Longitude, req.Available)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.handlers.ReportCourierStatus.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// courierActionRequest identifies the courier acting on a delivery.
type courierActionRequest struct {
	CourierID string `json:"courier_id"`
}

// AcceptDelivery handles POST /api/v1/deliveries/:id/accept.
func (s *Server) AcceptDelivery(ctx echo.Context) error {
	deliveryID, courierID, err := deliveryActor(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewAcceptDeliveryCommand(deliveryID, courierID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.handlers.AcceptDelivery.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CollectDelivery handles POST /api/v1/deliveries/:id/collect.
func (s *Server) CollectDelivery(ctx echo.Context) error {
	deliveryID, courierID, err := deliveryActor(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewCollectDeliveryCommand(deliveryID, courierID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.handlers.CollectDelivery.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CompleteDelivery handles POST /api/v1/deliveries/:id/delivered - the
// courier handing the order to the customer, completing the order.
func (s *Server) CompleteDelivery(ctx echo.Context) error {
	deliveryID, courierID, err := deliveryActor(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewCompleteDeliveryCommand(deliveryID, courierID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.handlers.CompleteDelivery.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelDelivery handles POST /api/v1/deliveries/:id/cancel - abandons an
// in-flight delivery and returns the order to the dispatch pool.
func (s *Server) CancelDelivery(ctx echo.Context) error {
	deliveryID, err := pathID(ctx)
	if err != nil {
		return badRequest(ctx, "Invalid delivery id")
	}

	cmd, err := commands.NewCancelDeliveryCommand(deliveryID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.handlers.CancelDelivery.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetActiveDeliveries handles GET /api/v1/deliveries/active.
func (s *Server) GetActiveDeliveries(ctx echo.Context) error {
	query := queries.NewGetActiveDeliveriesQuery()

	deliveries, err := s.handlers.GetActiveDeliveries.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve active deliveries")
	}

	type activeDeliveryResponse struct {
		ID         string  `json:"id"`
		OrderID    string  `json:"order_id"`
		CourierID  string  `json:"courier_id"`
		Status     string  `json:"status"`
		DistanceKm float64 `json:"distance_km"`
		Payout     string  `json:"payout"`
	}

	response := make([]activeDeliveryResponse, 0, len(deliveries))
	for _, d := range deliveries {
		response = append(response, activeDeliveryResponse{
			ID:         d.ID.String(),
			OrderID:    d.OrderID.String(),
			CourierID:  d.CourierID.String(),
			Status:     d.Status,
			DistanceKm: d.DistanceKm,
			Payout:     d.Payout,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// pathID parses the :id path parameter as a UUID.
func pathID(ctx echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param("id"))
}

// deliveryActor parses the delivery ID from the path and the acting courier
// from the request body.
func deliveryActor(ctx echo.Context) (kernel.UUID, kernel.UUID, error) {
	deliveryID, err := pathID(ctx)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, errors.New("invalid delivery id")
	}

	var req courierActionRequest
	if err := ctx.Bind(&req); err != nil {
		return kernel.UUID{}, kernel.UUID{}, errors.New("invalid request body")
	}

	courierID, err := kernel.UUIDFromString(req.CourierID)
	if err != nil {
		return kernel.UUID{}, kernel.UUID{}, errors.New("invalid courier id")
	}

	return deliveryID, courierID, nil
}

// domainError maps a use case failure onto an HTTP status code.
// Lifecycle violations and lost races are conflicts the client can retry or
// refresh from; rejected cash payments are unprocessable rather than
// malformed.
func domainError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return respond(ctx, http.StatusNotFound, err)
	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, delivery.ErrInvalidTransition),
		errors.Is(err, delivery.ErrAlreadyAssigned),
		errors.Is(err, errs.ErrConflictingUpdate),
		errors.Is(err, order.ErrCourierNotAssigned),
		errors.Is(err, commands.ErrCourierHasActiveDelivery):
		return respond(ctx, http.StatusConflict, err)
	case errors.Is(err, services.ErrInsufficientPayment),
		errors.Is(err, services.ErrDenominationNotAccepted),
		errors.Is(err, services.ErrInvalidAmount):
		return respond(ctx, http.StatusUnprocessableEntity, err)
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return respond(ctx, http.StatusBadRequest, err)
	default:
		return internalError(ctx, "Internal server error")
	}
}

func respond(ctx echo.Context, code int, err error) error {
	return ctx.JSON(code, errorBody{Code: code, Message: err.Error()})
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, errorBody{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func internalError(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusInternalServerError, errorBody{
		Code:    http.StatusInternalServerError,
		Message: message,
	})
}
