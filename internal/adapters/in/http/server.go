// Package http is the JSON API over the order workflow: booking intake, the admin
// order list and status actions, the driver dashboard, customer tracking and a
// server-sent events stream of order changes.
package http

import (
	"net/http"

	"containerops/internal/core/application/usecases/commands"
	"containerops/internal/core/application/usecases/queries"
	"containerops/internal/core/domain/model/delivery"
	"containerops/internal/core/domain/model/kernel"
	"containerops/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler     commands.CreateOrderCommandHandler
	transitionOrderHandler commands.TransitionOrderCommandHandler
	markOrderSeenHandler   commands.MarkOrderSeenCommandHandler
	assignDriverHandler    commands.AssignDriverCommandHandler
	advanceDeliveryHandler commands.AdvanceDeliveryCommandHandler

	// Query handlers
	listOrdersHandler        queries.ListOrdersQueryHandler
	getOrderHandler          queries.GetOrderQueryHandler
	getOrderTrackingHandler  queries.GetOrderTrackingQueryHandler
	listDeliveriesHandler    queries.ListDeliveriesQueryHandler
	listNotificationsHandler queries.ListNotificationsQueryHandler

	events EventSubscriber
	logger *zap.Logger
}

// Handlers groups the use cases the API exposes.
type Handlers struct {
	CreateOrder       commands.CreateOrderCommandHandler
	TransitionOrder   commands.TransitionOrderCommandHandler
	MarkOrderSeen     commands.MarkOrderSeenCommandHandler
	AssignDriver      commands.AssignDriverCommandHandler
	AdvanceDelivery   commands.AdvanceDeliveryCommandHandler
	ListOrders        queries.ListOrdersQueryHandler
	GetOrder          queries.GetOrderQueryHandler
	GetOrderTracking  queries.GetOrderTrackingQueryHandler
	ListDeliveries    queries.ListDeliveriesQueryHandler
	ListNotifications queries.ListNotificationsQueryHandler
}

func NewServer(handlers Handlers, events EventSubscriber, logger *zap.Logger) *Server {
	return &Server{
		createOrderHandler:       handlers.CreateOrder,
		transitionOrderHandler:   handlers.TransitionOrder,
		markOrderSeenHandler:     handlers.MarkOrderSeen,
		assignDriverHandler:      handlers.AssignDriver,
		advanceDeliveryHandler:   handlers.AdvanceDelivery,
		listOrdersHandler:        handlers.ListOrders,
		getOrderHandler:          handlers.GetOrder,
		getOrderTrackingHandler:  handlers.GetOrderTracking,
		listDeliveriesHandler:    handlers.ListDeliveries,
		listNotificationsHandler: handlers.ListNotifications,
		events:                   events,
		logger:                   logger.Named("http"),
	}
}

// RegisterRoutes mounts the API on e.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.ListOrders)
	api.GET("/orders/:id", s.GetOrder)
	api.GET("/orders/:id/tracking", s.GetOrderTracking)
	api.POST("/orders/:id/transitions", s.TransitionOrder)
	api.POST("/orders/:id/seen", s.MarkOrderSeen)
	api.GET("/deliveries", s.ListDeliveries)
	api.PUT("/deliveries/:id/driver", s.AssignDriver)
	api.PUT("/deliveries/:id/status", s.AdvanceDelivery)
	api.GET("/notifications", s.ListNotifications)
	api.GET("/events", s.StreamEvents)
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	return c.String(http.StatusOK, "Healthy")
}

// CreateOrder handles POST /api/v1/orders - books a new order.
func (s *Server) CreateOrder(c echo.Context) error {
	var req CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return s.writeError(c, err)
	}

	details, err := req.toDetails()
	if err != nil {
		return s.writeError(c, err)
	}

	cmd, err := commands.NewCreateOrderCommand(req.ID, details)
	if err != nil {
		return s.writeError(c, err)
	}

	o, err := s.createOrderHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusCreated, newOrderResponse(queries.NewOrderView(o)))
}

// ListOrders handles GET /api/v1/orders[?status=...] - the admin orders tab.
func (s *Server) ListOrders(c echo.Context) error {
	var statuses []order.Status
	for _, raw := range c.QueryParams()["status"] {
		status, err := order.ParseStatus(raw)
		if err != nil {
			return s.writeError(c, err)
		}
		statuses = append(statuses, status)
	}

	query, err := queries.NewListOrdersQuery(statuses...)
	if err != nil {
		return s.writeError(c, err)
	}

	resp, err := s.listOrdersHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}

	orders := make([]OrderResponse, 0, len(resp.Orders))
	for _, v := range resp.Orders {
		orders = append(orders, newOrderResponse(v))
	}
	return c.JSON(http.StatusOK, OrderListResponse{Orders: orders, Unseen: resp.Unseen})
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(c echo.Context) error {
	query, err := queries.NewGetOrderQuery(c.Param("id"))
	if err != nil {
		return s.writeError(c, err)
	}

	view, err := s.getOrderHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, newOrderResponse(view))
}

// GetOrderTracking handles GET /api/v1/orders/:id/tracking - the customer tracking tab.
func (s *Server) GetOrderTracking(c echo.Context) error {
	query, err := queries.NewGetOrderTrackingQuery(c.Param("id"))
	if err != nil {
		return s.writeError(c, err)
	}

	resp, err := s.getOrderTrackingHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}

	body := TrackingResponse{
		OrderID:        resp.OrderID,
		Status:         resp.Status.String(),
		TrackingNumber: resp.TrackingNumber,
		DeliveryDate:   resp.DeliveryDate.Format(dateLayout),
		Notifications:  make([]NotificationResponse, 0, len(resp.Notifications)),
	}
	if resp.Delivery != nil {
		delivery := newDeliveryResponse(*resp.Delivery)
		body.Delivery = &delivery
	}
	for _, n := range resp.Notifications {
		body.Notifications = append(body.Notifications, newNotificationResponse(n))
	}
	return c.JSON(http.StatusOK, body)
}

// TransitionOrder handles POST /api/v1/orders/:id/transitions - the admin status actions.
func (s *Server) TransitionOrder(c echo.Context) error {
	var req TransitionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return s.writeError(c, err)
	}

	target, err := order.ParseStatus(req.Status)
	if err != nil {
		return s.writeError(c, err)
	}

	cmd, err := commands.NewTransitionOrderCommand(c.Param("id"), target)
	if err != nil {
		return s.writeError(c, err)
	}

	o, err := s.transitionOrderHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, newOrderResponse(queries.NewOrderView(o)))
}

// MarkOrderSeen handles POST /api/v1/orders/:id/seen.
func (s *Server) MarkOrderSeen(c echo.Context) error {
	cmd, err := commands.NewMarkOrderSeenCommand(c.Param("id"))
	if err != nil {
		return s.writeError(c, err)
	}

	if err = s.markOrderSeenHandler.Handle(c.Request().Context(), cmd); err != nil {
		return s.writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// ListDeliveries handles GET /api/v1/deliveries - the driver dashboard.
func (s *Server) ListDeliveries(c echo.Context) error {
	views, err := s.listDeliveriesHandler.Handle(c.Request().Context(), queries.NewListDeliveriesQuery())
	if err != nil {
		return s.writeError(c, err)
	}

	resp := make([]DeliveryResponse, 0, len(views))
	for _, v := range views {
		resp = append(resp, newDeliveryResponse(v))
	}
	return c.JSON(http.StatusOK, resp)
}

// AssignDriver handles PUT /api/v1/deliveries/:id/driver.
func (s *Server) AssignDriver(c echo.Context) error {
	id, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: err.Error()})
	}

	var req AssignDriverRequest
	if err = c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: "Invalid request body"})
	}
	if err = c.Validate(&req); err != nil {
		return s.writeError(c, err)
	}

	cmd, err := commands.NewAssignDriverCommand(id, req.Driver)
	if err != nil {
		return s.writeError(c, err)
	}

	record, err := s.assignDriverHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, newDeliveryResponse(queries.NewDeliveryView(record)))
}

// AdvanceDelivery handles PUT /api/v1/deliveries/:id/status - the driver reports
// progress on a delivery record.
func (s *Server) AdvanceDelivery(c echo.Context) error {
	id, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: err.Error()})
	}

	var req AdvanceDeliveryRequest
	if err = c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Message: "Invalid request body"})
	}
	if err = c.Validate(&req); err != nil {
		return s.writeError(c, err)
	}

	target, err := delivery.ParseStatus(req.Status)
	if err != nil {
		return s.writeError(c, err)
	}

	cmd, err := commands.NewAdvanceDeliveryCommand(id, target)
	if err != nil {
		return s.writeError(c, err)
	}

	record, err := s.advanceDeliveryHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.writeError(c, err)
	}

	return c.JSON(http.StatusOK, newDeliveryResponse(queries.NewDeliveryView(record)))
}

// ListNotifications handles GET /api/v1/notifications[?order_id=].
func (s *Server) ListNotifications(c echo.Context) error {
	query := queries.NewListNotificationsQuery(c.QueryParam("order_id"))

	views, err := s.listNotificationsHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}

	resp := make([]NotificationResponse, 0, len(views))
	for _, v := range views {
		resp = append(resp, newNotificationResponse(v))
	}
	return c.JSON(http.StatusOK, resp)
}
