package queries

import (
	"context"
	"errors"
	"strings"
	"time"

	"containerops/internal/core/domain/model/order"
	"containerops/internal/pkg/errs"
	"containerops/internal/pkg/guard"
)

// ErrGetOrderTrackingQueryIsNotConstructed is returned by Validate for a zero-value query.
var ErrGetOrderTrackingQueryIsNotConstructed = errors.New(
	"GetOrderTrackingQuery must be created via NewGetOrderTrackingQuery constructor",
)

// GetOrderTrackingQuery reads what the customer tracking tab shows for one order.
type GetOrderTrackingQuery struct {
	orderID string

	guard guard.ConstructorGuard
}

// NewGetOrderTrackingQuery builds the query for orderID, trimmed of surrounding spaces.
// Returns errs.ValueIsRequiredError when orderID is blank.
func NewGetOrderTrackingQuery(orderID string) (GetOrderTrackingQuery, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return GetOrderTrackingQuery{}, errs.NewValueIsRequiredError("order id")
	}
	return GetOrderTrackingQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate returns ErrGetOrderTrackingQueryIsNotConstructed unless built by the constructor.
func (q GetOrderTrackingQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderTrackingQueryIsNotConstructed)
}

// OrderID returns the trimmed order id.
func (q GetOrderTrackingQuery) OrderID() string {
	return q.orderID
}

// GetOrderTrackingQueryResponse is the customer's view of an order. Delivery is nil
// until the order has been dispatched.
type GetOrderTrackingQueryResponse struct {
	OrderID        string
	Status         order.Status
	TrackingNumber string
	DeliveryDate   time.Time
	Delivery       *DeliveryView
	Notifications  []NotificationView
}

// GetOrderTrackingQueryHandler joins the order, its delivery record and its notifications.
type GetOrderTrackingQueryHandler struct {
	readers ReadersFactory
}

// NewGetOrderTrackingQueryHandler creates the handler over readers.
func NewGetOrderTrackingQueryHandler(readers ReadersFactory) GetOrderTrackingQueryHandler {
	return GetOrderTrackingQueryHandler{readers: readers}
}

// Handle reads the three stores one after the other, each at its own committed state.
//
// Returns:
//   - GetOrderTrackingQueryResponse: Delivery is nil when no record exists yet and
//     Notifications is never nil
//   - error: ErrOrderNotFound for an unknown id, or the first repository error
func (h GetOrderTrackingQueryHandler) Handle(
	ctx context.Context,
	query GetOrderTrackingQuery,
) (GetOrderTrackingQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderTrackingQueryResponse{}, err
	}

	readers := h.readers.Create()
	o, err := readers.OrderRepository().Get(ctx, query.OrderID())
	if err != nil {
		return GetOrderTrackingQueryResponse{}, orderNotFound(err, query.OrderID())
	}

	resp := GetOrderTrackingQueryResponse{
		OrderID:        o.ID(),
		Status:         o.Status(),
		TrackingNumber: o.TrackingNumber(),
		DeliveryDate:   o.Details().DeliveryDate,
	}

	record, err := readers.DeliveryRecordRepository().GetByOrderID(ctx, o.ID())
	switch {
	case err == nil:
		view := NewDeliveryView(record)
		resp.Delivery = &view
	case !errors.Is(err, errs.ErrObjectNotFound):
		return GetOrderTrackingQueryResponse{}, err
	}

	notifications, err := readers.NotificationLog().ListByOrder(ctx, o.ID())
	if err != nil {
		return GetOrderTrackingQueryResponse{}, err
	}
	resp.Notifications = make([]NotificationView, 0, len(notifications))
	for _, n := range notifications {
		resp.Notifications = append(resp.Notifications, NewNotificationView(n))
	}

	return resp, nil
}
