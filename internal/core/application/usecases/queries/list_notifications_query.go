package queries

import (
	"context"
	"errors"
	"strings"

	"containerops/internal/core/domain/model/notification"
	"containerops/internal/pkg/guard"
)

// ErrListNotificationsQueryIsNotConstructed is returned by Validate for a zero-value query.
var ErrListNotificationsQueryIsNotConstructed = errors.New(
	"ListNotificationsQuery must be created via NewListNotificationsQuery constructor",
)

// ListNotificationsQuery reads the notification log in append order, for one order
// when orderID is set.
type ListNotificationsQuery struct {
	orderID string

	guard guard.ConstructorGuard
}

// NewListNotificationsQuery builds the query. A blank orderID lists the whole log.
//
// Example:
//
//	all := queries.NewListNotificationsQuery("")
//	one := queries.NewListNotificationsQuery("ORD-1A2B3C4D")
func NewListNotificationsQuery(orderID string) ListNotificationsQuery {
	return ListNotificationsQuery{orderID: strings.TrimSpace(orderID), guard: guard.NewConstructorGuard()}
}

// Validate returns ErrListNotificationsQueryIsNotConstructed unless built by the constructor.
func (q ListNotificationsQuery) Validate() error {
	return q.guard.Validate(ErrListNotificationsQueryIsNotConstructed)
}

// OrderID returns the order filter, empty for the whole log.
func (q ListNotificationsQuery) OrderID() string {
	return q.orderID
}

// ListNotificationsQueryHandler answers ListNotificationsQuery.
type ListNotificationsQueryHandler struct {
	readers ReadersFactory
}

// NewListNotificationsQueryHandler creates the handler over readers.
func NewListNotificationsQueryHandler(readers ReadersFactory) ListNotificationsQueryHandler {
	return ListNotificationsQueryHandler{readers: readers}
}

// Handle returns the log entries in sequence order. An unknown order id yields an
// empty slice, not an error.
func (h ListNotificationsQueryHandler) Handle(ctx context.Context, query ListNotificationsQuery) ([]NotificationView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	log := h.readers.Create().NotificationLog()

	var (
		entries []*notification.Notification
		err     error
	)
	if query.OrderID() != "" {
		entries, err = log.ListByOrder(ctx, query.OrderID())
	} else {
		entries, err = log.List(ctx)
	}
	if err != nil {
		return nil, err
	}

	views := make([]NotificationView, 0, len(entries))
	for _, n := range entries {
		views = append(views, NewNotificationView(n))
	}
	return views, nil
}
