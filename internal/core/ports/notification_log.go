package ports

import (
	"context"

	"containerops/internal/core/domain/model/notification"
)

// NotificationLog is append-only. Entries are never updated or removed.
type NotificationLog interface {
	// Append stores the notification and assigns its sequence, one higher than the
	// last committed entry.
	Append(ctx context.Context, n *notification.Notification) error

	// ListByOrder returns the order's notifications in log order.
	ListByOrder(ctx context.Context, orderID string) ([]*notification.Notification, error)

	// ListAfter returns at most limit entries with a sequence greater than after.
	ListAfter(ctx context.Context, after int64, limit int) ([]*notification.Notification, error)

	// List returns the whole log in order.
	List(ctx context.Context) ([]*notification.Notification, error)
}
