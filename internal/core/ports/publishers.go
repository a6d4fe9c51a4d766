package ports

import (
	"context"

	"containerops/internal/core/domain/model/notification"
	"containerops/internal/core/domain/model/order"
)

// EventPublisher pushes order events to whatever keeps the views in sync.
// It is called after commit, so a failure never undoes the change.
type EventPublisher interface {
	Publish(ctx context.Context, event order.Event) error
}

// NotificationDispatcher hands a logged notification to the external email/SMS sender.
type NotificationDispatcher interface {
	Dispatch(ctx context.Context, n *notification.Notification) error
}
