// Package logsink stands in for the external email/SMS sender when no broker is
// configured: notifications are written to the service log instead.
package logsink

import (
	"context"

	"containerops/internal/core/domain/model/notification"

	"go.uber.org/zap"
)

type NotificationDispatcher struct {
	logger *zap.Logger
}

func NewNotificationDispatcher(logger *zap.Logger) *NotificationDispatcher {
	return &NotificationDispatcher{logger: logger.Named("notifications")}
}

func (d *NotificationDispatcher) Dispatch(_ context.Context, n *notification.Notification) error {
	d.logger.Info("notification dispatched",
		zap.Int64("sequence", n.Sequence()),
		zap.String("order_id", n.OrderID()),
		zap.String("email", n.Email()),
		zap.String("type", string(n.Type())),
		zap.String("tracking_number", n.TrackingNumber()),
		zap.String("message", n.Message()),
	)
	return nil
}
