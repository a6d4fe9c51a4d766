package commands

import (
	"containerops/internal/core/domain/model/delivery"
	"containerops/internal/core/domain/model/notification"
	"containerops/internal/core/domain/model/order"
)

// The side effects a transition runs. services provides the implementations.
type (
	TrackingNumberGenerator interface {
		Generate() string
	}

	DeliveryRecordFactory interface {
		Create(o *order.Order, trackingNumber string) (*delivery.Record, error)
	}

	NotificationEmitter interface {
		Emit(o *order.Order, typ notification.Type, trackingNumber string) (*notification.Notification, error)
	}
)
