package services

import (
	"fmt"
	"time"

	"containerops/internal/core/domain/model/kernel"
	"containerops/internal/core/domain/model/notification"
	"containerops/internal/core/domain/model/order"
)

const (
	orderConfirmedTemplate  = "Your order %s has been confirmed. We will be in touch to arrange delivery."
	deliveryStartedTemplate = "Your order %s is on its way. Tracking number: %s."
)

// NotificationEmitter builds the customer message for a transition. The text is
// deterministic: it depends only on the type, the order id and the tracking number.
//
// Emit does not append to the notification log; the state machine appends the
// returned notification inside its unit of work, once per call.
type NotificationEmitter struct {
	now func() time.Time
}

func NewNotificationEmitter() NotificationEmitter {
	return NotificationEmitter{now: time.Now}
}

func NewNotificationEmitterWithClock(now func() time.Time) NotificationEmitter {
	return NotificationEmitter{now: now}
}

// Emit builds a notification addressed to the order's customer.
//
// Returns:
//   - the notification; trackingNumber is kept only for delivery_started
//   - a validation error for an unknown type or a delivery_started without tracking number
func (e NotificationEmitter) Emit(o *order.Order, typ notification.Type, trackingNumber string) (*notification.Notification, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if err := typ.Validate(); err != nil {
		return nil, err
	}

	var message string
	switch typ {
	case notification.TypeOrderConfirmed:
		message = fmt.Sprintf(orderConfirmedTemplate, o.ID())
		trackingNumber = ""
	case notification.TypeDeliveryStarted:
		message = fmt.Sprintf(deliveryStartedTemplate, o.ID(), trackingNumber)
	}

	now := time.Now
	if e.now != nil {
		now = e.now
	}

	return notification.NewNotification(
		kernel.NewUUID(),
		o.ID(),
		o.Details().Customer.Email(),
		message,
		typ,
		trackingNumber,
		now(),
	)
}
