package order

import "time"

// EventType is the wire name of an order event, used as the kafka event-type header
// and the SSE event field.
type EventType string

const (
	EventCreated       EventType = "order.created"
	EventStatusChanged EventType = "order.status_changed"
	EventSeen          EventType = "order.seen"
)

// Event tells subscribers what happened to an order. Views re-read the order
// when they need more than the event carries.
type Event struct {
	Type           EventType
	OrderID        string
	Status         Status
	PreviousStatus Status
	TrackingNumber string
	IsNew          bool
	OccurredAt     time.Time
}

// NewCreatedEvent announces a new order from the booking intake.
func NewCreatedEvent(o *Order, at time.Time) Event {
	return Event{
		Type:       EventCreated,
		OrderID:    o.ID(),
		Status:     o.Status(),
		IsNew:      o.IsNew(),
		OccurredAt: at,
	}
}

// NewStatusChangedEvent reports a committed transition from previous to o.Status().
func NewStatusChangedEvent(o *Order, previous Status, at time.Time) Event {
	return Event{
		Type:           EventStatusChanged,
		OrderID:        o.ID(),
		Status:         o.Status(),
		PreviousStatus: previous,
		TrackingNumber: o.TrackingNumber(),
		IsNew:          o.IsNew(),
		OccurredAt:     at,
	}
}

// NewSeenEvent reports that an admin cleared the new flag.
func NewSeenEvent(o *Order, at time.Time) Event {
	return Event{
		Type:           EventSeen,
		OrderID:        o.ID(),
		Status:         o.Status(),
		TrackingNumber: o.TrackingNumber(),
		OccurredAt:     at,
	}
}
