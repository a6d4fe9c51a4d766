package order

import (
	"errors"
	"fmt"
	"slices"
)

// ErrInvalidTransition is the sentinel behind every *InvalidTransitionError.
var ErrInvalidTransition = errors.New("invalid order status transition")

// Effect is a side effect the state machine must run before applying an edge.
type Effect int

const (
	EffectUnknown Effect = iota
	EffectGenerateTrackingNumber
	EffectCreateDeliveryRecord
	EffectNotifyOrderConfirmed
	EffectNotifyDeliveryStarted
)

// String returns the effect name used in logs.
func (e Effect) String() string {
	switch e {
	case EffectGenerateTrackingNumber:
		return "generate_tracking_number"
	case EffectCreateDeliveryRecord:
		return "create_delivery_record"
	case EffectNotifyOrderConfirmed:
		return "notify_order_confirmed"
	case EffectNotifyDeliveryStarted:
		return "notify_delivery_started"
	default:
		return "unknown"
	}
}

// Edge is one row of the transition table. Effects run in slice order.
type Edge struct {
	From    Status
	To      Status
	Effects []Effect
}

// Has reports whether the edge requires the effect.
func (e Edge) Has(effect Effect) bool {
	return slices.Contains(e.Effects, effect)
}

func (e Edge) clone() Edge {
	e.Effects = slices.Clone(e.Effects)
	return e
}

// Tracking number generation precedes the delivery record and the notification,
// both of which carry it.
var transitions = []Edge{
	{From: Pending, To: Confirmed, Effects: []Effect{EffectNotifyOrderConfirmed}},
	{From: Confirmed, To: InTransit, Effects: []Effect{
		EffectGenerateTrackingNumber,
		EffectCreateDeliveryRecord,
		EffectNotifyDeliveryStarted,
	}},
	{From: InTransit, To: Delivered},
	{From: Delivered, To: Returned},
	{From: Delivered, To: Completed},
}

// Transitions returns a copy of the transition table.
func Transitions() []Edge {
	out := make([]Edge, 0, len(transitions))
	for _, edge := range transitions {
		out = append(out, edge.clone())
	}
	return out
}

// Successors lists the statuses reachable from s in one step.
func (s Status) Successors() []Status {
	var out []Status
	for _, edge := range transitions {
		if edge.From == s {
			out = append(out, edge.To)
		}
	}
	return out
}

// InvalidTransitionError carries both sides of a rejected transition so callers can
// explain the conflict, e.g. "order already in-transit".
type InvalidTransitionError struct {
	Current   Status
	Attempted Status
}

// NewInvalidTransitionError creates the error for a move from current to attempted.
func NewInvalidTransitionError(current, attempted Status) *InvalidTransitionError {
	return &InvalidTransitionError{Current: current, Attempted: attempted}
}

// Error implements the error interface, e.g. "invalid order status transition:
// cannot move from pending to delivered".
func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: cannot move from %s to %s", ErrInvalidTransition, e.Current, e.Attempted)
}

// Unwrap exposes ErrInvalidTransition to errors.Is.
func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}
