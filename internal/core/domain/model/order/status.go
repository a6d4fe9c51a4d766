package order

import (
	"fmt"

	"containerops/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Pending ──> Confirmed ──> InTransit ──> Delivered ──┬──> Returned
//	                                                    └──> Completed
//
// The allowed edges and the side effects attached to them live in the
// transition table, see Transitions.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status of a submitted booking or purchase request.
	Pending

	// Confirmed means the business accepted the order. The customer has been notified.
	Confirmed

	// InTransit means the container left the depot. The order carries a tracking
	// number and a delivery record exists for the driver.
	InTransit

	// Delivered means the container reached the customer.
	Delivered

	// Returned is terminal: a rented container came back.
	Returned

	// Completed is terminal: the order is closed.
	Completed
)

var statusStrings = map[Status]string{
	Pending:   "pending",
	Confirmed: "confirmed",
	InTransit: "in-transit",
	Delivered: "delivered",
	Returned:  "returned",
	Completed: "completed",
}

// AllStatuses lists the valid statuses in lifecycle order.
func AllStatuses() []Status {
	return []Status{Pending, Confirmed, InTransit, Delivered, Returned, Completed}
}

// ParseStatus maps the wire form ("pending", "in-transit", ...) back to a Status.
func ParseStatus(s string) (Status, error) {
	for status, str := range statusStrings {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid.
//
// Unknown (0) and any value outside the declared constants are invalid. Used for
// statuses coming from the database or the API.
func (s Status) Validate() error {
	if _, ok := statusStrings[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire form of the status, "unknown" for invalid values.
func (s Status) String() string {
	if str, ok := statusStrings[s]; ok {
		return str
	}
	return "unknown"
}

// Rank orders statuses along the lifecycle. Returned and Completed share the last
// rank since they are alternative endings after Delivered.
func (s Status) Rank() int {
	switch s {
	case Pending:
		return 1
	case Confirmed:
		return 2
	case InTransit:
		return 3
	case Delivered:
		return 4
	case Returned, Completed:
		return 5
	default:
		return 0
	}
}

// IsTerminal reports whether no edge leaves the status.
func (s Status) IsTerminal() bool {
	for _, edge := range transitions {
		if edge.From == s {
			return false
		}
	}
	return true
}

// HasTrackingNumber reports whether an order in this status must carry a tracking number.
func (s Status) HasTrackingNumber() bool {
	return s.Rank() >= InTransit.Rank()
}

// TransitionTo resolves the edge from s to target.
//
// Returns:
//   - the Edge, with the side effects the move requires, when target is a defined successor of s
//   - *InvalidTransitionError otherwise, including requests for the current status
//
// Example:
//
//	edge, err := order.Confirmed.TransitionTo(order.InTransit)
//	// edge.Effects: GenerateTrackingNumber, CreateDeliveryRecord, NotifyDeliveryStarted
func (s Status) TransitionTo(target Status) (Edge, error) {
	for _, edge := range transitions {
		if edge.From == s && edge.To == target {
			return edge.clone(), nil
		}
	}
	return Edge{}, NewInvalidTransitionError(s, target)
}
