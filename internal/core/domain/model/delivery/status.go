package delivery

import (
	"errors"
	"fmt"

	"containerops/internal/pkg/errs"
)

// ErrInvalidStatusChange is the sentinel behind every *StatusChangeError.
var ErrInvalidStatusChange = errors.New("invalid delivery status change")

// Status is the progress of a delivery record as reported by the driver. It moves
// on its own and is never derived from the order status.
//
// Status changes:
//
//	Pending ──> InTransit ──> Delivered ──> Completed
//
// Each status has at most one successor and Completed is terminal. A completed
// record no longer accepts driver assignments.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status: the record waits for a driver to pick it up.
	Pending

	// InTransit means the driver is on the way with the container.
	InTransit

	// Delivered means the driver dropped the container at the destination.
	Delivered

	// Completed is terminal: the driver closed the job.
	Completed
)

var statusStrings = map[Status]string{
	Pending:   "pending",
	InTransit: "in-transit",
	Delivered: "delivered",
	Completed: "completed",
}

// successors is the status change table of a delivery record.
var successors = map[Status]Status{
	Pending:   InTransit,
	InTransit: Delivered,
	Delivered: Completed,
}

// ParseStatus maps the wire form ("pending", "in-transit", ...) back to a Status.
//
// Returns:
//   - Status: the parsed status
//   - error: errs.ValueIsInvalidError for any other string, including "unknown"
func ParseStatus(s string) (Status, error) {
	for status, str := range statusStrings {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("delivery status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is one of the declared constants other than Unknown.
// Used for statuses coming from the database or the API.
func (s Status) Validate() error {
	if _, ok := statusStrings[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("delivery status", fmt.Errorf("%d is not a valid status", s))
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

// Next returns the single status reachable from s, false when s is terminal or invalid.
//
// Example:
//
//	next, ok := delivery.InTransit.Next()
//	// next == delivery.Delivered, ok == true
func (s Status) Next() (Status, bool) {
	next, ok := successors[s]
	return next, ok
}

// CanAdvanceTo reports whether target is the successor of s.
func (s Status) CanAdvanceTo(target Status) bool {
	next, ok := s.Next()
	return ok && next == target
}

// IsTerminal reports whether no status change leaves s.
func (s Status) IsTerminal() bool {
	_, ok := s.Next()
	return !ok
}

// StatusChangeError carries both sides of a rejected status change so callers can
// explain the conflict, e.g. "delivery already completed".
type StatusChangeError struct {
	Current   Status
	Attempted Status
}

// NewStatusChangeError creates the error for a move from current to attempted.
func NewStatusChangeError(current, attempted Status) *StatusChangeError {
	return &StatusChangeError{Current: current, Attempted: attempted}
}

// Error implements the error interface, e.g. "invalid delivery status change:
// cannot move from pending to completed".
func (e *StatusChangeError) Error() string {
	return fmt.Sprintf("%s: cannot move from %s to %s", ErrInvalidStatusChange, e.Current, e.Attempted)
}

// Unwrap exposes ErrInvalidStatusChange to errors.Is.
func (e *StatusChangeError) Unwrap() error {
	return ErrInvalidStatusChange
}
