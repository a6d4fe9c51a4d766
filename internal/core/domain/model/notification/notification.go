// Package notification holds the customer-facing messages produced by order
// transitions. Notifications form an append-only log; once appended they never change.
package notification

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"containerops/internal/core/domain/model/kernel"
	"containerops/internal/pkg/errs"
)

var (
	// ErrNotificationIsNotConstructed is returned by Validate for a Notification built
	// as a struct literal.
	ErrNotificationIsNotConstructed = errors.New("Notification must be created via NewNotification constructor")

	// ErrSequenceIsAssigned is returned when AssignSequence runs on an appended notification.
	ErrSequenceIsAssigned = errors.New("notification sequence is already assigned")
)

// Type names the transition a notification reports. It is the wire form used in the
// views, the kafka payload and the database.
type Type string

const (
	// TypeOrderConfirmed is emitted by pending -> confirmed.
	TypeOrderConfirmed Type = "order_confirmed"

	// TypeDeliveryStarted is emitted by confirmed -> in-transit and quotes the
	// tracking number.
	TypeDeliveryStarted Type = "delivery_started"
)

// Validate accepts the declared types only.
//
// Returns:
//   - errs.ValueIsInvalidError for any other value, the empty string included
func (t Type) Validate() error {
	switch t {
	case TypeOrderConfirmed, TypeDeliveryStarted:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("notification type", fmt.Errorf("%q is not a known type", string(t)))
}

// Notification is one entry of the notification log.
//
// Notification follows these invariants:
//   - id, order id, email, message and creation time are always set
//   - a delivery_started notification carries the tracking number
//   - the sequence is assigned once, by the log, and is positive from then on
type Notification struct {
	id             kernel.UUID
	orderID        string
	email          string
	message        string
	typ            Type
	trackingNumber string
	createdAt      time.Time

	// position in the log, 0 until appended
	sequence int64

	isConstructed bool
}

// NewNotification validates a notification before it is appended.
// delivery_started notifications must carry the tracking number.
//
// Parameters:
//   - id: fresh identifier
//   - orderID, email: the order and the customer address taken from it
//   - message: the rendered text
//   - typ: the transition that produced it
//   - trackingNumber: required for TypeDeliveryStarted, empty otherwise
//   - createdAt: emission time
//
// Returns:
//   - *Notification: with sequence 0, ready for NotificationLog.Append
//   - error: the joined validation errors otherwise
func NewNotification(
	id kernel.UUID,
	orderID, email, message string,
	typ Type,
	trackingNumber string,
	createdAt time.Time,
) (*Notification, error) {
	n := &Notification{
		id:             id,
		orderID:        orderID,
		email:          email,
		message:        message,
		typ:            typ,
		trackingNumber: trackingNumber,
		createdAt:      createdAt,
		isConstructed:  true,
	}
	if err := n.check(); err != nil {
		return nil, err
	}
	return n, nil
}

// RestoreNotification rebuilds an appended notification from storage. The sequence
// must be positive. Use it only in repositories.
func RestoreNotification(
	id kernel.UUID,
	orderID, email, message string,
	typ Type,
	trackingNumber string,
	createdAt time.Time,
	sequence int64,
) (*Notification, error) {
	n, err := NewNotification(id, orderID, email, message, typ, trackingNumber, createdAt)
	if err != nil {
		return nil, err
	}
	if err = n.AssignSequence(sequence); err != nil {
		return nil, err
	}
	return n, nil
}

func (n *Notification) check() error {
	var orderErr, emailErr, messageErr, trackingErr, createdErr error
	if strings.TrimSpace(n.orderID) == "" {
		orderErr = errs.NewValueIsRequiredError("order id")
	}
	if strings.TrimSpace(n.email) == "" {
		emailErr = errs.NewValueIsRequiredError("email")
	}
	if strings.TrimSpace(n.message) == "" {
		messageErr = errs.NewValueIsRequiredError("message")
	}
	if n.typ == TypeDeliveryStarted && strings.TrimSpace(n.trackingNumber) == "" {
		trackingErr = errs.NewValueIsRequiredError("tracking number")
	}
	if n.createdAt.IsZero() {
		createdErr = errs.NewValueIsRequiredError("created at")
	}
	return errors.Join(n.id.Validate(), orderErr, emailErr, messageErr, n.typ.Validate(), trackingErr, createdErr)
}

// Validate reports ErrNotificationIsNotConstructed for a nil or zero-value Notification.
func (n *Notification) Validate() error {
	if n == nil || !n.isConstructed {
		return ErrNotificationIsNotConstructed
	}
	return nil
}

// AssignSequence records the log position. Only the notification log calls it, once.
func (n *Notification) AssignSequence(sequence int64) error {
	if n.sequence != 0 {
		return ErrSequenceIsAssigned
	}
	if sequence <= 0 {
		return errs.NewValueIsOutOfRangeError("sequence", sequence, int64(1), int64(math.MaxInt64))
	}
	n.sequence = sequence
	return nil
}

// ID returns the notification identifier.
func (n *Notification) ID() kernel.UUID {
	return n.id
}

// OrderID returns the order the message is about.
func (n *Notification) OrderID() string {
	return n.orderID
}

// Email returns the customer address the message goes to.
func (n *Notification) Email() string {
	return n.email
}

// Message returns the rendered text sent to the customer.
func (n *Notification) Message() string {
	return n.message
}

// Type returns which transition produced the notification.
func (n *Notification) Type() Type {
	return n.typ
}

// TrackingNumber returns the tracking number quoted in the message, empty for order_confirmed.
func (n *Notification) TrackingNumber() string {
	return n.trackingNumber
}

// CreatedAt returns when the transition emitted the notification.
func (n *Notification) CreatedAt() time.Time {
	return n.createdAt
}

// Sequence returns the position in the log, 0 until the notification is appended.
func (n *Notification) Sequence() int64 {
	return n.sequence
}
