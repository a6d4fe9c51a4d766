package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"containerops/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrTrackingNumberIsSet is returned when an edge would replace an existing tracking number.
	ErrTrackingNumberIsSet = errors.New("tracking number is already set")
)

// Order is a customer's rental or purchase request. It is the aggregate root of the
// order lifecycle.
//
// Order follows these invariants:
//   - The identifier is non-empty and never changes
//   - Status changes only through ApplyTransition, along an edge of the transition table
//   - The tracking number is set exactly when the status reaches in-transit and is never replaced
//   - The new flag is only cleared through MarkSeen
type Order struct {
	id      string
	details Details

	status         Status
	trackingNumber string
	isNew          bool
	createdAt      time.Time

	isConstructed bool
}

// NewOrder creates a pending order flagged as new.
//
// Parameters:
//   - id: order identifier, non-empty (the intake generates ORD-XXXXXXXX values)
//   - details: validated booking details, see Details.Validate
//   - createdAt: submission time
//
// Returns:
//   - *Order: the created order if all validations pass
//   - error: the joined validation errors otherwise
func NewOrder(id string, details Details, createdAt time.Time) (*Order, error) {
	order := &Order{
		status:        Pending,
		isNew:         true,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setDetails(details),
		order.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// RestoreOrder rebuilds an order loaded from storage. Besides the NewOrder checks it
// verifies that the status and tracking number agree with each other.
func RestoreOrder(
	id string,
	details Details,
	status Status,
	trackingNumber string,
	isNew bool,
	createdAt time.Time,
) (*Order, error) {
	order := &Order{
		isNew:         isNew,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setDetails(details),
		order.setCreatedAt(createdAt),
		order.setStatus(status, trackingNumber),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// Validate ensures the Order instance was built through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares orders by id.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id == other.id
}

// ID returns the order identifier, e.g. ORD-1A2B3C4D.
func (o *Order) ID() string {
	return o.id
}

// Details returns the booking data captured at intake.
func (o *Order) Details() Details {
	return o.details
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// TrackingNumber returns the number attached on dispatch, empty before in-transit.
func (o *Order) TrackingNumber() string {
	return o.trackingNumber
}

// IsNew reports whether an admin has not looked at the order yet.
func (o *Order) IsNew() bool {
	return o.isNew
}

// CreatedAt returns the intake time.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// DeliveryOption is a shortcut for Details().DeliveryOption.
func (o *Order) DeliveryOption() DeliveryOption {
	return o.details.DeliveryOption
}

// ApplyTransition moves the order along edge.
//
// This method enforces the following business rules:
//   - edge.From must be the current status
//   - edges that generate a tracking number need a non-empty one, and the order must not have one yet
//   - every other edge must not carry a tracking number
//
// Returns:
//   - nil on success; the status is then edge.To
//   - *InvalidTransitionError when the order is not in edge.From
//   - a validation error for tracking number problems, leaving the order untouched
func (o *Order) ApplyTransition(edge Edge, trackingNumber string) error {
	if o.status != edge.From {
		return NewInvalidTransitionError(o.status, edge.To)
	}
	if _, err := o.status.TransitionTo(edge.To); err != nil {
		return err
	}

	if edge.Has(EffectGenerateTrackingNumber) {
		if o.trackingNumber != "" {
			return ErrTrackingNumberIsSet
		}
		if strings.TrimSpace(trackingNumber) == "" {
			return errs.NewValueIsRequiredError("tracking number")
		}
		o.trackingNumber = trackingNumber
	} else if trackingNumber != "" {
		return errs.NewValueIsInvalidErrorWithCause(
			"tracking number",
			fmt.Errorf("%s -> %s does not attach a tracking number", edge.From, edge.To),
		)
	}

	o.status = edge.To
	return nil
}

// MarkSeen clears the new flag. Status is untouched.
func (o *Order) MarkSeen() {
	o.isNew = false
}

func (o *Order) setID(id string) error {
	if strings.TrimSpace(id) == "" {
		return errs.NewValueIsRequiredError("order id")
	}
	o.id = id
	return nil
}

func (o *Order) setDetails(details Details) error {
	if err := details.Validate(); err != nil {
		return err
	}
	o.details = details
	return nil
}

func (o *Order) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("created at")
	}
	o.createdAt = createdAt
	return nil
}

func (o *Order) setStatus(status Status, trackingNumber string) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if status.HasTrackingNumber() != (trackingNumber != "") {
		return errs.NewValueIsInvalidErrorWithCause(
			"tracking number",
			fmt.Errorf("%s order with tracking number %q", status, trackingNumber),
		)
	}
	o.status = status
	o.trackingNumber = trackingNumber
	return nil
}
