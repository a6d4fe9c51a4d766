package delivery

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"containerops/internal/core/domain/model/kernel"
	"containerops/internal/core/domain/model/order"
	"containerops/internal/pkg/errs"
)

// Unassigned is the driver name of a record nobody has picked up yet.
const Unassigned = "Unassigned"

// ErrRecordIsNotConstructed is returned by Validate for a Record built as a struct
// literal instead of through NewRecord or RestoreRecord.
var ErrRecordIsNotConstructed = errors.New("Record must be created via NewRecord constructor")

// Source is the part of an order copied onto its delivery record. The record keeps
// its own copy, so later changes to the order never reach the driver view.
type Source struct {
	OrderID       string
	Container     order.Container
	Customer      kernel.Contact
	Destination   kernel.Address
	ScheduledDate time.Time
	Notes         string
}

// Record is the driver-facing work item for a dispatched order.
//
// Record follows these invariants:
//   - The identifier is a fresh UUID, never the order id
//   - The tracking number is non-empty and is the one attached to the order
//   - The driver is never empty; Unassigned until AssignDriver is called
//   - The destination may be zero (collection orders)
//   - The status only moves forward along Pending, InTransit, Delivered, Completed
//   - A completed record keeps its driver
type Record struct {
	id             kernel.UUID
	source         Source
	trackingNumber string
	driver         string
	status         Status
	createdAt      time.Time

	isConstructed bool
}

// NewRecord creates a pending, unassigned record.
//
// Parameters:
//   - id: fresh identifier of the record, never the order id
//   - source: the order data the driver needs
//   - trackingNumber: the tracking number attached to the order on dispatch
//   - createdAt: dispatch time
//
// Returns:
//   - *Record: the record if id, source and tracking number are valid
//   - error: the joined validation errors otherwise
func NewRecord(id kernel.UUID, source Source, trackingNumber string, createdAt time.Time) (*Record, error) {
	r := &Record{
		driver:        Unassigned,
		status:        Pending,
		isConstructed: true,
	}

	if err := errors.Join(
		r.setID(id),
		r.setSource(source),
		r.setTrackingNumber(trackingNumber),
		r.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}
	return r, nil
}

// RestoreRecord rebuilds a record loaded from storage.
//
// Unlike NewRecord it takes the driver and the status as stored and validates them.
// Use it only in repositories.
func RestoreRecord(
	id kernel.UUID,
	source Source,
	trackingNumber string,
	driver string,
	status Status,
	createdAt time.Time,
) (*Record, error) {
	r := &Record{isConstructed: true}

	if err := errors.Join(
		r.setID(id),
		r.setSource(source),
		r.setTrackingNumber(trackingNumber),
		r.setDriver(driver),
		r.setStatus(status),
		r.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}
	return r, nil
}

// Validate reports ErrRecordIsNotConstructed for a nil or zero-value Record.
// Repositories call it before persisting.
func (r *Record) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRecordIsNotConstructed
	}
	return nil
}

// ID returns the record identifier, distinct from the order id.
func (r *Record) ID() kernel.UUID {
	return r.id
}

// OrderID returns the id of the dispatched order.
func (r *Record) OrderID() string {
	return r.source.OrderID
}

// Container returns the container to deliver.
func (r *Record) Container() order.Container {
	return r.source.Container
}

// Customer returns who receives the container.
func (r *Record) Customer() kernel.Contact {
	return r.source.Customer
}

// Destination returns the delivery address, zero for collection orders.
func (r *Record) Destination() kernel.Address {
	return r.source.Destination
}

// ScheduledDate returns the delivery date agreed at booking.
func (r *Record) ScheduledDate() time.Time {
	return r.source.ScheduledDate
}

// Notes returns the special requirements copied from the booking.
func (r *Record) Notes() string {
	return r.source.Notes
}

// TrackingNumber returns the tracking number attached to the order on dispatch.
func (r *Record) TrackingNumber() string {
	return r.trackingNumber
}

// Driver returns the assigned driver, Unassigned until AssignDriver succeeds.
func (r *Record) Driver() string {
	return r.driver
}

// Status returns the progress reported by the driver.
func (r *Record) Status() Status {
	return r.status
}

// CreatedAt returns the dispatch time.
func (r *Record) CreatedAt() time.Time {
	return r.createdAt
}

// IsAssigned reports whether a named driver has the record.
func (r *Record) IsAssigned() bool {
	return r.driver != Unassigned
}

// IsCompleted reports whether the driver closed the job. A completed record refuses
// driver changes.
func (r *Record) IsCompleted() bool {
	return r.status == Completed
}

// AssignDriver puts a named driver on the record. Reassignment is allowed until the
// record is completed.
//
// Returns:
//   - errs.ValueIsInvalidError when the record is completed
//   - errs.ValueIsRequiredError for a blank name or the Unassigned placeholder
func (r *Record) AssignDriver(name string) error {
	if r.status == Completed {
		return errs.NewValueIsInvalidErrorWithCause(
			"delivery status",
			fmt.Errorf("cannot assign a driver to a %s delivery", r.status),
		)
	}
	name = strings.TrimSpace(name)
	if name == "" || name == Unassigned {
		return errs.NewValueIsRequiredError("driver")
	}
	r.driver = name
	return nil
}

// Advance moves the record to the next status reported by the driver.
//
// Parameters:
//   - target: must be the successor of the current status
//
// Returns:
//   - errs.ValueIsInvalidError for an invalid target status
//   - *StatusChangeError (errors.Is ErrInvalidStatusChange) when target does not
//     follow the current status, including a repeat of the current one
//
// Example:
//
//	err := record.Advance(delivery.InTransit) // pending -> in-transit
//	err = record.Advance(delivery.Completed)  // rejected: in-transit -> completed skips delivered
func (r *Record) Advance(target Status) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if !r.status.CanAdvanceTo(target) {
		return NewStatusChangeError(r.status, target)
	}
	r.status = target
	return nil
}

func (r *Record) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *Record) setSource(source Source) error {
	var orderErr, dateErr error
	if strings.TrimSpace(source.OrderID) == "" {
		orderErr = errs.NewValueIsRequiredError("order id")
	}
	if source.ScheduledDate.IsZero() {
		dateErr = errs.NewValueIsRequiredError("scheduled date")
	}
	if err := errors.Join(orderErr, dateErr, source.Container.Validate(), source.Customer.Validate()); err != nil {
		return err
	}
	r.source = source
	return nil
}

func (r *Record) setTrackingNumber(trackingNumber string) error {
	if strings.TrimSpace(trackingNumber) == "" {
		return errs.NewValueIsRequiredError("tracking number")
	}
	r.trackingNumber = trackingNumber
	return nil
}

func (r *Record) setDriver(driver string) error {
	if strings.TrimSpace(driver) == "" {
		return errs.NewValueIsRequiredError("driver")
	}
	r.driver = driver
	return nil
}

func (r *Record) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	r.status = status
	return nil
}

func (r *Record) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("created at")
	}
	r.createdAt = createdAt
	return nil
}
