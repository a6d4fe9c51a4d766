package services

import (
	"time"

	"containerops/internal/core/domain/model/delivery"
	"containerops/internal/core/domain/model/kernel"
	"containerops/internal/core/domain/model/order"
)

// DeliveryRecordFactory derives the driver-facing record from an order being dispatched.
//
// The record gets a fresh id, the tracking number verbatim, driver Unassigned and
// status pending. Collection orders produce a record with an empty destination;
// that is accepted, not an error.
type DeliveryRecordFactory struct {
	now func() time.Time
}

func NewDeliveryRecordFactory() DeliveryRecordFactory {
	return DeliveryRecordFactory{now: time.Now}
}

func NewDeliveryRecordFactoryWithClock(now func() time.Time) DeliveryRecordFactory {
	return DeliveryRecordFactory{now: now}
}

// Create builds the record. It only fails for an order that was not built through a
// constructor or an empty tracking number.
func (f DeliveryRecordFactory) Create(o *order.Order, trackingNumber string) (*delivery.Record, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	d := o.Details()
	source := delivery.Source{
		OrderID:       o.ID(),
		Container:     d.Container,
		Customer:      d.Customer,
		Destination:   d.Address,
		ScheduledDate: d.DeliveryDate,
		Notes:         d.SpecialRequirements,
	}

	now := time.Now
	if f.now != nil {
		now = f.now
	}
	return delivery.NewRecord(kernel.NewUUID(), source, trackingNumber, now())
}
