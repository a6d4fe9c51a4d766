package memory

import (
	"context"
	"fmt"
	"slices"

	"containerops/internal/core/domain/model/delivery"
	"containerops/internal/core/domain/model/kernel"
	"containerops/internal/pkg/errs"
)

// DeliveryRecordRepository is the memory implementation of
// ports.DeliveryRecordRepository. Take it from a UnitOfWork.
type DeliveryRecordRepository struct {
	uow *UnitOfWork
}

// Add stores a new record. An order has at most one record and a tracking number
// belongs to one record.
func (r *DeliveryRecordRepository) Add(ctx context.Context, record *delivery.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	return r.uow.write(ctx, func(st *staging) error {
		if _, ok := r.lookup(record.ID()); ok {
			return fmt.Errorf("delivery record %s: %w", record.ID(), ErrDuplicateKey)
		}
		if _, ok := r.lookupByOrder(record.OrderID()); ok {
			return fmt.Errorf("delivery record for order %s: %w", record.OrderID(), ErrDuplicateKey)
		}
		if r.trackingNumberTaken(record.TrackingNumber()) {
			return fmt.Errorf("delivery record tracking number %s: %w", record.TrackingNumber(), ErrDuplicateKey)
		}
		st.records[record.ID()] = copyRecord(record)
		st.newRecordIDs = append(st.newRecordIDs, record.ID())
		return nil
	})
}

// Update replaces a stored record. A missing record is an *errs.ObjectNotFoundError.
func (r *DeliveryRecordRepository) Update(ctx context.Context, record *delivery.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	return r.uow.write(ctx, func(st *staging) error {
		if _, ok := r.lookup(record.ID()); !ok {
			return errs.NewObjectNotFoundError("delivery record", record.ID())
		}
		st.records[record.ID()] = copyRecord(record)
		return nil
	})
}

// Get returns a copy of the record, staged writes of the unit of work included.
func (r *DeliveryRecordRepository) Get(_ context.Context, id kernel.UUID) (*delivery.Record, error) {
	record, ok := r.lookup(id)
	if !ok {
		return nil, errs.NewObjectNotFoundError("delivery record", id)
	}
	return copyRecord(record), nil
}

// GetForUpdate needs no extra locking: an active unit of work already owns the
// store's only writer slot.
func (r *DeliveryRecordRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*delivery.Record, error) {
	return r.Get(ctx, id)
}

// GetByOrderID returns the record created when the order was dispatched.
func (r *DeliveryRecordRepository) GetByOrderID(_ context.Context, orderID string) (*delivery.Record, error) {
	record, ok := r.lookupByOrder(orderID)
	if !ok {
		return nil, errs.NewObjectNotFoundError("delivery record for order", orderID)
	}
	return copyRecord(record), nil
}

// List returns every record, most recently created first.
func (r *DeliveryRecordRepository) List(_ context.Context) ([]*delivery.Record, error) {
	ids, records := r.uow.store.snapshotRecords()
	if st := r.uow.staged; st != nil {
		ids = append(ids, st.newRecordIDs...)
		for id, record := range st.records {
			records[id] = record
		}
	}

	out := make([]*delivery.Record, 0, len(ids))
	for _, id := range slices.Backward(ids) {
		out = append(out, copyRecord(records[id]))
	}
	return out, nil
}

func (r *DeliveryRecordRepository) lookup(id kernel.UUID) (*delivery.Record, bool) {
	if st := r.uow.staged; st != nil {
		if record, ok := st.records[id]; ok {
			return record, true
		}
	}
	return r.uow.store.record(id)
}

func (r *DeliveryRecordRepository) lookupByOrder(orderID string) (*delivery.Record, bool) {
	if st := r.uow.staged; st != nil {
		for _, record := range st.records {
			if record.OrderID() == orderID {
				return record, true
			}
		}
	}
	id, ok := r.uow.store.recordIDByOrder(orderID)
	if !ok {
		return nil, false
	}
	return r.lookup(id)
}

func (r *DeliveryRecordRepository) trackingNumberTaken(trackingNumber string) bool {
	_, records := r.uow.store.snapshotRecords()
	if st := r.uow.staged; st != nil {
		for id, record := range st.records {
			records[id] = record
		}
	}
	for _, record := range records {
		if record.TrackingNumber() == trackingNumber {
			return true
		}
	}
	return false
}
