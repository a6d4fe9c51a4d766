package ports

import (
	"context"

	"containerops/internal/core/domain/model/delivery"
	"containerops/internal/core/domain/model/kernel"
)

// DeliveryRecordRepository is the driver view's store of delivery records.
type DeliveryRecordRepository interface {
	// Add persists a new record. Fails with ErrDuplicateKey when the order already has
	// one or the tracking number is taken.
	Add(ctx context.Context, record *delivery.Record) error

	// Update writes the driver and the status of an existing record.
	Update(ctx context.Context, record *delivery.Record) error

	// Get returns the record or an *errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*delivery.Record, error)

	// GetForUpdate is Get plus a write lock held until the unit of work ends.
	// Driver updates of one record are serialised through it.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*delivery.Record, error)

	// GetByOrderID returns the record created when the order was dispatched,
	// or an *errs.ObjectNotFoundError when it has not been dispatched.
	GetByOrderID(ctx context.Context, orderID string) (*delivery.Record, error)

	// List returns every record, most recently created first.
	List(ctx context.Context) ([]*delivery.Record, error)
}
