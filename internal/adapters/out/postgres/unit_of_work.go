// Package postgres is the production store: a GORM unit of work over the orders,
// delivery_records and notifications tables.
//
// One unit of work is one database transaction shared by the three repositories,
// so a transition either persists its status change together with every side effect
// or persists nothing.
//
// Basic Transaction Management:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	o, err := uow.OrderRepository().GetForUpdate(ctx, orderID)
//	if err != nil {
//	    return err
//	}
//	// ... change o, append notifications ...
//	if err := uow.OrderRepository().Upsert(ctx, o); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Concurrency Considerations:
//   - Each UnitOfWork instance owns one transaction; do not share it between goroutines
//   - GetForUpdate takes a row lock, so transitions of one order queue up in the database
//   - NotificationLog.Append takes a transaction-scoped advisory lock, so log sequences
//     follow commit order
//
// Repositories obtained before Begin, or after Commit/Rollback, run on the plain
// connection in autocommit mode.
package postgres

import (
	"context"

	"containerops/internal/adapters/out/postgres/deliveryrepo"
	"containerops/internal/adapters/out/postgres/notificationrepo"
	"containerops/internal/adapters/out/postgres/orderrepo"
	"containerops/internal/core/ports"

	"gorm.io/gorm"
)

// TrackedAggregate is an aggregate written during the unit of work.
type TrackedAggregate struct {
	ID        string
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances using GORM database connections.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
// Open db with gorm.Config{TranslateError: true} so duplicate ids surface as
// gorm.ErrDuplicatedKey, which the repositories wrap in ports.ErrDuplicateKey.
//
// Example:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
//	if err != nil {
//	    return err
//	}
//	factory := NewGormUnitOfWorkFactory(db)
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork instance with no transaction open.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return f.CreateGorm()
}

// CreateGorm is Create returning the concrete type, for callers that read
// TrackedAggregates.
func (f *GormUnitOfWorkFactory) CreateGorm() *GormUnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]TrackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and records the aggregates
// its repositories wrote.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []TrackedAggregate
}

// Begin initiates a new database transaction for the unit of work.
// Multiple calls to Begin on the same instance are safe and will not create nested transactions.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}

	uow.tx = tx
	return nil
}

// Commit finalizes all changes made within the current transaction.
// Returns gorm.ErrInvalidTransaction if no transaction is active.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards all changes made within the current transaction and forgets the
// aggregates tracked since Begin.
// Returns gorm.ErrInvalidTransaction if no transaction is active.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

// OrderRepository provides access to order persistence within the unit of work.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

// DeliveryRecordRepository provides access to delivery record persistence within
// the unit of work.
func (uow *GormUnitOfWork) DeliveryRecordRepository() ports.DeliveryRecordRepository {
	return deliveryrepo.NewGormDeliveryRecordRepository(uow.conn(), uow)
}

// NotificationLog provides access to the notification log within the unit of work.
func (uow *GormUnitOfWork) NotificationLog() ports.NotificationLog {
	return notificationrepo.NewGormNotificationLog(uow.conn(), uow)
}

// TrackAggregate registers an aggregate as written within this unit of work.
// Repositories call it after every successful write.
func (uow *GormUnitOfWork) TrackAggregate(id string, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, TrackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

// TrackedAggregates returns the aggregates written since the unit of work was created,
// in write order.
func (uow *GormUnitOfWork) TrackedAggregates() []TrackedAggregate {
	out := make([]TrackedAggregate, len(uow.trackedAggregates))
	copy(out, uow.trackedAggregates)
	return out
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
