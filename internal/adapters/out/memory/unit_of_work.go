package memory

import (
	"context"

	"containerops/internal/core/ports"
)

// UnitOfWorkFactory hands out units of work over one shared Store.
// It implements ports.UnitOfWorkFactory.
type UnitOfWorkFactory struct {
	store *Store
}

// NewUnitOfWorkFactory binds the factory to store.
//
// Example:
//
//	factory := memory.NewUnitOfWorkFactory(memory.NewStore())
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

// Create returns a fresh unit of work. It holds nothing until Begin.
func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{store: f.store}
}

// UnitOfWork stages the writes of one command and applies them together on Commit.
// Without Begin, every repository write commits on its own.
//
// UnitOfWork is not safe for concurrent use; create one per command.
type UnitOfWork struct {
	store  *Store
	staged *staging
}

// Begin waits for the writer slot. Calling Begin twice is a no-op.
func (u *UnitOfWork) Begin(ctx context.Context) error {
	if u.staged != nil {
		return nil
	}

	select {
	case u.store.writer <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}

	u.staged = newStaging()
	return nil
}

// Commit applies the staged writes and releases the writer slot.
// Returns ErrNoTransaction when Begin was not called.
func (u *UnitOfWork) Commit(_ context.Context) error {
	if u.staged == nil {
		return ErrNoTransaction
	}

	u.store.apply(u.staged)
	u.release()
	return nil
}

// Rollback drops the staged writes and releases the writer slot.
// Returns ErrNoTransaction when nothing is active, e.g. after Commit.
func (u *UnitOfWork) Rollback(_ context.Context) error {
	if u.staged == nil {
		return ErrNoTransaction
	}

	u.release()
	return nil
}

func (u *UnitOfWork) release() {
	u.staged = nil
	<-u.store.writer
}

// OrderRepository returns the order store view of this unit of work.
func (u *UnitOfWork) OrderRepository() ports.OrderRepository {
	return &OrderRepository{uow: u}
}

// DeliveryRecordRepository returns the delivery record view of this unit of work.
func (u *UnitOfWork) DeliveryRecordRepository() ports.DeliveryRecordRepository {
	return &DeliveryRecordRepository{uow: u}
}

// NotificationLog returns the notification log view of this unit of work.
func (u *UnitOfWork) NotificationLog() ports.NotificationLog {
	return &NotificationLog{uow: u}
}

// write runs fn against the active staging, or against a one-off staging committed
// right away when no unit of work is active.
func (u *UnitOfWork) write(ctx context.Context, fn func(st *staging) error) error {
	if u.staged != nil {
		return fn(u.staged)
	}

	if err := u.Begin(ctx); err != nil {
		return err
	}
	if err := fn(u.staged); err != nil {
		_ = u.Rollback(ctx)
		return err
	}
	return u.Commit(ctx)
}
