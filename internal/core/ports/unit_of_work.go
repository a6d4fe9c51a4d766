package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// Repositories taken from it after Begin share the transaction; before Begin they
// read committed state directly.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	// Commit makes every write of the transaction visible at once.
	Commit(ctx context.Context) error

	// Rollback discards the writes. Returns an error when no transaction is active,
	// which callers deferring it after a successful Commit ignore.
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	DeliveryRecordRepository() DeliveryRecordRepository
	NotificationLog() NotificationLog
}
