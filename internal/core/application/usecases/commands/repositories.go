// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"containerops/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	DeliveryRepoFactory interface {
		DeliveryRecordRepository() ports.DeliveryRecordRepository
	}

	NotificationLogFactory interface {
		NotificationLog() ports.NotificationLog
	}

	// OrderUoW manages transactions for order-only operations: intake and mark seen.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// DeliveryUoW manages transactions on delivery records only, used by the driver dashboard.
	DeliveryUoW interface {
		TxManager
		DeliveryRepoFactory
	}

	DeliveryUoWFactory interface {
		Create() DeliveryUoW
	}

	// UoW spans the order, its delivery record and the notification log. The order
	// state machine writes all three or none.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   o, err := uow.OrderRepository().GetForUpdate(ctx, id)
	//   // ... run side effects against uow.DeliveryRecordRepository() and uow.NotificationLog()
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		DeliveryRepoFactory
		NotificationLogFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)
