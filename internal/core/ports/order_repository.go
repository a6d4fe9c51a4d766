// Package ports defines the contracts between the order workflow and its
// infrastructure: repositories, the unit of work that binds them to one transaction,
// and the outbound publishers.
package ports

import (
	"context"

	"containerops/internal/core/domain/model/order"
)

// OrderRepository is the Order Store. It exclusively owns order records.
type OrderRepository interface {
	// Add persists a new order. Fails if the id is already taken.
	Add(ctx context.Context, aggregate *order.Order) error

	// Upsert writes the order, inserting it when absent.
	Upsert(ctx context.Context, aggregate *order.Order) error

	// Get returns the order or an *errs.ObjectNotFoundError.
	Get(ctx context.Context, id string) (*order.Order, error)

	// GetForUpdate is Get plus a write lock held until the unit of work ends.
	// Transitions of one order are serialised through it.
	GetForUpdate(ctx context.Context, id string) (*order.Order, error)

	// List returns every order, most recently created first.
	List(ctx context.Context) ([]*order.Order, error)

	// MarkSeen clears the new flag and leaves everything else untouched.
	MarkSeen(ctx context.Context, id string) error
}
