package memory

import (
	"context"
	"fmt"
	"slices"

	"containerops/internal/core/domain/model/order"
	"containerops/internal/pkg/errs"
)

// OrderRepository is the memory implementation of ports.OrderRepository.
// Take it from a UnitOfWork.
type OrderRepository struct {
	uow *UnitOfWork
}

// Add stores a new order. A taken id or tracking number fails with ErrDuplicateKey.
func (r *OrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	return r.uow.write(ctx, func(st *staging) error {
		if _, ok := r.lookup(aggregate.ID()); ok {
			return fmt.Errorf("order %s: %w", aggregate.ID(), ErrDuplicateKey)
		}
		if err := r.checkTrackingNumber(st, aggregate); err != nil {
			return err
		}
		st.orders[aggregate.ID()] = copyOrder(aggregate)
		st.newOrderIDs = append(st.newOrderIDs, aggregate.ID())
		return nil
	})
}

// Upsert inserts or replaces the order. A tracking number held by another order fails
// with ErrDuplicateKey.
func (r *OrderRepository) Upsert(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	return r.uow.write(ctx, func(st *staging) error {
		if err := r.checkTrackingNumber(st, aggregate); err != nil {
			return err
		}
		if _, ok := r.lookup(aggregate.ID()); !ok {
			st.newOrderIDs = append(st.newOrderIDs, aggregate.ID())
		}
		st.orders[aggregate.ID()] = copyOrder(aggregate)
		return nil
	})
}

// Get returns a copy of the order, staged writes of the unit of work included.
func (r *OrderRepository) Get(_ context.Context, id string) (*order.Order, error) {
	o, ok := r.lookup(id)
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id)
	}
	return copyOrder(o), nil
}

// GetForUpdate needs no extra locking: an active unit of work already owns the
// store's only writer slot.
func (r *OrderRepository) GetForUpdate(ctx context.Context, id string) (*order.Order, error) {
	return r.Get(ctx, id)
}

// List returns every order, most recently created first.
func (r *OrderRepository) List(_ context.Context) ([]*order.Order, error) {
	ids, orders := r.uow.store.snapshotOrders()
	if st := r.uow.staged; st != nil {
		ids = append(ids, st.newOrderIDs...)
		for id, o := range st.orders {
			orders[id] = o
		}
	}

	out := make([]*order.Order, 0, len(ids))
	for _, id := range slices.Backward(ids) {
		out = append(out, copyOrder(orders[id]))
	}
	return out, nil
}

// MarkSeen clears the new flag and leaves the rest of the order untouched.
func (r *OrderRepository) MarkSeen(ctx context.Context, id string) error {
	return r.uow.write(ctx, func(st *staging) error {
		o, ok := r.lookup(id)
		if !ok {
			return errs.NewObjectNotFoundError("order", id)
		}
		seen := copyOrder(o)
		seen.MarkSeen()
		st.orders[id] = seen
		return nil
	})
}

// checkTrackingNumber enforces one order per tracking number, committed or staged.
func (r *OrderRepository) checkTrackingNumber(st *staging, aggregate *order.Order) error {
	tn := aggregate.TrackingNumber()
	if tn == "" {
		return nil
	}
	for id, staged := range st.orders {
		if id != aggregate.ID() && staged.TrackingNumber() == tn {
			return fmt.Errorf("tracking number %s: %w", tn, ErrDuplicateKey)
		}
	}
	if owner, ok := r.uow.store.orderIDByTrackingNumber(tn); ok && owner != aggregate.ID() {
		return fmt.Errorf("tracking number %s: %w", tn, ErrDuplicateKey)
	}
	return nil
}

func (r *OrderRepository) lookup(id string) (*order.Order, bool) {
	if st := r.uow.staged; st != nil {
		if o, ok := st.orders[id]; ok {
			return o, true
		}
	}
	return r.uow.store.order(id)
}
