package memory

import (
	"context"

	"containerops/internal/core/domain/model/notification"
)

// NotificationLog is the memory implementation of ports.NotificationLog.
// Take it from a UnitOfWork.
type NotificationLog struct {
	uow *UnitOfWork
}

// Append assigns the next sequence. Holding the writer slot makes the numbering
// gap-free: a rolled back unit of work leaves no hole because its entries never
// reach the store.
func (l *NotificationLog) Append(ctx context.Context, n *notification.Notification) error {
	if err := n.Validate(); err != nil {
		return err
	}

	return l.uow.write(ctx, func(st *staging) error {
		next := l.uow.store.lastSequence() + int64(len(st.notifications)) + 1
		if err := n.AssignSequence(next); err != nil {
			return err
		}
		st.notifications = append(st.notifications, copyNotification(n))
		return nil
	})
}

// ListByOrder returns the order's entries in sequence order.
func (l *NotificationLog) ListByOrder(ctx context.Context, orderID string) ([]*notification.Notification, error) {
	all, err := l.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*notification.Notification, 0)
	for _, n := range all {
		if n.OrderID() == orderID {
			out = append(out, n)
		}
	}
	return out, nil
}

// ListAfter returns up to limit entries with a sequence above after. A limit of zero
// or less means no limit.
func (l *NotificationLog) ListAfter(ctx context.Context, after int64, limit int) ([]*notification.Notification, error) {
	all, err := l.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*notification.Notification, 0)
	for _, n := range all {
		if limit > 0 && len(out) == limit {
			break
		}
		if n.Sequence() > after {
			out = append(out, n)
		}
	}
	return out, nil
}

// List returns the whole log, staged entries of the unit of work last.
func (l *NotificationLog) List(_ context.Context) ([]*notification.Notification, error) {
	entries := l.uow.store.snapshotNotifications()
	if st := l.uow.staged; st != nil {
		entries = append(entries, st.notifications...)
	}

	out := make([]*notification.Notification, 0, len(entries))
	for _, n := range entries {
		out = append(out, copyNotification(n))
	}
	return out, nil
}
