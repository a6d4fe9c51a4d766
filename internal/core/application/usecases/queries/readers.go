// Package queries contains the read side: the admin order list, the customer
// tracking view, the driver's delivery list and the notification log. Query handlers
// only read; repositories are used outside of any transaction and see committed state.
package queries

import (
	"errors"
	"fmt"

	"containerops/internal/core/ports"
	"containerops/internal/pkg/errs"
)

// ErrOrderNotFound is returned by the single-order queries for an unknown id.
// It wraps errs.ErrObjectNotFound, so the HTTP layer answers 404.
var ErrOrderNotFound = fmt.Errorf("order %w", errs.ErrObjectNotFound)

type (
	// Readers hands out the repositories a query needs, outside any transaction.
	Readers interface {
		OrderRepository() ports.OrderRepository
		DeliveryRecordRepository() ports.DeliveryRecordRepository
		NotificationLog() ports.NotificationLog
	}

	// ReadersFactory creates Readers per query. The composition root binds it to the
	// configured store.
	ReadersFactory interface {
		Create() Readers
	}
)

func orderNotFound(err error, id string) error {
	if errors.Is(err, errs.ErrObjectNotFound) {
		return fmt.Errorf("%w: %s", ErrOrderNotFound, id)
	}
	return err
}
