package queries

import (
	"context"
	"errors"

	"containerops/internal/pkg/guard"
)

// ErrListDeliveriesQueryIsNotConstructed is returned by Validate for a zero-value query.
var ErrListDeliveriesQueryIsNotConstructed = errors.New(
	"ListDeliveriesQuery must be created via NewListDeliveriesQuery constructor",
)

// ListDeliveriesQuery reads the driver dashboard, newest record first.
type ListDeliveriesQuery struct {
	guard guard.ConstructorGuard
}

// NewListDeliveriesQuery builds the query. It takes no filter.
func NewListDeliveriesQuery() ListDeliveriesQuery {
	return ListDeliveriesQuery{guard: guard.NewConstructorGuard()}
}

// Validate returns ErrListDeliveriesQueryIsNotConstructed unless built by the constructor.
func (q ListDeliveriesQuery) Validate() error {
	return q.guard.Validate(ErrListDeliveriesQueryIsNotConstructed)
}

// ListDeliveriesQueryHandler answers ListDeliveriesQuery.
type ListDeliveriesQueryHandler struct {
	readers ReadersFactory
}

// NewListDeliveriesQueryHandler creates the handler over readers.
func NewListDeliveriesQueryHandler(readers ReadersFactory) ListDeliveriesQueryHandler {
	return ListDeliveriesQueryHandler{readers: readers}
}

// Handle returns every delivery record, newest first, as DeliveryView rows.
// The slice is empty, not nil, when there are no records.
func (h ListDeliveriesQueryHandler) Handle(ctx context.Context, query ListDeliveriesQuery) ([]DeliveryView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	records, err := h.readers.Create().DeliveryRecordRepository().List(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]DeliveryView, 0, len(records))
	for _, r := range records {
		views = append(views, NewDeliveryView(r))
	}
	return views, nil
}
