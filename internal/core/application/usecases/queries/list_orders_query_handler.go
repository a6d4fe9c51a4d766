package queries

import (
	"context"
)

// ListOrdersQueryHandler answers ListOrdersQuery.
type ListOrdersQueryHandler struct {
	readers ReadersFactory
}

// NewListOrdersQueryHandler creates the handler over readers.
func NewListOrdersQueryHandler(readers ReadersFactory) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{readers: readers}
}

// Handle lists the orders, newest first, keeping those matching the status filter.
// Unseen counts every order flagged new, including the ones filtered out.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) (ListOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ListOrdersQueryResponse{}, err
	}

	orders, err := h.readers.Create().OrderRepository().List(ctx)
	if err != nil {
		return ListOrdersQueryResponse{}, err
	}

	resp := ListOrdersQueryResponse{Orders: make([]OrderView, 0, len(orders))}
	for _, o := range orders {
		if o.IsNew() {
			resp.Unseen++
		}
		if query.matches(o.Status()) {
			resp.Orders = append(resp.Orders, NewOrderView(o))
		}
	}
	return resp, nil
}
