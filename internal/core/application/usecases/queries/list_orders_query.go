package queries

import (
	"errors"
	"slices"

	"containerops/internal/core/domain/model/order"
	"containerops/internal/pkg/guard"
)

// ErrListOrdersQueryIsNotConstructed is returned by Validate for a zero-value query.
var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersQuery constructor",
)

// ListOrdersQuery reads the admin order list, optionally limited to some statuses.
//
// Example:
//
//	query, _ := NewListOrdersQuery(order.Pending, order.Confirmed)
//	resp, err := handler.Handle(ctx, query)
//	fmt.Printf("%d orders, %d new\n", len(resp.Orders), resp.Unseen)
type ListOrdersQuery struct {
	statuses []order.Status

	guard guard.ConstructorGuard
}

// NewListOrdersQuery builds the query. With no statuses every order matches.
//
// Parameters:
//   - statuses: the statuses to keep; duplicates are harmless
//
// Returns:
//   - ListOrdersQuery: ready for ListOrdersQueryHandler.Handle
//   - error: errs.ValueIsInvalidError for order.Unknown or any undeclared status
func NewListOrdersQuery(statuses ...order.Status) (ListOrdersQuery, error) {
	for _, s := range statuses {
		if err := s.Validate(); err != nil {
			return ListOrdersQuery{}, err
		}
	}
	return ListOrdersQuery{statuses: slices.Clone(statuses), guard: guard.NewConstructorGuard()}, nil
}

// Validate returns ErrListOrdersQueryIsNotConstructed unless built by the constructor.
func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) matches(s order.Status) bool {
	return len(q.statuses) == 0 || slices.Contains(q.statuses, s)
}

// ListOrdersQueryResponse carries the orders, newest first, and the badge count of
// unseen orders across the whole store, whatever the filter.
type ListOrdersQueryResponse struct {
	Orders []OrderView
	Unseen int
}
