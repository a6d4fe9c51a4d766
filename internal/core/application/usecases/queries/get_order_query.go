package queries

import (
	"context"
	"errors"
	"strings"

	"containerops/internal/pkg/errs"
	"containerops/internal/pkg/guard"
)

// ErrGetOrderQueryIsNotConstructed is returned by Validate for a zero-value GetOrderQuery.
var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery reads one order for the admin detail view.
type GetOrderQuery struct {
	orderID string

	guard guard.ConstructorGuard
}

// NewGetOrderQuery builds the query for orderID, trimmed of surrounding spaces.
//
// Returns:
//   - GetOrderQuery: ready for GetOrderQueryHandler.Handle
//   - error: errs.ValueIsRequiredError when orderID is blank
//
// Example:
//
//	query, err := queries.NewGetOrderQuery(c.Param("id"))
//	if err != nil {
//	    return err // 400
//	}
func NewGetOrderQuery(orderID string) (GetOrderQuery, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return GetOrderQuery{}, errs.NewValueIsRequiredError("order id")
	}
	return GetOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

// Validate returns ErrGetOrderQueryIsNotConstructed unless the query came from NewGetOrderQuery.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

// OrderID returns the trimmed order id.
func (q GetOrderQuery) OrderID() string {
	return q.orderID
}

// GetOrderQueryHandler answers GetOrderQuery from committed state.
type GetOrderQueryHandler struct {
	readers ReadersFactory
}

// NewGetOrderQueryHandler creates the handler over readers.
func NewGetOrderQueryHandler(readers ReadersFactory) GetOrderQueryHandler {
	return GetOrderQueryHandler{readers: readers}
}

// Handle loads the order and projects it with NewOrderView.
//
// Returns:
//   - OrderView: the admin view of the order
//   - error: ErrOrderNotFound (wrapping errs.ErrObjectNotFound) for an unknown id,
//     or the repository error
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	o, err := h.readers.Create().OrderRepository().Get(ctx, query.OrderID())
	if err != nil {
		return OrderView{}, orderNotFound(err, query.OrderID())
	}
	return NewOrderView(o), nil
}
