package commands

import (
	"errors"
	"strings"

	"containerops/internal/core/domain/model/order"
	"containerops/internal/core/domain/services"
	"containerops/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand is a booking or purchase request from the intake form.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand("", details) // id generated as ORD-XXXXXXXX
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct {
	orderID string
	details order.Details

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the details. An empty orderID gets a generated one.
func NewCreateOrderCommand(orderID string, details order.Details) (CreateOrderCommand, error) {
	if err := details.Validate(); err != nil {
		return CreateOrderCommand{}, err
	}

	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		orderID = services.NewOrderID()
	}

	return CreateOrderCommand{
		orderID: orderID,
		details: details,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() string {
	return c.orderID
}

func (c CreateOrderCommand) Details() order.Details {
	return c.details
}
