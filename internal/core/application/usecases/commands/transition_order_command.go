package commands

import (
	"errors"
	"strings"

	"containerops/internal/core/domain/model/order"
	"containerops/internal/pkg/errs"
	"containerops/internal/pkg/guard"
)

var ErrTransitionOrderCommandIsNotConstructed = errors.New(
	"TransitionOrderCommand must be created via NewTransitionOrderCommand constructor",
)

// TransitionOrderCommand asks the state machine to move an order to a target status:
// confirm order, start delivery, mark delivered, and the terminal bookkeeping moves.
//
// Example:
//
//	cmd, err := NewTransitionOrderCommand("O100", order.InTransit)
//	if err != nil {
//	    return err
//	}
//	updated, err := handler.Handle(ctx, cmd)
type TransitionOrderCommand struct {
	orderID string
	target  order.Status

	guard guard.ConstructorGuard
}

func NewTransitionOrderCommand(orderID string, target order.Status) (TransitionOrderCommand, error) {
	cmd := TransitionOrderCommand{
		orderID: strings.TrimSpace(orderID),
		target:  target,
		guard:   guard.NewConstructorGuard(),
	}

	var idErr error
	if cmd.orderID == "" {
		idErr = errs.NewValueIsRequiredError("order id")
	}
	if err := errors.Join(idErr, target.Validate()); err != nil {
		return TransitionOrderCommand{}, err
	}
	return cmd, nil
}

func (c TransitionOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed)
}

func (c TransitionOrderCommand) OrderID() string {
	return c.orderID
}

func (c TransitionOrderCommand) Target() order.Status {
	return c.target
}
