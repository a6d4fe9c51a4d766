package commands

import (
	"errors"
	"strings"

	"containerops/internal/pkg/errs"
	"containerops/internal/pkg/guard"
)

var ErrMarkOrderSeenCommandIsNotConstructed = errors.New(
	"MarkOrderSeenCommand must be created via NewMarkOrderSeenCommand constructor",
)

// MarkOrderSeenCommand clears the admin "new" badge of an order. It has no
// status-transition meaning and never goes through the state machine.
type MarkOrderSeenCommand struct {
	orderID string

	guard guard.ConstructorGuard
}

func NewMarkOrderSeenCommand(orderID string) (MarkOrderSeenCommand, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return MarkOrderSeenCommand{}, errs.NewValueIsRequiredError("order id")
	}
	return MarkOrderSeenCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c MarkOrderSeenCommand) Validate() error {
	return c.guard.Validate(ErrMarkOrderSeenCommandIsNotConstructed)
}

func (c MarkOrderSeenCommand) OrderID() string {
	return c.orderID
}
