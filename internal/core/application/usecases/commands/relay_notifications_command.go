package commands

import (
	"errors"

	"containerops/internal/pkg/errs"
	"containerops/internal/pkg/guard"
)

const (
	DefaultRelayBatchSize = 100
	maxRelayBatchSize     = 10_000
)

var ErrRelayNotificationsCommandIsNotConstructed = errors.New(
	"RelayNotificationsCommand must be created via NewRelayNotificationsCommand constructor",
)

// RelayNotificationsCommand hands the next batch of logged notifications to the
// external sender.
type RelayNotificationsCommand struct {
	batchSize int

	guard guard.ConstructorGuard
}

func NewRelayNotificationsCommand(batchSize int) (RelayNotificationsCommand, error) {
	if batchSize < 1 || batchSize > maxRelayBatchSize {
		return RelayNotificationsCommand{}, errs.NewValueIsOutOfRangeError("batch size", batchSize, 1, maxRelayBatchSize)
	}
	return RelayNotificationsCommand{batchSize: batchSize, guard: guard.NewConstructorGuard()}, nil
}

func (c RelayNotificationsCommand) Validate() error {
	return c.guard.Validate(ErrRelayNotificationsCommandIsNotConstructed)
}

func (c RelayNotificationsCommand) BatchSize() int {
	return c.batchSize
}
