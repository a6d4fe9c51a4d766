package commands

import (
	"errors"

	"containerops/internal/core/domain/model/delivery"
	"containerops/internal/core/domain/model/kernel"
	"containerops/internal/pkg/guard"
)

var ErrAdvanceDeliveryCommandIsNotConstructed = errors.New(
	"AdvanceDeliveryCommand must be created via NewAdvanceDeliveryCommand constructor",
)

// AdvanceDeliveryCommand moves a delivery record to its next status from the driver
// dashboard. The order status is never touched.
type AdvanceDeliveryCommand struct {
	deliveryID kernel.UUID
	target     delivery.Status

	guard guard.ConstructorGuard
}

// NewAdvanceDeliveryCommand validates the record id and the target status.
//
// Parameters:
//   - deliveryID: the record to move
//   - target: the status the driver reports, normally the successor of the current one
//
// Returns:
//   - AdvanceDeliveryCommand: the command when both are valid
//   - error: the joined validation errors otherwise
func NewAdvanceDeliveryCommand(deliveryID kernel.UUID, target delivery.Status) (AdvanceDeliveryCommand, error) {
	if err := errors.Join(deliveryID.Validate(), target.Validate()); err != nil {
		return AdvanceDeliveryCommand{}, err
	}

	return AdvanceDeliveryCommand{
		deliveryID: deliveryID,
		target:     target,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c AdvanceDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceDeliveryCommandIsNotConstructed)
}

func (c AdvanceDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

func (c AdvanceDeliveryCommand) Target() delivery.Status {
	return c.target
}
