package commands

import (
	"errors"
	"strings"

	"containerops/internal/core/domain/model/kernel"
	"containerops/internal/pkg/errs"
	"containerops/internal/pkg/guard"
)

var ErrAssignDriverCommandIsNotConstructed = errors.New(
	"AssignDriverCommand must be created via NewAssignDriverCommand constructor",
)

// AssignDriverCommand puts a driver on a delivery record from the driver dashboard.
// It never touches the order.
type AssignDriverCommand struct {
	deliveryID kernel.UUID
	driver     string

	guard guard.ConstructorGuard
}

func NewAssignDriverCommand(deliveryID kernel.UUID, driver string) (AssignDriverCommand, error) {
	driver = strings.TrimSpace(driver)

	var driverErr error
	if driver == "" {
		driverErr = errs.NewValueIsRequiredError("driver")
	}
	if err := errors.Join(deliveryID.Validate(), driverErr); err != nil {
		return AssignDriverCommand{}, err
	}

	return AssignDriverCommand{
		deliveryID: deliveryID,
		driver:     driver,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c AssignDriverCommand) Validate() error {
	return c.guard.Validate(ErrAssignDriverCommandIsNotConstructed)
}

func (c AssignDriverCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

func (c AssignDriverCommand) Driver() string {
	return c.driver
}
