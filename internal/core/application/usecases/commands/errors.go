package commands

import (
	"errors"
	"fmt"

	"containerops/internal/pkg/errs"
)

var (
	// ErrOrderNotFound is returned when the referenced order does not exist.
	// It matches errs.ErrObjectNotFound as well.
	ErrOrderNotFound = fmt.Errorf("order %w", errs.ErrObjectNotFound)

	ErrDeliveryNotFound = fmt.Errorf("delivery record %w", errs.ErrObjectNotFound)

	ErrOrderAlreadyExists = errors.New("order already exists")
)

// notFound maps a repository miss onto the command level sentinel and passes any
// other error through.
func notFound(err error, sentinel error, id any) error {
	if errors.Is(err, errs.ErrObjectNotFound) {
		return fmt.Errorf("%w: %v", sentinel, id)
	}
	return err
}
