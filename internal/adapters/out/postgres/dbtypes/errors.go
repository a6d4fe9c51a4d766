package dbtypes

import (
	"errors"
	"fmt"

	"containerops/internal/core/ports"

	"gorm.io/gorm"
)

// TranslateWriteError wraps a unique violation in ports.ErrDuplicateKey and keeps the
// gorm error in the chain. It needs a connection opened with TranslateError. Other
// errors pass through.
//
// Parameters:
//   - err: the error returned by the write
//   - subject: what was written, e.g. "order"
//   - key: the identifier reported with the error
func TranslateWriteError(err error, subject string, key any) error {
	if err == nil || !errors.Is(err, gorm.ErrDuplicatedKey) {
		return err
	}
	return fmt.Errorf("%s %v: %w: %w", subject, key, ports.ErrDuplicateKey, err)
}
