package guard_test

import (
	"errors"
	"testing"

	"containerops/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("properly_constructed_guard_returns_nil", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errors.New("not constructed")))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		var g guard.ConstructorGuard
		expectedError := errors.New("command not constructed")

		err := g.Validate(expectedError)

		require.Error(t, err)
		assert.Equal(t, expectedError, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
		assert.Equal(t, "object must be created via its constructor", err.Error())
	})
}

func TestConstructorGuard_EmbeddedInCommand(t *testing.T) {
	errCommandNotConstructed := errors.New("confirmCommand must be created via newConfirmCommand")

	type confirmCommand struct {
		orderID string
		guard   guard.ConstructorGuard
	}

	newConfirmCommand := func(orderID string) (confirmCommand, error) {
		if orderID == "" {
			return confirmCommand{}, errors.New("order id is required")
		}
		return confirmCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("constructed_command_is_valid", func(t *testing.T) {
		cmd, err := newConfirmCommand("O100")

		require.NoError(t, err)
		require.NoError(t, cmd.guard.Validate(errCommandNotConstructed))
		assert.Equal(t, "O100", cmd.orderID)
	})

	t.Run("zero_value_command_is_rejected", func(t *testing.T) {
		var cmd confirmCommand

		assert.Equal(t, errCommandNotConstructed, cmd.guard.Validate(errCommandNotConstructed))
	})

	t.Run("guard_copied_by_value_stays_valid", func(t *testing.T) {
		cmd, _ := newConfirmCommand("O100")
		cmdCopy := cmd

		require.NoError(t, cmdCopy.guard.Validate(errCommandNotConstructed))
	})
}

func TestConstructorGuard_ConcurrentValidate(t *testing.T) {
	g := guard.NewConstructorGuard()
	validationError := errors.New("not constructed")

	done := make(chan bool)
	for range 50 {
		go func() {
			for range 100 {
				assert.NoError(t, g.Validate(validationError))
			}
			done <- true
		}()
	}

	for range 50 {
		<-done
	}
}
