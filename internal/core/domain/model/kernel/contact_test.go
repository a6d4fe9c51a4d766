package kernel_test

import (
	"testing"

	"containerops/internal/core/domain/model/kernel"
	"containerops/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewContact(t *testing.T) {
	t.Run("should trim and keep all fields", func(t *testing.T) {
		c, err := kernel.NewContact(" Jane Doe ", "jane@example.com", "07700 900123", "Acme Storage")

		require.NoError(t, err)
		assert.Equal(t, "Jane Doe", c.Name())
		assert.Equal(t, "jane@example.com", c.Email())
		assert.Equal(t, "07700 900123", c.Phone())
		assert.Equal(t, "Acme Storage", c.Company())
		assert.NoError(t, c.Validate())
	})

	t.Run("should allow an empty company", func(t *testing.T) {
		c, err := kernel.NewContact("Jane", "jane@example.com", "123", "")

		require.NoError(t, err)
		assert.Empty(t, c.Company())
	})

	t.Run("should report every missing field", func(t *testing.T) {
		_, err := kernel.NewContact("", "", "", "")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "customer name")
		assert.Contains(t, err.Error(), "customer email")
		assert.Contains(t, err.Error(), "customer phone")
	})

	t.Run("should reject a malformed email", func(t *testing.T) {
		_, err := kernel.NewContact("Jane", "jane-at-example", "123", "")

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero value should not validate", func(t *testing.T) {
		var c kernel.Contact
		assert.ErrorIs(t, c.Validate(), kernel.ErrContactIsNotConstructed)
	})
}
