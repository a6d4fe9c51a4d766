package kernel_test

import (
	"testing"

	"containerops/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUUID(t *testing.T) {
	t.Run("should create distinct valid UUIDs", func(t *testing.T) {
		id1 := kernel.NewUUID()
		id2 := kernel.NewUUID()

		assert.NoError(t, id1.Validate())
		assert.NoError(t, id2.Validate())
		assert.False(t, id1.IsEqual(id2))
		assert.Regexp(t, `^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[0-9a-f]{4}-[0-9a-f]{12}$`, id1.String())
	})
}

func TestUUIDFromString(t *testing.T) {
	const valid = "550e8400-e29b-41d4-a716-446655440000"

	t.Run("should parse canonical form", func(t *testing.T) {
		id, err := kernel.UUIDFromString(valid)

		require.NoError(t, err)
		assert.Equal(t, valid, id.String())
	})

	t.Run("should round trip through Bytes", func(t *testing.T) {
		id := kernel.NewUUID()
		raw := id.Bytes()

		parsed, err := kernel.UUIDFromBytes(raw[:])

		require.NoError(t, err)
		assert.True(t, id.IsEqual(parsed))
	})

	t.Run("should reject malformed input", func(t *testing.T) {
		for _, input := range []string{"", "not-a-uuid", "550e8400-e29b-41d4-a716"} {
			_, err := kernel.UUIDFromString(input)
			require.Error(t, err, input)
			assert.Contains(t, err.Error(), "invalid UUID format")
		}
	})

	t.Run("should reject the nil UUID", func(t *testing.T) {
		_, err := kernel.UUIDFromString("00000000-0000-0000-0000-000000000000")
		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})

	t.Run("should reject short byte slices", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes([]byte{0x55, 0x0e})
		assert.Error(t, err)
	})
}

func TestUUID_Validate(t *testing.T) {
	var id kernel.UUID
	assert.ErrorIs(t, id.Validate(), kernel.ErrUUIDIsNotConstructed)
}
