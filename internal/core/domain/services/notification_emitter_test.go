package services_test

import (
	"testing"
	"time"

	"containerops/internal/core/domain/model/notification"
	"containerops/internal/core/domain/model/order/ordertest"
	"containerops/internal/core/domain/services"
	"containerops/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationEmitter_Emit(t *testing.T) {
	now := time.Date(2025, 3, 16, 7, 0, 0, 0, time.UTC)
	emitter := services.NewNotificationEmitterWithClock(func() time.Time { return now })
	o := ordertest.NewPending(t, "O100")

	t.Run("order_confirmed message names the order", func(t *testing.T) {
		n, err := emitter.Emit(o, notification.TypeOrderConfirmed, "")

		require.NoError(t, err)
		assert.Equal(t, "O100", n.OrderID())
		assert.Equal(t, "jane@example.com", n.Email())
		assert.Equal(t, notification.TypeOrderConfirmed, n.Type())
		assert.Equal(t, "Your order O100 has been confirmed. We will be in touch to arrange delivery.", n.Message())
		assert.Empty(t, n.TrackingNumber())
		assert.Equal(t, now, n.CreatedAt())
	})

	t.Run("order_confirmed ignores a tracking number", func(t *testing.T) {
		n, err := emitter.Emit(o, notification.TypeOrderConfirmed, "CH482913K7Q")

		require.NoError(t, err)
		assert.Empty(t, n.TrackingNumber())
		assert.NotContains(t, n.Message(), "CH482913K7Q")
	})

	t.Run("delivery_started message carries the tracking number", func(t *testing.T) {
		n, err := emitter.Emit(o, notification.TypeDeliveryStarted, "CH482913K7Q")

		require.NoError(t, err)
		assert.Equal(t, "Your order O100 is on its way. Tracking number: CH482913K7Q.", n.Message())
		assert.Equal(t, "CH482913K7Q", n.TrackingNumber())
	})

	t.Run("same inputs give the same text and distinct records", func(t *testing.T) {
		n1, err := emitter.Emit(o, notification.TypeDeliveryStarted, "CH482913K7Q")
		require.NoError(t, err)
		n2, err := emitter.Emit(o, notification.TypeDeliveryStarted, "CH482913K7Q")
		require.NoError(t, err)

		assert.Equal(t, n1.Message(), n2.Message())
		assert.False(t, n1.ID().IsEqual(n2.ID()))
	})

	t.Run("delivery_started without tracking number fails", func(t *testing.T) {
		_, err := emitter.Emit(o, notification.TypeDeliveryStarted, "")
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("unknown type fails", func(t *testing.T) {
		_, err := emitter.Emit(o, notification.Type("order_returned"), "")
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestNewOrderID(t *testing.T) {
	id1 := services.NewOrderID()
	id2 := services.NewOrderID()

	assert.Regexp(t, `^ORD-[0-9A-F]{8}$`, id1)
	assert.NotEqual(t, id1, id2)
}
