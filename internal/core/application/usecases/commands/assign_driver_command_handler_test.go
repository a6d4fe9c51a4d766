package commands_test

import (
	"testing"

	"containerops/internal/core/application/usecases/commands"
	"containerops/internal/core/domain/model/delivery"
	"containerops/internal/core/domain/model/kernel"
	"containerops/internal/core/domain/model/order"
	"containerops/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignDriverCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	w := newWorkflow(t)
	w.createOrder(t, "O100")
	_, err := w.move(t, "O100", order.Confirmed)
	require.NoError(t, err)
	_, err = w.move(t, "O100", order.InTransit)
	require.NoError(t, err)

	record, err := w.factory.Create().DeliveryRecordRepository().GetByOrderID(ctx, "O100")
	require.NoError(t, err)

	t.Run("should assign the driver without touching the order", func(t *testing.T) {
		cmd, err := commands.NewAssignDriverCommand(record.ID(), "Sam Carter")
		require.NoError(t, err)

		updated, err := w.assign.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, "Sam Carter", updated.Driver())
		assert.Equal(t, delivery.Pending, updated.Status())

		o, err := w.factory.Create().OrderRepository().Get(ctx, "O100")
		require.NoError(t, err)
		assert.Equal(t, order.InTransit, o.Status())
	})

	t.Run("should report an unknown record", func(t *testing.T) {
		cmd, _ := commands.NewAssignDriverCommand(kernel.NewUUID(), "Sam Carter")

		_, err := w.assign.Handle(ctx, cmd)

		require.ErrorIs(t, err, commands.ErrDeliveryNotFound)
	})

	t.Run("should validate the command", func(t *testing.T) {
		_, err := commands.NewAssignDriverCommand(kernel.UUID{}, " ")

		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}
