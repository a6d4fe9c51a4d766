package commands_test

import (
	"errors"
	"sync"
	"testing"

	"containerops/internal/core/application/usecases/commands"
	"containerops/internal/core/domain/model/delivery"
	"containerops/internal/core/domain/model/notification"
	"containerops/internal/core/domain/model/order"
	"containerops/internal/core/domain/model/order/ordertest"
	"containerops/internal/core/domain/services"
	"containerops/internal/core/ports"
	"containerops/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestTransitionOrder_Scenarios(t *testing.T) {
	ctx := t.Context()
	w := newWorkflow(t)
	w.createOrder(t, "O100")
	reader := w.factory.Create()

	t.Run("confirm notifies the customer once", func(t *testing.T) {
		o, err := w.move(t, "O100", order.Confirmed)

		require.NoError(t, err)
		assert.Equal(t, order.Confirmed, o.Status())
		assert.Empty(t, o.TrackingNumber())

		log, err := reader.NotificationLog().ListByOrder(ctx, "O100")
		require.NoError(t, err)
		require.Len(t, log, 1)
		assert.Equal(t, notification.TypeOrderConfirmed, log[0].Type())
		assert.Equal(t, "O100", log[0].OrderID())
	})

	t.Run("start delivery creates one record matching the notification", func(t *testing.T) {
		o, err := w.move(t, "O100", order.InTransit)

		require.NoError(t, err)
		assert.Equal(t, order.InTransit, o.Status())
		require.NotEmpty(t, o.TrackingNumber())

		record, err := reader.DeliveryRecordRepository().GetByOrderID(ctx, "O100")
		require.NoError(t, err)
		assert.Equal(t, o.TrackingNumber(), record.TrackingNumber())
		assert.Equal(t, delivery.Unassigned, record.Driver())
		assert.Equal(t, delivery.Pending, record.Status())

		log, err := reader.NotificationLog().ListByOrder(ctx, "O100")
		require.NoError(t, err)
		require.Len(t, log, 2)
		assert.Equal(t, notification.TypeDeliveryStarted, log[1].Type())
		assert.Equal(t, record.TrackingNumber(), log[1].TrackingNumber())

		stored, err := reader.OrderRepository().Get(ctx, "O100")
		require.NoError(t, err)
		assert.Equal(t, record.TrackingNumber(), stored.TrackingNumber())
	})

	t.Run("mark delivered adds no notification and keeps the tracking number", func(t *testing.T) {
		before, _ := reader.OrderRepository().Get(ctx, "O100")

		o, err := w.move(t, "O100", order.Delivered)

		require.NoError(t, err)
		assert.Equal(t, order.Delivered, o.Status())
		assert.Equal(t, before.TrackingNumber(), o.TrackingNumber())

		log, _ := reader.NotificationLog().ListByOrder(ctx, "O100")
		assert.Len(t, log, 2)
	})

	t.Run("skipping ahead is rejected without side effects", func(t *testing.T) {
		w.createOrder(t, "O200")

		_, err := w.move(t, "O200", order.Delivered)

		var invalid *order.InvalidTransitionError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, order.Pending, invalid.Current)
		assert.Equal(t, order.Delivered, invalid.Attempted)

		stored, _ := reader.OrderRepository().Get(ctx, "O200")
		assert.Equal(t, order.Pending, stored.Status())
		log, _ := reader.NotificationLog().ListByOrder(ctx, "O200")
		assert.Empty(t, log)
		_, err = reader.DeliveryRecordRepository().GetByOrderID(ctx, "O200")
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("unknown order is reported as not found", func(t *testing.T) {
		_, err := w.move(t, "O999", order.Confirmed)

		require.ErrorIs(t, err, commands.ErrOrderNotFound)
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("terminal edges end the lifecycle", func(t *testing.T) {
		_, err := w.move(t, "O100", order.Completed)
		require.NoError(t, err)

		_, err = w.move(t, "O100", order.Returned)
		assert.ErrorIs(t, err, order.ErrInvalidTransition)
	})

	t.Run("every accepted transition was published after commit", func(t *testing.T) {
		var changes []order.Event
		for _, e := range w.publisher.Events() {
			if e.Type == order.EventStatusChanged && e.OrderID == "O100" {
				changes = append(changes, e)
			}
		}
		require.Len(t, changes, 4)
		assert.Equal(t, order.Pending, changes[0].PreviousStatus)
		assert.Equal(t, order.Completed, changes[3].Status)
	})
}

func TestTransitionOrder_IdempotentRejection(t *testing.T) {
	w := newWorkflow(t)
	w.createOrder(t, "O100")

	_, err := w.move(t, "O100", order.Confirmed)
	require.NoError(t, err)

	_, err = w.move(t, "O100", order.Confirmed)
	var invalid *order.InvalidTransitionError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, order.Confirmed, invalid.Current)

	log, err := w.factory.Create().NotificationLog().ListByOrder(t.Context(), "O100")
	require.NoError(t, err)
	assert.Len(t, log, 1)
}

func TestTransitionOrder_ConcurrentStartDelivery(t *testing.T) {
	ctx := t.Context()
	w := newWorkflow(t)
	w.createOrder(t, "O100")
	_, err := w.move(t, "O100", order.Confirmed)
	require.NoError(t, err)

	const attempts = 16
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		rejected  int
	)
	cmd, err := commands.NewTransitionOrderCommand("O100", order.InTransit)
	require.NoError(t, err)

	for range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := w.transition.Handle(ctx, cmd)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, order.ErrInvalidTransition):
				rejected++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, attempts-1, rejected)

	reader := w.factory.Create()
	records, err := reader.DeliveryRecordRepository().List(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 1)

	var started int
	log, err := reader.NotificationLog().ListByOrder(ctx, "O100")
	require.NoError(t, err)
	for _, n := range log {
		if n.Type() == notification.TypeDeliveryStarted {
			started++
		}
	}
	assert.Equal(t, 1, started)
}

func TestTransitionOrder_Monotonicity(t *testing.T) {
	w := newWorkflow(t)
	w.createOrder(t, "O100")

	// every target, repeatedly, in an order that tries backward and skipping moves
	requests := []order.Status{
		order.Delivered, order.Confirmed, order.Pending, order.InTransit, order.Confirmed,
		order.Returned, order.Delivered, order.InTransit, order.Pending, order.Completed,
		order.Returned, order.Delivered, order.Confirmed,
	}

	rank := order.Pending.Rank()
	for _, target := range requests {
		o, err := w.move(t, "O100", target)
		if err != nil {
			require.ErrorIs(t, err, order.ErrInvalidTransition)
			continue
		}
		assert.Greater(t, o.Status().Rank(), rank, "moved to %s", o.Status())
		rank = o.Status().Rank()
	}

	final, err := w.factory.Create().OrderRepository().Get(t.Context(), "O100")
	require.NoError(t, err)
	assert.Equal(t, order.Completed, final.Status())
}

func TestTransitionOrder_CollectionOrderGetsRecordWithoutDestination(t *testing.T) {
	ctx := t.Context()
	w := newWorkflow(t)

	cmd, err := commands.NewCreateOrderCommand("O300", ordertest.CollectionDetails(t))
	require.NoError(t, err)
	_, err = w.create.Handle(ctx, cmd)
	require.NoError(t, err)

	_, err = w.move(t, "O300", order.Confirmed)
	require.NoError(t, err)
	_, err = w.move(t, "O300", order.InTransit)
	require.NoError(t, err)

	record, err := w.factory.Create().DeliveryRecordRepository().GetByOrderID(ctx, "O300")
	require.NoError(t, err)
	assert.True(t, record.Destination().IsZero())
}

// sequenceGenerator hands out the given tracking numbers in turn, repeating the last.
type sequenceGenerator struct {
	mu      sync.Mutex
	numbers []string
	calls   int
}

func (g *sequenceGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	n := g.numbers[min(g.calls, len(g.numbers)-1)]
	g.calls++
	return n
}

func (w *workflow) transitionWith(t *testing.T, generator commands.TrackingNumberGenerator) commands.TransitionOrderCommandHandler {
	t.Helper()
	return commands.NewTransitionOrderCommandHandler(
		uowFactoryFunc(func() commands.UoW { return w.factory.Create() }),
		generator,
		services.NewDeliveryRecordFactory(),
		services.NewNotificationEmitter(),
		w.publisher,
		zaptest.NewLogger(t),
	)
}

func TestTransitionOrder_TrackingNumberCollision(t *testing.T) {
	ctx := t.Context()

	setup := func(t *testing.T) *workflow {
		w := newWorkflow(t)
		for _, id := range []string{"O1", "O2"} {
			w.createOrder(t, id)
			_, err := w.move(t, id, order.Confirmed)
			require.NoError(t, err)
		}
		first := w.transitionWith(t, &sequenceGenerator{numbers: []string{"CH000001AAA"}})
		cmd, _ := commands.NewTransitionOrderCommand("O1", order.InTransit)
		_, err := first.Handle(ctx, cmd)
		require.NoError(t, err)
		return w
	}

	t.Run("a taken number is replaced by a fresh one", func(t *testing.T) {
		w := setup(t)
		gen := &sequenceGenerator{numbers: []string{"CH000001AAA", "CH000002BBB"}}
		h := w.transitionWith(t, gen)

		cmd, _ := commands.NewTransitionOrderCommand("O2", order.InTransit)
		o, err := h.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, 2, gen.calls)
		assert.Equal(t, "CH000002BBB", o.TrackingNumber())

		reader := w.factory.Create()
		record, err := reader.DeliveryRecordRepository().GetByOrderID(ctx, "O2")
		require.NoError(t, err)
		assert.Equal(t, "CH000002BBB", record.TrackingNumber())
		log, err := reader.NotificationLog().ListByOrder(ctx, "O2")
		require.NoError(t, err)
		require.Len(t, log, 2)
		assert.Equal(t, "CH000002BBB", log[1].TrackingNumber())
	})

	t.Run("gives up after a bounded number of attempts", func(t *testing.T) {
		w := setup(t)
		gen := &sequenceGenerator{numbers: []string{"CH000001AAA"}}
		h := w.transitionWith(t, gen)

		cmd, _ := commands.NewTransitionOrderCommand("O2", order.InTransit)
		_, err := h.Handle(ctx, cmd)

		require.ErrorIs(t, err, ports.ErrDuplicateKey)
		assert.Equal(t, 3, gen.calls)

		reader := w.factory.Create()
		stored, err := reader.OrderRepository().Get(ctx, "O2")
		require.NoError(t, err)
		assert.Equal(t, order.Confirmed, stored.Status())
		_, err = reader.DeliveryRecordRepository().GetByOrderID(ctx, "O2")
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
		log, err := reader.NotificationLog().ListByOrder(ctx, "O2")
		require.NoError(t, err)
		assert.Len(t, log, 1)
	})
}

func TestNewTransitionOrderCommand(t *testing.T) {
	_, err := commands.NewTransitionOrderCommand(" ", order.Unknown)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)

	var zero commands.TransitionOrderCommand
	assert.ErrorIs(t, zero.Validate(), commands.ErrTransitionOrderCommandIsNotConstructed)
}
