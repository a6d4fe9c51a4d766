package memory_test

import (
	"context"
	"testing"
	"time"

	"containerops/internal/adapters/out/memory"
	"containerops/internal/core/domain/model/delivery"
	"containerops/internal/core/domain/model/kernel"
	"containerops/internal/core/domain/model/notification"
	"containerops/internal/core/domain/model/order"
	"containerops/internal/core/domain/model/order/ordertest"
	"containerops/internal/core/domain/services"
	"containerops/internal/core/ports"
	"containerops/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNotification(t *testing.T, orderID string) *notification.Notification {
	t.Helper()
	n, err := notification.NewNotification(kernel.NewUUID(), orderID, "jane@example.com", "confirmed",
		notification.TypeOrderConfirmed, "", time.Now())
	require.NoError(t, err)
	return n
}

func TestUnitOfWork_CommitAndRollback(t *testing.T) {
	ctx := t.Context()

	t.Run("committed writes become visible together", func(t *testing.T) {
		factory := memory.NewUnitOfWorkFactory(memory.NewStore())
		uow := factory.Create()
		require.NoError(t, uow.Begin(ctx))

		o := ordertest.NewPending(t, "O100")
		require.NoError(t, uow.OrderRepository().Add(ctx, o))
		require.NoError(t, uow.NotificationLog().Append(ctx, newNotification(t, "O100")))

		// read your own writes inside, nothing outside
		_, err := uow.OrderRepository().Get(ctx, "O100")
		require.NoError(t, err)
		_, err = factory.Create().OrderRepository().Get(ctx, "O100")
		require.ErrorIs(t, err, errs.ErrObjectNotFound)

		require.NoError(t, uow.Commit(ctx))

		reader := factory.Create()
		got, err := reader.OrderRepository().Get(ctx, "O100")
		require.NoError(t, err)
		assert.Equal(t, order.Pending, got.Status())
		entries, err := reader.NotificationLog().List(ctx)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("rollback discards every staged write", func(t *testing.T) {
		factory := memory.NewUnitOfWorkFactory(memory.NewStore())
		uow := factory.Create()
		require.NoError(t, uow.Begin(ctx))

		o := ordertest.NewPending(t, "O100")
		require.NoError(t, uow.OrderRepository().Add(ctx, o))
		record, err := services.NewDeliveryRecordFactory().Create(o, "CH482913K7Q")
		require.NoError(t, err)
		require.NoError(t, uow.DeliveryRecordRepository().Add(ctx, record))
		require.NoError(t, uow.NotificationLog().Append(ctx, newNotification(t, "O100")))

		require.NoError(t, uow.Rollback(ctx))

		reader := factory.Create()
		orders, _ := reader.OrderRepository().List(ctx)
		records, _ := reader.DeliveryRecordRepository().List(ctx)
		entries, _ := reader.NotificationLog().List(ctx)
		assert.Empty(t, orders)
		assert.Empty(t, records)
		assert.Empty(t, entries)
	})

	t.Run("rollback after commit reports no transaction", func(t *testing.T) {
		uow := memory.NewUnitOfWorkFactory(memory.NewStore()).Create()
		require.NoError(t, uow.Begin(ctx))
		require.NoError(t, uow.Commit(ctx))

		assert.ErrorIs(t, uow.Rollback(ctx), memory.ErrNoTransaction)
		assert.ErrorIs(t, uow.Commit(ctx), memory.ErrNoTransaction)
	})
}

func TestUnitOfWork_SingleWriter(t *testing.T) {
	ctx := t.Context()
	factory := memory.NewUnitOfWorkFactory(memory.NewStore())

	first := factory.Create()
	require.NoError(t, first.Begin(ctx))

	t.Run("second writer waits until the context gives up", func(t *testing.T) {
		waitCtx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
		defer cancel()

		err := factory.Create().Begin(waitCtx)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("second writer proceeds once the first ends", func(t *testing.T) {
		started := make(chan struct{})
		second := factory.Create()
		go func() {
			defer close(started)
			_ = second.Begin(ctx)
		}()

		select {
		case <-started:
			t.Fatal("second unit of work began while the first was active")
		case <-time.After(20 * time.Millisecond):
		}

		require.NoError(t, first.Rollback(ctx))
		<-started
		require.NoError(t, second.Rollback(ctx))
	})
}

func TestOrderRepository(t *testing.T) {
	ctx := t.Context()

	t.Run("list returns most recently created first", func(t *testing.T) {
		uow := memory.NewUnitOfWorkFactory(memory.NewStore()).Create()
		repo := uow.OrderRepository()
		for _, id := range []string{"O1", "O2", "O3"} {
			require.NoError(t, repo.Add(ctx, ordertest.NewPending(t, id)))
		}

		orders, err := repo.List(ctx)

		require.NoError(t, err)
		require.Len(t, orders, 3)
		assert.Equal(t, "O3", orders[0].ID())
		assert.Equal(t, "O2", orders[1].ID())
		assert.Equal(t, "O1", orders[2].ID())
	})

	t.Run("add rejects a taken id, upsert replaces", func(t *testing.T) {
		repo := memory.NewUnitOfWorkFactory(memory.NewStore()).Create().OrderRepository()
		require.NoError(t, repo.Add(ctx, ordertest.NewPending(t, "O1")))

		require.ErrorIs(t, repo.Add(ctx, ordertest.NewPending(t, "O1")), memory.ErrDuplicateKey)

		require.NoError(t, repo.Upsert(ctx, ordertest.NewWithStatus(t, "O1", order.Confirmed, "")))
		got, err := repo.Get(ctx, "O1")
		require.NoError(t, err)
		assert.Equal(t, order.Confirmed, got.Status())

		orders, _ := repo.List(ctx)
		assert.Len(t, orders, 1)
	})

	t.Run("a tracking number belongs to one order", func(t *testing.T) {
		repo := memory.NewUnitOfWorkFactory(memory.NewStore()).Create().OrderRepository()
		require.NoError(t, repo.Upsert(ctx, ordertest.NewWithStatus(t, "O1", order.InTransit, "CH000001AAA")))

		err := repo.Upsert(ctx, ordertest.NewWithStatus(t, "O2", order.InTransit, "CH000001AAA"))
		require.ErrorIs(t, err, ports.ErrDuplicateKey)
		_, err = repo.Get(ctx, "O2")
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)

		require.NoError(t, repo.Upsert(ctx, ordertest.NewWithStatus(t, "O1", order.Delivered, "CH000001AAA")))
	})

	t.Run("a tracking number staged in the same unit of work is taken", func(t *testing.T) {
		uow := memory.NewUnitOfWorkFactory(memory.NewStore()).Create()
		require.NoError(t, uow.Begin(ctx))
		repo := uow.OrderRepository()
		require.NoError(t, repo.Upsert(ctx, ordertest.NewWithStatus(t, "O1", order.InTransit, "CH000001AAA")))

		err := repo.Add(ctx, ordertest.NewWithStatus(t, "O2", order.InTransit, "CH000001AAA"))

		require.ErrorIs(t, err, ports.ErrDuplicateKey)
		require.NoError(t, uow.Rollback(ctx))
	})

	t.Run("mark seen only clears the flag", func(t *testing.T) {
		repo := memory.NewUnitOfWorkFactory(memory.NewStore()).Create().OrderRepository()
		require.NoError(t, repo.Add(ctx, ordertest.NewWithStatus(t, "O1", order.Confirmed, "")))

		require.NoError(t, repo.MarkSeen(ctx, "O1"))

		got, err := repo.Get(ctx, "O1")
		require.NoError(t, err)
		assert.False(t, got.IsNew())
		assert.Equal(t, order.Confirmed, got.Status())
		assert.ErrorIs(t, repo.MarkSeen(ctx, "missing"), errs.ErrObjectNotFound)
	})

	t.Run("returned orders are copies", func(t *testing.T) {
		repo := memory.NewUnitOfWorkFactory(memory.NewStore()).Create().OrderRepository()
		require.NoError(t, repo.Add(ctx, ordertest.NewPending(t, "O1")))

		got, err := repo.Get(ctx, "O1")
		require.NoError(t, err)
		got.MarkSeen()

		again, err := repo.Get(ctx, "O1")
		require.NoError(t, err)
		assert.True(t, again.IsNew())
	})
}

func TestDeliveryRecordRepository(t *testing.T) {
	ctx := t.Context()
	repo := memory.NewUnitOfWorkFactory(memory.NewStore()).Create().DeliveryRecordRepository()
	factory := services.NewDeliveryRecordFactory()

	o := ordertest.NewWithStatus(t, "O1", order.Confirmed, "")
	record, err := factory.Create(o, "CH482913K7Q")
	require.NoError(t, err)
	require.NoError(t, repo.Add(ctx, record))

	t.Run("finds the record by order", func(t *testing.T) {
		got, err := repo.GetByOrderID(ctx, "O1")
		require.NoError(t, err)
		assert.True(t, got.ID().IsEqual(record.ID()))

		_, err = repo.GetByOrderID(ctx, "O2")
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("one record per order", func(t *testing.T) {
		again, err := factory.Create(o, "CH999999ZZZ")
		require.NoError(t, err)
		assert.ErrorIs(t, repo.Add(ctx, again), memory.ErrDuplicateKey)
	})

	t.Run("a tracking number belongs to one record", func(t *testing.T) {
		other, err := factory.Create(ordertest.NewWithStatus(t, "O2", order.Confirmed, ""), "CH482913K7Q")
		require.NoError(t, err)

		require.ErrorIs(t, repo.Add(ctx, other), ports.ErrDuplicateKey)
	})

	t.Run("update persists the driver and the status", func(t *testing.T) {
		require.NoError(t, record.AssignDriver("Sam Carter"))
		require.NoError(t, record.Advance(delivery.InTransit))
		require.NoError(t, repo.Update(ctx, record))

		got, err := repo.GetForUpdate(ctx, record.ID())
		require.NoError(t, err)
		assert.Equal(t, "Sam Carter", got.Driver())
		assert.Equal(t, delivery.InTransit, got.Status())
	})
}

func TestNotificationLog(t *testing.T) {
	ctx := t.Context()
	factory := memory.NewUnitOfWorkFactory(memory.NewStore())
	log := factory.Create().NotificationLog()

	for _, id := range []string{"O1", "O2", "O1", "O3"} {
		require.NoError(t, log.Append(ctx, newNotification(t, id)))
	}

	t.Run("sequences are contiguous from one", func(t *testing.T) {
		all, err := log.List(ctx)
		require.NoError(t, err)
		for i, n := range all {
			assert.Equal(t, int64(i+1), n.Sequence())
		}
	})

	t.Run("sequence continues after a rollback without gaps", func(t *testing.T) {
		uow := factory.Create()
		require.NoError(t, uow.Begin(ctx))
		require.NoError(t, uow.NotificationLog().Append(ctx, newNotification(t, "O9")))
		require.NoError(t, uow.Rollback(ctx))

		n := newNotification(t, "O4")
		require.NoError(t, log.Append(ctx, n))
		assert.Equal(t, int64(5), n.Sequence())
	})

	t.Run("filters by order and cursor", func(t *testing.T) {
		byOrder, err := log.ListByOrder(ctx, "O1")
		require.NoError(t, err)
		require.Len(t, byOrder, 2)
		assert.Equal(t, int64(1), byOrder[0].Sequence())
		assert.Equal(t, int64(3), byOrder[1].Sequence())

		after, err := log.ListAfter(ctx, 2, 2)
		require.NoError(t, err)
		require.Len(t, after, 2)
		assert.Equal(t, int64(3), after[0].Sequence())
		assert.Equal(t, int64(4), after[1].Sequence())
	})

	t.Run("re-appending a notification fails", func(t *testing.T) {
		n := newNotification(t, "O1")
		require.NoError(t, log.Append(ctx, n))
		assert.ErrorIs(t, log.Append(ctx, n), notification.ErrSequenceIsAssigned)
	})
}
