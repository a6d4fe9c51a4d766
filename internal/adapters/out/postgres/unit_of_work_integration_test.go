package postgres_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	postgres_adapter "containerops/internal/adapters/out/postgres"
	"containerops/internal/adapters/out/postgres/pgtest"
	"containerops/internal/core/application/usecases/commands"
	"containerops/internal/core/domain/model/notification"
	"containerops/internal/core/domain/model/order"
	"containerops/internal/core/domain/model/order/ordertest"
	"containerops/internal/core/domain/services"
	"containerops/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type uowFactoryFunc func() commands.UoW

func (f uowFactoryFunc) Create() commands.UoW { return f() }

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, order.Event) error { return nil }

// UnitOfWorkIntegrationTestSuite runs the unit of work, and the order state machine
// on top of it, against a real PostgreSQL container.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	database *pgtest.Database
	factory  *postgres_adapter.GormUnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(database.DB)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.database != nil {
		suite.Require().NoError(suite.database.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) transitionHandler() commands.TransitionOrderCommandHandler {
	return commands.NewTransitionOrderCommandHandler(
		uowFactoryFunc(func() commands.UoW { return suite.factory.Create() }),
		services.NewTrackingNumberGenerator(),
		services.NewDeliveryRecordFactory(),
		services.NewNotificationEmitter(),
		nopPublisher{},
		zap.NewNop(),
	)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := suite.T().Context()
	uow := suite.factory.Create()

	suite.Require().ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Commit(ctx))
	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_CommitTracksAggregates() {
	ctx := suite.T().Context()
	uow := suite.factory.CreateGorm()

	suite.Require().NoError(uow.Begin(ctx))
	o := ordertest.NewPending(suite.T(), "ORD-1")
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.OrderRepository().MarkSeen(ctx, "ORD-1"))
	suite.Require().NoError(uow.Commit(ctx))

	tracked := uow.TrackedAggregates()
	suite.Require().Len(tracked, 1)
	suite.Equal("ORD-1", tracked[0].ID)
	suite.Same(o, tracked[0].Aggregate)

	got, err := suite.factory.Create().OrderRepository().Get(ctx, "ORD-1")
	suite.Require().NoError(err)
	suite.False(got.IsNew())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RollbackDiscardsEveryRepository() {
	ctx := suite.T().Context()
	uow := suite.factory.CreateGorm()

	suite.Require().NoError(uow.Begin(ctx))

	o := ordertest.NewWithStatus(suite.T(), "ORD-1", order.InTransit, "CH000001AAA")
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))

	record, err := services.NewDeliveryRecordFactory().Create(o, o.TrackingNumber())
	suite.Require().NoError(err)
	suite.Require().NoError(uow.DeliveryRecordRepository().Add(ctx, record))

	n, err := services.NewNotificationEmitter().Emit(o, notification.TypeDeliveryStarted, o.TrackingNumber())
	suite.Require().NoError(err)
	suite.Require().NoError(uow.NotificationLog().Append(ctx, n))

	suite.Len(uow.TrackedAggregates(), 3)
	suite.Require().NoError(uow.Rollback(ctx))
	suite.Empty(uow.TrackedAggregates())

	reader := suite.factory.Create()
	_, err = reader.OrderRepository().Get(ctx, "ORD-1")
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	records, err := reader.DeliveryRecordRepository().List(ctx)
	suite.Require().NoError(err)
	suite.Empty(records)

	entries, err := reader.NotificationLog().List(ctx)
	suite.Require().NoError(err)
	suite.Empty(entries)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransition_FullDeliveryPath() {
	ctx := suite.T().Context()
	handler := suite.transitionHandler()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.OrderRepository().Add(ctx, ordertest.NewPending(suite.T(), "ORD-1")))

	var last *order.Order
	for _, target := range []order.Status{order.Confirmed, order.InTransit, order.Delivered, order.Completed} {
		cmd, err := commands.NewTransitionOrderCommand("ORD-1", target)
		suite.Require().NoError(err)
		last, err = handler.Handle(ctx, cmd)
		suite.Require().NoError(err)
	}
	suite.Equal(order.Completed, last.Status())
	suite.Regexp(`^CH\d{6}[A-Z0-9]{3}$`, last.TrackingNumber())

	reader := suite.factory.Create()
	stored, err := reader.OrderRepository().Get(ctx, "ORD-1")
	suite.Require().NoError(err)
	suite.Equal(order.Completed, stored.Status())
	suite.Equal(last.TrackingNumber(), stored.TrackingNumber())

	record, err := reader.DeliveryRecordRepository().GetByOrderID(ctx, "ORD-1")
	suite.Require().NoError(err)
	suite.Equal(last.TrackingNumber(), record.TrackingNumber())

	entries, err := reader.NotificationLog().ListByOrder(ctx, "ORD-1")
	suite.Require().NoError(err)
	suite.Require().Len(entries, 2)
	suite.Equal(notification.TypeOrderConfirmed, entries[0].Type())
	suite.Equal(notification.TypeDeliveryStarted, entries[1].Type())
	suite.Equal(last.TrackingNumber(), entries[1].TrackingNumber())

	cmd, err := commands.NewTransitionOrderCommand("ORD-1", order.Returned)
	suite.Require().NoError(err)
	_, err = handler.Handle(ctx, cmd)
	suite.Require().ErrorIs(err, order.ErrInvalidTransition)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransition_ConcurrentStartDeliveryFiresOnce() {
	ctx := suite.T().Context()
	handler := suite.transitionHandler()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.OrderRepository().Add(ctx, ordertest.NewWithStatus(suite.T(), "ORD-1", order.Confirmed, "")))

	const attempts = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		rejected  int
	)
	for range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()

			cmd, err := commands.NewTransitionOrderCommand("ORD-1", order.InTransit)
			if err != nil {
				return
			}
			_, err = handler.Handle(ctx, cmd)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, order.ErrInvalidTransition):
				rejected++
			}
		}()
	}
	wg.Wait()

	suite.Equal(1, succeeded)
	suite.Equal(attempts-1, rejected)

	reader := suite.factory.Create()
	records, err := reader.DeliveryRecordRepository().List(ctx)
	suite.Require().NoError(err)
	suite.Len(records, 1)

	entries, err := reader.NotificationLog().ListByOrder(ctx, "ORD-1")
	suite.Require().NoError(err)
	suite.Len(entries, 1)
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
