package deliveryrepo_test

import (
	"context"
	"testing"
	"time"

	"containerops/internal/adapters/out/postgres/deliveryrepo"
	"containerops/internal/adapters/out/postgres/orderrepo"
	"containerops/internal/adapters/out/postgres/pgtest"
	"containerops/internal/core/domain/model/delivery"
	"containerops/internal/core/domain/model/kernel"
	"containerops/internal/core/domain/model/order"
	"containerops/internal/core/domain/model/order/ordertest"
	"containerops/internal/core/domain/services"
	"containerops/internal/core/ports"
	"containerops/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type noopTracker struct{}

func (noopTracker) TrackAggregate(string, any) {}

type DeliveryRecordRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *pgtest.Database
	orders     *orderrepo.GormOrderRepository
	repository *deliveryrepo.GormDeliveryRecordRepository
	factory    services.DeliveryRecordFactory
}

func (suite *DeliveryRecordRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
	suite.orders = orderrepo.NewGormOrderRepository(database.DB, noopTracker{})
	suite.repository = deliveryrepo.NewGormDeliveryRecordRepository(database.DB, noopTracker{})
}

func (suite *DeliveryRecordRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())

	now := ordertest.CreatedAt.Add(24 * time.Hour)
	suite.factory = services.NewDeliveryRecordFactoryWithClock(func() time.Time {
		now = now.Add(time.Minute)
		return now
	})
}

func (suite *DeliveryRecordRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.database != nil {
		suite.Require().NoError(suite.database.Terminate(context.Background()))
	}
}

// dispatch stores an in-transit order and returns its unsaved delivery record.
func (suite *DeliveryRecordRepositoryIntegrationTestSuite) dispatch(id, trackingNumber string) *delivery.Record {
	o := ordertest.NewWithStatus(suite.T(), id, order.InTransit, trackingNumber)
	suite.Require().NoError(suite.orders.Add(suite.T().Context(), o))

	record, err := suite.factory.Create(o, trackingNumber)
	suite.Require().NoError(err)
	return record
}

func (suite *DeliveryRecordRepositoryIntegrationTestSuite) TestAdd_ThenGet() {
	ctx := suite.T().Context()
	record := suite.dispatch("ORD-1", "CH000001AAA")

	suite.Require().NoError(suite.repository.Add(ctx, record))

	got, err := suite.repository.Get(ctx, record.ID())
	suite.Require().NoError(err)
	suite.True(record.ID().IsEqual(got.ID()))
	suite.Equal("ORD-1", got.OrderID())
	suite.Equal("CH000001AAA", got.TrackingNumber())
	suite.Equal(delivery.Unassigned, got.Driver())
	suite.Equal(delivery.Pending, got.Status())
	suite.Equal(record.Destination(), got.Destination())
	suite.Equal(record.Customer(), got.Customer())
	suite.Equal(record.Notes(), got.Notes())

	byOrder, err := suite.repository.GetByOrderID(ctx, "ORD-1")
	suite.Require().NoError(err)
	suite.True(record.ID().IsEqual(byOrder.ID()))
}

func (suite *DeliveryRecordRepositoryIntegrationTestSuite) TestAdd_SecondRecordForOrder_Fails() {
	ctx := suite.T().Context()
	record := suite.dispatch("ORD-1", "CH000001AAA")
	suite.Require().NoError(suite.repository.Add(ctx, record))

	o, err := suite.orders.Get(ctx, "ORD-1")
	suite.Require().NoError(err)
	again, err := suite.factory.Create(o, "CH000002BBB")
	suite.Require().NoError(err)

	err = suite.repository.Add(ctx, again)
	suite.Require().ErrorIs(err, ports.ErrDuplicateKey)
	suite.Require().ErrorIs(err, gorm.ErrDuplicatedKey)
}

func (suite *DeliveryRecordRepositoryIntegrationTestSuite) TestGet_Missing_ReturnsNotFound() {
	ctx := suite.T().Context()

	_, err := suite.repository.Get(ctx, kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	_, err = suite.repository.GetByOrderID(ctx, "ORD-404")
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *DeliveryRecordRepositoryIntegrationTestSuite) TestUpdate_StoresDriver() {
	ctx := suite.T().Context()
	record := suite.dispatch("ORD-1", "CH000001AAA")
	suite.Require().NoError(suite.repository.Add(ctx, record))

	suite.Require().NoError(record.AssignDriver("Sam Driver"))
	suite.Require().NoError(suite.repository.Update(ctx, record))

	got, err := suite.repository.Get(ctx, record.ID())
	suite.Require().NoError(err)
	suite.Equal("Sam Driver", got.Driver())
	suite.True(got.IsAssigned())
}

func (suite *DeliveryRecordRepositoryIntegrationTestSuite) TestUpdate_StoresStatusThroughCompleted() {
	ctx := suite.T().Context()
	record := suite.dispatch("ORD-1", "CH000001AAA")
	suite.Require().NoError(suite.repository.Add(ctx, record))

	for _, next := range []delivery.Status{delivery.InTransit, delivery.Delivered, delivery.Completed} {
		locked, err := suite.repository.GetForUpdate(ctx, record.ID())
		suite.Require().NoError(err)
		suite.Require().NoError(locked.Advance(next))
		suite.Require().NoError(suite.repository.Update(ctx, locked))
	}

	got, err := suite.repository.Get(ctx, record.ID())
	suite.Require().NoError(err)
	suite.Equal(delivery.Completed, got.Status())
	suite.Require().ErrorIs(got.AssignDriver("Sam Driver"), errs.ErrValueIsInvalid)
}

func (suite *DeliveryRecordRepositoryIntegrationTestSuite) TestUpdate_Missing_ReturnsNotFound() {
	record := suite.dispatch("ORD-1", "CH000001AAA")

	err := suite.repository.Update(suite.T().Context(), record)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *DeliveryRecordRepositoryIntegrationTestSuite) TestList_NewestFirst() {
	ctx := suite.T().Context()
	first := suite.dispatch("ORD-1", "CH000001AAA")
	second := suite.dispatch("ORD-2", "CH000002BBB")
	suite.Require().NoError(suite.repository.Add(ctx, first))
	suite.Require().NoError(suite.repository.Add(ctx, second))

	records, err := suite.repository.List(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(records, 2)
	suite.Equal("ORD-2", records[0].OrderID())
	suite.Equal("ORD-1", records[1].OrderID())
}

func TestDeliveryRecordRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(DeliveryRecordRepositoryIntegrationTestSuite))
}
