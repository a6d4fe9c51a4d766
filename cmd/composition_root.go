package cmd

import (
	"errors"
	"fmt"

	api "containerops/internal/adapters/in/http"
	"containerops/internal/adapters/out/broadcast"
	"containerops/internal/adapters/out/kafka"
	"containerops/internal/adapters/out/logsink"
	"containerops/internal/adapters/out/memory"
	"containerops/internal/adapters/out/postgres"
	"containerops/internal/core/application/usecases/commands"
	"containerops/internal/core/application/usecases/queries"
	"containerops/internal/core/domain/services"
	"containerops/internal/core/ports"
	"containerops/internal/jobs"

	"go.uber.org/zap"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// CompositionRoot owns the long-lived infrastructure and hands out handlers wired to it.
type CompositionRoot struct {
	config     Config
	logger     *zap.Logger
	uowFactory ports.UnitOfWorkFactory
	hub        *broadcast.Hub
	publisher  ports.EventPublisher
	dispatcher ports.NotificationDispatcher
	generator  *services.TrackingNumberGenerator
	closers    []func() error
}

// NewCompositionRoot opens the store and the messaging chosen by config.
//
// Returns:
//   - *CompositionRoot: ready to hand out handlers; the caller must Close it
//   - error: the connection error of postgres or kafka; whatever was already opened
//     is closed before returning
//
// Example:
//
//	root, err := cmd.NewCompositionRoot(cfg, logger)
//	if err != nil {
//	    return err
//	}
//	defer root.Close()
func NewCompositionRoot(config Config, logger *zap.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{
		config:    config,
		logger:    logger,
		hub:       broadcast.NewHub(broadcast.DefaultBuffer, logger),
		generator: services.NewTrackingNumberGenerator(),
	}

	if err := c.openStore(); err != nil {
		_ = c.Close()
		return nil, err
	}
	if err := c.openMessaging(); err != nil {
		_ = c.Close()
		return nil, err
	}
	return c, nil
}

func (c *CompositionRoot) openStore() error {
	switch c.config.StoreDriver {
	case StorePostgres:
		gormDB, err := gorm.Open(gormpostgres.Open(c.config.DSN()), &gorm.Config{TranslateError: true})
		if err != nil {
			return fmt.Errorf("connect to postgres: %w", err)
		}
		sqlDB, err := gormDB.DB()
		if err != nil {
			return err
		}
		c.closers = append(c.closers, sqlDB.Close)
		c.uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB)
	default:
		c.uowFactory = memory.NewUnitOfWorkFactory(memory.NewStore())
	}
	c.logger.Info("order store ready", zap.String("driver", c.config.StoreDriver))
	return nil
}

// openMessaging sends events and notifications to kafka when brokers are configured.
// Without brokers, events only reach the hub and notifications go to the log.
func (c *CompositionRoot) openMessaging() error {
	if len(c.config.KafkaBrokers) == 0 {
		c.publisher = c.hub
		c.dispatcher = logsink.NewNotificationDispatcher(c.logger)
		return nil
	}

	producer, err := kafka.NewSyncProducer(c.config.KafkaBrokers)
	if err != nil {
		return err
	}
	c.closers = append(c.closers, producer.Close)

	events := kafka.NewEventPublisher(producer, c.config.KafkaOrderEventsTopic, c.logger)
	// closers run in reverse, so queued events are flushed before the producer closes
	c.closers = append(c.closers, events.Close)

	c.publisher = broadcast.Fanout{c.hub, events}
	c.dispatcher = kafka.NewNotificationDispatcher(producer, c.config.KafkaNotificationsTopic, c.logger)
	c.logger.Info("kafka producer ready", zap.Strings("brokers", c.config.KafkaBrokers))
	return nil
}

// Hub returns the in-process event hub that feeds the server-sent event streams.
func (c *CompositionRoot) Hub() *broadcast.Hub {
	return c.hub
}

// Close ends hub subscriptions and releases the store and the producer.
func (c *CompositionRoot) Close() error {
	c.hub.Close()

	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		errs = append(errs, c.closers[i]())
	}
	c.closers = nil
	return errors.Join(errs...)
}

// CreateCreateOrderCommandHandler wires order intake to the store and the publisher.
func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.publisher, c.logger)
}

// CreateTransitionOrderCommandHandler wires the state machine with the shared tracking
// number generator, so numbers from concurrent requests never share a millisecond slot.
func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewTransitionOrderCommandHandler(
		f,
		c.generator,
		services.NewDeliveryRecordFactory(),
		services.NewNotificationEmitter(),
		c.publisher,
		c.logger,
	)
}

// CreateMarkOrderSeenCommandHandler wires the admin "seen" flag handler.
func (c *CompositionRoot) CreateMarkOrderSeenCommandHandler() commands.MarkOrderSeenCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewMarkOrderSeenCommandHandler(f, c.publisher, c.logger)
}

// CreateAssignDriverCommandHandler wires driver assignment to the delivery records.
func (c *CompositionRoot) CreateAssignDriverCommandHandler() commands.AssignDriverCommandHandler {
	var f commands.DeliveryUoWFactory = FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignDriverCommandHandler(f, c.logger)
}

// CreateAdvanceDeliveryCommandHandler wires the driver status updates of delivery records.
func (c *CompositionRoot) CreateAdvanceDeliveryCommandHandler() commands.AdvanceDeliveryCommandHandler {
	var f commands.DeliveryUoWFactory = FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAdvanceDeliveryCommandHandler(f, c.logger)
}

// CreateRelayNotificationsCommandHandler wires the notification relay to the configured
// dispatcher: kafka when brokers are set, the log otherwise. Each call starts a fresh cursor.
func (c *CompositionRoot) CreateRelayNotificationsCommandHandler() commands.RelayNotificationsCommandHandler {
	var f commands.NotificationLogReaderFactory = FuncNotificationLogReaderFactory(func() commands.NotificationLogFactory {
		return c.uowFactory.Create()
	})
	return commands.NewRelayNotificationsCommandHandler(f, c.dispatcher, c.logger)
}

func (c *CompositionRoot) readers() queries.ReadersFactory {
	return FuncReadersFactory(func() queries.Readers {
		return c.uowFactory.Create()
	})
}

// CreateListOrdersQueryHandler wires the admin order list.
func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.readers())
}

// CreateGetOrderQueryHandler wires the single order read.
func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.readers())
}

// CreateGetOrderTrackingQueryHandler wires the customer tracking view.
func (c *CompositionRoot) CreateGetOrderTrackingQueryHandler() queries.GetOrderTrackingQueryHandler {
	return queries.NewGetOrderTrackingQueryHandler(c.readers())
}

// CreateListDeliveriesQueryHandler wires the driver delivery list.
func (c *CompositionRoot) CreateListDeliveriesQueryHandler() queries.ListDeliveriesQueryHandler {
	return queries.NewListDeliveriesQueryHandler(c.readers())
}

// CreateListNotificationsQueryHandler wires the notification log read.
func (c *CompositionRoot) CreateListNotificationsQueryHandler() queries.ListNotificationsQueryHandler {
	return queries.NewListNotificationsQueryHandler(c.readers())
}

// CreateHTTPHandlers builds every handler the HTTP server routes to.
func (c *CompositionRoot) CreateHTTPHandlers() api.Handlers {
	return api.Handlers{
		CreateOrder:       c.CreateCreateOrderCommandHandler(),
		TransitionOrder:   c.CreateTransitionOrderCommandHandler(),
		MarkOrderSeen:     c.CreateMarkOrderSeenCommandHandler(),
		AssignDriver:      c.CreateAssignDriverCommandHandler(),
		AdvanceDelivery:   c.CreateAdvanceDeliveryCommandHandler(),
		ListOrders:        c.CreateListOrdersQueryHandler(),
		GetOrder:          c.CreateGetOrderQueryHandler(),
		GetOrderTracking:  c.CreateGetOrderTrackingQueryHandler(),
		ListDeliveries:    c.CreateListDeliveriesQueryHandler(),
		ListNotifications: c.CreateListNotificationsQueryHandler(),
	}
}

// CreateJobManager schedules the notification relay with RELAY_SCHEDULE and RELAY_BATCH_SIZE.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	relay := c.CreateRelayNotificationsCommandHandler()
	return jobs.NewJobManager(&relay, c.config.RelaySchedule, c.config.RelayBatchSize, c.logger)
}

// FuncOrderUoWFactory adapts a function to commands.OrderUoWFactory.
type FuncOrderUoWFactory func() commands.OrderUoW

// Create calls f.
func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

// FuncDeliveryUoWFactory adapts a function to commands.DeliveryUoWFactory.
type FuncDeliveryUoWFactory func() commands.DeliveryUoW

// Create calls f.
func (f FuncDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return f()
}

// FuncUoWFactory adapts a function to commands.UoWFactory.
type FuncUoWFactory func() commands.UoW

// Create calls f.
func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

// FuncNotificationLogReaderFactory adapts a function to commands.NotificationLogReaderFactory.
type FuncNotificationLogReaderFactory func() commands.NotificationLogFactory

// Create calls f.
func (f FuncNotificationLogReaderFactory) Create() commands.NotificationLogFactory {
	return f()
}

// FuncReadersFactory adapts a function to queries.ReadersFactory.
type FuncReadersFactory func() queries.Readers

// Create calls f.
func (f FuncReadersFactory) Create() queries.Readers {
	return f()
}
