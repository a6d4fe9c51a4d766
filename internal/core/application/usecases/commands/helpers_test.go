package commands_test

import (
	"context"
	"sync"
	"testing"

	"containerops/internal/adapters/out/memory"
	"containerops/internal/core/application/usecases/commands"
	"containerops/internal/core/domain/model/order"
	"containerops/internal/core/domain/model/order/ordertest"
	"containerops/internal/core/domain/services"
	"containerops/internal/pkg/errs"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type uowFactoryFunc func() commands.UoW

func (f uowFactoryFunc) Create() commands.UoW { return f() }

type orderUoWFactoryFunc func() commands.OrderUoW

func (f orderUoWFactoryFunc) Create() commands.OrderUoW { return f() }

type deliveryUoWFactoryFunc func() commands.DeliveryUoW

func (f deliveryUoWFactoryFunc) Create() commands.DeliveryUoW { return f() }

type recordingPublisher struct {
	mu     sync.Mutex
	events []order.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e order.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) Events() []order.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]order.Event(nil), p.events...)
}

// workflow wires the command handlers to one in-memory store.
type workflow struct {
	factory    *memory.UnitOfWorkFactory
	publisher  *recordingPublisher
	transition commands.TransitionOrderCommandHandler
	create     commands.CreateOrderCommandHandler
	markSeen   commands.MarkOrderSeenCommandHandler
	assign     commands.AssignDriverCommandHandler
	advance    commands.AdvanceDeliveryCommandHandler
}

func newWorkflow(t *testing.T) *workflow {
	t.Helper()

	factory := memory.NewUnitOfWorkFactory(memory.NewStore())
	publisher := &recordingPublisher{}
	logger := zaptest.NewLogger(t)

	uowFactory := uowFactoryFunc(func() commands.UoW { return factory.Create() })
	orderFactory := orderUoWFactoryFunc(func() commands.OrderUoW { return factory.Create() })
	deliveryFactory := deliveryUoWFactoryFunc(func() commands.DeliveryUoW { return factory.Create() })

	return &workflow{
		factory:   factory,
		publisher: publisher,
		transition: commands.NewTransitionOrderCommandHandler(
			uowFactory,
			services.NewTrackingNumberGenerator(),
			services.NewDeliveryRecordFactory(),
			services.NewNotificationEmitter(),
			publisher,
			logger,
		),
		create:   commands.NewCreateOrderCommandHandler(orderFactory, publisher, logger),
		markSeen: commands.NewMarkOrderSeenCommandHandler(orderFactory, publisher, logger),
		assign:   commands.NewAssignDriverCommandHandler(deliveryFactory, logger),
		advance:  commands.NewAdvanceDeliveryCommandHandler(deliveryFactory, logger),
	}
}

func (w *workflow) createOrder(t *testing.T, id string) *order.Order {
	t.Helper()

	cmd, err := commands.NewCreateOrderCommand(id, ordertest.Details(t))
	require.NoError(t, err)
	o, err := w.create.Handle(t.Context(), cmd)
	require.NoError(t, err)
	return o
}

func (w *workflow) move(t *testing.T, id string, target order.Status) (*order.Order, error) {
	t.Helper()

	cmd, err := commands.NewTransitionOrderCommand(id, target)
	require.NoError(t, err)
	return w.transition.Handle(t.Context(), cmd)
}

func errsNotFound(id string) error {
	return errs.NewObjectNotFoundError("order", id)
}
