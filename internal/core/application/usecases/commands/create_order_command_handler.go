package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"containerops/internal/core/domain/model/order"
	"containerops/internal/core/ports"
	"containerops/internal/pkg/errs"

	"go.uber.org/zap"
)

// CreateOrderCommandHandler is the booking intake: it stores a new pending order
// flagged as new and announces it with order.created.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
	logger     *zap.Logger
	now        func() time.Time
}

func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.Named("create_order"),
		now:        time.Now,
	}
}

// Handle returns the created order, or ErrOrderAlreadyExists when the id is taken.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	_, err := orderRepo.Get(ctx, cmd.OrderID())
	switch {
	case err == nil:
		return nil, fmt.Errorf("%w: %s", ErrOrderAlreadyExists, cmd.OrderID())
	case !errors.Is(err, errs.ErrObjectNotFound):
		return nil, err
	}

	createdAt := h.now().UTC()
	o, err := order.NewOrder(cmd.OrderID(), cmd.Details(), createdAt)
	if err != nil {
		return nil, err
	}

	if err = orderRepo.Add(ctx, o); err != nil {
		// A concurrent intake of the same id won the insert after our Get.
		if errors.Is(err, ports.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: %s", ErrOrderAlreadyExists, cmd.OrderID())
		}
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.logger.Info("order created", zap.String("order_id", o.ID()), zap.String("type", string(cmd.Details().Type)))

	if err = h.publisher.Publish(ctx, order.NewCreatedEvent(o, createdAt)); err != nil {
		h.logger.Warn("failed to publish order event", zap.String("order_id", o.ID()), zap.Error(err))
	}

	return o, nil
}
