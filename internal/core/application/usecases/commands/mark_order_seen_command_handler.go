package commands

import (
	"context"
	"time"

	"containerops/internal/core/domain/model/order"
	"containerops/internal/core/ports"

	"go.uber.org/zap"
)

type MarkOrderSeenCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
	logger     *zap.Logger
}

func NewMarkOrderSeenCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) MarkOrderSeenCommandHandler {
	return MarkOrderSeenCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.Named("mark_order_seen"),
	}
}

// Handle clears the new flag. Marking an already seen order is not an error.
func (h *MarkOrderSeenCommandHandler) Handle(ctx context.Context, cmd MarkOrderSeenCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return notFound(err, ErrOrderNotFound, cmd.OrderID())
	}

	if err = orderRepo.MarkSeen(ctx, cmd.OrderID()); err != nil {
		return notFound(err, ErrOrderNotFound, cmd.OrderID())
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}
	o.MarkSeen()

	if err = h.publisher.Publish(ctx, order.NewSeenEvent(o, time.Now().UTC())); err != nil {
		h.logger.Warn("failed to publish order event", zap.String("order_id", o.ID()), zap.Error(err))
	}
	return nil
}
