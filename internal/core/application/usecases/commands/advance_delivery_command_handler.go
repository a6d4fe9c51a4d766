package commands

import (
	"context"

	"containerops/internal/core/domain/model/delivery"

	"go.uber.org/zap"
)

// AdvanceDeliveryCommandHandler records the driver's progress on a delivery record:
// pending, in-transit, delivered, completed. Once completed the record is closed
// and AssignDriver refuses it.
type AdvanceDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
	logger     *zap.Logger
}

func NewAdvanceDeliveryCommandHandler(uowFactory DeliveryUoWFactory, logger *zap.Logger) AdvanceDeliveryCommandHandler {
	return AdvanceDeliveryCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.Named("advance_delivery"),
	}
}

// Handle returns the updated record.
//
// Errors:
//   - ErrDeliveryNotFound when the record does not exist
//   - *delivery.StatusChangeError (errors.Is delivery.ErrInvalidStatusChange) when the
//     target is not the successor of the current status
func (h *AdvanceDeliveryCommandHandler) Handle(ctx context.Context, cmd AdvanceDeliveryCommand) (*delivery.Record, error) {
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

	repo := uow.DeliveryRecordRepository()
	record, err := repo.GetForUpdate(ctx, cmd.DeliveryID())
	if err != nil {
		return nil, notFound(err, ErrDeliveryNotFound, cmd.DeliveryID())
	}

	previous := record.Status()
	if err = record.Advance(cmd.Target()); err != nil {
		return nil, err
	}
	if err = repo.Update(ctx, record); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.logger.Info("delivery advanced",
		zap.Stringer("delivery_id", record.ID()),
		zap.String("order_id", record.OrderID()),
		zap.Stringer("from", previous),
		zap.Stringer("to", record.Status()),
	)
	return record, nil
}
