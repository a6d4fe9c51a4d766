package commands

import (
	"context"

	"containerops/internal/core/domain/model/delivery"

	"go.uber.org/zap"
)

// AssignDriverCommandHandler puts a driver on a delivery record. Completed records
// are refused.
type AssignDriverCommandHandler struct {
	uowFactory DeliveryUoWFactory
	logger     *zap.Logger
}

func NewAssignDriverCommandHandler(uowFactory DeliveryUoWFactory, logger *zap.Logger) AssignDriverCommandHandler {
	return AssignDriverCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.Named("assign_driver"),
	}
}

// Handle returns the updated record, ErrDeliveryNotFound, or errs.ValueIsInvalidError
// when the record is completed.
func (h *AssignDriverCommandHandler) Handle(ctx context.Context, cmd AssignDriverCommand) (*delivery.Record, error) {
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

	if err = record.AssignDriver(cmd.Driver()); err != nil {
		return nil, err
	}
	if err = repo.Update(ctx, record); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.logger.Info("driver assigned",
		zap.Stringer("delivery_id", record.ID()),
		zap.String("order_id", record.OrderID()),
		zap.String("driver", record.Driver()),
	)
	return record, nil
}
