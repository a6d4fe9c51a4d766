package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"containerops/internal/core/domain/model/notification"
	"containerops/internal/core/domain/model/order"
	"containerops/internal/core/ports"

	"go.uber.org/zap"
)

// maxTrackingNumberAttempts bounds the retries of a transition whose generated
// tracking number collided with a stored one.
const maxTrackingNumberAttempts = 3

// TransitionOrderCommandHandler is the order state machine, the only write path for
// an order's status.
//
// For each command it:
//   - loads the order with a write lock, so concurrent requests for one order run one at a time
//   - resolves the edge from the current status to the target through the transition table
//   - runs the edge's side effects in table order: tracking number, delivery record, notification
//   - applies the new status, writes the order and commits everything in one unit of work
//   - publishes order.status_changed once the commit succeeded
//
// A rejected or failed transition leaves nothing behind: the unit of work is rolled
// back, so no tracking number, delivery record or notification outlives the error.
// A second "start delivery" for the same order sees in-transit and fails with
// *order.InvalidTransitionError.
type TransitionOrderCommandHandler struct {
	uowFactory UoWFactory
	generator  TrackingNumberGenerator
	factory    DeliveryRecordFactory
	emitter    NotificationEmitter
	publisher  ports.EventPublisher
	logger     *zap.Logger
}

func NewTransitionOrderCommandHandler(
	uowFactory UoWFactory,
	generator TrackingNumberGenerator,
	factory DeliveryRecordFactory,
	emitter NotificationEmitter,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory: uowFactory,
		generator:  generator,
		factory:    factory,
		emitter:    emitter,
		publisher:  publisher,
		logger:     logger.Named("transition_order"),
	}
}

// Handle executes the transition and returns the updated order.
//
// A generated tracking number that the store already holds fails the unit of work
// with ports.ErrDuplicateKey. The whole transition is then retried with a fresh
// number, at most maxTrackingNumberAttempts times.
//
// Errors:
//   - ErrOrderNotFound when the order does not exist
//   - *order.InvalidTransitionError (errors.Is order.ErrInvalidTransition) when the target
//     is not the successor of the current status
//   - side effect and persistence errors, unchanged
func (h *TransitionOrderCommandHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	for attempt := 1; ; attempt++ {
		o, generated, err := h.transition(ctx, cmd)
		if err == nil || !generated || attempt == maxTrackingNumberAttempts ||
			!errors.Is(err, ports.ErrDuplicateKey) {
			return o, err
		}
		h.logger.Warn("tracking number collision, retrying",
			zap.String("order_id", cmd.OrderID()), zap.Int("attempt", attempt), zap.Error(err))
	}
}

// transition runs one attempt in its own unit of work. generated reports whether the
// attempt produced a tracking number.
func (h *TransitionOrderCommandHandler) transition(ctx context.Context, cmd TransitionOrderCommand) (*order.Order, bool, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, false, notFound(err, ErrOrderNotFound, cmd.OrderID())
	}

	previous := o.Status()
	edge, err := previous.TransitionTo(cmd.Target())
	if err != nil {
		return nil, false, err
	}

	trackingNumber, err := h.runEffects(ctx, uow, o, edge)
	generated := edge.Has(order.EffectGenerateTrackingNumber)
	if err != nil {
		return nil, generated, err
	}

	if err = o.ApplyTransition(edge, trackingNumber); err != nil {
		return nil, false, err
	}
	if err = orderRepo.Upsert(ctx, o); err != nil {
		return nil, generated, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, generated, err
	}

	h.logger.Info("order transitioned",
		zap.String("order_id", o.ID()),
		zap.Stringer("from", previous),
		zap.Stringer("to", o.Status()),
		zap.String("tracking_number", o.TrackingNumber()),
	)

	event := order.NewStatusChangedEvent(o, previous, time.Now().UTC())
	if err = h.publisher.Publish(ctx, event); err != nil {
		h.logger.Warn("failed to publish order event", zap.String("order_id", o.ID()), zap.Error(err))
	}

	return o, generated, nil
}

// runEffects returns the tracking number generated on the way, empty when the edge
// does not generate one.
func (h *TransitionOrderCommandHandler) runEffects(ctx context.Context, uow UoW, o *order.Order, edge order.Edge) (string, error) {
	var trackingNumber string

	for _, effect := range edge.Effects {
		switch effect {
		case order.EffectGenerateTrackingNumber:
			trackingNumber = h.generator.Generate()

		case order.EffectCreateDeliveryRecord:
			record, err := h.factory.Create(o, trackingNumber)
			if err != nil {
				return "", err
			}
			if err = uow.DeliveryRecordRepository().Add(ctx, record); err != nil {
				return "", err
			}

		case order.EffectNotifyOrderConfirmed:
			if err := h.notify(ctx, uow, o, notification.TypeOrderConfirmed, ""); err != nil {
				return "", err
			}

		case order.EffectNotifyDeliveryStarted:
			if err := h.notify(ctx, uow, o, notification.TypeDeliveryStarted, trackingNumber); err != nil {
				return "", err
			}

		default:
			return "", fmt.Errorf("unsupported transition effect %s", effect)
		}
	}

	return trackingNumber, nil
}

func (h *TransitionOrderCommandHandler) notify(
	ctx context.Context,
	uow UoW,
	o *order.Order,
	typ notification.Type,
	trackingNumber string,
) error {
	n, err := h.emitter.Emit(o, typ, trackingNumber)
	if err != nil {
		return err
	}
	return uow.NotificationLog().Append(ctx, n)
}
