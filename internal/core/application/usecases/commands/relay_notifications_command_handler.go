package commands

import (
	"context"
	"sync"

	"containerops/internal/core/ports"

	"go.uber.org/zap"
)

type NotificationLogReaderFactory interface {
	Create() NotificationLogFactory
}

// RelayNotificationsCommandHandler forwards the notification log to the dispatcher.
// Delivery is at least once: the cursor only moves past an entry after Dispatch
// succeeded, and it lives in memory, so a restart replays the whole log.
type RelayNotificationsCommandHandler struct {
	logFactory NotificationLogReaderFactory
	dispatcher ports.NotificationDispatcher
	logger     *zap.Logger

	mu     *sync.Mutex
	cursor *int64
}

func NewRelayNotificationsCommandHandler(
	logFactory NotificationLogReaderFactory,
	dispatcher ports.NotificationDispatcher,
	logger *zap.Logger,
) RelayNotificationsCommandHandler {
	return RelayNotificationsCommandHandler{
		logFactory: logFactory,
		dispatcher: dispatcher,
		logger:     logger.Named("relay_notifications"),
		mu:         &sync.Mutex{},
		cursor:     new(int64),
	}
}

// Handle dispatches up to one batch and returns how many entries went out. It stops
// at the first dispatch error and leaves that entry for the next run.
func (h *RelayNotificationsCommandHandler) Handle(ctx context.Context, cmd RelayNotificationsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	entries, err := h.logFactory.Create().NotificationLog().ListAfter(ctx, *h.cursor, cmd.BatchSize())
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, n := range entries {
		if err = h.dispatcher.Dispatch(ctx, n); err != nil {
			h.logger.Warn("notification dispatch failed, will retry",
				zap.Int64("sequence", n.Sequence()),
				zap.String("order_id", n.OrderID()),
				zap.Error(err),
			)
			return sent, err
		}
		*h.cursor = n.Sequence()
		sent++
	}

	if sent > 0 {
		h.logger.Info("notifications relayed", zap.Int("count", sent), zap.Int64("cursor", *h.cursor))
	}
	return sent, nil
}

// Cursor is the sequence of the last dispatched notification.
func (h *RelayNotificationsCommandHandler) Cursor() int64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return *h.cursor
}
