package broadcast

import (
	"context"
	"errors"

	"containerops/internal/core/domain/model/order"
	"containerops/internal/core/ports"
)

// Fanout publishes each event to every publisher in turn and joins their errors.
// One failing publisher does not stop the others.
//
// Example:
//
//	publisher := broadcast.Fanout{hub, kafkaEvents}
//	err := publisher.Publish(ctx, order.NewSeenEvent(o, time.Now()))
type Fanout []ports.EventPublisher

// Publish hands the event to each publisher in slice order.
//
// Returns:
//   - nil when every publisher accepted the event
//   - the joined errors of the publishers that failed otherwise
func (f Fanout) Publish(ctx context.Context, event order.Event) error {
	var errs []error
	for _, p := range f {
		if err := p.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
