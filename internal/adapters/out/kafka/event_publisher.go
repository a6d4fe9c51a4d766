package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"containerops/internal/core/domain/model/order"
	"containerops/internal/core/ports"

	"github.com/IBM/sarama"
	"go.uber.org/zap"
)

const (
	// DefaultOrderEventsTopic is used when no order events topic is configured.
	DefaultOrderEventsTopic = "order-events"

	// DefaultEventQueueSize is the number of events NewEventPublisher buffers while
	// the broker is slow or down.
	DefaultEventQueueSize = 256
)

var (
	// ErrEventQueueFull is returned by Publish when the buffer is exhausted. The event
	// is dropped; the order change it describes is already committed.
	ErrEventQueueFull = errors.New("order event queue full")

	// ErrEventPublisherClosed is returned by Publish after Close.
	ErrEventPublisherClosed = errors.New("order event publisher closed")
)

type eventMessage struct {
	Type           string    `json:"type"`
	OrderID        string    `json:"order_id"`
	Status         string    `json:"status"`
	PreviousStatus string    `json:"previous_status,omitempty"`
	TrackingNumber string    `json:"tracking_number,omitempty"`
	IsNew          bool      `json:"is_new"`
	OccurredAt     time.Time `json:"occurred_at"`
}

func newEventMessage(e order.Event) eventMessage {
	msg := eventMessage{
		Type:           string(e.Type),
		OrderID:        e.OrderID,
		Status:         e.Status.String(),
		TrackingNumber: e.TrackingNumber,
		IsNew:          e.IsNew,
		OccurredAt:     e.OccurredAt.UTC(),
	}
	if e.PreviousStatus != order.Unknown {
		msg.PreviousStatus = e.PreviousStatus.String()
	}
	return msg
}

// EventPublisher writes order events to a topic without holding up the caller.
//
// Publish only encodes the event and puts it on a bounded queue. One background
// worker drains the queue through the sync producer, so events leave in the order
// they were published and a broker outage never blocks an HTTP request: once the
// queue is full further events are dropped with ErrEventQueueFull. Send failures
// are logged by the worker.
//
// Call Close on shutdown, before closing the producer. It flushes what is queued.
type EventPublisher struct {
	producer sarama.SyncProducer
	topic    string
	logger   *zap.Logger

	mu     sync.RWMutex
	closed bool
	queue  chan *sarama.ProducerMessage
	done   chan struct{}
}

var _ ports.EventPublisher = (*EventPublisher)(nil)

// NewEventPublisher starts a publisher with DefaultEventQueueSize.
//
// Parameters:
//   - producer: the sync producer shared with the notification dispatcher
//   - topic: destination topic, DefaultOrderEventsTopic when empty
//   - logger: receives send failures and debug lines per sent event
func NewEventPublisher(producer sarama.SyncProducer, topic string, logger *zap.Logger) *EventPublisher {
	return NewBufferedEventPublisher(producer, topic, DefaultEventQueueSize, logger)
}

// NewBufferedEventPublisher starts a publisher whose queue holds queueSize events.
// A queueSize below one is raised to one.
//
// Example:
//
//	publisher := kafka.NewBufferedEventPublisher(producer, "order-events", 1024, logger)
//	defer publisher.Close()
func NewBufferedEventPublisher(producer sarama.SyncProducer, topic string, queueSize int, logger *zap.Logger) *EventPublisher {
	if topic == "" {
		topic = DefaultOrderEventsTopic
	}
	p := &EventPublisher{
		producer: producer,
		topic:    topic,
		logger:   logger.Named("kafka_events"),
		queue:    make(chan *sarama.ProducerMessage, max(queueSize, 1)),
		done:     make(chan struct{}),
	}
	go p.run()
	return p
}

// Publish queues the event and returns at once.
//
// Returns:
//   - nil when the event is queued
//   - ctx.Err() when ctx is already done
//   - ErrEventQueueFull when the worker is behind by a full queue
//   - ErrEventPublisherClosed after Close
func (p *EventPublisher) Publish(ctx context.Context, event order.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	payload, err := json.Marshal(newEventMessage(event))
	if err != nil {
		return fmt.Errorf("encode order event: %w", err)
	}
	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.OrderID),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event-type"), Value: []byte(event.Type)},
		},
	}

	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrEventPublisherClosed
	}
	select {
	case p.queue <- msg:
		return nil
	default:
		return fmt.Errorf("%w: %s for order %s dropped", ErrEventQueueFull, event.Type, event.OrderID)
	}
}

// Close stops accepting events and waits until the queued ones were sent or failed.
// Each send is bounded by the producer's timeout and retry settings. Safe to call
// more than once.
func (p *EventPublisher) Close() error {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.queue)
	}
	p.mu.Unlock()

	<-p.done
	return nil
}

func (p *EventPublisher) run() {
	defer close(p.done)

	for msg := range p.queue {
		p.send(msg)
	}
}

func (p *EventPublisher) send(msg *sarama.ProducerMessage) {
	orderID, _ := msg.Key.Encode()

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		p.logger.Warn("failed to send order event",
			zap.String("topic", p.topic),
			zap.ByteString("order_id", orderID),
			zap.Error(err),
		)
		return
	}

	p.logger.Debug("order event sent",
		zap.ByteString("order_id", orderID),
		zap.Int32("partition", partition),
		zap.Int64("offset", offset),
	)
}
