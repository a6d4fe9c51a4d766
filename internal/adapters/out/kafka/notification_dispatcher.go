package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"containerops/internal/core/domain/model/notification"
	"containerops/internal/core/ports"

	"github.com/IBM/sarama"
	"go.uber.org/zap"
)

// DefaultNotificationsTopic is used when no notifications topic is configured.
const DefaultNotificationsTopic = "customer-notifications"

// notificationMessage is what the external email/SMS sender consumes. The id lets
// it drop redeliveries.
type notificationMessage struct {
	ID             string    `json:"id"`
	Sequence       int64     `json:"sequence"`
	OrderID        string    `json:"order_id"`
	Email          string    `json:"email"`
	Message        string    `json:"message"`
	Type           string    `json:"type"`
	TrackingNumber string    `json:"tracking_number,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// NotificationDispatcher hands logged notifications to the external email/SMS sender
// through a topic. It is driven by the relay job, off the request path, so it sends
// synchronously: a failed send stops the batch and the relay retries it on the next
// run from the same sequence.
type NotificationDispatcher struct {
	producer sarama.SyncProducer
	topic    string
	logger   *zap.Logger
}

var _ ports.NotificationDispatcher = (*NotificationDispatcher)(nil)

// NewNotificationDispatcher sends to topic, DefaultNotificationsTopic when empty.
// The producer is shared with the EventPublisher.
func NewNotificationDispatcher(producer sarama.SyncProducer, topic string, logger *zap.Logger) *NotificationDispatcher {
	if topic == "" {
		topic = DefaultNotificationsTopic
	}
	return &NotificationDispatcher{
		producer: producer,
		topic:    topic,
		logger:   logger.Named("kafka_notifications"),
	}
}

// Dispatch sends one notification keyed by order id.
//
// Returns:
//   - nil once the broker acknowledged the message
//   - the encode or send error otherwise, naming the sequence and the topic
func (d *NotificationDispatcher) Dispatch(_ context.Context, n *notification.Notification) error {
	payload, err := json.Marshal(notificationMessage{
		ID:             n.ID().String(),
		Sequence:       n.Sequence(),
		OrderID:        n.OrderID(),
		Email:          n.Email(),
		Message:        n.Message(),
		Type:           string(n.Type()),
		TrackingNumber: n.TrackingNumber(),
		CreatedAt:      n.CreatedAt().UTC(),
	})
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}

	partition, offset, err := d.producer.SendMessage(&sarama.ProducerMessage{
		Topic: d.topic,
		Key:   sarama.StringEncoder(n.OrderID()),
		Value: sarama.ByteEncoder(payload),
	})
	if err != nil {
		return fmt.Errorf("send notification %d to %s: %w", n.Sequence(), d.topic, err)
	}

	d.logger.Debug("notification sent",
		zap.Int64("sequence", n.Sequence()),
		zap.String("order_id", n.OrderID()),
		zap.Int32("partition", partition),
		zap.Int64("offset", offset),
	)
	return nil
}
