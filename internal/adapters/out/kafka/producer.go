// Package kafka publishes order events and customer notifications through a sarama
// sync producer. Messages are JSON and keyed by order id, so every message of one
// order lands on the same partition in the order it was produced.
package kafka

import (
	"time"

	"github.com/IBM/sarama"
)

// NewSyncProducer connects to brokers with acknowledgements from all in-sync replicas.
// Network timeouts are kept short so a send to an unreachable broker fails within
// seconds instead of the library's 30 second defaults.
func NewSyncProducer(brokers []string) (sarama.SyncProducer, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Timeout = 5 * time.Second
	config.Producer.Retry.Max = 3
	config.Net.DialTimeout = 5 * time.Second
	config.Net.ReadTimeout = 10 * time.Second
	config.Net.WriteTimeout = 5 * time.Second

	return sarama.NewSyncProducer(brokers, config)
}
