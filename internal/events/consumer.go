package events

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Handler processes a single change event. A non-nil error is logged but
// does not stop the consumer loop.
type Handler func(ctx context.Context, event ChangeEvent) error

// Consumer handles consuming change events from a Kafka topic
type Consumer struct {
	reader  *kafka.Reader
	handler Handler
	logger  *zap.Logger
}

// NewConsumer creates a new Kafka consumer in the given consumer group
func NewConsumer(brokers []string, topic string, groupID string, handler Handler, logger *zap.Logger) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       1,
		MaxBytes:       10e6,
		CommitInterval: time.Second,
	})

	return &Consumer{
		reader:  reader,
		handler: handler,
		logger:  logger,
	}
}

// Run consumes messages until the context is cancelled
func (c *Consumer) Run(ctx context.Context) {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return
			}
			c.logger.Error("Failed to read message", zap.Error(err))
			continue
		}

		var event ChangeEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			c.logger.Warn("Skipping malformed change event",
				zap.Int64("offset", msg.Offset),
				zap.Error(err))
			continue
		}

		if err := c.handler(ctx, event); err != nil {
			c.logger.Error("Failed to handle change event",
				zap.String("table", event.Table),
				zap.String("type", event.Type),
				zap.Error(err))
		}
	}
}

// Close closes the underlying Kafka reader
func (c *Consumer) Close() error {
	return c.reader.Close()
}
