package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Publisher publishes change events for downstream consumers.
type Publisher interface {
	PublishChange(ctx context.Context, event ChangeEvent) error
	Close() error
}

// Producer handles producing change events to a Kafka topic
type Producer struct {
	writer *kafka.Writer
	logger *zap.Logger
}

// NewProducer creates a new Kafka producer for the given topic
func NewProducer(brokers []string, topic string, clientID string, logger *zap.Logger) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchSize:    100,
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
		Async:        false,
		Transport: &kafka.Transport{
			ClientID: clientID,
		},
	}

	return &Producer{
		writer: writer,
		logger: logger,
	}
}

// PublishChange sends a change event to the topic, keyed by table name so
// events for the same table stay ordered within a partition.
func (p *Producer) PublishChange(ctx context.Context, event ChangeEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("Failed to marshal change event",
			zap.String("table", event.Table),
			zap.Error(err))
		return err
	}

	msg := kafka.Message{
		Key:   []byte(event.Table),
		Value: value,
		Time:  time.Now(),
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("Failed to publish change event",
			zap.String("table", event.Table),
			zap.String("type", event.Type),
			zap.Error(err))
		return err
	}

	p.logger.Debug("Published change event",
		zap.String("table", event.Table),
		zap.String("type", event.Type))
	return nil
}

// Close closes the underlying Kafka writer
func (p *Producer) Close() error {
	return p.writer.Close()
}

// NopPublisher discards all events. Used when Kafka is disabled.
type NopPublisher struct{}

// PublishChange implements Publisher
func (NopPublisher) PublishChange(ctx context.Context, event ChangeEvent) error { return nil }

// Close implements Publisher
func (NopPublisher) Close() error { return nil }
