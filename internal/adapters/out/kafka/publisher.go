// Package kafka publishes dispatch events to a change-feed topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/event"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Envelope is the wire format of every record on the change feed.
type Envelope struct {
	ID         uuid.UUID   `json:"id"`
	Kind       event.Kind  `json:"kind"`
	OccurredAt time.Time   `json:"occurredAt"`
	Payload    event.Event `json:"payload"`
}

// Publisher implements ports.EventPublisher with a synchronous producer. Records are
// keyed by order or courier id so each entity's events stay in partition order.
type Publisher struct {
	producer sarama.SyncProducer
	topic    string
	log      *zap.Logger
}

// NewPublisher connects to the brokers.
func NewPublisher(brokers []string, topic string, log *zap.Logger) (*Publisher, error) {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 3
	config.Producer.Return.Successes = true
	config.Producer.Compression = sarama.CompressionSnappy

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	return NewPublisherWithProducer(producer, topic, log), nil
}

// NewPublisherWithProducer wraps an existing producer.
func NewPublisherWithProducer(producer sarama.SyncProducer, topic string, log *zap.Logger) *Publisher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Publisher{producer: producer, topic: topic, log: log}
}

// Publish sends e and logs a failure instead of returning it; the state change that
// produced e is already committed.
func (p *Publisher) Publish(_ context.Context, e event.Event) {
	if err := p.Send(e); err != nil {
		p.log.Error("failed to publish event",
			zap.String("kind", string(e.Kind())),
			zap.String("key", e.Key()),
			zap.Error(err),
		)
	}
}

// Send marshals e into an Envelope and waits for the broker acknowledgement.
func (p *Publisher) Send(e event.Event) error {
	envelope := Envelope{
		ID:         uuid.New(),
		Kind:       e.Kind(),
		OccurredAt: e.OccurredAt(),
		Payload:    e,
	}

	data, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(e.Key()),
		Value: sarama.ByteEncoder(data),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_kind"), Value: []byte(e.Kind())},
			{Key: []byte("event_id"), Value: []byte(envelope.ID.String())},
		},
	}

	partition, offset, err := p.producer.SendMessage(message)
	if err != nil {
		return fmt.Errorf("failed to send message to topic %s: %w", p.topic, err)
	}

	p.log.Debug("event published",
		zap.String("topic", p.topic),
		zap.Int32("partition", partition),
		zap.Int64("offset", offset),
		zap.String("kind", string(e.Kind())),
		zap.Stringer("eventId", envelope.ID),
	)
	return nil
}

func (p *Publisher) Close() error {
	return p.producer.Close()
}
