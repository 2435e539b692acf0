// internal/events/kafka.go
package events

import (
	"context"
	"fmt"

	"github.com/segmentio/kafka-go"

	"places-bot/internal/domain"
)

// DefaultPlacesTopic receives place.saved events.
const DefaultPlacesTopic = "places.saved"

const eventTypePlaceSaved = "place.saved"

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes events to a single topic keyed by user id, so one
// user's events stay ordered within a partition.
type KafkaPublisher struct {
	writer messageWriter
}

// NewKafkaPublisher creates a synchronous writer for topic.
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	if topic == "" {
		topic = DefaultPlacesTopic
	}
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			Compression:  kafka.Snappy,
			Async:        false,
		},
	}
}

// PublishPlaceSaved implements Publisher.
func (p *KafkaPublisher) PublishPlaceSaved(ctx context.Context, event domain.PlaceSaved) error {
	key, body, err := encodePlaceSaved(event)
	if err != nil {
		return fmt.Errorf("encode place.saved: %w", err)
	}
	msg := kafka.Message{
		Key:   key,
		Value: body,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(eventTypePlaceSaved)},
			{Key: "event_id", Value: []byte(event.EventID)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish place.saved: %w", err)
	}
	return nil
}

// Close flushes and releases the writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
