package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"lunchVote/internal/modules/realtime/application/port"
	"lunchVote/internal/modules/realtime/domain"
	"lunchVote/internal/shared/metrics"
)

// MessageWriter is the subset of *kafka.Writer used by KafkaPublisher.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes domain events to Kafka, one topic per domain topic.
type KafkaPublisher struct {
	writer   MessageWriter
	topicFor func(string) string
}

func NewKafkaPublisher(brokers []string, topicFor func(string) string) *KafkaPublisher {
	return NewKafkaPublisherWithWriter(&kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		BatchTimeout:           10 * time.Millisecond,
	}, topicFor)
}

func NewKafkaPublisherWithWriter(writer MessageWriter, topicFor func(string) string) *KafkaPublisher {
	return &KafkaPublisher{writer: writer, topicFor: topicFor}
}

// Publish writes msg keyed by its resource id so events of one resource stay ordered.
func (p *KafkaPublisher) Publish(ctx context.Context, msg *domain.Message) error {
	value, err := json.Marshal(msg)
	if err != nil {
		metrics.EventsPublished.WithLabelValues(msg.Topic, "error").Inc()
		return fmt.Errorf("encode event: %w", err)
	}
	record := kafka.Message{
		Topic: p.topicFor(msg.Topic),
		Key:   []byte(msg.ResourceID),
		Value: value,
		Time:  msg.Timestamp,
	}
	if err := p.writer.WriteMessages(ctx, record); err != nil {
		metrics.EventsPublished.WithLabelValues(msg.Topic, "error").Inc()
		return fmt.Errorf("write event to %s: %w", record.Topic, err)
	}
	metrics.EventsPublished.WithLabelValues(msg.Topic, "kafka").Inc()
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

var _ port.EventPublisher = (*KafkaPublisher)(nil)
