package broker

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	"lunchVote/internal/modules/realtime/application/port"
	"lunchVote/internal/modules/realtime/domain"
)

const readRetryDelay = time.Second

type KafkaConsumer struct {
	reader *kafka.Reader
}

func NewKafkaConsumer(brokers []string, groupID string, topic string) *KafkaConsumer {
	return &KafkaConsumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers: brokers,
			GroupID: groupID,
			Topic:   topic,
		}),
	}
}

// Consume reads until ctx is cancelled. Handler errors are logged and the offset still advances.
func (c *KafkaConsumer) Consume(ctx context.Context, handler func(*domain.Message) error) error {
	defer func() {
		if err := c.reader.Close(); err != nil {
			slog.Warn("kafka reader close error", slog.Any("error", err))
		}
	}()
	for {
		m, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return ctx.Err()
			}
			slog.Warn("kafka read error", slog.Any("error", err))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(readRetryDelay):
			}
			continue
		}
		msg := decodeMessage(m)
		slog.Debug("kafka message consumed",
			slog.String("topic", m.Topic),
			slog.Int("partition", m.Partition),
			slog.Int64("offset", m.Offset),
			slog.String("entity", msg.Entity),
			slog.String("action", msg.Action),
			slog.String("resourceId", msg.ResourceID),
		)
		if err := handler(msg); err != nil {
			slog.Warn("kafka handler error", slog.String("topic", msg.Topic), slog.Any("error", err))
		}
	}
}

type rawEvent struct {
	Entity     string            `json:"entity"`
	Action     string            `json:"action"`
	ResourceID string            `json:"resourceId"`
	Topic      string            `json:"topic"`
	Metadata   map[string]string `json:"metadata"`
	Data       json.RawMessage   `json:"data"`
	Timestamp  time.Time         `json:"timestamp"`
}

// decodeMessage turns a Kafka record into a realtime message. The Kafka topic prefix is
// stripped so handlers see the domain topic. Undecodable values are relayed as strings.
func decodeMessage(m kafka.Message) *domain.Message {
	msg := &domain.Message{Timestamp: time.Now().UTC()}
	entity, action := domain.SplitTopic(m.Topic)

	var event rawEvent
	if err := json.Unmarshal(m.Value, &event); err != nil {
		msg.Entity = entity
		msg.Action = firstNonEmpty(action, "unknown")
		msg.Topic = domain.CustomTopic(msg.Entity, msg.Action)
		msg.Data = string(m.Value)
		return msg
	}

	msg.Entity = firstNonEmpty(event.Entity, entity)
	msg.Action = firstNonEmpty(event.Action, action, "unknown")
	msg.ResourceID = event.ResourceID
	msg.Metadata = event.Metadata
	if len(event.Data) > 0 {
		msg.Data = event.Data
	}
	if !event.Timestamp.IsZero() {
		msg.Timestamp = event.Timestamp.UTC()
	}
	msg.Topic = firstNonEmpty(event.Topic, domain.CustomTopic(msg.Entity, msg.Action))
	return msg
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

var _ port.PubSubPort = (*KafkaConsumer)(nil)
