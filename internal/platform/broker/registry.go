package broker

import (
	"context"
	"log/slog"
	"sync"

	"lunchVote/internal/modules/realtime/domain"
	"lunchVote/internal/modules/realtime/infrastructure"
)

// StartKafkaConsumers starts one consumer per topic and returns a WaitGroup that completes
// once ctx is cancelled and every consumer has stopped. topicFor maps a domain topic to its
// Kafka topic.
func StartKafkaConsumers(
	ctx context.Context,
	registry *infrastructure.HandlerRegistry,
	brokers []string,
	groupID string,
	topics []string,
	topicFor func(string) string,
) *sync.WaitGroup {
	var wg sync.WaitGroup
	if len(brokers) == 0 {
		return &wg
	}
	for _, topic := range topics {
		kafkaTopic := topicFor(topic)
		wg.Add(1)
		go func() {
			defer wg.Done()
			consumer := NewKafkaConsumer(brokers, groupID, kafkaTopic)
			slog.Info("kafka consumer started", slog.String("topic", kafkaTopic), slog.String("groupId", groupID))
			_ = consumer.Consume(ctx, func(msg *domain.Message) error {
				return registry.Dispatch(ctx, msg)
			})
			slog.Info("kafka consumer stopped", slog.String("topic", kafkaTopic))
		}()
	}
	return &wg
}
