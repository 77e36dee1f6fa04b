package port

import (
	"context"

	"lunchVote/internal/modules/realtime/domain"
)

// PubSubPort consumes external events (Kafka).
type PubSubPort interface {
	Consume(ctx context.Context, handler func(*domain.Message) error) error
}

// Broadcaster sends messages to connected websocket clients.
type Broadcaster interface {
	Broadcast(ctx context.Context, msg *domain.Message)
}

// EventPublisher hands domain events to the notification pipeline.
type EventPublisher interface {
	Publish(ctx context.Context, msg *domain.Message) error
}

// TopicHandler is implemented by handlers registered per topic.
type TopicHandler interface {
	Topic() string
	Handle(ctx context.Context, msg *domain.Message) error
}
