package infrastructure

import (
	"context"

	"lunchVote/internal/modules/realtime/application/port"
	"lunchVote/internal/modules/realtime/domain"
	"lunchVote/internal/shared/metrics"
)

// HubPublisher delivers events through the handler registry in-process. It is used when no
// Kafka brokers are configured.
type HubPublisher struct {
	registry *HandlerRegistry
}

func NewHubPublisher(registry *HandlerRegistry) *HubPublisher {
	return &HubPublisher{registry: registry}
}

func (p *HubPublisher) Publish(ctx context.Context, msg *domain.Message) error {
	if err := p.registry.Dispatch(ctx, msg); err != nil {
		metrics.EventsPublished.WithLabelValues(msg.Topic, "error").Inc()
		return err
	}
	metrics.EventsPublished.WithLabelValues(msg.Topic, "local").Inc()
	return nil
}

var _ port.EventPublisher = (*HubPublisher)(nil)
