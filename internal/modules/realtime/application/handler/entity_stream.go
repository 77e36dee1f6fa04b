package handler

import (
	"context"
	"strings"

	"lunchVote/internal/modules/realtime/application/port"
	"lunchVote/internal/modules/realtime/application/usecase"
	"lunchVote/internal/modules/realtime/domain"
)

// EntityStreamHandler relays the events of one entity topic to websocket clients.
// An optional action filter drops everything else.
type EntityStreamHandler struct {
	topic          string
	allowedActions map[string]struct{}
	broadcastUC    *usecase.BroadcastUseCase
}

func NewEntityStreamHandler(topic string, allowedActions []string, broadcastUC *usecase.BroadcastUseCase) *EntityStreamHandler {
	actionSet := make(map[string]struct{}, len(allowedActions))
	for _, a := range allowedActions {
		if v := strings.TrimSpace(strings.ToLower(a)); v != "" {
			actionSet[v] = struct{}{}
		}
	}
	return &EntityStreamHandler{
		topic:          topic,
		allowedActions: actionSet,
		broadcastUC:    broadcastUC,
	}
}

func (h *EntityStreamHandler) Topic() string { return h.topic }

func (h *EntityStreamHandler) Handle(ctx context.Context, msg *domain.Message) error {
	if len(h.allowedActions) > 0 {
		if _, ok := h.allowedActions[strings.ToLower(msg.Action)]; !ok {
			return nil
		}
	}
	if msg.Topic == "" {
		msg.Topic = domain.CustomTopic(msg.Entity, msg.Action)
	}
	h.broadcastUC.Execute(ctx, msg)
	return nil
}

// RegisterEventStreams registers a relay for every domain event topic.
func RegisterEventStreams(registry interface{ Register(port.TopicHandler) }, broadcastUC *usecase.BroadcastUseCase) {
	for _, topic := range domain.EventTopics() {
		_, action := domain.SplitTopic(topic)
		registry.Register(NewEntityStreamHandler(topic, []string{action}, broadcastUC))
	}
}

var _ port.TopicHandler = (*EntityStreamHandler)(nil)
