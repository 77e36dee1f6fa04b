package infrastructure

import (
	"log/slog"
	"strings"
	"time"

	"lunchVote/internal/modules/realtime/domain"
)

// Command is a frame sent by a websocket client.
type Command struct {
	Action string `json:"action"`
	Topic  string `json:"topic,omitempty"`
}

type CommandHandler func(client *Client, cmd Command)

type CommandProcessor struct {
	hub      *Hub
	handlers map[string]CommandHandler
}

func NewCommandProcessor(hub *Hub) *CommandProcessor {
	processor := &CommandProcessor{hub: hub, handlers: make(map[string]CommandHandler)}
	processor.Register("subscribe", processor.handleSubscribe)
	processor.Register("unsubscribe", processor.handleUnsubscribe)
	processor.Register("ping", processor.handlePing)
	return processor
}

func (p *CommandProcessor) Register(action string, handler CommandHandler) {
	key := normalizeAction(action)
	if handler == nil || key == "" {
		return
	}
	p.handlers[key] = handler
}

func (p *CommandProcessor) Process(client *Client, cmd Command) {
	if client == nil {
		return
	}
	action := normalizeAction(cmd.Action)
	if action == "" {
		return
	}
	handler, ok := p.handlers[action]
	if !ok {
		client.SendDomainMessage(systemMessage(domain.ActionError, map[string]any{
			"message": "unknown action",
			"action":  action,
		}))
		return
	}
	handler(client, cmd)
}

func (p *CommandProcessor) handleSubscribe(client *Client, cmd Command) {
	topic := strings.TrimSpace(cmd.Topic)
	if topic == "" {
		return
	}
	p.hub.subscribe(client, topic)
	slog.Debug("ws subscribe", slog.String("userId", client.userID), slog.String("sessionId", client.sessionID), slog.String("topic", topic))
}

func (p *CommandProcessor) handleUnsubscribe(client *Client, cmd Command) {
	topic := strings.TrimSpace(cmd.Topic)
	if topic == "" {
		return
	}
	p.hub.unsubscribe(client, topic)
}

func (p *CommandProcessor) handlePing(client *Client, _ Command) {
	client.SendDomainMessage(systemMessage(domain.ActionPong, nil))
}

func systemMessage(action string, data any) *domain.Message {
	return &domain.Message{
		Topic:     domain.CustomTopic(domain.SystemEntity, action),
		Entity:    domain.SystemEntity,
		Action:    action,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}
}

func normalizeAction(action string) string {
	return strings.ToLower(strings.TrimSpace(action))
}
