package domain

import "time"

// Message is the envelope shared by Kafka events and websocket frames.
type Message struct {
	Topic      string            `json:"topic"`
	Entity     string            `json:"entity"`
	Action     string            `json:"action"`
	ResourceID string            `json:"resourceId,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
	Data       any               `json:"data,omitempty"`
	Timestamp  time.Time         `json:"timestamp"`
}

// NewEntityMessage builds a message whose topic is derived from entity and action.
func NewEntityMessage(entity, action, resourceID string, data any, metadata map[string]string, at time.Time) *Message {
	return &Message{
		Topic:      CustomTopic(entity, action),
		Entity:     entity,
		Action:     action,
		ResourceID: resourceID,
		Metadata:   metadata,
		Data:       data,
		Timestamp:  at.UTC(),
	}
}
