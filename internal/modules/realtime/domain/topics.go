package domain

import "strings"

const (
	SystemEntity = "system"
	MenusEntity  = "menus"
	VotesEntity  = "votes"

	ActionConnected = "connected"
	ActionPong      = "pong"
	ActionError     = "error"
	ActionCreated   = "created"

	TopicSystemConnected = SystemEntity + "." + ActionConnected
	TopicSystemPong      = SystemEntity + "." + ActionPong
	TopicSystemError     = SystemEntity + "." + ActionError
	TopicMenusCreated    = MenusEntity + "." + ActionCreated
	TopicVotesCreated    = VotesEntity + "." + ActionCreated
)

// EventTopics lists the domain topics relayed through the broker.
func EventTopics() []string {
	return []string{TopicMenusCreated, TopicVotesCreated}
}

// CreatedTopic returns the canonical created topic for the given entity.
func CreatedTopic(entity string) string {
	return buildEntityTopic(entity, ActionCreated)
}

// CustomTopic returns the canonical topic for the given entity and action.
func CustomTopic(entity, action string) string {
	return buildEntityTopic(entity, action)
}

// SplitTopic infers entity and action from a dotted topic, ignoring any namespace prefix.
func SplitTopic(topic string) (entity, action string) {
	parts := strings.Split(strings.TrimSpace(topic), ".")
	if len(parts) < 2 {
		return strings.TrimSpace(topic), ""
	}
	return strings.TrimSpace(parts[len(parts)-2]), strings.TrimSpace(parts[len(parts)-1])
}

func buildEntityTopic(entity, action string) string {
	cleanEntity := strings.TrimSpace(entity)
	cleanAction := strings.TrimSpace(action)
	if cleanEntity == "" || cleanAction == "" {
		return ""
	}
	return cleanEntity + "." + cleanAction
}
