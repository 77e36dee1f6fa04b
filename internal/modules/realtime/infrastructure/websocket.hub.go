package infrastructure

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"

	"lunchVote/internal/modules/realtime/domain"
	"lunchVote/internal/shared/metrics"
)

// Hub fans messages out to connected websocket clients. Clients either subscribe to explicit
// topics or receive every message.
type Hub struct {
	topics  map[string]map[*Client]struct{}
	clients map[string]*Client
	global  map[*Client]struct{}
	mu      sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		topics:  make(map[string]map[*Client]struct{}),
		clients: make(map[string]*Client),
		global:  make(map[*Client]struct{}),
	}
}

func (h *Hub) registerClient(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if existing, ok := h.clients[c.key()]; ok && existing != c {
		h.detachLocked(existing)
	}
	h.clients[c.key()] = c
	metrics.WebsocketClients.Set(float64(len(h.clients)))
	slog.Info("ws client registered", slog.String("userId", c.userID), slog.String("sessionId", c.sessionID))
}

func (h *Hub) subscribe(c *Client, topic string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.topics[topic] == nil {
		h.topics[topic] = make(map[*Client]struct{})
	}
	h.topics[topic][c] = struct{}{}
	c.subscribed[topic] = struct{}{}
}

func (h *Hub) unsubscribe(c *Client, topic string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if subs, ok := h.topics[topic]; ok {
		delete(subs, c)
		if len(subs) == 0 {
			delete(h.topics, topic)
		}
	}
	delete(c.subscribed, topic)
	slog.Debug("ws client unsubscribed", slog.String("userId", c.userID), slog.String("sessionId", c.sessionID), slog.String("topic", topic))
}

func (h *Hub) detachClient(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.detachLocked(c)
}

func (h *Hub) detachLocked(c *Client) {
	if c == nil {
		return
	}
	for topic := range c.subscribed {
		if subs, ok := h.topics[topic]; ok {
			delete(subs, c)
			if len(subs) == 0 {
				delete(h.topics, topic)
			}
		}
	}
	if current, ok := h.clients[c.key()]; ok && current == c {
		delete(h.clients, c.key())
	}
	delete(h.global, c)
	metrics.WebsocketClients.Set(float64(len(h.clients)))
	c.close()
	slog.Info("ws client detached", slog.String("userId", c.userID), slog.String("sessionId", c.sessionID))
}

// ClientCount reports the number of attached clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast delivers msg to topic subscribers and global clients. A metadata "userId" restricts
// delivery to that user. Clients whose buffer is full are detached.
func (h *Hub) Broadcast(_ context.Context, msg *domain.Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("broadcast marshal error", slog.Any("error", err))
		return
	}

	h.mu.RLock()
	subscribers := h.topics[msg.Topic]
	clients := make([]*Client, 0, len(subscribers)+len(h.global))
	seen := make(map[*Client]struct{}, len(subscribers)+len(h.global))
	for c := range subscribers {
		clients = append(clients, c)
		seen[c] = struct{}{}
	}
	for c := range h.global {
		if _, ok := seen[c]; ok {
			continue
		}
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	targetUser := ""
	if msg.Metadata != nil {
		targetUser = strings.TrimSpace(msg.Metadata["userId"])
	}

	for _, c := range clients {
		if targetUser != "" && c.userID != targetUser {
			continue
		}
		if !c.enqueue(data) {
			slog.Warn("ws send buffer full", slog.String("userId", c.userID), slog.String("sessionId", c.sessionID))
			go h.detachClient(c)
		}
	}
}

// AttachClient registers c for the given topics.
func (h *Hub) AttachClient(c *Client, topics []string) {
	h.registerClient(c)
	for _, topic := range topics {
		if trimmed := strings.TrimSpace(topic); trimmed != "" {
			h.subscribe(c, trimmed)
		}
	}
	slog.Info("ws client attached", slog.String("userId", c.userID), slog.String("sessionId", c.sessionID), slog.Any("topics", topics))
}

// AttachClientToAll registers c as a global subscriber receiving every broadcast message.
func (h *Hub) AttachClientToAll(c *Client) {
	h.registerClient(c)
	h.mu.Lock()
	h.global[c] = struct{}{}
	h.mu.Unlock()
	slog.Info("ws client attached to all topics", slog.String("userId", c.userID), slog.String("sessionId", c.sessionID))
}
