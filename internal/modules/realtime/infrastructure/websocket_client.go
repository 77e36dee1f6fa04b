package infrastructure

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"lunchVote/internal/modules/realtime/domain"
)

const (
	writeWait  = 5 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
	readLimit  = 1 << 16
)

type Client struct {
	hub        *Hub
	conn       *websocket.Conn
	send       chan []byte
	userID     string
	sessionID  string
	commands   *CommandProcessor
	subscribed map[string]struct{}
	closeOnce  sync.Once
	sendMu     sync.RWMutex
	closed     bool
}

// NewClient creates a websocket client with a send buffer of buf frames.
func NewClient(hub *Hub, conn *websocket.Conn, userID, sessionID string, buf int) *Client {
	if buf <= 0 {
		buf = 1
	}
	client := &Client{
		hub:        hub,
		conn:       conn,
		send:       make(chan []byte, buf),
		userID:     userID,
		sessionID:  sessionID,
		subscribed: make(map[string]struct{}),
	}
	client.commands = NewCommandProcessor(hub)
	return client
}

func (c *Client) UserID() string    { return c.userID }
func (c *Client) SessionID() string { return c.sessionID }

func (c *Client) key() string {
	return c.userID + ":" + c.sessionID
}

func (c *Client) close() {
	c.closeOnce.Do(func() {
		c.sendMu.Lock()
		c.closed = true
		close(c.send)
		c.sendMu.Unlock()
		if c.conn != nil {
			_ = c.conn.Close()
		}
	})
}

// enqueue queues a frame without blocking. It reports false when the buffer is full.
func (c *Client) enqueue(data []byte) bool {
	c.sendMu.RLock()
	defer c.sendMu.RUnlock()
	if c.closed {
		return true
	}
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

func (c *Client) SendDomainMessage(msg *domain.Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("websocket marshal error", slog.Any("error", err))
		return
	}
	if !c.enqueue(data) {
		slog.Warn("websocket send buffer full", slog.String("userId", c.userID), slog.String("sessionId", c.sessionID))
		go c.hub.detachClient(c)
	}
}

func (c *Client) WritePump() {
	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				slog.Warn("websocket write error", slog.Any("error", err))
				return
			}
		case <-ping.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				slog.Warn("websocket ping error", slog.Any("error", err))
				return
			}
		}
	}
}

func (c *Client) ReadPump() {
	c.conn.SetReadLimit(readLimit)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	defer c.hub.detachClient(c)
	for {
		var cmd Command
		if err := c.conn.ReadJSON(&cmd); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				slog.Debug("websocket read ended", slog.String("userId", c.userID), slog.String("sessionId", c.sessionID), slog.Any("error", err))
			}
			return
		}
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		c.commands.Process(c, cmd)
	}
}
