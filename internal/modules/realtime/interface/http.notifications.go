package transport

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"lunchVote/internal/modules/realtime/domain"
	"lunchVote/internal/modules/realtime/infrastructure"
	"lunchVote/internal/shared/auth"
	"lunchVote/internal/shared/authz"
	"lunchVote/internal/shared/httputil"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

var notificationCounter atomic.Uint64

// NewNotificationsWebsocketHandler exposes /ws/notifications. The access token comes from the
// Authorization header or the "token" query parameter. A comma separated "topics" parameter
// narrows the stream; without it the client receives every event.
func NewNotificationsWebsocketHandler(hub *infrastructure.Hub, validator auth.TokenValidator, sendBuffer int) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := c.Response().Header().Get(echo.HeaderXRequestID)
		peerIP := c.RealIP()

		token := auth.ExtractToken(c.Request(), "token")
		if token == "" {
			return c.JSON(http.StatusUnauthorized, httputil.Detail(auth.MsgNotAuthenticated))
		}
		claims, err := validator.Validate(token, auth.TokenTypeAccess)
		if err != nil {
			slog.Warn("notifications ws auth failed", slog.String("ip", peerIP), slog.Any("error", err))
			return c.JSON(http.StatusUnauthorized, map[string]string{"detail": auth.MsgTokenNotValid, "code": auth.CodeTokenNotValid})
		}
		identity, err := claims.Identity()
		if err != nil || !authz.Can(identity, authz.ActionSubscribe) {
			return c.JSON(http.StatusForbidden, httputil.Detail(authz.MsgPermissionDenied))
		}

		conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
		if err != nil {
			slog.Error("notifications ws upgrade failed", slog.String("ip", peerIP), slog.String("reqID", requestID), slog.Any("error", err))
			return nil
		}

		userID := strconv.FormatUint(uint64(identity.UserID), 10)
		sessionID := fmt.Sprintf("notif-%d", notificationCounter.Add(1))
		client := infrastructure.NewClient(hub, conn, userID, sessionID, sendBuffer)

		topics := parseTopics(c.QueryParam("topics"))
		if len(topics) == 0 {
			hub.AttachClientToAll(client)
			topics = []string{"*"}
		} else {
			hub.AttachClient(client, topics)
		}

		go client.WritePump()
		go client.ReadPump()

		client.SendDomainMessage(&domain.Message{
			Topic:  domain.TopicSystemConnected,
			Entity: domain.SystemEntity,
			Action: domain.ActionConnected,
			Metadata: map[string]string{
				"sessionId": sessionID,
				"userId":    userID,
			},
			Data: map[string]any{
				"username": identity.Username,
				"topics":   topics,
			},
			Timestamp: time.Now().UTC(),
		})

		slog.Info("notifications ws connected", slog.String("userId", userID), slog.String("sessionId", sessionID), slog.String("ip", peerIP), slog.String("reqID", requestID))
		return nil
	}
}

func parseTopics(raw string) []string {
	var topics []string
	for _, part := range strings.Split(raw, ",") {
		if topic := strings.TrimSpace(part); topic != "" {
			topics = append(topics, topic)
		}
	}
	return topics
}
