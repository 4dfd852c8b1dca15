package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/velocita/velocita-backend/internal/config"
	"github.com/velocita/velocita-backend/internal/middleware"
	"github.com/velocita/velocita-backend/internal/service"
	ws "github.com/velocita/velocita-backend/internal/websocket"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// An empty allowedOrigins slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// MonitorHandler streams live registration events of an event to its
// organizer over WebSocket, relaying the Redis monitor channel.
type MonitorHandler struct {
	rdb          *redis.Client
	eventService *service.EventService
	log          zerolog.Logger
	upgrader     websocket.Upgrader
}

// NewMonitorHandler creates a new MonitorHandler.
func NewMonitorHandler(rdb *redis.Client, eventService *service.EventService, log zerolog.Logger, allowedOrigins []string) *MonitorHandler {
	return &MonitorHandler{
		rdb:          rdb,
		eventService: eventService,
		log:          log.With().Str("component", "monitor_handler").Logger(),
		upgrader:     buildUpgrader(allowedOrigins),
	}
}

// EventMonitorStream godoc
// WS /ws/v1/organizer/events/:eventId/monitor?token=...
// Upgrades to WebSocket and relays the event's registration feed. CPFs in
// the feed are already masked at publish time.
func (h *MonitorHandler) EventMonitorStream(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	eventID, ok := parseUUIDParam(c, "eventId")
	if !ok {
		return
	}

	// Ownership is checked before the upgrade so unauthorized organizers
	// never hold a socket.
	if _, err := h.eventService.GetOwned(c.Request.Context(), eventID, claims.UserID); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	wsLog := h.log.With().
		Int("organizer_id", claims.UserID).
		Str("event_id", eventID.String()).
		Logger()
	wsLog.Info().Msg("Organizer monitor connected")

	channel := config.CacheKey.EventMonitorChannel(eventID.String())
	sub := h.rdb.Subscribe(c.Request.Context(), channel)
	defer sub.Close()

	// Relay goroutine: Redis channel → WebSocket.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range sub.Channel() {
			var event ws.MonitorEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				wsLog.Warn().Err(err).Msg("malformed monitor payload, dropping")
				continue
			}
			if err := ws.WriteTyped(conn, event); err != nil {
				wsLog.Debug().Err(err).Msg("monitor write failed")
				return
			}
		}
	}()

	// Read loop: only ping is accepted; anything else is a protocol error.
	for {
		var msg ws.RequestEnvelope
		if err := ws.ReadJSON(conn, &msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				wsLog.Warn().Err(err).Msg("Unexpected close")
			} else {
				wsLog.Debug().Msg("Connection closed")
			}
			break
		}

		switch msg.Action {
		case ws.ActionPing:
			ws.WriteTyped(conn, ws.PongResponse{Event: ws.EventPong})
		default:
			ws.WriteError(conn, "unknown action: "+string(msg.Action))
		}
	}

	sub.Close()
	<-done
	wsLog.Info().Msg("Organizer monitor disconnected")
}
