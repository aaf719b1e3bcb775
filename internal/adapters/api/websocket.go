package api

import (
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Lease event types pushed to subscribers.
const (
	EventLeaseCreated   = "lease.created"
	EventLeaseReleased  = "lease.released"
	EventNetworkDeleted = "network.deleted"
)

// LeaseEvent is the wire form of one lease lifecycle notification.
type LeaseEvent struct {
	Type     string `json:"type"`
	Network  string `json:"network"`
	Address  string `json:"address,omitempty"`
	Instance string `json:"instance,omitempty"`
	TaskID   string `json:"task_id,omitempty"`
}

// EventHub fans lease events out to WebSocket subscribers (operator UIs,
// audit collectors). Delivery is best-effort; a failed write drops the
// subscriber.
type EventHub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

// NewEventHub creates an empty hub.
func NewEventHub() *EventHub {
	return &EventHub{conns: make(map[*websocket.Conn]struct{})}
}

// Register adds a connection to the hub.
func (h *EventHub) Register(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[conn] = struct{}{}
	log.Info().Str("remote", conn.RemoteAddr().String()).Msg("Event subscriber connected")
}

// Unregister removes a connection from the hub.
func (h *EventHub) Unregister(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, conn)
	log.Info().Str("remote", conn.RemoteAddr().String()).Msg("Event subscriber disconnected")
}

// Broadcast sends an event to every subscriber.
func (h *EventHub) Broadcast(event LeaseEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.conns {
		if err := conn.WriteJSON(event); err != nil {
			log.Warn().Err(err).Str("remote", conn.RemoteAddr().String()).Msg("Dropping event subscriber")
			conn.Close()
			delete(h.conns, conn)
		}
	}
}

// HandleWebSocket godoc
//
//	@Summary		Subscribe to lease events
//	@Description	Upgrades to a WebSocket that streams lease.created, lease.released and network.deleted events
//	@Tags			events
//	@Router			/ws [get]
func (h *Handler) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	h.events.Register(conn)
	defer func() {
		h.events.Unregister(conn)
		conn.Close()
	}()

	// Subscribers only listen; drain the connection until it closes.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
