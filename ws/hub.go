package ws

import (
	"sync"

	"dialog-messenger-api/config/logger"
	"dialog-messenger-api/dto"
	"dialog-messenger-api/metrics"
)

// Hub is the session registry: user id -> set of live connections. It is
// the single fan-out point; callers name the target users explicitly and
// the hub never broadcasts to all connections.
type Hub struct {
	mu      sync.Mutex
	clients map[string]map[*Client]bool
	log     *logger.AppLogger
}

func NewHub(log *logger.AppLogger) *Hub {
	return &Hub{
		clients: make(map[string]map[*Client]bool),
		log:     log,
	}
}

func (h *Hub) Register(userID string, client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[userID] == nil {
		h.clients[userID] = make(map[*Client]bool)
	}
	h.clients[userID][client] = true
	metrics.IdentifiedConnections.Inc()
	h.log.WS.Info.Info().Str("userId", userID).Int("connections", len(h.clients[userID])).Msg("client registered")
}

func (h *Hub) Unregister(userID string, client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.clients[userID]
	if !ok {
		return
	}
	if clients[client] {
		delete(clients, client)
		metrics.IdentifiedConnections.Dec()
	}
	if len(clients) == 0 {
		delete(h.clients, userID)
	}
	h.log.WS.Info.Info().Str("userId", userID).Msg("client unregistered")
}

// SendToUser delivers one event to every live connection of the user.
// Best-effort: connections that fail to write are dropped, and a user
// with no connections simply misses the event.
func (h *Hub) SendToUser(userID string, event string, data any) {
	h.mu.Lock()
	targets := make([]*Client, 0, len(h.clients[userID]))
	for client := range h.clients[userID] {
		targets = append(targets, client)
	}
	h.mu.Unlock()

	envelope := dto.OutboundEnvelope{Event: event, Data: data}
	for _, client := range targets {
		if err := client.WriteJSON(envelope); err != nil {
			h.log.WS.Warning.Warn().Err(err).Str("userId", userID).Str("event", event).Msg("write failed, dropping connection")
			client.Conn.Close()
			h.Unregister(userID, client)
			continue
		}
		metrics.EventsSent.WithLabelValues(event).Inc()
	}
}

// HasConnections reports whether the user has at least one registered
// connection.
func (h *Hub) HasConnections(userID string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients[userID]) > 0
}
