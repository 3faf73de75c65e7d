// Package hub реализует серверную точку realtime-обмена: принимает
// WebSocket подключения клиентов и ретранслирует конверты обновлений
// всем подключенным, кроме отправителя.
package hub

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/iudanet/chatsync/internal/models"
	"github.com/iudanet/chatsync/pkg/api"
)

// client одно WebSocket подключение
type client struct {
	conn     *websocket.Conn
	clientID string
	writeMu  sync.Mutex
}

func (c *client) send(data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// Hub точка ретрансляции realtime-обновлений
type Hub struct {
	logger   *slog.Logger
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[*client]bool
}

// New создает hub без подключений
func New(logger *slog.Logger) *Hub {
	return &Hub{
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Клиенты ходят с любых origin: доступ ограничивается на
			// уровне развертывания, а не рукопожатия
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[*client]bool),
	}
}

// ServeHTTP обрабатывает GET /ws: апгрейд соединения и цикл чтения
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("Failed to upgrade connection",
			"remote_addr", r.RemoteAddr,
			"error", err)
		return
	}

	c := &client{conn: conn}

	h.mu.Lock()
	h.clients[c] = true
	total := len(h.clients)
	h.mu.Unlock()

	h.logger.Info("Realtime client connected",
		"remote_addr", r.RemoteAddr,
		"clients", total)

	defer func() {
		h.mu.Lock()
		delete(h.clients, c)
		total := len(h.clients)
		h.mu.Unlock()
		_ = conn.Close()

		h.logger.Info("Realtime client disconnected",
			"client_id", c.clientID,
			"clients", total)
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		h.handleMessage(c, data)
	}
}

// BroadcastUpdate рассылает обновление всем подключенным клиентам.
// Используется REST обработчиками: мутация через HTTP тоже должна
// дойти до подписчиков realtime-канала.
func (h *Hub) BroadcastUpdate(entityType string, entity models.Entity, clientID string) {
	msg := api.RealtimeMessage{
		Type:       api.MessageTypeUpdate,
		EntityType: entityType,
		Data:       entity,
		ClientID:   clientID,
	}

	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("Failed to marshal broadcast message", "error", err)
		return
	}

	h.broadcast(nil, data)
}

// ClientCount число подключенных клиентов
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// handleMessage разбирает входящий конверт одного клиента
func (h *Hub) handleMessage(origin *client, data []byte) {
	var msg api.RealtimeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		h.logger.Warn("Failed to decode client message",
			"client_id", origin.clientID,
			"error", err)
		return
	}

	switch msg.Type {
	case api.MessageTypeConnect:
		origin.clientID = msg.ClientID
		h.logger.Debug("Client handshake received", "client_id", msg.ClientID)
	case api.MessageTypeUpdate:
		h.broadcast(origin, data)
	default:
		h.logger.Warn("Unknown message type",
			"type", msg.Type,
			"client_id", origin.clientID)
	}
}

// broadcast пересылает конверт всем клиентам, кроме отправителя
func (h *Hub) broadcast(origin *client, data []byte) {
	h.mu.RLock()
	targets := make([]*client, 0, len(h.clients))
	for c := range h.clients {
		if c == origin {
			continue
		}
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, c := range targets {
		if err := c.send(data); err != nil {
			h.logger.Warn("Failed to deliver broadcast",
				"client_id", c.clientID,
				"error", err)
		}
	}
}
