// Package realtime pushes front-desk changes to connected displays over
// websockets.
package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"wenlock-health-server/internal/models"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 4096
	sendBufferSize = 32
)

// StateSource supplies the data the hub needs for snapshots and periodic sync
type StateSource interface {
	Snapshot(logLimit int) (Snapshot, error)
	LowStockMedicines() ([]models.Medicine, error)
}

// Config controls hub timing
type Config struct {
	HeartbeatInterval time.Duration
	SyncInterval      time.Duration
	SnapshotLogLimit  int
	// AllowedOrigin is matched against the Origin header on upgrade.
	// Empty or "*" accepts any origin.
	AllowedOrigin string
}

type client struct {
	id    string
	conn  *websocket.Conn
	send  chan []byte
	done  chan struct{}
	alive atomic.Bool
	once  sync.Once
}

func (c *client) close() {
	c.once.Do(func() {
		close(c.done)
		c.conn.Close()
	})
}

// enqueue hands data to the client's writer. It reports false when the
// client is closed or its buffer is full.
func (c *client) enqueue(data []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

// Hub is the registry of connected subscribers
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*client

	source   StateSource
	cfg      Config
	logger   *zap.Logger
	upgrader websocket.Upgrader
	now      func() time.Time
}

// NewHub creates a hub. Call Run to start the heartbeat and sync loops.
func NewHub(source StateSource, cfg Config, logger *zap.Logger) *Hub {
	h := &Hub{
		clients: make(map[string]*client),
		source:  source,
		cfg:     cfg,
		logger:  logger,
		now:     time.Now,
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

func (h *Hub) checkOrigin(r *http.Request) bool {
	if h.cfg.AllowedOrigin == "" || h.cfg.AllowedOrigin == "*" {
		return true
	}
	origin := r.Header.Get("Origin")
	return origin == "" || origin == h.cfg.AllowedOrigin
}

// ClientCount returns the number of registered subscribers.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) add(c *client) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.id] = c
	return len(h.clients)
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	_, ok := h.clients[c.id]
	delete(h.clients, c.id)
	h.mu.Unlock()

	c.close()
	if ok {
		h.logger.Info("websocket client removed", zap.String("client_id", c.id))
	}
}

func (h *Hub) snapshotClients() []*client {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]*client, 0, len(h.clients))
	for _, c := range h.clients {
		out = append(out, c)
	}
	return out
}

// Publish wraps p in an envelope and broadcasts it.
func (h *Hub) Publish(p Payload) {
	h.Broadcast(NewMessage(p, h.now()))
}

// Broadcast sends msg to every subscriber. Subscribers whose buffer is full
// or whose connection is closed are dropped; nothing is returned to the caller.
func (h *Hub) Broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("failed to encode broadcast", zap.String("type", string(msg.Type)), zap.Error(err))
		return
	}

	for _, c := range h.snapshotClients() {
		if !c.enqueue(data) {
			h.logger.Warn("dropping websocket client", zap.String("client_id", c.id), zap.String("type", string(msg.Type)))
			h.remove(c)
		}
	}
}

func (h *Hub) sendTo(c *client, p Payload) {
	data, err := json.Marshal(NewMessage(p, h.now()))
	if err != nil {
		h.logger.Error("failed to encode message", zap.String("client_id", c.id), zap.Error(err))
		return
	}
	if !c.enqueue(data) {
		h.remove(c)
	}
}

// ServeWS upgrades the request and serves the subscriber until it disconnects.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the error response.
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	c := &client{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, sendBufferSize),
		done: make(chan struct{}),
	}
	c.alive.Store(true)

	count := h.add(c)
	h.logger.Info("websocket client connected", zap.String("client_id", c.id), zap.Int("client_count", count))

	go h.writePump(c)
	h.sendTo(c, ConnectionStatus{Status: StatusConnected, ClientCount: count})
	h.readPump(c)
}

func (h *Hub) writePump(c *client) {
	defer h.remove(c)

	for {
		select {
		case <-c.done:
			return
		case data := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				h.logger.Debug("websocket write failed", zap.String("client_id", c.id), zap.Error(err))
				return
			}
		}
	}
}

func (h *Hub) readPump(c *client) {
	defer h.remove(c)

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetPongHandler(func(string) error {
		c.alive.Store(true)
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("websocket read failed", zap.String("client_id", c.id), zap.Error(err))
			}
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			h.logger.Debug("ignoring malformed websocket message", zap.String("client_id", c.id), zap.Error(err))
			continue
		}

		switch msg.Type {
		case MessagePing:
			h.sendTo(c, Pong{})
		case MessageRequestData:
			snapshot, err := h.source.Snapshot(h.cfg.SnapshotLogLimit)
			if err != nil {
				h.logger.Error("failed to build snapshot", zap.String("client_id", c.id), zap.Error(err))
				continue
			}
			h.sendTo(c, snapshot)
		default:
			h.logger.Debug("ignoring websocket message", zap.String("client_id", c.id), zap.String("type", string(msg.Type)))
		}
	}
}

// Run drives the heartbeat and sync loops until ctx is done, then closes
// every subscriber.
func (h *Hub) Run(ctx context.Context) {
	heartbeat := time.NewTicker(h.cfg.HeartbeatInterval)
	defer heartbeat.Stop()
	syncTicker := time.NewTicker(h.cfg.SyncInterval)
	defer syncTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			for _, c := range h.snapshotClients() {
				h.remove(c)
			}
			return
		case <-heartbeat.C:
			h.heartbeat()
		case <-syncTicker.C:
			h.sync()
		}
	}
}

// heartbeat drops clients that did not answer the previous ping and pings
// the rest.
func (h *Hub) heartbeat() {
	for _, c := range h.snapshotClients() {
		if !c.alive.Swap(false) {
			h.logger.Info("websocket client missed heartbeat", zap.String("client_id", c.id))
			h.remove(c)
			continue
		}
		if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
			h.remove(c)
		}
	}
}

func (h *Hub) sync() {
	lowStock, err := h.source.LowStockMedicines()
	if err != nil {
		h.logger.Error("periodic sync failed", zap.Error(err))
		return
	}
	if len(lowStock) > 0 {
		h.Publish(InventoryUpdate{LowStockMedicines: lowStock})
	}

	lastSync := h.now()
	h.Publish(ConnectionStatus{
		Status:      StatusSynced,
		ClientCount: h.ClientCount(),
		LastSync:    &lastSync,
	})
}
