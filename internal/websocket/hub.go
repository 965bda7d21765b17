package websocket

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"stockdash/internal/infrastructure"
)

// Hub tracks the open dashboard sessions. Each session is served independently; the hub
// only owns their lifecycle so shutdown can close them all.
type Hub struct {
	clients    map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	mu      sync.RWMutex
	metrics *infrastructure.BusinessMetrics
	logger  *slog.Logger

	totalSessions int64
}

// NewHub creates a new Hub. A nil metrics set records nothing.
func NewHub(metrics *infrastructure.BusinessMetrics, logger *slog.Logger) *Hub {
	if metrics == nil {
		metrics = infrastructure.NoopMetrics()
	}
	return &Hub{
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		metrics:    metrics,
		logger:     infrastructure.WithComponent(logger, "websocket.hub"),
	}
}

// Run serves register and unregister requests until ctx is cancelled, then closes every
// remaining session.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				client.closeSend()
				delete(h.clients, client)
				h.metrics.WebSocketSessions.Add(ctx, -1)
			}
			h.mu.Unlock()
			h.logger.Info("hub stopped", slog.Int64("total_sessions", h.totalSessions))
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = struct{}{}
			h.totalSessions++
			count := len(h.clients)
			h.mu.Unlock()

			h.metrics.WebSocketSessions.Add(ctx, 1)
			h.logger.InfoContext(client.ctx, "session opened",
				slog.String("session_id", client.id),
				slog.String("remote_addr", client.remoteAddr),
				slog.Int("active_sessions", count))

		case client := <-h.unregister:
			h.mu.Lock()
			_, ok := h.clients[client]
			if ok {
				delete(h.clients, client)
			}
			count := len(h.clients)
			h.mu.Unlock()
			if !ok {
				continue
			}

			client.closeSend()
			h.metrics.WebSocketSessions.Add(ctx, -1)
			h.logger.InfoContext(client.ctx, "session closed",
				slog.String("session_id", client.id),
				slog.Duration("duration", time.Since(client.connectedAt)),
				slog.Int("active_sessions", count))
		}
	}
}

// Register adds a client. It returns false once the hub has stopped.
func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

// Unregister removes a client and closes its send queue.
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// ActiveSessions returns the number of open sessions
func (h *Hub) ActiveSessions() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Done is closed when Run returns.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}
