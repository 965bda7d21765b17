package websocket

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"stockdash/internal/config"
	"stockdash/internal/dashboard"
	"stockdash/internal/infrastructure"
	"stockdash/pkg/contracts/events"
)

const sendBuffer = 16

// withDefaults fills zero timings so the pumps never run with a zero ticker or deadline.
func withDefaults(cfg config.WebSocketConfig) config.WebSocketConfig {
	if cfg.WriteWait <= 0 {
		cfg.WriteWait = 10 * time.Second
	}
	if cfg.PongWait <= 0 {
		cfg.PongWait = 60 * time.Second
	}
	if cfg.PingPeriod <= 0 || cfg.PingPeriod >= cfg.PongWait {
		cfg.PingPeriod = cfg.PongWait * 9 / 10
	}
	if cfg.MaxMessageSize <= 0 {
		cfg.MaxMessageSize = 4096
	}
	return cfg
}

// Client is one dashboard session. Intents are handled in arrival order, so the last
// snapshot a client receives always reflects its last intent.
type Client struct {
	hub     *Hub
	conn    Connection
	builder DashboardBuilder
	cfg     config.WebSocketConfig

	// Buffered channel of outbound messages
	send   chan []byte
	mu     sync.Mutex
	closed bool

	id          string
	traceID     string
	remoteAddr  string
	connectedAt time.Time

	// ctx carries the session trace id and is cancelled when the read pump exits.
	ctx    context.Context
	cancel context.CancelFunc

	logger *slog.Logger
}

// NewClient creates a session over conn. traceID may be empty.
func NewClient(hub *Hub, conn Connection, builder DashboardBuilder, cfg config.WebSocketConfig, traceID string, logger *slog.Logger) *Client {
	id := uuid.New().String()
	base := context.Background()
	if traceID != "" {
		base = infrastructure.WithTraceID(base, traceID)
	}
	base = infrastructure.EnsureTraceID(base)
	traceID = infrastructure.GetTraceID(base)
	ctx, cancel := context.WithCancel(base)

	return &Client{
		hub:         hub,
		conn:        conn,
		builder:     builder,
		cfg:         withDefaults(cfg),
		send:        make(chan []byte, sendBuffer),
		id:          id,
		traceID:     traceID,
		remoteAddr:  conn.RemoteAddr(),
		connectedAt: time.Now(),
		ctx:         ctx,
		cancel:      cancel,
		logger: infrastructure.WithComponent(logger, "websocket.client").
			With(slog.String("session_id", id)),
	}
}

// ID returns the session id
func (c *Client) ID() string { return c.id }

// Start runs the pumps in their own goroutines.
func (c *Client) Start() {
	go c.WritePump()
	go c.ReadPump()
}

// ReadPump reads intents until the peer goes away.
func (c *Client) ReadPump() {
	defer func() {
		c.cancel()
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(c.cfg.MaxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(c.cfg.PongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(c.cfg.PongWait))
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.WarnContext(c.ctx, "unexpected close", slog.String("error", err.Error()))
			}
			return
		}
		c.handle(bytes.TrimSpace(message))
	}
}

func (c *Client) handle(message []byte) {
	var intent events.IntentMessage
	if err := json.Unmarshal(message, &intent); err != nil {
		c.record("in", "invalid")
		c.sendError("", &events.ErrorData{Code: "INVALID_MESSAGE", Message: "message is not valid JSON"})
		return
	}

	switch intent.Type {
	case "", events.MessageTypeIntent:
	case events.MessageTypeHeartbeat:
		c.record("in", string(intent.Type))
		return
	default:
		c.record("in", "unknown")
		c.sendError(intent.ID, &events.ErrorData{
			Code:    "UNKNOWN_MESSAGE_TYPE",
			Message: fmt.Sprintf("unsupported message type %q", intent.Type),
		})
		return
	}
	c.record("in", string(events.MessageTypeIntent))

	monthly := intent.ShowMonthly()
	start := time.Now()
	d, err := c.builder.Build(c.ctx, dashboard.Intent{ShowMonthly: monthly})
	if err != nil {
		c.logger.WarnContext(c.ctx, "dashboard build failed",
			slog.Bool("monthly", monthly),
			slog.String("error", err.Error()))
		c.sendError(intent.ID, errorData(err))
		return
	}

	c.logger.DebugContext(c.ctx, "snapshot built",
		slog.Bool("monthly", monthly),
		slog.Int("charts", len(d.Charts())),
		slog.Duration("duration", time.Since(start)))
	c.sendMessage(intent.ID, events.MessageTypeSnapshot, d)
}

// WritePump writes queued messages and keeps the connection alive with pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(c.cfg.PingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteWait))
			if !ok {
				// The hub closed the channel
				_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.logger.WarnContext(c.ctx, "write failed", slog.String("error", err.Error()))
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.logger.DebugContext(c.ctx, "ping failed", slog.String("error", err.Error()))
				return
			}
		}
	}
}

func (c *Client) sendMessage(id string, typ events.MessageType, data interface{}) {
	msg := events.WebSocketMessage{
		BaseMessage: events.BaseMessage{
			ID:        id,
			Type:      typ,
			Timestamp: time.Now().UTC(),
			TraceID:   c.traceID,
		},
		Data: data,
	}
	b, err := json.Marshal(msg)
	if err != nil {
		c.logger.ErrorContext(c.ctx, "marshal message", slog.String("type", string(typ)), slog.String("error", err.Error()))
		return
	}
	if !c.enqueue(b) {
		c.logger.WarnContext(c.ctx, "send queue unavailable, message dropped", slog.String("type", string(typ)))
		return
	}
	c.record("out", string(typ))
}

func (c *Client) sendError(id string, data *events.ErrorData) {
	c.sendMessage(id, events.MessageTypeError, data)
}

func (c *Client) enqueue(b []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- b:
		return true
	default:
		return false
	}
}

func (c *Client) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

func (c *Client) record(direction, typ string) {
	c.hub.metrics.WebSocketMessages.Add(c.ctx, 1, metric.WithAttributes(
		attribute.String("direction", direction),
		attribute.String("type", typ),
	))
}
