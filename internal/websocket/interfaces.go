package websocket

import (
	"context"
	"time"

	"stockdash/internal/dashboard"
)

// Connection defines the interface for WebSocket connections
// This allows for proper mocking in tests
type Connection interface {
	WriteMessage(messageType int, data []byte) error
	ReadMessage() (messageType int, p []byte, err error)
	Close() error
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error
	SetReadLimit(limit int64)
	SetPongHandler(h func(string) error)
	RemoteAddr() string
}

// DashboardBuilder evaluates the page model for an intent.
type DashboardBuilder interface {
	Build(ctx context.Context, intent dashboard.Intent) (*dashboard.Dashboard, error)
	Columns(ctx context.Context) ([]string, error)
}
