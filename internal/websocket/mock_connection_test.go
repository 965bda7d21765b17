package websocket

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"stockdash/internal/dashboard"
)

// fakeConnection is an in-memory Connection. Reads block until a message is queued or the
// connection is closed.
type fakeConnection struct {
	mu      sync.Mutex
	written [][]byte
	closed  bool
	limit   int64

	incoming chan []byte
	done     chan struct{}
	once     sync.Once
}

func newFakeConnection() *fakeConnection {
	return &fakeConnection{incoming: make(chan []byte, 8), done: make(chan struct{})}
}

func (f *fakeConnection) WriteMessage(_ int, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return errors.New("connection closed")
	}
	f.written = append(f.written, data)
	return nil
}

func (f *fakeConnection) ReadMessage() (int, []byte, error) {
	select {
	case msg := <-f.incoming:
		return 1, msg, nil
	case <-f.done:
		return 0, nil, io.EOF
	}
}

func (f *fakeConnection) Close() error {
	f.once.Do(func() {
		f.mu.Lock()
		f.closed = true
		f.mu.Unlock()
		close(f.done)
	})
	return nil
}

func (f *fakeConnection) SetReadDeadline(time.Time) error  { return nil }
func (f *fakeConnection) SetWriteDeadline(time.Time) error { return nil }
func (f *fakeConnection) SetPongHandler(func(string) error) {}
func (f *fakeConnection) RemoteAddr() string                { return "127.0.0.1:50000" }

func (f *fakeConnection) SetReadLimit(limit int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.limit = limit
}

// mockBuilder is a testify mock of DashboardBuilder
type mockBuilder struct {
	mock.Mock
}

func (m *mockBuilder) Build(ctx context.Context, intent dashboard.Intent) (*dashboard.Dashboard, error) {
	args := m.Called(intent)
	d, _ := args.Get(0).(*dashboard.Dashboard)
	return d, args.Error(1)
}

func (m *mockBuilder) Columns(ctx context.Context) ([]string, error) {
	args := m.Called()
	cols, _ := args.Get(0).([]string)
	return cols, args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
