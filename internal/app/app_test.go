package app

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"stockdash/internal/config"
	"stockdash/internal/dataset"
	"stockdash/internal/infrastructure"
)

func testTable(t *testing.T) *dataset.Table {
	t.Helper()
	header := []string{"Date", "Close", "Gold", "Oil"}
	rows := [][]string{
		{"2024-01-02", "100.5", "2050", "72.1"},
		{"2024-01-31", "101.0", "2040", "75.0"},
		{"2024-02-01", "102.0", "2035", ""},
		{"2024-02-29", "103.5", "2060", "78.3"},
		{"2024-03-28", "104.0", "2210", "81.2"},
	}
	table, err := dataset.FromRows(header, rows, dataset.Options{})
	require.NoError(t, err)
	return table
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 0
	cfg.Server.ShutdownTimeout = 5 * time.Second
	cfg.Security.RateLimit.Enabled = false
	cfg.Telemetry.TraceExporter = "none"
	return cfg
}

func newTestApp(t *testing.T, cfg *config.Config, table *dataset.Table) *Application {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	providers, err := infrastructure.InitializeOTel(infrastructure.OTelConfigFrom(cfg.Telemetry, "test"), logger)
	require.NoError(t, err)

	a, err := NewApplication(cfg, table, logger, providers)
	require.NoError(t, err)
	t.Cleanup(func() { _ = providers.Shutdown(context.Background()) })
	return a
}

func get(t *testing.T, a *Application, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	a.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestRoutes(t *testing.T) {
	a := newTestApp(t, testConfig(), testTable(t))

	tests := []struct {
		name   string
		target string
		status int
		check  func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name: "page", target: "/", status: http.StatusOK,
			check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Contains(t, rec.Body.String(), "Show Monthly Close for Gold and Oil")
				assert.Contains(t, rec.Body.String(), "<td>NaN</td>")
			},
		},
		{
			name: "dashboard", target: "/api/dashboard", status: http.StatusOK,
			check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				body := gjson.Parse(rec.Body.String())
				assert.Equal(t, "close", body.Get("data.close.name").String())
				assert.Equal(t, int64(0), body.Get("data.monthly.#").Int())
				assert.Equal(t, int64(5), body.Get("data.preview.rows.#").Int())
			},
		},
		{
			name: "dashboard with monthly charts", target: "/api/dashboard?monthly=true", status: http.StatusOK,
			check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				body := gjson.Parse(rec.Body.String())
				assert.Equal(t, []interface{}{"monthly-gold", "monthly-oil"}, body.Get("data.monthly.#.name").Value())
				// Last observation of each month wins.
				assert.Equal(t, []interface{}{2040.0, 2060.0, 2210.0}, body.Get("data.monthly.0.data.0.y").Value())
			},
		},
		{
			name: "monthly oil chart", target: "/api/charts/monthly-oil", status: http.StatusOK,
			check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, []interface{}{75.0, 78.3, 81.2}, gjson.Get(rec.Body.String(), "data.data.0.y").Value())
			},
		},
		{
			name: "columns", target: "/api/data/columns", status: http.StatusOK,
			check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, "Date", gjson.Get(rec.Body.String(), "data.date_column").String())
			},
		},
		{
			name: "resolve", target: "/api/data/resolve/oil", status: http.StatusOK,
			check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, "Oil", gjson.Get(rec.Body.String(), "data.column").String())
			},
		},
		{
			name: "ready", target: "/api/health/ready", status: http.StatusOK,
			check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, "ready", gjson.Get(rec.Body.String(), "status").String())
			},
		},
		{
			name: "version", target: "/api/version", status: http.StatusOK,
			check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, "v1", gjson.Get(rec.Body.String(), "api_version").String())
			},
		},
		{
			name: "metrics", target: "/metrics", status: http.StatusOK,
			check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Contains(t, rec.Body.String(), "dataset_rows")
			},
		},
		{
			name: "unknown route", target: "/api/nope", status: http.StatusNotFound,
			check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
			},
		},
		{
			name: "unknown chart", target: "/api/charts/monthly-copper", status: http.StatusNotFound,
			check: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, "NOT_FOUND", gjson.Get(rec.Body.String(), "error_code").String())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, a, tt.target)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			tt.check(t, rec)
		})
	}
}

func TestMiddlewareHeaders(t *testing.T) {
	a := newTestApp(t, testConfig(), testTable(t))

	rec := get(t, a, "/api/health")

	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Contains(t, rec.Header().Get("Content-Security-Policy"), "https://cdn.plot.ly")
}

func TestMethodNotAllowed(t *testing.T) {
	a := newTestApp(t, testConfig(), testTable(t))

	rec := httptest.NewRecorder()
	a.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/version", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestComposeEndToEnd(t *testing.T) {
	a := newTestApp(t, testConfig(), testTable(t))

	req := httptest.NewRequest(http.MethodPost, "/api/charts/compose",
		strings.NewReader(`{"columns":["gold","oil"],"period":"quarterly"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	a.Router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := gjson.Parse(rec.Body.String())
	assert.Equal(t, int64(2), body.Get("data.data.#").Int())
	assert.Equal(t, []interface{}{2210.0}, body.Get("data.data.0.y").Value())
}

func TestClientLogs(t *testing.T) {
	a := newTestApp(t, testConfig(), testTable(t))

	req := httptest.NewRequest(http.MethodPost, "/api/logs",
		strings.NewReader(`{"level":"error","message":"chart render failed"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	a.Router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestWithoutDataset(t *testing.T) {
	a := newTestApp(t, testConfig(), nil)

	for _, target := range []string{"/", "/api/dashboard", "/api/charts/close", "/api/data/preview", "/api/health/ready"} {
		t.Run(target, func(t *testing.T) {
			rec := get(t, a, target)
			assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		})
	}

	assert.Equal(t, http.StatusOK, get(t, a, "/api/health/live").Code)
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.Security.RateLimit = config.RateLimitConfig{Enabled: true, RPS: 0.001, Burst: 1}
	a := newTestApp(t, cfg, testTable(t))

	assert.Equal(t, http.StatusOK, get(t, a, "/api/health").Code)
	rec := get(t, a, "/api/health")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
}

func TestWebSocketThroughRouter(t *testing.T) {
	a := newTestApp(t, testConfig(), testTable(t))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go a.WebSocketHub.Run(ctx)

	server := httptest.NewServer(a.Router)
	defer server.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))

	var connect map[string]interface{}
	require.NoError(t, conn.ReadJSON(&connect))
	assert.Equal(t, "connect", connect["type"])

	require.NoError(t, conn.WriteJSON(map[string]interface{}{"type": "dashboard:intent", "data": map[string]bool{"monthly": true}}))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	snapshot := gjson.ParseBytes(msg)
	assert.Equal(t, "dashboard:snapshot", snapshot.Get("type").String())
	assert.Equal(t, int64(2), snapshot.Get("data.monthly.#").Int())
	assert.Equal(t, 1, a.WebSocketHub.ActiveSessions())
	assert.Equal(t, "ready", a.HealthService.ReadinessCheck(ctx).Status)
}

func TestServe(t *testing.T) {
	a := newTestApp(t, testConfig(), testTable(t))
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/api/health/live")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func TestAliases(t *testing.T) {
	aliases := Aliases(config.DatasetConfig{Aliases: map[string][]string{"oil": {"Brent", "WTI"}}})

	assert.Equal(t, []string{"Brent", "WTI"}, aliases.Candidates("oil"))
	assert.Equal(t, []string{"Gold"}, aliases.Candidates("gold"))
}
