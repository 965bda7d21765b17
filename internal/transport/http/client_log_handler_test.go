package http

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"
)

func TestClientLogHandler_Handle(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		expectedStatus int
		expectedLog    string
		expectedLevel  string
	}{
		{
			name:           "render failure",
			body:           `{"level":"error","message":"chart render failed","source":"dashboard","data":{"chart":"monthly-gold"}}`,
			expectedStatus: http.StatusNoContent,
			expectedLog:    "[CLIENT] chart render failed",
			expectedLevel:  "ERROR",
		},
		{
			name:           "warning",
			body:           `{"level":"warn","message":"socket closed"}`,
			expectedStatus: http.StatusNoContent,
			expectedLog:    "[CLIENT] socket closed",
			expectedLevel:  "WARN",
		},
		{
			name:           "debug",
			body:           `{"level":"debug","message":"toggle clicked"}`,
			expectedStatus: http.StatusNoContent,
			expectedLog:    "[CLIENT] toggle clicked",
			expectedLevel:  "DEBUG",
		},
		{
			name:           "unknown level",
			body:           `{"level":"fatal","message":"boom"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing message",
			body:           `{"level":"info"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "empty body",
			body:           ``,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			logger := slog.New(slog.NewJSONHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
			handler := NewClientLogHandler(logger, testErrorHandler())

			req := httptest.NewRequest(http.MethodPost, "/api/logs", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			handler.Handle(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code, rec.Body.String())
			if tt.expectedLog == "" {
				assert.Empty(t, logs.String())
				return
			}
			entry := gjson.Parse(logs.String())
			assert.Equal(t, tt.expectedLog, entry.Get("msg").String())
			assert.Equal(t, tt.expectedLevel, entry.Get("level").String())
			assert.Equal(t, "client_log", entry.Get("handler").String())
		})
	}
}
