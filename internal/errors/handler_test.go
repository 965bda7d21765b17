package errors

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"stockdash/internal/chart"
	"stockdash/internal/dataset"
	"stockdash/internal/infrastructure"
)

func newTestHandler(includeStack bool) (*ErrorHandler, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return NewErrorHandler(logger, includeStack), &buf
}

func TestErrorHandler_HandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantType   string
		check      func(t *testing.T, body gjson.Result)
	}{
		{
			name:       "column not found",
			err:        fmt.Errorf("monthly chart: %w", &dataset.ColumnNotFoundError{Name: "Oil", Candidates: []string{"Oil", "oil"}}),
			wantStatus: http.StatusNotFound,
			wantType:   TypeColumnNotFound,
			check: func(t *testing.T, body gjson.Result) {
				assert.Equal(t, "Oil", body.Get("column").String())
				assert.Equal(t, `["Oil","oil"]`, body.Get("candidates").Raw)
			},
		},
		{
			name:       "date parse",
			err:        &dataset.DateParseError{Row: 3, Value: "yesterday"},
			wantStatus: http.StatusUnprocessableEntity,
			wantType:   TypeDateParse,
			check: func(t *testing.T, body gjson.Result) {
				assert.Equal(t, int64(3), body.Get("row").Int())
				assert.Equal(t, "yesterday", body.Get("value").String())
			},
		},
		{
			name:       "trace length mismatch",
			err:        &chart.TraceLengthMismatchError{Trace: "Actual Close", X: 5, Y: 4},
			wantStatus: http.StatusUnprocessableEntity,
			wantType:   TypeTraceLength,
			check: func(t *testing.T, body gjson.Result) {
				assert.Equal(t, int64(5), body.Get("x_len").Int())
				assert.Equal(t, int64(4), body.Get("y_len").Int())
			},
		},
		{
			name:       "no traces",
			err:        chart.ErrNoTraces,
			wantStatus: http.StatusUnprocessableEntity,
			wantType:   TypeChartInvalid,
		},
		{
			name:       "api error",
			err:        ErrDatasetUnavailable,
			wantStatus: http.StatusServiceUnavailable,
			wantType:   TypeServiceDown,
			check: func(t *testing.T, body gjson.Result) {
				assert.Equal(t, "DATASET_UNAVAILABLE", body.Get("error_code").String())
			},
		},
		{
			name:       "validation details",
			err:        ErrValidation("rows", "must be at most 100"),
			wantStatus: http.StatusBadRequest,
			wantType:   TypeValidation,
			check: func(t *testing.T, body gjson.Result) {
				assert.Equal(t, "rows", body.Get("details.errors.0.field").String())
			},
		},
		{
			name:       "deadline",
			err:        fmt.Errorf("build: %w", context.DeadlineExceeded),
			wantStatus: http.StatusGatewayTimeout,
			wantType:   TypeTimeout,
		},
		{
			name:       "unknown error",
			err:        io.ErrUnexpectedEOF,
			wantStatus: http.StatusInternalServerError,
			wantType:   TypeInternal,
			check: func(t *testing.T, body gjson.Result) {
				assert.NotContains(t, body.Get("detail").String(), "EOF")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newTestHandler(false)
			req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
			req = req.WithContext(infrastructure.WithTraceID(req.Context(), "trace-123"))
			rec := httptest.NewRecorder()

			h.HandleError(rec, req, tt.err)

			require.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, ProblemContentType, rec.Header().Get("Content-Type"))

			body := gjson.Parse(rec.Body.String())
			assert.Equal(t, tt.wantType, body.Get("type").String())
			assert.Equal(t, "/api/v1/dashboard", body.Get("instance").String())
			assert.Equal(t, "trace-123", body.Get("trace_id").String())
			assert.False(t, body.Get("stack").Exists())
			if tt.check != nil {
				tt.check(t, body)
			}
		})
	}
}

func TestErrorHandler_HandleNilError(t *testing.T) {
	h, logs := newTestHandler(false)
	rec := httptest.NewRecorder()

	h.HandleError(rec, httptest.NewRequest(http.MethodGet, "/", nil), nil)

	assert.Zero(t, rec.Body.Len())
	assert.Zero(t, logs.Len())
}

func TestErrorHandler_LogLevel(t *testing.T) {
	h, logs := newTestHandler(false)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/columns", nil)

	h.HandleError(httptest.NewRecorder(), req, ErrNotFound)
	assert.Equal(t, "WARN", gjson.Get(logs.String(), "level").String())

	logs.Reset()
	h.HandleError(httptest.NewRecorder(), req, io.EOF)
	assert.Equal(t, "ERROR", gjson.Get(logs.String(), "level").String())
}

func TestErrorHandler_IncludeStack(t *testing.T) {
	h, _ := newTestHandler(true)
	rec := httptest.NewRecorder()

	h.HandleError(rec, httptest.NewRequest(http.MethodGet, "/", nil), io.EOF)

	assert.True(t, gjson.Get(rec.Body.String(), "stack").Exists())
}

func TestRecoveryMiddleware(t *testing.T) {
	h, logs := newTestHandler(false)
	panicking := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("chart exploded")
	})

	rec := httptest.NewRecorder()
	RecoveryMiddleware(h)(panicking).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/charts", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, TypeInternal, gjson.Get(rec.Body.String(), "type").String())
	assert.NotContains(t, rec.Body.String(), "chart exploded")
	assert.Contains(t, logs.String(), "panic recovered")
}

func TestRecoveryMiddleware_AbortHandler(t *testing.T) {
	h, _ := newTestHandler(false)
	aborting := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(http.ErrAbortHandler)
	})

	assert.PanicsWithValue(t, http.ErrAbortHandler, func() {
		RecoveryMiddleware(h)(aborting).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}

func TestErrorHandler_NotFoundAndMethodNotAllowed(t *testing.T) {
	h, _ := newTestHandler(false)

	rec := httptest.NewRecorder()
	h.NotFound(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, TypeNotFound, gjson.Get(rec.Body.String(), "type").String())

	rec = httptest.NewRecorder()
	h.MethodNotAllowed(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/dashboard", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Contains(t, gjson.Get(rec.Body.String(), "detail").String(), "DELETE")
}
