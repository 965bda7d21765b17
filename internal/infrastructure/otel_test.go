package infrastructure

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockdash/internal/config"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestInitializeOTel_Metrics(t *testing.T) {
	cfg := OTelConfigFrom(config.TelemetryConfig{
		ServiceName:    "stockdash-test",
		TraceExporter:  "none",
		MetricsEnabled: true,
	}, "test")

	providers, err := InitializeOTel(cfg, testLogger())
	require.NoError(t, err)
	defer providers.Shutdown(context.Background())

	assert.Nil(t, providers.TracerProvider)
	assert.NotNil(t, providers.Tracer)
	require.NotNil(t, providers.MeterProvider)
	require.NotNil(t, providers.PrometheusHTTP)

	metrics, err := CreateBusinessMetrics(providers.Meter)
	require.NoError(t, err)

	ctx := context.Background()
	RecordDashboardBuild(ctx, metrics, true, 25*time.Millisecond, nil)
	RecordDashboardBuild(ctx, metrics, false, time.Millisecond, errors.New("boom"))
	metrics.DatasetRows.Record(ctx, 42)

	rec := httptest.NewRecorder()
	providers.PrometheusHTTP.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "dashboard_builds_total")
	assert.Contains(t, body, `status="failure"`)
	assert.Contains(t, body, "dashboard_build_duration_seconds")
	assert.Regexp(t, `dataset_rows\{[^}]*\} 42`, body)
}

func TestInitializeOTel_StdoutTracing(t *testing.T) {
	providers, err := InitializeOTel(&OTelConfig{
		ServiceName:   "stockdash-test",
		TraceExporter: "stdout",
		SampleRatio:   1,
	}, testLogger())
	require.NoError(t, err)

	require.NotNil(t, providers.TracerProvider)
	assert.Nil(t, providers.MeterProvider)

	ctx, span := providers.Tracer.Start(context.Background(), "test-operation")
	assert.Len(t, TraceIDFromContext(ctx), 32)
	RecordError(ctx, errors.New("failed"))
	span.End()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.NoError(t, providers.Shutdown(ctx))
}

func TestInitializeOTel_UnknownExporter(t *testing.T) {
	_, err := InitializeOTel(&OTelConfig{TraceExporter: "jaeger"}, testLogger())
	assert.Error(t, err)
}

func TestNoopMetrics(t *testing.T) {
	m := NoopMetrics()
	require.NotNil(t, m)
	assert.NotPanics(t, func() {
		RecordDashboardBuild(context.Background(), m, false, time.Second, nil)
		RecordDashboardBuild(context.Background(), nil, false, time.Second, nil)
	})
	assert.Empty(t, TraceIDFromContext(context.Background()))
}
