package http

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"stockdash/internal/chart"
	"stockdash/internal/dashboard"
	"stockdash/internal/dataset"
	apierrors "stockdash/internal/errors"
	"stockdash/internal/services"
)

// MockDashboardService is a mock implementation of DashboardServiceInterface
type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) Build(ctx context.Context, intent dashboard.Intent) (*dashboard.Dashboard, error) {
	args := m.Called(intent)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dashboard.Dashboard), args.Error(1)
}

func (m *MockDashboardService) CloseChart(ctx context.Context) (*chart.Spec, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*chart.Spec), args.Error(1)
}

func (m *MockDashboardService) MonthlyCharts(ctx context.Context) ([]*chart.Spec, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*chart.Spec), args.Error(1)
}

func (m *MockDashboardService) Chart(ctx context.Context, name string) (*chart.Spec, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*chart.Spec), args.Error(1)
}

func (m *MockDashboardService) Compose(ctx context.Context, req dashboard.ChartRequest) (*chart.Spec, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*chart.Spec), args.Error(1)
}

func (m *MockDashboardService) Columns(ctx context.Context) ([]string, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockDashboardService) Preview(ctx context.Context, rows int) (dashboard.Preview, error) {
	args := m.Called(rows)
	return args.Get(0).(dashboard.Preview), args.Error(1)
}

func (m *MockDashboardService) Resolve(ctx context.Context, logical string) (services.Resolution, error) {
	args := m.Called(logical)
	return args.Get(0).(services.Resolution), args.Error(1)
}

func (m *MockDashboardService) Info(ctx context.Context) (services.DatasetInfo, error) {
	args := m.Called()
	return args.Get(0).(services.DatasetInfo), args.Error(1)
}

var _ DashboardServiceInterface = (*MockDashboardService)(nil)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testErrorHandler() *apierrors.ErrorHandler {
	return apierrors.NewErrorHandler(testLogger(), false)
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

// sampleSpec builds a two-point chart named name.
func sampleSpec(t *testing.T, name string) *chart.Spec {
	t.Helper()
	spec, err := chart.Compose(
		chart.Layout{Title: name, XAxisTitle: "Date", YAxisTitle: "Price"},
		chart.KindContinuous,
		chart.TraceInput{
			Name: name,
			X:    []time.Time{day("2024-01-02"), day("2024-01-03")},
			Y:    []dataset.Value{dataset.Float(101.5), dataset.Missing},
		},
	)
	require.NoError(t, err)
	spec.Name = name
	return spec
}

func samplePreview() dashboard.Preview {
	return dashboard.Preview{
		DateColumn: "Date",
		Columns:    []string{"Close", "Gold", "Oil"},
		Rows: []dataset.Row{
			{Date: day("2024-01-02"), Values: []dataset.Value{dataset.Float(101.5), dataset.Float(2050), dataset.Float(72.1)}},
			{Date: day("2024-01-03"), Values: []dataset.Value{dataset.Float(102), dataset.Missing, dataset.Float(72.4)}},
		},
	}
}
