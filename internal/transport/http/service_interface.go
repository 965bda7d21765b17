package http

import (
	"context"

	"stockdash/internal/chart"
	"stockdash/internal/dashboard"
	"stockdash/internal/services"
)

// DashboardServiceInterface defines the dashboard operations the handlers need
type DashboardServiceInterface interface {
	Build(ctx context.Context, intent dashboard.Intent) (*dashboard.Dashboard, error)
	CloseChart(ctx context.Context) (*chart.Spec, error)
	MonthlyCharts(ctx context.Context) ([]*chart.Spec, error)
	Chart(ctx context.Context, name string) (*chart.Spec, error)
	Compose(ctx context.Context, req dashboard.ChartRequest) (*chart.Spec, error)
	Columns(ctx context.Context) ([]string, error)
	Preview(ctx context.Context, rows int) (dashboard.Preview, error)
	Resolve(ctx context.Context, logical string) (services.Resolution, error)
	Info(ctx context.Context) (services.DatasetInfo, error)
}

var _ DashboardServiceInterface = (*services.DashboardService)(nil)
