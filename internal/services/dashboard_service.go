package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"stockdash/internal/chart"
	"stockdash/internal/dashboard"
	"stockdash/internal/dataset"
	"stockdash/internal/infrastructure"
)

// DashboardService runs the dashboard pipeline against the table loaded at start-up.
// The table is read-only, so a single service is shared by every request.
type DashboardService struct {
	table   *dataset.Table
	source  string
	opts    dashboard.Options
	tracer  trace.Tracer
	metrics *infrastructure.BusinessMetrics
	logger  *slog.Logger
}

// DatasetInfo summarises the loaded table.
type DatasetInfo struct {
	Source     string    `json:"source"`
	Rows       int       `json:"rows"`
	DateColumn string    `json:"date_column"`
	Columns    []string  `json:"columns"`
	First      time.Time `json:"first"`
	Last       time.Time `json:"last"`
}

// Resolution is the outcome of resolving a logical column name.
type Resolution struct {
	Logical    string   `json:"logical"`
	Column     string   `json:"column"`
	Candidates []string `json:"candidates"`
}

// NewDashboardService creates the service. A nil table leaves the service up but every
// pipeline call fails with ErrDatasetNotLoaded. Nil tracer and metrics fall back to no-ops.
func NewDashboardService(table *dataset.Table, source string, opts dashboard.Options, tracer trace.Tracer, metrics *infrastructure.BusinessMetrics, logger *slog.Logger) *DashboardService {
	if logger == nil {
		logger = slog.Default()
	}
	if tracer == nil {
		tracer = otel.Tracer(infrastructure.InstrumentationName)
	}
	if metrics == nil {
		metrics = infrastructure.NoopMetrics()
	}
	if opts.Aliases == nil {
		opts.Aliases = dataset.DefaultAliases()
	}

	s := &DashboardService{
		table:   table,
		source:  source,
		opts:    opts,
		tracer:  tracer,
		metrics: metrics,
		logger:  logger.With(slog.String("component", "dashboard_service")),
	}

	if table != nil {
		metrics.DatasetRows.Record(context.Background(), int64(table.Len()))
		s.logger.Info("DashboardService initialized",
			slog.String("source", source),
			slog.Int("rows", table.Len()),
			slog.Any("columns", table.Columns()))
	} else {
		s.logger.Warn("DashboardService initialized without a dataset", slog.String("source", source))
	}
	return s
}

// Loaded reports whether a dataset is available.
func (s *DashboardService) Loaded() bool {
	return s.table != nil
}

// Build evaluates the full dashboard for intent.
func (s *DashboardService) Build(ctx context.Context, intent dashboard.Intent) (*dashboard.Dashboard, error) {
	ctx, span := s.tracer.Start(ctx, "dashboard.build",
		trace.WithAttributes(attribute.Bool("dashboard.monthly", intent.ShowMonthly)))
	defer span.End()

	if err := s.ready(ctx); err != nil {
		return nil, err
	}

	start := time.Now()
	d, err := dashboard.Build(s.table, intent, s.opts)
	elapsed := time.Since(start)
	infrastructure.RecordDashboardBuild(ctx, s.metrics, intent.ShowMonthly, elapsed, err)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		s.logger.ErrorContext(ctx, "dashboard build failed",
			slog.Bool("monthly", intent.ShowMonthly),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("build dashboard: %w", err)
	}

	s.recordBuckets(ctx, d.Monthly)
	span.SetAttributes(attribute.Int("dashboard.charts", len(d.Charts())))
	s.logger.DebugContext(ctx, "dashboard built",
		slog.Bool("monthly", intent.ShowMonthly),
		slog.Int("charts", len(d.Charts())),
		slog.Duration("duration", elapsed))
	return d, nil
}

// CloseChart returns the continuous closing price chart.
func (s *DashboardService) CloseChart(ctx context.Context) (*chart.Spec, error) {
	ctx, span := s.tracer.Start(ctx, "dashboard.close_chart")
	defer span.End()

	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	spec, err := dashboard.CloseChart(s.table, s.opts)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		return nil, err
	}
	return spec, nil
}

// MonthlyCharts returns one resampled chart per configured commodity.
func (s *DashboardService) MonthlyCharts(ctx context.Context) ([]*chart.Spec, error) {
	ctx, span := s.tracer.Start(ctx, "dashboard.monthly_charts")
	defer span.End()

	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	specs, err := dashboard.MonthlyCharts(s.table, s.opts)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		return nil, err
	}
	s.recordBuckets(ctx, specs)
	return specs, nil
}

// Chart returns one preset chart by name ("close", "monthly-gold", ...).
func (s *DashboardService) Chart(ctx context.Context, name string) (*chart.Spec, error) {
	if name == chart.CloseChartName {
		return s.CloseChart(ctx)
	}
	if !strings.HasPrefix(name, chart.MonthlyPrefix) {
		return nil, &ChartNotFoundError{Name: name}
	}

	specs, err := s.MonthlyCharts(ctx)
	if err != nil {
		return nil, err
	}
	for _, spec := range specs {
		if spec.Name == name {
			return spec, nil
		}
	}
	return nil, &ChartNotFoundError{Name: name}
}

// Compose builds an ad hoc chart over table columns.
func (s *DashboardService) Compose(ctx context.Context, req dashboard.ChartRequest) (*chart.Spec, error) {
	ctx, span := s.tracer.Start(ctx, "dashboard.compose",
		trace.WithAttributes(attribute.StringSlice("dashboard.columns", req.Columns)))
	defer span.End()

	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	spec, err := dashboard.Compose(s.table, req, s.opts)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		s.logger.WarnContext(ctx, "compose failed",
			slog.Any("columns", req.Columns),
			slog.String("error", err.Error()))
		return nil, err
	}
	if req.Period != nil {
		s.recordBuckets(ctx, []*chart.Spec{spec})
	}
	return spec, nil
}

// Columns lists the numeric columns in table order.
func (s *DashboardService) Columns(ctx context.Context) ([]string, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	return s.table.Columns(), nil
}

// Preview returns the first rows of the table. rows <= 0 uses the configured default.
func (s *DashboardService) Preview(ctx context.Context, rows int) (dashboard.Preview, error) {
	if err := s.ready(ctx); err != nil {
		return dashboard.Preview{}, err
	}
	if rows <= 0 {
		rows = s.opts.PreviewRows
	}
	if rows <= 0 {
		rows = dashboard.DefaultPreviewRows
	}
	return dashboard.PreviewOf(s.table, rows), nil
}

// Resolve maps a logical column name to the physical column.
func (s *DashboardService) Resolve(ctx context.Context, logical string) (Resolution, error) {
	if err := s.ready(ctx); err != nil {
		return Resolution{}, err
	}
	if strings.TrimSpace(logical) == "" {
		return Resolution{}, fmt.Errorf("%w: empty column name", ErrInvalidInput)
	}

	candidates := s.opts.Aliases.Candidates(logical)
	column, err := s.opts.Aliases.Resolve(logical, s.table)
	if err != nil {
		return Resolution{}, err
	}
	return Resolution{Logical: logical, Column: column, Candidates: candidates}, nil
}

// Info summarises the loaded dataset.
func (s *DashboardService) Info(ctx context.Context) (DatasetInfo, error) {
	if err := s.ready(ctx); err != nil {
		return DatasetInfo{}, err
	}

	info := DatasetInfo{
		Source:     s.source,
		Rows:       s.table.Len(),
		DateColumn: s.table.DateColumn(),
		Columns:    s.table.Columns(),
	}
	for i, d := range s.table.Dates() {
		if i == 0 || d.Before(info.First) {
			info.First = d
		}
		if i == 0 || d.After(info.Last) {
			info.Last = d
		}
	}
	return info, nil
}

func (s *DashboardService) ready(ctx context.Context) error {
	if s.table == nil {
		return ErrDatasetNotLoaded
	}
	return ctx.Err()
}

func (s *DashboardService) recordBuckets(ctx context.Context, specs []*chart.Spec) {
	n := 0
	for _, spec := range specs {
		n += spec.Points()
	}
	s.metrics.ResampledBuckets.Add(ctx, int64(n))
}
