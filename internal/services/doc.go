// Package services implements the business logic layer of the dashboard. It sits between
// the HTTP and WebSocket handlers and the pure pipeline packages (dataset, resample, chart,
// dashboard), adding what a request needs around a pipeline run: tracing spans, metrics,
// structured logs and the not-loaded guard.
//
// # Available Services
//
//	- DashboardService: builds dashboards, preset charts, ad hoc charts and previews
//	- HealthService: liveness, readiness and version information
//
// # Error Handling
//
// Pipeline errors (dataset.ColumnNotFoundError, dataset.DateParseError,
// chart.TraceLengthMismatchError) are returned unchanged or wrapped with %w so handlers can
// map them with errors.As. Service-level conditions use the sentinels in errors.go.
package services
