// Package http implements the HTTP handlers for the dashboard service.
// Handlers stay thin: they parse and validate the request, call the dashboard
// service and render the result.
//
// # Routes
//
//	GET  /                      dashboard page (html/template, Plotly from the CDN)
//	GET  /api/dashboard         page model, ?monthly=true adds the monthly charts
//	GET  /api/charts/close      close price chart
//	GET  /api/charts/monthly    monthly charts for the configured commodities
//	GET  /api/charts/{name}     a single chart by name
//	POST /api/charts/compose    ad hoc chart over arbitrary columns
//	GET  /api/data/columns      table columns
//	GET  /api/data/preview      first rows of the table
//	GET  /api/data/resolve/{n}  logical column resolution
//	GET  /api/health            health, readiness and liveness
//	POST /api/logs              client-side error reports
//	GET  /metrics               Prometheus scrape endpoint
//
// # Responses
//
// Successful responses use the envelope {"status":"success","data":...}.
// Errors follow RFC 7807 and are written by errors.ErrorHandler:
//
//	{
//	    "type": "/errors/column-not-found",
//	    "title": "Column Not Found",
//	    "status": 404,
//	    "detail": "column \"oil\" not found",
//	    "column": "oil",
//	    "candidates": ["Oil"],
//	    "trace_id": "..."
//	}
//
// # Testing
//
// Handlers are tested with httptest against a testify mock of
// DashboardServiceInterface.
package http
