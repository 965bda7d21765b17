// Package api contains the HTTP API contract of the dashboard.
// Version v1 represents the current stable API version.
package api

// DashboardRequest selects what GET /api/dashboard renders.
type DashboardRequest struct {
	Monthly bool `json:"monthly" query:"monthly"`
}

// PreviewRequest bounds the table preview.
type PreviewRequest struct {
	Rows int `json:"rows" query:"rows" validate:"omitempty,min=1,max=100"`
}

// ComposeRequest asks for an ad hoc chart over table columns. Columns are logical names
// resolved through the column aliases; an empty Period charts the raw series.
type ComposeRequest struct {
	Columns []string `json:"columns" validate:"required,min=1,max=8,dive,column"`
	Period  string   `json:"period,omitempty" validate:"omitempty,oneof=daily weekly monthly quarterly yearly"`
	Title   string   `json:"title,omitempty" validate:"max=200"`
}

// ClientLogRequest is a log line forwarded by the dashboard page.
type ClientLogRequest struct {
	Level   string                 `json:"level" validate:"omitempty,oneof=debug info warn error"`
	Message string                 `json:"message" validate:"required,max=2000"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Source  string                 `json:"source,omitempty" validate:"max=200"`
}
