package http

import (
	"bytes"
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"unicode"
	"unicode/utf8"

	"stockdash/internal/dashboard"
	apierrors "stockdash/internal/errors"
)

//go:embed templates/index.html
var templatesFS embed.FS

var indexTemplate = template.Must(template.ParseFS(templatesFS, "templates/index.html"))

// infoText is shown under the toggle until monthly charts are displayed.
const infoText = "Click the button above to visualize monthly Gold and Oil prices."

// PageData is the model rendered into the index template
type PageData struct {
	Title     string
	Columns   []string
	Preview   dashboard.Preview
	ShowLabel string
	HideLabel string
	InfoText  string
}

// PageHandler serves the dashboard page. Charts are fetched by the page itself.
type PageHandler struct {
	service      DashboardServiceInterface
	title        string
	previewRows  int
	commodities  []string
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewPageHandler creates a new page handler
func NewPageHandler(service DashboardServiceInterface, title string, previewRows int, commodities []string, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *PageHandler {
	if len(commodities) == 0 {
		commodities = dashboard.DefaultCommodities()
	}
	return &PageHandler{
		service:      service,
		title:        title,
		previewRows:  previewRows,
		commodities:  commodities,
		logger:       logger.With(slog.String("handler", "page")),
		errorHandler: errorHandler,
	}
}

// ServeHTTP handles GET /
func (h *PageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	preview, err := h.service.Preview(r.Context(), h.previewRows)
	if err != nil {
		h.errorHandler.HandleError(w, r, serviceError(err))
		return
	}

	label := commodityLabel(h.commodities)
	data := PageData{
		Title:     h.title,
		Columns:   preview.Columns,
		Preview:   preview,
		ShowLabel: "Show Monthly Close for " + label,
		HideLabel: "Hide Monthly Close for " + label,
		InfoText:  infoText,
	}

	// Render into a buffer so a template failure can still produce a problem response.
	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, data); err != nil {
		h.logger.ErrorContext(r.Context(), "page render failed", slog.String("error", err.Error()))
		h.errorHandler.HandleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// commodityLabel joins names as "A", "A and B", or "A, B and C".
func commodityLabel(names []string) string {
	titled := make([]string, len(names))
	for i, n := range names {
		r, size := utf8.DecodeRuneInString(n)
		if r == utf8.RuneError {
			titled[i] = n
			continue
		}
		titled[i] = string(unicode.ToUpper(r)) + n[size:]
	}
	if len(titled) <= 1 {
		return strings.Join(titled, "")
	}
	return strings.Join(titled[:len(titled)-1], ", ") + " and " + titled[len(titled)-1]
}
