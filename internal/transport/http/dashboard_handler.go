package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"stockdash/internal/dashboard"
	apierrors "stockdash/internal/errors"
	"stockdash/internal/middleware"
)

// DashboardHandler serves the full page model
type DashboardHandler struct {
	service      DashboardServiceInterface
	query        *middleware.QueryParamValidator
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(service DashboardServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DashboardHandler {
	return &DashboardHandler{
		service:      service,
		query:        middleware.NewQueryParamValidator(logger, errorHandler),
		logger:       logger.With(slog.String("component", "dashboard_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the dashboard routes
func (h *DashboardHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))
	r.Get("/", h.GetDashboard)
	return r
}

// GetDashboard handles GET /api/dashboard?monthly=true|false
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	monthly, ok := h.query.ValidateBool(w, r, "monthly", false)
	if !ok {
		return
	}

	d, err := h.service.Build(r.Context(), dashboard.Intent{ShowMonthly: monthly})
	if err != nil {
		h.errorHandler.HandleError(w, r, serviceError(err))
		return
	}

	h.logger.DebugContext(r.Context(), "dashboard served",
		slog.Bool("monthly", monthly),
		slog.Int("charts", len(d.Charts())))
	respond(w, r, d)
}
