package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"stockdash/internal/chart"
	"stockdash/internal/dashboard"
	apierrors "stockdash/internal/errors"
	"stockdash/internal/middleware"
	"stockdash/internal/period"
	api "stockdash/pkg/contracts/api/v1"
)

// ChartHandler serves chart specifications
type ChartHandler struct {
	service      DashboardServiceInterface
	validation   *middleware.ValidationMiddleware
	query        *middleware.QueryParamValidator
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewChartHandler creates a new chart handler
func NewChartHandler(service DashboardServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *ChartHandler {
	return &ChartHandler{
		service:      service,
		validation:   middleware.NewValidationMiddleware(logger, errorHandler),
		query:        middleware.NewQueryParamValidator(logger, errorHandler),
		logger:       logger.With(slog.String("component", "chart_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the chart routes
func (h *ChartHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/close", h.GetCloseChart)
	r.Get("/monthly", h.GetMonthlyCharts)
	r.Get("/themes", h.GetThemes)
	r.Get("/compose", h.ComposeQuery)
	r.Get("/{name}", h.GetChart)

	r.With(
		middleware.ContentTypeValidator("application/json"),
		h.validation.ValidateRequest,
	).Post("/compose", h.Compose)

	return r
}

// GetCloseChart handles GET /api/charts/close
func (h *ChartHandler) GetCloseChart(w http.ResponseWriter, r *http.Request) {
	spec, err := h.service.CloseChart(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, serviceError(err))
		return
	}
	respond(w, r, spec)
}

// GetMonthlyCharts handles GET /api/charts/monthly
func (h *ChartHandler) GetMonthlyCharts(w http.ResponseWriter, r *http.Request) {
	specs, err := h.service.MonthlyCharts(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, serviceError(err))
		return
	}
	respond(w, r, specs)
}

// GetChart handles GET /api/charts/{name}
func (h *ChartHandler) GetChart(w http.ResponseWriter, r *http.Request) {
	spec, err := h.service.Chart(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		h.errorHandler.HandleError(w, r, serviceError(err))
		return
	}
	respond(w, r, spec)
}

// GetThemes handles GET /api/charts/themes
func (h *ChartHandler) GetThemes(w http.ResponseWriter, r *http.Request) {
	respond(w, r, map[string]interface{}{
		"default": chart.DefaultTheme,
		"themes":  chart.Themes(),
	})
}

// Compose handles POST /api/charts/compose
func (h *ChartHandler) Compose(w http.ResponseWriter, r *http.Request) {
	var req api.ComposeRequest
	if err := h.validation.DecodeAndValidate(r, &req); err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	chartReq := dashboard.ChartRequest{Columns: req.Columns, Title: req.Title}
	if req.Period != "" {
		p, err := period.Parse(req.Period)
		if err != nil {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("period", err.Error()))
			return
		}
		chartReq.Period = &p
	}
	h.compose(w, r, chartReq)
}

// ComposeQuery handles GET /api/charts/compose?columns=Gold,Oil&period=quarterly&title=...
// columns may also be repeated.
func (h *ChartHandler) ComposeQuery(w http.ResponseWriter, r *http.Request) {
	p, ok := h.query.ValidatePeriod(w, r, "period")
	if !ok {
		return
	}

	q := r.URL.Query()
	chartReq := dashboard.ChartRequest{Period: p, Title: q.Get("title")}
	for _, v := range q["columns"] {
		for _, col := range strings.Split(v, ",") {
			if col = strings.TrimSpace(col); col != "" {
				chartReq.Columns = append(chartReq.Columns, col)
			}
		}
	}
	if len(chartReq.Columns) == 0 {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("columns", "columns is required"))
		return
	}
	h.compose(w, r, chartReq)
}

func (h *ChartHandler) compose(w http.ResponseWriter, r *http.Request, req dashboard.ChartRequest) {
	spec, err := h.service.Compose(r.Context(), req)
	if err != nil {
		h.errorHandler.HandleError(w, r, serviceError(err))
		return
	}

	periodName := ""
	if req.Period != nil {
		periodName = req.Period.String()
	}
	h.logger.InfoContext(r.Context(), "chart composed",
		slog.Any("columns", req.Columns),
		slog.String("period", periodName),
		slog.Int("points", spec.Points()))
	respond(w, r, spec)
}
