package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "stockdash/internal/errors"
	"stockdash/internal/middleware"
	api "stockdash/pkg/contracts/api/v1"
)

// DataHandler handles table-related HTTP requests with RFC 7807 compliance
type DataHandler struct {
	service        DashboardServiceInterface
	query          *middleware.QueryParamValidator
	maxPreviewRows int
	logger         *slog.Logger
	errorHandler   *apierrors.ErrorHandler
}

// NewDataHandler creates a new data handler. maxPreviewRows caps ?rows.
func NewDataHandler(service DashboardServiceInterface, maxPreviewRows int, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DataHandler {
	if maxPreviewRows <= 0 {
		maxPreviewRows = 100
	}
	return &DataHandler{
		service:        service,
		query:          middleware.NewQueryParamValidator(logger, errorHandler),
		maxPreviewRows: maxPreviewRows,
		logger:         logger.With(slog.String("component", "data_handler")),
		errorHandler:   errorHandler,
	}
}

// Routes returns the data routes with proper Chi patterns
func (h *DataHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/columns", h.GetColumns)
	r.Get("/preview", h.GetPreview)
	r.Get("/info", h.GetInfo)
	r.Get("/resolve/{name}", h.Resolve)
	return r
}

// GetColumns handles GET /api/data/columns
func (h *DataHandler) GetColumns(w http.ResponseWriter, r *http.Request) {
	info, err := h.service.Info(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, serviceError(err))
		return
	}
	respond(w, r, api.ColumnsResponse{DateColumn: info.DateColumn, Columns: info.Columns})
}

// GetPreview handles GET /api/data/preview?rows=N
func (h *DataHandler) GetPreview(w http.ResponseWriter, r *http.Request) {
	rows, ok := h.query.ValidateInt(w, r, "rows", 1, h.maxPreviewRows, 0)
	if !ok {
		return
	}

	preview, err := h.service.Preview(r.Context(), rows)
	if err != nil {
		h.errorHandler.HandleError(w, r, serviceError(err))
		return
	}
	respond(w, r, preview)
}

// GetInfo handles GET /api/data/info
func (h *DataHandler) GetInfo(w http.ResponseWriter, r *http.Request) {
	info, err := h.service.Info(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, serviceError(err))
		return
	}
	respond(w, r, info)
}

// Resolve handles GET /api/data/resolve/{name}
func (h *DataHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	res, err := h.service.Resolve(r.Context(), name)
	if err != nil {
		h.logger.DebugContext(r.Context(), "column resolution failed",
			slog.String("name", name),
			slog.String("error", err.Error()))
		h.errorHandler.HandleError(w, r, serviceError(err))
		return
	}
	respond(w, r, res)
}
