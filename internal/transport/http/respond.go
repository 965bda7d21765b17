package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/render"

	apierrors "stockdash/internal/errors"
	"stockdash/internal/services"
	api "stockdash/pkg/contracts/api/v1"
)

// respond renders data in the success envelope.
func respond(w http.ResponseWriter, r *http.Request, data interface{}) {
	render.JSON(w, r, api.Success(data))
}

// serviceError maps service sentinels to API errors. Pipeline errors pass through for the
// error handler to map by type.
func serviceError(err error) error {
	var chartErr *services.ChartNotFoundError
	switch {
	case errors.Is(err, services.ErrDatasetNotLoaded):
		return apierrors.ErrDatasetUnavailable
	case errors.As(err, &chartErr):
		return apierrors.NotFoundError(fmt.Sprintf("chart %q", chartErr.Name))
	case errors.Is(err, services.ErrChartNotFound):
		return apierrors.ErrNotFound
	case errors.Is(err, services.ErrInvalidInput):
		return apierrors.InvalidRequestWithError(err)
	default:
		return err
	}
}
