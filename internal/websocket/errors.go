package websocket

import (
	"context"
	"errors"

	"stockdash/internal/chart"
	"stockdash/internal/dataset"
	"stockdash/internal/services"
	"stockdash/pkg/contracts/events"
)

// errorData maps a build failure to the payload of an error message. Internal failures
// are reported without their cause.
func errorData(err error) *events.ErrorData {
	var colErr *dataset.ColumnNotFoundError
	var lenErr *chart.TraceLengthMismatchError

	switch {
	case errors.Is(err, services.ErrDatasetNotLoaded):
		return &events.ErrorData{Code: "DATASET_UNAVAILABLE", Message: "no dataset is loaded", Fatal: true}
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return &events.ErrorData{Code: "TIMEOUT", Message: "dashboard build was cancelled"}
	case errors.As(err, &colErr):
		return &events.ErrorData{
			Code:    "COLUMN_NOT_FOUND",
			Message: colErr.Error(),
			Details: map[string]interface{}{"column": colErr.Name, "candidates": colErr.Candidates},
		}
	case errors.As(err, &lenErr):
		return &events.ErrorData{
			Code:    "CHART_INVALID",
			Message: lenErr.Error(),
			Details: map[string]interface{}{"trace": lenErr.Trace, "x_len": lenErr.X, "y_len": lenErr.Y},
		}
	case errors.Is(err, chart.ErrNoTraces):
		return &events.ErrorData{Code: "CHART_INVALID", Message: err.Error()}
	default:
		return &events.ErrorData{Code: "BUILD_FAILED", Message: "failed to build dashboard"}
	}
}
