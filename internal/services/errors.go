package services

import (
	"errors"
	"fmt"
)

// Dashboard service errors
var (
	ErrDatasetNotLoaded = errors.New("dataset not loaded")
	ErrChartNotFound    = errors.New("chart not found")
	ErrInvalidInput     = errors.New("invalid input")
)

// ChartNotFoundError names the preset chart that does not exist. It matches
// ErrChartNotFound with errors.Is.
type ChartNotFoundError struct {
	Name string
}

func (e *ChartNotFoundError) Error() string {
	return fmt.Sprintf("chart %q not found", e.Name)
}

func (e *ChartNotFoundError) Is(target error) bool { return target == ErrChartNotFound }
