package dashboard

import (
	"fmt"
	"strings"

	"stockdash/internal/chart"
	"stockdash/internal/dataset"
	"stockdash/internal/period"
	"stockdash/internal/resample"
)

// ChartRequest describes an ad hoc chart over table columns.
type ChartRequest struct {
	// Columns are logical names, resolved through the aliases.
	Columns []string
	// Period resamples the columns; nil charts the raw series.
	Period *period.Period
	Title  string
}

// Compose charts the requested columns on a shared date axis. Raw series produce a
// continuous chart in lines mode; resampled series a lines+markers chart.
func Compose(t *dataset.Table, req ChartRequest, opts Options) (*chart.Spec, error) {
	opts = opts.withDefaults()

	columns := make([]string, len(req.Columns))
	for i, logical := range req.Columns {
		name, err := opts.Aliases.Resolve(logical, t)
		if err != nil {
			return nil, err
		}
		columns[i] = name
	}

	layout := chart.Layout{
		Title:      req.Title,
		XAxisTitle: "Date",
		YAxisTitle: "Price",
		Legend:     chart.HorizontalTop(),
		Theme:      opts.Theme,
	}
	if layout.Title == "" {
		layout.Title = strings.Join(columns, ", ")
	}

	var (
		kind   = chart.KindContinuous
		mode   = chart.ModeLines
		traces = make([]chart.TraceInput, 0, len(columns))
	)
	if req.Period == nil {
		dates := t.Dates()
		for _, name := range columns {
			values, err := t.Column(name)
			if err != nil {
				return nil, err
			}
			traces = append(traces, chart.TraceInput{Name: name, X: dates, Y: values})
		}
	} else {
		series, err := resample.Resample(t, columns, *req.Period)
		if err != nil {
			return nil, fmt.Errorf("%s resample: %w", req.Period, err)
		}
		kind, mode = chart.KindResampled, chart.ModeLinesMarkers
		layout.XAxisTitle = axisTitle(*req.Period)
		for _, s := range series {
			traces = append(traces, chart.TraceInput{Name: s.Name, X: s.Index, Y: s.Values})
		}
	}

	for i := range traces {
		traces[i].Style = chart.Style{Mode: mode, Color: chart.ColorFor(traces[i].Name, i)}
	}

	spec, err := chart.Compose(layout, kind, traces...)
	if err != nil {
		return nil, fmt.Errorf("compose %s: %w", layout.Title, err)
	}
	spec.Name = "custom"
	return spec, nil
}

func axisTitle(p period.Period) string {
	switch p {
	case period.Daily:
		return "Date"
	case period.Weekly:
		return "Week"
	case period.Quarterly:
		return "Quarter"
	case period.Yearly:
		return "Year"
	default:
		return "Month"
	}
}
