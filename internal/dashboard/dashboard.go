// Package dashboard wires the loader, resampler and chart composer into the page model the
// host renders: a closing price chart, optional monthly commodity charts and a table preview.
package dashboard

import (
	"fmt"

	"stockdash/internal/chart"
	"stockdash/internal/dataset"
	"stockdash/internal/period"
	"stockdash/internal/resample"
)

// Intent is what the user asked the page to show.
type Intent struct {
	ShowMonthly bool `json:"monthly"`
}

// Options parameterise Build. The zero value is usable.
type Options struct {
	PreviewRows int
	// CloseColumn is the logical name of the closing price column.
	CloseColumn string
	// Commodities are the logical names of the resampled columns, charted in this order.
	Commodities []string
	Theme       string
	Aliases     dataset.Aliases
}

// Defaults for Options.
const (
	DefaultPreviewRows = 10
)

// DefaultCommodities are the resampled columns when none are configured.
func DefaultCommodities() []string { return []string{dataset.Gold, dataset.Oil} }

func (o Options) withDefaults() Options {
	if o.PreviewRows <= 0 {
		o.PreviewRows = DefaultPreviewRows
	}
	if o.CloseColumn == "" {
		o.CloseColumn = dataset.ClosePrice
	}
	if len(o.Commodities) == 0 {
		o.Commodities = DefaultCommodities()
	}
	if o.Theme == "" {
		o.Theme = chart.DefaultTheme
	}
	if o.Aliases == nil {
		o.Aliases = dataset.DefaultAliases()
	}
	return o
}

// Preview is the head of the table.
type Preview struct {
	DateColumn string        `json:"date_column"`
	Columns    []string      `json:"columns"`
	Rows       []dataset.Row `json:"rows"`
}

// Dashboard is the rendered page model. Monthly is empty unless the intent asked for it.
type Dashboard struct {
	Close   *chart.Spec   `json:"close"`
	Monthly []*chart.Spec `json:"monthly"`
	Columns []string      `json:"columns"`
	Preview Preview       `json:"preview"`
}

// Charts returns every chart, close first.
func (d *Dashboard) Charts() []*chart.Spec {
	return append([]*chart.Spec{d.Close}, d.Monthly...)
}

// Build evaluates the pipeline for one intent. It never returns a partial dashboard.
func Build(t *dataset.Table, intent Intent, opts Options) (*Dashboard, error) {
	opts = opts.withDefaults()

	closeChart, err := CloseChart(t, opts)
	if err != nil {
		return nil, err
	}

	monthly := []*chart.Spec{}
	if intent.ShowMonthly {
		monthly, err = MonthlyCharts(t, opts)
		if err != nil {
			return nil, err
		}
	}

	return &Dashboard{
		Close:   closeChart,
		Monthly: monthly,
		Columns: t.Columns(),
		Preview: PreviewOf(t, opts.PreviewRows),
	}, nil
}

// CloseChart resolves the closing price column and charts it over the full series.
func CloseChart(t *dataset.Table, opts Options) (*chart.Spec, error) {
	opts = opts.withDefaults()

	name, err := opts.Aliases.Resolve(opts.CloseColumn, t)
	if err != nil {
		return nil, err
	}
	closes, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	return chart.CloseChart(t.Dates(), closes, opts.Theme)
}

// MonthlyCharts resamples the commodity columns monthly and charts each one separately.
func MonthlyCharts(t *dataset.Table, opts Options) ([]*chart.Spec, error) {
	opts = opts.withDefaults()

	columns := make([]string, len(opts.Commodities))
	for i, logical := range opts.Commodities {
		name, err := opts.Aliases.Resolve(logical, t)
		if err != nil {
			return nil, err
		}
		columns[i] = name
	}

	series, err := resample.Resample(t, columns, period.Monthly)
	if err != nil {
		return nil, fmt.Errorf("monthly resample: %w", err)
	}
	return chart.MonthlyCharts(series, opts.Theme)
}

// PreviewOf returns the first n rows of t.
func PreviewOf(t *dataset.Table, n int) Preview {
	return Preview{
		DateColumn: t.DateColumn(),
		Columns:    t.Columns(),
		Rows:       t.Head(n),
	}
}
