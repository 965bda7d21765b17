package chart

import (
	"fmt"
	"strings"
	"time"

	"stockdash/internal/dataset"
	"stockdash/internal/resample"
)

// Names of the preset charts.
const (
	CloseChartName = "close"
	MonthlyPrefix  = "monthly-"
)

// commodityColors maps a column name (lower-cased) to its line colour.
var commodityColors = map[string]string{
	"gold": "gold",
	"oil":  "black",
}

// palette is used for columns without a fixed colour.
var palette = []string{"#636efa", "#ef553b", "#00cc96", "#ab63fa", "#ffa15a", "#19d3f3"}

// ColorFor returns the line colour of column. The i-th unknown column gets the i-th palette
// entry.
func ColorFor(column string, i int) string {
	if c, ok := commodityColors[strings.ToLower(column)]; ok {
		return c
	}
	return palette[i%len(palette)]
}

// CloseChart is the continuous closing price chart.
func CloseChart(dates []time.Time, closes []dataset.Value, theme string) (*Spec, error) {
	s, err := Compose(Layout{
		Title:      "Stock Price Over Time",
		XAxisTitle: "Date",
		YAxisTitle: "Stock Price (Closing)",
		Legend:     HorizontalTop(),
		Theme:      theme,
	}, KindContinuous, TraceInput{
		Name:  "Actual Close",
		X:     dates,
		Y:     closes,
		Style: Style{Mode: ModeLines, Color: "blue"},
	})
	if err != nil {
		return nil, fmt.Errorf("close chart: %w", err)
	}
	s.Name = CloseChartName
	return s, nil
}

// MonthlyChart is the chart of one resampled column. i picks the fallback colour.
func MonthlyChart(series resample.Series, i int, theme string) (*Spec, error) {
	s, err := Compose(Layout{
		Title:      series.Name + " Monthly Closing Price",
		XAxisTitle: "Month",
		YAxisTitle: "Price",
		Legend:     HorizontalTop(),
		Theme:      theme,
	}, KindResampled, TraceInput{
		Name:  series.Name + " Monthly Close",
		X:     series.Index,
		Y:     series.Values,
		Style: Style{Mode: ModeLinesMarkers, Color: ColorFor(series.Name, i)},
	})
	if err != nil {
		return nil, fmt.Errorf("%s monthly chart: %w", series.Name, err)
	}
	s.Name = MonthlyPrefix + strings.ToLower(series.Name)
	return s, nil
}

// MonthlyCharts builds one chart per series, never overlaying them.
func MonthlyCharts(series []resample.Series, theme string) ([]*Spec, error) {
	out := make([]*Spec, 0, len(series))
	unknown := 0
	for _, s := range series {
		idx := unknown
		if _, ok := commodityColors[strings.ToLower(s.Name)]; !ok {
			unknown++
		}
		spec, err := MonthlyChart(s, idx, theme)
		if err != nil {
			return nil, err
		}
		out = append(out, spec)
	}
	return out, nil
}
