package dashboard

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockdash/internal/chart"
	"stockdash/internal/dataset"
	"stockdash/internal/period"
)

func TestCompose_RawColumns(t *testing.T) {
	table := load(t, prices)

	spec, err := Compose(table, ChartRequest{Columns: []string{"close price", "gold"}}, Options{})
	require.NoError(t, err)

	assert.Equal(t, chart.KindContinuous, spec.Kind)
	assert.Equal(t, "Close, Gold", spec.Layout.Title)
	require.Len(t, spec.Traces, 2)
	assert.Equal(t, "Close", spec.Traces[0].Name)
	assert.Equal(t, "Gold", spec.Traces[1].Name)
	assert.Equal(t, "gold", spec.Traces[1].Style.Color)
	assert.Equal(t, chart.ModeLines, spec.Traces[0].Style.Mode)
	assert.Len(t, spec.Traces[0].X, table.Len())
}

func TestCompose_Resampled(t *testing.T) {
	table := load(t, prices)
	q := period.Quarterly

	spec, err := Compose(table, ChartRequest{Columns: []string{"Oil"}, Period: &q, Title: "Oil by quarter"}, Options{})
	require.NoError(t, err)

	assert.Equal(t, chart.KindResampled, spec.Kind)
	assert.Equal(t, "Quarter", spec.Layout.XAxisTitle)
	require.Len(t, spec.Traces, 1)
	assert.Equal(t, []dataset.Value{dataset.Float(80)}, spec.Traces[0].Y)
	assert.Equal(t, chart.ModeLinesMarkers, spec.Traces[0].Style.Mode)
}

func TestCompose_Errors(t *testing.T) {
	table := load(t, prices)

	_, err := Compose(table, ChartRequest{Columns: []string{"Copper"}}, Options{})
	var notFound *dataset.ColumnNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "Copper", notFound.Name)

	_, err = Compose(table, ChartRequest{}, Options{})
	assert.ErrorIs(t, err, chart.ErrNoTraces)
}
