package dashboard

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockdash/internal/chart"
	"stockdash/internal/dataset"
)

const prices = `Date,Close,Gold,Oil
2024-01-01,100,10,70
2024-01-31,103,11,
2024-01-15,101,12,71
2024-02-01,104,13,72
2024-02-02,105,14,73
2024-02-05,106,15,74
2024-02-06,107,16,75
2024-02-07,108,17,76
2024-02-08,109,18,77
2024-02-09,110,19,78
2024-02-12,111,20,79
2024-03-01,112,21,80
`

func load(t *testing.T, csv string) *dataset.Table {
	t.Helper()
	table, err := dataset.Load(strings.NewReader(csv), dataset.Options{})
	require.NoError(t, err)
	return table
}

func TestBuild_MonthlyToggle(t *testing.T) {
	table := load(t, prices)

	off, err := Build(table, Intent{ShowMonthly: false}, Options{})
	require.NoError(t, err)
	on, err := Build(table, Intent{ShowMonthly: true}, Options{})
	require.NoError(t, err)

	assert.Empty(t, off.Monthly)
	require.Len(t, on.Monthly, 2)

	if diff := cmp.Diff(off.Close, on.Close); diff != "" {
		t.Errorf("close chart depends on the monthly toggle (-off +on):\n%s", diff)
	}
	assert.Len(t, off.Charts(), 1)
	assert.Len(t, on.Charts(), 3)
}

func TestBuild_Contents(t *testing.T) {
	table := load(t, prices)

	d, err := Build(table, Intent{ShowMonthly: true}, Options{})
	require.NoError(t, err)

	assert.Equal(t, chart.KindContinuous, d.Close.Kind)
	require.Len(t, d.Close.Traces, 1)
	assert.Len(t, d.Close.Traces[0].X, table.Len())

	gold, oil := d.Monthly[0], d.Monthly[1]
	assert.Equal(t, "Gold Monthly Closing Price", gold.Layout.Title)
	assert.Equal(t, "Oil Monthly Closing Price", oil.Layout.Title)
	assert.Equal(t, []dataset.Value{dataset.Float(11), dataset.Float(20), dataset.Float(21)}, gold.Traces[0].Y)
	assert.Equal(t, []dataset.Value{dataset.Float(71), dataset.Float(79), dataset.Float(80)}, oil.Traces[0].Y)

	assert.Equal(t, []string{"Close", "Gold", "Oil"}, d.Columns)
	assert.Equal(t, "Date", d.Preview.DateColumn)
	assert.Len(t, d.Preview.Rows, DefaultPreviewRows)
}

func TestBuild_MissingCloseColumn(t *testing.T) {
	table := load(t, "Date,Price,Gold,Oil\n2024-01-01,1,2,3\n")

	d, err := Build(table, Intent{}, Options{})
	assert.Nil(t, d)

	var cnf *dataset.ColumnNotFoundError
	require.True(t, errors.As(err, &cnf))
	assert.Equal(t, dataset.ClosePrice, cnf.Name)
}

func TestBuild_MissingCommodityOnlyFailsMonthly(t *testing.T) {
	table := load(t, "Date,close,Gold\n2024-01-01,1,2\n")

	_, err := Build(table, Intent{}, Options{})
	require.NoError(t, err)

	_, err = Build(table, Intent{ShowMonthly: true}, Options{})
	var cnf *dataset.ColumnNotFoundError
	require.True(t, errors.As(err, &cnf))
	assert.Equal(t, dataset.Oil, cnf.Name)
}

func TestBuild_Options(t *testing.T) {
	table := load(t, "Date,Adj Close,Silver\n2024-01-01,1,2\n2024-01-02,2,3\n2024-02-01,3,4\n")

	d, err := Build(table, Intent{ShowMonthly: true}, Options{
		PreviewRows: 1,
		CloseColumn: "adjusted",
		Commodities: []string{"Silver"},
		Theme:       "plotly_dark",
		Aliases:     dataset.DefaultAliases().With("adjusted", "Adj Close"),
	})
	require.NoError(t, err)

	assert.Equal(t, "plotly_dark", d.Close.Layout.Theme)
	require.Len(t, d.Monthly, 1)
	assert.Equal(t, "monthly-silver", d.Monthly[0].Name)
	assert.Len(t, d.Preview.Rows, 1)
}
