package dataset

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func workbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for r, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, r+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestLoadXLSX(t *testing.T) {
	buf := workbook(t, [][]interface{}{
		{"Date", "Close", "Gold", "Oil"},
		{"2024-01-02", 100.5, 2050, 71.2},
		{"2024-01-03", 101, "", 72},
	})

	table, err := LoadXLSX(buf, Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"Close", "Gold", "Oil"}, table.Columns())
	assert.Equal(t, []time.Time{date(2024, time.January, 2), date(2024, time.January, 3)}, table.Dates())

	gold, err := table.Column("Gold")
	require.NoError(t, err)
	assert.Equal(t, []Value{Float(2050), Missing}, gold)
}

func TestLoadXLSX_ExcelSerialDates(t *testing.T) {
	// 45293 is 2024-01-02 in the 1900 date system
	buf := workbook(t, [][]interface{}{
		{"date", "close"},
		{45293, 10},
	})

	table, err := LoadXLSX(buf, Options{})
	require.NoError(t, err)
	assert.Equal(t, []time.Time{date(2024, time.January, 2)}, table.Dates())
}

func TestLoadXLSX_BadDate(t *testing.T) {
	buf := workbook(t, [][]interface{}{
		{"Date", "Close"},
		{"yesterday", 10},
	})

	_, err := LoadXLSX(buf, Options{})
	var dpe *DateParseError
	require.True(t, errors.As(err, &dpe))
	assert.Equal(t, 1, dpe.Row)
}

func TestLoadXLSX_UnknownSheet(t *testing.T) {
	buf := workbook(t, [][]interface{}{{"Date", "Close"}})

	_, err := LoadXLSX(buf, Options{Sheet: "Prices"})
	assert.Error(t, err)
}
