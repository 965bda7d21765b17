package dataset

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `Date,Close,Gold,Oil
2024-01-31,101.5,11,75.1
2024-01-01,100,10,
2024-01-15,100.7,12,74.0
2024-02-02,103,NaN,76
`

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestLoad_PreservesRowOrder(t *testing.T) {
	table, err := Load(strings.NewReader(sampleCSV), Options{})
	require.NoError(t, err)

	assert.Equal(t, "Date", table.DateColumn())
	assert.Equal(t, []string{"Close", "Gold", "Oil"}, table.Columns())
	assert.Equal(t, 4, table.Len())
	assert.Equal(t, []time.Time{
		date(2024, time.January, 31),
		date(2024, time.January, 1),
		date(2024, time.January, 15),
		date(2024, time.February, 2),
	}, table.Dates())

	gold, err := table.Column("Gold")
	require.NoError(t, err)
	assert.Equal(t, []Value{Float(11), Float(10), Float(12), Missing}, gold)

	oil, err := table.Column("Oil")
	require.NoError(t, err)
	assert.False(t, oil[1].Valid, "empty cell must be missing")
}

func TestLoad_DateParseErrorAbortsLoad(t *testing.T) {
	input := "Date,Close\n2024-01-01,1\nnot-a-date,2\n2024-01-03,3\n"

	table, err := Load(strings.NewReader(input), Options{})
	require.Error(t, err)
	assert.Nil(t, table)

	var dpe *DateParseError
	require.True(t, errors.As(err, &dpe))
	assert.Equal(t, 2, dpe.Row)
	assert.Equal(t, "not-a-date", dpe.Value)
}

func TestLoad_MissingDateColumn(t *testing.T) {
	_, err := Load(strings.NewReader("When,Close\n2024-01-01,1\n"), Options{})

	var cnf *ColumnNotFoundError
	require.True(t, errors.As(err, &cnf))
	assert.Equal(t, DateField, cnf.Name)
}

func TestLoad_EmptyInput(t *testing.T) {
	_, err := Load(strings.NewReader(""), Options{})
	assert.ErrorIs(t, err, ErrNoHeader)
}

func TestLoad_HeaderOnly(t *testing.T) {
	table, err := Load(strings.NewReader("date,close\n"), Options{})
	require.NoError(t, err)
	assert.Equal(t, 0, table.Len())
	assert.Equal(t, "date", table.DateColumn())
}

func TestLoad_NonNumericCellIsMissing(t *testing.T) {
	table, err := Load(strings.NewReader("Date,Close\n2024-01-01,abc\n2024-01-02,2\n"), Options{})
	require.NoError(t, err)

	closes, err := table.Column("Close")
	require.NoError(t, err)
	assert.Equal(t, []Value{Missing, Float(2)}, closes)
}

func TestLoad_InfiniteCellIsMissing(t *testing.T) {
	in := "Date,Close,Gold,Oil\n2024-01-01,10,inf,1\n2024-01-02,11,-Infinity,+Inf\n2024-01-03,12,2050,1e400\n"
	table, err := Load(strings.NewReader(in), Options{})
	require.NoError(t, err)

	gold, err := table.Column("Gold")
	require.NoError(t, err)
	assert.Equal(t, []Value{Missing, Missing, Float(2050)}, gold)

	oil, err := table.Column("Oil")
	require.NoError(t, err)
	assert.Equal(t, []Value{Float(1), Missing, Missing}, oil)

	b, err := json.Marshal(table.Head(3))
	require.NoError(t, err)
	assert.Contains(t, string(b), `"values":[10,null,1]`)
}

func TestParseValue_Infinities(t *testing.T) {
	for _, s := range []string{"inf", "+Inf", "-Infinity", "Infinity"} {
		v, ok := ParseValue(s)
		assert.False(t, ok, s)
		assert.False(t, v.Valid, s)
	}
}

func TestLoad_UnnamedIndexColumnIgnored(t *testing.T) {
	table, err := Load(strings.NewReader(",Date,Close\n0,2024-01-01,1\n"), Options{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Close"}, table.Columns())
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2024-01-31", date(2024, time.January, 31)},
		{"2024-1-5", date(2024, time.January, 5)},
		{"2024/02/29", date(2024, time.February, 29)},
		{"03/15/2024", date(2024, time.March, 15)},
		{"2024-03-15 16:00:00", date(2024, time.March, 15)},
		{"2024-03-15T16:00:00Z", date(2024, time.March, 15)},
		{" 2024-03-15 ", date(2024, time.March, 15)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseDate("2024-13-01")
	assert.Error(t, err)
	_, err = ParseDate("")
	assert.Error(t, err)
}

func TestTable_HeadAndCopies(t *testing.T) {
	table, err := Load(strings.NewReader(sampleCSV), Options{})
	require.NoError(t, err)

	head := table.Head(2)
	require.Len(t, head, 2)
	assert.Equal(t, date(2024, time.January, 31), head[0].Date)
	assert.Equal(t, []Value{Float(101.5), Float(11), Float(75.1)}, head[0].Values)

	assert.Len(t, table.Head(10), 4)
	assert.Empty(t, table.Head(-1))

	// accessors must not expose internal storage
	dates := table.Dates()
	dates[0] = time.Time{}
	assert.Equal(t, date(2024, time.January, 31), table.Dates()[0])

	gold, _ := table.Column("Gold")
	gold[0] = Float(999)
	again, _ := table.Column("Gold")
	assert.Equal(t, Float(11), again[0])
}

func TestNewTable_ShapeMismatch(t *testing.T) {
	_, err := NewTable("Date", []time.Time{date(2024, 1, 1)}, []string{"A"}, [][]Value{{Float(1), Float(2)}})
	assert.ErrorIs(t, err, ErrShape)
}

func TestValue_JSON(t *testing.T) {
	b, err := Missing.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))

	b, err = Float(1.25).MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "1.25", string(b))

	var v Value
	require.NoError(t, v.UnmarshalJSON([]byte("null")))
	assert.False(t, v.Valid)
	require.NoError(t, v.UnmarshalJSON([]byte("3")))
	assert.Equal(t, Float(3), v)

	assert.Equal(t, Missing, Float(math.Inf(1)))
	assert.Equal(t, Missing, Float(math.Inf(-1)))
	b, err = json.Marshal([]Value{Float(math.Inf(1)), Float(2)})
	require.NoError(t, err)
	assert.Equal(t, "[null,2]", string(b))
}
