package dataset

import (
	"slices"
	"time"
)

// Table is a date-indexed set of named numeric columns. Rows keep the order in which they
// were loaded; dates may repeat and are not required to be sorted.
//
// A Table is immutable once built: every accessor returns a copy, so a single Table can be
// shared by concurrent readers.
type Table struct {
	dateColumn string
	dates      []time.Time
	columns    []string
	values     [][]Value // values[c][row]
}

// Row is one table row as exposed to previews.
type Row struct {
	Date   time.Time `json:"date"`
	Values []Value   `json:"values"`
}

// NewTable builds a table from column-major data. Every column must have len(dates) values.
func NewTable(dateColumn string, dates []time.Time, columns []string, values [][]Value) (*Table, error) {
	if len(columns) != len(values) {
		return nil, errShape("columns", len(columns), len(values))
	}
	t := &Table{
		dateColumn: dateColumn,
		dates:      make([]time.Time, len(dates)),
		columns:    slices.Clone(columns),
		values:     make([][]Value, len(values)),
	}
	for i, d := range dates {
		t.dates[i] = day(d)
	}
	for c, col := range values {
		if len(col) != len(dates) {
			return nil, errShape(columns[c], len(dates), len(col))
		}
		t.values[c] = slices.Clone(col)
	}
	return t, nil
}

// DateColumn returns the physical name of the date index column.
func (t *Table) DateColumn() string { return t.dateColumn }

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.dates) }

// Columns returns the numeric column names in source order.
func (t *Table) Columns() []string { return slices.Clone(t.columns) }

// Dates returns the date index in table order.
func (t *Table) Dates() []time.Time { return slices.Clone(t.dates) }

// Column returns the values of the named column in table order.
func (t *Table) Column(name string) ([]Value, error) {
	i := slices.Index(t.columns, name)
	if i < 0 {
		return nil, &ColumnNotFoundError{Name: name, Candidates: []string{name}}
	}
	return slices.Clone(t.values[i]), nil
}

// Head returns the first n rows in table order.
func (t *Table) Head(n int) []Row {
	n = min(max(n, 0), len(t.dates))
	rows := make([]Row, n)
	for r := range n {
		vals := make([]Value, len(t.columns))
		for c := range t.columns {
			vals[c] = t.values[c][r]
		}
		rows[r] = Row{Date: t.dates[r], Values: vals}
	}
	return rows
}

func day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
