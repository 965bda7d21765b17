// Package dataset loads date-indexed price tables and resolves ambiguous column names.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Format is the encoding of a dataset file.
type Format string

const (
	FormatAuto Format = ""
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// Options control how raw rows become a Table.
type Options struct {
	// DateColumn is the logical name of the date index, resolved through Aliases.
	DateColumn string
	Aliases    Aliases
	Format     Format
	// Sheet selects the worksheet of an xlsx workbook. Empty means the first sheet.
	Sheet  string
	Logger *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.DateColumn == "" {
		o.DateColumn = DateField
	}
	if o.Aliases == nil {
		o.Aliases = DefaultAliases()
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// ErrNoHeader is returned for input without a header row.
var ErrNoHeader = errors.New("dataset has no header row")

var dateLayouts = []string{
	"2006-1-2",
	"2006/1/2",
	"1/2/2006",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2-Jan-2006",
	"Jan 2, 2006",
	"20060102",
}

// ParseDate parses a calendar date in any of the accepted layouts. The time of day is
// discarded.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	var firstErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return day(t), nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}

// Load reads CSV input with a header row.
func Load(r io.Reader, opts Options) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrNoHeader
	}
	return FromRows(records[0], records[1:], opts)
}

// LoadFile loads a CSV or xlsx file, choosing the decoder from opts.Format or the extension.
func LoadFile(path string, opts Options) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	format := opts.Format
	if format == FormatAuto {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".xlsx", ".xlsm":
			format = FormatXLSX
		default:
			format = FormatCSV
		}
	}

	switch format {
	case FormatCSV:
		return Load(f, opts)
	case FormatXLSX:
		return LoadXLSX(f, opts)
	default:
		return nil, fmt.Errorf("unsupported dataset format %q", format)
	}
}

// FromRows builds a Table from a header and string rows. Every column other than the date
// column becomes a numeric column. The load is all-or-nothing: one unparseable date fails it.
func FromRows(header []string, rows [][]string, opts Options) (*Table, error) {
	return fromRows(header, rows, opts, ParseDate)
}

func fromRows(header []string, rows [][]string, opts Options, parseDate func(string) (time.Time, error)) (*Table, error) {
	opts = opts.withDefaults()
	if len(header) == 0 {
		return nil, ErrNoHeader
	}

	names := make([]string, len(header))
	for i, h := range header {
		names[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}

	dateName, err := opts.Aliases.resolveIn(opts.DateColumn, names)
	if err != nil {
		return nil, err
	}

	dateIdx := -1
	var columns []string
	var colIdx []int
	for i, n := range names {
		switch {
		case n == dateName && dateIdx < 0:
			dateIdx = i
		case n == "":
			// unnamed index columns written by dataframe exports
		default:
			columns = append(columns, n)
			colIdx = append(colIdx, i)
		}
	}

	dates := make([]time.Time, 0, len(rows))
	values := make([][]Value, len(columns))
	for c := range values {
		values[c] = make([]Value, 0, len(rows))
	}

	invalid := 0
	for r, row := range rows {
		raw := cell(row, dateIdx)
		d, err := parseDate(raw)
		if err != nil {
			return nil, &DateParseError{Row: r + 1, Value: raw, Err: err}
		}
		dates = append(dates, d)

		for c, idx := range colIdx {
			v, ok := ParseValue(cell(row, idx))
			if !ok {
				invalid++
				opts.Logger.Warn("non-numeric cell treated as missing",
					slog.Int("row", r+1),
					slog.String("column", columns[c]),
					slog.String("value", cell(row, idx)))
			}
			values[c] = append(values[c], v)
		}
	}

	opts.Logger.Debug("dataset loaded",
		slog.String("date_column", dateName),
		slog.Int("rows", len(dates)),
		slog.Int("columns", len(columns)),
		slog.Int("invalid_cells", invalid))

	return NewTable(dateName, dates, columns, values)
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
