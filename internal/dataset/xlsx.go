package dataset

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// LoadXLSX reads the first (or opts.Sheet) worksheet of an xlsx workbook. The first
// non-blank row is the header. Date cells may hold formatted text or raw Excel serials.
func LoadXLSX(r io.Reader, opts Options) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheet := opts.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, ErrNoHeader
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	rows = slices.DeleteFunc(rows, blankRow)
	if len(rows) == 0 {
		return nil, ErrNoHeader
	}

	use1904 := false
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		use1904 = *props.Date1904
	}
	parse := func(s string) (time.Time, error) {
		t, err := ParseDate(s)
		if err == nil {
			return t, nil
		}
		serial, serr := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if serr != nil || serial <= 0 {
			return time.Time{}, err
		}
		t, serr = excelize.ExcelDateToTime(serial, use1904)
		if serr != nil {
			return time.Time{}, err
		}
		return day(t), nil
	}

	return fromRows(rows[0], rows[1:], opts, parse)
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
