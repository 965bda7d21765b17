package dataset

import (
	"errors"
	"fmt"
	"strings"
)

// ErrShape reports columns whose lengths disagree with the date index.
var ErrShape = errors.New("inconsistent table shape")

func errShape(what string, want, got int) error {
	return fmt.Errorf("%w: %s has %d entries, want %d", ErrShape, what, got, want)
}

// DateParseError reports a date cell that could not be parsed. A single bad date aborts the
// whole load.
type DateParseError struct {
	Row   int    // 1-based data row, header excluded
	Value string // raw cell content
	Err   error
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("row %d: invalid date %q", e.Row, e.Value)
}

func (e *DateParseError) Unwrap() error { return e.Err }

// ColumnNotFoundError reports a logical column that resolves to no physical column.
type ColumnNotFoundError struct {
	Name       string   // logical or physical name that was requested
	Candidates []string // physical names that were tried
}

func (e *ColumnNotFoundError) Error() string {
	if len(e.Candidates) == 0 || (len(e.Candidates) == 1 && e.Candidates[0] == e.Name) {
		return fmt.Sprintf("column %q not found", e.Name)
	}
	return fmt.Sprintf("column %q not found (tried %s)", e.Name, strings.Join(e.Candidates, ", "))
}
