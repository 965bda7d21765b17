// Package period defines the calendar granularities used to bucket dated observations.
package period

import (
	"fmt"
	"strings"
	"time"
)

// Period is a calendar granularity.
type Period int

const (
	Daily Period = iota
	Weekly
	Monthly
	Quarterly
	Yearly
)

func (p Period) String() string {
	switch p {
	case Daily:
		return "daily"
	case Weekly:
		return "weekly"
	case Monthly:
		return "monthly"
	case Quarterly:
		return "quarterly"
	case Yearly:
		return "yearly"
	default:
		return fmt.Sprintf("period(%d)", int(p))
	}
}

// Parse parses a period name. It accepts both the adjective and the noun ("monthly", "month")
// and a pandas style alias ("M", "Q", ...).
func Parse(s string) (Period, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "daily", "day", "d":
		return Daily, nil
	case "weekly", "week", "w":
		return Weekly, nil
	case "monthly", "month", "m", "me":
		return Monthly, nil
	case "quarterly", "quarter", "q", "qe":
		return Quarterly, nil
	case "yearly", "year", "annual", "y", "ye":
		return Yearly, nil
	default:
		return Daily, fmt.Errorf("unknown period %q", s)
	}
}

// Day truncates t to midnight UTC of its calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// StartOf returns the first day of the period containing t.
// Weeks start on Monday.
func (p Period) StartOf(t time.Time) time.Time {
	t = Day(t)
	switch p {
	case Weekly:
		offset := int(t.Weekday() - time.Monday)
		for offset < 0 {
			offset += 7
		}
		return t.AddDate(0, 0, -offset)
	case Monthly:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	case Quarterly:
		quarter := (t.Month() - 1) / 3
		return time.Date(t.Year(), quarter*3+1, 1, 0, 0, 0, 0, time.UTC)
	case Yearly:
		return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	default:
		return t
	}
}

// EndOf returns the last day of the period containing t.
func (p Period) EndOf(t time.Time) time.Time {
	t = Day(t)
	switch p {
	case Weekly:
		offset := int(7 - t.Weekday())
		for offset >= 7 {
			offset -= 7
		}
		return t.AddDate(0, 0, offset)
	case Monthly:
		// day 0 of next month is the last day of this one
		return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC)
	case Quarterly:
		quarter := (t.Month() - 1) / 3
		return time.Date(t.Year(), quarter*3+4, 0, 0, 0, 0, 0, time.UTC)
	case Yearly:
		return time.Date(t.Year()+1, time.January, 0, 0, 0, 0, 0, time.UTC)
	default:
		return t
	}
}

// Next returns the start of the period following the one containing t.
func (p Period) Next(t time.Time) time.Time {
	return p.EndOf(t).AddDate(0, 0, 1)
}

// Label is a short identifier for the period containing t, e.g. "2024-02" or "2024-Q1".
func (p Period) Label(t time.Time) string {
	switch p {
	case Weekly:
		year, week := t.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	case Monthly:
		return t.Format("2006-01")
	case Quarterly:
		return fmt.Sprintf("%d-Q%d", t.Year(), (t.Month()-1)/3+1)
	case Yearly:
		return t.Format("2006")
	default:
		return Day(t).Format("2006-01-02")
	}
}
