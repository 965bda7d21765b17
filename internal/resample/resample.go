// Package resample reduces date-indexed columns to one observation per calendar period.
package resample

import (
	"fmt"
	"slices"
	"time"

	"stockdash/internal/dataset"
	"stockdash/internal/period"
)

// Series is one column reduced to a calendar granularity. Index holds period-end dates in
// chronological order and Values[i] is the observation for Index[i].
type Series struct {
	Name   string          `json:"name"`
	Period period.Period   `json:"-"`
	Index  []time.Time     `json:"index"`
	Values []dataset.Value `json:"values"`
}

// Len returns the number of periods.
func (s Series) Len() int { return len(s.Index) }

// Labels returns the period labels of the index, e.g. "2024-01".
func (s Series) Labels() []string {
	out := make([]string, len(s.Index))
	for i, t := range s.Index {
		out[i] = s.Period.Label(t)
	}
	return out
}

// Valid returns the number of periods that carry a value.
func (s Series) Valid() int {
	n := 0
	for _, v := range s.Values {
		if v.Valid {
			n++
		}
	}
	return n
}

// Resample buckets the rows of t by period p and keeps, for each bucket and column, the
// value of the chronologically last row that has one. Every period between the first and the
// last date of t is emitted, so gaps show up as missing values. Rows sharing a date keep
// table order, so the later row in the table wins among them.
//
// The result has one Series per requested column, in request order. An empty table yields
// empty series.
func Resample(t *dataset.Table, columns []string, p period.Period) ([]Series, error) {
	cols := make([][]dataset.Value, len(columns))
	for i, name := range columns {
		vals, err := t.Column(name)
		if err != nil {
			return nil, fmt.Errorf("resample %s: %w", name, err)
		}
		cols[i] = vals
	}

	dates := t.Dates()
	index := Buckets(dates, p)
	pos := make(map[time.Time]int, len(index))
	for i, end := range index {
		pos[end] = i
	}

	order := chronological(dates)

	out := make([]Series, len(columns))
	for i, name := range columns {
		values := make([]dataset.Value, len(index))
		for _, row := range order {
			v := cols[i][row]
			if !v.Valid {
				continue
			}
			values[pos[p.EndOf(dates[row])]] = v
		}
		out[i] = Series{
			Name:   name,
			Period: p,
			Index:  slices.Clone(index),
			Values: values,
		}
	}
	return out, nil
}

// Monthly is Resample with period.Monthly.
func Monthly(t *dataset.Table, columns ...string) ([]Series, error) {
	return Resample(t, columns, period.Monthly)
}

// Buckets returns the period-end markers of every period from the one containing the
// earliest date to the one containing the latest, in order.
func Buckets(dates []time.Time, p period.Period) []time.Time {
	if len(dates) == 0 {
		return []time.Time{}
	}
	first, last := slices.MinFunc(dates, compareTime), slices.MaxFunc(dates, compareTime)

	var out []time.Time
	for start := p.StartOf(first); !start.After(last); start = p.Next(start) {
		out = append(out, p.EndOf(start))
	}
	return out
}

// chronological returns row positions sorted by date; ties keep table order.
func chronological(dates []time.Time) []int {
	order := make([]int, len(dates))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return compareTime(dates[a], dates[b])
	})
	return order
}

func compareTime(a, b time.Time) int { return a.Compare(b) }
