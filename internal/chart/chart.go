// Package chart builds declarative line chart specifications from dated series.
//
// A Spec is plain data: traces in insertion order plus layout metadata. It carries no
// rendering state and serialises to a Plotly figure.
package chart

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"stockdash/internal/dataset"
)

// Kind tells the host which invocation pattern produced a spec.
type Kind string

const (
	// KindContinuous is a single-trace chart over an unaggregated series.
	KindContinuous Kind = "continuous"
	// KindResampled is a chart over one resampled column.
	KindResampled Kind = "resampled"
)

// Mode is the trace drawing mode.
type Mode string

const (
	ModeLines        Mode = "lines"
	ModeMarkers      Mode = "markers"
	ModeLinesMarkers Mode = "lines+markers"
)

// Style is the visual style of one trace.
type Style struct {
	Mode  Mode
	Color string
	Width float64 // 0 leaves the renderer default
	Dash  string  // "solid", "dot", "dash"; empty leaves the renderer default
}

// TraceInput is one (label, x, y, style) tuple handed to the composer.
type TraceInput struct {
	Name  string
	X     []time.Time
	Y     []dataset.Value
	Style Style
}

// Trace is a composed series. Its slices are owned by the Spec.
type Trace struct {
	Name  string
	X     []time.Time
	Y     []dataset.Value
	Style Style
}

// Legend places the legend box. Coordinates are in paper units.
type Legend struct {
	Orientation string
	YAnchor     string
	Y           float64
	XAnchor     string
	X           float64
}

// HorizontalTop is a horizontal legend right-aligned just above the plot area.
func HorizontalTop() *Legend {
	return &Legend{Orientation: "h", YAnchor: "bottom", Y: 1.02, XAnchor: "right", X: 1}
}

// Layout is the chart-wide metadata.
type Layout struct {
	Title      string
	XAxisTitle string
	YAxisTitle string
	Legend     *Legend // nil leaves the renderer default
	Theme      string  // a registered theme name; empty means DefaultTheme
}

// Spec is a chart specification.
type Spec struct {
	Name   string
	Kind   Kind
	Layout Layout
	Traces []Trace
}

// ErrNoTraces is returned when composing a chart without any trace.
var ErrNoTraces = errors.New("chart has no traces")

// TraceLengthMismatchError reports a trace whose x and y sequences differ in length.
type TraceLengthMismatchError struct {
	Trace string
	X, Y  int
}

func (e *TraceLengthMismatchError) Error() string {
	return fmt.Sprintf("trace %q: x has %d points, y has %d", e.Trace, e.X, e.Y)
}

// NewSpec returns an empty spec. Traces are added with AddTrace.
func NewSpec(kind Kind, layout Layout) *Spec {
	if layout.Legend != nil {
		l := *layout.Legend
		layout.Legend = &l
	}
	return &Spec{Kind: kind, Layout: layout}
}

// AddTrace validates in and appends a copy of it.
func (s *Spec) AddTrace(in TraceInput) error {
	if len(in.X) != len(in.Y) {
		return &TraceLengthMismatchError{Trace: in.Name, X: len(in.X), Y: len(in.Y)}
	}
	if _, err := LookupTheme(s.Layout.Theme); err != nil {
		return err
	}
	mode := in.Style.Mode
	if mode == "" {
		mode = ModeLines
	}
	st := in.Style
	st.Mode = mode
	s.Traces = append(s.Traces, Trace{
		Name:  in.Name,
		X:     slices.Clone(in.X),
		Y:     slices.Clone(in.Y),
		Style: st,
	})
	return nil
}

// Validate checks the invariants of a spec built by hand.
func (s *Spec) Validate() error {
	if len(s.Traces) == 0 {
		return ErrNoTraces
	}
	for _, tr := range s.Traces {
		if len(tr.X) != len(tr.Y) {
			return &TraceLengthMismatchError{Trace: tr.Name, X: len(tr.X), Y: len(tr.Y)}
		}
	}
	_, err := LookupTheme(s.Layout.Theme)
	return err
}

// Compose builds a spec with one trace per input, in call order.
func Compose(layout Layout, kind Kind, traces ...TraceInput) (*Spec, error) {
	if len(traces) == 0 {
		return nil, ErrNoTraces
	}
	s := NewSpec(kind, layout)
	for _, in := range traces {
		if err := s.AddTrace(in); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Points returns the number of points across all traces.
func (s *Spec) Points() int {
	n := 0
	for _, tr := range s.Traces {
		n += len(tr.X)
	}
	return n
}
