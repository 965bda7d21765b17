package chart

import (
	"fmt"
	"maps"
	"slices"
)

// DefaultTheme is used when a layout names no theme.
const DefaultTheme = "plotly_white"

// Theme holds the colours a renderer needs for a named template.
type Theme struct {
	Name       string
	PaperColor string
	PlotColor  string
	GridColor  string
	FontColor  string
}

var themes = map[string]Theme{
	"plotly":       {Name: "plotly", PaperColor: "#ffffff", PlotColor: "#e5ecf6", GridColor: "#ffffff", FontColor: "#2a3f5f"},
	"plotly_white": {Name: "plotly_white", PaperColor: "#ffffff", PlotColor: "#ffffff", GridColor: "#ebf0f8", FontColor: "#2a3f5f"},
	"plotly_dark":  {Name: "plotly_dark", PaperColor: "#111111", PlotColor: "#111111", GridColor: "#283442", FontColor: "#f2f5fa"},
	"simple_white": {Name: "simple_white", PaperColor: "#ffffff", PlotColor: "#ffffff", GridColor: "#ffffff", FontColor: "#444444"},
}

// LookupTheme returns the named theme. An empty name selects DefaultTheme.
func LookupTheme(name string) (Theme, error) {
	if name == "" {
		name = DefaultTheme
	}
	t, ok := themes[name]
	if !ok {
		return Theme{}, fmt.Errorf("unknown chart theme %q", name)
	}
	return t, nil
}

// Themes lists the registered theme names, sorted.
func Themes() []string {
	return slices.Sorted(maps.Keys(themes))
}
