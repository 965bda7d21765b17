package chart

import (
	"encoding/json"

	"stockdash/internal/dataset"
)

const dateLayout = "2006-01-02"

// Figure is the Plotly JSON form of a Spec. Missing values are null, which Plotly renders as
// a break in the line.
type Figure struct {
	Name   string       `json:"name,omitempty"`
	Kind   Kind         `json:"kind"`
	Data   []scatter    `json:"data"`
	Layout figureLayout `json:"layout"`
}

type scatter struct {
	Type   string          `json:"type"`
	Mode   Mode            `json:"mode"`
	Name   string          `json:"name"`
	X      []string        `json:"x"`
	Y      []dataset.Value `json:"y"`
	Line   *line           `json:"line,omitempty"`
	Marker *marker         `json:"marker,omitempty"`
}

type line struct {
	Color string  `json:"color,omitempty"`
	Width float64 `json:"width,omitempty"`
	Dash  string  `json:"dash,omitempty"`
}

type marker struct {
	Color string `json:"color,omitempty"`
}

type text struct {
	Text string `json:"text"`
}

type axis struct {
	Title     text   `json:"title"`
	Type      string `json:"type,omitempty"`
	GridColor string `json:"gridcolor,omitempty"`
}

type legend struct {
	Orientation string  `json:"orientation,omitempty"`
	YAnchor     string  `json:"yanchor,omitempty"`
	Y           float64 `json:"y"`
	XAnchor     string  `json:"xanchor,omitempty"`
	X           float64 `json:"x"`
}

type font struct {
	Color string `json:"color,omitempty"`
}

type figureLayout struct {
	Title        text    `json:"title"`
	XAxis        axis    `json:"xaxis"`
	YAxis        axis    `json:"yaxis"`
	Legend       *legend `json:"legend,omitempty"`
	Template     string  `json:"template"`
	PaperBGColor string  `json:"paper_bgcolor,omitempty"`
	PlotBGColor  string  `json:"plot_bgcolor,omitempty"`
	Font         *font   `json:"font,omitempty"`
}

// Figure converts s to its Plotly form.
func (s *Spec) Figure() Figure {
	theme, err := LookupTheme(s.Layout.Theme)
	if err != nil {
		theme = themes[DefaultTheme]
	}

	fig := Figure{
		Name: s.Name,
		Kind: s.Kind,
		Data: make([]scatter, len(s.Traces)),
		Layout: figureLayout{
			Title:        text{s.Layout.Title},
			XAxis:        axis{Title: text{s.Layout.XAxisTitle}, Type: "date", GridColor: theme.GridColor},
			YAxis:        axis{Title: text{s.Layout.YAxisTitle}, GridColor: theme.GridColor},
			Template:     theme.Name,
			PaperBGColor: theme.PaperColor,
			PlotBGColor:  theme.PlotColor,
			Font:         &font{Color: theme.FontColor},
		},
	}
	if l := s.Layout.Legend; l != nil {
		fig.Layout.Legend = &legend{
			Orientation: l.Orientation,
			YAnchor:     l.YAnchor,
			Y:           l.Y,
			XAnchor:     l.XAnchor,
			X:           l.X,
		}
	}

	for i, tr := range s.Traces {
		x := make([]string, len(tr.X))
		for j, t := range tr.X {
			x[j] = t.Format(dateLayout)
		}
		sc := scatter{Type: "scatter", Mode: tr.Style.Mode, Name: tr.Name, X: x, Y: tr.Y}
		if tr.Style.Color != "" || tr.Style.Width != 0 || tr.Style.Dash != "" {
			sc.Line = &line{Color: tr.Style.Color, Width: tr.Style.Width, Dash: tr.Style.Dash}
		}
		if tr.Style.Mode != ModeLines && tr.Style.Color != "" {
			sc.Marker = &marker{Color: tr.Style.Color}
		}
		fig.Data[i] = sc
	}
	return fig
}

// MarshalJSON encodes s as a Plotly figure.
func (s *Spec) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Figure())
}
