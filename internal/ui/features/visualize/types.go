package visualize

import "github.com/datalens-labs/datalens/internal/chart"

// renderSignals mirrors the browser-side signals for one chart request.
type renderSignals struct {
	Kind    string   `json:"kind"`
	X       string   `json:"x"`
	Y       string   `json:"y"`
	Color   string   `json:"color"`
	Group   string   `json:"group"`
	Columns []string `json:"columns"`
	Path    []string `json:"path"`
	Values  string   `json:"values"`
}

func signalsFor(kind chart.Kind, sel chart.Selections) renderSignals {
	s := renderSignals{
		Kind:    kind.String(),
		X:       sel.X,
		Y:       sel.Y,
		Color:   sel.Color,
		Group:   sel.Group,
		Columns: sel.Columns,
		Path:    sel.Path,
		Values:  sel.Values,
	}
	if s.Columns == nil {
		s.Columns = []string{}
	}
	if s.Path == nil {
		s.Path = []string{}
	}
	return s
}

func (s renderSignals) selections() chart.Selections {
	return chart.Selections{
		X:       s.X,
		Y:       s.Y,
		Color:   s.Color,
		Group:   s.Group,
		Columns: s.Columns,
		Path:    s.Path,
		Values:  s.Values,
	}
}
