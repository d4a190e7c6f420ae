// Package figure turns a resolved chart spec into a Plotly figure payload
// (traces plus layout) rendered client-side by plotly.js.
package figure

import (
	"context"
	"fmt"
	"math"

	"github.com/datalens-labs/datalens/internal/chart"
	"github.com/datalens-labs/datalens/internal/dataset"
	"github.com/datalens-labs/datalens/internal/stats"
)

// defaultHeight keeps every chart the same size for visual consistency.
const defaultHeight = 500

// Trace is one Plotly trace object.
type Trace map[string]any

// Figure is the payload handed to Plotly.react.
type Figure struct {
	Data   []Trace        `json:"data"`
	Layout map[string]any `json:"layout"`
}

// Build fetches the data slice a spec references and assembles the figure.
// The spec is assumed to have passed resolution; data access errors are
// real I/O failures, not validation problems.
func Build(ctx context.Context, st *dataset.Store, spec *chart.Spec) (*Figure, error) {
	switch spec.Kind {
	case chart.KindHistogram:
		return buildHistogram(ctx, st, spec)
	case chart.KindScatter:
		return buildScatter(ctx, st, spec)
	case chart.KindScatterMatrix:
		return buildScatterMatrix(ctx, st, spec)
	case chart.KindBox:
		return buildBox(ctx, st, spec)
	case chart.KindViolin:
		return buildViolin(ctx, st, spec)
	case chart.KindCount:
		return buildCount(ctx, st, spec)
	case chart.KindTimeSeries:
		return buildTimeSeries(ctx, st, spec)
	case chart.KindCorrelationHeatmap:
		return buildHeatmap(ctx, st, spec)
	case chart.KindSunburst, chart.KindTreemap:
		return buildHierarchy(ctx, st, spec)
	default:
		return nil, fmt.Errorf("no figure builder for kind %s", spec.Kind)
	}
}

func newLayout(spec *chart.Spec) map[string]any {
	return map[string]any{
		"title":  map[string]any{"text": spec.Title},
		"height": defaultHeight,
	}
}

func buildHistogram(ctx context.Context, st *dataset.Store, spec *chart.Spec) (*Figure, error) {
	layout := newLayout(spec)

	if spec.Color == "" {
		values, err := st.Values(ctx, spec.X)
		if err != nil {
			return nil, err
		}
		return &Figure{
			Data:   []Trace{{"type": "histogram", "x": values, "name": spec.X}},
			Layout: layout,
		}, nil
	}

	groups, err := groupedValues(ctx, st, spec.X, spec.Color, false)
	if err != nil {
		return nil, err
	}

	// The marginal box overlay lives in a slim panel above the shared x
	// axis, one box per color group.
	var data []Trace
	for _, g := range groups {
		data = append(data, Trace{
			"type": "histogram", "x": g.values, "name": g.label,
			"opacity": 0.75,
		})
	}
	for _, g := range groups {
		data = append(data, Trace{
			"type": "box", "x": g.values, "name": g.label,
			"yaxis": "y2", "showlegend": false,
		})
	}
	layout["barmode"] = "overlay"
	layout["yaxis"] = map[string]any{"domain": []float64{0, 0.82}}
	layout["yaxis2"] = map[string]any{"domain": []float64{0.85, 1}}
	return &Figure{Data: data, Layout: layout}, nil
}

func buildScatter(ctx context.Context, st *dataset.Store, spec *chart.Spec) (*Figure, error) {
	layout := newLayout(spec)

	if spec.Color == "" {
		xs, ys, err := pairedValues(ctx, st, spec.X, spec.Y)
		if err != nil {
			return nil, err
		}
		return &Figure{
			Data:   []Trace{{"type": "scatter", "mode": "markers", "x": xs, "y": ys}},
			Layout: layout,
		}, nil
	}

	// Numeric color columns map to a continuous scale; everything else
	// gets one trace per category.
	if col, ok := st.Table().Column(spec.Color); ok && col.Semantic == dataset.SemanticNumeric {
		xs, ys, cs, err := tripleValues(ctx, st, spec.X, spec.Y, spec.Color)
		if err != nil {
			return nil, err
		}
		return &Figure{
			Data: []Trace{{
				"type": "scatter", "mode": "markers", "x": xs, "y": ys,
				"marker": map[string]any{
					"color":      cs,
					"colorscale": "Viridis",
					"showscale":  true,
					"colorbar":   map[string]any{"title": spec.Color},
				},
			}},
			Layout: layout,
		}, nil
	}

	groups, err := groupedPairs(ctx, st, spec.X, spec.Y, spec.Color)
	if err != nil {
		return nil, err
	}
	var data []Trace
	for _, g := range groups {
		data = append(data, Trace{
			"type": "scatter", "mode": "markers",
			"x": g.xs, "y": g.ys, "name": g.label,
		})
	}
	return &Figure{Data: data, Layout: layout}, nil
}

func buildScatterMatrix(ctx context.Context, st *dataset.Store, spec *chart.Spec) (*Figure, error) {
	layout := newLayout(spec)

	if spec.Color == "" {
		dims := make([]map[string]any, 0, len(spec.Columns))
		for _, col := range spec.Columns {
			values, err := st.Values(ctx, col)
			if err != nil {
				return nil, err
			}
			dims = append(dims, map[string]any{"label": col, "values": values})
		}
		return &Figure{
			Data: []Trace{{
				"type": "splom", "dimensions": dims,
				"diagonal": map[string]any{"visible": false},
			}},
			Layout: layout,
		}, nil
	}

	// One splom trace per color category so groups are distinguishable
	// and toggleable in the legend.
	groups, err := groupedRows(ctx, st, spec.Columns, spec.Color)
	if err != nil {
		return nil, err
	}
	var data []Trace
	for _, g := range groups {
		dims := make([]map[string]any, len(spec.Columns))
		for i, col := range spec.Columns {
			dims[i] = map[string]any{"label": col, "values": g.columns[i]}
		}
		data = append(data, Trace{
			"type": "splom", "dimensions": dims, "name": g.label,
			"diagonal": map[string]any{"visible": false},
		})
	}
	return &Figure{Data: data, Layout: layout}, nil
}

func buildBox(ctx context.Context, st *dataset.Store, spec *chart.Spec) (*Figure, error) {
	layout := newLayout(spec)

	if spec.X == "" {
		values, err := st.Values(ctx, spec.Y)
		if err != nil {
			return nil, err
		}
		return &Figure{
			Data:   []Trace{{"type": "box", "y": values, "name": spec.Y}},
			Layout: layout,
		}, nil
	}

	xs, ys, err := pairedValues(ctx, st, spec.X, spec.Y)
	if err != nil {
		return nil, err
	}
	return &Figure{
		Data:   []Trace{{"type": "box", "x": xs, "y": ys, "name": spec.Y}},
		Layout: layout,
	}, nil
}

func buildViolin(ctx context.Context, st *dataset.Store, spec *chart.Spec) (*Figure, error) {
	layout := newLayout(spec)

	// Violins always show the inner box and all sample points.
	if spec.X == "" {
		values, err := st.Values(ctx, spec.Y)
		if err != nil {
			return nil, err
		}
		return &Figure{
			Data: []Trace{{
				"type": "violin", "y": values, "name": spec.Y,
				"box": map[string]any{"visible": true}, "points": "all",
			}},
			Layout: layout,
		}, nil
	}

	groups, err := groupedValues(ctx, st, spec.Y, spec.X, false)
	if err != nil {
		return nil, err
	}
	var data []Trace
	for _, g := range groups {
		data = append(data, Trace{
			"type": "violin", "y": g.values, "name": g.label,
			"box": map[string]any{"visible": true}, "points": "all",
		})
	}
	return &Figure{Data: data, Layout: layout}, nil
}

func buildCount(ctx context.Context, st *dataset.Store, spec *chart.Spec) (*Figure, error) {
	values, err := st.Values(ctx, spec.X)
	if err != nil {
		return nil, err
	}
	return &Figure{
		Data:   []Trace{{"type": "histogram", "x": values, "name": spec.X}},
		Layout: newLayout(spec),
	}, nil
}

func buildTimeSeries(ctx context.Context, st *dataset.Store, spec *chart.Spec) (*Figure, error) {
	layout := newLayout(spec)

	if spec.Color == "" {
		xs, ys, err := temporalPairs(ctx, st, spec.X, spec.Y)
		if err != nil {
			return nil, err
		}
		return &Figure{
			Data:   []Trace{{"type": "scatter", "mode": "lines", "x": xs, "y": ys, "name": spec.Y}},
			Layout: layout,
		}, nil
	}

	groups, err := groupedTemporalPairs(ctx, st, spec.X, spec.Y, spec.Color)
	if err != nil {
		return nil, err
	}
	var data []Trace
	for _, g := range groups {
		data = append(data, Trace{
			"type": "scatter", "mode": "lines", "x": g.xs, "y": g.ys, "name": g.label,
		})
	}
	return &Figure{Data: data, Layout: layout}, nil
}

func buildHeatmap(ctx context.Context, st *dataset.Store, spec *chart.Spec) (*Figure, error) {
	m, err := stats.CorrelationMatrix(ctx, st.DB(), spec.Columns)
	if err != nil {
		return nil, err
	}

	// JSON has no NaN; undefined correlations become null cells.
	z := make([][]any, len(m.Values))
	for i, row := range m.Values {
		z[i] = make([]any, len(row))
		for j, v := range row {
			if math.IsNaN(v) {
				z[i][j] = nil
			} else {
				z[i][j] = v
			}
		}
	}

	return &Figure{
		Data: []Trace{{
			"type": "heatmap",
			"z":    z, "x": m.Columns, "y": m.Columns,
			"colorscale":   "Inferno",
			"zmin":         -1, "zmax": 1,
			"texttemplate": "%{z:.2f}",
		}},
		Layout: newLayout(spec),
	}, nil
}
