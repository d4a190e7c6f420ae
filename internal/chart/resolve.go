package chart

import (
	"fmt"

	"github.com/datalens-labs/datalens/internal/schema"
)

// Resolve validates the user's selections against the per-kind type and
// arity constraints and produces a chart spec. Every violated precondition
// comes back as a *ValidationError; Resolve is deterministic and
// side-effect free, so identical inputs yield identical specs.
func Resolve(kind Kind, sel Selections, c schema.Classification) (*Spec, error) {
	switch kind {
	case KindHistogram:
		return resolveHistogram(sel, c)
	case KindScatter:
		return resolveScatter(sel, c)
	case KindScatterMatrix:
		return resolveScatterMatrix(sel, c)
	case KindBox:
		return resolveBox(sel, c)
	case KindViolin:
		return resolveViolin(sel, c)
	case KindCount:
		return resolveCount(sel, c)
	case KindTimeSeries:
		return resolveTimeSeries(sel, c)
	case KindCorrelationHeatmap:
		return resolveHeatmap(c)
	case KindSunburst, KindTreemap:
		return resolveHierarchy(kind, sel, c)
	default:
		return nil, validationf("unknown chart kind")
	}
}

// DefaultSelections returns the initial column choices offered for a kind,
// mirroring the defaults of the selector widgets.
func DefaultSelections(kind Kind, c schema.Classification) Selections {
	var sel Selections
	switch kind {
	case KindHistogram, KindBox, KindViolin:
		if len(c.Numeric) > 0 {
			sel.X = c.Numeric[0]
		}
	case KindScatter:
		if len(c.Numeric) > 0 {
			sel.X = c.Numeric[0]
			sel.Y = c.Numeric[0]
		}
		if len(c.Numeric) > 1 {
			sel.Y = c.Numeric[1]
		}
	case KindScatterMatrix:
		sel.Columns = firstN(c.Numeric, 5)
	case KindCount:
		if len(c.Categorical) > 0 {
			sel.X = c.Categorical[0]
		}
	case KindTimeSeries:
		if len(c.Temporal) > 0 {
			sel.X = c.Temporal[0]
		}
		if len(c.Numeric) > 0 {
			sel.Y = c.Numeric[0]
		}
	case KindSunburst, KindTreemap:
		sel.Path = firstN(c.Categorical, 3)
	}
	return sel
}

func resolveHistogram(sel Selections, c schema.Classification) (*Spec, error) {
	if len(c.Numeric) == 0 {
		return nil, validationf("requires numeric columns")
	}
	if sel.X == "" {
		return nil, validationf("select a numeric column")
	}
	if !c.IsNumeric(sel.X) {
		return nil, validationf("column %q is not numeric", sel.X)
	}

	spec := &Spec{Kind: KindHistogram, X: sel.X, Title: fmt.Sprintf("Histogram of %s", sel.X)}
	if sel.Color != "" {
		if !c.IsCategorical(sel.Color) {
			return nil, validationf("color column %q is not categorical", sel.Color)
		}
		spec.Color = sel.Color
		spec.Marginal = "box"
		spec.Title = fmt.Sprintf("Histogram of %s grouped by %s", sel.X, sel.Color)
	}
	return spec, nil
}

func resolveScatter(sel Selections, c schema.Classification) (*Spec, error) {
	if len(c.Numeric) < 2 {
		return nil, validationf("requires at least two numeric columns")
	}
	if sel.X == "" || sel.Y == "" {
		return nil, validationf("select X and Y columns")
	}
	if !c.IsNumeric(sel.X) {
		return nil, validationf("column %q is not numeric", sel.X)
	}
	if !c.IsNumeric(sel.Y) {
		return nil, validationf("column %q is not numeric", sel.Y)
	}

	spec := &Spec{
		Kind:  KindScatter,
		X:     sel.X,
		Y:     sel.Y,
		Title: fmt.Sprintf("Scatter Plot: %s vs %s", sel.X, sel.Y),
	}
	if sel.Color != "" {
		// Any column may drive the color channel here.
		if !c.HasColumn(sel.Color) {
			return nil, validationf("unknown color column %q", sel.Color)
		}
		spec.Color = sel.Color
		spec.Title = fmt.Sprintf("Scatter Plot: %s vs %s by %s", sel.X, sel.Y, sel.Color)
	}
	return spec, nil
}

func resolveScatterMatrix(sel Selections, c schema.Classification) (*Spec, error) {
	if len(c.Numeric) < 3 {
		return nil, validationf("requires at least three numeric columns")
	}
	if len(sel.Columns) < 2 {
		return nil, validationf("requires at least two columns")
	}
	for _, col := range sel.Columns {
		if !c.IsNumeric(col) {
			return nil, validationf("column %q is not numeric", col)
		}
	}

	spec := &Spec{
		Kind:    KindScatterMatrix,
		Columns: append([]string(nil), sel.Columns...),
		Title:   "Scatter Matrix",
	}
	if sel.Color != "" {
		if !c.IsCategorical(sel.Color) {
			return nil, validationf("color column %q is not categorical", sel.Color)
		}
		spec.Color = sel.Color
		spec.Title = fmt.Sprintf("Scatter Matrix colored by %s", sel.Color)
	}
	return spec, nil
}

func resolveBox(sel Selections, c schema.Classification) (*Spec, error) {
	spec, err := resolveDistribution(KindBox, "Box Plot", sel, c)
	if err != nil {
		return nil, err
	}
	return spec, nil
}

func resolveViolin(sel Selections, c schema.Classification) (*Spec, error) {
	spec, err := resolveDistribution(KindViolin, "Violin Plot", sel, c)
	if err != nil {
		return nil, err
	}
	// A violin always overlays box+points; when grouped it also colors by
	// the group so each category gets its own hue.
	if spec.X != "" {
		spec.Color = spec.X
	}
	return spec, nil
}

// resolveDistribution handles the shared shape of box and violin plots:
// one numeric Y, optional categorical group on X.
func resolveDistribution(kind Kind, label string, sel Selections, c schema.Classification) (*Spec, error) {
	if len(c.Numeric) == 0 {
		return nil, validationf("requires numeric columns")
	}
	y := sel.Y
	if y == "" {
		y = sel.X // single-column selectors submit on X
	}
	if y == "" {
		return nil, validationf("select a numeric column")
	}
	if !c.IsNumeric(y) {
		return nil, validationf("column %q is not numeric", y)
	}

	spec := &Spec{Kind: kind, Y: y, Title: fmt.Sprintf("%s of %s", label, y)}
	if sel.Group != "" {
		if !c.IsCategorical(sel.Group) {
			return nil, validationf("group column %q is not categorical", sel.Group)
		}
		spec.X = sel.Group
		spec.Title = fmt.Sprintf("%s of %s grouped by %s", label, y, sel.Group)
	}
	return spec, nil
}

func resolveCount(sel Selections, c schema.Classification) (*Spec, error) {
	if len(c.Categorical) == 0 {
		return nil, validationf("requires categorical columns")
	}
	if sel.X == "" {
		return nil, validationf("select a categorical column")
	}
	if !c.IsCategorical(sel.X) {
		return nil, validationf("column %q is not categorical", sel.X)
	}
	return &Spec{Kind: KindCount, X: sel.X, Title: fmt.Sprintf("Count Plot of %s", sel.X)}, nil
}

func resolveTimeSeries(sel Selections, c schema.Classification) (*Spec, error) {
	if len(c.Temporal) == 0 || len(c.Numeric) == 0 {
		return nil, validationf("requires at least one date and one numeric column")
	}
	if sel.X == "" || sel.Y == "" {
		return nil, validationf("select a date and a value column")
	}
	if !c.IsTemporal(sel.X) {
		return nil, validationf("column %q is not a date column", sel.X)
	}
	if !c.IsNumeric(sel.Y) {
		return nil, validationf("column %q is not numeric", sel.Y)
	}

	spec := &Spec{
		Kind:  KindTimeSeries,
		X:     sel.X,
		Y:     sel.Y,
		Title: fmt.Sprintf("Time Series of %s over %s", sel.Y, sel.X),
	}
	if sel.Color != "" {
		if !c.IsCategorical(sel.Color) {
			return nil, validationf("color column %q is not categorical", sel.Color)
		}
		spec.Color = sel.Color
		spec.Title = fmt.Sprintf("Time Series of %s over %s by %s", sel.Y, sel.X, sel.Color)
	}
	return spec, nil
}

func resolveHeatmap(c schema.Classification) (*Spec, error) {
	// Operates over the full numeric set; there is nothing to select.
	if len(c.Numeric) == 0 {
		return nil, validationf("no numeric columns")
	}
	return &Spec{
		Kind:    KindCorrelationHeatmap,
		Columns: append([]string(nil), c.Numeric...),
		Title:   "Correlation Heatmap",
	}, nil
}

func resolveHierarchy(kind Kind, sel Selections, c schema.Classification) (*Spec, error) {
	if len(c.Categorical) < 2 {
		return nil, validationf("requires at least two categorical columns")
	}
	if len(sel.Path) == 0 {
		return nil, validationf("select columns for the hierarchy path")
	}
	for _, col := range sel.Path {
		if !c.IsCategorical(col) {
			return nil, validationf("path column %q is not categorical", col)
		}
	}

	title := "Sunburst Chart"
	if kind == KindTreemap {
		title = "Treemap"
	}
	spec := &Spec{
		Kind:  kind,
		Path:  append([]string(nil), sel.Path...),
		Title: title,
	}
	if sel.Values != "" {
		if !c.IsNumeric(sel.Values) {
			return nil, validationf("value column %q is not numeric", sel.Values)
		}
		spec.ValueColumn = sel.Values
	}
	return spec, nil
}

func firstN(list []string, n int) []string {
	if len(list) < n {
		n = len(list)
	}
	return append([]string(nil), list[:n]...)
}
