// Package chart maps a table classification to the chart kinds it supports
// and resolves user selections into fully-specified chart requests.
package chart

// Kind identifies one chart type. Dispatch is always on the enum, never on
// display strings.
type Kind int

const (
	KindUnknown Kind = iota
	KindCorrelationHeatmap
	KindHistogram
	KindScatter
	KindBox
	KindViolin
	KindScatterMatrix
	KindCount
	KindTimeSeries
	KindSunburst
	KindTreemap
)

// String returns the stable identifier used in URLs and signals.
func (k Kind) String() string {
	switch k {
	case KindCorrelationHeatmap:
		return "heatmap"
	case KindHistogram:
		return "histogram"
	case KindScatter:
		return "scatter"
	case KindBox:
		return "box"
	case KindViolin:
		return "violin"
	case KindScatterMatrix:
		return "scatter_matrix"
	case KindCount:
		return "count"
	case KindTimeSeries:
		return "timeseries"
	case KindSunburst:
		return "sunburst"
	case KindTreemap:
		return "treemap"
	default:
		return "unknown"
	}
}

// Label returns the menu label shown to the user.
func (k Kind) Label() string {
	switch k {
	case KindCorrelationHeatmap:
		return "Correlation Heatmap"
	case KindHistogram:
		return "Histogram (Distribution)"
	case KindScatter:
		return "Scatter Plot (Relationship)"
	case KindBox:
		return "Box Plot (Outliers/Comparison)"
	case KindViolin:
		return "Violin Plot (Density/Distribution)"
	case KindScatterMatrix:
		return "Scatter Matrix (Multivariate)"
	case KindCount:
		return "Count Plot (Bar Chart)"
	case KindTimeSeries:
		return "Time Series Plot (Line Chart)"
	case KindSunburst:
		return "Sunburst Chart (Hierarchy)"
	case KindTreemap:
		return "Treemap (Hierarchy)"
	default:
		return "Unknown"
	}
}

// ParseKind maps a stable identifier back to its Kind. Unrecognized input
// yields KindUnknown, which the resolver rejects with a validation error.
func ParseKind(s string) Kind {
	for _, k := range allKinds {
		if k.String() == s {
			return k
		}
	}
	return KindUnknown
}

// allKinds lists every kind in display order.
var allKinds = []Kind{
	KindCorrelationHeatmap,
	KindHistogram,
	KindScatter,
	KindBox,
	KindViolin,
	KindScatterMatrix,
	KindCount,
	KindTimeSeries,
	KindSunburst,
	KindTreemap,
}
