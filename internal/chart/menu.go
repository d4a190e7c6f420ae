package chart

import "github.com/datalens-labs/datalens/internal/schema"

// AvailableKinds returns the chart kinds that the classified table can
// support, in display order. A kind is offered only when its minimum
// column precondition can be met, so the resolver never sees a kind that
// is impossible for the current table.
func AvailableKinds(c schema.Classification) []Kind {
	kinds := []Kind{KindCorrelationHeatmap}

	if len(c.Numeric) >= 1 {
		kinds = append(kinds, KindHistogram)
	}
	if len(c.Numeric) >= 2 {
		kinds = append(kinds, KindScatter)
	}
	if len(c.Numeric) >= 1 {
		kinds = append(kinds, KindBox, KindViolin)
	}
	if len(c.Numeric) >= 3 {
		kinds = append(kinds, KindScatterMatrix)
	}
	if len(c.Categorical) >= 1 {
		kinds = append(kinds, KindCount)
	}
	if len(c.Temporal) >= 1 && len(c.Numeric) >= 1 {
		kinds = append(kinds, KindTimeSeries)
	}
	if len(c.Categorical) >= 2 {
		kinds = append(kinds, KindSunburst, KindTreemap)
	}

	return kinds
}
