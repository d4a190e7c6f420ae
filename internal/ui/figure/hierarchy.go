package figure

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/datalens-labs/datalens/internal/chart"
	"github.com/datalens-labs/datalens/internal/dataset"
)

// idSep joins path segments into node ids. A control character keeps ids
// unambiguous even when category labels contain separators themselves.
const idSep = "\x1f"

// buildHierarchy assembles sunburst and treemap traces. Plotly wants the
// whole tree flattened into parallel ids/labels/parents/values arrays, so
// we aggregate once per depth level and stitch the levels together.
func buildHierarchy(ctx context.Context, st *dataset.Store, spec *chart.Spec) (*Figure, error) {
	var ids, labels, parents []string
	var values []float64

	notNull := make([]string, 0, len(spec.Path))
	for _, col := range spec.Path {
		notNull = append(notNull, fmt.Sprintf("%s IS NOT NULL", dataset.QuoteIdent(col)))
	}
	where := strings.Join(notNull, " AND ")

	agg := "count(*)"
	if spec.ValueColumn != "" {
		agg = fmt.Sprintf("sum(CAST(%s AS DOUBLE))", dataset.QuoteIdent(spec.ValueColumn))
	}

	for depth := 1; depth <= len(spec.Path); depth++ {
		cols := make([]string, 0, depth+1)
		groupBy := make([]string, 0, depth)
		for i := 0; i < depth; i++ {
			cols = append(cols, fmt.Sprintf("CAST(%s AS VARCHAR)", dataset.QuoteIdent(spec.Path[i])))
			groupBy = append(groupBy, fmt.Sprint(i+1))
		}
		cols = append(cols, agg)

		query := fmt.Sprintf("SELECT %s FROM %s WHERE %s GROUP BY %s ORDER BY %s",
			strings.Join(cols, ", "), dataset.TableName, where,
			strings.Join(groupBy, ", "), strings.Join(groupBy, ", "))

		rows, err := st.Query(ctx, query)
		if err != nil {
			return nil, err
		}

		segments := make([]string, depth)
		ptrs := make([]any, depth+1)
		for i := range segments {
			ptrs[i] = &segments[i]
		}
		// sum() over an all-NULL group is NULL; such nodes count as zero.
		var total sql.NullFloat64
		ptrs[depth] = &total

		for rows.Next() {
			if err := rows.Scan(ptrs...); err != nil {
				rows.Close()
				return nil, err
			}
			ids = append(ids, strings.Join(segments, idSep))
			labels = append(labels, segments[depth-1])
			if depth == 1 {
				parents = append(parents, "")
			} else {
				parents = append(parents, strings.Join(segments[:depth-1], idSep))
			}
			values = append(values, total.Float64)
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return nil, err
		}
		rows.Close()
	}

	traceType := "sunburst"
	if spec.Kind == chart.KindTreemap {
		traceType = "treemap"
	}
	return &Figure{
		Data: []Trace{{
			"type":         traceType,
			"ids":          ids,
			"labels":       labels,
			"parents":      parents,
			"values":       values,
			"branchvalues": "total",
		}},
		Layout: newLayout(spec),
	}, nil
}
