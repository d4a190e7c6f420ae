package figure

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/datalens-labs/datalens/internal/dataset"
)

type valueGroup struct {
	label  string
	values []any
}

type pairGroup struct {
	label string
	xs    []any
	ys    []any
}

type rowGroup struct {
	label   string
	columns [][]any
}

// selectRows runs a SELECT over the session table and calls visit once per
// row with the scanned values ([]byte normalized to string).
func selectRows(ctx context.Context, st *dataset.Store, exprs []string, where string, visit func(vals []any)) error {
	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(exprs, ", "), dataset.TableName)
	if where != "" {
		query += " WHERE " + where
	}
	rows, err := st.Query(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	vals := make([]any, len(exprs))
	ptrs := make([]any, len(exprs))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return err
		}
		out := make([]any, len(vals))
		for i, v := range vals {
			if b, ok := v.([]byte); ok {
				out[i] = string(b)
			} else {
				out[i] = v
			}
		}
		visit(out)
	}
	return rows.Err()
}

func pairedValues(ctx context.Context, st *dataset.Store, x, y string) ([]any, []any, error) {
	var xs, ys []any
	err := selectRows(ctx, st,
		[]string{dataset.QuoteIdent(x), dataset.QuoteIdent(y)}, "",
		func(vals []any) {
			xs = append(xs, vals[0])
			ys = append(ys, vals[1])
		})
	return xs, ys, err
}

func tripleValues(ctx context.Context, st *dataset.Store, x, y, c string) ([]any, []any, []any, error) {
	var xs, ys, cs []any
	err := selectRows(ctx, st,
		[]string{dataset.QuoteIdent(x), dataset.QuoteIdent(y), dataset.QuoteIdent(c)}, "",
		func(vals []any) {
			xs = append(xs, vals[0])
			ys = append(ys, vals[1])
			cs = append(cs, vals[2])
		})
	return xs, ys, cs, err
}

func temporalPairs(ctx context.Context, st *dataset.Store, x, y string) ([]any, []any, error) {
	var xs, ys []any
	err := selectRows(ctx, st,
		[]string{
			fmt.Sprintf("try_cast(%s AS TIMESTAMP)", dataset.QuoteIdent(x)),
			dataset.QuoteIdent(y),
		},
		fmt.Sprintf("%s IS NOT NULL", dataset.QuoteIdent(x)),
		func(vals []any) {
			xs = append(xs, vals[0])
			ys = append(ys, vals[1])
		})
	return xs, ys, err
}

// groupedValues splits one column's values by the distinct values of a
// grouping column, preserving first-seen group order.
func groupedValues(ctx context.Context, st *dataset.Store, valueCol, groupCol string, includeNull bool) ([]valueGroup, error) {
	where := ""
	if !includeNull {
		where = fmt.Sprintf("%s IS NOT NULL", dataset.QuoteIdent(groupCol))
	}
	index := map[string]int{}
	var groups []valueGroup
	err := selectRows(ctx, st,
		[]string{
			dataset.QuoteIdent(valueCol),
			fmt.Sprintf("CAST(%s AS VARCHAR)", dataset.QuoteIdent(groupCol)),
		},
		where,
		func(vals []any) {
			label := asLabel(vals[1])
			i, ok := index[label]
			if !ok {
				i = len(groups)
				index[label] = i
				groups = append(groups, valueGroup{label: label})
			}
			groups[i].values = append(groups[i].values, vals[0])
		})
	return groups, err
}

func groupedPairs(ctx context.Context, st *dataset.Store, x, y, groupCol string) ([]pairGroup, error) {
	index := map[string]int{}
	var groups []pairGroup
	err := selectRows(ctx, st,
		[]string{
			dataset.QuoteIdent(x),
			dataset.QuoteIdent(y),
			fmt.Sprintf("CAST(%s AS VARCHAR)", dataset.QuoteIdent(groupCol)),
		}, "",
		func(vals []any) {
			label := asLabel(vals[2])
			i, ok := index[label]
			if !ok {
				i = len(groups)
				index[label] = i
				groups = append(groups, pairGroup{label: label})
			}
			groups[i].xs = append(groups[i].xs, vals[0])
			groups[i].ys = append(groups[i].ys, vals[1])
		})
	return groups, err
}

func groupedTemporalPairs(ctx context.Context, st *dataset.Store, x, y, groupCol string) ([]pairGroup, error) {
	index := map[string]int{}
	var groups []pairGroup
	err := selectRows(ctx, st,
		[]string{
			fmt.Sprintf("try_cast(%s AS TIMESTAMP)", dataset.QuoteIdent(x)),
			dataset.QuoteIdent(y),
			fmt.Sprintf("CAST(%s AS VARCHAR)", dataset.QuoteIdent(groupCol)),
		},
		fmt.Sprintf("%s IS NOT NULL", dataset.QuoteIdent(x)),
		func(vals []any) {
			label := asLabel(vals[2])
			i, ok := index[label]
			if !ok {
				i = len(groups)
				index[label] = i
				groups = append(groups, pairGroup{label: label})
			}
			groups[i].xs = append(groups[i].xs, vals[0])
			groups[i].ys = append(groups[i].ys, vals[1])
		})
	return groups, err
}

// groupedRows fetches several columns at once, split by a grouping column.
// Column order in each group matches the columns argument.
func groupedRows(ctx context.Context, st *dataset.Store, columns []string, groupCol string) ([]rowGroup, error) {
	exprs := make([]string, 0, len(columns)+1)
	for _, c := range columns {
		exprs = append(exprs, dataset.QuoteIdent(c))
	}
	exprs = append(exprs, fmt.Sprintf("CAST(%s AS VARCHAR)", dataset.QuoteIdent(groupCol)))

	index := map[string]int{}
	var groups []rowGroup
	err := selectRows(ctx, st, exprs, "", func(vals []any) {
		label := asLabel(vals[len(columns)])
		i, ok := index[label]
		if !ok {
			i = len(groups)
			index[label] = i
			groups = append(groups, rowGroup{label: label, columns: make([][]any, len(columns))})
		}
		for c := 0; c < len(columns); c++ {
			groups[i].columns[c] = append(groups[i].columns[c], vals[c])
		}
	})
	return groups, err
}

func asLabel(v any) string {
	switch t := v.(type) {
	case nil:
		return "(missing)"
	case string:
		return t
	case sql.NullString:
		if t.Valid {
			return t.String
		}
		return "(missing)"
	default:
		return fmt.Sprint(t)
	}
}
