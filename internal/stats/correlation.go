package stats

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"strings"

	"github.com/datalens-labs/datalens/internal/dataset"
)

// Matrix is a symmetric pairwise correlation matrix over the named
// columns. Undefined correlations (constant or empty columns) are NaN.
type Matrix struct {
	Columns []string
	Values  [][]float64
}

// CorrelationMatrix computes pairwise Pearson correlation over the numeric
// columns in a single query. The caller is responsible for rejecting an
// empty column set.
func CorrelationMatrix(ctx context.Context, q Querier, numeric []string) (*Matrix, error) {
	if len(numeric) == 0 {
		return nil, fmt.Errorf("no numeric columns")
	}

	// One corr() expression per unordered pair; the matrix is filled
	// symmetrically from the single result row.
	var exprs []string
	for i := range numeric {
		for j := i; j < len(numeric); j++ {
			a := fmt.Sprintf("CAST(%s AS DOUBLE)", dataset.QuoteIdent(numeric[i]))
			b := fmt.Sprintf("CAST(%s AS DOUBLE)", dataset.QuoteIdent(numeric[j]))
			exprs = append(exprs, fmt.Sprintf("corr(%s, %s)", a, b))
		}
	}
	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(exprs, ", "), dataset.TableName)

	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to compute correlations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	cells := make([]sql.NullFloat64, len(exprs))
	ptrs := make([]any, len(exprs))
	for i := range cells {
		ptrs[i] = &cells[i]
	}
	if rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan correlations: %w", err)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	m := &Matrix{
		Columns: append([]string(nil), numeric...),
		Values:  make([][]float64, len(numeric)),
	}
	for i := range m.Values {
		m.Values[i] = make([]float64, len(numeric))
		for j := range m.Values[i] {
			m.Values[i][j] = math.NaN()
		}
	}

	k := 0
	for i := range numeric {
		for j := i; j < len(numeric); j++ {
			v := math.NaN()
			if cells[k].Valid {
				v = cells[k].Float64
			}
			m.Values[i][j] = v
			m.Values[j][i] = v
			k++
		}
	}
	return m, nil
}
