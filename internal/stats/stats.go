// Package stats computes summary statistics for a loaded dataset with SQL
// against the session's DuckDB database.
package stats

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/datalens-labs/datalens/internal/dataset"
)

// Querier is the query seam used by every statistic. *sql.DB satisfies it;
// tests substitute sqlmock.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Description holds the describe() row for one numeric column. Aggregates
// over an all-NULL column come back as NaN.
type Description struct {
	Column string
	Count  int64
	Mean   float64
	Std    float64
	Min    float64
	Q25    float64
	Median float64
	Q75    float64
	Max    float64
}

// MissingCount is the number of NULL cells in one column.
type MissingCount struct {
	Column string
	Count  int64
}

// CategoryStat summarizes one categorical column.
type CategoryStat struct {
	Column       string
	Unique       int64
	MostFrequent string
}

// ValueCount is one row of a category frequency table.
type ValueCount struct {
	Value string
	Count int64
}

// Head holds the first rows of the dataset formatted for display.
type Head struct {
	Columns []string
	Rows    [][]string
}

// Describe computes count/mean/std/min/quartiles/max for each numeric
// column, in classification order.
func Describe(ctx context.Context, q Querier, numeric []string) ([]Description, error) {
	descs := make([]Description, 0, len(numeric))
	for _, col := range numeric {
		x := fmt.Sprintf("CAST(%s AS DOUBLE)", dataset.QuoteIdent(col))
		query := fmt.Sprintf(
			"SELECT count(%[1]s), avg(%[1]s), stddev_samp(%[1]s), min(%[1]s), "+
				"quantile_cont(%[1]s, 0.25), quantile_cont(%[1]s, 0.5), quantile_cont(%[1]s, 0.75), max(%[1]s) FROM %[2]s",
			x, dataset.TableName,
		)

		rows, err := q.QueryContext(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("failed to describe column %s: %w", col, err)
		}

		d := Description{Column: col}
		var mean, std, minV, q25, med, q75, maxV sql.NullFloat64
		if rows.Next() {
			if err := rows.Scan(&d.Count, &mean, &std, &minV, &q25, &med, &q75, &maxV); err != nil {
				_ = rows.Close()
				return nil, fmt.Errorf("failed to scan describe row for %s: %w", col, err)
			}
		}
		if err := rows.Close(); err != nil {
			return nil, err
		}
		if err := rows.Err(); err != nil {
			return nil, err
		}

		d.Mean = floatOrNaN(mean)
		d.Std = floatOrNaN(std)
		d.Min = floatOrNaN(minV)
		d.Q25 = floatOrNaN(q25)
		d.Median = floatOrNaN(med)
		d.Q75 = floatOrNaN(q75)
		d.Max = floatOrNaN(maxV)
		descs = append(descs, d)
	}
	return descs, nil
}

// MissingCounts returns per-column NULL counts, largest first, omitting
// columns with no missing values.
func MissingCounts(ctx context.Context, q Querier, columns []string) ([]MissingCount, error) {
	var counts []MissingCount
	for _, col := range columns {
		query := fmt.Sprintf(
			"SELECT count(*) - count(%s) FROM %s",
			dataset.QuoteIdent(col), dataset.TableName,
		)
		n, err := scanInt64(ctx, q, query)
		if err != nil {
			return nil, fmt.Errorf("failed to count missing values in %s: %w", col, err)
		}
		if n > 0 {
			counts = append(counts, MissingCount{Column: col, Count: n})
		}
	}

	sort.SliceStable(counts, func(i, j int) bool { return counts[i].Count > counts[j].Count })
	return counts, nil
}

// CategoricalSummary returns unique counts and modes for the categorical
// columns. An all-NULL column reports "N/A" as its most frequent value.
func CategoricalSummary(ctx context.Context, q Querier, categorical []string) ([]CategoryStat, error) {
	out := make([]CategoryStat, 0, len(categorical))
	for _, col := range categorical {
		ident := dataset.QuoteIdent(col)
		query := fmt.Sprintf(
			"SELECT (SELECT count(DISTINCT %[1]s) FROM %[2]s), "+
				"(SELECT CAST(%[1]s AS VARCHAR) FROM %[2]s WHERE %[1]s IS NOT NULL "+
				"GROUP BY %[1]s ORDER BY count(*) DESC, 1 LIMIT 1)",
			ident, dataset.TableName,
		)

		rows, err := q.QueryContext(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("failed to summarize column %s: %w", col, err)
		}

		stat := CategoryStat{Column: col, MostFrequent: "N/A"}
		var mode sql.NullString
		if rows.Next() {
			if err := rows.Scan(&stat.Unique, &mode); err != nil {
				_ = rows.Close()
				return nil, fmt.Errorf("failed to scan summary for %s: %w", col, err)
			}
		}
		if err := rows.Close(); err != nil {
			return nil, err
		}
		if err := rows.Err(); err != nil {
			return nil, err
		}

		if mode.Valid {
			stat.MostFrequent = mode.String
		}
		out = append(out, stat)
	}
	return out, nil
}

// ValueCounts returns the frequency table of one column, most frequent
// first.
func ValueCounts(ctx context.Context, q Querier, column string) ([]ValueCount, error) {
	ident := dataset.QuoteIdent(column)
	query := fmt.Sprintf(
		"SELECT CAST(%[1]s AS VARCHAR), count(*) FROM %[2]s WHERE %[1]s IS NOT NULL "+
			"GROUP BY %[1]s ORDER BY count(*) DESC, 1",
		ident, dataset.TableName,
	)

	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count values of %s: %w", column, err)
	}
	defer func() { _ = rows.Close() }()

	var counts []ValueCount
	for rows.Next() {
		var vc ValueCount
		if err := rows.Scan(&vc.Value, &vc.Count); err != nil {
			return nil, err
		}
		counts = append(counts, vc)
	}
	return counts, rows.Err()
}

// HeadRows returns the first n rows of the dataset formatted as strings.
func HeadRows(ctx context.Context, q Querier, n int) (*Head, error) {
	rows, err := q.QueryContext(ctx, fmt.Sprintf("SELECT * FROM %s LIMIT %d", dataset.TableName, n))
	if err != nil {
		return nil, fmt.Errorf("failed to read head rows: %w", err)
	}
	defer func() { _ = rows.Close() }()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	head := &Head{Columns: cols}
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		row := make([]string, len(cols))
		for i, v := range values {
			row[i] = FormatValue(v)
		}
		head.Rows = append(head.Rows, row)
	}
	return head, rows.Err()
}

// FormatValue renders one cell for tabular display.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(val)
	case time.Time:
		return val.Format("2006-01-02 15:04:05")
	default:
		return fmt.Sprintf("%v", val)
	}
}

func floatOrNaN(v sql.NullFloat64) float64 {
	if v.Valid {
		return v.Float64
	}
	return math.NaN()
}

func scanInt64(ctx context.Context, q Querier, query string) (int64, error) {
	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return 0, err
	}
	defer func() { _ = rows.Close() }()

	var n int64
	if rows.Next() {
		if err := rows.Scan(&n); err != nil {
			return 0, err
		}
	}
	return n, rows.Err()
}
