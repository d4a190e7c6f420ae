package commands

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/datalens-labs/datalens/internal/dataset"
	"github.com/datalens-labs/datalens/internal/stats"
)

func renderResults(w io.Writer, rows *sql.Rows, format string) error {
	cols, err := rows.Columns()
	if err != nil {
		return err
	}

	var results []map[string]any
	for rows.Next() {
		values := make([]any, len(cols))
		valuePtrs := make([]any, len(cols))
		for i := range values {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			return err
		}

		row := make(map[string]any)
		for i, col := range cols {
			val := values[i]
			if b, ok := val.([]byte); ok {
				val = string(b)
			}
			row[col] = val
		}
		results = append(results, row)
	}

	if err := rows.Err(); err != nil {
		return err
	}

	switch format {
	case "json":
		return renderJSON(w, results)
	case "csv":
		return renderCSV(w, cols, results)
	case "md", "markdown":
		return renderMarkdown(w, cols, results)
	default:
		return renderTable(w, cols, results)
	}
}

func renderTable(w io.Writer, cols []string, results []map[string]any) error {
	if len(results) == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	headerRow := make(table.Row, len(cols))
	for i, col := range cols {
		headerRow[i] = col
	}
	t.AppendHeader(headerRow)

	for _, result := range results {
		row := make(table.Row, len(cols))
		for i, col := range cols {
			row[i] = stats.FormatValue(result[col])
		}
		t.AppendRow(row)
	}

	t.Render()
	_, _ = fmt.Fprintf(w, "(%d rows)\n", len(results))
	return nil
}

func renderJSON(w io.Writer, results []map[string]any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

func renderCSV(w io.Writer, cols []string, results []map[string]any) error {
	header := make([]string, len(cols))
	for i, col := range cols {
		header[i] = escapeCSVCell(col)
	}
	_, _ = fmt.Fprintln(w, strings.Join(header, ","))

	for _, result := range results {
		values := make([]string, len(cols))
		for i, col := range cols {
			values[i] = escapeCSVCell(stats.FormatValue(result[col]))
		}
		_, _ = fmt.Fprintln(w, strings.Join(values, ","))
	}
	return nil
}

func renderMarkdown(w io.Writer, cols []string, results []map[string]any) error {
	if len(results) == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return nil
	}

	_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(cols, " | "))
	seps := make([]string, len(cols))
	for i := range seps {
		seps[i] = "---"
	}
	_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(seps, " | "))

	for _, result := range results {
		values := make([]string, len(cols))
		for i, col := range cols {
			values[i] = stats.FormatValue(result[col])
		}
		_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(values, " | "))
	}
	return nil
}

func escapeCSVCell(s string) string {
	if strings.ContainsAny(s, ",\"\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}

// showDatasetSchema prints the loaded table's columns with their inferred
// storage and semantic types.
func showDatasetSchema(w io.Writer, t *dataset.Table) {
	_, _ = fmt.Fprintf(w, "Table: %s\n", t.Name)
	_, _ = fmt.Fprintln(w, strings.Repeat("-", 60))

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"Column", "Storage Type", "Semantic Type"})

	for _, col := range t.Columns {
		tw.AppendRow(table.Row{col.Name, col.StorageType, col.Semantic.String()})
	}
	tw.Render()
}
