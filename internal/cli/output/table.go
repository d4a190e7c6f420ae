package output

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Table renders columns and rows in the renderer's mode. JSON mode emits an
// array of objects keyed by column name.
func (r *Renderer) Table(columns []string, rows [][]string) error {
	switch r.mode {
	case ModeJSON:
		return r.tableJSON(columns, rows)
	case ModeCSV:
		return r.tableCSV(columns, rows)
	case ModeMarkdown:
		return r.tableMarkdown(columns, rows)
	default:
		return r.tableText(columns, rows)
	}
}

func (r *Renderer) tableText(columns []string, rows [][]string) error {
	if len(rows) == 0 {
		r.Println("(0 rows)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)

	headerRow := make(table.Row, len(columns))
	for i, col := range columns {
		headerRow[i] = col
	}
	t.AppendHeader(headerRow)

	for _, row := range rows {
		tr := make(table.Row, len(row))
		for i, cell := range row {
			tr[i] = cell
		}
		t.AppendRow(tr)
	}

	t.Render()
	return nil
}

func (r *Renderer) tableJSON(columns []string, rows [][]string) error {
	objects := make([]map[string]string, 0, len(rows))
	for _, row := range rows {
		obj := make(map[string]string, len(columns))
		for i, col := range columns {
			if i < len(row) {
				obj[col] = row[i]
			}
		}
		objects = append(objects, obj)
	}
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(objects)
}

func (r *Renderer) tableCSV(columns []string, rows [][]string) error {
	header := make([]string, len(columns))
	for i, col := range columns {
		header[i] = escapeCSV(col)
	}
	r.Println(strings.Join(header, ","))
	for _, row := range rows {
		escaped := make([]string, len(row))
		for i, cell := range row {
			escaped[i] = escapeCSV(cell)
		}
		r.Println(strings.Join(escaped, ","))
	}
	return nil
}

func (r *Renderer) tableMarkdown(columns []string, rows [][]string) error {
	if len(rows) == 0 {
		r.Println("(0 rows)")
		return nil
	}

	r.Printf("| %s |\n", strings.Join(columns, " | "))
	seps := make([]string, len(columns))
	for i := range seps {
		seps[i] = "---"
	}
	r.Printf("| %s |\n", strings.Join(seps, " | "))

	for _, row := range rows {
		r.Printf("| %s |\n", strings.Join(row, " | "))
	}
	return nil
}

func escapeCSV(s string) string {
	if strings.ContainsAny(s, ",\"\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}

// FormatValue stringifies a scanned SQL value for display.
func FormatValue(v any) string {
	if v == nil {
		return "NULL"
	}
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return fmt.Sprintf("%v", v)
}
