// Package dataset loads uploaded files into a per-session DuckDB database
// and exposes the resulting table's schema and values.
package dataset

import "strings"

// Semantic is the inferred semantic type of a column.
type Semantic int

const (
	// SemanticUnknown marks columns that match no known type family.
	SemanticUnknown Semantic = iota
	// SemanticNumeric covers integer, floating-point and decimal columns.
	SemanticNumeric
	// SemanticCategorical covers textual, enum and boolean columns.
	SemanticCategorical
	// SemanticTemporal covers date, time and timestamp columns.
	SemanticTemporal
)

// String returns the human-readable name of the semantic type.
func (s Semantic) String() string {
	switch s {
	case SemanticNumeric:
		return "numeric"
	case SemanticCategorical:
		return "categorical"
	case SemanticTemporal:
		return "temporal"
	default:
		return "unknown"
	}
}

// Column describes one column of a loaded table.
type Column struct {
	Name        string
	StorageType string // DuckDB data type, e.g. BIGINT, VARCHAR, TIMESTAMP
	Semantic    Semantic
}

// Table is the metadata view of the loaded dataset. It is rebuilt from
// information_schema whenever the underlying table changes.
type Table struct {
	Name     string
	Columns  []Column
	RowCount int64
}

// Column returns the column with the given name.
func (t *Table) Column(name string) (Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// ColumnNames returns all column names in table order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// semanticOf maps a DuckDB storage type to its semantic type. Unrecognized
// types map to SemanticUnknown; they are excluded from every classification
// set rather than reported as an error.
func semanticOf(storageType string) Semantic {
	t := strings.ToUpper(storageType)

	// Parameterized types carry their arguments, e.g. DECIMAL(18,3).
	if idx := strings.IndexByte(t, '('); idx >= 0 {
		t = t[:idx]
	}

	switch t {
	case "TINYINT", "SMALLINT", "INTEGER", "BIGINT", "HUGEINT",
		"UTINYINT", "USMALLINT", "UINTEGER", "UBIGINT", "UHUGEINT",
		"FLOAT", "REAL", "DOUBLE", "DECIMAL", "NUMERIC":
		return SemanticNumeric
	case "VARCHAR", "TEXT", "STRING", "CHAR", "BPCHAR", "ENUM", "BOOLEAN", "BOOL":
		return SemanticCategorical
	case "DATE", "TIME", "TIMESTAMP", "TIMESTAMPTZ", "DATETIME",
		"TIMESTAMP WITH TIME ZONE", "TIMESTAMP_S", "TIMESTAMP_MS", "TIMESTAMP_NS":
		return SemanticTemporal
	default:
		return SemanticUnknown
	}
}

// QuoteIdent quotes a column or table name for embedding in SQL.
func QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
