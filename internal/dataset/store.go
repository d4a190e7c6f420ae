package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/marcboeker/go-duckdb" // duckdb driver
)

// TableName is the name of the dataset table inside the session database.
const TableName = "dataset"

// Store owns a private in-memory DuckDB database holding one loaded
// dataset. Each UI session (or CLI invocation) gets its own Store; there is
// no shared mutable state between sessions.
type Store struct {
	db      *sql.DB
	table   *Table
	notices []Notice
	source  string
}

// Open creates a new empty store backed by an in-memory DuckDB database.
func Open() (*Store, error) {
	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("failed to open duckdb connection: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping duckdb: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// DB exposes the underlying database for ad-hoc queries (REPL, stats).
func (s *Store) DB() *sql.DB { return s.db }

// Table returns the metadata of the loaded dataset, or nil before a load.
func (s *Store) Table() *Table { return s.table }

// Source returns the display name of the loaded file.
func (s *Store) Source() string { return s.source }

// Notices returns the informational notices from the most recent load.
func (s *Store) Notices() []Notice { return s.notices }

// Query runs a query against the session database.
func (s *Store) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return s.db.QueryContext(ctx, query, args...)
}

// refresh rebuilds the Table metadata from information_schema. Called after
// every load and after the temporal coercion pass.
func (s *Store) refresh(ctx context.Context) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT column_name, data_type
		FROM information_schema.columns
		WHERE table_name = ?
		ORDER BY ordinal_position
	`, TableName)
	if err != nil {
		return fmt.Errorf("failed to query column metadata: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var cols []Column
	for rows.Next() {
		var col Column
		if err := rows.Scan(&col.Name, &col.StorageType); err != nil {
			return fmt.Errorf("failed to scan column metadata: %w", err)
		}
		col.Semantic = semanticOf(col.StorageType)
		cols = append(cols, col)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating column metadata: %w", err)
	}
	if len(cols) == 0 {
		return fmt.Errorf("table %s not found", TableName)
	}

	var rowCount int64
	if err := s.db.QueryRowContext(ctx, "SELECT count(*) FROM "+TableName).Scan(&rowCount); err != nil {
		return fmt.Errorf("failed to count rows: %w", err)
	}

	s.table = &Table{Name: TableName, Columns: cols, RowCount: rowCount}
	return nil
}

// Values returns all values of one column in row order. []byte values are
// converted to strings for readability.
func (s *Store) Values(ctx context.Context, column string) ([]any, error) {
	query := fmt.Sprintf("SELECT %s FROM %s", QuoteIdent(column), TableName)
	return s.scanSingle(ctx, query)
}

// TemporalValues returns one column coerced to timestamps. Values that do
// not convert become nil rather than failing the whole request.
func (s *Store) TemporalValues(ctx context.Context, column string) ([]any, error) {
	query := fmt.Sprintf("SELECT try_cast(%s AS TIMESTAMP) FROM %s", QuoteIdent(column), TableName)
	return s.scanSingle(ctx, query)
}

func (s *Store) scanSingle(ctx context.Context, query string) ([]any, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var values []any
	for rows.Next() {
		var v any
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, normalizeValue(v))
	}
	return values, rows.Err()
}

// normalizeValue converts driver-specific values into plain Go values that
// render and marshal predictably.
func normalizeValue(v any) any {
	switch val := v.(type) {
	case []byte:
		return string(val)
	case time.Time:
		return val
	default:
		return v
	}
}
