package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// LoadFile loads a CSV or XLSX file into the session database, replacing
// any previously loaded dataset. The returned notices report skipped rows
// and re-typed columns; a nil error means the dataset is ready.
func (s *Store) LoadFile(ctx context.Context, path string) ([]Notice, error) {
	s.table = nil
	s.notices = nil
	s.source = filepath.Base(path)

	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		err = s.loadCSV(ctx, path)
	case ".xlsx":
		err = s.loadExcel(ctx, path)
	default:
		err = fmt.Errorf("unsupported file type %q (expected .csv or .xlsx)", filepath.Ext(path))
	}
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	if err := s.refresh(ctx); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	coerceNotices, err := s.coerceTemporals(ctx)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	s.notices = append(s.notices, coerceNotices...)

	return s.notices, nil
}

// LoadReader copies a byte stream with a declared extension (csv or xlsx)
// to a temporary file and loads it. Used by the upload handler.
func (s *Store) LoadReader(ctx context.Context, r io.Reader, name string) ([]Notice, error) {
	ext := strings.ToLower(filepath.Ext(name))
	if ext != ".csv" && ext != ".xlsx" {
		return nil, &ParseError{Path: name, Err: fmt.Errorf("unsupported file type %q (expected .csv or .xlsx)", ext)}
	}

	tmp, err := os.CreateTemp("", "datalens-*"+ext)
	if err != nil {
		return nil, &ParseError{Path: name, Err: err}
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := io.Copy(tmp, r); err != nil {
		_ = tmp.Close()
		return nil, &ParseError{Path: name, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return nil, &ParseError{Path: name, Err: err}
	}

	notices, err := s.LoadFile(ctx, tmp.Name())
	s.source = filepath.Base(name)
	return notices, err
}

// loadCSV loads a CSV file with DuckDB's schema auto-detection. Malformed
// rows are skipped, not fatal; the skip count is reported as a notice so
// data-quality problems stay visible.
func (s *Store) loadCSV(ctx context.Context, path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	query := fmt.Sprintf(
		"CREATE OR REPLACE TABLE %s AS SELECT * FROM read_csv_auto('%s', header=true, ignore_errors=true, store_rejects=true)",
		TableName,
		strings.ReplaceAll(absPath, "'", "''"),
	)
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to load CSV: %w", err)
	}

	var rejected int64
	if err := s.db.QueryRowContext(ctx, "SELECT count(*) FROM reject_errors").Scan(&rejected); err == nil && rejected > 0 {
		s.notices = append(s.notices, Notice{
			Message: fmt.Sprintf("Skipped %d malformed row(s) while reading %s.", rejected, s.source),
		})
	}

	return nil
}

// loadExcel reads the first sheet of an XLSX workbook and feeds it through
// the CSV loader so DuckDB performs the same type inference for both
// formats.
func (s *Store) loadExcel(ctx context.Context, path string) error {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return fmt.Errorf("failed to open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	if len(rows) < 2 {
		return fmt.Errorf("sheet %s has no data rows", sheets[0])
	}

	tmp, err := os.CreateTemp("", "datalens-sheet-*.csv")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	w := csv.NewWriter(tmp)
	width := len(rows[0])
	for _, row := range rows {
		// excelize trims trailing empty cells; pad to the header width.
		if len(row) < width {
			padded := make([]string, width)
			copy(padded, row)
			row = padded
		}
		if err := w.Write(row[:width]); err != nil {
			_ = tmp.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return s.loadCSV(ctx, tmp.Name())
}
