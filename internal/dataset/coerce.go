package dataset

import (
	"context"
	"fmt"
)

// temporalRatio is the share of non-empty values that must parse as
// timestamps before a text column is re-typed as temporal.
const temporalRatio = 0.5

// coerceTemporals is the one-time best-effort pass that re-types text
// columns holding mostly dates. Each value converts independently with
// try_cast, so unparseable cells become NULL instead of aborting; a column
// converts only when at least half of its non-empty values parse.
func (s *Store) coerceTemporals(ctx context.Context) ([]Notice, error) {
	if s.table == nil {
		return nil, nil
	}

	var notices []Notice
	changed := false
	for _, col := range s.table.Columns {
		if col.Semantic != SemanticCategorical || col.StorageType != "VARCHAR" {
			continue
		}

		ident := QuoteIdent(col.Name)
		query := fmt.Sprintf(
			"SELECT count(try_cast(nullif(trim(%s), '') AS TIMESTAMP)), count(nullif(trim(%s), '')) FROM %s",
			ident, ident, TableName,
		)

		var parsed, nonEmpty int64
		if err := s.db.QueryRowContext(ctx, query).Scan(&parsed, &nonEmpty); err != nil {
			return nil, fmt.Errorf("failed to probe column %s: %w", col.Name, err)
		}
		if nonEmpty == 0 || float64(parsed) < temporalRatio*float64(nonEmpty) {
			continue
		}

		alter := fmt.Sprintf(
			"ALTER TABLE %s ALTER COLUMN %s SET DATA TYPE TIMESTAMP USING try_cast(%s AS TIMESTAMP)",
			TableName, ident, ident,
		)
		if _, err := s.db.ExecContext(ctx, alter); err != nil {
			return nil, fmt.Errorf("failed to convert column %s: %w", col.Name, err)
		}

		notices = append(notices, Notice{
			Message: fmt.Sprintf("Converted column '%s' to a datetime type.", col.Name),
		})
		changed = true
	}

	if changed {
		if err := s.refresh(ctx); err != nil {
			return nil, err
		}
	}
	return notices, nil
}
