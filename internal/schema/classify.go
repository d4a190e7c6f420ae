// Package schema partitions a loaded table's columns by semantic type.
package schema

import "github.com/datalens-labs/datalens/internal/dataset"

// Classification is the derived view of a table used to decide which chart
// kinds apply and which columns each selector may offer. It is a pure
// function of the table; recompute it whenever the table changes.
type Classification struct {
	Numeric     []string
	Categorical []string
	Temporal    []string
	All         []string
}

// Classify partitions every column into exactly one of numeric,
// categorical or temporal. Columns of unknown type are excluded from every
// set; classification never fails.
func Classify(t *dataset.Table) Classification {
	var c Classification
	if t == nil {
		return c
	}

	c.All = t.ColumnNames()
	for _, col := range t.Columns {
		switch col.Semantic {
		case dataset.SemanticNumeric:
			c.Numeric = append(c.Numeric, col.Name)
		case dataset.SemanticCategorical:
			c.Categorical = append(c.Categorical, col.Name)
		case dataset.SemanticTemporal:
			c.Temporal = append(c.Temporal, col.Name)
		}
	}
	return c
}

// HasColumn reports whether name is a column of the classified table.
func (c Classification) HasColumn(name string) bool {
	return contains(c.All, name)
}

// IsNumeric reports whether name is a numeric column.
func (c Classification) IsNumeric(name string) bool {
	return contains(c.Numeric, name)
}

// IsCategorical reports whether name is a categorical column.
func (c Classification) IsCategorical(name string) bool {
	return contains(c.Categorical, name)
}

// IsTemporal reports whether name is a temporal column.
func (c Classification) IsTemporal(name string) bool {
	return contains(c.Temporal, name)
}

func contains(list []string, name string) bool {
	for _, s := range list {
		if s == name {
			return true
		}
	}
	return false
}
