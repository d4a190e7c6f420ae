package commands

import (
	"encoding/json"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/datalens-labs/datalens/internal/cli/output"
	"github.com/datalens-labs/datalens/internal/dataset"
)

// NewSchemaCommand creates the schema command.
func NewSchemaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schema <file>",
		Short: "Show the inferred column types of a dataset",
		Long: `Load a CSV or Excel file and print each column's storage type and its
semantic classification (numeric, categorical, or datetime).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSchema(cmd, args[0])
		},
	}
}

type schemaColumn struct {
	Name        string `json:"name"`
	StorageType string `json:"storage_type"`
	Semantic    string `json:"semantic"`
}

func runSchema(cmd *cobra.Command, path string) error {
	ctx := NewCommandContext(cmd)
	r := ctx.Renderer

	st, err := loadStore(cmd, path)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	table := st.Table()

	if r.Mode() == output.ModeJSON {
		cols := make([]schemaColumn, len(table.Columns))
		for i, col := range table.Columns {
			cols[i] = schemaColumn{Name: col.Name, StorageType: col.StorageType, Semantic: col.Semantic.String()}
		}
		enc := json.NewEncoder(r.Out())
		enc.SetIndent("", "  ")
		return enc.Encode(cols)
	}

	styled := r.Mode() == output.ModeText
	rows := make([][]string, len(table.Columns))
	for i, col := range table.Columns {
		semantic := col.Semantic.String()
		if styled {
			semantic = semanticStyle(r.Styles(), col.Semantic).Render(semantic)
		}
		rows[i] = []string{col.Name, col.StorageType, semantic}
	}
	return r.Table([]string{"Column", "Storage Type", "Semantic Type"}, rows)
}

func semanticStyle(styles *output.Styles, s dataset.Semantic) lipgloss.Style {
	switch s {
	case dataset.SemanticNumeric:
		return styles.Numeric
	case dataset.SemanticCategorical:
		return styles.Categorical
	case dataset.SemanticTemporal:
		return styles.Temporal
	default:
		return styles.Unknown
	}
}
