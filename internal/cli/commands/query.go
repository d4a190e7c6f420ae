package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// QueryOptions holds options for the query command.
type QueryOptions struct {
	Format string
	Input  string
}

// NewQueryCommand creates the query command.
func NewQueryCommand() *cobra.Command {
	opts := &QueryOptions{}

	cmd := &cobra.Command{
		Use:   "query <file> [SQL]",
		Short: "Run SQL against a dataset",
		Long: `Load a CSV or Excel file into an in-memory database and query it with
SQL. The data is available as the table "dataset".

When invoked without SQL, enters interactive REPL mode.`,
		Example: `  # Execute SQL directly
  datalens query sales.csv "SELECT region, sum(amount) FROM dataset GROUP BY 1"

  # Read SQL from a file
  datalens query sales.csv --input report.sql

  # Output as JSON
  datalens query sales.csv "SELECT * FROM dataset LIMIT 10" --format json

  # Interactive mode
  datalens query sales.csv`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "table", "Output format: table, json, csv, md")
	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "Read SQL from file")

	return cmd
}

func runQuery(cmd *cobra.Command, args []string, opts *QueryOptions) error {
	path := args[0]

	st, err := loadStore(cmd, path)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	// Determine SQL source
	var sqlQuery string
	switch {
	case len(args) > 1:
		sqlQuery = strings.Join(args[1:], " ")
	case opts.Input != "":
		content, err := os.ReadFile(opts.Input)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}
		sqlQuery = string(content)
	case !isTerminal(os.Stdin):
		// Read from stdin (piped input)
		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		sqlQuery = string(content)
	default:
		// No input, TTY detected - enter REPL mode
		return runQueryREPL(cmd, st, opts)
	}

	sqlQuery = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(sqlQuery), ";"))
	if sqlQuery == "" {
		return fmt.Errorf("empty query")
	}

	rows, err := st.Query(cmd.Context(), sqlQuery)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	return renderResults(cmd.OutOrStdout(), rows, opts.Format)
}
