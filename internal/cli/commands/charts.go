package commands

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/datalens-labs/datalens/internal/chart"
	"github.com/datalens-labs/datalens/internal/cli/output"
	"github.com/datalens-labs/datalens/internal/schema"
)

// NewChartsCommand creates the charts command.
func NewChartsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "charts <file>",
		Short: "List the chart types available for a dataset",
		Long: `Load a CSV or Excel file and list which chart types its column mix
supports. A scatter plot needs two numeric columns, a time series needs a
date column, and so on.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCharts(cmd, args[0])
		},
	}
}

type chartInfo struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

func runCharts(cmd *cobra.Command, path string) error {
	ctx := NewCommandContext(cmd)
	r := ctx.Renderer

	st, err := loadStore(cmd, path)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	kinds := chart.AvailableKinds(schema.Classify(st.Table()))

	if r.Mode() == output.ModeJSON {
		infos := make([]chartInfo, len(kinds))
		for i, k := range kinds {
			infos[i] = chartInfo{ID: k.String(), Label: k.Label()}
		}
		enc := json.NewEncoder(r.Out())
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	}

	rows := make([][]string, len(kinds))
	for i, k := range kinds {
		rows[i] = []string{k.String(), k.Label()}
	}
	return r.Table([]string{"ID", "Chart"}, rows)
}
