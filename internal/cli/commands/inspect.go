package commands

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/datalens-labs/datalens/internal/cli/output"
	"github.com/datalens-labs/datalens/internal/schema"
	"github.com/datalens-labs/datalens/internal/stats"
)

// NewInspectCommand creates the inspect command.
func NewInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file>",
		Short: "Summarize a dataset",
		Long: `Load a CSV or Excel file and print its shape, per-column statistics,
missing value counts, and categorical summaries.`,
		Example: `  # Summarize a CSV file
  datalens inspect sales.csv

  # Machine-readable output
  datalens inspect sales.csv -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args[0])
		},
	}
}

// inspectReport is the JSON shape of the inspect output.
type inspectReport struct {
	File        string               `json:"file"`
	Rows        int64                `json:"rows"`
	Columns     int                  `json:"columns"`
	Describe    []describeJSON       `json:"describe"`
	Missing     []stats.MissingCount `json:"missing"`
	Categorical []stats.CategoryStat `json:"categorical"`
}

// describeJSON mirrors stats.Description with undefined aggregates (NaN,
// which encoding/json rejects) rendered as null.
type describeJSON struct {
	Column string   `json:"column"`
	Count  int64    `json:"count"`
	Mean   *float64 `json:"mean"`
	Std    *float64 `json:"std"`
	Min    *float64 `json:"min"`
	Q25    *float64 `json:"q25"`
	Median *float64 `json:"median"`
	Q75    *float64 `json:"q75"`
	Max    *float64 `json:"max"`
}

func describeForJSON(descs []stats.Description) []describeJSON {
	out := make([]describeJSON, len(descs))
	for i, d := range descs {
		out[i] = describeJSON{
			Column: d.Column,
			Count:  d.Count,
			Mean:   jsonFloat(d.Mean),
			Std:    jsonFloat(d.Std),
			Min:    jsonFloat(d.Min),
			Q25:    jsonFloat(d.Q25),
			Median: jsonFloat(d.Median),
			Q75:    jsonFloat(d.Q75),
			Max:    jsonFloat(d.Max),
		}
	}
	return out
}

func jsonFloat(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}

func runInspect(cmd *cobra.Command, path string) error {
	ctx := NewCommandContext(cmd)
	r := ctx.Renderer

	st, err := loadStore(cmd, path)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	c := schema.Classify(st.Table())
	cmdCtx := cmd.Context()

	descs, err := stats.Describe(cmdCtx, st.DB(), c.Numeric)
	if err != nil {
		return err
	}
	missing, err := stats.MissingCounts(cmdCtx, st.DB(), c.All)
	if err != nil {
		return err
	}
	cats, err := stats.CategoricalSummary(cmdCtx, st.DB(), c.Categorical)
	if err != nil {
		return err
	}

	table := st.Table()
	if r.Mode() == output.ModeJSON {
		report := inspectReport{
			File:        st.Source(),
			Rows:        table.RowCount,
			Columns:     len(table.Columns),
			Describe:    describeForJSON(descs),
			Missing:     missing,
			Categorical: cats,
		}
		enc := json.NewEncoder(r.Out())
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	r.Header(st.Source())
	r.KeyValue("Rows", strconv.FormatInt(table.RowCount, 10))
	r.KeyValue("Columns", strconv.Itoa(len(table.Columns)))
	r.Println()

	if len(descs) > 0 {
		r.Header("Numeric columns")
		rows := make([][]string, len(descs))
		for i, d := range descs {
			rows[i] = []string{
				d.Column,
				strconv.FormatInt(d.Count, 10),
				floatCell(d.Mean), floatCell(d.Std),
				floatCell(d.Min), floatCell(d.Q25), floatCell(d.Median), floatCell(d.Q75), floatCell(d.Max),
			}
		}
		if err := r.Table([]string{"Column", "Count", "Mean", "Std", "Min", "25%", "50%", "75%", "Max"}, rows); err != nil {
			return err
		}
		r.Println()
	}

	if len(missing) > 0 {
		r.Header("Missing values")
		rows := make([][]string, len(missing))
		for i, m := range missing {
			rows[i] = []string{m.Column, strconv.FormatInt(m.Count, 10)}
		}
		if err := r.Table([]string{"Column", "Missing"}, rows); err != nil {
			return err
		}
		r.Println()
	}

	if len(cats) > 0 {
		r.Header("Categorical columns")
		rows := make([][]string, len(cats))
		for i, cs := range cats {
			rows[i] = []string{cs.Column, strconv.FormatInt(cs.Unique, 10), cs.MostFrequent}
		}
		if err := r.Table([]string{"Column", "Unique", "Most Frequent"}, rows); err != nil {
			return err
		}
	}

	return nil
}

func floatCell(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return fmt.Sprintf("%.4g", v)
}
