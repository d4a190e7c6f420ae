package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewVersionCommand creates the version command. buildDate and gitCommit
// are injected at build time via ldflags.
func NewVersionCommand(version, buildDate, gitCommit string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display DataLens version and build information.`,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "DataLens v%s\n", version)
			_, _ = fmt.Fprintf(out, "Commit: %s\n", gitCommit)
			_, _ = fmt.Fprintf(out, "Built:  %s\n", buildDate)
			_, _ = fmt.Fprintln(out, "Data Exploration Tool built with Go and DuckDB")
		},
	}
}
