// Package commands implements the DataLens subcommands.
package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/datalens-labs/datalens/internal/cli/output"
	"github.com/datalens-labs/datalens/internal/config"
	"github.com/datalens-labs/datalens/internal/dataset"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext assembles the config, logger, and renderer for one
// command invocation.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := config.Current()
	return &CommandContext{
		Cfg:      cfg,
		Logger:   config.GetLogger(cmd.Context()),
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.Output)),
	}
}

// loadStore opens a fresh in-memory store and loads path into it. Load
// notices go to stderr so they never corrupt machine-readable output.
func loadStore(cmd *cobra.Command, path string) (*dataset.Store, error) {
	st, err := dataset.Open()
	if err != nil {
		return nil, err
	}

	notices, err := st.LoadFile(cmd.Context(), path)
	if err != nil {
		_ = st.Close()
		return nil, err
	}
	for _, n := range notices {
		fmt.Fprintln(cmd.ErrOrStderr(), n.Message)
	}
	return st, nil
}

func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}
