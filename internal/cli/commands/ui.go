package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/datalens-labs/datalens/internal/ui"
)

// UIOptions holds options for the ui command.
type UIOptions struct {
	Port      int
	NoBrowser bool
	Watch     bool
}

// NewUICommand creates the ui command.
func NewUICommand() *cobra.Command {
	opts := &UIOptions{}

	cmd := &cobra.Command{
		Use:   "ui [file]",
		Short: "Start the DataLens web UI",
		Long: `Start a local web server providing the interactive exploration UI.

The UI provides:
- File upload for CSV and Excel datasets
- Dataset overview with type classification
- Summary statistics and correlation analysis
- Interactive charts driven by column types`,
		Example: `  # Start UI on default port
  datalens ui

  # Open the UI directly on a dataset
  datalens ui sales.csv

  # Start on custom port with a data directory
  datalens ui --port 3000 --data-dir ./data

  # Start without auto-opening browser
  datalens ui --no-browser`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file := ""
			if len(args) > 0 {
				file = args[0]
			}
			return runUI(cmd, opts, file)
		},
	}

	cmd.Flags().IntVar(&opts.Port, "port", 0, "Port to serve on (default: 8765)")
	cmd.Flags().BoolVar(&opts.NoBrowser, "no-browser", false, "Don't auto-open browser")
	cmd.Flags().BoolVar(&opts.Watch, "watch", true, "Watch the data directory for changes")

	return cmd
}

func runUI(cmd *cobra.Command, opts *UIOptions, file string) error {
	ctx := NewCommandContext(cmd)
	cfg := ctx.Cfg

	if file != "" {
		if _, err := os.Stat(file); err != nil {
			return fmt.Errorf("cannot open dataset %s: %w", file, err)
		}
	}

	// CLI flags override config file
	port := cfg.Port
	if opts.Port != 0 {
		port = opts.Port
	}

	autoOpen := cfg.AutoOpen
	if opts.NoBrowser {
		autoOpen = false
	}

	watch := cfg.Watch
	if cmd.Flags().Changed("watch") {
		watch = opts.Watch
	}

	if cfg.DataDir != "" {
		if _, err := os.Stat(cfg.DataDir); os.IsNotExist(err) {
			return fmt.Errorf("data directory does not exist: %s", cfg.DataDir)
		}
	}

	server := ui.NewServer(ui.Config{
		Port:          port,
		DataDir:       cfg.DataDir,
		InitialFile:   file,
		Watch:         watch,
		AutoOpen:      autoOpen,
		SessionSecret: sessionSecret(cfg.SessionSecret),
		PreviewRows:   cfg.PreviewRows,
		Logger:        ctx.Logger,
	})

	fmt.Printf("Starting UI server on http://localhost:%d\n", port)
	fmt.Println("Press Ctrl+C to stop")

	return server.Serve(cmd.Context())
}

// sessionSecret falls back to a development secret when none is
// configured. Production deployments should set one via config or the
// DATALENS_SESSION_SECRET environment variable.
func sessionSecret(configured string) string {
	if configured != "" {
		return configured
	}
	if secret := os.Getenv("DATALENS_SESSION_SECRET"); secret != "" {
		return secret
	}
	return "datalens-dev-secret-change-in-production" //nolint:gosec
}
