package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/datalens-labs/datalens/internal/dataset"
)

func runQueryREPL(cmd *cobra.Command, st *dataset.Store, opts *QueryOptions) error {
	ctx := cmd.Context()

	historyFile := filepath.Join(os.TempDir(), "datalens_query_history")

	completer := newColumnCompleter(st.Table())

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "datalens> ",
		HistoryFile:     historyFile,
		AutoComplete:    completer,
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "DataLens Query REPL (%s loaded as table %q)\n", st.Source(), dataset.TableName)
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Type .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(cmd.OutOrStdout())

	var multiLineBuffer strings.Builder
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			multiLineBuffer.Reset()
			rl.SetPrompt("datalens> ")
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		// Handle dot-commands
		if strings.HasPrefix(line, ".") {
			if handled := handleDotCommand(ctx, cmd, st, line, opts.Format); handled {
				if line == ".quit" || line == ".exit" {
					break
				}
				continue
			}
		}

		// Accumulate multi-line SQL until semicolon
		multiLineBuffer.WriteString(line)
		if !strings.HasSuffix(line, ";") {
			multiLineBuffer.WriteString(" ")
			rl.SetPrompt("     ...> ")
			continue
		}
		rl.SetPrompt("datalens> ")

		query := strings.TrimSuffix(multiLineBuffer.String(), ";")
		multiLineBuffer.Reset()

		if err := executeAndRenderQuery(ctx, cmd, st, query, opts.Format); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout())
	}

	return nil
}

// executeAndRenderQuery executes a query and renders results, properly closing rows with defer.
func executeAndRenderQuery(ctx context.Context, cmd *cobra.Command, st *dataset.Store, query, format string) error {
	rows, err := st.Query(ctx, query)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	return renderResults(cmd.OutOrStdout(), rows, format)
}

func handleDotCommand(ctx context.Context, cmd *cobra.Command, st *dataset.Store, line, format string) bool {
	parts := strings.Fields(line)
	command := strings.ToLower(parts[0])

	switch command {
	case ".quit", ".exit":
		return true

	case ".help":
		printREPLHelp(cmd.OutOrStdout())
		return true

	case ".schema":
		showDatasetSchema(cmd.OutOrStdout(), st.Table())
		return true

	case ".tables":
		if err := executeAndRenderQuery(ctx, cmd, st, "SHOW TABLES", format); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}
		return true

	case ".clear":
		fmt.Print("\033[H\033[2J")
		return true

	default:
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Unknown command: %s (type .help for commands)\n", command)
		return true
	}
}

func printREPLHelp(w io.Writer) {
	help := `
Commands:
  .help           Show this help message
  .schema         Show the dataset's columns and types
  .tables         List tables in the session database
  .clear          Clear the screen
  .quit / .exit   Exit the REPL

Tips:
  - The loaded file is the table "dataset"
  - SQL statements must end with a semicolon (;)
  - Use arrow keys to navigate history
  - Tab completion works for column names
`
	_, _ = fmt.Fprintln(w, help)
}

// newColumnCompleter creates a readline completer for column names.
func newColumnCompleter(t *dataset.Table) *readline.PrefixCompleter {
	var items []readline.PrefixCompleterInterface

	if t != nil {
		items = append(items, readline.PcItem(t.Name))
		for _, col := range t.Columns {
			items = append(items, readline.PcItem(col.Name))
		}
	}

	items = append(items,
		readline.PcItem(".help"),
		readline.PcItem(".schema"),
		readline.PcItem(".tables"),
		readline.PcItem(".clear"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	)

	return readline.NewPrefixCompleter(items...)
}
