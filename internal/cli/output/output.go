// Package output renders CLI results in the configured format and owns the
// terminal styles used across commands.
package output

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Mode selects the output format.
type Mode string

// Supported output modes.
const (
	ModeAuto     Mode = "auto"
	ModeText     Mode = "text"
	ModeMarkdown Mode = "markdown"
	ModeCSV      Mode = "csv"
	ModeJSON     Mode = "json"
)

// Styles holds the lipgloss styles shared by commands.
type Styles struct {
	Header lipgloss.Style
	Key    lipgloss.Style
	Muted  lipgloss.Style
	Error  lipgloss.Style

	// Semantic column type badges.
	Numeric     lipgloss.Style
	Categorical lipgloss.Style
	Temporal    lipgloss.Style
	Unknown     lipgloss.Style
}

// DefaultStyles returns the standard color scheme.
func DefaultStyles() *Styles {
	return &Styles{
		Header:      lipgloss.NewStyle().Bold(true),
		Key:         lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Muted:       lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Error:       lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Numeric:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Categorical: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Temporal:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		Unknown:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// Renderer writes formatted output for one command invocation.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   Mode
	styles *Styles
}

// NewRenderer creates a renderer. ModeAuto behaves as text.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	if mode == "" || mode == ModeAuto {
		mode = ModeText
	}
	return &Renderer{out: out, errOut: errOut, mode: mode, styles: DefaultStyles()}
}

// Mode returns the active output mode.
func (r *Renderer) Mode() Mode { return r.mode }

// Out returns the primary output writer.
func (r *Renderer) Out() io.Writer { return r.out }

// Styles returns the renderer's style set.
func (r *Renderer) Styles() *Styles { return r.styles }

// Println writes a line to the primary output.
func (r *Renderer) Println(args ...any) {
	_, _ = fmt.Fprintln(r.out, args...)
}

// Printf writes formatted text to the primary output.
func (r *Renderer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.out, format, args...)
}

// Errorf writes formatted text to the error output.
func (r *Renderer) Errorf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.errOut, format, args...)
}

// Header writes a styled section header. In markdown mode it emits a
// heading instead of ANSI styling.
func (r *Renderer) Header(text string) {
	if r.mode == ModeMarkdown {
		r.Printf("## %s\n\n", text)
		return
	}
	r.Println(r.styles.Header.Render(text))
}

// KeyValue writes a "key: value" line.
func (r *Renderer) KeyValue(key, value string) {
	if r.mode == ModeMarkdown {
		r.Printf("- **%s**: %s\n", key, value)
		return
	}
	r.Printf("%s: %s\n", r.styles.Key.Render(key), value)
}
