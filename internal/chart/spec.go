package chart

import "fmt"

// Spec is a fully-resolved description of one chart to render. It is
// constructed per interaction, references only columns that exist in the
// current table, and is discarded after rendering.
type Spec struct {
	Kind Kind

	// Encoding channels. Empty strings mean "channel unused".
	X     string
	Y     string
	Color string

	// Columns holds the dimensions of a scatter matrix.
	Columns []string

	// Path is the ordered hierarchy for sunburst/treemap; order defines
	// nesting depth.
	Path []string

	// ValueColumn is the numeric column summed at each hierarchy node.
	// Empty means rows are counted instead.
	ValueColumn string

	// Marginal names an overlay distribution ("box") for colored
	// histograms.
	Marginal string

	Title string
}

// Selections carries the user's raw column choices for one chart request.
type Selections struct {
	X       string
	Y       string
	Color   string
	Group   string
	Columns []string
	Path    []string
	Values  string
}

// ValidationError reports an expectable precondition failure: an empty
// selection, too few columns, a type mismatch. It is an ordinary error
// value shown inline near the chart; it never aborts the session.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func validationf(format string, args ...any) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}
