package dataset

import "fmt"

// ParseError reports a file that could not be loaded at all. It aborts the
// session's analysis until a new file is chosen; per-row and per-value
// problems degrade to notices and NULLs instead.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to load %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Notice is an informational message produced while loading, e.g. skipped
// CSV rows or a column re-typed as temporal. Notices are shown to the user
// but never fail the load.
type Notice struct {
	Message string
}
