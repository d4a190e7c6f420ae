// Package testutil provides shared helpers for tests.
package testutil

import (
	"log/slog"
	"testing"
)

// NewTestLogger returns a debug-level slog.Logger routed through t.Log,
// so log output shows up only for failing tests or under -v.
func NewTestLogger(t testing.TB) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(logWriter{t}, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

type logWriter struct {
	t testing.TB
}

func (w logWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}
