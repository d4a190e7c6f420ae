package config

import (
	"context"
	"log/slog"
)

// loggerKey stores the logger in the command context.
type loggerKey struct{}

// currentConfig holds the most recently loaded configuration so commands
// can reach it without threading it through every call.
var currentConfig *Config

// SetCurrent records the active configuration.
func SetCurrent(cfg *Config) { currentConfig = cfg }

// Current returns the active configuration, or defaults when nothing has
// been loaded yet.
func Current() *Config {
	if currentConfig != nil {
		return currentConfig
	}
	return Default()
}

// Default returns a configuration with every field at its default.
func Default() *Config {
	return &Config{
		Port:        DefaultPort,
		Watch:       true,
		PreviewRows: DefaultPreviewRows,
		Output:      DefaultOutput,
	}
}

// WithLogger stores the logger in the context.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// GetLogger retrieves the logger from the context, falling back to a
// discard logger.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.New(slog.DiscardHandler)
}
