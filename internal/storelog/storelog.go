// Package storelog constructs the slog.Logger used by the engine and the
// CLI, reading its level and format from configuration the way
// cmd/vista/main.go's initLogger does.
package storelog

import (
	"log/slog"
	"os"
)

// New builds a slog.Logger writing to stderr at the given level ("debug",
// "info", "warn", "error"; unrecognized values fall back to info) in either
// "text" or "json" format.
func New(level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}

	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	return slog.New(handler)
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
