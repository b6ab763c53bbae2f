package logger

import (
	"io"
	"log/slog"
	"strings"
)

// Init sets up the default slog logger.
//
// Pretty output is slog's text format, meant for humans during development. Otherwise logs are JSON.
// Unknown levels fall back to info.
func Init(w io.Writer, level string, pretty bool) {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}

	var handler slog.Handler = slog.NewJSONHandler(w, opts)
	if pretty {
		handler = slog.NewTextHandler(w, opts)
	}

	slog.SetDefault(slog.New(handler))
}

// parseLevel converts the configured level name to a slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
