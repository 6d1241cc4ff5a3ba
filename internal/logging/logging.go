package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// New creates a text slog.Logger on the given writer. Logs go to a separate
// writer from the presenter's riddle output, so the two never interleave; a
// nil writer falls back to stderr. Unknown level strings mean info.
func New(out io.Writer, level string) *slog.Logger {
	if out == nil {
		out = os.Stderr
	}

	handler := slog.NewTextHandler(out, &slog.HandlerOptions{
		Level: levelFromString(level),
	})
	return slog.New(handler)
}

func levelFromString(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
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
