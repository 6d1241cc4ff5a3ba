package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestNewWritesToInjectedWriter(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	logger := New(&out, "info")

	logger.Info("pool loaded", "candidates", 7)

	text := out.String()
	if !strings.Contains(text, "pool loaded") || !strings.Contains(text, "candidates=7") {
		t.Fatalf("unexpected log line: %q", text)
	}
}

func TestNewHonorsLevel(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	logger := New(&out, "warn")

	logger.Info("quiet")
	if out.Len() != 0 {
		t.Fatalf("info must be suppressed at warn level, got %q", out.String())
	}

	logger.Warn("loud")
	if !strings.Contains(out.String(), "loud") {
		t.Fatalf("warn line missing: %q", out.String())
	}
}

func TestLevelFromString(t *testing.T) {
	t.Parallel()

	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}

	for value, want := range cases {
		if got := levelFromString(value); got != want {
			t.Errorf("levelFromString(%q) = %v, want %v", value, got, want)
		}
	}
}
