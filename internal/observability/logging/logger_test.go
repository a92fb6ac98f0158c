package logging

import (
	"log/slog"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{" ERROR ", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tc := range cases {
		if got := ParseLevel(tc.in); got != tc.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestNewJSONLoggerLevelGate(t *testing.T) {
	logger := NewJSONLogger("doc-classifier-api", "warn")
	if logger.Enabled(nil, slog.LevelInfo) {
		t.Fatal("info should be gated at warn level")
	}
	if !logger.Enabled(nil, slog.LevelWarn) {
		t.Fatal("warn should pass at warn level")
	}
}
