// Package logging builds the process-wide structured logger. Every
// component logs through slog with a JSON handler so pipeline runs, batch
// submissions and HTTP access lines aggregate under one format; the service
// attribute distinguishes deployments sharing a sink.
package logging

import (
	"log/slog"
	"os"
	"strings"
)

func NewJSONLogger(service, level string) *slog.Logger {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: ParseLevel(level),
	})
	return slog.New(handler).With("service", service)
}

// ParseLevel maps a config string onto a slog level. Unknown or empty
// values fall back to info so a typo in LOG_LEVEL never silences logs.
func ParseLevel(level string) slog.Level {
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
