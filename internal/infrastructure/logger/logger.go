package logger

import (
	"log/slog"
	"os"
	"strings"
)

// NewLogger builds the process logger at the configured level.
// Unknown levels fall back to info.
func NewLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	log := slog.New(handler)
	slog.SetDefault(log)
	return log
}
