package logger

import (
	"io"
	"log/slog"
	"strings"

	"github.com/zevaryx/ButtonPaginator/internal/config"
)

// New builds the structured logger described by cfg writing to w.
func New(cfg config.LoggingConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: selectLevel(cfg)}

	var handler slog.Handler
	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "kv", "text", "pretty":
		handler = slog.NewTextHandler(w, opts)
	default:
		handler = slog.NewJSONHandler(w, opts)
	}
	return slog.New(handler)
}

func selectLevel(cfg config.LoggingConfig) slog.Level {
	switch strings.ToLower(strings.TrimSpace(cfg.Level)) {
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
