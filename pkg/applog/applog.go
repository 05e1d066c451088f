package applog

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/japaniel/vocabprep/pkg/config"
)

// New creates a *slog.Logger writing to os.Stderr and sets it as the
// default logger via slog.SetDefault.
//
// Format "json" produces JSON output; "text" produces human-readable output
// with source info. Level is one of debug, info, warn, error
// (case-insensitive) and defaults to info.
func New(cfg config.LogConfig) *slog.Logger {
	logger := NewWithWriter(os.Stderr, cfg)
	slog.SetDefault(logger)
	return logger
}

// NewWithWriter builds the same logger as New over w without touching the
// default logger.
func NewWithWriter(w io.Writer, cfg config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     parseLevel(cfg.Level),
		AddSource: strings.EqualFold(cfg.Format, "text"),
	}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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
