package app

import (
	"io"
	"log/slog"
)

// logLevels maps the accepted -log-level and log_level values to slog levels.
var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// newLogger builds the application logger writing to w. An unknown level
// falls back to defaultLogLevel; any format other than "json" is text.
// The global logger is left alone.
func newLogger(levelStr, formatStr string, w io.Writer) *slog.Logger {
	level, ok := logLevels[levelStr]
	if !ok {
		level = logLevels[defaultLogLevel]
	}
	opts := &slog.HandlerOptions{Level: level}

	if formatStr == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
