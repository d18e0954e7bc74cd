package logger

import (
	"io"
	"log/slog"
	"os"
)

// Init installs the default slog logger. Logs go to stderr so command
// output on stdout stays clean.
func Init(level string, jsonFormat bool) *slog.Logger {
	return InitWriter(os.Stderr, level, jsonFormat)
}

func InitWriter(w io.Writer, level string, jsonFormat bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLogLevel(level)}

	var handler slog.Handler
	if jsonFormat {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	l := slog.New(handler)
	slog.SetDefault(l)

	l.With("component", "logger").Debug("logger initialized",
		"level", level,
		"json_format", jsonFormat,
	)
	return l
}

func parseLogLevel(levelStr string) slog.Level {
	switch levelStr {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
