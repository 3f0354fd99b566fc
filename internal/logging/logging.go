package logging

import (
	"io"
	"log/slog"
)

// LogFormat defines the log output format.
type LogFormat string

const (
	LogFormatText LogFormat = "text" // human readable key=value
	LogFormatJSON LogFormat = "json" // structured JSON lines
)

// SetupLogger returns a slog.Logger writing to w in the given format.
// Debug lowers the level to slog.LevelDebug.
func SetupLogger(format LogFormat, debug bool, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if debug {
		opts.Level = slog.LevelDebug
	}

	var handler slog.Handler
	switch format {
	case LogFormatJSON:
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}
