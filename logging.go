package main

import (
	"io"
	"log/slog"
	"os"
)

// newLogger writes text records to stderr so stdout stays free for the run
// summary. The "error" key is shortened to "err".
func newLogger(level slog.Level) *slog.Logger {
	return newLoggerTo(os.Stderr, level)
}

func newLoggerTo(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == "error" {
				a.Key = "err"
			}
			return a
		},
	}))
}
