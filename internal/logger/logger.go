// Package logger configures the slog logger of the modelgen command.
package logger

import (
	"io"
	"log/slog"
	"os"
)

// InitLogger installs a text logger writing to w, and to the file at
// filepath when set, as the default slog logger. The level is warn, info
// when verbose and debug when debug is set.
func InitLogger(w io.Writer, filepath string, verbose bool, debug bool) (*slog.LevelVar, error) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelInfo
	}

	if debug {
		level = slog.LevelDebug
	}

	if w == nil {
		w = os.Stderr
	}

	if filepath != "" {
		f, err := os.OpenFile(filepath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o600)
		if err != nil {
			return nil, err
		}

		w = io.MultiWriter(w, f)
	}

	var handler slog.LevelVar
	handler.Set(level)

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: &handler,
		// Add source information, if debug level is enabled.
		AddSource: debug,
	}))

	slog.SetDefault(logger)

	return &handler, nil
}

// Err is a helper function to ensure errors are always logged with the key
// "err".
func Err(err error) slog.Attr {
	return slog.Any("err", err)
}
