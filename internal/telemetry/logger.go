package telemetry

import (
	"io"
	"log/slog"
)

// InitLogger installs a text logger writing to w as the slog default. Debug
// records are only emitted when verbose is set.
func InitLogger(verbose bool, w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	return logger
}
