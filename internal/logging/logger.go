package logging

import (
	"io"
	"log/slog"
	"os"
)

// Setup installs a JSON slog logger on stdout. Debug records are suppressed
// in production.
func Setup(production bool) *slog.Logger {
	logger := slog.New(NewJSONHandler(os.Stdout, production))
	slog.SetDefault(logger)
	return logger
}

func NewJSONHandler(w io.Writer, production bool) slog.Handler {
	level := slog.LevelDebug
	if production {
		level = slog.LevelInfo
	}
	return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
}
