package logger

import (
	"log/slog"
	"os"
)

// New builds the app logger. Logs go to stderr so they never interleave
// with the interactive prompt on stdout.
func New(env string) *slog.Logger {
	level := slog.LevelInfo
	if env == "dev" {
		level = slog.LevelDebug
	}
	h := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(h).With("app", "euc-stock")
}
