package logging

import (
	"log/slog"
	"os"
	"strings"
)

// Setup initializes the global slog logger with JSON output to stdout. It
// runs before the database is up; once connected, main swaps in a TeeHandler
// that mirrors ERROR+ records into system_logs.
func Setup() {
	slog.SetDefault(slog.New(ConsoleHandler()))
}

// ConsoleHandler builds the stdout JSON handler. LOG_LEVEL (debug, info,
// warn, error) selects verbosity, defaulting to info.
func ConsoleHandler() slog.Handler {
	return slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(os.Getenv("LOG_LEVEL")),
	})
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
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
