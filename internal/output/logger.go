/*
PURPOSE:
  Provides a structured logger for Quad Runner.
  Wraps slog for consistent output.

REQUIREMENTS:
  User-specified:
  - "Sane" CLI output. Not spammy.
  - Stdout is reserved for the result lines.

  Implementation-discovered:
  - Needs to support Debug/Info/Warn levels.
  - Non-convergence warnings go here, next to (not inside) the results.

ARCHITECTURE INTEGRATION:
  - Used everywhere.

ERROR HANDLING:
  - Unknown level names are rejected by SetLevel.

IMPLEMENTATION RULES:
  - Use `log/slog` (Go 1.21+).
  - Write to stderr.

USAGE:
  output.Logger.Info("message", "key", "value")

RELATED FILES:
  - All.
*/

package output

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

var (
	Logger *slog.Logger
	level  = new(slog.LevelVar)
)

func init() {
	Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// SetLogger allows overriding the default logger (e.g. for testing or config changes)
func SetLogger(l *slog.Logger) {
	Logger = l
}

// SetLevel adjusts the default logger's level: debug, info, warn or error.
func SetLevel(name string) error {
	switch strings.ToLower(name) {
	case "debug":
		level.Set(slog.LevelDebug)
	case "", "info":
		level.Set(slog.LevelInfo)
	case "warn", "warning":
		level.Set(slog.LevelWarn)
	case "error":
		level.Set(slog.LevelError)
	default:
		return fmt.Errorf("unknown log level %q", name)
	}
	return nil
}
