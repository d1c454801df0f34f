// Package logging configures the process-wide slog default.
package logging

import (
	"log/slog"
	"os"
)

// SetupJSON sets slog's default logger to JSON output at the given
// level, tagged with the service name.
func SetupJSON(service string, level slog.Level) {
	logger := slog.New(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}),
	).With("service", service)

	slog.SetDefault(logger)
}
