package di

import (
	"os"

	"github.com/rs/zerolog"
)

// ProvideLogger creates a new zerolog.Logger configured for the runtime environment.
// Inside a CI executor (when GITLAB_CI or CI is set), it uses JSON format.
// In terminal/CLI, it uses console format with pretty printing.
// Logs always go to stderr: stdout carries the generated variables.
func ProvideLogger() zerolog.Logger {
	if os.Getenv("GITLAB_CI") != "" || os.Getenv("CI") != "" {
		// Running in CI - use JSON format
		return zerolog.New(os.Stderr).
			Level(zerolog.InfoLevel).
			With().
			Timestamp().
			Logger()
	}

	// Running in terminal - use console format with colors
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(zerolog.InfoLevel).
		With().
		Timestamp().
		Logger()
}
