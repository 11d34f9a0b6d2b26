package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds the process-wide zerolog.Logger. Output is plain JSON in
// production; set BJACK_LOG_PRETTY=1 for a human-readable console writer
// during local development.
func New() zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	var out zerolog.ConsoleWriter
	if os.Getenv("BJACK_LOG_PRETTY") == "1" {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}
		return zerolog.New(out).With().Timestamp().Logger()
	}

	return zerolog.New(os.Stdout).With().Timestamp().Logger()
}
