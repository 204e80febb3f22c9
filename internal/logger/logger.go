package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger is the application-wide logger type, aliased to zerolog.Logger so
// other packages depend only on atvcert/internal/logger.
type Logger = zerolog.Logger

// Init initializes the global logger with the given level. The output
// format is console by default; set LOG_FORMAT=json for structured output.
func Init(level string) {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	format := strings.ToLower(strings.TrimSpace(os.Getenv("LOG_FORMAT")))

	var output io.Writer = zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: "2006-01-02 15:04:05",
	}
	if format == "json" {
		output = os.Stdout
	}

	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	log.Logger = log.Output(output).Level(lvl)
	if err != nil {
		log.Warn().Str("log_level_in", level).Msg("Invalid log level, defaulting to 'info'")
	}
}

// Get returns a pointer to the configured logger instance.
func Get() *zerolog.Logger {
	return &log.Logger
}

// SetOutput redirects log output, useful for capturing logs in tests.
func SetOutput(w io.Writer) {
	log.Logger = log.Output(w)
}

// HTTPEvent logs HTTP request events with standardized fields.
func HTTPEvent(method, path string, status int, durationMs float64) *zerolog.Event {
	return log.Info().
		Str("event_category", "http").
		Str("method", method).
		Str("path", path).
		Int("status", status).
		Float64("duration_ms", durationMs)
}

// PanicEvent logs panic recovery events.
func PanicEvent(err interface{}, stack string) *zerolog.Event {
	return log.Error().
		Str("event_category", "panic").
		Interface("error", err).
		Str("stack", stack)
}
