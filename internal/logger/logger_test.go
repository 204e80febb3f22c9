package logger_test

import (
	"bytes"
	"strings"
	"testing"

	"atvcert/internal/logger"

	"github.com/rs/zerolog"
)

func TestInitLevels(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		logAt    string
		wantSeen bool
	}{
		{"debug level logs debug", "debug", "debug", true},
		{"info level skips debug", "info", "debug", false},
		{"info level logs info", "info", "info", true},
		{"warn level skips info", "warn", "info", false},
		{"error level logs error", "error", "error", true},
		{"invalid level defaults to info", "bogus", "info", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger.Init(tt.level)
			logger.SetOutput(&buf)

			log := logger.Get()
			switch tt.logAt {
			case "debug":
				log.Debug().Msg("probe")
			case "info":
				log.Info().Msg("probe")
			case "error":
				log.Error().Msg("probe")
			}

			seen := strings.Contains(buf.String(), "probe")
			if seen != tt.wantSeen {
				t.Errorf("level %q logging at %q: seen = %v, want %v", tt.level, tt.logAt, seen, tt.wantSeen)
			}
		})
	}

	// Reset global state for other tests.
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

func TestHTTPEventFields(t *testing.T) {
	var buf bytes.Buffer
	logger.Init("info")
	logger.SetOutput(&buf)

	logger.HTTPEvent("GET", "/healthz", 200, 1.5).Msg("request")

	out := buf.String()
	for _, want := range []string{`"method":"GET"`, `"path":"/healthz"`, `"status":200`} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %s: %s", want, out)
		}
	}
}
