package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"atvcert/internal/certstore"
	"atvcert/internal/selfsigned"
)

// Config holds application configuration, assembled from environment
// variables (optionally via a .env file) with built-in defaults.
type Config struct {
	Hostname      string
	CertFile      string
	KeyFile       string
	ValidityDays  int
	LogLevel      string
	ServeAddr     string
	RenewalWindow time.Duration
}

const (
	defaultValidityDays  = 3650
	defaultServeAddr     = ":8443"
	defaultRenewalWindow = 30 * 24 * time.Hour
)

// Load reads configuration from the environment. Unset variables fall
// back to the defaults the generator has always used: hostname
// "atvremote" and a pair under the user's application-support directory.
func Load() Config {
	_ = godotenv.Load()

	store := certstore.Default()

	cfg := Config{
		Hostname:      getEnv("ATVCERT_HOSTNAME", selfsigned.DefaultHostname),
		CertFile:      getEnv("ATVCERT_CERT_FILE", store.CertFile),
		KeyFile:       getEnv("ATVCERT_KEY_FILE", store.KeyFile),
		ValidityDays:  getEnvInt("ATVCERT_VALIDITY_DAYS", defaultValidityDays),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		ServeAddr:     getEnv("ATVCERT_ADDR", defaultServeAddr),
		RenewalWindow: defaultRenewalWindow,
	}

	if days := getEnvInt("ATVCERT_RENEWAL_WINDOW_DAYS", 0); days > 0 {
		cfg.RenewalWindow = time.Duration(days) * 24 * time.Hour
	}

	return cfg
}

// Store returns the output store described by the configuration.
func (c Config) Store() certstore.Store {
	return certstore.Store{CertFile: c.CertFile, KeyFile: c.KeyFile}
}

func getEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
