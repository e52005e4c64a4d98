// ABOUTME: Configuration loader for the Brightwave CLI
// ABOUTME: Loads settings from a local .env and environment variables with defaults

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const defaultAPIURL = "https://api.brightwave.io"

type Config struct {
	APIURL         string // Base URL of the site API
	RequestTimeout int    // seconds, timeout for API requests (default 30)
	ConfigDir      string // directory holding the persisted session token
}

// Load reads configuration from the environment. A .env file in the
// working directory is loaded first when present; real environment
// variables take precedence over it.
func Load() (*Config, error) {
	// Missing .env is the normal case outside development
	_ = godotenv.Load()

	cfg := &Config{
		APIURL:         ensureScheme(getEnv("BRIGHTWAVE_API_URL", defaultAPIURL)),
		RequestTimeout: getEnvInt("BRIGHTWAVE_REQUEST_TIMEOUT", 30),
		ConfigDir:      os.Getenv("BRIGHTWAVE_CONFIG_DIR"),
	}

	if cfg.RequestTimeout < 1 || cfg.RequestTimeout > 300 {
		return nil, fmt.Errorf("BRIGHTWAVE_REQUEST_TIMEOUT must be between 1 and 300, got %d", cfg.RequestTimeout)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// ensureScheme adds https:// prefix if the URL has no scheme
func ensureScheme(url string) string {
	if url == "" {
		return url
	}
	if !strings.Contains(url, "://") {
		return "https://" + url
	}
	return url
}
