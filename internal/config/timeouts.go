package config

import (
	"os"
	"strconv"
	"time"
)

// Timeouts holds the HTTP timeout and retry tuning for API calls.
// Values can be customized via environment variables.
type Timeouts struct {
	Request           time.Duration // Timeout for a single API request
	AvatarFetch       time.Duration // Timeout for avatar downloads
	RetryMaxAttempts  int           // Retries after the first attempt for transient failures
	RetryInitialDelay time.Duration // Initial backoff delay
}

// LoadTimeouts loads timeout configuration from environment variables.
// If a variable is not set or invalid, the default is used.
//
// Environment variables:
//   - MEDIASHIFT_TIMEOUT_REQUEST (default: 30s)
//   - MEDIASHIFT_TIMEOUT_AVATAR_FETCH (default: 10s)
//   - MEDIASHIFT_RETRY_MAX_ATTEMPTS (default: 2)
//   - MEDIASHIFT_RETRY_INITIAL_DELAY (default: 1s)
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		Request:           parseDuration("MEDIASHIFT_TIMEOUT_REQUEST", 30*time.Second),
		AvatarFetch:       parseDuration("MEDIASHIFT_TIMEOUT_AVATAR_FETCH", 10*time.Second),
		RetryMaxAttempts:  parseInt("MEDIASHIFT_RETRY_MAX_ATTEMPTS", 2),
		RetryInitialDelay: parseDuration("MEDIASHIFT_RETRY_INITIAL_DELAY", 1*time.Second),
	}
}

func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}
	return d
}

func parseInt(envVar string, defaultVal int) int {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return i
}
