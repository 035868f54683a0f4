package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// parseString returns the trimmed value of an environment variable or defaultVal.
func parseString(envVar, defaultVal string) string {
	val := strings.TrimSpace(os.Getenv(envVar))
	if val == "" {
		return defaultVal
	}
	return val
}

// parseDuration parses a duration from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
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

// parseBool parses a boolean from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseBool(envVar string, defaultVal bool) bool {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	b, err := strconv.ParseBool(val)
	if err != nil {
		return defaultVal
	}

	return b
}
