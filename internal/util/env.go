package util

import (
	"os"
	"strconv"
	"time"

	"github.com/OFFIS-RIT/feedlens/pkg/logger"

	"github.com/joho/godotenv"
)

func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		logger.Debug("No .env file found, using system environment variables")
	}
}

func GetEnv(key string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return ""
	}
	return value
}

func GetEnvString(key string, defaultValue string) string {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue
	}

	return value
}

func GetEnvNumeric(key string, defaultValue float64) float64 {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	returnValue, err := strconv.ParseFloat(value, 64)
	if err != nil {
		logger.Warn("Invalid numeric environment variable, using default", "key", key, "value", value)
		return defaultValue
	}

	return returnValue
}

func GetEnvInt(key string, defaultValue int) int {
	return int(GetEnvNumeric(key, float64(defaultValue)))
}

func GetEnvBool(key string, defaultValue bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	if value == "true" || value == "false" {
		return value == "true"
	}

	return defaultValue
}

// GetEnvDuration reads a Go duration such as "45s" or "2m". A bare number
// is taken as seconds.
func GetEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.ParseFloat(value, 64); err == nil {
		return time.Duration(secs * float64(time.Second))
	}

	logger.Warn("Invalid duration environment variable, using default", "key", key, "value", value)
	return defaultValue
}
