package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the application configuration
type Config struct {
	Environment           string
	LogLevel              string
	AdminUsername         string
	AdminPassword         string
	JWTSecret             string
	SessionTTLMinutes     int
	ImportTimeoutSeconds  int
	DefaultOrganizationID string
	OperatorName          string
	OperatorID            string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	sessionTTL, err := strconv.Atoi(getEnv("SESSION_TTL_MINUTES", "15"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL_MINUTES: %w", err)
	}

	importTimeout, err := strconv.Atoi(getEnv("IMPORT_TIMEOUT_SECONDS", "30"))
	if err != nil {
		return nil, fmt.Errorf("invalid IMPORT_TIMEOUT_SECONDS: %w", err)
	}

	return &Config{
		Environment:           getEnv("ENVIRONMENT", "development"),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		AdminUsername:         getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword:         getEnv("ADMIN_PASSWORD", "admin123"),
		JWTSecret:             getEnv("JWT_SECRET", ""),
		SessionTTLMinutes:     sessionTTL,
		ImportTimeoutSeconds:  importTimeout,
		DefaultOrganizationID: getEnv("DEFAULT_ORGANIZATION_ID", "1"),
		OperatorName:          getEnv("OPERATOR_NAME", "system administrator"),
		OperatorID:            getEnv("OPERATOR_ID", "admin"),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
