package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that required configuration is present. The provider
// API key and JWT secret are hard requirements in every environment except
// test: the process must not start without them.
func ValidateConfig(cfg *Config) error {
	var errors []string

	if IsTest() {
		return nil
	}

	if cfg.GeminiAPIKey == "" {
		errors = append(errors, "GEMINI_API_KEY (or the gemini_api_key secret) is required")
	}
	if cfg.JWTSecret == "" {
		errors = append(errors, "JWT_SECRET (or the jwt_secret secret) is required")
	}
	if cfg.DBPassword == "" {
		errors = append(errors, "DB_PASSWORD (or the db_password secret) is required")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errors, "\n"))
	}

	return nil
}
