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

// ValidateConfig checks that every value needed for the current environment
// is present and sane.
func ValidateConfig(cfg *Config) error {
	var errors []string

	if cfg.ServerPort == "" {
		errors = append(errors, ValidationError{"ServerPort", "server port is required"}.Error())
	}

	// Production refuses to start without credentials; development and test
	// may run against local defaults.
	if IsProduction() {
		if cfg.DBUser == "" {
			errors = append(errors, ValidationError{"DBUser", "DB_USER is required in production"}.Error())
		}
		if cfg.DBPassword == "" {
			errors = append(errors, ValidationError{"DBPassword", "DB_PASSWORD is required in production"}.Error())
		}
		if cfg.JWTSecret == "" {
			errors = append(errors, ValidationError{"JWTSecret", "JWT_SECRET is required in production"}.Error())
		}
		if cfg.LLMAPIKey == "" {
			errors = append(errors, ValidationError{"LLMAPIKey", "LLM_API_KEY is required in production"}.Error())
		}
	}

	if cfg.RateLimits.ReceiptScansPerDay <= 0 {
		errors = append(errors, ValidationError{"RateLimits", "RECEIPT_SCANS_PER_DAY must be positive"}.Error())
	}
	if cfg.RateLimits.SubstitutionsPerDay <= 0 {
		errors = append(errors, ValidationError{"RateLimits", "SUBSTITUTIONS_PER_DAY must be positive"}.Error())
	}

	if len(errors) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(errors, "; "))
	}
	return nil
}
