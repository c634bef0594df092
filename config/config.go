package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// RateLimitConfig holds the per-user daily caps for metered AI features.
type RateLimitConfig struct {
	ReceiptScansPerDay  int
	SubstitutionsPerDay int
}

// Default daily limits applied when the environment does not override them.
const (
	DefaultReceiptScansPerDay  = 5
	DefaultSubstitutionsPerDay = 10
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string

	// LLM provider configuration
	LLMAPIKey string
	LLMAPIURL string
	LLMModel  string

	// Daily AI usage limits
	RateLimits RateLimitConfig
}

// LoadConfig creates a new Config instance from environment variables.
// In development a .env file is loaded first, if present.
func LoadConfig() (*Config, error) {
	if IsDevelopment() {
		// Missing .env is fine; variables may come from the environment.
		_ = godotenv.Load()
	}

	cfg := &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		ServerHost: getEnv("SERVER_HOST", "0.0.0.0"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     getEnv("DB_NAME", "spizarnia"),
		DBSSLMode:  getEnv("DB_SSL_MODE", "disable"),

		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		RedisURL:      os.Getenv("REDIS_URL"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		LLMAPIKey: os.Getenv("LLM_API_KEY"),
		LLMAPIURL: getEnv("LLM_API_URL", "https://openrouter.ai/api/v1/chat/completions"),
		LLMModel:  getEnv("LLM_MODEL", "google/gemini-2.0-flash-001"),

		RateLimits: RateLimitConfig{
			ReceiptScansPerDay:  getEnvInt("RECEIPT_SCANS_PER_DAY", DefaultReceiptScansPerDay),
			SubstitutionsPerDay: getEnvInt("SUBSTITUTIONS_PER_DAY", DefaultSubstitutionsPerDay),
		},
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// getEnv reads a variable with a fallback default
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getEnvInt reads an integer variable with a fallback default
func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
