package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds all dynamic configuration for the configseal API.
// The obfuscation key is deliberately absent: it is compiled in.
type Config struct {
	Environment    string   `validate:"oneof=development production"`
	Port           string   `validate:"required,numeric"`
	AllowedOrigins []string `validate:"required,min=1,dive,required"`

	// Optional bearer auth for the API. Empty disables it.
	JWTSecret string `validate:"omitempty,min=32"`

	RateLimitRPS   float64 `validate:"gt=0"`
	RateLimitBurst int     `validate:"gt=0"`
	MaxBodyBytes   int64   `validate:"gt=0"`
}

var validate = validator.New()

// Load reads an optional .env file, then the environment, and applies
// sensible default fallbacks for development.
func Load() (*Config, error) {
	// A missing .env is normal outside local development
	_ = godotenv.Load()

	env := getEnv("CONFIGSEAL_ENV", "production")

	// 🛡️ Strict CORS: Must be explicitly defined in Production
	corsOrigins := getEnv("CORS_ALLOWED_ORIGINS", "")
	if corsOrigins == "" {
		if env == "production" {
			return nil, errors.New("config: CORS_ALLOWED_ORIGINS is required in production")
		}
		corsOrigins = "http://localhost:5173"
	}

	rps, err := strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "10"), 64)
	if err != nil {
		return nil, fmt.Errorf("config: invalid RATE_LIMIT_RPS: %w", err)
	}
	burst, err := strconv.Atoi(getEnv("RATE_LIMIT_BURST", "30"))
	if err != nil {
		return nil, fmt.Errorf("config: invalid RATE_LIMIT_BURST: %w", err)
	}
	maxBody, err := strconv.ParseInt(getEnv("MAX_BODY_BYTES", "1048576"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("config: invalid MAX_BODY_BYTES: %w", err)
	}

	cfg := &Config{
		Environment:    env,
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: splitOrigins(corsOrigins),
		JWTSecret:      getEnv("CONFIGSEAL_JWT_SECRET", ""),
		RateLimitRPS:   rps,
		RateLimitBurst: burst,
		MaxBodyBytes:   maxBody,
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func splitOrigins(s string) []string {
	var origins []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// getEnv retrieves an environment variable or returns a fallback value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
