package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"tinymath/internal/service"
)

// Config holds application configuration
type Config struct {
	ServerPort     string
	DatabaseType   string
	DatabaseURL    string
	DatabasePath   string
	MigrationsPath string

	JWTSecret string
	TokenTTL  time.Duration

	Policy service.Policy

	AWSRegion    string
	SESFromEmail string
	SESFromName  string
}

// Load reads configuration from the environment, honoring a local .env file
// when present. JWT_SECRET is the only required value.
func Load() (*Config, error) {
	// Missing .env is fine; real deployments set the environment directly
	_ = godotenv.Load()

	cfg := &Config{
		ServerPort:     getEnv("PORT", "8080"),
		DatabaseType:   getEnv("DB_TYPE", "sqlite"),
		DatabaseURL:    getEnv("DB_URL", ""),
		DatabasePath:   getEnv("DB_PATH", "./tinymath.db"),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "./migrations"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		SESFromEmail:   getEnv("SES_FROM_EMAIL", ""),
		SESFromName:    getEnv("SES_FROM_NAME", "TinyMath Education"),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	var err error
	if cfg.TokenTTL, err = getDuration("TOKEN_TTL", 7*24*time.Hour); err != nil {
		return nil, err
	}

	cfg.Policy = service.DefaultPolicy()
	if cfg.Policy.VerificationWindow, err = getDuration("VERIFICATION_WINDOW", cfg.Policy.VerificationWindow); err != nil {
		return nil, err
	}
	if cfg.Policy.ResetWindow, err = getDuration("RESET_WINDOW", cfg.Policy.ResetWindow); err != nil {
		return nil, err
	}

	switch policy := getEnv("UNVERIFIED_LOGIN_POLICY", string(service.UnverifiedAutoResend)); policy {
	case string(service.UnverifiedReject):
		cfg.Policy.UnverifiedLogin = service.UnverifiedReject
	case string(service.UnverifiedAutoResend):
		cfg.Policy.UnverifiedLogin = service.UnverifiedAutoResend
	default:
		return nil, fmt.Errorf("invalid UNVERIFIED_LOGIN_POLICY: %s", policy)
	}

	if cfg.Policy.RegisterEmailFatal, err = getFatal("EMAIL_FAILURE_REGISTER", true); err != nil {
		return nil, err
	}
	if cfg.Policy.ForgotEmailFatal, err = getFatal("EMAIL_FAILURE_FORGOT", true); err != nil {
		return nil, err
	}

	return cfg, nil
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDuration reads a Go duration from the environment
func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

// getFatal reads a "fatal"/"warn" email failure policy value
func getFatal(key string, defaultValue bool) (bool, error) {
	switch value := os.Getenv(key); value {
	case "":
		return defaultValue, nil
	case "fatal":
		return true, nil
	case "warn":
		return false, nil
	default:
		return false, fmt.Errorf("invalid %s: %s (want fatal or warn)", key, value)
	}
}
