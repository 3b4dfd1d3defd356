package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Addr               string
	DatabaseURL        string
	Environment        string
	AuthDomain         string
	AuthAudience       string
	DemoToken          string
	ContractAPIKey     string
	ContractTemplateID string
	ContractBaseURL    string
	CORSAllowedOrigin  string
	MigrationsDir      string
	MaxBodyBytes       int64
	RunMigrations      bool
	RunSeed            bool
	MetricsEnabled     bool
}

func Load() Config {
	return Config{
		Addr:               getEnv("APP_ADDR", ":8080"),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		Environment:        getEnv("APP_ENV", "development"),
		AuthDomain:         getEnv("AUTH_DOMAIN", ""),
		AuthAudience:       getEnv("AUTH_AUDIENCE", ""),
		DemoToken:          getEnv("DEMO_TOKEN", ""),
		ContractAPIKey:     getEnv("APITEMPLATE_API_KEY", ""),
		ContractTemplateID: getEnv("CONTRACT_TEMPLATE_ID", ""),
		ContractBaseURL:    getEnv("APITEMPLATE_BASE_URL", "https://rest.apitemplate.io"),
		CORSAllowedOrigin:  getEnv("CORS_ALLOWED_ORIGIN", "*"),
		MigrationsDir:      getEnv("MIGRATIONS_DIR", "migrations"),
		MaxBodyBytes:       int64(getEnvInt("MAX_BODY_BYTES", 2097152)),
		RunMigrations:      getEnvBool("RUN_MIGRATIONS", true),
		RunSeed:            getEnvBool("RUN_SEED", false),
		MetricsEnabled:     getEnvBool("METRICS_ENABLED", true),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

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

func (c Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.Environment == "production" {
		if strings.TrimSpace(c.AuthDomain) == "" {
			return fmt.Errorf("AUTH_DOMAIN must be set in production")
		}
		if strings.TrimSpace(c.AuthAudience) == "" {
			return fmt.Errorf("AUTH_AUDIENCE must be set in production")
		}
		if strings.TrimSpace(c.DemoToken) != "" {
			return fmt.Errorf("DEMO_TOKEN must not be set in production")
		}
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	return nil
}
