package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr                 string
	DatabaseURL          string
	JWTSecret            string
	Environment          string
	MigrationsDir        string
	SeedTenantName       string
	SeedYear             int
	RunMigrations        bool
	RunSeed              bool
	RateLimitPerMinute   int
	CORSAllowedOrigins   []string
	MetricsEnabled       bool
	WeightPolicyFile     string
	ProRataPolicy        string
	CorporateWeighting   string
	BonusWorkers         int
	CorporateCacheSize   int
	CorporateCacheTTL    time.Duration
	BonusSummaryInterval time.Duration
}

// Load reads the environment, after merging an optional .env file.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("dotenv load failed", "err", err)
	}
	return Config{
		Addr:                 getEnv("APP_ADDR", ":8080"),
		DatabaseURL:          getEnv("DATABASE_URL", ""),
		JWTSecret:            getEnv("JWT_SECRET", ""),
		Environment:          getEnv("APP_ENV", "development"),
		MigrationsDir:        getEnv("MIGRATIONS_DIR", "migrations"),
		SeedTenantName:       getEnv("SEED_TENANT_NAME", "Default Tenant"),
		SeedYear:             getEnvInt("SEED_YEAR", time.Now().Year()-1),
		RunMigrations:        getEnvBool("RUN_MIGRATIONS", true),
		RunSeed:              getEnvBool("RUN_SEED", false),
		RateLimitPerMinute:   getEnvInt("RATE_LIMIT_PER_MINUTE", 60),
		CORSAllowedOrigins:   getEnvList("CORS_ALLOWED_ORIGINS", nil),
		MetricsEnabled:       getEnvBool("METRICS_ENABLED", true),
		WeightPolicyFile:     getEnv("WEIGHT_POLICY_FILE", ""),
		ProRataPolicy:        getEnv("PRORATA_POLICY", "hire_month_inclusive"),
		CorporateWeighting:   getEnv("CORPORATE_WEIGHTING", "weighted"),
		BonusWorkers:         getEnvInt("BONUS_WORKERS", 8),
		CorporateCacheSize:   getEnvInt("CORPORATE_CACHE_SIZE", 128),
		CorporateCacheTTL:    getEnvDuration("CORPORATE_CACHE_TTL", time.Minute),
		BonusSummaryInterval: getEnvDuration("BONUS_SUMMARY_INTERVAL", 0),
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

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.Environment == "production" && strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET must be set to a strong value in production")
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive")
	}
	if c.BonusWorkers <= 0 {
		return fmt.Errorf("BONUS_WORKERS must be positive")
	}
	if c.CorporateCacheSize <= 0 {
		return fmt.Errorf("CORPORATE_CACHE_SIZE must be positive")
	}
	if c.RunSeed && c.SeedYear <= 0 {
		return fmt.Errorf("SEED_YEAR must be a valid year when RUN_SEED is true")
	}
	return nil
}
