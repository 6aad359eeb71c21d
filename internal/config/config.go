package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	KPI      KPIConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	FrontendURL string
}

// KPIConfig holds default per-metric targets stamped on first metric insert
// and the interval of the background recompute job.
type KPIConfig struct {
	WorkHoursTarget           float64
	ResponseTimeTargetSeconds int
	TaskCompletionTarget      float64
	ProductivityTarget        float64
	RecalcInterval            time.Duration
}

func Load() (*Config, error) {
	// A missing .env is fine in deployed environments; variables come from
	// the process environment there.
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "workpulse"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// KPI target defaults
	kpiWorkHours, err := strconv.ParseFloat(getEnv("KPI_WORK_HOURS_TARGET", "160"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid KPI_WORK_HOURS_TARGET: %w", err)
	}
	kpiResponseSeconds, err := strconv.Atoi(getEnv("KPI_RESPONSE_TIME_TARGET_SECONDS", "3600"))
	if err != nil {
		return nil, fmt.Errorf("invalid KPI_RESPONSE_TIME_TARGET_SECONDS: %w", err)
	}
	kpiCompletion, err := strconv.ParseFloat(getEnv("KPI_TASK_COMPLETION_TARGET", "80"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid KPI_TASK_COMPLETION_TARGET: %w", err)
	}
	kpiProductivity, err := strconv.ParseFloat(getEnv("KPI_PRODUCTIVITY_TARGET", "70"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid KPI_PRODUCTIVITY_TARGET: %w", err)
	}
	recalcInterval, err := time.ParseDuration(getEnv("KPI_RECALC_INTERVAL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid KPI_RECALC_INTERVAL: %w", err)
	}

	config.KPI = KPIConfig{
		WorkHoursTarget:           kpiWorkHours,
		ResponseTimeTargetSeconds: kpiResponseSeconds,
		TaskCompletionTarget:      kpiCompletion,
		ProductivityTarget:        kpiProductivity,
		RecalcInterval:            recalcInterval,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
