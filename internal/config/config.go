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
	Ingest   IngestConfig
	Terminal TerminalConfig
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
	Port     int
	Env      string
	LogLevel string
}

// IngestConfig tunes the reconciliation pipeline.
type IngestConfig struct {
	// ChunkSize bounds each insert transaction on large imports.
	ChunkSize int
	// DirectionCutoffHour drives punch-direction inference when the source
	// row carries no label: punches before this hour lean IN, after it OUT.
	// A heuristic, wrong for night shifts; tune per site.
	DirectionCutoffHour int
	// MaxRejectReasons bounds the rejection sample in import reports.
	MaxRejectReasons int
}

// TerminalConfig wires the optional device-gateway poll job.
type TerminalConfig struct {
	GatewayURL   string
	DeviceID     string
	PollInterval time.Duration
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
		Name:     getEnv("DB_NAME", "finger_attendance"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// Ingestion configuration
	chunkSize, err := strconv.Atoi(getEnv("INGEST_CHUNK_SIZE", "100"))
	if err != nil {
		return nil, fmt.Errorf("invalid INGEST_CHUNK_SIZE: %w", err)
	}
	cutoffHour, err := strconv.Atoi(getEnv("INGEST_DIRECTION_CUTOFF_HOUR", "12"))
	if err != nil {
		return nil, fmt.Errorf("invalid INGEST_DIRECTION_CUTOFF_HOUR: %w", err)
	}
	maxRejects, err := strconv.Atoi(getEnv("INGEST_MAX_REJECT_REASONS", "20"))
	if err != nil {
		return nil, fmt.Errorf("invalid INGEST_MAX_REJECT_REASONS: %w", err)
	}

	config.Ingest = IngestConfig{
		ChunkSize:           chunkSize,
		DirectionCutoffHour: cutoffHour,
		MaxRejectReasons:    maxRejects,
	}

	// Terminal gateway configuration (optional; poll job only runs when set)
	pollInterval, err := time.ParseDuration(getEnv("TERMINAL_POLL_INTERVAL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid TERMINAL_POLL_INTERVAL: %w", err)
	}

	config.Terminal = TerminalConfig{
		GatewayURL:   getEnv("TERMINAL_GATEWAY_URL", ""),
		DeviceID:     getEnv("TERMINAL_DEVICE_ID", ""),
		PollInterval: pollInterval,
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
	if c.Ingest.ChunkSize <= 0 {
		return fmt.Errorf("INGEST_CHUNK_SIZE must be positive")
	}
	if c.Ingest.DirectionCutoffHour < 0 || c.Ingest.DirectionCutoffHour > 23 {
		return fmt.Errorf("INGEST_DIRECTION_CUTOFF_HOUR must be between 0 and 23")
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
