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
	Auth     AuthConfig
	Cache    CacheConfig
	Sync     SyncConfig
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

// AuthConfig holds the single-operator login credential.
type AuthConfig struct {
	AdminPasswordHash string
}

// CacheConfig controls the local persistence layer. Path selects the
// SQLite file; an empty path keeps everything in memory.
type CacheConfig struct {
	Path          string
	CapacityBytes int64
}

// SyncConfig holds the background job intervals.
type SyncConfig struct {
	ProbeInterval  time.Duration
	DrainInterval  time.Duration
	AbsentInterval time.Duration
}

func Load() (*Config, error) {
	// A missing .env file is fine; the environment may already be set.
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
		Name:     getEnv("DB_NAME", "staffsync"),
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
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "12h"),
	}

	config.Auth = AuthConfig{
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
	}

	// Local cache configuration
	cacheCapacity, err := strconv.ParseInt(getEnv("CACHE_CAPACITY_BYTES", "0"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_CAPACITY_BYTES: %w", err)
	}

	config.Cache = CacheConfig{
		Path:          getEnv("CACHE_PATH", "staffsync.db"),
		CapacityBytes: cacheCapacity,
	}

	// Background job intervals
	probeInterval, err := time.ParseDuration(getEnv("SYNC_PROBE_INTERVAL", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid SYNC_PROBE_INTERVAL: %w", err)
	}
	drainInterval, err := time.ParseDuration(getEnv("SYNC_DRAIN_INTERVAL", "1m"))
	if err != nil {
		return nil, fmt.Errorf("invalid SYNC_DRAIN_INTERVAL: %w", err)
	}
	absentInterval, err := time.ParseDuration(getEnv("ABSENT_CHECK_INTERVAL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid ABSENT_CHECK_INTERVAL: %w", err)
	}

	config.Sync = SyncConfig{
		ProbeInterval:  probeInterval,
		DrainInterval:  drainInterval,
		AbsentInterval: absentInterval,
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
	if c.Auth.AdminPasswordHash == "" {
		return fmt.Errorf("ADMIN_PASSWORD_HASH is required")
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
