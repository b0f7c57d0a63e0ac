package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultImagenAPIURL = "https://generativelanguage.googleapis.com/v1beta/models/imagen-3.0-generate-002:predict"
	DefaultListenAddr   = ":8080"
	DefaultEnvFile      = ".env"
)

// DBConfig holds ledger database configuration
type DBConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Config holds all configuration for the application
type Config struct {
	GoogleAPIKey        string
	ImagenAPIURL        string
	ListenAddr          string
	UpstreamTimeout     time.Duration
	LogFormat           string
	LedgerRetention     time.Duration
	LedgerPruneSchedule string
	DB                  DBConfig
}

// Load loads the configuration from environment variables. Values in
// envFile are applied first; a missing file is not an error.
func Load(envFile string) (*Config, error) {
	if envFile == "" {
		envFile = DefaultEnvFile
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading %s: %w", envFile, err)
	}

	config := &Config{
		GoogleAPIKey:        os.Getenv("GOOGLE_API_KEY"),
		ImagenAPIURL:        getString("IMAGEN_API_URL", DefaultImagenAPIURL),
		ListenAddr:          getString("LISTEN_ADDR", DefaultListenAddr),
		UpstreamTimeout:     getSeconds("UPSTREAM_TIMEOUT", 0),
		LogFormat:           getString("LOG_FORMAT", "text"),
		LedgerRetention:     time.Duration(getInt("LEDGER_RETENTION", 168)) * time.Hour,
		LedgerPruneSchedule: getString("LEDGER_PRUNE_SCHEDULE", "0 0 * * * *"),
	}

	config.DB = DBConfig{
		Host:            os.Getenv("DB_HOST"),
		Port:            getInt("DB_PORT", 5432),
		User:            os.Getenv("DB_USER"),
		Password:        os.Getenv("DB_PASSWORD"),
		Database:        os.Getenv("DB_NAME"),
		SSLMode:         getString("DB_SSL_MODE", "disable"),
		MaxOpenConns:    getInt("DB_MAX_OPEN_CONNS", 10),
		MaxIdleConns:    getInt("DB_MAX_IDLE_CONNS", 5),
		ConnMaxLifetime: getSeconds("DB_CONN_MAX_LIFETIME", 5*time.Minute),
	}

	if config.LogFormat != "text" && config.LogFormat != "json" {
		return nil, fmt.Errorf("LOG_FORMAT must be text or json, got %q", config.LogFormat)
	}

	// The ledger is optional, but a half-configured one is a mistake
	if config.LedgerEnabled() {
		if config.DB.User == "" {
			return nil, fmt.Errorf("DB_USER is required when DB_HOST is set")
		}
		if config.DB.Password == "" {
			return nil, fmt.Errorf("DB_PASSWORD is required when DB_HOST is set")
		}
		if config.DB.Database == "" {
			return nil, fmt.Errorf("DB_NAME is required when DB_HOST is set")
		}
	}

	return config, nil
}

// HasAPIKey reports whether the upstream credential is configured
func (c *Config) HasAPIKey() bool {
	return c.GoogleAPIKey != ""
}

// LedgerEnabled reports whether generation outcomes should be persisted
func (c *Config) LedgerEnabled() bool {
	return c.DB.Host != ""
}

// GetDSN returns the PostgreSQL connection string
func (c *Config) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.DB.Host, c.DB.Port, c.DB.User, c.DB.Password, c.DB.Database, c.DB.SSLMode)
}

func getString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

func getSeconds(key string, fallback time.Duration) time.Duration {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil && v >= 0 {
		return time.Duration(v) * time.Second
	}
	return fallback
}
