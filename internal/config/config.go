package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Storage backend names.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	Logger  LoggerConfig
	Auth    AuthConfig
	Media   MediaConfig
	S3      S3Config
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host string
	Port int
}

// StorageConfig selects and tunes the document store backend.
type StorageConfig struct {
	Backend     string // "memory" or "postgres"
	QuotaBytes  int    // memory backend: total byte quota
	MaxDocBytes int    // postgres backend: per-document ceiling
	Database    DatabaseConfig
}

// DatabaseConfig holds database-related configuration.
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	MaxConnections  int
	MinConnections  int
	MaxConnLifetime int // seconds
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// AuthConfig holds the admin credential pair. DemoMode pins the pair to the
// well-known demo credentials; outside demo mode both values must be
// supplied explicitly.
type AuthConfig struct {
	DemoMode      bool
	AdminUsername string
	AdminPassword string
}

// MediaConfig holds upload size ceilings in bytes.
type MediaConfig struct {
	MaxImageBytes int
	MaxVideoBytes int
	MaxModelBytes int
}

// S3Config holds AWS S3 configuration for media asset offload.
type S3Config struct {
	Enabled bool
	Bucket  string
	Region  string
	Prefix  string // Path prefix within bucket (e.g., "media/")
}

// Demo admin credentials, honoured only when AUTH_DEMO_MODE is set. They are
// the fixture pair of the original storefront and must never reach a real
// deployment.
const (
	demoAdminUsername = "admin"
	demoAdminPassword = "admin123"
)

// Load loads configuration from the environment, reading a .env file first
// when one is present.
func Load() (*Config, error) {
	// Missing .env is the normal case outside local development.
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Storage: StorageConfig{
			Backend:     getEnv("STORAGE_BACKEND", BackendPostgres),
			QuotaBytes:  getEnvAsInt("STORAGE_QUOTA_BYTES", 5*1024*1024),
			MaxDocBytes: getEnvAsInt("STORAGE_MAX_DOC_BYTES", 8*1024*1024),
			Database: DatabaseConfig{
				Host:            getEnv("DB_HOST", "localhost"),
				Port:            getEnvAsInt("DB_PORT", 5432),
				User:            getEnv("DB_USER", "postgres"),
				Password:        getEnv("DB_PASSWORD", ""),
				Database:        getEnv("DB_NAME", "luxe"),
				MaxConnections:  getEnvAsInt("DB_MAX_CONNECTIONS", 25),
				MinConnections:  getEnvAsInt("DB_MIN_CONNECTIONS", 5),
				MaxConnLifetime: getEnvAsInt("DB_MAX_CONN_LIFETIME", 300),
			},
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Auth: AuthConfig{
			DemoMode:      getEnvAsBool("AUTH_DEMO_MODE", false),
			AdminUsername: getEnv("ADMIN_USERNAME", ""),
			AdminPassword: getEnv("ADMIN_PASSWORD", ""),
		},
		Media: MediaConfig{
			MaxImageBytes: getEnvAsInt("MEDIA_MAX_IMAGE_BYTES", 10*1024*1024),
			MaxVideoBytes: getEnvAsInt("MEDIA_MAX_VIDEO_BYTES", 5*1024*1024),
			MaxModelBytes: getEnvAsInt("MEDIA_MAX_MODEL_BYTES", 10*1024*1024),
		},
		S3: S3Config{
			Enabled: getEnvAsBool("S3_ENABLED", false),
			Bucket:  getEnv("S3_BUCKET", ""),
			Region:  getEnv("S3_REGION", "us-east-1"),
			Prefix:  getEnv("S3_PREFIX", "media/"),
		},
	}

	if cfg.Auth.DemoMode {
		cfg.Auth.AdminUsername = demoAdminUsername
		cfg.Auth.AdminPassword = demoAdminPassword
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Storage.Backend != BackendMemory && c.Storage.Backend != BackendPostgres {
		return fmt.Errorf("invalid storage backend: %s (must be memory or postgres)", c.Storage.Backend)
	}

	if c.Storage.Backend == BackendPostgres {
		db := c.Storage.Database

		if db.Host == "" {
			return fmt.Errorf("database host is required")
		}

		if db.Port < 1 || db.Port > 65535 {
			return fmt.Errorf("invalid database port: %d", db.Port)
		}

		if db.User == "" {
			return fmt.Errorf("database user is required")
		}

		if db.Database == "" {
			return fmt.Errorf("database name is required")
		}

		if db.MaxConnections < 1 {
			return fmt.Errorf("database max connections must be at least 1")
		}

		if db.MinConnections < 1 {
			return fmt.Errorf("database min connections must be at least 1")
		}

		if db.MinConnections > db.MaxConnections {
			return fmt.Errorf("database min connections cannot exceed max connections")
		}
	}

	if c.Storage.QuotaBytes < 1 {
		return fmt.Errorf("storage quota must be at least 1 byte")
	}

	if !c.Auth.DemoMode {
		if c.Auth.AdminUsername == "" || c.Auth.AdminPassword == "" {
			return fmt.Errorf("admin credentials are required outside demo mode")
		}
	}

	if c.Media.MaxImageBytes < 1 || c.Media.MaxVideoBytes < 1 || c.Media.MaxModelBytes < 1 {
		return fmt.Errorf("media size ceilings must be positive")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	if c.S3.Enabled {
		if c.S3.Bucket == "" {
			return fmt.Errorf("S3 bucket is required when S3 is enabled")
		}
		if c.S3.Region == "" {
			return fmt.Errorf("S3 region is required when S3 is enabled")
		}
	}

	return nil
}

// ConnectionString returns the PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Database,
	)
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value.
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
