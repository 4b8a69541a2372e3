package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Database configuration
	Database DatabaseConfig

	// Shopify catalog configuration
	Shopify ShopifyConfig

	// Object storage configuration
	Storage StorageConfig

	// Auth gate configuration
	Auth AuthConfig

	// Scheduled sync configuration
	Sync SyncConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL          string // full connection string, wins over the discrete fields
	Host         string
	Port         string
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
}

// ShopifyConfig holds the catalog the importer reads from
type ShopifyConfig struct {
	StoreDomain  string
	APIVersion   string
	CollectionID string
	AccessToken  string
	PageSize     int
	Timeout      time.Duration
}

// StorageConfig holds upload settings and the active backend
type StorageConfig struct {
	Backend      string // "supabase" or "sftp"
	MaxImageSize int64  // in bytes
	MaxVideoSize int64  // in bytes
	Supabase     SupabaseStorageConfig
	SFTP         SFTPStorageConfig
}

// SupabaseStorageConfig holds Supabase Storage REST settings
type SupabaseStorageConfig struct {
	URL        string
	ServiceKey string
}

// SFTPStorageConfig holds settings for the SFTP backend
type SFTPStorageConfig struct {
	Host                  string
	Port                  int
	User                  string
	Password              string
	RemoteDir             string
	PublicBaseURL         string
	KnownHostsFile        string
	InsecureIgnoreHostKey bool
}

// AuthMode selects how the auth gate checks callers
type AuthMode string

const (
	AuthModeNone   AuthMode = "none"
	AuthModeHeader AuthMode = "header"
	AuthModeToken  AuthMode = "token"
)

// AuthConfig holds auth gate settings
type AuthConfig struct {
	Mode      AuthMode
	TokenHash string // bcrypt hash of the admin bearer token
}

// SyncConfig holds the scheduled import settings
type SyncConfig struct {
	Enabled  bool
	Schedule string // 5-field cron
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 300*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Database: DatabaseConfig{
			URL:          getEnv("DATABASE_URL", ""),
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", "postgres"),
			Name:         getEnv("DB_NAME", "workshops"),
			SSLMode:      getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns: getIntEnv("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns: getIntEnv("DB_MAX_IDLE_CONNS", 5),
			MaxLifetime:  getDurationEnv("DB_MAX_LIFETIME", 5*time.Minute),
		},
		Shopify: ShopifyConfig{
			StoreDomain:  getEnv("SHOPIFY_STORE", "mainfabric.myshopify.com"),
			APIVersion:   getEnv("SHOPIFY_API_VERSION", "2024-01"),
			CollectionID: getEnv("SHOPIFY_WORKSHOP_COLLECTION_ID", "503854825767"),
			AccessToken:  getEnv("SHOPIFY_ADMIN_API_TOKEN", ""),
			PageSize:     getIntEnv("SHOPIFY_PAGE_SIZE", 250),
			Timeout:      getDurationEnv("SHOPIFY_TIMEOUT", 30*time.Second),
		},
		Storage: StorageConfig{
			Backend:      getEnv("STORAGE_BACKEND", "supabase"),
			MaxImageSize: getInt64Env("MAX_IMAGE_SIZE", 5*1024*1024),   // 5MB
			MaxVideoSize: getInt64Env("MAX_VIDEO_SIZE", 100*1024*1024), // 100MB
			Supabase: SupabaseStorageConfig{
				URL:        getEnv("SUPABASE_URL", ""),
				ServiceKey: getEnv("SUPABASE_SERVICE_ROLE_KEY", ""),
			},
			SFTP: SFTPStorageConfig{
				Host:                  getEnv("SFTP_HOST", ""),
				Port:                  getIntEnv("SFTP_PORT", 22),
				User:                  getEnv("SFTP_USER", ""),
				Password:              getEnv("SFTP_PASS", ""),
				RemoteDir:             getEnv("SFTP_REMOTE_DIR", "/"),
				PublicBaseURL:         getEnv("SFTP_PUBLIC_BASE_URL", ""),
				KnownHostsFile:        getEnv("SFTP_KNOWN_HOSTS", ""),
				InsecureIgnoreHostKey: getBoolEnv("SFTP_INSECURE_IGNORE_HOST_KEY", false),
			},
		},
		Auth: AuthConfig{
			Mode:      AuthMode(getEnv("AUTH_MODE", string(AuthModeHeader))),
			TokenHash: getEnv("AUTH_TOKEN_HASH", ""),
		},
		Sync: SyncConfig{
			Enabled:  getBoolEnv("SYNC_ENABLED", false),
			Schedule: getEnv("SYNC_SCHEDULE", "0 */6 * * *"),
		},
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Database.URL == "" {
		if c.Database.Host == "" {
			return fmt.Errorf("DB_HOST is required")
		}
		if c.Database.Name == "" {
			return fmt.Errorf("DB_NAME is required")
		}
	}
	if c.Shopify.PageSize <= 0 || c.Shopify.PageSize > 250 {
		return fmt.Errorf("SHOPIFY_PAGE_SIZE must be between 1 and 250")
	}
	switch c.Auth.Mode {
	case AuthModeNone, AuthModeHeader:
	case AuthModeToken:
		if c.Auth.TokenHash == "" {
			return fmt.Errorf("AUTH_TOKEN_HASH is required when AUTH_MODE=token")
		}
	default:
		return fmt.Errorf("AUTH_MODE must be one of: none, header, token")
	}
	switch c.Storage.Backend {
	case "supabase", "sftp":
	default:
		return fmt.Errorf("STORAGE_BACKEND must be one of: supabase, sftp")
	}
	return nil
}

// GetDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) GetDSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getInt64Env(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
