package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	DB       DBConfig
	Server   ServerConfig
	Exchange ExchangeConfig
	Media    MediaConfig
}

// DBType represents database type
type DBType string

const (
	DBTypePostgreSQL DBType = "postgres"
	DBTypeSQLite     DBType = "sqlite"
	DBTypeMemory     DBType = "memory"
)

// DBConfig holds database configuration
type DBConfig struct {
	Type     DBType
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	// Path is the database file for the sqlite type
	Path string
}

// ExchangeConfig holds settings for the external currency-rate API
type ExchangeConfig struct {
	BaseURL string
	Timeout time.Duration
}

// MediaConfig holds settings for uploaded place images
type MediaConfig struct {
	Dir string
}

// DSN returns the database connection string
func (c DBConfig) DSN() string {
	switch c.Type {
	case DBTypeMemory:
		// SQLite in-memory database
		if c.Name != "" && c.Name != "placebook" {
			return fmt.Sprintf("file:%s?mode=memory&cache=shared", c.Name)
		}
		return "file::memory:?cache=shared"
	case DBTypeSQLite:
		return fmt.Sprintf("file:%s?_fk=1", c.Path)
	}
	// PostgreSQL connection string
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode,
	)
}

// IsSQLite returns true if using a SQLite-backed database (file or memory)
func (c DBConfig) IsSQLite() bool {
	return c.Type == DBTypeSQLite || c.Type == DBTypeMemory
}

// IsMemory returns true if using an in-memory database
func (c DBConfig) IsMemory() bool {
	return c.Type == DBTypeMemory
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	_ = godotenv.Load()

	dbType := DBType(getEnv("DB_TYPE", "sqlite"))
	if dbType != DBTypePostgreSQL && dbType != DBTypeSQLite && dbType != DBTypeMemory {
		dbType = DBTypeSQLite
	}

	config := &Config{
		DB: DBConfig{
			Type:     dbType,
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "placebook"),
			Password: getEnv("DB_PASSWORD", "placebook_password"),
			Name:     getEnv("DB_NAME", "placebook"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			Path:     getEnv("DB_PATH", "places.db"),
		},
		Server: ServerConfig{
			Port: getEnv("APP_PORT", "8080"),
		},
		Exchange: ExchangeConfig{
			BaseURL: getEnv("EXCHANGE_BASE_URL", "https://mindicador.cl/api"),
			Timeout: time.Duration(getEnvAsInt("EXCHANGE_TIMEOUT_SECONDS", 10)) * time.Second,
		},
		Media: MediaConfig{
			Dir: getEnv("MEDIA_DIR", "media"),
		},
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
