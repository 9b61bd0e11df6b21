package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// StorageConfig holds S3-compatible object storage settings (MinIO, AWS S3, ...).
// Collected static assets are uploaded into the configured bucket.
type StorageConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	Port         string
	SecretKey    string
	Debug        bool
	AllowedHosts []string
	TimeZone     string
	StaticDir    string
	Database     DatabaseConfig
	Storage      StorageConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		Port:         getEnv("PORT", "8080"), // default only for non-sensitive value
		SecretKey:    getEnv("SECRET_KEY", ""),
		Debug:        getEnvBool("DEBUG", false),
		AllowedHosts: splitHosts(getEnv("ALLOWED_HOSTS", "")),
		TimeZone:     getEnv("TIME_ZONE", "UTC"),
		StaticDir:    getEnv("STATIC_DIR", "./static"),
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		Storage: StorageConfig{
			Endpoint:  getEnv("STORAGE_ENDPOINT", ""),
			AccessKey: getEnv("STORAGE_ACCESS_KEY", ""),
			SecretKey: getEnv("STORAGE_SECRET_KEY", ""),
			Bucket:    getEnv("STORAGE_BUCKET", ""),
			UseSSL:    getEnvBool("STORAGE_USE_SSL", false),
		},
	}
}

// Validate enforces production-safety requirements.
// With DEBUG enabled the scaffold stays permissive for local setup; outside
// debug a secret key and an explicit allowed-hosts list are mandatory.
func (c *AppConfig) Validate() error {
	if c.Debug {
		return nil
	}
	if c.SecretKey == "" {
		return fmt.Errorf("SECRET_KEY must be set when DEBUG is disabled")
	}
	if len(c.AllowedHosts) == 0 {
		return fmt.Errorf("ALLOWED_HOSTS must be set when DEBUG is disabled")
	}
	return nil
}

// splitHosts parses a comma-separated host list, trimming whitespace and
// dropping empty entries. Returns nil for an empty input.
func splitHosts(s string) []string {
	if s == "" {
		return nil
	}
	var hosts []string
	for _, h := range strings.Split(s, ",") {
		h = strings.TrimSpace(h)
		if h != "" {
			hosts = append(hosts, h)
		}
	}
	return hosts
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
