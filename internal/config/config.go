package config

import (
	"os"
	"strconv"
	"time"

	"carebook/internal/cache"
	"carebook/internal/database"
	"carebook/internal/external"
	"carebook/internal/messaging"
	"carebook/internal/search"
)

// Config holds the application configuration
type Config struct {
	Port           string
	GinMode        string
	LogLevel       string
	LogFormat      string
	RequestTimeout time.Duration

	// Base URL the checkout success/cancel redirects point back to
	AppURL string

	// Shared secret with the identity gateway for verifying bearer tokens
	AuthSecret string

	// Directory the consumers write generated invoices into
	InvoiceDir string

	Database      database.Config
	NATS          messaging.Config
	Valkey        cache.Config
	Elasticsearch search.Config
	Checkout      external.CheckoutConfig
}

// Load reads the configuration from environment variables
func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", "8080"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "json"),
		RequestTimeout: time.Duration(getEnvInt("REQUEST_TIMEOUT_SEC", 30)) * time.Second,

		AppURL:     getEnv("APP_URL", "http://localhost:3000"),
		AuthSecret: getEnv("AUTH_TOKEN_SECRET", ""),
		InvoiceDir: getEnv("INVOICE_DIR", "./invoices"),

		Database: database.Config{
			Host:               getEnv("DB_HOST", "localhost"),
			Port:               getEnvInt("DB_PORT", 5432),
			User:               getEnv("DB_USER", "carebook"),
			Password:           getEnv("DB_PASSWORD", "carebook123"),
			DBName:             getEnv("DB_NAME", "carebook"),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 50),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 10),
			ConnMaxLifetimeMin: getEnvInt("DB_CONN_MAX_LIFETIME_MIN", 5),
			ConnMaxIdleTimeMin: getEnvInt("DB_CONN_MAX_IDLE_TIME_MIN", 1),
		},

		NATS: messaging.Config{
			URL:       getEnv("NATS_URL", "nats://localhost:4222"),
			ClusterID: getEnv("NATS_CLUSTER_ID", "carebook"),
			ClientID:  getEnv("NATS_CLIENT_ID", "carebook-api"),
		},

		Valkey: cache.Config{
			Addr:     getEnv("VALKEY_ADDR", "localhost:6379"),
			Password: getEnv("VALKEY_PASSWORD", ""),
			TTLSec:   getEnvInt("VALKEY_TTL_SEC", 60),
		},

		Elasticsearch: search.Config{
			URL:        getEnv("ELASTICSEARCH_URL", "http://localhost:9200"),
			Username:   getEnv("ELASTICSEARCH_USERNAME", ""),
			Password:   getEnv("ELASTICSEARCH_PASSWORD", ""),
			Index:      getEnv("ELASTICSEARCH_INDEX", "services"),
			MaxRetries: getEnvInt("ELASTICSEARCH_MAX_RETRIES", 3),
		},

		Checkout: external.CheckoutConfig{
			BaseURL:       getEnv("CHECKOUT_BASE_URL", "https://checkout.example.com"),
			APIKey:        getEnv("CHECKOUT_API_KEY", ""),
			WebhookSecret: getEnv("CHECKOUT_WEBHOOK_SECRET", ""),
			Timeout:       time.Duration(getEnvInt("CHECKOUT_TIMEOUT_SEC", 10)) * time.Second,
		},
	}
}

// getEnv returns the environment variable value or a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns the integer value of an environment variable
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
