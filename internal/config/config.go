package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// BulkMode controls whether bulk selection operations are persisted through the
// treasury API or only applied to the client-side view.
type BulkMode string

const (
	// BulkModeLocal mutates only the client view, matching the historical
	// screen behavior where bulk edits vanished on the next reload.
	BulkModeLocal BulkMode = "local"
	// BulkModePersist routes every selected row through the same PATCH/DELETE
	// calls as single-item edits, with partial-failure reporting.
	BulkModePersist BulkMode = "persist"
)

// Config holds application configuration
type Config struct {
	// Server
	Port string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Treasury API client
	APIBaseURL     string
	CompanyID      string
	RequestTimeout time.Duration

	// Screen behavior
	ToastDuration time.Duration
	BulkMode      BulkMode
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		// Server
		Port: getEnv("PORT", "8080"),

		// Database
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "tresoria"),
		DBPassword: getEnv("DB_PASSWORD", "tresoria"),
		DBName:     getEnv("DB_NAME", "tresoria"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		// Client: the company id scopes every record and is threaded through
		// the screen boundary instead of being baked into request bodies.
		APIBaseURL: getEnv("API_BASE_URL", "http://localhost:8080"),
		CompanyID:  getEnv("COMPANY_ID", "00000000-0000-0000-0000-000000000001"),
	}

	timeout, err := time.ParseDuration(getEnv("REQUEST_TIMEOUT", "30s"))
	if err != nil {
		log.Printf("Warning: invalid REQUEST_TIMEOUT value, falling back to 30s\n")
		timeout = 30 * time.Second
	}
	config.RequestTimeout = timeout

	toast, err := time.ParseDuration(getEnv("TOAST_DURATION", "2500ms"))
	if err != nil {
		log.Printf("Warning: invalid TOAST_DURATION value, falling back to 2.5s\n")
		toast = 2500 * time.Millisecond
	}
	config.ToastDuration = toast

	switch mode := BulkMode(getEnv("BULK_MODE", string(BulkModeLocal))); mode {
	case BulkModeLocal, BulkModePersist:
		config.BulkMode = mode
	default:
		log.Printf("Warning: invalid BULK_MODE value '%s', falling back to local\n", mode)
		config.BulkMode = BulkModeLocal
	}

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
