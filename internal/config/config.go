package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Port string
	Env  string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Quote provider
	QuoteBaseURL string
	FetchTimeout time.Duration

	// Refresh orchestration
	BatchTimeout    time.Duration
	RefreshInterval time.Duration

	// Remote aggregation endpoint; empty means aggregate in-process.
	AggregatorURL    string
	AggregatorAPIKey string
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// Get values from environment variables with defaults
	config := &Config{
		// Server
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		// Database
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "carteira"),
		DBPassword: getEnv("DB_PASSWORD", "carteira"),
		DBName:     getEnv("DB_NAME", "carteira"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		// Quote provider
		QuoteBaseURL: getEnv("QUOTE_BASE_URL", "https://query1.finance.yahoo.com"),

		// Remote aggregator
		AggregatorURL:    getEnv("AGGREGATOR_URL", ""),
		AggregatorAPIKey: getEnv("AGGREGATOR_API_KEY", ""),
	}

	config.FetchTimeout = getDuration("FETCH_TIMEOUT", 8*time.Second)
	config.BatchTimeout = getDuration("BATCH_TIMEOUT", 10*time.Second)
	config.RefreshInterval = getDuration("REFRESH_INTERVAL", 5*time.Minute)

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

// getDuration parses a duration environment variable, falling back to a
// default on absence or parse error.
func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		log.Printf("Warning: invalid %s value '%s', falling back to %v\n", key, value, defaultValue)
		return defaultValue
	}
	return d
}
