package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Storage drivers
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type Config struct {
	Port        string
	Environment string
	CORSOrigins string
	LogDir      string

	// Storage
	StorageDriver     string
	MongoURI          string
	MongoDatabase     string
	MongoTransactions bool // Requires a replica set
	DatabaseURL       string
	TablePrefix       string

	// Auth: JWKSURL wins over JWTSecret when both are set
	JWTSecret string
	JWKSURL   string

	// Rate limiting: RateLimitRequests per RateLimitWindow, 0 disables
	RateLimitRequests int
	RateLimitWindow   time.Duration
	RateLimitBurst    int
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")

	return &Config{
		Port:        getEnv("PORT", "5000"),
		Environment: env,
		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:3000"),
		LogDir:      getEnv("LOG_DIR", ""),

		StorageDriver:     strings.ToLower(getEnv("STORAGE_DRIVER", DriverMongo)),
		MongoURI:          getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:     getEnv("MONGO_DATABASE", "cipherstudio"),
		MongoTransactions: getBool("MONGO_TRANSACTIONS", false),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		TablePrefix:       getTablePrefix(env),

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWKSURL:   getEnv("JWKS_URL", ""),

		RateLimitRequests: getInt("RATE_LIMIT_REQUESTS", 300),
		RateLimitWindow:   getDuration("RATE_LIMIT_WINDOW", time.Minute),
		RateLimitBurst:    getInt("RATE_LIMIT_BURST", 50),
	}
}

// IsDev reports whether the server runs in the dev environment
func (c *Config) IsDev() bool {
	return c.Environment == "dev"
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	// Allow manual override via TABLE_PREFIX env var
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}

	// Auto-generate based on environment
	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return n
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	if b, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return b
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil && d > 0 {
		return d
	}
	return defaultValue
}
