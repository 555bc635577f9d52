// ABOUTME: Configuration management for the console with environment variable support
// ABOUTME: Defines configuration structures for the backend client, caches and storage

package config

import (
	"errors"
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	// Backend contains classifier backend client configuration
	Backend BackendConfig

	// Cache contains transient cache configuration
	Cache CacheConfig

	// Store contains durable storage configuration
	Store StoreConfig

	// LogLevel is the logrus level name (debug, info, warn, error)
	LogLevel string

	// UILang is the language used for taxonomy labels and sorting
	UILang string
}

// BackendConfig holds classifier backend client configuration
type BackendConfig struct {
	// URL is the backend base URL
	URL string

	// TimeoutSeconds bounds every HTTP request
	TimeoutSeconds int

	// RateLimit bounds outgoing requests per second; 0 disables limiting
	RateLimit float64
}

// CacheConfig holds transient cache backend configuration
type CacheConfig struct {
	// Type specifies the cache backend (redis/memory)
	Type string

	// Redis contains Redis-specific configuration
	Redis RedisConfig
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// Address is the Redis server address
	Address string

	// Password is the Redis authentication password
	Password string

	// DB is the Redis database number
	DB int
}

// StoreConfig holds durable key-value storage configuration
type StoreConfig struct {
	// Path is the SQLite file path. An empty path disables durable
	// storage: view state and session persistence are skipped.
	Path string
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Backend: BackendConfig{
			URL:            getEnvOrDefault("LUMEN_BACKEND_URL", "http://localhost:8000"),
			TimeoutSeconds: getEnvAsIntOrDefault("LUMEN_HTTP_TIMEOUT", 30),
			RateLimit:      getEnvAsFloatOrDefault("LUMEN_HTTP_RATE_LIMIT", 10),
		},
		Cache: CacheConfig{
			Type: getEnvOrDefault("LUMEN_CACHE_TYPE", "memory"),
			Redis: RedisConfig{
				Address:  getEnvOrDefault("REDIS_ADDRESS", "localhost:6379"),
				Password: getEnvOrDefault("REDIS_PASSWORD", ""),
				DB:       getEnvAsIntOrDefault("REDIS_DB", 0),
			},
		},
		Store: StoreConfig{
			Path: getEnvOrDefault("LUMEN_STORE_PATH", "lumen.db"),
		},
		LogLevel: getEnvOrDefault("LOG_LEVEL", "info"),
		UILang:   getEnvOrDefault("LUMEN_LANG", "en"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the environment variable as int or a default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsFloatOrDefault returns the environment variable as float64 or a default
func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Backend.URL == "" {
		return errors.New("backend URL cannot be empty")
	}

	if c.Backend.TimeoutSeconds < 1 {
		return errors.New("http timeout must be at least 1 second")
	}

	if c.Cache.Type != "redis" && c.Cache.Type != "memory" {
		return errors.New("cache type must be 'redis' or 'memory'")
	}

	if c.Cache.Type == "redis" && c.Cache.Redis.Address == "" {
		return errors.New("redis address cannot be empty when using redis cache")
	}

	return nil
}
