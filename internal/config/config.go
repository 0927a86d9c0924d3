package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port string

	// Database configuration
	DBType            string // sqlite, mysql, postgres, sqlserver
	DBHost            string
	DBPort            string
	DBDatabase        string
	DBUser            string
	DBPassword        string
	DBConnectionLimit int

	// Activity log configuration
	ActivityLimit int
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:              getEnv("PORT", "3000"),
		DBType:            getEnv("DB_TYPE", "sqlite"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "3306"),
		DBDatabase:        getEnv("DB_DATABASE", ""),
		DBUser:            getEnv("DB_USER", ""),
		DBPassword:        getEnv("DB_PASSWORD", ""),
		DBConnectionLimit: getEnvAsInt("DB_CONNECTION_LIMIT", 5),
		ActivityLimit:     getEnvAsInt("ACTIVITY_LIMIT", 100),
	}

	// The default deployment is an in-memory sqlite store, reseeded on
	// every restart. Server databases require explicit configuration.
	if cfg.DBType == "sqlite" {
		if cfg.DBDatabase == "" {
			cfg.DBDatabase = ":memory:"
		}
	} else {
		if cfg.DBDatabase == "" {
			return nil, fmt.Errorf("DB_DATABASE is required for DB_TYPE %s", cfg.DBType)
		}
		if cfg.DBUser == "" {
			return nil, fmt.Errorf("DB_USER is required for DB_TYPE %s", cfg.DBType)
		}
	}

	if cfg.ActivityLimit <= 0 {
		return nil, fmt.Errorf("ACTIVITY_LIMIT must be positive")
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
