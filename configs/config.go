package config

import (
	"os"
	"strconv"
)

// Config holds the application configuration
type Config struct {
	Port                 string
	APIKey               string
	Environment          string
	AlertSensitivity     float64
	EfficiencyThreshold  float64
	MaxProductionRecords int
	MaxSupplierRecords   int
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Port:                 getEnv("PORT", "8080"),
		APIKey:               getEnv("API_KEY", "default_secret_key"),
		Environment:          getEnv("ENVIRONMENT", "development"),
		AlertSensitivity:     getEnvFloat("ALERT_SENSITIVITY", 1.5),
		EfficiencyThreshold:  getEnvFloat("EFFICIENCY_THRESHOLD", 75.0),
		MaxProductionRecords: getEnvInt("MAX_PRODUCTION_RECORDS", 100),
		MaxSupplierRecords:   getEnvInt("MAX_SUPPLIER_RECORDS", 50),
	}
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvFloat gets a float environment variable with a default value
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
