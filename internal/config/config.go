package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/computervirtualservices/neurotrade/models"
)

// Load initializes configuration from environment variables.
func Load() (*models.Config, error) {
	// Load environment variables from .env file if present
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, relying on actual environment variables")
	}

	cfg := &models.Config{
		Pair:              getEnvWithDefault("PAIR", "BTC/USD"),
		IntervalMinutes:   getEnvIntWithDefault("INTERVAL_MINUTES", 60),
		CandleFile:        getEnvWithDefault("CANDLE_FILE", "candles.csv"),
		Regressor:         getEnvBoolWithDefault("REGRESSOR", false),
		CrossValidate:     getEnvBoolWithDefault("CROSS_VALIDATE", true),
		MomentumThreshold: getEnvFloatWithDefault("MOMENTUM_THRESHOLD", 5.0),
		TrainRetries:      getEnvIntWithDefault("TRAIN_RETRIES", 3),
		LogLevel:          getEnvWithDefault("LOG_LEVEL", "info"),
	}

	return cfg, nil
}

// Helper functions for environment variable handling
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatWithDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBoolWithDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
