package common

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Config holds all application configuration
type Config struct {
	LogLevel  string
	LogFormat string
	SheetName string
	PDFPages  int
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		LogLevel:  getEnv("CARTERA_LOG_LEVEL", "info"),
		LogFormat: getEnv("CARTERA_LOG_FORMAT", "json"),
		SheetName: getEnv("CARTERA_SHEET_NAME", "Procesado"),
		PDFPages:  getEnvAsInt("CARTERA_PDF_PAGES", 2),
	}
}

// SlogLevel translates the configured level name for slog handlers.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
