// Package config provides configuration for the relay bot.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the relay bot configuration.
type Config struct {
	// Telegram
	BotToken string

	// Completion API
	CompletionURL   string
	CompletionToken string
	Model           string

	// Database
	DatabaseURL string

	// Admin HTTP server
	HTTPPort int

	// Timeouts
	CompletionTimeout time.Duration

	// Logging
	LogLevel string
}

// Load loads configuration from environment variables.
func Load() *Config {
	cfg := &Config{
		BotToken:          getEnv("BOT_TOKEN", ""),
		CompletionURL:     getEnv("API_URL", "https://api.mistral.ai/v1/chat/completions"),
		CompletionToken:   getEnv("AUTH_TOKEN", ""),
		Model:             getEnv("MODEL", "mistral-small-latest"),
		DatabaseURL:       getEnv("DATABASE_URL", "file:relaybot.db?cache=shared&mode=rwc"),
		HTTPPort:          getEnvInt("HTTP_PORT", 8080),
		CompletionTimeout: time.Duration(getEnvInt("COMPLETION_TIMEOUT_MS", 15000)) * time.Millisecond,
		LogLevel:          getEnv("LOG_LEVEL", "info"),
	}
	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}
