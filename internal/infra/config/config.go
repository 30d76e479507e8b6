package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// AppConfig holds all configuration for the application
type AppConfig struct {
	TelegramToken         string
	DatabaseURL           string
	OwnerTelegramID       int64 // the single user this tracker serves
	LogLevel              string
	Environment           string
	CronSpecReminderCheck string // how often due reminders are dispatched
	ReminderListLimit     int    // cap for the reminders listing
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// Attempt to load .env file. Errors are ignored if the file doesn't exist.
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{}
	var err error

	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is not set")
	}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	ownerIDStr := os.Getenv("OWNER_TELEGRAM_ID")
	if ownerIDStr == "" {
		return nil, fmt.Errorf("OWNER_TELEGRAM_ID is not set")
	}
	cfg.OwnerTelegramID, err = strconv.ParseInt(ownerIDStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid OWNER_TELEGRAM_ID: %w", err)
	}

	cfg.LogLevel = strings.ToLower(os.Getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info" // Default log level
	}

	cfg.Environment = strings.ToLower(os.Getenv("ENVIRONMENT"))
	if cfg.Environment == "" {
		cfg.Environment = "development" // Default environment
	}

	cfg.CronSpecReminderCheck = os.Getenv("CRON_SPEC_REMINDER_CHECK")
	if cfg.CronSpecReminderCheck == "" {
		cfg.CronSpecReminderCheck = "0 9 * * *" // Default: 9 AM daily
	}

	limitStr := os.Getenv("REMINDER_LIST_LIMIT")
	if limitStr == "" {
		cfg.ReminderListLimit = 10
	} else {
		cfg.ReminderListLimit, err = strconv.Atoi(limitStr)
		if err != nil || cfg.ReminderListLimit <= 0 {
			return nil, fmt.Errorf("invalid REMINDER_LIST_LIMIT: %q", limitStr)
		}
	}

	return cfg, nil
}
