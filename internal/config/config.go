package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Config holds the configuration for the application.
type Config struct {
	DataDir       string
	DatabasePath  string
	NumberOfWeeks int
	DefaultUserID string

	// Telegram Config (optional for the CLI, required for the bot)
	TelegramBotToken    string
	TelegramWebhookURL  string
	TelegramAllowUserID int64
}

// NewFromEnv creates a new Config object from environment variables.
func NewFromEnv() (*Config, error) {
	dataDir := os.Getenv("MENU_DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}

	dbPath := os.Getenv("MENU_DB_PATH")
	if dbPath == "" {
		dbPath = filepath.Join(dataDir, "metrics.db")
	}

	// The generator trusts this value, so the [1,4] bound is enforced here.
	weeks := 4
	if v := os.Getenv("MENU_PLAN_WEEKS"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("MENU_PLAN_WEEKS must be an integer, got %q", v)
		}
		if parsed < 1 || parsed > 4 {
			return nil, fmt.Errorf("MENU_PLAN_WEEKS must be between 1 and 4, got %d", parsed)
		}
		weeks = parsed
	}

	userID := os.Getenv("MENU_USER_ID")
	if userID == "" {
		userID = "famille"
	}

	var telegramAllowUserID int64
	if v := os.Getenv("TELEGRAM_ALLOW_USER_ID"); v != "" {
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("TELEGRAM_ALLOW_USER_ID must be an integer, got %q", v)
		}
		telegramAllowUserID = parsed
	}

	return &Config{
		DataDir:             dataDir,
		DatabasePath:        dbPath,
		NumberOfWeeks:       weeks,
		DefaultUserID:       userID,
		TelegramBotToken:    os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramWebhookURL:  os.Getenv("TELEGRAM_WEBHOOK_URL"),
		TelegramAllowUserID: telegramAllowUserID,
	}, nil
}
