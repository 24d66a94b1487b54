// Package config loads application configuration from the environment. A
// .env file in the working directory is honored when present.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the application needs at startup.
type Config struct {
	// LocalDBPath is the JSON file backing the local transaction cache.
	LocalDBPath string

	// SpreadsheetID identifies the Google Sheets spreadsheet acting as the
	// remote store. Empty means no remote: the app runs local-only.
	SpreadsheetID string

	// SheetName is the tab holding the transaction table.
	SheetName string

	// CredentialsFile is an optional service-account JSON file for Sheets;
	// empty falls back to application default credentials.
	CredentialsFile string

	// SyncTimeout bounds one reconciliation run.
	SyncTimeout time.Duration

	// TelegramBotToken and TelegramChatID enable transaction notifications
	// when both are set.
	TelegramBotToken string
	TelegramChatID   string
}

// Load reads configuration from the environment, applying defaults.
func Load() (Config, error) {
	// Missing .env is fine; explicit environment variables still apply.
	_ = godotenv.Load()

	cfg := Config{
		LocalDBPath:      getenv("CASHBOOK_DB_PATH", defaultDBPath()),
		SpreadsheetID:    os.Getenv("CASHBOOK_SPREADSHEET_ID"),
		SheetName:        getenv("CASHBOOK_SHEET_NAME", "Transactions"),
		CredentialsFile:  os.Getenv("CASHBOOK_CREDENTIALS_FILE"),
		SyncTimeout:      2 * time.Minute,
		TelegramBotToken: os.Getenv("CASHBOOK_TELEGRAM_BOT_TOKEN"),
		TelegramChatID:   os.Getenv("CASHBOOK_TELEGRAM_CHAT_ID"),
	}

	if raw := os.Getenv("CASHBOOK_SYNC_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, fmt.Errorf("invalid CASHBOOK_SYNC_TIMEOUT %q: %w", raw, err)
		}
		cfg.SyncTimeout = d
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "cashbook.json"
	}
	return home + "/.cashbook/cashbook.json"
}
