package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port      string
	DBPath    string
	SecretKey string
	TokenTTL  time.Duration

	TelegramToken   string
	WatcherInterval time.Duration
	ReminderWindow  time.Duration
}

// Load reads the optional .env file and the environment. An empty
// TelegramToken disables the bot, the notifier, and the watcher; the API
// still runs.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:            getEnv("PORT", "8000"),
		DBPath:          getEnv("DB_PATH", filepath.Join("data", "plantracker.db")),
		SecretKey:       getEnv("SECRET_KEY", "change_me_in_production"),
		TokenTTL:        getDurationEnv("ACCESS_TOKEN_TTL", 30*time.Minute),
		TelegramToken:   os.Getenv("TELEGRAM_BOT_TOKEN"),
		WatcherInterval: getDurationEnv("WATCHER_INTERVAL", time.Minute),
		ReminderWindow:  getDurationEnv("REMINDER_WINDOW", 10*time.Minute),
	}
}

func getEnv(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}
