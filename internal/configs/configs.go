package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
)

type Config struct {
	AppURL                  string
	DatabaseDSN             string
	RedisAddr               string
	RemindersPendingKey     string
	RemindersPayloadKey     string
	SyncSnapshotKey         string
	SettingsPath            string
	RateLimit               int
	SweepIntervalSeconds    int
	DispatchIntervalSeconds int
	ShutdownTimeoutSeconds  int
}

func Load() Config {
	appHost := getEnv("APP_HOST", "127.0.0.1")
	appPort := getEnv("APP_PORT", "8080")
	redisHost := getEnv("REDIS_HOST", "127.0.0.1")
	redisPort := getEnv("REDIS_PORT", "6379")

	cfg := Config{
		AppURL:                  fmt.Sprintf("%s:%s", appHost, appPort),
		DatabaseDSN:             getEnv("DATABASE_DSN", "todo.db"),
		RedisAddr:               fmt.Sprintf("%s:%s", redisHost, redisPort),
		RemindersPendingKey:     getEnv("REMINDERS_PENDING_KEY", "reminders_pending"),
		RemindersPayloadKey:     getEnv("REMINDERS_PAYLOAD_KEY", "reminders_payload"),
		SyncSnapshotKey:         getEnv("SYNC_SNAPSHOT_KEY", "tasks_snapshot"),
		SettingsPath:            getEnv("SETTINGS_PATH", "settings.yaml"),
		RateLimit:               getEnvAsInt("RATE_LIMIT_PER_MINUTE", 60),
		SweepIntervalSeconds:    getEnvAsInt("EXPIRY_SWEEP_INTERVAL_SECONDS", 30),
		DispatchIntervalSeconds: getEnvAsInt("REMINDER_DISPATCH_INTERVAL_SECONDS", 5),
		ShutdownTimeoutSeconds:  getEnvAsInt("SHUTDOWN_TIMEOUT_SECONDS", 20),
	}

	validate(cfg)
	return cfg
}

func validate(cfg Config) {
	if cfg.AppURL == "" {
		log.Fatal("APP_URL must not be empty (e.g. 127.0.0.1:8080)")
	}
	if cfg.DatabaseDSN == "" {
		log.Fatal("DATABASE_DSN must not be empty")
	}
	if cfg.SettingsPath == "" {
		log.Fatal("SETTINGS_PATH must not be empty")
	}
	if cfg.RateLimit <= 0 {
		log.Fatal("RATE_LIMIT_PER_MINUTE must be greater than 0")
	}
	if cfg.SweepIntervalSeconds <= 0 {
		log.Fatal("EXPIRY_SWEEP_INTERVAL_SECONDS must be greater than 0")
	}
	if cfg.DispatchIntervalSeconds <= 0 {
		log.Fatal("REMINDER_DISPATCH_INTERVAL_SECONDS must be greater than 0")
	}
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			log.Fatalf("invalid integer value for %s", key)
		}
		return i
	}
	return defaultVal
}
