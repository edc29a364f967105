// Package config loads application configuration from the environment,
// with a .env file honoured when present.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/example/studytrack/internal/database"
	"github.com/example/studytrack/internal/scheduler"
)

// Config holds everything the application reads from the environment.
type Config struct {
	// DatabasePath is the SQLite file location.
	DatabasePath string
	// ReminderHour is the local hour (0-23) the daily practice reminder
	// fires in watch mode.
	ReminderHour int
	// LogLevel is a zap level string: debug, info, warn, error.
	LogLevel string
}

// Load reads configuration from the environment. A missing .env file is
// not an error; defaults cover everything.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		DatabasePath: database.DefaultPath,
		ReminderHour: scheduler.DefaultReminderHour,
		LogLevel:     "info",
	}

	if path := os.Getenv("STUDYTRACK_DB_PATH"); path != "" {
		cfg.DatabasePath = path
	}
	if hourStr := os.Getenv("STUDYTRACK_REMINDER_HOUR"); hourStr != "" {
		if h, err := strconv.Atoi(hourStr); err == nil && h >= 0 && h <= 23 {
			cfg.ReminderHour = h
		}
	}
	if level := os.Getenv("STUDYTRACK_LOG_LEVEL"); level != "" {
		cfg.LogLevel = level
	}

	return cfg
}
