package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Clippings
		Notebook
		Database
		Sync
		Tasks
		Global
	}

	HTTP struct {
		Port int32
		Host string
	}
	Clippings struct {
		Path string // path to "My Clippings.txt"
	}
	Notebook struct {
		Dir  string // Zim notebook directory for page exports
		Root string // root namespace for clippings pages
	}
	Database struct {
		Path string
	}
	Sync struct {
		Enabled  bool
		Schedule string // cron format: "0 * * * *" = hourly
	}
	Tasks struct {
		Workers         int
		MaxAttempts     int
		Backoff         time.Duration
		Timeout         time.Duration
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
		Retention       time.Duration
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8177)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("clippings_path", "")
	v.SetDefault("notebook_dir", "")
	v.SetDefault("notebook_root", "Kindle")
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("sync_enabled", false)
	v.SetDefault("sync_schedule", "0 * * * *") // Hourly at :00
	v.SetDefault("shutdown_timeout_in_seconds", 2)

	// Task queue defaults
	v.SetDefault("task_workers", 1)
	v.SetDefault("task_max_attempts", 3)
	v.SetDefault("task_backoff", "30s")
	v.SetDefault("task_timeout", "5m")
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")
	v.SetDefault("task_retention", "24h")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Clippings: Clippings{
			Path: v.GetString("CLIPPINGS_PATH"),
		},
		Notebook: Notebook{
			Dir:  v.GetString("NOTEBOOK_DIR"),
			Root: v.GetString("NOTEBOOK_ROOT"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Sync: Sync{
			Enabled:  v.GetBool("SYNC_ENABLED"),
			Schedule: v.GetString("SYNC_SCHEDULE"),
		},
		Tasks: Tasks{
			Workers:         v.GetInt("TASK_WORKERS"),
			MaxAttempts:     v.GetInt("TASK_MAX_ATTEMPTS"),
			Backoff:         v.GetDuration("TASK_BACKOFF"),
			Timeout:         v.GetDuration("TASK_TIMEOUT"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
			Retention:       v.GetDuration("TASK_RETENTION"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
	}
}
