package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		Database
		Progress
		Session
		Seed
		Tasks
		Backup
		Global
	}

	Database struct {
		Path string
	}
	Progress struct {
		Path      string
		BackupDir string
	}
	Session struct {
		// WeakAccuracyThreshold adds an accuracy criterion to the Revise
		// Weak queue: words seen at least once with accuracy below the
		// threshold qualify alongside words whose last grade was wrong.
		// 0 disables it, leaving last-grade-wrong as the sole rule.
		WeakAccuracyThreshold float64
	}
	Seed struct {
		GroupSize int // chunk size when a source has no explicit group markers
	}
	Tasks struct {
		Enabled           bool
		Workers           int
		MaxRetries        int
		RetryDelay        time.Duration
		TaskTimeout       time.Duration
		ReleaseAfter      time.Duration
		CleanupInterval   time.Duration
		RetentionDuration time.Duration
	}
	Backup struct {
		Enabled  bool
		Schedule string // Cron format: "0 * * * *" = hourly
		Keep     int    // Number of rotated backups to retain
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.SetEnvPrefix("vocabulator")
	v.AutomaticEnv()
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("progress_path", DefaultProgressPath)
	v.SetDefault("progress_backup_dir", "./backups")
	v.SetDefault("weak_accuracy_threshold", 0.0)
	v.SetDefault("seed_group_size", 30)
	v.SetDefault("shutdown_timeout_in_seconds", 5)

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("task_workers", 1)
	v.SetDefault("task_max_retries", 3)
	v.SetDefault("task_retry_delay", "30s")
	v.SetDefault("task_timeout", "1m")
	v.SetDefault("task_release_after", "5m")
	v.SetDefault("task_cleanup_interval", "1h")
	v.SetDefault("task_retention_duration", "168h")

	// Backup defaults
	v.SetDefault("backup_enabled", true)
	v.SetDefault("backup_schedule", "0 * * * *") // Hourly at :00
	v.SetDefault("backup_keep", 5)

	return &Config{
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Progress: Progress{
			Path:      v.GetString("PROGRESS_PATH"),
			BackupDir: v.GetString("PROGRESS_BACKUP_DIR"),
		},
		Session: Session{
			WeakAccuracyThreshold: v.GetFloat64("WEAK_ACCURACY_THRESHOLD"),
		},
		Seed: Seed{
			GroupSize: v.GetInt("SEED_GROUP_SIZE"),
		},
		Tasks: Tasks{
			Enabled:           v.GetBool("TASKS_ENABLED"),
			Workers:           v.GetInt("TASK_WORKERS"),
			MaxRetries:        v.GetInt("TASK_MAX_RETRIES"),
			RetryDelay:        v.GetDuration("TASK_RETRY_DELAY"),
			TaskTimeout:       v.GetDuration("TASK_TIMEOUT"),
			ReleaseAfter:      v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval:   v.GetDuration("TASK_CLEANUP_INTERVAL"),
			RetentionDuration: v.GetDuration("TASK_RETENTION_DURATION"),
		},
		Backup: Backup{
			Enabled:  v.GetBool("BACKUP_ENABLED"),
			Schedule: v.GetString("BACKUP_SCHEDULE"),
			Keep:     v.GetInt("BACKUP_KEEP"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
	}
}
