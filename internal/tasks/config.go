package tasks

import "time"

// Config holds configuration for the task queue system.
type Config struct {
	// Workers is the number of concurrent task workers. The journal is
	// append-only, so a single worker is enough. Default: 1
	Workers int

	// MaxRetries is the default maximum retry attempts for failed tasks. Default: 3
	MaxRetries int

	// RetryDelay is the default backoff duration between retries. Default: 30s
	RetryDelay time.Duration

	// TaskTimeout is the default timeout for task execution. Default: 1m
	TaskTimeout time.Duration

	// ReleaseAfter is when stuck tasks are released back to queue. Default: 5m
	ReleaseAfter time.Duration

	// CleanupInterval is how often to clean up completed tasks. Default: 1h
	CleanupInterval time.Duration

	// RetentionDuration is how long to keep completed tasks. Default: 7d
	RetentionDuration time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Workers:           1,
		MaxRetries:        3,
		RetryDelay:        30 * time.Second,
		TaskTimeout:       1 * time.Minute,
		ReleaseAfter:      5 * time.Minute,
		CleanupInterval:   1 * time.Hour,
		RetentionDuration: 7 * 24 * time.Hour,
	}
}
