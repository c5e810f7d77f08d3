// Package scheduler runs periodic background jobs, currently the rotated
// progress-file backups.
package scheduler

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// BackupScheduler periodically copies the progress file into a backup
// directory, keeping the most recent copies. The backups are the recovery
// path when the canonical file turns out corrupt.
type BackupScheduler struct {
	progressPath string
	backupDir    string
	schedule     string
	keep         int

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewBackupScheduler creates a new scheduler instance.
func NewBackupScheduler(progressPath, backupDir, schedule string, keep int) *BackupScheduler {
	return &BackupScheduler{
		progressPath: progressPath,
		backupDir:    backupDir,
		schedule:     schedule,
		keep:         keep,
		cron:         cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler.
func (s *BackupScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		s.runBackup()
	})
	if err != nil {
		return fmt.Errorf("invalid backup schedule '%s': %w", s.schedule, err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	log.Printf("Backup scheduler: started with schedule '%s'", s.schedule)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler.
func (s *BackupScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	// Stop accepting new jobs and wait for running jobs to complete
	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	if s.cancelFunc != nil {
		// Release the watcher goroutine started in Start
		s.cancelFunc()
		s.cancelFunc = nil
	}

	log.Printf("Backup scheduler: stopped")
}

// RunNow triggers an immediate backup.
func (s *BackupScheduler) RunNow() error {
	return s.runBackup()
}

// IsRunning returns whether the scheduler is active.
func (s *BackupScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRunTime returns when the next backup will occur.
func (s *BackupScheduler) NextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

func (s *BackupScheduler) runBackup() error {
	src, err := os.Open(s.progressPath)
	if err != nil {
		if os.IsNotExist(err) {
			// Nothing to back up yet
			return nil
		}
		log.Printf("Backup: failed to open progress file: %v", err)
		return err
	}
	defer src.Close()

	if err := os.MkdirAll(s.backupDir, 0o755); err != nil {
		log.Printf("Backup: failed to create backup directory: %v", err)
		return err
	}

	name := fmt.Sprintf("progress-%s.json", time.Now().Format("20060102-150405"))
	dstPath := filepath.Join(s.backupDir, name)
	dst, err := os.Create(dstPath)
	if err != nil {
		log.Printf("Backup: failed to create %s: %v", dstPath, err)
		return err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		log.Printf("Backup: failed to copy progress file: %v", err)
		return err
	}

	if err := s.prune(); err != nil {
		log.Printf("Backup: failed to prune old backups: %v", err)
	}

	log.Printf("Backup: wrote %s", dstPath)
	return nil
}

// prune deletes all but the newest `keep` backups.
func (s *BackupScheduler) prune() error {
	if s.keep <= 0 {
		return nil
	}

	matches, err := filepath.Glob(filepath.Join(s.backupDir, "progress-*.json"))
	if err != nil {
		return err
	}
	if len(matches) <= s.keep {
		return nil
	}

	// Timestamped names sort chronologically
	sort.Strings(matches)
	for _, path := range matches[:len(matches)-s.keep] {
		if err := os.Remove(path); err != nil {
			return err
		}
	}
	return nil
}
