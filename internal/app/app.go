// Package app wires the engine together: catalog database, progress store,
// write-through persistence, review journal queue, and backup scheduler.
package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/AnshUjlayan/vocabulator/internal/config"
	"github.com/AnshUjlayan/vocabulator/internal/database"
	"github.com/AnshUjlayan/vocabulator/internal/database/reviews"
	"github.com/AnshUjlayan/vocabulator/internal/database/words"
	"github.com/AnshUjlayan/vocabulator/internal/entities"
	"github.com/AnshUjlayan/vocabulator/internal/progress"
	"github.com/AnshUjlayan/vocabulator/internal/scheduler"
	"github.com/AnshUjlayan/vocabulator/internal/session"
	"github.com/AnshUjlayan/vocabulator/internal/tasks"
)

// App owns every long-lived component of the interactive application.
type App struct {
	cfg *config.Config

	db      *database.Database
	words   *words.Repository
	reviews *reviews.Repository

	gateway *progress.FileGateway
	writer  *progress.Writer
	store   *progress.Store

	taskClient *tasks.Client
	taskCancel context.CancelFunc
	backup     *scheduler.BackupScheduler
}

// New loads all stores and starts the background machinery. A missing
// progress file yields a fresh store; a corrupt one fails startup so learner
// history is never silently reset.
func New(cfg *config.Config) (*App, error) {
	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		return nil, err
	}

	gateway := progress.NewFileGateway(cfg.Progress.Path)
	stats, err := gateway.Load()
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to load progress: %w", err)
	}

	writer := progress.NewWriter(gateway)
	store := progress.NewStore(stats, writer)

	a := &App{
		cfg:     cfg,
		db:      db,
		words:   words.NewRepository(db.DB),
		reviews: reviews.NewRepository(db.DB),
		gateway: gateway,
		writer:  writer,
		store:   store,
	}

	if cfg.Tasks.Enabled {
		client, err := tasks.NewClient(cfg.Database.Path, tasks.Config{
			Workers:           cfg.Tasks.Workers,
			MaxRetries:        cfg.Tasks.MaxRetries,
			RetryDelay:        cfg.Tasks.RetryDelay,
			TaskTimeout:       cfg.Tasks.TaskTimeout,
			ReleaseAfter:      cfg.Tasks.ReleaseAfter,
			CleanupInterval:   cfg.Tasks.CleanupInterval,
			RetentionDuration: cfg.Tasks.RetentionDuration,
		})
		if err != nil {
			writer.Close()
			db.Close()
			return nil, err
		}
		client.Register(tasks.NewRecordReviewQueue(a.reviews))

		ctx, cancel := context.WithCancel(context.Background())
		a.taskClient = client
		a.taskCancel = cancel
		go client.Start(ctx)
	}

	if cfg.Backup.Enabled {
		a.backup = scheduler.NewBackupScheduler(
			cfg.Progress.Path,
			cfg.Progress.BackupDir,
			cfg.Backup.Schedule,
			cfg.Backup.Keep,
		)
		if err := a.backup.Start(context.Background()); err != nil {
			log.Printf("Backup scheduler not started: %v", err)
			a.backup = nil
		}
	}

	return a, nil
}

// Store exposes the progress store for read-only display.
func (a *App) Store() *progress.Store { return a.store }

// Words exposes the vocabulary catalog repository.
func (a *App) Words() *words.Repository { return a.words }

// Reviews exposes the review journal repository.
func (a *App) Reviews() *reviews.Repository { return a.reviews }

// Groups returns the catalog's group ids.
func (a *App) Groups() ([]int, error) {
	return a.words.Groups()
}

// StartSession builds a queue for the criterion and wraps it in a session.
func (a *App) StartSession(kind session.Kind, criterion session.Criterion) (*session.Session, error) {
	criterion.WeakAccuracyThreshold = a.cfg.Session.WeakAccuracyThreshold

	var (
		candidates []entities.Word
		err        error
	)
	if criterion.Mode == entities.ModeGroup {
		candidates, err = a.words.ByGroup(criterion.GroupID)
	} else {
		candidates, err = a.words.All()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load words: %w", err)
	}

	queue := session.BuildQueue(candidates, a.store, criterion)

	notifier := &journalNotifier{client: a.taskClient, mode: string(kind)}
	sess := session.New(kind, criterion, queue, a.store, notifier, nil)
	notifier.sessionID = sess.ID()
	return sess, nil
}

// EndSession is the drain barrier at session and mode transitions: it blocks
// until every pending progress write has reached disk.
func (a *App) EndSession() error {
	return a.writer.Flush()
}

// Close drains pending writes and releases every component. Safe to call
// once, at process exit.
func (a *App) Close() error {
	err := a.writer.Close()
	if err != nil {
		log.Printf("Final progress flush failed: %v", err)
	}

	if a.backup != nil {
		a.backup.Stop()
	}

	if a.taskClient != nil {
		timeout := time.Duration(a.cfg.Global.ShutdownTimeoutInSeconds) * time.Second
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		a.taskClient.Stop(ctx)
		cancel()
		a.taskCancel()
		a.taskClient.Close()
	}

	if dbErr := a.db.Close(); dbErr != nil && err == nil {
		err = dbErr
	}
	return err
}

// journalNotifier forwards engine notifications to the review journal
// queue. Fire-and-forget: a failed enqueue is logged, never propagated.
type journalNotifier struct {
	client    *tasks.Client
	mode      string
	sessionID string
}

func (n *journalNotifier) Graded(word entities.Word, correct bool, at time.Time) {
	if n.client == nil {
		return
	}
	_, err := n.client.Add(tasks.RecordReviewTask{
		SessionID:  n.sessionID,
		WordID:     word.ID,
		Mode:       n.mode,
		Correct:    correct,
		ReviewedAt: at,
	}).Save()
	if err != nil {
		log.Printf("Failed to enqueue review journal entry: %v", err)
	}
}

func (n *journalNotifier) BookmarkToggled(word entities.Word, marked bool) {}
