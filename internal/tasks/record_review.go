package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/AnshUjlayan/vocabulator/internal/entities"
)

// ReviewRecorder appends review events to the journal.
type ReviewRecorder interface {
	Record(event *entities.ReviewEvent) error
}

// RecordReviewTask journals one grading event.
type RecordReviewTask struct {
	SessionID  string    `json:"session_id"`
	WordID     uint      `json:"word_id"`
	Mode       string    `json:"mode"`
	Correct    bool      `json:"correct"`
	ReviewedAt time.Time `json:"reviewed_at"`
}

// Config returns the queue configuration for review journal tasks.
func (t RecordReviewTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "record_review",
		MaxAttempts: 3,
		Backoff:     30 * time.Second,
		Timeout:     time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// RecordReviewProcessor creates a processor function for RecordReviewTask.
func RecordReviewProcessor(recorder ReviewRecorder) backlite.QueueProcessor[RecordReviewTask] {
	return func(ctx context.Context, task RecordReviewTask) error {
		if recorder == nil {
			return fmt.Errorf("review recorder not configured")
		}

		event := &entities.ReviewEvent{
			SessionID:  task.SessionID,
			WordID:     task.WordID,
			Mode:       task.Mode,
			Correct:    task.Correct,
			ReviewedAt: task.ReviewedAt,
		}
		if err := recorder.Record(event); err != nil {
			return fmt.Errorf("record review: %w", err)
		}
		return nil
	}
}

// NewRecordReviewQueue creates a backlite queue for review journal tasks.
func NewRecordReviewQueue(recorder ReviewRecorder) backlite.Queue {
	return backlite.NewQueue(RecordReviewProcessor(recorder))
}
