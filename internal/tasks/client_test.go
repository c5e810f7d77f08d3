package tasks

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnshUjlayan/vocabulator/internal/entities"
)

func TestNewClient(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "vocab.db")

	cfg := DefaultConfig()

	client, err := NewClient(dbPath, cfg)
	require.NoError(t, err)
	require.NotNil(t, client)

	// The queue gets its own database next to the catalog
	tasksDBPath := filepath.Join(tmpDir, "vocab-tasks.db")
	_, err = os.Stat(tasksDBPath)
	assert.NoError(t, err, "tasks database should be created")

	err = client.Close()
	assert.NoError(t, err)
}

func TestClientStartStop(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "vocab.db")

	client, err := NewClient(dbPath, DefaultConfig())
	require.NoError(t, err)
	defer client.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go client.Start(ctx)

	// Give it time to start
	time.Sleep(50 * time.Millisecond)

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer stopCancel()

	success := client.Stop(stopCtx)
	assert.True(t, success, "stop should succeed gracefully")
}

// memoryRecorder collects journaled events in memory.
type memoryRecorder struct {
	events chan *entities.ReviewEvent
}

func (r *memoryRecorder) Record(event *entities.ReviewEvent) error {
	r.events <- event
	return nil
}

func TestRecordReviewEnqueue(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "vocab.db")

	client, err := NewClient(dbPath, DefaultConfig())
	require.NoError(t, err)
	defer client.Close()

	recorder := &memoryRecorder{events: make(chan *entities.ReviewEvent, 1)}
	client.Register(NewRecordReviewQueue(recorder))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go client.Start(ctx)

	reviewedAt := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	ids, err := client.Add(RecordReviewTask{
		SessionID:  "session-1",
		WordID:     7,
		Mode:       "practice",
		Correct:    true,
		ReviewedAt: reviewedAt,
	}).Save()
	require.NoError(t, err)
	assert.Len(t, ids, 1)

	select {
	case event := <-recorder.events:
		assert.Equal(t, "session-1", event.SessionID)
		assert.Equal(t, uint(7), event.WordID)
		assert.Equal(t, "practice", event.Mode)
		assert.True(t, event.Correct)
		assert.True(t, reviewedAt.Equal(event.ReviewedAt))
	case <-time.After(5 * time.Second):
		t.Fatal("task was not executed within timeout")
	}
}

func TestRecordReviewTaskConfig(t *testing.T) {
	task := RecordReviewTask{WordID: 123}
	cfg := task.Config()

	assert.Equal(t, "record_review", cfg.Name)
	assert.Equal(t, 3, cfg.MaxAttempts)
	assert.Equal(t, 30*time.Second, cfg.Backoff)
	assert.Equal(t, time.Minute, cfg.Timeout)
	assert.NotNil(t, cfg.Retention)
}

func TestRecordReviewProcessorWithoutRecorder(t *testing.T) {
	processor := RecordReviewProcessor(nil)

	err := processor(context.Background(), RecordReviewTask{WordID: 1})

	assert.Error(t, err)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 1, cfg.Workers)
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.Equal(t, 30*time.Second, cfg.RetryDelay)
	assert.Equal(t, time.Minute, cfg.TaskTimeout)
	assert.Equal(t, 5*time.Minute, cfg.ReleaseAfter)
	assert.Equal(t, time.Hour, cfg.CleanupInterval)
	assert.Equal(t, 7*24*time.Hour, cfg.RetentionDuration)
}

var _ backlite.Task = RecordReviewTask{}
