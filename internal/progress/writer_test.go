package progress

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnshUjlayan/vocabulator/internal/entities"
)

// flakyGateway fails the first n saves, then delegates to a real file gateway.
type flakyGateway struct {
	*FileGateway

	mu       sync.Mutex
	failures int
	saves    int
}

func (g *flakyGateway) Save(snapshot map[uint]entities.WordStat) error {
	g.mu.Lock()
	g.saves++
	fail := g.failures > 0
	if fail {
		g.failures--
	}
	g.mu.Unlock()

	if fail {
		return errors.New("disk unavailable")
	}
	return g.FileGateway.Save(snapshot)
}

func (g *flakyGateway) saveCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.saves
}

func TestWriter_FlushDrainsPendingWrites(t *testing.T) {
	gateway := NewFileGateway(filepath.Join(t.TempDir(), "progress.json"))
	writer := NewWriter(gateway)
	defer writer.Close()

	writer.Enqueue(map[uint]entities.WordStat{1: {TimesSeen: 1}})
	writer.Enqueue(map[uint]entities.WordStat{1: {TimesSeen: 2}})
	require.NoError(t, writer.Flush())

	loaded, err := gateway.Load()
	require.NoError(t, err)
	assert.Equal(t, 2, loaded[1].TimesSeen, "last write wins")
}

func TestWriter_FailedSaveRetriedOnNextWrite(t *testing.T) {
	gateway := &flakyGateway{
		FileGateway: NewFileGateway(filepath.Join(t.TempDir(), "progress.json")),
		failures:    1,
	}
	writer := NewWriter(gateway)
	defer writer.Close()

	writer.Enqueue(map[uint]entities.WordStat{1: {TimesSeen: 1}})
	// The second write supersedes the failed one and goes through cleanly.
	writer.Enqueue(map[uint]entities.WordStat{1: {TimesSeen: 2}})
	require.NoError(t, writer.Flush())

	loaded, err := gateway.Load()
	require.NoError(t, err)
	assert.Equal(t, 2, loaded[1].TimesSeen)
}

func TestWriter_FlushRetriesFailedSnapshot(t *testing.T) {
	gateway := &flakyGateway{
		FileGateway: NewFileGateway(filepath.Join(t.TempDir(), "progress.json")),
		failures:    1,
	}
	writer := NewWriter(gateway)
	defer writer.Close()

	writer.Enqueue(map[uint]entities.WordStat{1: {TimesSeen: 3}})
	require.NoError(t, writer.Flush(), "flush retries the snapshot the background save dropped")

	loaded, err := gateway.Load()
	require.NoError(t, err)
	assert.Equal(t, 3, loaded[1].TimesSeen)
	assert.GreaterOrEqual(t, gateway.saveCount(), 2)
}

func TestWriter_RecoveredFailureIsNotReported(t *testing.T) {
	gateway := &flakyGateway{
		FileGateway: NewFileGateway(filepath.Join(t.TempDir(), "progress.json")),
		failures:    1,
	}
	writer := NewWriter(gateway)
	defer writer.Close()

	writer.Enqueue(map[uint]entities.WordStat{1: {TimesSeen: 3}})
	require.NoError(t, writer.Flush(), "a failure the retry recovered must not surface")

	loaded, err := gateway.Load()
	require.NoError(t, err)
	require.Equal(t, 3, loaded[1].TimesSeen)

	assert.NoError(t, writer.Flush(), "later flushes stay clean")
	assert.NoError(t, writer.Close())
}

func TestWriter_FlushReportsPersistentFailure(t *testing.T) {
	gateway := &flakyGateway{
		FileGateway: NewFileGateway(filepath.Join(t.TempDir(), "progress.json")),
		failures:    10,
	}
	writer := NewWriter(gateway)
	defer writer.Close()

	writer.Enqueue(map[uint]entities.WordStat{1: {TimesSeen: 1}})

	assert.Error(t, writer.Flush())
}

func TestWriter_FlushOnIdleWriterIsNoop(t *testing.T) {
	gateway := NewFileGateway(filepath.Join(t.TempDir(), "progress.json"))
	writer := NewWriter(gateway)
	defer writer.Close()

	require.NoError(t, writer.Flush())

	loaded, err := gateway.Load()
	require.NoError(t, err)
	assert.Empty(t, loaded, "flush without writes must not create a file state")
}

func TestWriter_CloseDrainsAndStops(t *testing.T) {
	gateway := NewFileGateway(filepath.Join(t.TempDir(), "progress.json"))
	writer := NewWriter(gateway)

	writer.Enqueue(map[uint]entities.WordStat{4: {Bookmarked: true}})
	require.NoError(t, writer.Close())

	loaded, err := gateway.Load()
	require.NoError(t, err)
	assert.True(t, loaded[4].Bookmarked)

	// Enqueue after Close is ignored, Close is idempotent.
	writer.Enqueue(map[uint]entities.WordStat{5: {TimesSeen: 9}})
	require.NoError(t, writer.Close())
	loaded, err = gateway.Load()
	require.NoError(t, err)
	assert.NotContains(t, loaded, uint(5))
}
