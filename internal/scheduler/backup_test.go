package scheduler

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackupScheduler_RunNowCopiesProgressFile(t *testing.T) {
	tmpDir := t.TempDir()
	progressPath := filepath.Join(tmpDir, "progress.json")
	backupDir := filepath.Join(tmpDir, "backups")
	require.NoError(t, os.WriteFile(progressPath, []byte(`{"version":1}`), 0o644))

	s := NewBackupScheduler(progressPath, backupDir, "0 * * * *", 5)
	require.NoError(t, s.RunNow())

	matches, err := filepath.Glob(filepath.Join(backupDir, "progress-*.json"))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	assert.Equal(t, `{"version":1}`, string(data))
}

func TestBackupScheduler_RunNowWithoutProgressFile(t *testing.T) {
	tmpDir := t.TempDir()
	s := NewBackupScheduler(filepath.Join(tmpDir, "progress.json"), filepath.Join(tmpDir, "backups"), "0 * * * *", 5)

	require.NoError(t, s.RunNow())

	_, err := os.Stat(filepath.Join(tmpDir, "backups"))
	assert.True(t, os.IsNotExist(err), "no backup directory until there is something to back up")
}

func TestBackupScheduler_PruneKeepsNewest(t *testing.T) {
	tmpDir := t.TempDir()
	progressPath := filepath.Join(tmpDir, "progress.json")
	backupDir := filepath.Join(tmpDir, "backups")
	require.NoError(t, os.WriteFile(progressPath, []byte("{}"), 0o644))
	require.NoError(t, os.MkdirAll(backupDir, 0o755))

	stale := []string{
		"progress-20240101-000000.json",
		"progress-20240102-000000.json",
		"progress-20240103-000000.json",
	}
	for _, name := range stale {
		require.NoError(t, os.WriteFile(filepath.Join(backupDir, name), []byte("old"), 0o644))
	}

	s := NewBackupScheduler(progressPath, backupDir, "0 * * * *", 2)
	require.NoError(t, s.RunNow())

	matches, err := filepath.Glob(filepath.Join(backupDir, "progress-*.json"))
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.NotContains(t, matches, filepath.Join(backupDir, stale[0]))
	assert.NotContains(t, matches, filepath.Join(backupDir, stale[1]))
}

func TestBackupScheduler_StartStop(t *testing.T) {
	tmpDir := t.TempDir()
	s := NewBackupScheduler(filepath.Join(tmpDir, "progress.json"), filepath.Join(tmpDir, "backups"), "0 * * * *", 5)

	require.NoError(t, s.Start(context.Background()))
	assert.True(t, s.IsRunning())
	assert.NotNil(t, s.NextRunTime())

	s.Stop()
	assert.False(t, s.IsRunning())
	assert.Nil(t, s.NextRunTime())

	// Stopping releases the cancel watcher; a fresh cycle works
	require.NoError(t, s.Start(context.Background()))
	assert.True(t, s.IsRunning())
	s.Stop()
	assert.False(t, s.IsRunning())
}

func TestBackupScheduler_StopWithoutStart(t *testing.T) {
	tmpDir := t.TempDir()
	s := NewBackupScheduler(filepath.Join(tmpDir, "progress.json"), filepath.Join(tmpDir, "backups"), "0 * * * *", 5)

	s.Stop()
	assert.False(t, s.IsRunning())
}

func TestBackupScheduler_RejectsInvalidSchedule(t *testing.T) {
	tmpDir := t.TempDir()
	s := NewBackupScheduler(filepath.Join(tmpDir, "progress.json"), filepath.Join(tmpDir, "backups"), "not a schedule", 5)

	assert.Error(t, s.Start(context.Background()))
}
