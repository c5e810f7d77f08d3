package progress

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/AnshUjlayan/vocabulator/internal/entities"
)

// ErrCorruptData marks a progress file that exists but cannot be parsed.
// The application must not overwrite such a file without backing it up
// first; use errors.Is to detect it.
var ErrCorruptData = errors.New("progress file is corrupt")

// Gateway persists progress snapshots. It never mutates a store: Load hands
// back freshly decoded stats, Save serializes the snapshot it is given.
type Gateway interface {
	Load() (map[uint]entities.WordStat, error)
	Save(snapshot map[uint]entities.WordStat) error
}

// fileVersion is written into every progress file. Loading tolerates newer
// versions: unknown fields are ignored and missing ones default to zero, so
// the schema can gain fields without breaking older data.
const fileVersion = 1

type progressFile struct {
	Version int                        `json:"version"`
	Words   map[uint]entities.WordStat `json:"words"`
}

// FileGateway stores progress as a JSON document, replaced atomically on
// every save.
type FileGateway struct {
	path string
}

// NewFileGateway creates a gateway writing to path.
func NewFileGateway(path string) *FileGateway {
	return &FileGateway{path: path}
}

// Path returns the canonical progress file location.
func (g *FileGateway) Path() string {
	return g.path
}

// Load reads the progress file. A missing file is not an error and yields an
// empty map; a present but unparseable file yields ErrCorruptData.
func (g *FileGateway) Load() (map[uint]entities.WordStat, error) {
	data, err := os.ReadFile(g.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[uint]entities.WordStat{}, nil
		}
		return nil, fmt.Errorf("failed to read progress file %s: %w", g.path, err)
	}

	var file progressFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptData, g.path, err)
	}
	if file.Words == nil {
		file.Words = map[uint]entities.WordStat{}
	}
	return file.Words, nil
}

// Save writes the snapshot to a temporary file in the same directory and
// renames it over the canonical path, so a crash mid-write never leaves a
// half-written file where Load would find it.
func (g *FileGateway) Save(snapshot map[uint]entities.WordStat) error {
	data, err := json.MarshalIndent(progressFile{Version: fileVersion, Words: snapshot}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize progress: %w", err)
	}

	dir := filepath.Dir(g.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create progress directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(g.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary progress file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write progress file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to sync progress file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close progress file: %w", err)
	}

	if err := os.Rename(tmpPath, g.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace progress file: %w", err)
	}
	return nil
}

// BackupCorrupt copies the unreadable progress file aside and returns the
// backup path, so the original is preserved before any recovery writes a
// fresh store.
func (g *FileGateway) BackupCorrupt() (string, error) {
	src, err := os.Open(g.path)
	if err != nil {
		return "", fmt.Errorf("failed to open progress file for backup: %w", err)
	}
	defer src.Close()

	backupPath := fmt.Sprintf("%s.corrupt-%s", g.path, time.Now().Format("20060102-150405"))
	dst, err := os.Create(backupPath)
	if err != nil {
		return "", fmt.Errorf("failed to create backup file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to copy progress file to backup: %w", err)
	}
	return backupPath, nil
}
