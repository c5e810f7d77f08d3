package seed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/AnshUjlayan/vocabulator/internal/database/words"
	"github.com/AnshUjlayan/vocabulator/internal/entities"
)

func setupTestRepo(t *testing.T) (*words.Repository, func()) {
	dbPath := "./test_seed_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.Word{})
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return words.NewRepository(db), cleanup
}

func writeSeedFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vocab.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const sampleSource = `
Group 1
abound be present in large quantities
austere 1. strict and stern
2. lacking luxury

Group 2
contrite feeling regretful or guilty
`

func TestSeeder_SeedFile(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	seeder := NewSeeder(repo, 30)
	result, err := seeder.SeedFile(writeSeedFile(t, sampleSource))

	require.NoError(t, err)
	assert.Equal(t, 3, result.Added)
	assert.Equal(t, 0, result.Skipped)
	assert.Equal(t, 0, result.Warnings)

	group1, err := repo.ByGroup(1)
	require.NoError(t, err)
	require.Len(t, group1, 2)
	assert.Equal(t, "abound", group1[0].Term)
	assert.Equal(t, 1, group1[0].Seq)
	assert.Equal(t, "austere", group1[1].Term)
	assert.Equal(t, 2, group1[1].Seq)
	assert.Equal(t, "strict and stern\nlacking luxury", group1[1].Definition)
}

func TestSeeder_IdempotentReseed(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	path := writeSeedFile(t, sampleSource)
	seeder := NewSeeder(repo, 30)

	first, err := seeder.SeedFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, first.Added)

	second, err := seeder.SeedFile(path)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Added)
	assert.Equal(t, 3, second.Skipped)

	total, err := repo.Count()
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)

	// Sequence numbers did not shift
	group1, err := repo.ByGroup(1)
	require.NoError(t, err)
	require.Len(t, group1, 2)
	assert.Equal(t, 1, group1[0].Seq)
	assert.Equal(t, 2, group1[1].Seq)
}

func TestSeeder_MergeIntoExistingGroup(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	seeder := NewSeeder(repo, 30)

	_, err := seeder.SeedFile(writeSeedFile(t, `
Group 1
abound be present in large quantities
`))
	require.NoError(t, err)

	// A later source adds to the same group; numbering continues
	result, err := seeder.SeedFile(writeSeedFile(t, `
Group 1
abound be present in large quantities
lucid expressed clearly; easy to understand
`))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Added)
	assert.Equal(t, 1, result.Skipped)

	group1, err := repo.ByGroup(1)
	require.NoError(t, err)
	require.Len(t, group1, 2)
	assert.Equal(t, "abound", group1[0].Term)
	assert.Equal(t, "lucid", group1[1].Term)
	assert.Equal(t, 2, group1[1].Seq)
}

func TestSeeder_WarningsSurfaced(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	seeder := NewSeeder(repo, 30)
	result, err := seeder.SeedFile(writeSeedFile(t, `
Group 1
abound be present in large quantities
orphanterm
`))

	require.NoError(t, err)
	assert.Equal(t, 1, result.Added)
	assert.Equal(t, 1, result.Warnings)
}

func TestSeeder_MissingFile(t *testing.T) {
	repo, cleanup := setupTestRepo(t)
	defer cleanup()

	seeder := NewSeeder(repo, 30)
	_, err := seeder.SeedFile(filepath.Join(t.TempDir(), "missing.txt"))

	assert.Error(t, err)
}
