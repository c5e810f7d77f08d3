package seed

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/AnshUjlayan/vocabulator/internal/database/words"
	"github.com/AnshUjlayan/vocabulator/internal/entities"
)

// Result reports what a seeding run did.
type Result struct {
	Added    int
	Skipped  int // already present, left untouched
	Warnings int
}

// Seeder merges parsed entries into the vocabulary catalog. Seeding is
// idempotent: an entry whose term already exists is skipped, so re-seeding
// the same source never duplicates words or disturbs existing stats.
type Seeder struct {
	repo      *words.Repository
	groupSize int
}

// NewSeeder creates a seeder over the catalog repository. groupSize is the
// chunk size applied to sources without explicit group markers.
func NewSeeder(repo *words.Repository, groupSize int) *Seeder {
	return &Seeder{repo: repo, groupSize: groupSize}
}

// SeedFile loads a seed source by path, choosing the parser from the file
// extension (.xlsx for spreadsheets, plain text otherwise).
func (s *Seeder) SeedFile(path string) (*Result, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		parsed, err := ParseExcel(path)
		if err != nil {
			return nil, err
		}
		return s.Apply(parsed)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()

	parser := &Parser{GroupSize: s.groupSize}
	parsed, err := parser.Parse(f)
	if err != nil {
		return nil, err
	}
	return s.Apply(parsed)
}

// Apply merges parsed entries into the catalog, assigning per-group
// sequence numbers that continue from whatever the group already holds.
func (s *Seeder) Apply(parsed *ParseResult) (*Result, error) {
	result := &Result{Warnings: len(parsed.Warnings)}
	nextSeq := make(map[int]int)

	for _, entry := range parsed.Entries {
		seq, ok := nextSeq[entry.GroupID]
		if !ok {
			maxSeq, err := s.repo.MaxSeq(entry.GroupID)
			if err != nil {
				return nil, fmt.Errorf("failed to read group %d: %w", entry.GroupID, err)
			}
			seq = maxSeq + 1
		}

		word := &entities.Word{
			GroupID:    entry.GroupID,
			Term:       entry.Term,
			Definition: entry.Definition,
			Seq:        seq,
		}
		created, err := s.repo.Insert(word)
		if err != nil {
			return nil, fmt.Errorf("failed to insert word %q: %w", entry.Term, err)
		}
		if created {
			result.Added++
			seq++
		} else {
			result.Skipped++
		}
		nextSeq[entry.GroupID] = seq
	}
	return result, nil
}
