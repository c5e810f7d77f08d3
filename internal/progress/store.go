// Package progress owns the durable per-word learning statistics: the
// in-memory store, the file gateway that loads and atomically saves it, and
// the background writer that turns every mutation into a write-through
// without blocking the learner.
package progress

import (
	"time"

	"github.com/AnshUjlayan/vocabulator/internal/entities"
)

// Saver receives a snapshot of the store after every mutation. Requests for
// the same store must be applied in FIFO order, last write wins. The
// background Writer is the production implementation; tests inject fakes.
type Saver interface {
	Enqueue(snapshot map[uint]entities.WordStat)
}

// Store holds the mutable statistics for every word the learner has touched.
// It is owned by a single session loop; RecordGrade and ToggleBookmark are
// the only writers, and each issues a durability request to the Saver before
// returning.
type Store struct {
	stats map[uint]*entities.WordStat
	saver Saver
}

// NewStore creates a store over previously loaded stats. The map may be nil
// for a fresh learner. saver may be nil (no write-through), which only makes
// sense in tests.
func NewStore(stats map[uint]entities.WordStat, saver Saver) *Store {
	s := &Store{
		stats: make(map[uint]*entities.WordStat, len(stats)),
		saver: saver,
	}
	for id, stat := range stats {
		st := stat
		s.stats[id] = &st
	}
	return s
}

// Get returns the stat for a word, or a zero-valued stat when the word has
// never been touched. No entry is created until the first mutation.
func (s *Store) Get(wordID uint) entities.WordStat {
	if st, ok := s.stats[wordID]; ok {
		return *st
	}
	return entities.WordStat{}
}

// Len returns the number of words with recorded stats.
func (s *Store) Len() int {
	return len(s.stats)
}

// RecordGrade applies one completed grading event: TimesSeen is incremented,
// TimesCorrect when the grade was correct, LastSeen and LastResult are set.
func (s *Store) RecordGrade(wordID uint, correct bool, now time.Time) {
	st := s.ensure(wordID)
	st.TimesSeen++
	if correct {
		st.TimesCorrect++
		st.LastResult = entities.ResultCorrect
	} else {
		st.LastResult = entities.ResultWrong
	}
	at := now
	st.LastSeen = &at
	s.writeThrough()
}

// ToggleBookmark flips the bookmark flag. Independent of grading: counters
// and recency are never touched.
func (s *Store) ToggleBookmark(wordID uint) bool {
	st := s.ensure(wordID)
	st.Bookmarked = !st.Bookmarked
	s.writeThrough()
	return st.Bookmarked
}

// Snapshot returns a deep copy of all stats, safe to hand to another
// goroutine or to serialize.
func (s *Store) Snapshot() map[uint]entities.WordStat {
	snapshot := make(map[uint]entities.WordStat, len(s.stats))
	for id, st := range s.stats {
		copied := *st
		if st.LastSeen != nil {
			at := *st.LastSeen
			copied.LastSeen = &at
		}
		snapshot[id] = copied
	}
	return snapshot
}

func (s *Store) ensure(wordID uint) *entities.WordStat {
	st, ok := s.stats[wordID]
	if !ok {
		st = &entities.WordStat{}
		s.stats[wordID] = st
	}
	return st
}

func (s *Store) writeThrough() {
	if s.saver != nil {
		s.saver.Enqueue(s.Snapshot())
	}
}
