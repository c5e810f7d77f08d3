// Package session contains the learning session engine: the queue builder
// that derives a word sequence from the catalog and progress stats, and the
// state machines that turn abstract input events into graded outcomes.
package session

import (
	"github.com/AnshUjlayan/vocabulator/internal/entities"
)

// StatReader is the read-only view of the progress store the queue builder
// needs. *progress.Store satisfies it.
type StatReader interface {
	Get(wordID uint) entities.WordStat
}

// Criterion selects and filters the words for one session.
type Criterion struct {
	Mode    entities.SessionMode
	GroupID int // used by ModeGroup only

	// WeakAccuracyThreshold extends ModeWeak: words seen at least once with
	// accuracy strictly below the threshold qualify in addition to words
	// whose last grade was wrong. 0 disables it.
	WeakAccuracyThreshold float64
}

// BuildQueue derives the session queue from the catalog and the progress
// stats. Pure: it never mutates either input. words must already be in
// stable (group, seq) order; the result preserves that order. An empty
// candidate set yields an empty queue, which a session treats as immediate
// completion.
func BuildQueue(words []entities.Word, stats StatReader, c Criterion) []entities.Word {
	var queue []entities.Word
	for _, w := range words {
		if selects(w, stats.Get(w.ID), c) {
			queue = append(queue, w)
		}
	}
	return queue
}

func selects(w entities.Word, st entities.WordStat, c Criterion) bool {
	switch c.Mode {
	case entities.ModeGroup:
		return w.GroupID == c.GroupID
	case entities.ModeMarked:
		return st.Bookmarked
	case entities.ModeWeak:
		if st.LastResult == entities.ResultWrong {
			return true
		}
		if c.WeakAccuracyThreshold > 0 {
			if acc, ok := st.Accuracy(); ok && acc < c.WeakAccuracyThreshold {
				return true
			}
		}
		return false
	}
	return false
}
