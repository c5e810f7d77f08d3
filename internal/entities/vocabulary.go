package entities

import (
	"time"
)

// Result is the outcome of a single grading event.
type Result string

const (
	ResultCorrect Result = "correct"
	ResultWrong   Result = "wrong"
)

// SessionMode selects which words a session draws from.
type SessionMode string

const (
	ModeGroup  SessionMode = "group"  // "Continue Learning": all words of one group
	ModeMarked SessionMode = "marked" // "Review Marks": bookmarked words
	ModeWeak   SessionMode = "weak"   // "Revise Weak": words last graded wrong
)

// Label returns the menu label for a session mode.
func (m SessionMode) Label() string {
	switch m {
	case ModeGroup:
		return "Continue Learning"
	case ModeMarked:
		return "Review Marks"
	case ModeWeak:
		return "Revise Weak"
	}
	return string(m)
}

// Word is one vocabulary catalog entry. Words are created by seeding only and
// are never mutated or deleted afterwards; stats for a word that disappears
// from the seed source are tolerated as orphans.
type Word struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	GroupID    int       `gorm:"index" json:"group_id"`
	Term       string    `gorm:"uniqueIndex;size:256" json:"term"`
	Definition string    `gorm:"type:text" json:"definition"`
	Seq        int       `gorm:"index" json:"seq"` // insertion order within the group
	CreatedAt  time.Time `json:"created_at"`
}

func (Word) TableName() string {
	return "words"
}

// WordStat holds the mutable learning statistics for one word. A stat is
// lazily created on first exposure; an absent stat reads as all-zero and
// unbookmarked. TimesCorrect never exceeds TimesSeen.
type WordStat struct {
	TimesSeen    int        `json:"times_seen"`
	TimesCorrect int        `json:"times_correct"`
	LastSeen     *time.Time `json:"last_seen,omitempty"`
	LastResult   Result     `json:"last_result,omitempty"` // empty until first grade
	Bookmarked   bool       `json:"bookmarked"`
}

// Accuracy returns TimesCorrect/TimesSeen. The second return is false when
// the word has never been seen, in which case accuracy is undefined and
// displayed as "—".
func (s WordStat) Accuracy() (float64, bool) {
	if s.TimesSeen == 0 {
		return 0, false
	}
	return float64(s.TimesCorrect) / float64(s.TimesSeen), true
}

// ReviewEvent is one row of the append-only review journal.
type ReviewEvent struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	SessionID  string    `gorm:"index;size:36" json:"session_id"`
	WordID     uint      `gorm:"index" json:"word_id"`
	Mode       string    `gorm:"size:16" json:"mode"` // "practice" or "test"
	Correct    bool      `json:"correct"`
	ReviewedAt time.Time `gorm:"index" json:"reviewed_at"`
	CreatedAt  time.Time `json:"created_at"`
}

func (ReviewEvent) TableName() string {
	return "review_events"
}
