package session

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AnshUjlayan/vocabulator/internal/entities"
	"github.com/AnshUjlayan/vocabulator/internal/progress"
)

// Kind is the interaction style driving a session.
type Kind string

const (
	KindPractice Kind = "practice" // term shown, learner self-grades
	KindTest     Kind = "test"     // definition shown, learner types the term
)

// Phase is the position of the current word inside its state machine.
type Phase int

const (
	PhasePresenting Phase = iota
	PhaseRevealed          // practice: definition visible, awaiting self-grade
	PhaseGraded            // practice: graded, awaiting advance
	PhaseInserting         // test: input buffer active
	PhaseSubmitted         // test: answer compared, awaiting advance
	PhaseComplete          // queue exhausted, terminal
)

// Notifier receives engine notifications for external collaborators (audio
// cues, the review journal). Implementations must not block: the engine
// fires and forgets.
type Notifier interface {
	Graded(word entities.Word, correct bool, at time.Time)
	BookmarkToggled(word entities.Word, marked bool)
}

// NopNotifier discards all notifications.
type NopNotifier struct{}

func (NopNotifier) Graded(entities.Word, bool, time.Time) {}
func (NopNotifier) BookmarkToggled(entities.Word, bool)   {}

// Summary reports the per-session counters for the end-of-session screen.
type Summary struct {
	Total   int
	Seen    int
	Correct int
}

// Session drives one pass over a queue of words. All event methods are
// called from a single loop; ignored events are silent no-ops, never errors,
// so callers cannot produce an invalid transition through the exported API.
// Nothing here is persisted: only per-word stats survive via the store's
// write-through.
type Session struct {
	id        string
	kind      Kind
	criterion Criterion

	queue  []entities.Word
	index  int
	phase  Phase
	buffer []rune

	seen    int
	correct int

	store    *progress.Store
	notifier Notifier
	now      func() time.Time
}

// New builds a session over an already-built queue. An empty queue starts,
// and immediately is, Complete. notifier may be nil; now may be nil to use
// time.Now.
func New(kind Kind, criterion Criterion, queue []entities.Word, store *progress.Store, notifier Notifier, now func() time.Time) *Session {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	if now == nil {
		now = time.Now
	}
	s := &Session{
		id:        uuid.NewString(),
		kind:      kind,
		criterion: criterion,
		queue:     queue,
		store:     store,
		notifier:  notifier,
		now:       now,
	}
	if len(queue) == 0 {
		s.phase = PhaseComplete
	}
	return s
}

// ID is the unique identifier stamped on journal entries for this session.
func (s *Session) ID() string { return s.id }

// Kind returns the interaction style.
func (s *Session) Kind() Kind { return s.kind }

// Criterion returns the selection criterion the queue was built with.
func (s *Session) Criterion() Criterion { return s.criterion }

// Phase returns the current word's state machine position.
func (s *Session) Phase() Phase { return s.phase }

// Complete reports whether the session is finished.
func (s *Session) Complete() bool { return s.phase == PhaseComplete }

// Current returns the word under the cursor. ok is false once complete.
func (s *Session) Current() (entities.Word, bool) {
	if s.phase == PhaseComplete {
		return entities.Word{}, false
	}
	return s.queue[s.index], true
}

// Stat returns the current word's stats, zero-valued once complete.
func (s *Session) Stat() entities.WordStat {
	w, ok := s.Current()
	if !ok {
		return entities.WordStat{}
	}
	return s.store.Get(w.ID)
}

// Buffer returns the typed answer so far (test mode).
func (s *Session) Buffer() string { return string(s.buffer) }

// Position returns the 0-based cursor and the queue length.
func (s *Session) Position() (int, int) { return s.index, len(s.queue) }

// Summary returns the per-session counters.
func (s *Session) Summary() Summary {
	return Summary{Total: len(s.queue), Seen: s.seen, Correct: s.correct}
}

// ShowDefinition reveals the current word's definition (practice mode).
// Ignored in test mode, where the definition is the prompt.
func (s *Session) ShowDefinition() {
	if s.kind == KindPractice && s.phase == PhasePresenting {
		s.phase = PhaseRevealed
	}
}

// Grade records a self-graded outcome for the current word (practice mode).
// Accepted from Presenting as well as Revealed: the learner may grade
// without revealing. A word already graded this pass is left alone, so the
// write-through fires exactly once per word.
func (s *Session) Grade(correct bool) {
	if s.kind != KindPractice {
		return
	}
	if s.phase != PhasePresenting && s.phase != PhaseRevealed {
		return
	}
	s.record(correct)
	s.phase = PhaseGraded
}

// BeginInsert activates the input buffer (test mode).
func (s *Session) BeginInsert() {
	if s.kind == KindTest && s.phase == PhasePresenting {
		s.phase = PhaseInserting
	}
}

// AppendChar appends one character to the answer buffer.
func (s *Session) AppendChar(c rune) {
	if s.phase == PhaseInserting {
		s.buffer = append(s.buffer, c)
	}
}

// DeleteChar removes the last character of the answer buffer.
func (s *Session) DeleteChar() {
	if s.phase == PhaseInserting && len(s.buffer) > 0 {
		s.buffer = s.buffer[:len(s.buffer)-1]
	}
}

// ExitInsert leaves insert mode and discards the buffer without grading.
func (s *Session) ExitInsert() {
	if s.phase == PhaseInserting {
		s.buffer = s.buffer[:0]
		s.phase = PhasePresenting
	}
}

// Submit compares the typed answer against the term, case-insensitively and
// otherwise exact, and records the outcome. Only accepted while Inserting.
func (s *Session) Submit() {
	if s.phase != PhaseInserting {
		return
	}
	word := s.queue[s.index]
	answer := strings.TrimSpace(string(s.buffer))
	correct := strings.EqualFold(answer, word.Term)
	s.record(correct)
	s.phase = PhaseSubmitted
}

// Answered reports the recorded outcome of the current word, false until it
// has been graded or submitted this pass.
func (s *Session) Answered() (correct bool, ok bool) {
	if s.phase != PhaseGraded && s.phase != PhaseSubmitted {
		return false, false
	}
	st := s.store.Get(s.queue[s.index].ID)
	return st.LastResult == entities.ResultCorrect, true
}

// ToggleBookmark flips the current word's bookmark. Valid in any
// non-Complete phase except Inserting, where it is ignored so the typed text
// is never disturbed. Never moves the cursor or the phase.
func (s *Session) ToggleBookmark() {
	if s.phase == PhaseComplete || s.phase == PhaseInserting {
		return
	}
	word := s.queue[s.index]
	marked := s.store.ToggleBookmark(word.ID)
	s.notifier.BookmarkToggled(word, marked)
}

// Advance moves to the next word once the current one has been graded or
// submitted, or to Complete when the queue is exhausted.
func (s *Session) Advance() {
	if s.phase != PhaseGraded && s.phase != PhaseSubmitted {
		return
	}
	s.index++
	s.buffer = s.buffer[:0]
	if s.index >= len(s.queue) {
		s.phase = PhaseComplete
		return
	}
	s.phase = PhasePresenting
}

func (s *Session) record(correct bool) {
	word := s.queue[s.index]
	at := s.now()
	s.store.RecordGrade(word.ID, correct, at)
	s.seen++
	if correct {
		s.correct++
	}
	s.notifier.Graded(word, correct, at)
}
