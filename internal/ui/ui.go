// Package ui is the line-oriented terminal front end. It only translates
// raw input into the engine's abstract event set and prints engine state;
// every decision lives in the session engine and the stores.
package ui

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/AnshUjlayan/vocabulator/internal/app"
	"github.com/AnshUjlayan/vocabulator/internal/entities"
	"github.com/AnshUjlayan/vocabulator/internal/session"
	"github.com/AnshUjlayan/vocabulator/internal/utils"
)

// UI runs the interactive menu and session screens.
type UI struct {
	app *app.App
	in  *bufio.Scanner
	out io.Writer
}

// New creates a UI reading from in and writing to out.
func New(a *app.App, in io.Reader, out io.Writer) *UI {
	return &UI{
		app: a,
		in:  bufio.NewScanner(in),
		out: out,
	}
}

// Run drives the main menu until the learner quits. Returns nil on a normal
// quit-from-menu.
func (u *UI) Run() error {
	for {
		fmt.Fprintln(u.out)
		fmt.Fprintln(u.out, "Main Menu")
		fmt.Fprintf(u.out, "  1) %s\n", entities.ModeGroup.Label())
		fmt.Fprintf(u.out, "  2) %s\n", entities.ModeMarked.Label())
		fmt.Fprintf(u.out, "  3) %s\n", entities.ModeWeak.Label())
		fmt.Fprintln(u.out, "  4) Word statistics")
		fmt.Fprintln(u.out, "  q) Quit")
		fmt.Fprint(u.out, "> ")

		line, ok := u.readLine()
		if !ok {
			return nil
		}

		switch strings.TrimSpace(line) {
		case "1":
			if err := u.runContinueLearning(); err != nil {
				return err
			}
		case "2":
			if err := u.runFiltered(entities.ModeMarked); err != nil {
				return err
			}
		case "3":
			if err := u.runFiltered(entities.ModeWeak); err != nil {
				return err
			}
		case "4":
			if err := u.showStats(); err != nil {
				return err
			}
		case "q", "Q":
			return nil
		}
	}
}

// runContinueLearning asks for a group, then runs a practice pass followed
// by a test pass over the same group, the way a study round works.
func (u *UI) runContinueLearning() error {
	groups, err := u.app.Groups()
	if err != nil {
		return err
	}
	if len(groups) == 0 {
		fmt.Fprintln(u.out, "No vocabulary yet. Run `vocabulator seed <path>` first.")
		return nil
	}

	fmt.Fprintf(u.out, "Groups: %s\n", joinInts(groups))
	fmt.Fprint(u.out, "Group> ")
	line, ok := u.readLine()
	if !ok {
		return nil
	}
	groupID, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		fmt.Fprintln(u.out, "Not a group number.")
		return nil
	}

	criterion := session.Criterion{Mode: entities.ModeGroup, GroupID: groupID}
	if done, err := u.runSession(session.KindPractice, criterion); err != nil || done {
		return err
	}
	_, err = u.runSession(session.KindTest, criterion)
	return err
}

// runFiltered runs a study round over a filtered selection: a practice pass
// and then a test pass, the same rhythm as a group round. The test queue is
// rebuilt from the stats the practice pass just updated.
func (u *UI) runFiltered(mode entities.SessionMode) error {
	criterion := session.Criterion{Mode: mode}
	if done, err := u.runSession(session.KindPractice, criterion); err != nil || done {
		return err
	}
	_, err := u.runSession(session.KindTest, criterion)
	return err
}

// runSession drives one session to completion or early exit. The returned
// bool reports an early quit, which skips any follow-up pass.
func (u *UI) runSession(kind session.Kind, criterion session.Criterion) (bool, error) {
	sess, err := u.app.StartSession(kind, criterion)
	if err != nil {
		return false, err
	}
	// Drain pending progress writes whenever the session ends.
	defer func() {
		if err := u.app.EndSession(); err != nil {
			fmt.Fprintf(u.out, "Warning: progress not fully saved: %v\n", err)
		}
	}()

	quit := false
	for !sess.Complete() {
		if kind == session.KindPractice {
			quit = u.practiceWord(sess)
		} else {
			quit = u.testWord(sess)
		}
		if quit {
			return true, nil
		}
	}

	s := sess.Summary()
	fmt.Fprintf(u.out, "\n%s session complete: %d/%d correct.\n", kind, s.Correct, s.Seen)
	return false, nil
}

// practiceWord handles one word in practice mode. d reveals the definition,
// c/w self-grade, m toggles the bookmark, Enter advances once graded, q
// returns to the menu.
func (u *UI) practiceWord(sess *session.Session) (quit bool) {
	word, _ := sess.Current()
	u.printHeader(sess, word.Term)

	for {
		fmt.Fprint(u.out, "[d]efinition [c]orrect [w]rong [m]ark [Enter]next [q]uit> ")
		line, ok := u.readLine()
		if !ok {
			return true
		}
		switch strings.TrimSpace(line) {
		case "d":
			sess.ShowDefinition()
			fmt.Fprintln(u.out, word.Definition)
		case "c":
			sess.Grade(true)
			fmt.Fprintln(u.out, "Marked correct.")
		case "w":
			sess.Grade(false)
			fmt.Fprintln(u.out, "Marked wrong.")
		case "m":
			sess.ToggleBookmark()
			fmt.Fprintf(u.out, "Bookmarked: %v\n", sess.Stat().Bookmarked)
		case "":
			if sess.Phase() == session.PhaseGraded {
				sess.Advance()
				return false
			}
		case "q":
			return true
		}
	}
}

// testWord handles one word in test mode: the typed line becomes the
// insert-mode buffer, submitted on Enter. :m bookmarks, :q quits.
func (u *UI) testWord(sess *session.Session) (quit bool) {
	word, _ := sess.Current()
	u.printHeader(sess, word.Definition)

	for {
		fmt.Fprint(u.out, "answer (:m mark, :q quit)> ")
		line, ok := u.readLine()
		if !ok {
			return true
		}
		switch strings.TrimSpace(line) {
		case ":q":
			return true
		case ":m":
			sess.ToggleBookmark()
			fmt.Fprintf(u.out, "Bookmarked: %v\n", sess.Stat().Bookmarked)
		default:
			sess.BeginInsert()
			for _, c := range line {
				sess.AppendChar(c)
			}
			sess.Submit()
			if correct, ok := sess.Answered(); ok {
				if correct {
					fmt.Fprintf(u.out, "Correct: %s\n", word.Term)
				} else {
					fmt.Fprintf(u.out, "Wrong. The word was: %s\n", word.Term)
				}
			}
			sess.Advance()
			return false
		}
	}
}

func (u *UI) printHeader(sess *session.Session, prompt string) {
	idx, total := sess.Position()
	st := sess.Stat()
	acc, ok := st.Accuracy()
	fmt.Fprintf(u.out, "\n[%d/%d] %s\n", idx+1, total, prompt)
	fmt.Fprintf(u.out, "  seen %d · accuracy %s · last %s\n",
		st.TimesSeen,
		utils.Percent(acc, ok),
		utils.RelativeTime(st.LastSeen, time.Now()))
}

// showStats prints the per-word statistics table.
func (u *UI) showStats() error {
	words, err := u.app.Words().All()
	if err != nil {
		return err
	}

	now := time.Now()
	fmt.Fprintf(u.out, "\n%-20s %5s %9s %12s %s\n", "TERM", "SEEN", "ACCURACY", "LAST SEEN", "MARK")
	for _, w := range words {
		st := u.app.Store().Get(w.ID)
		acc, ok := st.Accuracy()
		mark := ""
		if st.Bookmarked {
			mark = "*"
		}
		fmt.Fprintf(u.out, "%-20s %5d %9s %12s %s\n",
			w.Term,
			st.TimesSeen,
			utils.Percent(acc, ok),
			utils.RelativeTime(st.LastSeen, now),
			mark)
	}
	return nil
}

func (u *UI) readLine() (string, bool) {
	if !u.in.Scan() {
		return "", false
	}
	return u.in.Text(), true
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ", ")
}
