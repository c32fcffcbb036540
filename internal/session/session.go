// Package session tracks one in-flight test attempt per user.
package session

import (
	"fmt"
	"time"

	"github.com/Shiziso/Bot/internal/catalog"
	"github.com/Shiziso/Bot/internal/errs"
)

type State int

const (
	StateNotStarted State = iota
	StateInProgress
	StateCompleted
	StateCancelled
)

func (s State) Terminal() bool { return s == StateCompleted || s == StateCancelled }

// Session is a single user's attempt at a single test. Answers are
// recorded strictly in question order: the only exposed transition is
// "answer the current question", so out-of-order submission cannot occur.
type Session struct {
	UserID     int64
	TestID     string
	Current    int
	Answers    []int
	BySubscale map[string][]int
	State      State
	StartedAt  time.Time
}

// RecordAnswer validates optionIndex against the current question and
// advances the session. On the last question the session transitions to
// Completed. A failed validation leaves the session untouched.
func (s *Session) RecordAnswer(t *catalog.TestDefinition, optionIndex int) error {
	if s.State.Terminal() {
		return errs.SessionTerminal(fmt.Sprintf("session for test %q is already finished", s.TestID))
	}
	if s.Current >= len(t.Questions) {
		return errs.SessionTerminal(fmt.Sprintf("no questions left in test %q", s.TestID))
	}
	q := t.Questions[s.Current]
	if optionIndex < 0 || optionIndex >= len(q.Options) {
		return errs.InvalidOption(fmt.Sprintf("option %d out of range for question %d of test %q",
			optionIndex, s.Current, s.TestID))
	}

	s.Answers = append(s.Answers, optionIndex)
	if t.Strategy == catalog.StrategySubscales {
		if s.BySubscale == nil {
			s.BySubscale = make(map[string][]int, len(t.Subscales))
		}
		s.BySubscale[q.Subscale] = append(s.BySubscale[q.Subscale], optionIndex)
	}
	s.Current++
	s.State = StateInProgress
	if s.Current == len(t.Questions) {
		s.State = StateCompleted
	}
	return nil
}

// Done reports whether every question has been answered.
func (s *Session) Done(t *catalog.TestDefinition) bool {
	return s.Current >= len(t.Questions)
}
