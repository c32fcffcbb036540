// Package scoring turns a completed answer set into a scored, interpreted
// result. Everything here is pure: no I/O, no clock reads, no randomness.
package scoring

import (
	"context"
	"fmt"
	"time"

	"github.com/Shiziso/Bot/internal/catalog"
	"github.com/Shiziso/Bot/internal/errs"
	"github.com/Shiziso/Bot/internal/session"
)

// Result is the immutable outcome of a completed attempt. It snapshots
// the test name and interpretation text so that later catalog edits do
// not invalidate stored history.
type Result struct {
	UserID      int64
	TestID      string
	TestName    string
	CompletedAt time.Time

	// Score is the total. For the subscales strategy it is the sum of
	// subscale scores and is kept for storage and summaries only;
	// display is per subscale.
	Score          int
	Interpretation string

	SubscaleScores          map[string]int
	SubscaleInterpretations map[string]string

	// Answers holds the selected option index per question, in question
	// order, for auditability and replay.
	Answers []int
}

// ResultStore is the persistence boundary. Implementations decide their
// own transactional guarantees; the engine never retries a failed save.
type ResultStore interface {
	Save(ctx context.Context, r *Result) (uint, error)
	History(ctx context.Context, userID int64, testID string, limit int) ([]Result, error)
}

// NextQuestion returns the question the session is waiting on, or
// done=true once every question has been answered and ComputeResult
// should be called.
func NextQuestion(t *catalog.TestDefinition, s *session.Session) (q *catalog.Question, index int, done bool) {
	if s.Current >= len(t.Questions) {
		return nil, 0, true
	}
	return &t.Questions[s.Current], s.Current, false
}

// ComputeResult scores a complete answer set against the definition.
// answers[i] is the selected option index for question i. The caller
// supplies completedAt; identical (test, answers) inputs always produce
// identical scores and interpretation text.
func ComputeResult(t *catalog.TestDefinition, answers []int, userID int64, completedAt time.Time) (*Result, error) {
	if len(answers) != len(t.Questions) {
		return nil, errs.InvalidAnswerSet(fmt.Sprintf("test %q expects %d answers, got %d",
			t.ID, len(t.Questions), len(answers)))
	}
	for i, a := range answers {
		if a < 0 || a >= len(t.Questions[i].Options) {
			return nil, errs.InvalidAnswerSet(fmt.Sprintf("answer %d of test %q selects option %d of %d",
				i, t.ID, a, len(t.Questions[i].Options)))
		}
	}

	r := &Result{
		UserID:      userID,
		TestID:      t.ID,
		TestName:    t.Name,
		CompletedAt: completedAt,
		Answers:     append([]int(nil), answers...),
	}

	switch t.Strategy {
	case catalog.StrategySum:
		for i, a := range answers {
			r.Score += t.Questions[i].Options[a].Score
		}
		text, err := interpret(t.ID, "", t.Interpretations, r.Score)
		if err != nil {
			return nil, err
		}
		r.Interpretation = text
		return r, nil

	case catalog.StrategySubscales:
		r.SubscaleScores = make(map[string]int, len(t.Subscales))
		r.SubscaleInterpretations = make(map[string]string, len(t.Subscales))
		for i, a := range answers {
			q := t.Questions[i]
			r.SubscaleScores[q.Subscale] += q.Options[a].Score
		}
		for _, sub := range t.Subscales {
			score := r.SubscaleScores[sub]
			text, err := interpret(t.ID, sub, t.SubscaleInterpretations[sub], score)
			if err != nil {
				return nil, err
			}
			r.SubscaleInterpretations[sub] = text
			r.Score += score
		}
		return r, nil

	default:
		return nil, errs.New(errs.CodeInvalidDefinition, fmt.Sprintf("test %q has unknown strategy %q", t.ID, t.Strategy))
	}
}

// interpret resolves score against an ordered range table. A missing
// match means the catalog data is malformed; it is surfaced as an error,
// never silently replaced with an empty interpretation.
func interpret(testID, subscale string, ranges []catalog.Interpretation, score int) (string, error) {
	for _, r := range ranges {
		if score >= r.Min && score <= r.Max {
			return r.Text, nil
		}
	}
	where := testID
	if subscale != "" {
		where = testID + "/" + subscale
	}
	return "", errs.InterpretationGap(fmt.Sprintf("no interpretation range for score %d of %s", score, where))
}
