package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shiziso/Bot/internal/catalog"
	"github.com/Shiziso/Bot/internal/errs"
	"github.com/Shiziso/Bot/internal/session"
)

func sumTest() *catalog.TestDefinition {
	return &catalog.TestDefinition{
		ID:       "demo",
		Name:     "Demo",
		Strategy: catalog.StrategySum,
		Questions: []catalog.Question{
			{Prompt: "q1", Options: []catalog.AnswerOption{{Label: "no", Score: 0}, {Label: "yes", Score: 1}}},
			{Prompt: "q2", Options: []catalog.AnswerOption{{Label: "no", Score: 0}, {Label: "yes", Score: 2}}},
		},
		Interpretations: []catalog.Interpretation{
			{Min: 0, Max: 1, Text: "low"},
			{Min: 2, Max: 3, Text: "high"},
		},
	}
}

func subscalesTest() *catalog.TestDefinition {
	opts := []catalog.AnswerOption{{Label: "no", Score: 0}, {Label: "yes", Score: 1}}
	return &catalog.TestDefinition{
		ID:        "demo2",
		Name:      "Demo 2",
		Strategy:  catalog.StrategySubscales,
		Subscales: []string{"a", "d"},
		Questions: []catalog.Question{
			{Prompt: "q1", Subscale: "a", Options: opts},
			{Prompt: "q2", Subscale: "d", Options: opts},
			{Prompt: "q3", Subscale: "a", Options: opts},
		},
		SubscaleInterpretations: map[string][]catalog.Interpretation{
			"a": {{Min: 0, Max: 1, Text: "a low"}, {Min: 2, Max: 2, Text: "a high"}},
			"d": {{Min: 0, Max: 0, Text: "d low"}, {Min: 1, Max: 1, Text: "d high"}},
		},
	}
}

func TestComputeResultSum(t *testing.T) {
	def := sumTest()
	completed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	r, err := ComputeResult(def, []int{1, 1}, 42, completed)
	require.NoError(t, err)
	assert.Equal(t, 3, r.Score)
	assert.Equal(t, "high", r.Interpretation)
	assert.Equal(t, int64(42), r.UserID)
	assert.Equal(t, "Demo", r.TestName)
	assert.Equal(t, completed, r.CompletedAt)
	assert.Equal(t, []int{1, 1}, r.Answers)
	assert.Empty(t, r.SubscaleScores)

	r, err = ComputeResult(def, []int{0, 0}, 42, completed)
	require.NoError(t, err)
	assert.Equal(t, 0, r.Score)
	assert.Equal(t, "low", r.Interpretation)
}

func TestComputeResultIsDeterministic(t *testing.T) {
	def := sumTest()
	completed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	first, err := ComputeResult(def, []int{1, 0}, 7, completed)
	require.NoError(t, err)
	second, err := ComputeResult(def, []int{1, 0}, 7, completed)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestComputeResultSubscales(t *testing.T) {
	def := subscalesTest()

	r, err := ComputeResult(def, []int{1, 0, 1}, 1, time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"a": 2, "d": 0}, r.SubscaleScores)
	assert.Equal(t, map[string]string{"a": "a high", "d": "d low"}, r.SubscaleInterpretations)
	assert.Equal(t, 2, r.Score)
	assert.Empty(t, r.Interpretation)
}

func TestComputeResultRejectsInvalidAnswerSets(t *testing.T) {
	def := sumTest()
	now := time.Now().UTC()

	_, err := ComputeResult(def, []int{1}, 1, now)
	assert.True(t, errs.Is(err, errs.CodeInvalidAnswerSet), "short answer set: %v", err)

	_, err = ComputeResult(def, []int{1, 1, 1}, 1, now)
	assert.True(t, errs.Is(err, errs.CodeInvalidAnswerSet), "long answer set: %v", err)

	_, err = ComputeResult(def, []int{1, 5}, 1, now)
	assert.True(t, errs.Is(err, errs.CodeInvalidAnswerSet), "out of range option: %v", err)

	_, err = ComputeResult(def, []int{-1, 0}, 1, now)
	assert.True(t, errs.Is(err, errs.CodeInvalidAnswerSet), "negative option: %v", err)
}

func TestComputeResultSurfacesInterpretationGap(t *testing.T) {
	def := sumTest()
	// Simulate a malformed table that slipped past loading.
	def.Interpretations = []catalog.Interpretation{{Min: 0, Max: 1, Text: "low"}}

	r, err := ComputeResult(def, []int{1, 1}, 1, time.Now().UTC())
	assert.Nil(t, r)
	assert.True(t, errs.Is(err, errs.CodeInterpretationGap), "got %v", err)
}

func TestNextQuestionWalksTheTest(t *testing.T) {
	def := sumTest()
	s := &session.Session{TestID: def.ID, State: session.StateInProgress}

	q, index, done := NextQuestion(def, s)
	require.False(t, done)
	assert.Equal(t, 0, index)
	assert.Equal(t, "q1", q.Prompt)

	require.NoError(t, s.RecordAnswer(def, 0))
	q, index, done = NextQuestion(def, s)
	require.False(t, done)
	assert.Equal(t, 1, index)
	assert.Equal(t, "q2", q.Prompt)

	require.NoError(t, s.RecordAnswer(def, 1))
	_, _, done = NextQuestion(def, s)
	assert.True(t, done)
}
