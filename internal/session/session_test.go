package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shiziso/Bot/internal/catalog"
	"github.com/Shiziso/Bot/internal/errs"
)

func sumTest() *catalog.TestDefinition {
	opts := []catalog.AnswerOption{{Label: "no", Score: 0}, {Label: "yes", Score: 1}}
	return &catalog.TestDefinition{
		ID:       "demo",
		Name:     "Demo",
		Strategy: catalog.StrategySum,
		Questions: []catalog.Question{
			{Prompt: "q1", Options: opts},
			{Prompt: "q2", Options: opts},
			{Prompt: "q3", Options: opts},
		},
	}
}

func subscalesTest() *catalog.TestDefinition {
	opts := []catalog.AnswerOption{{Label: "no", Score: 0}, {Label: "yes", Score: 1}}
	return &catalog.TestDefinition{
		ID:        "demo2",
		Strategy:  catalog.StrategySubscales,
		Subscales: []string{"a", "d"},
		Questions: []catalog.Question{
			{Prompt: "q1", Subscale: "a", Options: opts},
			{Prompt: "q2", Subscale: "d", Options: opts},
		},
	}
}

func TestRecordAnswerProgression(t *testing.T) {
	def := sumTest()
	s := &Session{TestID: def.ID, State: StateInProgress}

	require.NoError(t, s.RecordAnswer(def, 0))
	assert.Equal(t, 1, s.Current)
	assert.Equal(t, StateInProgress, s.State)

	require.NoError(t, s.RecordAnswer(def, 1))
	require.NoError(t, s.RecordAnswer(def, 1))
	assert.Equal(t, []int{0, 1, 1}, s.Answers)
	assert.Equal(t, StateCompleted, s.State)
	assert.True(t, s.Done(def))
}

func TestRecordAnswerRejectsOutOfRangeOption(t *testing.T) {
	def := sumTest()
	s := &Session{TestID: def.ID, State: StateInProgress}
	require.NoError(t, s.RecordAnswer(def, 0))

	for _, bad := range []int{-1, 2, 99} {
		err := s.RecordAnswer(def, bad)
		assert.True(t, errs.Is(err, errs.CodeInvalidOption), "option %d: %v", bad, err)
	}
	// A rejected answer must leave the session untouched.
	assert.Equal(t, 1, s.Current)
	assert.Equal(t, []int{0}, s.Answers)
	assert.Equal(t, StateInProgress, s.State)
}

func TestRecordAnswerOnFinishedSession(t *testing.T) {
	def := sumTest()
	s := &Session{TestID: def.ID, State: StateInProgress}
	for range def.Questions {
		require.NoError(t, s.RecordAnswer(def, 0))
	}

	err := s.RecordAnswer(def, 0)
	assert.True(t, errs.Is(err, errs.CodeSessionTerminal), "got %v", err)
	assert.Equal(t, []int{0, 0, 0}, s.Answers)

	s.State = StateCancelled
	err = s.RecordAnswer(def, 0)
	assert.True(t, errs.Is(err, errs.CodeSessionTerminal), "got %v", err)
}

func TestRecordAnswerGroupsBySubscale(t *testing.T) {
	def := subscalesTest()
	s := &Session{TestID: def.ID, State: StateInProgress}

	require.NoError(t, s.RecordAnswer(def, 1))
	require.NoError(t, s.RecordAnswer(def, 0))
	assert.Equal(t, map[string][]int{"a": {1}, "d": {0}}, s.BySubscale)
}

func TestStoreLastSelectionWins(t *testing.T) {
	st := NewStore()

	first := st.Start(1, "gad7")
	second := st.Start(1, "phq9")

	assert.Equal(t, StateCancelled, first.State)
	assert.Same(t, second, st.Get(1))
	assert.Equal(t, "phq9", st.Get(1).TestID)
}

func TestStoreCancelIsIdempotent(t *testing.T) {
	st := NewStore()

	// Cancelling with no session at all is a no-op.
	st.Cancel(1)
	assert.Nil(t, st.Get(1))

	st.Start(1, "gad7")
	st.Cancel(1)
	st.Cancel(1)
	assert.Nil(t, st.Get(1))
}

func TestStoreTimeoutBehavesLikeCancel(t *testing.T) {
	st := NewStore()
	st.Start(1, "gad7")
	st.Timeout(1)
	st.Timeout(1)
	assert.Nil(t, st.Get(1))
}

func TestStoreGetSkipsTerminalSessions(t *testing.T) {
	st := NewStore()
	s := st.Start(1, "gad7")
	s.State = StateCompleted
	assert.Nil(t, st.Get(1))
}

func TestStoreFinishDiscardsSession(t *testing.T) {
	st := NewStore()
	st.Start(1, "gad7")
	st.Finish(1)
	assert.Nil(t, st.Get(1))

	// Users are independent.
	st.Start(2, "phq9")
	st.Finish(1)
	assert.NotNil(t, st.Get(2))
}
