package presenter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Shiziso/Bot/internal/catalog"
	"github.com/Shiziso/Bot/internal/scoring"
)

func TestRenderQuestion(t *testing.T) {
	def := &catalog.TestDefinition{
		Name: "Demo",
		Questions: []catalog.Question{
			{Prompt: "q1", Options: []catalog.AnswerOption{{Label: "Нет"}, {Label: "Да"}}},
		},
	}

	v := RenderQuestion(def, &def.Questions[0], 2, 7)
	assert.Equal(t, "Demo", v.TestName)
	assert.Equal(t, "q1", v.Prompt)
	assert.Equal(t, []string{"Нет", "Да"}, v.Options)
	assert.Equal(t, "3 из 7", v.Progress)
}

func TestRenderResultSum(t *testing.T) {
	def := &catalog.TestDefinition{Name: "Demo", Strategy: catalog.StrategySum}
	r := &scoring.Result{Score: 5, Interpretation: "moderate"}

	v := RenderResult(def, r)
	assert.False(t, v.PerSubscale)
	assert.Equal(t, 5, v.Score)
	assert.Equal(t, "moderate", v.Interpretation)
	assert.Equal(t, Disclaimer, v.Disclaimer)
	assert.Empty(t, v.Subscales)
}

func TestRenderResultSubscalesKeepsDefinitionOrder(t *testing.T) {
	def := &catalog.TestDefinition{
		Name:      "Demo",
		Strategy:  catalog.StrategySubscales,
		Subscales: []string{"anxiety", "depression"},
	}
	r := &scoring.Result{
		Score:                   12,
		SubscaleScores:          map[string]int{"depression": 4, "anxiety": 8},
		SubscaleInterpretations: map[string]string{"depression": "norm", "anxiety": "high"},
	}

	v := RenderResult(def, r)
	assert.True(t, v.PerSubscale)
	assert.Empty(t, v.Interpretation)
	assert.Equal(t, []SubscaleLine{
		{ID: "anxiety", Score: 8, Interpretation: "high"},
		{ID: "depression", Score: 4, Interpretation: "norm"},
	}, v.Subscales)
}
