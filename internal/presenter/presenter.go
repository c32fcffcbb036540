// Package presenter builds the view models the conversational layer
// renders. It owns no Telegram specifics beyond plain strings.
package presenter

import (
	"fmt"

	"github.com/Shiziso/Bot/internal/catalog"
	"github.com/Shiziso/Bot/internal/scoring"
)

// Disclaimer accompanies every rendered result.
const Disclaimer = "⚠️ Важно: результаты тестов не являются диагнозом и не заменяют консультацию специалиста."

type QuestionView struct {
	TestName string
	Prompt   string
	Options  []string
	Progress string // "3 из 7"
}

type SubscaleLine struct {
	ID             string
	Score          int
	Interpretation string
}

type ResultView struct {
	TestName    string
	Score       int
	PerSubscale bool

	// Interpretation is set for sum-strategy tests, Subscales for the
	// subscale strategy (ordered as the definition orders them).
	Interpretation string
	Subscales      []SubscaleLine

	Disclaimer string
}

func RenderQuestion(t *catalog.TestDefinition, q *catalog.Question, index, total int) QuestionView {
	v := QuestionView{
		TestName: t.Name,
		Prompt:   q.Prompt,
		Options:  make([]string, 0, len(q.Options)),
		Progress: fmt.Sprintf("%d из %d", index+1, total),
	}
	for _, o := range q.Options {
		v.Options = append(v.Options, o.Label)
	}
	return v
}

func RenderResult(t *catalog.TestDefinition, r *scoring.Result) ResultView {
	v := ResultView{
		TestName:   t.Name,
		Score:      r.Score,
		Disclaimer: Disclaimer,
	}
	if t.Strategy == catalog.StrategySubscales {
		v.PerSubscale = true
		for _, sub := range t.Subscales {
			v.Subscales = append(v.Subscales, SubscaleLine{
				ID:             sub,
				Score:          r.SubscaleScores[sub],
				Interpretation: r.SubscaleInterpretations[sub],
			})
		}
		return v
	}
	v.Interpretation = r.Interpretation
	return v
}
