package catalog

import (
	"fmt"
	"sort"

	"github.com/Shiziso/Bot/internal/errs"
)

func invalid(testID, format string, args ...interface{}) error {
	return errs.New(errs.CodeInvalidDefinition,
		fmt.Sprintf("test %q: ", testID)+fmt.Sprintf(format, args...))
}

// validateTest checks a definition once at load time so that every use
// site can trust the shape: questions with scored options, subscale
// assignments that partition the question set, and interpretation ranges
// that are contiguous, non-overlapping and cover every attainable score.
func validateTest(t *TestDefinition) error {
	if t.ID == "" {
		return errs.New(errs.CodeInvalidDefinition, "test without id")
	}
	if t.Name == "" {
		return invalid(t.ID, "missing name")
	}
	if len(t.Questions) == 0 {
		return invalid(t.ID, "no questions")
	}
	for i, q := range t.Questions {
		if q.Prompt == "" {
			return invalid(t.ID, "question %d has no prompt", i)
		}
		if len(q.Options) < 2 {
			return invalid(t.ID, "question %d has fewer than two options", i)
		}
		for j, o := range q.Options {
			if o.Label == "" {
				return invalid(t.ID, "question %d option %d has no label", i, j)
			}
		}
	}

	switch t.Strategy {
	case StrategySum:
		if len(t.Subscales) > 0 || len(t.SubscaleInterpretations) > 0 {
			return invalid(t.ID, "sum strategy with subscale data")
		}
		lo, hi := attainableRange(t.Questions, "")
		return validateRanges(t.ID, "", t.Interpretations, lo, hi)

	case StrategySubscales:
		if len(t.Subscales) == 0 {
			return invalid(t.ID, "subscales strategy without subscale list")
		}
		known := make(map[string]bool, len(t.Subscales))
		for _, s := range t.Subscales {
			if s == "" {
				return invalid(t.ID, "empty subscale id")
			}
			if known[s] {
				return invalid(t.ID, "duplicate subscale %q", s)
			}
			known[s] = true
		}
		seen := make(map[string]int, len(t.Subscales))
		for i, q := range t.Questions {
			if q.Subscale == "" {
				return invalid(t.ID, "question %d has no subscale", i)
			}
			if !known[q.Subscale] {
				return invalid(t.ID, "question %d references unknown subscale %q", i, q.Subscale)
			}
			seen[q.Subscale]++
		}
		for _, s := range t.Subscales {
			if seen[s] == 0 {
				return invalid(t.ID, "subscale %q has no questions", s)
			}
			ranges, ok := t.SubscaleInterpretations[s]
			if !ok {
				return invalid(t.ID, "subscale %q has no interpretation table", s)
			}
			lo, hi := attainableRange(t.Questions, s)
			if err := validateRanges(t.ID, s, ranges, lo, hi); err != nil {
				return err
			}
		}
		return nil

	default:
		return invalid(t.ID, "unknown strategy %q", t.Strategy)
	}
}

// attainableRange returns the minimum and maximum total score reachable by
// any answer combination, restricted to the given subscale when non-empty.
func attainableRange(questions []Question, subscale string) (lo, hi int) {
	for _, q := range questions {
		if subscale != "" && q.Subscale != subscale {
			continue
		}
		qLo, qHi := q.Options[0].Score, q.Options[0].Score
		for _, o := range q.Options[1:] {
			if o.Score < qLo {
				qLo = o.Score
			}
			if o.Score > qHi {
				qHi = o.Score
			}
		}
		lo += qLo
		hi += qHi
	}
	return lo, hi
}

func validateRanges(testID, subscale string, ranges []Interpretation, lo, hi int) error {
	where := ""
	if subscale != "" {
		where = fmt.Sprintf("subscale %q: ", subscale)
	}
	if len(ranges) == 0 {
		return invalid(testID, "%sno interpretation ranges", where)
	}
	sorted := make([]Interpretation, len(ranges))
	copy(sorted, ranges)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Min < sorted[j].Min })

	if sorted[0].Min != lo {
		return invalid(testID, "%sranges start at %d, attainable minimum is %d", where, sorted[0].Min, lo)
	}
	for i, r := range sorted {
		if r.Text == "" {
			return invalid(testID, "%srange [%d,%d] has no text", where, r.Min, r.Max)
		}
		if r.Max < r.Min {
			return invalid(testID, "%srange [%d,%d] is inverted", where, r.Min, r.Max)
		}
		if i > 0 && r.Min != sorted[i-1].Max+1 {
			return invalid(testID, "%sgap or overlap between [%d,%d] and [%d,%d]",
				where, sorted[i-1].Min, sorted[i-1].Max, r.Min, r.Max)
		}
	}
	if last := sorted[len(sorted)-1]; last.Max != hi {
		return invalid(testID, "%sranges end at %d, attainable maximum is %d", where, last.Max, hi)
	}
	return nil
}
