package bot

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitTextShortMessagePassesThrough(t *testing.T) {
	parts := splitText("hello", 100)
	assert.Equal(t, []string{"hello"}, parts)
}

func TestSplitTextPrefersNewlineBoundaries(t *testing.T) {
	text := "line one\nline two\nline three"
	parts := splitText(text, 12)

	assert.Equal(t, []string{"line one", "line two", "line three"}, parts)
}

func TestSplitTextNeverExceedsLimit(t *testing.T) {
	text := strings.Repeat("а", 50) + "\n" + strings.Repeat("б", 300)
	parts := splitText(text, 100)

	assert.Greater(t, len(parts), 1)
	for i, p := range parts {
		assert.LessOrEqual(t, len(p), 100, "part %d", i)
	}
	assert.Equal(t, strings.ReplaceAll(text, "\n", ""), strings.Join(parts, ""))
}
