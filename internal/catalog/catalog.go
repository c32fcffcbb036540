package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Shiziso/Bot/internal/errs"
)

// Strategy selects how a completed answer set is turned into a score.
type Strategy string

const (
	// StrategySum adds every selected option score into a single total.
	StrategySum Strategy = "sum"
	// StrategySubscales scores and interprets each subscale independently.
	StrategySubscales Strategy = "subscales"
)

// AnswerOption is one selectable answer. Scores are final values: for
// reverse-scored questions the reversal is already baked into the score
// column of the catalog file, and Question.Reverse is informational only.
type AnswerOption struct {
	Label string `yaml:"label"`
	Score int    `yaml:"score"`
}

type Question struct {
	Prompt   string         `yaml:"prompt"`
	Options  []AnswerOption `yaml:"options"`
	Subscale string         `yaml:"subscale,omitempty"`
	Reverse  bool           `yaml:"reverse,omitempty"`
}

// Interpretation maps a contiguous score range [Min, Max] to advisory text.
type Interpretation struct {
	Min  int    `yaml:"min"`
	Max  int    `yaml:"max"`
	Text string `yaml:"text"`
}

type TestDefinition struct {
	ID          string     `yaml:"id"`
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Category    string     `yaml:"category"`
	Minutes     int        `yaml:"minutes"`
	Strategy    Strategy   `yaml:"strategy"`
	Subscales   []string   `yaml:"subscales,omitempty"`
	Questions   []Question `yaml:"questions"`

	// Interpretations is used by the sum strategy,
	// SubscaleInterpretations by the subscales strategy.
	Interpretations         []Interpretation            `yaml:"interpretations,omitempty"`
	SubscaleInterpretations map[string][]Interpretation `yaml:"subscale_interpretations,omitempty"`
}

type Category struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`

	// TestIDs is filled during catalog construction, in file order.
	TestIDs []string `yaml:"-"`
}

// Summary is the lightweight listing shape for test pickers.
type Summary struct {
	ID            string
	Name          string
	Description   string
	QuestionCount int
	Minutes       int
}

// Catalog is the read-only registry of test definitions. It is built once
// at startup and is safe for concurrent readers.
type Catalog struct {
	categories []Category
	order      []string
	tests      map[string]*TestDefinition
}

type catalogFile struct {
	Categories []Category        `yaml:"categories"`
	Tests      []*TestDefinition `yaml:"tests"`
}

//go:embed tests.yaml
var embeddedCatalog []byte

// Default builds the catalog shipped with the binary.
func Default() (*Catalog, error) {
	return parse(embeddedCatalog)
}

// Load reads and parses a catalog YAML file, falling back to nothing:
// a broken file is a startup error, never a partially loaded catalog.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return parse(data)
}

func parse(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal catalog YAML: %w", err)
	}

	c := &Catalog{
		categories: file.Categories,
		tests:      make(map[string]*TestDefinition, len(file.Tests)),
	}

	catIndex := make(map[string]int, len(file.Categories))
	for i, cat := range file.Categories {
		if cat.ID == "" {
			return nil, errs.New(errs.CodeInvalidDefinition, "category without id")
		}
		if _, dup := catIndex[cat.ID]; dup {
			return nil, errs.New(errs.CodeInvalidDefinition, fmt.Sprintf("duplicate category %q", cat.ID))
		}
		catIndex[cat.ID] = i
	}

	for _, t := range file.Tests {
		if err := validateTest(t); err != nil {
			return nil, err
		}
		if _, dup := c.tests[t.ID]; dup {
			return nil, errs.New(errs.CodeInvalidDefinition, fmt.Sprintf("duplicate test %q", t.ID))
		}
		i, ok := catIndex[t.Category]
		if !ok {
			return nil, errs.New(errs.CodeInvalidDefinition,
				fmt.Sprintf("test %q references unknown category %q", t.ID, t.Category))
		}
		c.categories[i].TestIDs = append(c.categories[i].TestIDs, t.ID)
		c.order = append(c.order, t.ID)
		c.tests[t.ID] = t
	}

	return c, nil
}

// Get returns the definition for id.
func (c *Catalog) Get(id string) (*TestDefinition, error) {
	t, ok := c.tests[id]
	if !ok {
		return nil, errs.NotFound(fmt.Sprintf("test %q not found", id))
	}
	return t, nil
}

// Categories lists categories in file order, member test ids included.
func (c *Catalog) Categories() []Category {
	out := make([]Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// TestsInCategory lists summaries of the category's tests in file order.
func (c *Catalog) TestsInCategory(categoryID string) ([]Summary, error) {
	for _, cat := range c.categories {
		if cat.ID != categoryID {
			continue
		}
		out := make([]Summary, 0, len(cat.TestIDs))
		for _, id := range cat.TestIDs {
			t := c.tests[id]
			out = append(out, Summary{
				ID:            t.ID,
				Name:          t.Name,
				Description:   t.Description,
				QuestionCount: len(t.Questions),
				Minutes:       t.Minutes,
			})
		}
		return out, nil
	}
	return nil, errs.NotFound(fmt.Sprintf("category %q not found", categoryID))
}

// Tests lists all test summaries in file order.
func (c *Catalog) Tests() []Summary {
	out := make([]Summary, 0, len(c.order))
	for _, id := range c.order {
		t := c.tests[id]
		out = append(out, Summary{
			ID:            t.ID,
			Name:          t.Name,
			Description:   t.Description,
			QuestionCount: len(t.Questions),
			Minutes:       t.Minutes,
		})
	}
	return out
}
