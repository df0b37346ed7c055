// Package knowledge holds the static hint, question and resource tables the
// hint service selects from. A Base is built once at startup and is read-only
// afterwards, so it can be shared across goroutines without locking.
package knowledge

import (
	_ "embed"
	"fmt"
	"os"
	"slices"
	"sync"

	"github.com/felixgeelhaar/antivibe/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed knowledge.yaml
var embedded []byte

// Base is an immutable knowledge base
type Base struct {
	hints     map[domain.ProblemType]map[domain.HintLevel][]string
	questions map[domain.ProblemType][]string
	resources map[domain.ProblemType][]string
	nextSteps []string
	types     []domain.ProblemType // hint table keys in file order
}

// file is the YAML layout of a knowledge base
type file struct {
	Hints     hintTable           `yaml:"hints"`
	Questions map[string][]string `yaml:"questions"`
	Resources map[string][]string `yaml:"resources"`
	NextSteps []string            `yaml:"next_steps"`
}

// hintTable keeps the order problem types appear in so listings are stable
type hintTable struct {
	order  []string
	levels map[string]map[int][]string
}

func (t *hintTable) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("hints: expected a mapping at line %d", value.Line)
	}

	t.levels = make(map[string]map[int][]string, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		key := value.Content[i].Value

		var levels map[int][]string
		if err := value.Content[i+1].Decode(&levels); err != nil {
			return fmt.Errorf("hints.%s: %w", key, err)
		}

		if _, seen := t.levels[key]; !seen {
			t.order = append(t.order, key)
		}
		t.levels[key] = levels
	}
	return nil
}

var defaultBase = sync.OnceValue(func() *Base {
	b, err := Parse(embedded)
	if err != nil {
		panic(fmt.Sprintf("embedded knowledge base: %v", err))
	}
	return b
})

// Default returns the knowledge base compiled into the binary
func Default() *Base {
	return defaultBase()
}

// Load returns the knowledge base at path, or the embedded one when path is empty
func Load(path string) (*Base, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read knowledge base: %w", err)
	}

	b, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse knowledge base %s: %w", path, err)
	}
	return b, nil
}

// Parse decodes and validates a YAML knowledge base.
// The general problem type must be present in every table and carry hints
// for all four levels, because every lookup falls back to it.
func Parse(data []byte) (*Base, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidKnowledgeBase, err)
	}

	b := &Base{
		hints:     make(map[domain.ProblemType]map[domain.HintLevel][]string, len(f.Hints.order)),
		questions: make(map[domain.ProblemType][]string, len(f.Questions)),
		resources: make(map[domain.ProblemType][]string, len(f.Resources)),
		nextSteps: f.NextSteps,
	}

	for _, key := range f.Hints.order {
		pt := domain.ProblemType(key)
		levels := make(map[domain.HintLevel][]string, len(f.Hints.levels[key]))
		for n, hints := range f.Hints.levels[key] {
			level, err := domain.ParseHintLevel(n)
			if err != nil {
				return nil, fmt.Errorf("%w: hints.%s: %v", domain.ErrInvalidKnowledgeBase, key, err)
			}
			levels[level] = hints
		}
		b.hints[pt] = levels
		b.types = append(b.types, pt)
	}
	for key, questions := range f.Questions {
		b.questions[domain.ProblemType(key)] = questions
	}
	for key, resources := range f.Resources {
		b.resources[domain.ProblemType(key)] = resources
	}

	if err := b.validate(); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Base) validate() error {
	general, ok := b.hints[domain.ProblemGeneral]
	if !ok {
		return fmt.Errorf("%w: hints has no %q entry", domain.ErrInvalidKnowledgeBase, domain.ProblemGeneral)
	}
	for _, level := range domain.HintLevels {
		if len(general[level]) == 0 {
			return fmt.Errorf("%w: hints.%s has no level %d hints", domain.ErrInvalidKnowledgeBase, domain.ProblemGeneral, level)
		}
	}
	if _, ok := b.questions[domain.ProblemGeneral]; !ok {
		return fmt.Errorf("%w: questions has no %q entry", domain.ErrInvalidKnowledgeBase, domain.ProblemGeneral)
	}
	if _, ok := b.resources[domain.ProblemGeneral]; !ok {
		return fmt.Errorf("%w: resources has no %q entry", domain.ErrInvalidKnowledgeBase, domain.ProblemGeneral)
	}
	if len(b.nextSteps) == 0 {
		return fmt.Errorf("%w: next_steps is empty", domain.ErrInvalidKnowledgeBase)
	}
	return nil
}

// Hints returns the candidate hints for a problem type and level.
// Unknown problem types use the general table; a level missing from the
// resolved table falls back to that table's level 1 list.
// The returned slice is shared and must not be modified.
func (b *Base) Hints(pt domain.ProblemType, level domain.HintLevel) []string {
	table, ok := b.hints[pt]
	if !ok {
		table = b.hints[domain.ProblemGeneral]
	}
	hints, ok := table[level]
	if !ok {
		hints = table[domain.LevelConceptual]
	}
	return hints
}

// Questions returns the guiding questions for a problem type, falling back to general.
// The returned slice is shared and must not be modified.
func (b *Base) Questions(pt domain.ProblemType) []string {
	if questions, ok := b.questions[pt]; ok {
		return questions
	}
	return b.questions[domain.ProblemGeneral]
}

// Resources returns the learning resources for a problem type, falling back to general.
// The returned slice is shared and must not be modified.
func (b *Base) Resources(pt domain.ProblemType) []string {
	if resources, ok := b.resources[pt]; ok {
		return resources
	}
	return b.resources[domain.ProblemGeneral]
}

// NextSteps returns the fixed next-step suggestions.
// The returned slice is shared and must not be modified.
func (b *Base) NextSteps() []string {
	return b.nextSteps
}

// ProblemTypes returns every problem type with a hint table, in file order
func (b *Base) ProblemTypes() []domain.ProblemType {
	return slices.Clone(b.types)
}

// Has reports whether pt has its own hint table
func (b *Base) Has(pt domain.ProblemType) bool {
	_, ok := b.hints[pt]
	return ok
}
