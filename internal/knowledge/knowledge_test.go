package knowledge

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/felixgeelhaar/antivibe/internal/domain"
	"github.com/google/go-cmp/cmp"
)

func TestDefault_ProblemTypes(t *testing.T) {
	kb := Default()

	want := []domain.ProblemType{
		domain.ProblemTwoSum,
		domain.ProblemBinarySearch,
		domain.ProblemStringReversal,
		domain.ProblemGeneral,
	}
	if diff := cmp.Diff(want, kb.ProblemTypes()); diff != "" {
		t.Errorf("ProblemTypes() mismatch (-want +got):\n%s", diff)
	}
}

func TestDefault_IsShared(t *testing.T) {
	if Default() != Default() {
		t.Error("Default() should return the same instance")
	}
}

func TestDefault_LinkedListHasNoEntry(t *testing.T) {
	kb := Default()
	if kb.Has(domain.ProblemLinkedList) {
		t.Error("linked_list should not have a hint table")
	}
	if !kb.Has(domain.ProblemGeneral) {
		t.Error("general should have a hint table")
	}
}

func TestDefault_GeneralLevelOneHasTwoHints(t *testing.T) {
	hints := Default().Hints(domain.ProblemGeneral, domain.LevelConceptual)
	want := []string{
		"Think about the problem step by step. What's the simplest case?",
		"Consider the time and space complexity of your approach.",
	}
	if diff := cmp.Diff(want, hints); diff != "" {
		t.Errorf("Hints(general, 1) mismatch (-want +got):\n%s", diff)
	}
}

func TestDefault_EveryTypeHasEveryLevel(t *testing.T) {
	kb := Default()
	for _, pt := range kb.ProblemTypes() {
		for _, level := range domain.HintLevels {
			if len(kb.Hints(pt, level)) == 0 {
				t.Errorf("Hints(%s, %d) is empty", pt, level)
			}
		}
		if len(kb.Questions(pt)) == 0 {
			t.Errorf("Questions(%s) is empty", pt)
		}
		if len(kb.Resources(pt)) == 0 {
			t.Errorf("Resources(%s) is empty", pt)
		}
	}
	if len(kb.NextSteps()) != 4 {
		t.Errorf("NextSteps() has %d entries, want 4", len(kb.NextSteps()))
	}
}

func TestHints_UnknownTypeFallsBackToGeneral(t *testing.T) {
	kb := Default()
	for _, level := range domain.HintLevels {
		got := kb.Hints(domain.ProblemLinkedList, level)
		want := kb.Hints(domain.ProblemGeneral, level)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Hints(linked_list, %d) mismatch (-want +got):\n%s", level, diff)
		}
	}

	if diff := cmp.Diff(kb.Questions(domain.ProblemGeneral), kb.Questions("nope")); diff != "" {
		t.Errorf("Questions(unknown) mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(kb.Resources(domain.ProblemGeneral), kb.Resources("nope")); diff != "" {
		t.Errorf("Resources(unknown) mismatch (-want +got):\n%s", diff)
	}
}

const sparseBase = `
hints:
  general:
    1: ["g1"]
    2: ["g2"]
    3: ["g3"]
    4: ["g4"]
  graphs:
    1: ["graph level one"]
    3: []
  trees:
    2: ["tree level two"]
questions:
  general: ["q1", "q2", "q3"]
  graphs: []
resources:
  general: ["r1"]
next_steps: ["step"]
`

func TestHints_MissingLevelFallsBackToLevelOne(t *testing.T) {
	kb, err := Parse([]byte(sparseBase))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if diff := cmp.Diff([]string{"graph level one"}, kb.Hints("graphs", domain.LevelCodeStructure)); diff != "" {
		t.Errorf("missing level mismatch (-want +got):\n%s", diff)
	}

	// A present but empty level is not a missing level.
	if got := kb.Hints("graphs", domain.LevelImplementation); len(got) != 0 {
		t.Errorf("Hints(graphs, 3) = %v, want empty", got)
	}

	// No level 1 to fall back to.
	if got := kb.Hints("trees", domain.LevelImplementation); len(got) != 0 {
		t.Errorf("Hints(trees, 3) = %v, want empty", got)
	}
}

func TestQuestions_PresentButEmptyIsNotReplaced(t *testing.T) {
	kb, err := Parse([]byte(sparseBase))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got := kb.Questions("graphs"); len(got) != 0 {
		t.Errorf("Questions(graphs) = %v, want empty", got)
	}
	if diff := cmp.Diff([]string{"r1"}, kb.Resources("graphs")); diff != "" {
		t.Errorf("Resources(graphs) mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_PreservesOrder(t *testing.T) {
	kb, err := Parse([]byte(sparseBase))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := []domain.ProblemType{"general", "graphs", "trees"}
	if diff := cmp.Diff(want, kb.ProblemTypes()); diff != "" {
		t.Errorf("ProblemTypes() mismatch (-want +got):\n%s", diff)
	}
}

func TestProblemTypes_ReturnsCopy(t *testing.T) {
	kb := Default()
	types := kb.ProblemTypes()
	types[0] = "mutated"
	if slices.Contains(kb.ProblemTypes(), "mutated") {
		t.Error("ProblemTypes() should return a copy")
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not yaml", "hints: [unterminated"},
		{"hints not a mapping", "hints: [a, b]"},
		{"no general hints", `
hints:
  two_sum: {1: ["a"]}
questions: {general: ["q"]}
resources: {general: ["r"]}
next_steps: ["s"]
`},
		{"general missing a level", `
hints:
  general: {1: ["a"], 2: ["b"], 3: ["c"]}
questions: {general: ["q"]}
resources: {general: ["r"]}
next_steps: ["s"]
`},
		{"level out of range", `
hints:
  general: {1: ["a"], 2: ["b"], 3: ["c"], 4: ["d"], 5: ["e"]}
questions: {general: ["q"]}
resources: {general: ["r"]}
next_steps: ["s"]
`},
		{"no general questions", `
hints:
  general: {1: ["a"], 2: ["b"], 3: ["c"], 4: ["d"]}
questions: {two_sum: ["q"]}
resources: {general: ["r"]}
next_steps: ["s"]
`},
		{"no general resources", `
hints:
  general: {1: ["a"], 2: ["b"], 3: ["c"], 4: ["d"]}
questions: {general: ["q"]}
next_steps: ["s"]
`},
		{"no next steps", `
hints:
  general: {1: ["a"], 2: ["b"], 3: ["c"], 4: ["d"]}
questions: {general: ["q"]}
resources: {general: ["r"]}
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if err == nil {
				t.Fatal("Parse() expected error")
			}
			if !errors.Is(err, domain.ErrInvalidKnowledgeBase) {
				t.Errorf("Parse() error = %v, want ErrInvalidKnowledgeBase", err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("empty path uses embedded", func(t *testing.T) {
		kb, err := Load("")
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if kb != Default() {
			t.Error("Load(\"\") should return the embedded knowledge base")
		}
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "kb.yaml")
		if err := os.WriteFile(path, []byte(sparseBase), 0644); err != nil {
			t.Fatalf("write file: %v", err)
		}
		kb, err := Load(path)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if !kb.Has("graphs") {
			t.Error("expected graphs problem type from file")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
			t.Error("Load() expected error for missing file")
		}
	})

	t.Run("invalid file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "kb.yaml")
		if err := os.WriteFile(path, []byte("next_steps: []"), 0644); err != nil {
			t.Fatalf("write file: %v", err)
		}
		if _, err := Load(path); !errors.Is(err, domain.ErrInvalidKnowledgeBase) {
			t.Errorf("Load() error = %v, want ErrInvalidKnowledgeBase", err)
		}
	})
}
