package domain

import (
	"encoding/json"
	"fmt"
	"math"
)

// HintLevel represents how specific a hint is allowed to be
type HintLevel int

const (
	LevelConceptual     HintLevel = 1 // What to think about
	LevelAlgorithm      HintLevel = 2 // Which technique or data structure
	LevelImplementation HintLevel = 3 // How the steps fit together
	LevelCodeStructure  HintLevel = 4 // Template-level outline
)

// HintLevels lists every valid level in ascending order
var HintLevels = []HintLevel{
	LevelConceptual,
	LevelAlgorithm,
	LevelImplementation,
	LevelCodeStructure,
}

// Valid reports whether l is one of the four defined levels
func (l HintLevel) Valid() bool {
	return l >= LevelConceptual && l <= LevelCodeStructure
}

// String returns the human-readable name of the hint level
func (l HintLevel) String() string {
	switch l {
	case LevelConceptual:
		return "conceptual"
	case LevelAlgorithm:
		return "algorithm"
	case LevelImplementation:
		return "implementation"
	case LevelCodeStructure:
		return "code_structure"
	default:
		return "unknown"
	}
}

// Description returns a description of what this level provides
func (l HintLevel) Description() string {
	switch l {
	case LevelConceptual:
		return "Point at the idea behind the problem"
	case LevelAlgorithm:
		return "Name the technique or data structure to reach for"
	case LevelImplementation:
		return "Walk through the implementation steps"
	case LevelCodeStructure:
		return "Outline the code structure"
	default:
		return "Unknown level"
	}
}

// ParseHintLevel converts an integer to a HintLevel
func ParseHintLevel(n int) (HintLevel, error) {
	l := HintLevel(n)
	if !l.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrInvalidHintLevel, n)
	}
	return l, nil
}

// UnmarshalJSON accepts the numbers 1 through 4. Whole-number floats such
// as 2.0 are accepted as the matching level.
func (l *HintLevel) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err != nil || f != math.Trunc(f) {
		return fmt.Errorf("%w: %s", ErrInvalidHintLevel, string(data))
	}

	var level HintLevel
	if f >= float64(LevelConceptual) && f <= float64(LevelCodeStructure) {
		level = HintLevel(f)
	}
	if !level.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidHintLevel, string(data))
	}
	*l = level
	return nil
}

// ProblemType is the coarse category inferred from a problem description
type ProblemType string

const (
	ProblemTwoSum         ProblemType = "two_sum"
	ProblemBinarySearch   ProblemType = "binary_search"
	ProblemStringReversal ProblemType = "string_reversal"
	ProblemLinkedList     ProblemType = "linked_list" // classified, but has no knowledge base entry
	ProblemGeneral        ProblemType = "general"
)

// HintRequest is a single request for guidance
type HintRequest struct {
	Code               string    `json:"code"`
	ProblemDescription string    `json:"problem_description"`
	ErrorMessage       *string   `json:"error_message"` // accepted, not used for selection
	HintLevel          HintLevel `json:"hint_level"`
}

// HintResponse is the guidance returned for a HintRequest
type HintResponse struct {
	Hint      string   `json:"hint"`
	Questions []string `json:"questions"`
	Resources []string `json:"resources"`
	NextStep  string   `json:"next_step"`
}
