// Package hint assembles hint responses from the knowledge base and runs the
// classify-then-assemble pipeline behind every transport.
package hint

import (
	"github.com/felixgeelhaar/antivibe/internal/domain"
	"github.com/felixgeelhaar/antivibe/internal/knowledge"
)

// DefaultHint is returned when the resolved hint list is empty
const DefaultHint = "Think about the problem step by step."

// maxSampled caps the questions and resources in one response
const maxSampled = 2

// Assembler builds a HintResponse for a problem type and level
type Assembler struct {
	kb  *knowledge.Base
	src Source
}

// NewAssembler creates an assembler. A nil src uses DefaultSource.
func NewAssembler(kb *knowledge.Base, src Source) *Assembler {
	if src == nil {
		src = DefaultSource()
	}
	return &Assembler{kb: kb, src: src}
}

// Assemble picks one hint, up to two questions, up to two resources and a next step.
// Repeated calls with the same arguments may return different responses.
func (a *Assembler) Assemble(pt domain.ProblemType, level domain.HintLevel) *domain.HintResponse {
	hint := DefaultHint
	if hints := a.kb.Hints(pt, level); len(hints) > 0 {
		hint = a.choose(hints)
	}

	return &domain.HintResponse{
		Hint:      hint,
		Questions: a.sample(a.kb.Questions(pt), maxSampled),
		Resources: a.sample(a.kb.Resources(pt), maxSampled),
		NextStep:  a.choose(a.kb.NextSteps()),
	}
}

func (a *Assembler) choose(items []string) string {
	return items[a.src.IntN(len(items))]
}

// sample draws min(k, len(items)) items without replacement in random order
// using a partial Fisher-Yates shuffle over a copy of items.
func (a *Assembler) sample(items []string, k int) []string {
	k = min(k, len(items))
	out := make([]string, 0, k)
	if k == 0 {
		return out
	}

	pool := append([]string(nil), items...)
	for i := range k {
		j := i + a.src.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
		out = append(out, pool[i])
	}
	return out
}
