// Package classifier maps a free-text problem description to a ProblemType
// by keyword matching.
package classifier

import (
	"strings"

	"github.com/felixgeelhaar/antivibe/internal/domain"
	"github.com/samber/lo"
)

// Rule is one category and the keywords that select it
type Rule struct {
	ProblemType domain.ProblemType
	Keywords    []string
}

// rules are evaluated in order; the first rule with a matching keyword wins.
// string_reversal must stay ahead of binary_search so "reverse a string in an
// array" is treated as a reversal problem.
var rules = []Rule{
	{domain.ProblemTwoSum, []string{"sum", "add", "two numbers", "target"}},
	{domain.ProblemStringReversal, []string{"reverse", "palindrome", "string"}},
	{domain.ProblemBinarySearch, []string{"binary", "search", "sorted", "array"}},
	{domain.ProblemLinkedList, []string{"linked list", "node", "pointer"}},
}

// Match is the result of classifying a description
type Match struct {
	ProblemType domain.ProblemType
	Keyword     string // empty when nothing matched
}

// Rules returns a copy of the ordered rule table
func Rules() []Rule {
	return lo.Map(rules, func(r Rule, _ int) Rule {
		return Rule{ProblemType: r.ProblemType, Keywords: append([]string(nil), r.Keywords...)}
	})
}

// Classify returns the problem type for a description.
// The code is accepted for future use and is not inspected.
func Classify(description, code string) domain.ProblemType {
	return Explain(description, code).ProblemType
}

// Explain classifies a description and reports which keyword decided it
func Explain(description, _ string) Match {
	if description == "" {
		return Match{ProblemType: domain.ProblemGeneral}
	}

	lower := strings.ToLower(description)
	for _, r := range rules {
		keyword, ok := lo.Find(r.Keywords, func(kw string) bool {
			return strings.Contains(lower, kw)
		})
		if ok {
			return Match{ProblemType: r.ProblemType, Keyword: keyword}
		}
	}

	return Match{ProblemType: domain.ProblemGeneral}
}
