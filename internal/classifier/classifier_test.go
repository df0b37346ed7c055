package classifier

import (
	"testing"

	"github.com/felixgeelhaar/antivibe/internal/domain"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		description string
		code        string
		want        domain.ProblemType
	}{
		{"empty description", "", "def two_sum(nums, target): pass", domain.ProblemGeneral},
		{"target keyword", "Find indices that hit the TARGET", "", domain.ProblemTwoSum},
		{"sum keyword", "Return the sum of a sorted array", "", domain.ProblemTwoSum},
		{"add keyword", "Add two integers", "", domain.ProblemTwoSum},
		{"two numbers", "Pick two numbers from the list", "", domain.ProblemTwoSum},
		{"reverse a string", "Reverse a string", "", domain.ProblemStringReversal},
		{"palindrome", "Check whether a word is a Palindrome", "", domain.ProblemStringReversal},
		{"string beats array", "Find a string in an array", "", domain.ProblemStringReversal},
		{"binary search", "Implement binary search", "", domain.ProblemBinarySearch},
		{"sorted", "Merge two sorted lists", "", domain.ProblemBinarySearch},
		{"array", "Rotate an array by k", "", domain.ProblemBinarySearch},
		{"linked list", "Detect a cycle in a Linked List", "", domain.ProblemLinkedList},
		{"node", "Delete the middle node", "", domain.ProblemLinkedList},
		{"pointer", "Use a fast pointer and a slow one", "", domain.ProblemLinkedList},
		{"nothing matches", "Count the islands in a grid", "", domain.ProblemGeneral},
		{"whitespace only", "   ", "", domain.ProblemGeneral},
		{"code is ignored", "Count the islands in a grid", "def two_sum(target): return binary_search()", domain.ProblemGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.description, tt.code); got != tt.want {
				t.Errorf("Classify(%q) = %q, want %q", tt.description, got, tt.want)
			}
		})
	}
}

func TestClassify_TargetAlwaysTwoSum(t *testing.T) {
	descriptions := []string{
		"target",
		"Reverse the string until it equals the target",
		"binary search for the target in a sorted array",
		"walk each node until you reach the Target",
	}
	codes := []string{"", "reverse(s)", "while lo <= hi:"}

	for _, d := range descriptions {
		for _, c := range codes {
			if got := Classify(d, c); got != domain.ProblemTwoSum {
				t.Errorf("Classify(%q, %q) = %q, want two_sum", d, c, got)
			}
		}
	}
}

func TestExplain(t *testing.T) {
	tests := []struct {
		description string
		want        Match
	}{
		{"", Match{ProblemType: domain.ProblemGeneral}},
		{"Reverse a string", Match{ProblemType: domain.ProblemStringReversal, Keyword: "reverse"}},
		{"a string", Match{ProblemType: domain.ProblemStringReversal, Keyword: "string"}},
		{"Searching made easy", Match{ProblemType: domain.ProblemBinarySearch, Keyword: "search"}},
		{"Adding numbers", Match{ProblemType: domain.ProblemTwoSum, Keyword: "add"}},
		{"graphs", Match{ProblemType: domain.ProblemGeneral}},
	}

	for _, tt := range tests {
		if got := Explain(tt.description, ""); got != tt.want {
			t.Errorf("Explain(%q) = %+v, want %+v", tt.description, got, tt.want)
		}
	}
}

func TestRules_Order(t *testing.T) {
	got := Rules()
	want := []domain.ProblemType{
		domain.ProblemTwoSum,
		domain.ProblemStringReversal,
		domain.ProblemBinarySearch,
		domain.ProblemLinkedList,
	}
	if len(got) != len(want) {
		t.Fatalf("Rules() has %d entries, want %d", len(got), len(want))
	}
	for i, r := range got {
		if r.ProblemType != want[i] {
			t.Errorf("Rules()[%d] = %q, want %q", i, r.ProblemType, want[i])
		}
	}

	got[0].Keywords[0] = "mutated"
	if Rules()[0].Keywords[0] == "mutated" {
		t.Error("Rules() should return a copy")
	}
}
