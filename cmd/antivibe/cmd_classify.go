package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/felixgeelhaar/antivibe/internal/classifier"
	"github.com/felixgeelhaar/antivibe/internal/domain"
	"github.com/spf13/cobra"
)

func newClassifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify <description>",
		Short: "Show which problem type a description maps to",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			// List the rule table instead of classifying
			if showRules, _ := cmd.Flags().GetBool("rules"); showRules {
				printRules(out)
				return nil
			}
			if len(args) == 0 {
				return fmt.Errorf("classify needs a problem description (or --rules)")
			}

			match := classifier.Explain(strings.Join(args, " "), "")
			fmt.Fprintf(out, "Problem type: %s\n", match.ProblemType)
			if match.Keyword != "" {
				fmt.Fprintf(out, "Matched:      %q\n", match.Keyword)
			} else {
				fmt.Fprintln(out, "Matched:      (no keyword)")
			}
			return nil
		},
	}

	cmd.Flags().Bool("rules", false, "Print the keyword rules in evaluation order")
	return cmd
}

// printRules writes one line per rule; earlier lines win
func printRules(w io.Writer) {
	for i, rule := range classifier.Rules() {
		fmt.Fprintf(w, "%d. %-16s %s\n", i+1, rule.ProblemType, strings.Join(rule.Keywords, ", "))
	}
	fmt.Fprintf(w, "   %-16s (anything else)\n", domain.ProblemGeneral)
}

func newProblemTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "problem-types",
		Short: "List the problem types in the knowledge base",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kb, err := knowledgeBase(cmd)
			if err != nil {
				return err
			}
			for _, pt := range kb.ProblemTypes() {
				fmt.Fprintln(cmd.OutOrStdout(), pt)
			}
			return nil
		},
	}
}
