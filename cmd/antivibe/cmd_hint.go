package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/felixgeelhaar/antivibe/internal/domain"
	"github.com/felixgeelhaar/antivibe/internal/hint"
	"github.com/spf13/cobra"
)

func newHintCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hint",
		Short: "Get a hint for a problem",
		Example: `  antivibe hint --description "Find two numbers that add up to target" --level 2
  antivibe hint -d "Reverse a string" --code-file solution.py --error "IndexError" --json`,
		Args: cobra.NoArgs,
		RunE: runHint,
	}

	cmd.Flags().StringP("description", "d", "", "Problem description")
	cmd.Flags().String("code-file", "", "File containing your code so far (- for stdin)")
	cmd.Flags().String("error", "", "Error message from your last run")
	cmd.Flags().IntP("level", "l", int(domain.LevelConceptual), "Hint level: 1 conceptual, 2 algorithm, 3 implementation, 4 code structure")
	cmd.Flags().Uint64("seed", 0, "Seed for reproducible hint selection")
	cmd.Flags().Bool("json", false, "Print the response as JSON")

	return cmd
}

func runHint(cmd *cobra.Command, args []string) error {
	description, _ := cmd.Flags().GetString("description")
	codeFile, _ := cmd.Flags().GetString("code-file")
	rawLevel, _ := cmd.Flags().GetInt("level")
	asJSON, _ := cmd.Flags().GetBool("json")

	level, err := domain.ParseHintLevel(rawLevel)
	if err != nil {
		return err
	}

	code, err := readCode(cmd, codeFile)
	if err != nil {
		return err
	}

	req := domain.HintRequest{
		Code:               code,
		ProblemDescription: description,
		HintLevel:          level,
	}
	if cmd.Flags().Changed("error") {
		msg, _ := cmd.Flags().GetString("error")
		req.ErrorMessage = &msg
	}

	var src hint.Source
	if cmd.Flags().Changed("seed") {
		seed, _ := cmd.Flags().GetUint64("seed")
		src = hint.NewSeededSource(seed)
	}

	svc, err := newService(cmd, src)
	if err != nil {
		return err
	}

	resp, err := svc.Hint(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("generate hint: %w", err)
	}

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}
	printHint(out, level, resp)
	return nil
}

func readCode(cmd *cobra.Command, path string) (string, error) {
	switch path {
	case "":
		return "", nil
	case "-":
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read code from stdin: %w", err)
		}
		return string(data), nil
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read code file: %w", err)
		}
		return string(data), nil
	}
}

func printHint(w io.Writer, level domain.HintLevel, resp *domain.HintResponse) {
	fmt.Fprintf(w, "Hint (%s):\n  %s\n", level, resp.Hint)

	if len(resp.Questions) > 0 {
		fmt.Fprintln(w, "\nQuestions to consider:")
		for _, q := range resp.Questions {
			fmt.Fprintf(w, "  - %s\n", q)
		}
	}

	if len(resp.Resources) > 0 {
		fmt.Fprintln(w, "\nResources:")
		for _, r := range resp.Resources {
			fmt.Fprintf(w, "  - %s\n", r)
		}
	}

	fmt.Fprintf(w, "\nNext step: %s\n", resp.NextStep)
}
