package main

import (
	"fmt"
	"os"

	"github.com/felixgeelhaar/antivibe/internal/config"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

const defaultDaemonAddr = "http://127.0.0.1:8000"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "antivibe",
		Short: "Learning hints for coding problems",
		Long: `Antivibe - hints that teach instead of solve

Get a conceptual nudge, an algorithm pointer, implementation guidance or a
code structure suggestion for the problem you are working on.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.LoadDotEnv(".env")
		},
	}

	root.PersistentFlags().String("knowledge", "", "Path to a knowledge base YAML file (overrides config)")

	root.AddCommand(
		newHintCmd(),
		newClassifyCmd(),
		newProblemTypesCmd(),
		newConfigCmd(),
		newStatusCmd(),
		newMCPCmd(),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the current version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "antivibe", Version)
		},
	}
}
