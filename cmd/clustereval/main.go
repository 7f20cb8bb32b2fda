package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "clustereval",
		Short: "Pairwise clustering evaluation for name disambiguation",
		Long: `clustereval scores a predicted clustering of items against a ground-truth
clustering, one group (e.g. an ambiguous author name) at a time, and reports
the mean pairwise F1 over all groups it could score.

Run 'clustereval evaluate -p res.json -t truth.json' to score a prediction.
Run 'clustereval inspect -p res.json -t truth.json' to check input formats.`,
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().String("format", "", "output format (text, json)")

	rootCmd.AddCommand(
		evaluateCmd(),
		inspectCmd(),
		versionCmd(),
	)

	return rootCmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "clustereval %s\n", version)
			fmt.Fprintf(out, "  commit: %s\n", commit)
			fmt.Fprintf(out, "  built:  %s\n", date)
		},
	}
}
