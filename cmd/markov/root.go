package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	_ "github.com/marceline-cramer/crabby-markov/internal/sims/all"
)

var rootCmd = &cobra.Command{
	Use:   "markov",
	Short: "Run 2-D grid rewriting programs",
	Long: `markov runs rewrite programs built from One, All, Prl, Markov and Sequence
nodes over a grid of colored cells, headlessly or in the terminal.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and runs it.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "", "debug, info, warn or error (overrides the run file)")
}
