package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/marceline-cramer/crabby-markov/internal/core"
	"github.com/marceline-cramer/crabby-markov/internal/markov"
)

type programmed interface {
	Program() markov.Node
}

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the built-in programs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("rules")
		return listPresets(cmd.OutOrStdout(), verbose)
	},
}

func init() {
	rootCmd.AddCommand(presetsCmd)
	presetsCmd.Flags().Bool("rules", false, "print every node and rule of each program")
}

func listPresets(w io.Writer, verbose bool) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSIZE\tROOT")
	for _, name := range core.Names() {
		sim := core.Sims()[name](nil)
		size := sim.Size()
		root := "-"
		if p, ok := sim.(programmed); ok {
			root = markov.Kind(p.Program())
		}
		fmt.Fprintf(tw, "%s\t%dx%d\t%s\n", name, size.W, size.H, root)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if !verbose {
		return nil
	}
	for _, name := range core.Names() {
		p, ok := core.Sims()[name](nil).(programmed)
		if !ok {
			continue
		}
		fmt.Fprintf(w, "\n%s:\n", name)
		describe(w, p.Program(), 1)
	}
	return nil
}

func describe(w io.Writer, node markov.Node, depth int) {
	indent := fmt.Sprintf("%*s", depth*2, "")
	switch n := node.(type) {
	case *markov.MarkovNode:
		fmt.Fprintf(w, "%smarkov\n", indent)
		for _, c := range n.Children {
			describe(w, c, depth+1)
		}
	case *markov.SequenceNode:
		fmt.Fprintf(w, "%ssequence\n", indent)
		for _, c := range n.Children {
			describe(w, c, depth+1)
		}
	case *markov.OneNode:
		describeRules(w, indent, "one", n.Steps, n.Rules)
	case *markov.AllNode:
		describeRules(w, indent, "all", n.Steps, n.Rules)
	case *markov.PrlNode:
		describeRules(w, indent, "prl", 0, n.Rules)
	}
}

func describeRules(w io.Writer, indent, kind string, steps int, rules []markov.Rule) {
	if steps > 0 {
		fmt.Fprintf(w, "%s%s steps=%d\n", indent, kind, steps)
	} else {
		fmt.Fprintf(w, "%s%s\n", indent, kind)
	}
	for _, r := range rules {
		fmt.Fprintf(w, "%s  %s\n", indent, r)
	}
}
