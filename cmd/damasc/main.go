// Command damasc is the CLI front-end for the query engine: an
// interactive REPL by default, plus `run` and `eval` subcommands for
// batch and one-shot use. The cobra root+subcommand layout is grounded
// on termfx-morfx/demo/cmd/main.go's rootCmd/AddCommand shape.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "damasc",
		Short: "An interactive query engine over JSON-like values",
		Long: "damasc evaluates expressions, patterns, and bag queries over an\n" +
			"in-memory multiset of JSON-like values. Run with no arguments to\n" +
			"start an interactive session.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl(cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	root.AddCommand(newReplCmd(), newRunCmd(), newEvalCmd())
	return root
}
