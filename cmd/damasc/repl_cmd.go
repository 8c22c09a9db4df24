package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"damasc/parser"
	"damasc/repl"
)

func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive session (default when run with no subcommand)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl(cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

// prompt returns the interactive prompt string, or "" when in isn't a
// real terminal — a piped/redirected session shouldn't echo a prompt
// into its own output, grounded on funvibe-funxy's
// isatty.IsTerminal/IsCygwinTerminal terminal check.
func prompt(in io.Reader) string {
	f, ok := in.(*os.File)
	if !ok {
		return ""
	}
	if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
		return "damasc> "
	}
	return ""
}

// runRepl reads one statement per line from in, executes it against a
// single session Driver, and writes its printed Output (or error) to
// out. It returns nil on a clean `.exit` or EOF; a non-nil error means
// the scanner itself failed (an I/O error, §7's IoError), not a
// statement-level failure — those are printed and the loop continues.
func runRepl(in io.Reader, out io.Writer) error {
	d := repl.New()
	p := prompt(in)
	scanner := bufio.NewScanner(in)
	fmt.Fprint(out, p)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			fmt.Fprint(out, p)
			continue
		}
		stmt, err := parser.ParseStatement(line)
		if err != nil {
			fmt.Fprintln(out, err)
			fmt.Fprint(out, p)
			continue
		}
		result, err := d.Execute(stmt)
		if err == repl.ErrExit {
			return nil
		}
		if err != nil {
			fmt.Fprintln(out, err)
			fmt.Fprint(out, p)
			continue
		}
		fmt.Fprintln(out, result.String())
		fmt.Fprint(out, p)
	}
	return scanner.Err()
}
