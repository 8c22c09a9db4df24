package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"damasc/parser"
	"damasc/repl"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <file>",
		Short: "Execute a file of statements, one per line, against a fresh session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFile(args[0], cmd.OutOrStdout())
		},
	}
}

// runFile replays the statements in path against a fresh Driver,
// printing each one's Output and continuing past statement-level
// errors (each statement is independent, §7) but returning
// immediately on a `.exit` or an I/O failure opening/reading path.
func runFile(path string, out io.Writer) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %q: %w", path, err)
	}
	defer f.Close()

	d := repl.New()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		stmt, err := parser.ParseStatement(line)
		if err != nil {
			fmt.Fprintln(out, err)
			continue
		}
		result, err := d.Execute(stmt)
		if err == repl.ErrExit {
			return nil
		}
		if err != nil {
			fmt.Fprintln(out, err)
			continue
		}
		fmt.Fprintln(out, result.String())
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read %q: %w", path, err)
	}
	return nil
}
