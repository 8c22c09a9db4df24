package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"damasc/parser"
	"damasc/repl"
)

func newEvalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "eval <statement>",
		Short: "Execute a single statement against a fresh session and print its output",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return evalOnce(strings.Join(args, " "), cmd.OutOrStdout())
		},
	}
}

func evalOnce(line string, out io.Writer) error {
	stmt, err := parser.ParseStatement(line)
	if err != nil {
		return err
	}
	result, err := repl.New().Execute(stmt)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, result.String())
	return nil
}
