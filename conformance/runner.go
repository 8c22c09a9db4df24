package conformance

import (
	"fmt"
	"strings"

	"damasc/parser"
	"damasc/repl"
)

// Result is the outcome of running one TestCase.
type Result struct {
	Test    LoadedTest
	Skipped bool
	Reason  string
	Failure error // non-nil means a statement's output didn't match
}

// Run executes test.Test's Setup then Statements against a fresh
// repl.Driver, comparing each Statements[i]'s output against
// Expect[i]. It stops at the first mismatch or execution error.
func Run(test LoadedTest) Result {
	if skip, reason := test.Test.IsSkipped(); skip {
		return Result{Test: test, Skipped: true, Reason: reason}
	}

	d := repl.New()
	for _, stmt := range test.Test.Setup {
		if _, err := execLine(d, stmt); err != nil {
			return Result{Test: test, Failure: fmt.Errorf("setup %q: %w", stmt, err)}
		}
	}

	tc := test.Test
	for i, src := range tc.Statements {
		out, err := execLine(d, src)
		wantErr := tc.expectedError(i)
		if wantErr != "" {
			if err == nil {
				return Result{Test: test, Failure: fmt.Errorf(
					"statement %d %q: got no error, want one containing %q", i, src, wantErr)}
			}
			if !strings.Contains(err.Error(), wantErr) {
				return Result{Test: test, Failure: fmt.Errorf(
					"statement %d %q: error %q does not contain %q", i, src, err.Error(), wantErr)}
			}
			continue
		}
		if err != nil {
			return Result{Test: test, Failure: fmt.Errorf("statement %d %q: %w", i, src, err)}
		}
		if i >= len(tc.Expect) {
			continue
		}
		if got := out.String(); got != tc.Expect[i] {
			return Result{Test: test, Failure: fmt.Errorf(
				"statement %d %q: got %q, want %q", i, src, got, tc.Expect[i])}
		}
	}
	return Result{Test: test}
}

func execLine(d *repl.Driver, src string) (repl.Output, error) {
	stmt, err := parser.ParseStatement(src)
	if err != nil {
		return repl.Output{}, fmt.Errorf("parse: %w", err)
	}
	return d.Execute(stmt)
}

// RunAll runs every test in tests and returns one Result per test, in
// the same order.
func RunAll(tests []LoadedTest) []Result {
	results := make([]Result, 0, len(tests))
	for _, t := range tests {
		results = append(results, Run(t))
	}
	return results
}
