package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRunReplSingleStatement(t *testing.T) {
	in := strings.NewReader("let x = 3 + 4\n")
	out := new(bytes.Buffer)
	if err := runRepl(in, out); err != nil {
		t.Fatalf("runRepl: %v", err)
	}
	if !strings.Contains(out.String(), "x := 7;") {
		t.Fatalf("output %q missing binding line", out.String())
	}
}

func TestRunReplExitStopsLoop(t *testing.T) {
	in := strings.NewReader(".exit\nlet y = 1\n")
	out := new(bytes.Buffer)
	if err := runRepl(in, out); err != nil {
		t.Fatalf("runRepl: %v", err)
	}
	if strings.Contains(out.String(), "y := 1") {
		t.Fatalf("statement after .exit should not have run, got %q", out.String())
	}
}

func TestRunReplContinuesPastParseError(t *testing.T) {
	in := strings.NewReader("let = \nlet x = 1\n")
	out := new(bytes.Buffer)
	if err := runRepl(in, out); err != nil {
		t.Fatalf("runRepl: %v", err)
	}
	if !strings.Contains(out.String(), "x := 1;") {
		t.Fatalf("parse error should not stop the session, got %q", out.String())
	}
}

func TestEvalOnceEvaluatesBareExpression(t *testing.T) {
	out := new(bytes.Buffer)
	if err := evalOnce("1 + 2", out); err != nil {
		t.Fatalf("evalOnce: %v", err)
	}
	if strings.TrimSpace(out.String()) != "3;" {
		t.Fatalf("got %q, want %q", out.String(), "3;")
	}
}

func TestEvalOnceReturnsParseError(t *testing.T) {
	out := new(bytes.Buffer)
	if err := evalOnce("let =", out); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestPromptEmptyForNonFileReader(t *testing.T) {
	if got := prompt(strings.NewReader("")); got != "" {
		t.Fatalf("prompt for non-*os.File reader = %q, want empty", got)
	}
}

func TestRunFileMissingReturnsError(t *testing.T) {
	out := new(bytes.Buffer)
	if err := runFile("/no/such/file.damasc", out); err == nil {
		t.Fatal("expected an error opening a missing file")
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	root := newRootCmd()
	names := make(map[string]bool)
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"repl", "run", "eval"} {
		if !names[want] {
			t.Fatalf("root command missing subcommand %q", want)
		}
	}
}
