package repl

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"damasc/ast"
	"damasc/bag"
	"damasc/env"
	"damasc/eval"
	"damasc/match"
	"damasc/parser"
	"damasc/value"
)

// DefaultBagName is the bag a fresh Driver starts in — the same
// initial bag original_source's Repl::new creates with an
// unconditional guard.
const DefaultBagName = "default"

// Driver holds one session's mutable state: the binding environment
// and the bag bundle every statement reads or writes, grounded on
// original_source/src/repl.rs's Repl struct.
type Driver struct {
	Env        *env.Environment
	Bags       *bag.Bundle
	CurrentBag string
}

// New returns a Driver with one bag (DefaultBagName, unconditional
// guard) already created and selected, matching Repl::new.
func New() *Driver {
	d := &Driver{
		Env:        env.New(),
		Bags:       bag.NewBundle(),
		CurrentBag: DefaultBagName,
	}
	_ = d.Bags.CreateBag(DefaultBagName, bag.AnyGuard())
	return d
}

// Execute runs one parsed statement against d, returning the Output a
// session prints. An ErrExit sentinel signals a clean `.exit`.
func (d *Driver) Execute(stmt parser.Statement) (Output, error) {
	switch s := stmt.(type) {
	case *parser.Clear:
		d.Env.Clear()
		return Output{Kind: OutputAck}, nil

	case *parser.Exit:
		return Output{}, ErrExit

	case *parser.Help:
		return Output{Kind: OutputNotice, Notice: helpText}, nil

	case *parser.TellBag:
		n, _, err := d.Bags.Info(d.CurrentBag)
		if err != nil {
			n = 0
		}
		return Output{Kind: OutputNotice, Notice: fmt.Sprintf("Current Bag: %s, size: %d", d.CurrentBag, n)}, nil

	case *parser.ListBags:
		return Output{Kind: OutputNotice, Notice: "Bags: " + strings.Join(d.Bags.Names(), ", ")}, nil

	case *parser.UseBag:
		return d.execUseBag(s)

	case *parser.Import:
		return d.execImport(s)

	case *parser.Export:
		return d.execExport(s)

	case *parser.Insert:
		return d.execInsert(s)

	case *parser.Pop:
		v, err := eval.Eval(d.Env, s.Expression)
		if err != nil {
			return Output{}, fmt.Errorf("eval: %w", err)
		}
		ok, err := d.Bags.Pop(d.CurrentBag, v)
		if err != nil {
			return Output{}, err
		}
		if !ok {
			return Output{Kind: OutputNo}, nil
		}
		return Output{Kind: OutputAck}, nil

	case *parser.Inspect:
		return Output{Kind: OutputNotice, Notice: fmt.Sprintf("%#v", s.Expression)}, nil

	case *parser.Format:
		return Output{Kind: OutputNotice, Notice: ast.FormatExpression(s.Expression)}, nil

	case *parser.Eval:
		v, err := eval.Eval(d.Env, s.Expression)
		if err != nil {
			return Output{}, fmt.Errorf("eval: %w", err)
		}
		return Output{Kind: OutputValues, Values: []value.Value{v}}, nil

	case *parser.Pattern:
		return Output{Kind: OutputNotice, Notice: ast.FormatPattern(s.Pattern)}, nil

	case *parser.Deletion:
		n, err := d.Bags.Delete(d.CurrentBag, d.Env, s.Query)
		if err != nil {
			return Output{}, err
		}
		if n == 0 {
			return Output{Kind: OutputNo}, nil
		}
		return Output{Kind: OutputDeleted, Count: n}, nil

	case *parser.QueryStatement:
		it, err := d.Bags.Query(d.CurrentBag, d.Env, s.Query)
		if err != nil {
			return Output{}, err
		}
		values, err := it.Collect()
		if err != nil {
			return Output{}, fmt.Errorf("eval: %w", err)
		}
		return Output{Kind: OutputValues, Values: values}, nil

	case *parser.AssignSet:
		bindings, err := s.Set.Evaluate(d.Env)
		if err != nil {
			if isPatternMismatch(err) {
				return Output{Kind: OutputNo}, nil
			}
			return Output{}, fmt.Errorf("assign: %w", err)
		}
		d.Env.Merge(bindings)
		return Output{Kind: OutputBindings, Bindings: bindings}, nil

	case *parser.MatchSet:
		bindings, err := s.Set.Evaluate(d.Env)
		if err != nil {
			if isPatternMismatch(err) {
				return Output{Kind: OutputNo}, nil
			}
			return Output{}, fmt.Errorf("match: %w", err)
		}
		return Output{Kind: OutputBindings, Bindings: bindings}, nil

	case *parser.Literal:
		v, err := eval.Eval(d.Env, s.Expression)
		if err != nil {
			return Output{}, fmt.Errorf("eval: %w", err)
		}
		return Output{Kind: OutputNotice, Notice: value.PrintedForm(v)}, nil

	default:
		return Output{}, fmt.Errorf("unhandled statement type %T", stmt)
	}
}

func (d *Driver) execUseBag(s *parser.UseBag) (Output, error) {
	wantsCreate := s.Predicate != nil
	guard := bag.AnyGuard()
	if s.Predicate != nil {
		guard = *s.Predicate
	}
	d.CurrentBag = s.Name
	err := d.Bags.CreateBag(s.Name, guard)
	switch {
	case err == nil:
		return Output{Kind: OutputNotice, Notice: "BAG CREATED"}, nil
	case wantsCreate:
		return Output{Kind: OutputNotice, Notice: "ALREADY EXISTS, SWITCHED BAG"}, nil
	default:
		return Output{Kind: OutputNotice, Notice: "SWITCHED BAG"}, nil
	}
}

func (d *Driver) execImport(s *parser.Import) (Output, error) {
	f, err := os.Open(s.Filename)
	if err != nil {
		return Output{}, fmt.Errorf("open %q: %w", s.Filename, err)
	}
	defer f.Close()

	var values []value.Value
	var skipped []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		e, err := parser.ParseExpression(line)
		if err != nil {
			skipped = append(skipped, fmt.Sprintf("skipped %q: parse: %v", line, err))
			continue
		}
		v, err := eval.Eval(d.Env, e)
		if err != nil {
			skipped = append(skipped, fmt.Sprintf("skipped %q: eval: %v", line, err))
			continue
		}
		values = append(values, v)
	}
	if err := scanner.Err(); err != nil {
		return Output{}, fmt.Errorf("read %q: %w", s.Filename, err)
	}

	if _, err := d.Bags.Insert(d.CurrentBag, values); err != nil {
		return Output{}, err
	}
	notice := fmt.Sprintf("Imported values from file '%s' into current bag(%s)", s.Filename, d.CurrentBag)
	for _, msg := range skipped {
		notice += "\n" + msg
	}
	return Output{Kind: OutputNotice, Notice: notice}, nil
}

func (d *Driver) execExport(s *parser.Export) (Output, error) {
	items, err := d.Bags.Read(d.CurrentBag)
	if err != nil {
		return Output{}, err
	}
	f, err := os.Create(s.Filename)
	if err != nil {
		return Output{}, fmt.Errorf("create %q: %w", s.Filename, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, v := range items {
		if _, err := fmt.Fprintln(w, value.PrintedForm(v)); err != nil {
			return Output{}, fmt.Errorf("write %q: %w", s.Filename, err)
		}
	}
	if err := w.Flush(); err != nil {
		return Output{}, fmt.Errorf("flush %q: %w", s.Filename, err)
	}
	return Output{Kind: OutputNotice, Notice: fmt.Sprintf(
		"Current bag(%s) written to file: %s", d.CurrentBag, s.Filename)}, nil
}

// execInsert evaluates s.Expression and offers the result to the
// current bag. original_source's Insert(Vec<Expression>) evaluates a
// batch of expressions and stops at the first value the bag's guard
// rejects, reporting the count accepted before that (§7's Insert
// contract, demonstrated by spec.md §8's S4 scenario inserting
// `[1, 2, -3, 4]` and getting `INSERTED 2`). Insert here carries one
// expression, matching the grammar in spec.md §6.1 literally (see
// parser/statement.go's note on the Vec/single drift) — so the batch
// is the expression's value when it evaluates to an Array, each
// element offered in order with the same early-abort; any other value
// is a batch of one.
func (d *Driver) execInsert(s *parser.Insert) (Output, error) {
	v, err := eval.Eval(d.Env, s.Expression)
	if err != nil {
		return Output{}, fmt.Errorf("eval: %w", err)
	}

	batch, ok := v.(value.Array)
	if !ok {
		batch = value.Array{v}
	}

	count := 0
	for _, item := range batch {
		n, err := d.Bags.Insert(d.CurrentBag, []value.Value{item})
		if err != nil {
			return Output{}, err
		}
		if n == 0 {
			break
		}
		count++
	}
	if count == 0 {
		return Output{Kind: OutputNo}, nil
	}
	return Output{Kind: OutputInserted, Count: count}, nil
}

const helpText = "Interactive help is not yet implemented. Please take a look at the README.md file"

// isPatternMismatch reports whether err is a failed pattern match
// (repl.rs's ReplOutput::PatternMissmatch case) as opposed to a
// topological-sort cycle or an expression evaluation failure, which
// original_source surfaces as a distinct ReplError rather than "No".
func isPatternMismatch(err error) bool {
	_, ok := err.(*match.PatternFail)
	return ok
}
