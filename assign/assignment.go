// Package assign implements damasc's assignment and assignment-set
// statements (§4.7's `let pattern = expr, ...` / `pattern = expr, ...`
// forms), ordering a batch of assignments by their identifier
// dependencies before running them.
package assign

import (
	"damasc/ast"
	"damasc/env"
	"damasc/eval"
	"damasc/match"
	"damasc/topo"
	"damasc/value"
)

// Assignment is one `pattern = expression` entry of an assignment set.
type Assignment struct {
	Pattern    ast.Pattern
	Expression ast.Expr
}

// OutputIdentifiers is every name Pattern binds — what this
// assignment supplies to later assignments in the set.
func (a Assignment) OutputIdentifiers() []string {
	return ast.GetPatternIdentifiers(a.Pattern)
}

// InputIdentifiers is every name this assignment must read before it
// can run: identifiers in Expression, plus identifiers referenced by
// Pattern's own computed-key sub-expressions (e.g. `{[k]: v} = expr`
// needs `k` bound before the match can even be attempted).
func (a Assignment) InputIdentifiers() []string {
	var ids []string
	ids = append(ids, ast.GetIdentifiers(a.Expression)...)
	for _, e := range ast.GetExpressions(a.Pattern) {
		ids = append(ids, ast.GetIdentifiers(e)...)
	}
	return ids
}

// Set is a batch of assignments executed together: topologically
// sorted by identifier dependency, then run as a single all-or-
// nothing transaction (§4.7) — if any assignment's expression fails
// to evaluate or its pattern fails to match, none of the set's
// bindings are committed.
type Set struct {
	Assignments []Assignment
}

// Evaluate sorts s.Assignments by dependency (external supplies
// whatever identifiers are already bound in e) and evaluates them in
// that order against a scratch copy of e, accumulating bindings along
// the way. It never touches e itself — callers decide whether to
// commit the returned bindings (AssignSet) or only report them
// (MatchSet, §4.7).
func (s Set) Evaluate(e *env.Environment) (map[string]value.Value, error) {
	external := make(map[string]struct{})
	for _, id := range e.Identifiers() {
		external[id] = struct{}{}
	}

	ordered, err := topo.Sort(s.Assignments, external)
	if err != nil {
		return nil, err
	}

	scratch := env.New()
	scratch.Merge(e.Snapshot())

	committed := make(map[string]value.Value)
	for _, a := range ordered {
		v, err := eval.Eval(scratch, a.Expression)
		if err != nil {
			return nil, err
		}
		m := match.New(scratch)
		if err := m.Match(a.Pattern, v); err != nil {
			return nil, err
		}
		scratch.Merge(m.Bindings)
		for k, bv := range m.Bindings {
			committed[k] = bv
		}
	}
	return committed, nil
}

// Run evaluates s against e and, on success, merges every resulting
// binding into e in one step (§4.7's all-or-nothing commit); on
// failure e is left untouched and the error is returned.
func (s Set) Run(e *env.Environment) error {
	bindings, err := s.Evaluate(e)
	if err != nil {
		return err
	}
	e.Merge(bindings)
	return nil
}
