package bag

import (
	"damasc/ast"
	"damasc/env"
	"damasc/eval"
	"damasc/match"
	"damasc/value"
)

// ValueBag is the raw multiset storage underneath a TypedBag: no
// guard, no admission control, just a slice of values with
// insert/pop/query/delete/update over it.
type ValueBag struct {
	items []value.Value
}

// NewValueBag returns an empty bag.
func NewValueBag() *ValueBag { return &ValueBag{} }

// Insert appends v unconditionally.
func (b *ValueBag) Insert(v value.Value) {
	b.items = append(b.items, v)
}

// Pop removes one value structurally equal to v, if present, and
// reports whether it removed anything. The remaining items keep their
// insertion order, which Items, Query, Delete and Update traverse. The
// shortened slice is freshly allocated, so an iterator created before
// the Pop keeps walking the items as they were.
func (b *ValueBag) Pop(v value.Value) bool {
	for i, item := range b.items {
		if item.Equal(v) {
			b.items = append(b.items[:i:i], b.items[i+1:]...)
			return true
		}
	}
	return false
}

// Len reports the number of items currently stored.
func (b *ValueBag) Len() int { return len(b.items) }

// Items returns a copy of every stored value, in storage order.
func (b *ValueBag) Items() []value.Value {
	out := make([]value.Value, len(b.items))
	copy(out, b.items)
	return out
}

// Iterator is a pull-based cursor: each call to Next evaluates at
// most one more candidate item, so a caller that stops early (a
// `limit` clause, or simply giving up) never pays to evaluate items
// it will never see. This mirrors the teacher's/original's lazy
// generator-based query without requiring goroutines or channels.
type Iterator struct {
	next func() (value.Value, error, bool)
}

// Next advances the iterator. ok is false once the iterator is
// exhausted; err is non-nil if evaluating the current item failed,
// in which case the iterator has already moved past that item and the
// next call continues with the following one.
func (it *Iterator) Next() (v value.Value, err error, ok bool) {
	return it.next()
}

// Collect drains the iterator into a slice, stopping at the first
// error.
func (it *Iterator) Collect() ([]value.Value, error) {
	var out []value.Value
	for {
		v, err, ok := it.Next()
		if err != nil {
			return out, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, v)
	}
}

// Query matches Predicate against each stored item in turn and, for
// each match whose guard evaluates true, yields Projection evaluated
// with the match's bindings merged into e. Iteration stops once
// Predicate.Limit results have been yielded.
func (b *ValueBag) Query(e *env.Environment, q Query) *Iterator {
	idx := 0
	count := 0
	items := b.items
	return &Iterator{next: func() (value.Value, error, bool) {
		for {
			if q.Predicate.Limit != nil && count >= *q.Predicate.Limit {
				return nil, nil, false
			}
			if idx >= len(items) {
				return nil, nil, false
			}
			item := items[idx]
			idx++

			m := match.New(e)
			if err := m.Match(q.Predicate.Pattern, item); err != nil {
				continue
			}
			scoped := scopedEnv(e, m.Bindings)
			guard, err := eval.Eval(scoped, q.Predicate.Guard)
			if err != nil {
				return nil, err, true
			}
			ok, isBool := guard.(value.Boolean)
			if !isBool || !bool(ok) {
				continue
			}
			v, err := eval.Eval(scoped, q.Projection)
			count++
			return v, err, true
		}
	}}
}

// CrossQuery matches PatternA against each outer item and PatternB
// against each candidate inner item (including the outer item itself
// only when Outer is set), yielding Projection for every pair whose
// combined bindings satisfy Guard.
func (b *ValueBag) CrossQuery(e *env.Environment, q CrossQuery) *Iterator {
	items := b.items
	outerIdx := 0
	innerIdx := 0
	count := 0
	var outerBindings map[string]value.Value
	haveOuter := false

	advanceOuter := func() bool {
		for outerIdx < len(items) {
			item := items[outerIdx]
			m := match.New(e)
			matched := m.Match(q.PatternA, item) == nil
			outerIdx++
			innerIdx = 0
			if matched {
				outerBindings = m.Bindings
				haveOuter = true
				return true
			}
		}
		return false
	}

	return &Iterator{next: func() (value.Value, error, bool) {
		for {
			if q.Limit != nil && count >= *q.Limit {
				return nil, nil, false
			}
			if !haveOuter {
				if !advanceOuter() {
					return nil, nil, false
				}
			}
			if innerIdx >= len(items) {
				haveOuter = false
				continue
			}
			curOuterIdx := outerIdx - 1
			innerItem := items[innerIdx]
			curInnerIdx := innerIdx
			innerIdx++
			if !q.Outer && curInnerIdx == curOuterIdx {
				continue
			}

			m := &match.Matcher{Env: e, Bindings: cloneBindings(outerBindings)}
			if err := m.Match(q.PatternB, innerItem); err != nil {
				continue
			}
			scoped := scopedEnv(e, m.Bindings)
			guard, err := eval.Eval(scoped, q.Guard)
			if err != nil {
				return nil, err, true
			}
			ok, isBool := guard.(value.Boolean)
			if !isBool || !bool(ok) {
				continue
			}
			v, err := eval.Eval(scoped, q.Projection)
			count++
			return v, err, true
		}
	}}
}

// Delete removes every item matching q.Predicate, stopping once
// q.Predicate.Limit removals have happened, and returns the count
// removed.
func (b *ValueBag) Delete(e *env.Environment, q DeletionQuery) int {
	kept := b.items[:0:0]
	removed := 0
	for _, item := range b.items {
		if q.Predicate.Limit != nil && removed >= *q.Predicate.Limit {
			kept = append(kept, item)
			continue
		}
		if matchesPredicate(e, q.Predicate, item) {
			removed++
			continue
		}
		kept = append(kept, item)
	}
	b.items = kept
	return removed
}

// Update replaces every item matching q.Predicate with Projection
// evaluated against the match's bindings, returning the count
// updated.
func (b *ValueBag) Update(e *env.Environment, q UpdateQuery) (int, error) {
	updated := 0
	for i, item := range b.items {
		if q.Predicate.Limit != nil && updated >= *q.Predicate.Limit {
			break
		}
		m := match.New(e)
		if err := m.Match(q.Predicate.Pattern, item); err != nil {
			continue
		}
		scoped := scopedEnv(e, m.Bindings)
		guard, err := eval.Eval(scoped, q.Predicate.Guard)
		if err != nil {
			return updated, err
		}
		ok, isBool := guard.(value.Boolean)
		if !isBool || !bool(ok) {
			continue
		}
		next, err := eval.Eval(scoped, q.Projection)
		if err != nil {
			return updated, err
		}
		b.items[i] = next
		updated++
	}
	return updated, nil
}

// projectMatch matches p.Pattern against item and, if it matches,
// evaluates projection with the match's bindings merged into e.
func projectMatch(e *env.Environment, p Predicate, projection ast.Expr, item value.Value) (value.Value, error) {
	m := match.New(e)
	if err := m.Match(p.Pattern, item); err != nil {
		return nil, err
	}
	scoped := scopedEnv(e, m.Bindings)
	return eval.Eval(scoped, projection)
}

func matchesPredicate(e *env.Environment, p Predicate, item value.Value) bool {
	m := match.New(e)
	if err := m.Match(p.Pattern, item); err != nil {
		return false
	}
	scoped := scopedEnv(e, m.Bindings)
	guard, err := eval.Eval(scoped, p.Guard)
	if err != nil {
		return false
	}
	b, ok := guard.(value.Boolean)
	return ok && bool(b)
}

// scopedEnv returns a fresh environment seeded with e's bindings plus
// bindings overlaid on top, without mutating e — a query/guard
// evaluation must never leak its pattern bindings back into the
// caller's environment.
func scopedEnv(e *env.Environment, bindings map[string]value.Value) *env.Environment {
	scoped := env.New()
	scoped.Merge(e.Snapshot())
	scoped.Merge(bindings)
	return scoped
}

func cloneBindings(m map[string]value.Value) map[string]value.Value {
	out := make(map[string]value.Value, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
