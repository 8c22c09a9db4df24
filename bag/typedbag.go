package bag

import (
	"damasc/env"
	"damasc/value"
)

// TypedBag is a ValueBag plus an admission guard (§4.4): only values
// accepted by Guard are ever stored. The guard is evaluated in a
// fresh, empty environment scoped to the bag itself — it never sees
// bindings from the statement that triggered the insert.
type TypedBag struct {
	raw   *ValueBag
	guard Predicate
}

// NewTypedBag returns an empty bag admitting only values guard accepts.
func NewTypedBag(guard Predicate) *TypedBag {
	return &TypedBag{raw: NewValueBag(), guard: guard}
}

// Guard returns the bag's admission predicate (returned by
// Bundle.Info alongside the bag's size).
func (t *TypedBag) Guard() Predicate { return t.guard }

// Insert admits v if it satisfies the bag's guard and, when the guard
// carries a limit, the bag isn't already at capacity — §3.3/§4.4's
// admission guard bundles the cardinality cap in with the
// pattern/where check, matching check_value's `if let Some(l) =
// pred.limit { if l <= count { return false } }` ahead of the pattern
// match.
func (t *TypedBag) Insert(v value.Value) bool {
	if t.guard.Limit != nil && t.raw.Len() >= *t.guard.Limit {
		return false
	}
	if !matchesPredicate(env.New(), t.guard, v) {
		return false
	}
	t.raw.Insert(v)
	return true
}

// Pop removes one value structurally equal to v.
func (t *TypedBag) Pop(v value.Value) bool { return t.raw.Pop(v) }

// Len reports the item count.
func (t *TypedBag) Len() int { return t.raw.Len() }

// Items returns a copy of every stored value.
func (t *TypedBag) Items() []value.Value { return t.raw.Items() }

// Query runs q against the bag's items with e as the ambient
// environment for the guard/projection.
func (t *TypedBag) Query(e *env.Environment, q Query) *Iterator { return t.raw.Query(e, q) }

// CrossQuery runs q against the bag's items with e as the ambient environment.
func (t *TypedBag) CrossQuery(e *env.Environment, q CrossQuery) *Iterator {
	return t.raw.CrossQuery(e, q)
}

// Delete removes items matching q, returning the count removed.
func (t *TypedBag) Delete(e *env.Environment, q DeletionQuery) int { return t.raw.Delete(e, q) }

// Update replaces items matching q with their projection. A projection
// the bag's guard rejects leaves its item unchanged and is not counted
// (it still counts toward q's limit).
func (t *TypedBag) Update(e *env.Environment, q UpdateQuery) (int, error) {
	before := t.raw.Items()
	n, err := t.raw.Update(e, q)
	for i, v := range t.raw.items {
		if !v.Equal(before[i]) && !matchesPredicate(env.New(), t.guard, v) {
			t.raw.items[i] = before[i]
			n--
		}
	}
	return n, err
}
