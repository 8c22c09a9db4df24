// Package bag implements damasc's typed multiset ("bag") store and
// named bag collection ("bundle"), §4.4/§4.5.
package bag

import (
	"damasc/ast"
	"damasc/value"
)

// Predicate is a bag guard or query filter: a pattern to match each
// candidate item against, a boolean guard expression evaluated with
// the pattern's bindings in scope, and an optional result-count limit.
type Predicate struct {
	Pattern ast.Pattern
	Guard   ast.Expr
	Limit   *int // nil means unbounded
}

// AnyGuard returns the predicate that matches every value
// unconditionally: pattern `_`, guard `true`, no limit. This is the
// default guard for a bag created without an explicit `where` clause.
func AnyGuard() Predicate {
	return Predicate{
		Pattern: &ast.Discard{},
		Guard:   &ast.Literal{Value: value.Boolean(true)},
		Limit:   nil,
	}
}

// IsAny reports whether p is exactly the unconditional AnyGuard predicate.
func (p Predicate) IsAny() bool {
	_, discard := p.Pattern.(*ast.Discard)
	if !discard {
		return false
	}
	lit, ok := p.Guard.(*ast.Literal)
	if !ok {
		return false
	}
	b, ok := lit.Value.(value.Boolean)
	return ok && bool(b) && p.Limit == nil
}

// Query is a single-pattern read: match Predicate against each item,
// then evaluate Projection with the match's bindings in scope.
type Query struct {
	Predicate  Predicate
	Projection ast.Expr
}

// CrossQuery is a two-pattern join read across one bag's own items:
// PatternA is matched against the outer item, PatternB against each
// candidate inner item (excluding the same item unless Outer is set),
// Guard is evaluated with both matches' bindings in scope.
type CrossQuery struct {
	PatternA   ast.Pattern
	PatternB   ast.Pattern
	Guard      ast.Expr
	Limit      *int
	Outer      bool
	Projection ast.Expr
}

// DeletionQuery removes every item matching Predicate, in iteration
// order, stopping once Limit (if set) items have been removed.
type DeletionQuery struct {
	Predicate Predicate
}

// UpdateQuery replaces every item matching Predicate with the result
// of evaluating Projection (with the match's bindings in scope).
type UpdateQuery struct {
	Predicate  Predicate
	Projection ast.Expr
}

// TransferQuery moves every item matching Predicate from a source bag
// to a sink bag, subject to the sink's own admission guard; items the
// sink guard rejects remain in the source.
type TransferQuery struct {
	Predicate  Predicate
	Projection ast.Expr
}
