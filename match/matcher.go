// Package match implements damasc's pattern matcher (§4.3): given a
// pattern and a value, either produce the set of bindings the pattern
// captures or fail with a typed reason.
package match

import (
	"damasc/ast"
	"damasc/env"
	"damasc/eval"
	"damasc/value"
)

// FailKind is the fixed set of reasons a match can fail.
type FailKind int

const (
	IdentifierConflict FailKind = iota
	ArrayMismatch
	ArrayLengthMismatch
	TypeMismatch
	ObjectMismatch
	ObjectLengthMismatch
	ObjectKeyMismatch
	ValueMismatch
	EvalError
)

func (k FailKind) String() string {
	switch k {
	case IdentifierConflict:
		return "IdentifierConflict"
	case ArrayMismatch:
		return "ArrayMismatch"
	case ArrayLengthMismatch:
		return "ArrayLengthMismatch"
	case TypeMismatch:
		return "TypeMismatch"
	case ObjectMismatch:
		return "ObjectMismatch"
	case ObjectLengthMismatch:
		return "ObjectLengthMismatch"
	case ObjectKeyMismatch:
		return "ObjectKeyMismatch"
	case ValueMismatch:
		return "ValueMismatch"
	case EvalError:
		return "EvalError"
	default:
		return "Unknown"
	}
}

// PatternFail is returned when a pattern does not match a value.
type PatternFail struct {
	Kind FailKind
}

func (e *PatternFail) Error() string { return e.Kind.String() }

func fail(k FailKind) error { return &PatternFail{Kind: k} }

// Matcher accumulates the bindings a pattern match produces without
// touching the real environment until the caller decides to commit
// them (env.Merge) — this is what makes AssignSet/MatchSet
// transactional: a failed match anywhere in the set leaves env
// untouched.
type Matcher struct {
	Env      *env.Environment // read-only; used to evaluate computed object keys
	Bindings map[string]value.Value
}

// New returns a Matcher with an empty binding set.
func New(e *env.Environment) *Matcher {
	return &Matcher{Env: e, Bindings: make(map[string]value.Value)}
}

// Match attempts to match pattern against v, accumulating bindings
// into m.Bindings. A name bound twice (directly or via nested
// Capture/TypedIdentifier) must agree on value both times
// (write-once semantics, §4.3) or the match fails with
// IdentifierConflict.
func (m *Matcher) Match(pattern ast.Pattern, v value.Value) error {
	switch p := pattern.(type) {
	case *ast.Discard:
		return nil
	case *ast.Identifier:
		return m.bind(p.Name, v)
	case *ast.Capture:
		if err := m.Match(p.Inner, v); err != nil {
			return err
		}
		return m.bind(p.Name, v)
	case *ast.TypedDiscard:
		if v.Kind() != p.Type {
			return fail(TypeMismatch)
		}
		return nil
	case *ast.TypedIdentifier:
		if v.Kind() != p.Type {
			return fail(TypeMismatch)
		}
		return m.bind(p.Name, v)
	case *ast.Literal:
		if !v.Equal(p.Value) {
			return fail(ValueMismatch)
		}
		return nil
	case *ast.Object:
		o, ok := v.(value.Object)
		if !ok {
			return fail(ObjectMismatch)
		}
		return m.matchObject(p, o)
	case *ast.Array:
		a, ok := v.(value.Array)
		if !ok {
			return fail(ArrayMismatch)
		}
		return m.matchArray(p, a)
	default:
		return fail(EvalError)
	}
}

func (m *Matcher) bind(name string, v value.Value) error {
	if existing, ok := m.Bindings[name]; ok {
		if existing.Equal(v) {
			return nil
		}
		return fail(IdentifierConflict)
	}
	m.Bindings[name] = v
	return nil
}

func (m *Matcher) matchObject(p *ast.Object, o value.Object) error {
	if p.Rest.Kind == ast.RestExact && o.Len() != len(p.Properties) {
		return fail(ObjectLengthMismatch)
	}

	remaining := make(map[string]struct{})
	for _, k := range o.Keys() {
		remaining[k] = struct{}{}
	}

	for _, prop := range p.Properties {
		var key string
		var sub ast.Pattern
		switch prop.Kind {
		case ast.PropertyPatternSingle:
			key = prop.Name
			sub = &ast.Identifier{Name: prop.Name}
		case ast.PropertyPatternMatch:
			sub = prop.Value
			if prop.Key.Kind == ast.PropertyKeyIdentifier {
				key = prop.Key.Identifier
			} else {
				kv, err := eval.Eval(m.Env, prop.Key.Expression)
				if err != nil {
					return fail(EvalError)
				}
				ks, ok := kv.(value.String)
				if !ok {
					return fail(EvalError)
				}
				key = string(ks)
			}
		}

		if _, present := remaining[key]; !present {
			return fail(ObjectKeyMismatch)
		}
		delete(remaining, key)

		actual, ok := o.Get(key)
		if !ok {
			return fail(ObjectKeyMismatch)
		}
		if err := m.Match(sub, actual); err != nil {
			return err
		}
	}

	if p.Rest.Kind == ast.RestCollect {
		leftover := value.EmptyObject()
		for k := range remaining {
			v, _ := o.Get(k)
			leftover = leftover.With(k, v)
		}
		return m.Match(p.Rest.Pattern, leftover)
	}
	return nil
}

func (m *Matcher) matchArray(p *ast.Array, a value.Array) error {
	if p.Rest.Kind == ast.RestExact && len(a) != len(p.Items) {
		return fail(ArrayLengthMismatch)
	}
	if len(a) < len(p.Items) {
		return fail(ArrayLengthMismatch)
	}

	for i, item := range p.Items {
		if err := m.Match(item, a[i]); err != nil {
			return err
		}
	}

	if p.Rest.Kind == ast.RestCollect {
		return m.Match(p.Rest.Pattern, value.Array(append(value.Array{}, a[len(p.Items):]...)))
	}
	return nil
}
