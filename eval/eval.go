// Package eval implements damasc's pure, tree-walking expression
// evaluator (§4.2): eval(env, expr) -> value | EvalError, with no
// hidden state and no partial-evaluation side effects.
package eval

import (
	"damasc/ast"
	"damasc/env"
	"damasc/value"
)

// ErrorKind is the fixed error taxonomy §4.2/§7 specify. Every
// evaluation failure carries exactly one of these.
type ErrorKind int

const (
	KindError ErrorKind = iota
	TypeError
	UnknownIdentifier
	InvalidNumber
	MathDivision
	KeyNotDefined
	OutOfBound
	Overflow
	UnknownFunction
)

func (k ErrorKind) String() string {
	switch k {
	case KindError:
		return "KindError"
	case TypeError:
		return "TypeError"
	case UnknownIdentifier:
		return "UnknownIdentifier"
	case InvalidNumber:
		return "InvalidNumber"
	case MathDivision:
		return "MathDivision"
	case KeyNotDefined:
		return "KeyNotDefined"
	case OutOfBound:
		return "OutOfBound"
	case Overflow:
		return "Overflow"
	case UnknownFunction:
		return "UnknownFunction"
	default:
		return "Unknown"
	}
}

// EvalError is the error value every evaluator entry point returns on
// failure; it never panics (§7: evaluation failure is always a typed
// return value).
type EvalError struct {
	Kind    ErrorKind
	Context string // the offending identifier/function name/operator, when known
}

func (e *EvalError) Error() string {
	if e.Context == "" {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Context
}

func fail(k ErrorKind) (value.Value, error) { return nil, &EvalError{Kind: k} }

func failCtx(k ErrorKind, ctx string) (value.Value, error) {
	return nil, &EvalError{Kind: k, Context: ctx}
}

// Eval evaluates e against env, returning the resulting value or a
// typed EvalError. It never mutates env.
func Eval(e *env.Environment, expr ast.Expr) (value.Value, error) {
	switch n := expr.(type) {
	case *ast.Literal:
		return n.Value, nil
	case *ast.Identifier:
		return evalIdentifier(e, n)
	case *ast.Array:
		return evalArray(e, n)
	case *ast.Object:
		return evalObject(e, n)
	case *ast.Unary:
		return evalUnary(e, n)
	case *ast.Binary:
		return evalBinary(e, n)
	case *ast.Logical:
		return evalLogical(e, n)
	case *ast.Member:
		return evalMember(e, n)
	case *ast.Call:
		return evalCall(e, n)
	case *ast.Template:
		return evalTemplate(e, n)
	default:
		return failCtx(KindError, "unknown expression node")
	}
}

func evalIdentifier(e *env.Environment, n *ast.Identifier) (value.Value, error) {
	v, ok := e.Lookup(n.Name)
	if !ok {
		return failCtx(UnknownIdentifier, n.Name)
	}
	return v, nil
}

func evalArray(e *env.Environment, n *ast.Array) (value.Value, error) {
	result := make(value.Array, 0, len(n.Items))
	for _, item := range n.Items {
		v, err := Eval(e, item.Value)
		if err != nil {
			return nil, err
		}
		if item.Kind == ast.ArrayItemSpread {
			arr, ok := v.(value.Array)
			if !ok {
				return fail(TypeError)
			}
			result = append(result, arr...)
			continue
		}
		result = append(result, v)
	}
	return result, nil
}

func evalObject(e *env.Environment, n *ast.Object) (value.Value, error) {
	result := value.EmptyObject()
	for _, prop := range n.Properties {
		switch prop.Kind {
		case ast.ObjectPropertySingle:
			v, ok := e.Lookup(prop.Single)
			if !ok {
				return failCtx(UnknownIdentifier, prop.Single)
			}
			result = result.With(prop.Single, v)
		case ast.ObjectPropertyMatch:
			key, err := evalPropertyKey(e, prop.Property.Key)
			if err != nil {
				return nil, err
			}
			v, err := Eval(e, prop.Property.Value)
			if err != nil {
				return nil, err
			}
			result = result.With(key, v)
		case ast.ObjectPropertySpread:
			v, err := Eval(e, prop.Spread)
			if err != nil {
				return nil, err
			}
			spread, ok := v.(value.Object)
			if !ok {
				return fail(TypeError)
			}
			result = result.Merge(spread)
		}
	}
	return result, nil
}

func evalPropertyKey(e *env.Environment, k ast.PropertyKey) (string, error) {
	if k.Kind == ast.PropertyKeyIdentifier {
		return k.Identifier, nil
	}
	v, err := Eval(e, k.Expression)
	if err != nil {
		return "", err
	}
	s, ok := v.(value.String)
	if !ok {
		return "", &EvalError{Kind: TypeError}
	}
	return string(s), nil
}
