package eval

import (
	"damasc/ast"
	"damasc/env"
	"damasc/value"
)

func evalCall(e *env.Environment, n *ast.Call) (value.Value, error) {
	arg, err := Eval(e, n.Argument)
	if err != nil {
		return nil, err
	}
	switch n.Function {
	case "length":
		return builtinLength(arg)
	case "keys":
		return builtinKeys(arg)
	case "values":
		return builtinValues(arg)
	case "type":
		return value.Type{Tag: arg.Kind()}, nil
	default:
		return failCtx(UnknownFunction, n.Function)
	}
}

// builtinLength counts runes for String, elements for Array, entries
// for Object. Counting runes rather than bytes is a deliberate choice
// where the spec leaves the unit of "length" for String unstated: it
// matches the string-indexing rule in members.go, which also operates
// on runes, so `length(s)` always agrees with the valid index range
// of `s[i]`.
func builtinLength(v value.Value) (value.Value, error) {
	switch s := v.(type) {
	case value.String:
		return value.Integer(len([]rune(string(s)))), nil
	case value.Array:
		return value.Integer(len(s)), nil
	case value.Object:
		return value.Integer(s.Len()), nil
	default:
		return fail(TypeError)
	}
}

func builtinKeys(v value.Value) (value.Value, error) {
	o, ok := v.(value.Object)
	if !ok {
		return fail(TypeError)
	}
	keys := o.Keys()
	out := make(value.Array, len(keys))
	for i, k := range keys {
		out[i] = value.String(k)
	}
	return out, nil
}

func builtinValues(v value.Value) (value.Value, error) {
	o, ok := v.(value.Object)
	if !ok {
		return fail(TypeError)
	}
	return value.Array(o.Values()), nil
}
