package eval

import (
	"damasc/ast"
	"damasc/env"
	"damasc/value"
)

func evalMember(e *env.Environment, n *ast.Member) (value.Value, error) {
	obj, err := Eval(e, n.Object)
	if err != nil {
		return nil, err
	}
	prop, err := Eval(e, n.Property)
	if err != nil {
		return nil, err
	}
	switch o := obj.(type) {
	case value.Object:
		key, ok := prop.(value.String)
		if !ok {
			return fail(TypeError)
		}
		v, ok := o.Get(string(key))
		if !ok {
			return fail(KeyNotDefined)
		}
		return v, nil
	case value.Array:
		idx, ok := prop.(value.Integer)
		if !ok {
			return fail(TypeError)
		}
		i, ok := resolveIndex(int64(idx), len(o))
		if !ok {
			return fail(OutOfBound)
		}
		return o[i], nil
	case value.String:
		idx, ok := prop.(value.Integer)
		if !ok {
			return fail(TypeError)
		}
		runes := []rune(string(o))
		i, ok := resolveIndex(int64(idx), len(runes))
		if !ok {
			return fail(OutOfBound)
		}
		return value.String(string(runes[i])), nil
	default:
		return fail(TypeError)
	}
}

// resolveIndex applies damasc's negative-indexing rule (§4.2): a
// negative index counts backward from the end of the sequence.
func resolveIndex(i int64, length int) (int, bool) {
	idx := i
	if idx < 0 {
		idx += int64(length)
	}
	if idx < 0 || idx >= int64(length) {
		return 0, false
	}
	return int(idx), true
}
