package eval

import (
	"math"

	"damasc/ast"
	"damasc/env"
	"damasc/value"
)

func evalUnary(e *env.Environment, n *ast.Unary) (value.Value, error) {
	v, err := Eval(e, n.Argument)
	if err != nil {
		return nil, err
	}
	switch n.Operator {
	case ast.UnaryMinus:
		i, ok := v.(value.Integer)
		if !ok {
			return fail(TypeError)
		}
		return -i, nil
	case ast.UnaryPlus:
		i, ok := v.(value.Integer)
		if !ok {
			return fail(TypeError)
		}
		return i, nil
	case ast.UnaryNot:
		b, ok := v.(value.Boolean)
		if !ok {
			return fail(TypeError)
		}
		return !b, nil
	default:
		return fail(KindError)
	}
}

func evalLogical(e *env.Environment, n *ast.Logical) (value.Value, error) {
	lv, err := Eval(e, n.Left)
	if err != nil {
		return nil, err
	}
	lb, ok := lv.(value.Boolean)
	if !ok {
		return fail(TypeError)
	}
	if n.Operator.ShortCircuitOn(bool(lb)) {
		return lb, nil
	}
	rv, err := Eval(e, n.Right)
	if err != nil {
		return nil, err
	}
	rb, ok := rv.(value.Boolean)
	if !ok {
		return fail(TypeError)
	}
	return rb, nil
}

func evalBinary(e *env.Environment, n *ast.Binary) (value.Value, error) {
	lv, err := Eval(e, n.Left)
	if err != nil {
		return nil, err
	}
	rv, err := Eval(e, n.Right)
	if err != nil {
		return nil, err
	}
	return applyBinary(n.Operator, lv, rv)
}

func applyBinary(op ast.BinaryOperator, left, right value.Value) (value.Value, error) {
	switch op {
	case ast.BinaryStrictEqual:
		return value.Boolean(left.Equal(right)), nil
	case ast.BinaryStrictNotEqual:
		return value.Boolean(!left.Equal(right)), nil
	case ast.BinaryLessThan, ast.BinaryGreaterThan, ast.BinaryLessThanEqual, ast.BinaryGreaterThanEqual:
		return compareIntegers(op, left, right)
	case ast.BinaryPlus, ast.BinaryMinus, ast.BinaryTimes, ast.BinaryOver, ast.BinaryMod, ast.BinaryPowerOf:
		return arithmetic(op, left, right)
	case ast.BinaryIn:
		s, ok := left.(value.String)
		if !ok {
			return fail(TypeError)
		}
		o, ok := right.(value.Object)
		if !ok {
			return fail(TypeError)
		}
		return value.Boolean(o.Has(string(s))), nil
	case ast.BinaryIs:
		t, ok := right.(value.Type)
		if !ok {
			return fail(KindError)
		}
		return value.Boolean(left.Kind() == t.Tag), nil
	case ast.BinaryCast:
		t, ok := right.(value.Type)
		if !ok {
			return fail(KindError)
		}
		out, ok := value.Convert(left, t.Tag)
		if !ok {
			return fail(TypeError)
		}
		return out, nil
	default:
		return fail(KindError)
	}
}

func compareIntegers(op ast.BinaryOperator, left, right value.Value) (value.Value, error) {
	l, ok := left.(value.Integer)
	if !ok {
		return fail(TypeError)
	}
	r, ok := right.(value.Integer)
	if !ok {
		return fail(TypeError)
	}
	switch op {
	case ast.BinaryLessThan:
		return value.Boolean(l < r), nil
	case ast.BinaryGreaterThan:
		return value.Boolean(l > r), nil
	case ast.BinaryLessThanEqual:
		return value.Boolean(l <= r), nil
	case ast.BinaryGreaterThanEqual:
		return value.Boolean(l >= r), nil
	default:
		return fail(KindError)
	}
}

// arithmetic performs damasc's checked 64-bit integer arithmetic
// (§4.2): overflow and division/modulo-by-zero are reported as typed
// errors rather than wrapping or panicking.
func arithmetic(op ast.BinaryOperator, left, right value.Value) (value.Value, error) {
	l, ok := left.(value.Integer)
	if !ok {
		return fail(TypeError)
	}
	r, ok := right.(value.Integer)
	if !ok {
		return fail(TypeError)
	}
	switch op {
	case ast.BinaryPlus:
		sum := l + r
		if (r > 0 && sum < l) || (r < 0 && sum > l) {
			return fail(Overflow)
		}
		return sum, nil
	case ast.BinaryMinus:
		diff := l - r
		if (r < 0 && diff < l) || (r > 0 && diff > l) {
			return fail(Overflow)
		}
		return diff, nil
	case ast.BinaryTimes:
		if l == 0 || r == 0 {
			return value.Integer(0), nil
		}
		if (l == minInt64 && r == -1) || (r == minInt64 && l == -1) {
			return fail(Overflow)
		}
		prod := l * r
		if prod/r != l {
			return fail(Overflow)
		}
		return prod, nil
	case ast.BinaryOver:
		if r == 0 {
			return fail(MathDivision)
		}
		if l == minInt64 && r == -1 {
			return fail(Overflow)
		}
		return l / r, nil
	case ast.BinaryMod:
		if r == 0 {
			return fail(MathDivision)
		}
		if l == minInt64 && r == -1 {
			return fail(Overflow)
		}
		return l % r, nil
	case ast.BinaryPowerOf:
		return checkedPow(l, r)
	default:
		return fail(KindError)
	}
}

const minInt64 = value.Integer(-1 << 63)

// checkedPow requires 0 <= exp <= math.MaxUint32, matching the
// original's `l.checked_pow(*r as u32)`: a negative r wraps to a huge
// exponent under `as u32` and overflows rather than type-erroring, and
// an int64 exponent above math.MaxUint32 is rejected before the naive
// loop below. The loop is linear in exp, so a base of -1, 0 or 1 with
// a large in-range exponent still iterates up to exp times.
func checkedPow(base, exp value.Integer) (value.Value, error) {
	if exp < 0 || exp > math.MaxUint32 {
		return fail(Overflow)
	}
	var result value.Integer = 1
	for i := value.Integer(0); i < exp; i++ {
		next := result * base
		if base != 0 && next/base != result {
			return fail(Overflow)
		}
		result = next
	}
	return result, nil
}
