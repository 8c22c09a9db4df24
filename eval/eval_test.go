package eval

import (
	"testing"

	"damasc/ast"
	"damasc/env"
	"damasc/value"
)

func eval(t *testing.T, e *env.Environment, expr ast.Expr) value.Value {
	t.Helper()
	v, err := Eval(e, expr)
	if err != nil {
		t.Fatalf("Eval() error = %v", err)
	}
	return v
}

func evalErr(t *testing.T, e *env.Environment, expr ast.Expr) *EvalError {
	t.Helper()
	v, err := Eval(e, expr)
	if err == nil {
		t.Fatalf("Eval() = %v, want error", v)
	}
	ee, ok := err.(*EvalError)
	if !ok {
		t.Fatalf("Eval() error type = %T, want *EvalError", err)
	}
	return ee
}

func TestEvalLiteral(t *testing.T) {
	e := env.New()
	got := eval(t, e, &ast.Literal{Value: value.Integer(5)})
	if !got.Equal(value.Integer(5)) {
		t.Fatalf("got %v", got)
	}
}

func TestEvalIdentifierUnknown(t *testing.T) {
	e := env.New()
	err := evalErr(t, e, &ast.Identifier{Name: "missing"})
	if err.Kind != UnknownIdentifier {
		t.Fatalf("Kind = %v, want UnknownIdentifier", err.Kind)
	}
}

func TestEvalArithmeticOverflow(t *testing.T) {
	e := env.New()
	expr := &ast.Binary{
		Operator: ast.BinaryPlus,
		Left:     &ast.Literal{Value: value.Integer(1<<63 - 1)},
		Right:    &ast.Literal{Value: value.Integer(1)},
	}
	err := evalErr(t, e, expr)
	if err.Kind != Overflow {
		t.Fatalf("Kind = %v, want Overflow", err.Kind)
	}
}

func TestEvalPowerOfNegativeExponentOverflows(t *testing.T) {
	e := env.New()
	expr := &ast.Binary{
		Operator: ast.BinaryPowerOf,
		Left:     &ast.Literal{Value: value.Integer(2)},
		Right:    &ast.Literal{Value: value.Integer(-1)},
	}
	err := evalErr(t, e, expr)
	if err.Kind != Overflow {
		t.Fatalf("Kind = %v, want Overflow", err.Kind)
	}
}

func TestEvalPowerOfExponentAboveUint32Overflows(t *testing.T) {
	e := env.New()
	expr := &ast.Binary{
		Operator: ast.BinaryPowerOf,
		Left:     &ast.Literal{Value: value.Integer(1)},
		Right:    &ast.Literal{Value: value.Integer(1 << 33)},
	}
	err := evalErr(t, e, expr)
	if err.Kind != Overflow {
		t.Fatalf("Kind = %v, want Overflow", err.Kind)
	}
}

func TestEvalTimesMinInt64ByNegativeOneOverflows(t *testing.T) {
	e := env.New()
	expr := &ast.Binary{
		Operator: ast.BinaryTimes,
		Left:     &ast.Literal{Value: value.Integer(-1 << 63)},
		Right:    &ast.Literal{Value: value.Integer(-1)},
	}
	err := evalErr(t, e, expr)
	if err.Kind != Overflow {
		t.Fatalf("Kind = %v, want Overflow", err.Kind)
	}
}

func TestEvalDivisionByZero(t *testing.T) {
	e := env.New()
	expr := &ast.Binary{
		Operator: ast.BinaryOver,
		Left:     &ast.Literal{Value: value.Integer(10)},
		Right:    &ast.Literal{Value: value.Integer(0)},
	}
	err := evalErr(t, e, expr)
	if err.Kind != MathDivision {
		t.Fatalf("Kind = %v, want MathDivision", err.Kind)
	}
}

func TestEvalLogicalShortCircuit(t *testing.T) {
	e := env.New()
	// false && <unbound identifier> must short-circuit without erroring
	expr := &ast.Logical{
		Operator: ast.LogicalAnd,
		Left:     &ast.Literal{Value: value.Boolean(false)},
		Right:    &ast.Identifier{Name: "never evaluated"},
	}
	got := eval(t, e, expr)
	if !got.Equal(value.Boolean(false)) {
		t.Fatalf("got %v, want false", got)
	}
}

func TestEvalMemberNegativeIndex(t *testing.T) {
	e := env.New()
	arr := &ast.Literal{Value: value.Array{value.Integer(10), value.Integer(20), value.Integer(30)}}
	expr := &ast.Member{Object: arr, Property: &ast.Literal{Value: value.Integer(-1)}}
	got := eval(t, e, expr)
	if !got.Equal(value.Integer(30)) {
		t.Fatalf("got %v, want 30", got)
	}
}

func TestEvalMemberOutOfBound(t *testing.T) {
	e := env.New()
	arr := &ast.Literal{Value: value.Array{value.Integer(1)}}
	expr := &ast.Member{Object: arr, Property: &ast.Literal{Value: value.Integer(5)}}
	err := evalErr(t, e, expr)
	if err.Kind != OutOfBound {
		t.Fatalf("Kind = %v, want OutOfBound", err.Kind)
	}
}

func TestEvalObjectSpreadAndKeyExpression(t *testing.T) {
	e := env.New()
	e.Bind("base", value.EmptyObject().With("a", value.Integer(1)))
	e.Bind("k", value.String("b"))
	expr := &ast.Object{Properties: []ast.ObjectProperty{
		{Kind: ast.ObjectPropertySpread, Spread: &ast.Identifier{Name: "base"}},
		{Kind: ast.ObjectPropertyMatch, Property: ast.Property{
			Key:   ast.PropertyKey{Kind: ast.PropertyKeyExpression, Expression: &ast.Identifier{Name: "k"}},
			Value: &ast.Literal{Value: value.Integer(2)},
		}},
	}}
	got := eval(t, e, expr).(value.Object)
	if v, _ := got.Get("a"); !v.Equal(value.Integer(1)) {
		t.Fatalf("a = %v", v)
	}
	if v, _ := got.Get("b"); !v.Equal(value.Integer(2)) {
		t.Fatalf("b = %v", v)
	}
}

func TestEvalArraySpread(t *testing.T) {
	e := env.New()
	e.Bind("rest", value.Array{value.Integer(2), value.Integer(3)})
	expr := &ast.Array{Items: []ast.ArrayItem{
		{Kind: ast.ArrayItemSingle, Value: &ast.Literal{Value: value.Integer(1)}},
		{Kind: ast.ArrayItemSpread, Value: &ast.Identifier{Name: "rest"}},
	}}
	got := eval(t, e, expr).(value.Array)
	want := value.Array{value.Integer(1), value.Integer(2), value.Integer(3)}
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestEvalBuiltinLengthCountsRunes(t *testing.T) {
	e := env.New()
	expr := &ast.Call{Function: "length", Argument: &ast.Literal{Value: value.String("héllo")}}
	got := eval(t, e, expr)
	if !got.Equal(value.Integer(5)) {
		t.Fatalf("got %v, want 5", got)
	}
}

func TestEvalBuiltinKeysValuesSorted(t *testing.T) {
	e := env.New()
	e.Bind("o", value.EmptyObject().With("b", value.Integer(2)).With("a", value.Integer(1)))
	keys := eval(t, e, &ast.Call{Function: "keys", Argument: &ast.Identifier{Name: "o"}})
	want := value.Array{value.String("a"), value.String("b")}
	if !keys.Equal(want) {
		t.Fatalf("keys = %v, want %v", keys, want)
	}
	vals := eval(t, e, &ast.Call{Function: "values", Argument: &ast.Identifier{Name: "o"}})
	wantVals := value.Array{value.Integer(1), value.Integer(2)}
	if !vals.Equal(wantVals) {
		t.Fatalf("values = %v, want %v", vals, wantVals)
	}
}

func TestEvalBuiltinUnknownFunction(t *testing.T) {
	e := env.New()
	err := evalErr(t, e, &ast.Call{Function: "nope", Argument: &ast.Literal{Value: value.Null{}}})
	if err.Kind != UnknownFunction {
		t.Fatalf("Kind = %v, want UnknownFunction", err.Kind)
	}
}

func TestEvalCastAndIs(t *testing.T) {
	e := env.New()
	isExpr := &ast.Binary{Operator: ast.BinaryIs, Left: &ast.Literal{Value: value.Integer(1)}, Right: &ast.Literal{Value: value.Type{Tag: value.KindInteger}}}
	got := eval(t, e, isExpr)
	if !got.Equal(value.Boolean(true)) {
		t.Fatalf("is = %v, want true", got)
	}
	castExpr := &ast.Binary{Operator: ast.BinaryCast, Left: &ast.Literal{Value: value.String("42")}, Right: &ast.Literal{Value: value.Type{Tag: value.KindInteger}}}
	got = eval(t, e, castExpr)
	if !got.Equal(value.Integer(42)) {
		t.Fatalf("cast = %v, want 42", got)
	}
}

func TestEvalTemplateDoesNotRequoteStrings(t *testing.T) {
	e := env.New()
	e.Bind("name", value.String("Bob"))
	expr := &ast.Template{
		Parts: []ast.TemplatePart{
			{FixedStart: "Hello ", DynamicEnd: &ast.Identifier{Name: "name"}},
		},
		Suffix: "!",
	}
	got := eval(t, e, expr)
	if !got.Equal(value.String("Hello Bob!")) {
		t.Fatalf("got %v, want %q", got, "Hello Bob!")
	}
}
