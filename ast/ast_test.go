package ast

import (
	"reflect"
	"testing"

	"damasc/value"
)

func TestGetIdentifiersVisitsNestedNodes(t *testing.T) {
	// (x + y[z]): identifiers on both sides of a binary and inside a member access
	e := &Binary{
		Operator: BinaryPlus,
		Left:     &Identifier{Name: "x"},
		Right: &Member{
			Object:   &Identifier{Name: "y"},
			Property: &Identifier{Name: "z"},
		},
	}
	got := GetIdentifiers(e)
	want := []string{"x", "y", "z"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("GetIdentifiers = %v, want %v", got, want)
	}
}

func TestGetIdentifiersThroughObjectAndCall(t *testing.T) {
	e := &Object{Properties: []ObjectProperty{
		{Kind: ObjectPropertySingle, Single: "a"},
		{Kind: ObjectPropertyMatch, Property: Property{
			Key:   PropertyKey{Kind: PropertyKeyIdentifier, Identifier: "b"},
			Value: &Call{Function: "length", Argument: &Identifier{Name: "c"}},
		}},
		{Kind: ObjectPropertySpread, Spread: &Identifier{Name: "d"}},
	}}
	got := GetIdentifiers(e)
	want := []string{"a", "c", "d"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("GetIdentifiers = %v, want %v", got, want)
	}
}

func TestGetPatternIdentifiersRepeatedBinding(t *testing.T) {
	// {x, y: x} — x bound twice (write-once join happens in match, not here)
	p := &Object{
		Properties: []PropertyPattern{
			{Kind: PropertyPatternSingle, Name: "x"},
			{Kind: PropertyPatternMatch, Key: PropertyKey{Kind: PropertyKeyIdentifier, Identifier: "y"}, Value: &Identifier{Name: "x"}},
		},
		Rest: Rest{Kind: RestExact},
	}
	got := GetPatternIdentifiers(p)
	want := []string{"x", "x"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("GetPatternIdentifiers = %v, want %v", got, want)
	}
}

func TestGetExpressionsFromComputedKey(t *testing.T) {
	p := &Object{
		Properties: []PropertyPattern{
			{Kind: PropertyPatternMatch, Key: PropertyKey{Kind: PropertyKeyExpression, Expression: &Identifier{Name: "k"}}, Value: &Discard{}},
		},
		Rest: Rest{Kind: RestExact},
	}
	got := GetExpressions(p)
	if len(got) != 1 {
		t.Fatalf("GetExpressions = %v, want 1 entry", got)
	}
	if id, ok := got[0].(*Identifier); !ok || id.Name != "k" {
		t.Fatalf("GetExpressions[0] = %#v, want Identifier{k}", got[0])
	}
}

func TestFormatExpressionParenthesizesBinary(t *testing.T) {
	e := &Binary{Operator: BinaryPlus, Left: &Identifier{Name: "a"}, Right: &Literal{Value: value.Integer(1)}}
	if got, want := FormatExpression(e), "(a + 1)"; got != want {
		t.Fatalf("FormatExpression = %q, want %q", got, want)
	}
}

func TestFormatPatternWithRestCollect(t *testing.T) {
	p := &Array{
		Items: []Pattern{&Identifier{Name: "head"}},
		Rest:  Rest{Kind: RestCollect, Pattern: &Identifier{Name: "tail"}},
	}
	if got, want := FormatPattern(p), "[head,...tail]"; got != want {
		t.Fatalf("FormatPattern = %q, want %q", got, want)
	}
}
