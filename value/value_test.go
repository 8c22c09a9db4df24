package value

import "testing"

func TestObjectSortedIteration(t *testing.T) {
	o := EmptyObject().With("b", Integer(2)).With("a", Integer(1)).With("c", Integer(3))
	keys := o.Keys()
	want := []string{"a", "b", "c"}
	for i, k := range want {
		if keys[i] != k {
			t.Fatalf("Keys()[%d] = %q, want %q", i, keys[i], k)
		}
	}
	if got := o.String(); got != `{a: 1, b: 2, c: 3, }` {
		t.Fatalf("String() = %q", got)
	}
}

func TestObjectWithIsCopyOnWrite(t *testing.T) {
	base := EmptyObject().With("x", Integer(1))
	derived := base.With("x", Integer(2))
	if v, _ := base.Get("x"); !v.Equal(Integer(1)) {
		t.Fatalf("base mutated: got %v", v)
	}
	if v, _ := derived.Get("x"); !v.Equal(Integer(2)) {
		t.Fatalf("derived = %v, want 2", v)
	}
}

func TestObjectMergeOverwritesLeftWithRight(t *testing.T) {
	a := EmptyObject().With("x", Integer(1)).With("y", Integer(2))
	b := EmptyObject().With("y", Integer(20)).With("z", Integer(30))
	m := a.Merge(b)
	if v, _ := m.Get("y"); !v.Equal(Integer(20)) {
		t.Fatalf("y = %v, want 20 (right wins)", v)
	}
	if m.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", m.Len())
	}
}

func TestEqualityByVariant(t *testing.T) {
	cases := []struct {
		name string
		a, b Value
		want bool
	}{
		{"ints equal", Integer(3), Integer(3), true},
		{"ints differ", Integer(3), Integer(4), false},
		{"string vs int", String("3"), Integer(3), false},
		{"arrays equal", Array{Integer(1), Integer(2)}, Array{Integer(1), Integer(2)}, true},
		{"arrays differ length", Array{Integer(1)}, Array{Integer(1), Integer(2)}, false},
		{"null equal", Null{}, Null{}, true},
		{"bool equal", Boolean(true), Boolean(true), true},
		{"type equal", Type{Tag: KindInteger}, Type{Tag: KindInteger}, true},
		{"type differ", Type{Tag: KindInteger}, Type{Tag: KindString}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.a.Equal(c.b); got != c.want {
				t.Errorf("Equal() = %v, want %v", got, c.want)
			}
		})
	}
}

func TestCompareOrdersByKindThenValue(t *testing.T) {
	vs := []Value{Integer(2), Null{}, String("a"), Integer(1), Boolean(false)}
	SortValues(vs)
	for i := 1; i < len(vs); i++ {
		if vs[i-1].Compare(vs[i]) > 0 {
			t.Fatalf("not sorted at %d: %v then %v", i, vs[i-1], vs[i])
		}
	}
	if _, ok := vs[0].(Null); !ok {
		t.Fatalf("Null should sort first (KindNull == 0), got %T", vs[0])
	}
}

func TestConvertToString(t *testing.T) {
	v, ok := Convert(Integer(42), KindString)
	if !ok || !v.Equal(String("42")) {
		t.Fatalf("Convert(42, String) = %v, %v", v, ok)
	}
	v, ok = Convert(String("hi"), KindString)
	if !ok || !v.Equal(String("hi")) {
		t.Fatalf("Convert(String, String) = %v, %v", v, ok)
	}
}

func TestConvertToInteger(t *testing.T) {
	v, ok := Convert(String("17"), KindInteger)
	if !ok || !v.Equal(Integer(17)) {
		t.Fatalf("Convert(\"17\", Integer) = %v, %v", v, ok)
	}
	if _, ok := Convert(String("nope"), KindInteger); ok {
		t.Fatalf("Convert(\"nope\", Integer) should fail")
	}
	v, ok = Convert(Boolean(true), KindInteger)
	if !ok || !v.Equal(Integer(1)) {
		t.Fatalf("Convert(true, Integer) = %v, %v", v, ok)
	}
}

func TestConvertToBoolean(t *testing.T) {
	v, ok := Convert(Integer(0), KindBoolean)
	if !ok || !v.Equal(Boolean(false)) {
		t.Fatalf("Convert(0, Boolean) = %v, %v", v, ok)
	}
	v, ok = Convert(String("true"), KindBoolean)
	if !ok || !v.Equal(Boolean(true)) {
		t.Fatalf("Convert(\"true\", Boolean) = %v, %v", v, ok)
	}
	if _, ok := Convert(String("nope"), KindBoolean); ok {
		t.Fatalf("Convert(\"nope\", Boolean) should fail")
	}
}

func TestConvertIdentityKindsRejectMismatch(t *testing.T) {
	if _, ok := Convert(Integer(1), KindArray); ok {
		t.Fatalf("Convert(Integer, Array) should fail")
	}
	v, ok := Convert(Array{Integer(1)}, KindArray)
	if !ok || !v.Equal(Array{Integer(1)}) {
		t.Fatalf("Convert(Array, Array) should be identity")
	}
}
