package value

import (
	"sort"
	"strings"
)

// Object is an immutable mapping from String keys to values. Keys are
// unique; iteration (Keys, Values, String) is always in sorted key
// order — this is observable through the `keys`/`values` builtins and
// through the canonical printed form.
//
// Modelled after the teacher's types.MooMap copy-on-write abstraction
// (types/map.go), specialised to damasc's requirement of *sorted* key
// order rather than insertion order.
type Object struct {
	entries map[string]Value
}

// NewObject builds an Object from a map, taking ownership of it.
func NewObject(m map[string]Value) Object {
	if m == nil {
		m = map[string]Value{}
	}
	return Object{entries: m}
}

// EmptyObject is the zero-entry Object.
func EmptyObject() Object { return NewObject(nil) }

func (Object) Kind() Kind { return KindObject }

// Len returns the number of entries.
func (o Object) Len() int { return len(o.entries) }

// Get looks up a key.
func (o Object) Get(key string) (Value, bool) {
	v, ok := o.entries[key]
	return v, ok
}

// Has reports whether key is present.
func (o Object) Has(key string) bool {
	_, ok := o.entries[key]
	return ok
}

// Keys returns the key set in sorted order.
func (o Object) Keys() []string {
	keys := make([]string, 0, len(o.entries))
	for k := range o.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Values returns the values in sorted-key order.
func (o Object) Values() []Value {
	keys := o.Keys()
	vs := make([]Value, 0, len(keys))
	for _, k := range keys {
		vs = append(vs, o.entries[k])
	}
	return vs
}

// With returns a new Object with key set to v (copy-on-write); later
// callers never observe the mutation of a shared Object.
func (o Object) With(key string, v Value) Object {
	next := make(map[string]Value, len(o.entries)+1)
	for k, ev := range o.entries {
		next[k] = ev
	}
	next[key] = v
	return Object{entries: next}
}

// Merge returns a new Object with other's entries overlaid on o's
// (other wins on key collision), matching Object-construction-with-
// spread's left-to-right, later-overwrites-earlier semantics.
func (o Object) Merge(other Object) Object {
	next := make(map[string]Value, len(o.entries)+len(other.entries))
	for k, v := range o.entries {
		next[k] = v
	}
	for k, v := range other.entries {
		next[k] = v
	}
	return Object{entries: next}
}

// Without returns a new Object with keys removed.
func (o Object) Without(keys map[string]struct{}) Object {
	next := make(map[string]Value, len(o.entries))
	for k, v := range o.entries {
		if _, drop := keys[k]; !drop {
			next[k] = v
		}
	}
	return Object{entries: next}
}

func (o Object) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for _, k := range o.Keys() {
		sb.WriteString(k)
		sb.WriteString(": ")
		sb.WriteString(o.entries[k].String())
		sb.WriteString(", ")
	}
	sb.WriteByte('}')
	return sb.String()
}

func (o Object) Equal(other Value) bool {
	oo, ok := other.(Object)
	if !ok || len(o.entries) != len(oo.entries) {
		return false
	}
	for k, v := range o.entries {
		ov, ok := oo.entries[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

func (o Object) Compare(other Value) int {
	if c := compareByKind(o, other); c != 0 || other.Kind() != KindObject {
		return c
	}
	oo := other.(Object)
	ak, bk := o.Keys(), oo.Keys()
	for i := 0; i < len(ak) && i < len(bk); i++ {
		if c := strings.Compare(ak[i], bk[i]); c != 0 {
			return c
		}
		if c := o.entries[ak[i]].Compare(oo.entries[bk[i]]); c != 0 {
			return c
		}
	}
	return len(ak) - len(bk)
}
