package value

import "strconv"

// Convert implements the `cast` operator's frozen conversion table
// (spec.md §4.2, SPEC_FULL.md §5). It returns (value, true) on success,
// (nil, false) if the conversion is not defined for this pair of kinds
// or the source value doesn't parse.
func Convert(v Value, to Kind) (Value, bool) {
	switch to {
	case KindString:
		// String -> String is identity, not re-quoting via PrintedForm:
		// otherwise casting an already-String value (as every template
		// interpolation segment does) would wrap it in a second layer of
		// quotes, corrupting the common case of interpolating a string
		// variable into a template.
		if s, ok := v.(String); ok {
			return s, true
		}
		return String(PrintedForm(v)), true
	case KindInteger:
		switch s := v.(type) {
		case Integer:
			return s, true
		case String:
			n, err := strconv.ParseInt(string(s), 10, 64)
			if err != nil {
				return nil, false
			}
			return Integer(n), true
		case Boolean:
			if s {
				return Integer(1), true
			}
			return Integer(0), true
		default:
			return nil, false
		}
	case KindBoolean:
		switch s := v.(type) {
		case Boolean:
			return s, true
		case Integer:
			return Boolean(s != 0), true
		case String:
			switch string(s) {
			case "true":
				return Boolean(true), true
			case "false":
				return Boolean(false), true
			default:
				return nil, false
			}
		default:
			return nil, false
		}
	case KindNull:
		if _, ok := v.(Null); ok {
			return v, true
		}
		return nil, false
	case KindType:
		if _, ok := v.(Type); ok {
			return v, true
		}
		return nil, false
	case KindArray:
		if _, ok := v.(Array); ok {
			return v, true
		}
		return nil, false
	case KindObject:
		if _, ok := v.(Object); ok {
			return v, true
		}
		return nil, false
	default:
		return nil, false
	}
}

// PrintedForm returns a value's canonical printed form (§6.2), the
// same rendering used by `cast`-to-String, by .literal and .dump, and
// by printed output values. It
// is identical to Value.String() but named separately so cast's "any
// value → its printed form" rule reads as a direct quote of spec.md.
func PrintedForm(v Value) string {
	return v.String()
}
