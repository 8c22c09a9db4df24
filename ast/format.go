package ast

import "strings"

// FormatExpression renders an expression the way the original
// grammar would re-read it: fully parenthesized binary/logical/unary
// forms, no operator-precedence elision. Used by the `.format`
// statement.
func FormatExpression(e Expr) string {
	var sb strings.Builder
	writeExpr(&sb, e)
	return sb.String()
}

func writeExpr(sb *strings.Builder, e Expr) {
	switch v := e.(type) {
	case *Literal:
		sb.WriteString(v.Value.String())
	case *Identifier:
		sb.WriteString(v.Name)
	case *Array:
		sb.WriteByte('[')
		for _, item := range v.Items {
			if item.Kind == ArrayItemSpread {
				sb.WriteString("...(")
				writeExpr(sb, item.Value)
				sb.WriteString("),")
			} else {
				writeExpr(sb, item.Value)
				sb.WriteByte(',')
			}
		}
		sb.WriteByte(']')
	case *Object:
		sb.WriteByte('{')
		for _, p := range v.Properties {
			switch p.Kind {
			case ObjectPropertySingle:
				sb.WriteString(p.Single)
			case ObjectPropertyMatch:
				writePropertyKey(sb, p.Property.Key)
				sb.WriteString(": ")
				writeExpr(sb, p.Property.Value)
			case ObjectPropertySpread:
				sb.WriteString("...(")
				writeExpr(sb, p.Spread)
				sb.WriteByte(')')
			}
			sb.WriteByte(',')
		}
		sb.WriteByte('}')
	case *Unary:
		sb.WriteByte('(')
		sb.WriteString(unaryOperatorString(v.Operator))
		sb.WriteByte(' ')
		writeExpr(sb, v.Argument)
		sb.WriteByte(')')
	case *Binary:
		sb.WriteByte('(')
		writeExpr(sb, v.Left)
		sb.WriteByte(' ')
		sb.WriteString(binaryOperatorString(v.Operator))
		sb.WriteByte(' ')
		writeExpr(sb, v.Right)
		sb.WriteByte(')')
	case *Logical:
		sb.WriteByte('(')
		writeExpr(sb, v.Left)
		sb.WriteByte(' ')
		if v.Operator == LogicalOr {
			sb.WriteString("||")
		} else {
			sb.WriteString("&&")
		}
		sb.WriteByte(' ')
		writeExpr(sb, v.Right)
		sb.WriteByte(')')
	case *Member:
		writeExpr(sb, v.Object)
		sb.WriteByte('[')
		writeExpr(sb, v.Property)
		sb.WriteByte(']')
	case *Call:
		sb.WriteString(v.Function)
		sb.WriteByte('(')
		writeExpr(sb, v.Argument)
		sb.WriteByte(')')
	case *Template:
		sb.WriteString("$`")
		for _, p := range v.Parts {
			sb.WriteString(p.FixedStart)
			sb.WriteString("${")
			writeExpr(sb, p.DynamicEnd)
			sb.WriteByte('}')
		}
		sb.WriteString(v.Suffix)
		sb.WriteByte('`')
	}
}

func writePropertyKey(sb *strings.Builder, k PropertyKey) {
	if k.Kind == PropertyKeyExpression {
		sb.WriteByte('[')
		writeExpr(sb, k.Expression)
		sb.WriteByte(']')
		return
	}
	sb.WriteString(k.Identifier)
}

func unaryOperatorString(op UnaryOperator) string {
	switch op {
	case UnaryMinus:
		return "-"
	case UnaryPlus:
		return "+"
	case UnaryNot:
		return "!"
	default:
		return "?"
	}
}

func binaryOperatorString(op BinaryOperator) string {
	switch op {
	case BinaryStrictEqual:
		return "=="
	case BinaryStrictNotEqual:
		return "!="
	case BinaryLessThan:
		return "<"
	case BinaryGreaterThan:
		return ">"
	case BinaryLessThanEqual:
		return "<="
	case BinaryGreaterThanEqual:
		return ">="
	case BinaryPlus:
		return "+"
	case BinaryMinus:
		return "-"
	case BinaryTimes:
		return "*"
	case BinaryOver:
		return "/"
	case BinaryMod:
		return "%"
	case BinaryIn:
		return "in"
	case BinaryPowerOf:
		return "^"
	case BinaryIs:
		return "is"
	case BinaryCast:
		return "cast"
	default:
		return "?"
	}
}

// FormatPattern renders a pattern the way the grammar would re-read
// it, matching spec.md §6.2's pattern-printing grammar.
func FormatPattern(p Pattern) string {
	var sb strings.Builder
	writePattern(&sb, p)
	return sb.String()
}

func writePattern(sb *strings.Builder, p Pattern) {
	switch v := p.(type) {
	case *Discard:
		sb.WriteByte('_')
	case *Literal:
		sb.WriteString(v.Value.String())
	case *Capture:
		writePattern(sb, v.Inner)
		sb.WriteString(" @ ")
		sb.WriteString(v.Name)
	case *TypedDiscard:
		sb.WriteString("_ is ")
		sb.WriteString(v.Type.String())
	case *Identifier:
		sb.WriteString(v.Name)
	case *TypedIdentifier:
		sb.WriteString(v.Name)
		sb.WriteString(" is ")
		sb.WriteString(v.Type.String())
	case *Object:
		sb.WriteByte('{')
		for _, prop := range v.Properties {
			switch prop.Kind {
			case PropertyPatternSingle:
				sb.WriteString(prop.Name)
			case PropertyPatternMatch:
				writePropertyKey(sb, prop.Key)
				sb.WriteString(": ")
				writePattern(sb, prop.Value)
			}
			sb.WriteByte(',')
		}
		writeRest(sb, v.Rest)
		sb.WriteByte('}')
	case *Array:
		sb.WriteByte('[')
		for _, item := range v.Items {
			writePattern(sb, item)
			sb.WriteByte(',')
		}
		writeRest(sb, v.Rest)
		sb.WriteByte(']')
	}
}

func writeRest(sb *strings.Builder, r Rest) {
	switch r.Kind {
	case RestDiscard:
		sb.WriteString("...")
	case RestCollect:
		sb.WriteString("...")
		writePattern(sb, r.Pattern)
	}
}
