// Package repl implements damasc's statement driver (§4.7): it holds
// the evaluation environment and bag bundle a session operates on, and
// executes parsed parser.Statement values against them, producing a
// printable Output.
package repl

import (
	"fmt"
	"sort"
	"strings"

	"damasc/value"
)

// OutputKind distinguishes the fixed set of shapes a statement's
// result can take, grounded on original_source/src/repl.rs's
// ReplOutput enum.
type OutputKind int

const (
	OutputAck OutputKind = iota
	OutputNo
	OutputValues
	OutputBindings
	OutputDeleted
	OutputInserted
	OutputNotice
)

// Output is the result of executing one Statement. Which fields are
// meaningful depends on Kind.
type Output struct {
	Kind     OutputKind
	Values   []value.Value
	Bindings map[string]value.Value
	Count    int
	Notice   string
}

// String renders o in the line-oriented form a session prints to its
// output, grounded line-for-line on repl.rs's Display impl for
// ReplOutput.
func (o Output) String() string {
	switch o.Kind {
	case OutputAck:
		return "OK."
	case OutputNo:
		return "NO."
	case OutputValues:
		var sb strings.Builder
		for _, v := range o.Values {
			fmt.Fprintf(&sb, "%s;\n", value.PrintedForm(v))
		}
		return strings.TrimSuffix(sb.String(), "\n")
	case OutputBindings:
		var sb strings.Builder
		sb.WriteString("YES.")
		names := make([]string, 0, len(o.Bindings))
		for k := range o.Bindings {
			names = append(names, k)
		}
		sort.Strings(names)
		for _, k := range names {
			fmt.Fprintf(&sb, "\n%s := %s;", k, value.PrintedForm(o.Bindings[k]))
		}
		return sb.String()
	case OutputDeleted:
		return fmt.Sprintf("DELETED %d.", o.Count)
	case OutputInserted:
		return fmt.Sprintf("INSERTED %d.", o.Count)
	case OutputNotice:
		return o.Notice
	default:
		return ""
	}
}

