package eval

import (
	"strings"

	"damasc/ast"
	"damasc/env"
	"damasc/value"
)

// evalTemplate joins each fixed segment with its dynamic segment's
// value cast to String (§4.2: "every dynamic segment is cast to
// String before concatenation"). A dynamic segment that cannot cast
// to String fails the whole template.
func evalTemplate(e *env.Environment, n *ast.Template) (value.Value, error) {
	var sb strings.Builder
	for _, part := range n.Parts {
		sb.WriteString(part.FixedStart)
		v, err := Eval(e, part.DynamicEnd)
		if err != nil {
			return nil, err
		}
		cast, ok := value.Convert(v, value.KindString)
		if !ok {
			return fail(TypeError)
		}
		s := cast.(value.String)
		sb.WriteString(string(s))
	}
	sb.WriteString(n.Suffix)
	return value.String(sb.String()), nil
}
