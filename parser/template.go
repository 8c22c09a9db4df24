package parser

import "damasc/ast"

// parseTemplateExpr splits a TEMPLATE token's raw interior into fixed
// text and `${expr}` segments, parsing each dynamic segment with a
// fresh Parser. original_source's parser has no template syntax at
// all (StringTemplate is only ever built programmatically); this is a
// from-scratch grammar for the `` $`...${expr}...` `` surface the spec
// names, written in the same recursive-descent style as the rest of
// this package.
func (p *Parser) parseTemplateExpr() (ast.Expr, error) {
	raw := p.current.Literal
	p.advance()

	var parts []ast.TemplatePart
	var fixed []byte
	i := 0
	for i < len(raw) {
		if raw[i] == '\\' && i+1 < len(raw) {
			fixed = append(fixed, raw[i+1])
			i += 2
			continue
		}
		if raw[i] == '$' && i+1 < len(raw) && raw[i+1] == '{' {
			depth := 1
			j := i + 2
			start := j
			for j < len(raw) && depth > 0 {
				switch raw[j] {
				case '{':
					depth++
				case '}':
					depth--
				}
				if depth == 0 {
					break
				}
				j++
			}
			if depth != 0 {
				return nil, p.errorf("unterminated ${...} in template")
			}
			inner, err := ParseExpression(raw[start:j])
			if err != nil {
				return nil, err
			}
			parts = append(parts, ast.TemplatePart{FixedStart: string(fixed), DynamicEnd: inner})
			fixed = nil
			i = j + 1
			continue
		}
		fixed = append(fixed, raw[i])
		i++
	}

	return &ast.Template{Parts: parts, Suffix: string(fixed)}, nil
}
