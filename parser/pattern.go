package parser

import (
	"strconv"

	"damasc/ast"
	"damasc/lexer"
	"damasc/value"
)

// parsePattern parses a pattern, handling the postfix `@ name` capture
// over any base pattern. original_source's pattern grammar never wires
// up Capture or Literal patterns despite declaring both variants; this
// parser fills the same gap the matcher already fills, for the same
// reason — the spec's pattern grammar names them.
func (p *Parser) parsePattern() (ast.Pattern, error) {
	base, err := p.parseBasePattern()
	if err != nil {
		return nil, err
	}
	if p.current.Type == lexer.AT {
		p.advance()
		name, err := p.expect(lexer.IDENT)
		if err != nil {
			return nil, err
		}
		return &ast.Capture{Name: name.Value, Inner: base}, nil
	}
	return base, nil
}

func (p *Parser) parseBasePattern() (ast.Pattern, error) {
	switch p.current.Type {
	case lexer.LBRACKET:
		return p.parseArrayPattern()
	case lexer.LBRACE:
		return p.parseObjectPattern()
	case lexer.IDENT:
		if p.current.Value == "_" {
			return p.parseDiscardOrTypedDiscard()
		}
		return p.parseIdentifierOrTypedIdentifier()
	case lexer.NULL_KW:
		p.advance()
		return &ast.Literal{Value: value.Null{}}, nil
	case lexer.TRUE:
		p.advance()
		return &ast.Literal{Value: value.Boolean(true)}, nil
	case lexer.FALSE:
		p.advance()
		return &ast.Literal{Value: value.Boolean(false)}, nil
	case lexer.MINUS:
		p.advance()
		tok, err := p.expect(lexer.INT)
		if err != nil {
			return nil, err
		}
		n, err := strconv.ParseInt(tok.Value, 10, 64)
		if err != nil {
			return nil, p.errorf("invalid integer literal %q", tok.Value)
		}
		return &ast.Literal{Value: value.Integer(-n)}, nil
	case lexer.INT:
		n, err := strconv.ParseInt(p.current.Value, 10, 64)
		if err != nil {
			return nil, p.errorf("invalid integer literal %q", p.current.Value)
		}
		p.advance()
		return &ast.Literal{Value: value.Integer(n)}, nil
	case lexer.STRING:
		s := p.current.Literal
		p.advance()
		return &ast.Literal{Value: value.String(s)}, nil
	default:
		return nil, p.errorf("unexpected token %s %q in pattern", p.current.Type, p.current.Value)
	}
}

// "_" lexes as a plain identifier; distinguish discard from a typed
// discard `_ is T` here rather than adding a dedicated token for it.
func (p *Parser) parseDiscardOrTypedDiscard() (ast.Pattern, error) {
	p.advance() // '_'
	if p.current.Type == lexer.IS {
		p.advance()
		k, err := p.expectTypeTag()
		if err != nil {
			return nil, err
		}
		return &ast.TypedDiscard{Type: k}, nil
	}
	return &ast.Discard{}, nil
}

func (p *Parser) parseIdentifierOrTypedIdentifier() (ast.Pattern, error) {
	name := p.current.Value
	p.advance()
	if p.current.Type == lexer.IS {
		p.advance()
		k, err := p.expectTypeTag()
		if err != nil {
			return nil, err
		}
		return &ast.TypedIdentifier{Name: name, Type: k}, nil
	}
	return &ast.Identifier{Name: name}, nil
}

func (p *Parser) expectTypeTag() (value.Kind, error) {
	switch p.current.Type {
	case lexer.TYPE_NULL, lexer.TYPE_STRING, lexer.TYPE_INTEGER, lexer.TYPE_BOOLEAN,
		lexer.TYPE_ARRAY, lexer.TYPE_OBJECT, lexer.TYPE_TYPE:
		k := typeTagKind(p.current.Type)
		p.advance()
		return k, nil
	default:
		return 0, p.errorf("expected a type name, got %s %q", p.current.Type, p.current.Value)
	}
}

func (p *Parser) parseArrayPattern() (ast.Pattern, error) {
	if _, err := p.expect(lexer.LBRACKET); err != nil {
		return nil, err
	}
	arr := &ast.Array{Rest: ast.Rest{Kind: ast.RestExact}}
	for p.current.Type != lexer.RBRACKET {
		if p.current.Type == lexer.ELLIPSIS {
			rest, err := p.parseRest()
			if err != nil {
				return nil, err
			}
			arr.Rest = rest
			break
		}
		item, err := p.parsePattern()
		if err != nil {
			return nil, err
		}
		arr.Items = append(arr.Items, item)
		if p.current.Type == lexer.COMMA {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(lexer.RBRACKET); err != nil {
		return nil, err
	}
	return arr, nil
}

// parseRest parses the trailing `...` / `...pattern` of an
// Object/Array pattern; the caller has already confirmed p.current is
// ELLIPSIS.
func (p *Parser) parseRest() (ast.Rest, error) {
	p.advance() // '...'
	switch p.current.Type {
	case lexer.RBRACKET, lexer.RBRACE, lexer.COMMA:
		return ast.Rest{Kind: ast.RestDiscard}, nil
	default:
		inner, err := p.parsePattern()
		if err != nil {
			return ast.Rest{}, err
		}
		return ast.Rest{Kind: ast.RestCollect, Pattern: inner}, nil
	}
}

func (p *Parser) parseObjectPattern() (ast.Pattern, error) {
	if _, err := p.expect(lexer.LBRACE); err != nil {
		return nil, err
	}
	obj := &ast.Object{Rest: ast.Rest{Kind: ast.RestExact}}
	for p.current.Type != lexer.RBRACE {
		if p.current.Type == lexer.ELLIPSIS {
			rest, err := p.parseRest()
			if err != nil {
				return nil, err
			}
			obj.Rest = rest
			break
		}
		prop, err := p.parseObjectPropertyPattern()
		if err != nil {
			return nil, err
		}
		obj.Properties = append(obj.Properties, prop)
		if p.current.Type == lexer.COMMA {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(lexer.RBRACE); err != nil {
		return nil, err
	}
	return obj, nil
}

func (p *Parser) parseObjectPropertyPattern() (ast.PropertyPattern, error) {
	if p.current.Type == lexer.LBRACKET {
		p.advance()
		keyExpr, err := p.parseExpression()
		if err != nil {
			return ast.PropertyPattern{}, err
		}
		if _, err := p.expect(lexer.RBRACKET); err != nil {
			return ast.PropertyPattern{}, err
		}
		if _, err := p.expect(lexer.COLON); err != nil {
			return ast.PropertyPattern{}, err
		}
		v, err := p.parsePattern()
		if err != nil {
			return ast.PropertyPattern{}, err
		}
		key := ast.PropertyKey{Kind: ast.PropertyKeyExpression, Expression: keyExpr}
		return ast.PropertyPattern{Kind: ast.PropertyPatternMatch, Key: key, Value: v}, nil
	}
	name, err := p.expect(lexer.IDENT)
	if err != nil {
		return ast.PropertyPattern{}, err
	}
	if p.current.Type != lexer.COLON {
		return ast.PropertyPattern{Kind: ast.PropertyPatternSingle, Name: name.Value}, nil
	}
	p.advance()
	v, err := p.parsePattern()
	if err != nil {
		return ast.PropertyPattern{}, err
	}
	key := ast.PropertyKey{Kind: ast.PropertyKeyIdentifier, Identifier: name.Value}
	return ast.PropertyPattern{Kind: ast.PropertyPatternMatch, Key: key, Value: v}, nil
}
