// Package parser turns damasc source text into ast.Expr, ast.Pattern
// and Statement trees by recursive descent over the lexer's token
// stream, two tokens of lookahead at a time — the same current/peek
// stepping the teacher's hand-written parser uses.
package parser

import (
	"fmt"
	"strconv"

	"damasc/ast"
	"damasc/lexer"
	"damasc/value"
)

// Parser holds the token stream plus two tokens of lookahead (current
// and peek).
type Parser struct {
	lex     *lexer.Lexer
	current lexer.Token
	peek    lexer.Token
}

// New creates a Parser positioned at the first token of input.
func New(input string) *Parser {
	p := &Parser{lex: lexer.New(input)}
	p.advance()
	p.advance()
	return p
}

func (p *Parser) advance() {
	p.current = p.peek
	p.peek = p.lex.NextToken()
}

func (p *Parser) errorf(format string, args ...interface{}) *ParseError {
	return &ParseError{
		Message: fmt.Sprintf(format, args...),
		Line:    p.current.Position.Line,
		Column:  p.current.Position.Column,
	}
}

func (p *Parser) expect(t lexer.Type) (lexer.Token, error) {
	if p.current.Type != t {
		return lexer.Token{}, p.errorf("expected %s, got %s %q", t, p.current.Type, p.current.Value)
	}
	tok := p.current
	p.advance()
	return tok, nil
}

// ParseExpression parses a full expression and requires EOF to follow.
func ParseExpression(input string) (ast.Expr, error) {
	p := New(input)
	e, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if p.current.Type != lexer.EOF {
		return nil, p.errorf("unexpected trailing input: %q", p.current.Value)
	}
	return e, nil
}

// ParsePattern parses a full pattern and requires EOF to follow.
func ParsePattern(input string) (ast.Pattern, error) {
	p := New(input)
	pat, err := p.parsePattern()
	if err != nil {
		return nil, err
	}
	if p.current.Type != lexer.EOF {
		return nil, p.errorf("unexpected trailing input: %q", p.current.Value)
	}
	return pat, nil
}

// parseExpression is the grammar's entry point: logical-or is the
// loosest-binding level, mirroring original_source's
// expression_logic_additive / ...multiplicative / ...type_predicate
// layering.
func (p *Parser) parseExpression() (ast.Expr, error) {
	return p.parseLogicalOr()
}

func (p *Parser) parseLogicalOr() (ast.Expr, error) {
	left, err := p.parseLogicalAnd()
	if err != nil {
		return nil, err
	}
	for p.current.Type == lexer.OR {
		p.advance()
		right, err := p.parseLogicalAnd()
		if err != nil {
			return nil, err
		}
		left = &ast.Logical{Operator: ast.LogicalOr, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseLogicalAnd() (ast.Expr, error) {
	left, err := p.parseTypePredicate()
	if err != nil {
		return nil, err
	}
	for p.current.Type == lexer.AND {
		p.advance()
		right, err := p.parseTypePredicate()
		if err != nil {
			return nil, err
		}
		left = &ast.Logical{Operator: ast.LogicalAnd, Left: left, Right: right}
	}
	return left, nil
}

// parseTypePredicate handles the `is` and `cast` suffix operators, at
// most one per level (matching original_source's non-chaining `is`).
func (p *Parser) parseTypePredicate() (ast.Expr, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	switch p.current.Type {
	case lexer.IS:
		p.advance()
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		return &ast.Binary{Operator: ast.BinaryIs, Left: left, Right: right}, nil
	case lexer.CAST:
		p.advance()
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		return &ast.Binary{Operator: ast.BinaryCast, Left: left, Right: right}, nil
	default:
		return left, nil
	}
}

var comparisonOps = map[lexer.Type]ast.BinaryOperator{
	lexer.GE: ast.BinaryGreaterThanEqual,
	lexer.LE: ast.BinaryLessThanEqual,
	lexer.LT: ast.BinaryLessThan,
	lexer.GT: ast.BinaryGreaterThan,
	lexer.EQ: ast.BinaryStrictEqual,
	lexer.NE: ast.BinaryStrictNotEqual,
	lexer.IN: ast.BinaryIn,
}

func (p *Parser) parseComparison() (ast.Expr, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := comparisonOps[p.current.Type]
		if !ok {
			return left, nil
		}
		p.advance()
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Operator: op, Left: left, Right: right}
	}
}

func (p *Parser) parseAdditive() (ast.Expr, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.current.Type == lexer.PLUS || p.current.Type == lexer.MINUS {
		op := ast.BinaryPlus
		if p.current.Type == lexer.MINUS {
			op = ast.BinaryMinus
		}
		p.advance()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Operator: op, Left: left, Right: right}
	}
	return left, nil
}

var multiplicativeOps = map[lexer.Type]ast.BinaryOperator{
	lexer.STAR:    ast.BinaryTimes,
	lexer.SLASH:   ast.BinaryOver,
	lexer.PERCENT: ast.BinaryMod,
}

func (p *Parser) parseMultiplicative() (ast.Expr, error) {
	left, err := p.parseExponential()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := multiplicativeOps[p.current.Type]
		if !ok {
			return left, nil
		}
		p.advance()
		right, err := p.parseExponential()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Operator: op, Left: left, Right: right}
	}
}

func (p *Parser) parseExponential() (ast.Expr, error) {
	left, err := p.parseIndexed()
	if err != nil {
		return nil, err
	}
	for p.current.Type == lexer.CARET {
		p.advance()
		right, err := p.parseIndexed()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Operator: ast.BinaryPowerOf, Left: left, Right: right}
	}
	return left, nil
}

// parseIndexed handles `expr[prop]` and `expr.ident` member access,
// left-associative, tightest binding before primaries.
func (p *Parser) parseIndexed() (ast.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.current.Type {
		case lexer.LBRACKET:
			p.advance()
			prop, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.RBRACKET); err != nil {
				return nil, err
			}
			left = &ast.Member{Object: left, Property: prop}
		case lexer.DOT:
			p.advance()
			name, err := p.expect(lexer.IDENT)
			if err != nil {
				return nil, err
			}
			left = &ast.Member{Object: left, Property: &ast.Literal{Value: value.String(name.Value)}}
		default:
			return left, nil
		}
	}
}

func (p *Parser) parseUnary() (ast.Expr, error) {
	switch p.current.Type {
	case lexer.NOT:
		p.advance()
		arg, err := p.parseIndexed()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Operator: ast.UnaryNot, Argument: arg}, nil
	case lexer.MINUS:
		p.advance()
		arg, err := p.parseIndexed()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Operator: ast.UnaryMinus, Argument: arg}, nil
	case lexer.PLUS:
		p.advance()
		arg, err := p.parseIndexed()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Operator: ast.UnaryPlus, Argument: arg}, nil
	default:
		return p.parsePrimary()
	}
}

var builtinNames = map[string]bool{"length": true, "keys": true, "values": true, "type": true}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	switch p.current.Type {
	case lexer.LPAREN:
		p.advance()
		e, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RPAREN); err != nil {
			return nil, err
		}
		return e, nil
	case lexer.LBRACKET:
		return p.parseArrayExpr()
	case lexer.LBRACE:
		return p.parseObjectExpr()
	case lexer.TEMPLATE:
		return p.parseTemplateExpr()
	case lexer.NULL_KW:
		p.advance()
		return &ast.Literal{Value: value.Null{}}, nil
	case lexer.TRUE:
		p.advance()
		return &ast.Literal{Value: value.Boolean(true)}, nil
	case lexer.FALSE:
		p.advance()
		return &ast.Literal{Value: value.Boolean(false)}, nil
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
	case lexer.TYPE_NULL, lexer.TYPE_STRING, lexer.TYPE_INTEGER, lexer.TYPE_BOOLEAN,
		lexer.TYPE_ARRAY, lexer.TYPE_OBJECT, lexer.TYPE_TYPE:
		k := typeTagKind(p.current.Type)
		p.advance()
		return &ast.Literal{Value: value.Type{Tag: k}}, nil
	case lexer.IDENT:
		name := p.current.Value
		if builtinNames[name] && p.peek.Type == lexer.LPAREN {
			p.advance()
			p.advance() // '('
			arg, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.RPAREN); err != nil {
				return nil, err
			}
			return &ast.Call{Function: name, Argument: arg}, nil
		}
		p.advance()
		return &ast.Identifier{Name: name}, nil
	default:
		return nil, p.errorf("unexpected token %s %q in expression", p.current.Type, p.current.Value)
	}
}

func typeTagKind(t lexer.Type) value.Kind {
	switch t {
	case lexer.TYPE_NULL:
		return value.KindNull
	case lexer.TYPE_STRING:
		return value.KindString
	case lexer.TYPE_INTEGER:
		return value.KindInteger
	case lexer.TYPE_BOOLEAN:
		return value.KindBoolean
	case lexer.TYPE_ARRAY:
		return value.KindArray
	case lexer.TYPE_OBJECT:
		return value.KindObject
	default:
		return value.KindType
	}
}

func (p *Parser) parseArrayExpr() (ast.Expr, error) {
	if _, err := p.expect(lexer.LBRACKET); err != nil {
		return nil, err
	}
	var items []ast.ArrayItem
	for p.current.Type != lexer.RBRACKET {
		kind := ast.ArrayItemSingle
		if p.current.Type == lexer.ELLIPSIS {
			p.advance()
			kind = ast.ArrayItemSpread
		}
		v, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		items = append(items, ast.ArrayItem{Kind: kind, Value: v})
		if p.current.Type == lexer.COMMA {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(lexer.RBRACKET); err != nil {
		return nil, err
	}
	return &ast.Array{Items: items}, nil
}

func (p *Parser) parseObjectExpr() (ast.Expr, error) {
	if _, err := p.expect(lexer.LBRACE); err != nil {
		return nil, err
	}
	var props []ast.ObjectProperty
	for p.current.Type != lexer.RBRACE {
		prop, err := p.parseObjectPropertyExpr()
		if err != nil {
			return nil, err
		}
		props = append(props, prop)
		if p.current.Type == lexer.COMMA {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(lexer.RBRACE); err != nil {
		return nil, err
	}
	return &ast.Object{Properties: props}, nil
}

func (p *Parser) parseObjectPropertyExpr() (ast.ObjectProperty, error) {
	if p.current.Type == lexer.ELLIPSIS {
		p.advance()
		v, err := p.parseExpression()
		if err != nil {
			return ast.ObjectProperty{}, err
		}
		return ast.ObjectProperty{Kind: ast.ObjectPropertySpread, Spread: v}, nil
	}
	if p.current.Type == lexer.LBRACKET {
		p.advance()
		keyExpr, err := p.parseExpression()
		if err != nil {
			return ast.ObjectProperty{}, err
		}
		if _, err := p.expect(lexer.RBRACKET); err != nil {
			return ast.ObjectProperty{}, err
		}
		if _, err := p.expect(lexer.COLON); err != nil {
			return ast.ObjectProperty{}, err
		}
		v, err := p.parseExpression()
		if err != nil {
			return ast.ObjectProperty{}, err
		}
		key := ast.PropertyKey{Kind: ast.PropertyKeyExpression, Expression: keyExpr}
		return ast.ObjectProperty{Kind: ast.ObjectPropertyMatch, Property: ast.Property{Key: key, Value: v}}, nil
	}
	name, err := p.expect(lexer.IDENT)
	if err != nil {
		return ast.ObjectProperty{}, err
	}
	if p.current.Type != lexer.COLON {
		return ast.ObjectProperty{Kind: ast.ObjectPropertySingle, Single: name.Value}, nil
	}
	p.advance()
	v, err := p.parseExpression()
	if err != nil {
		return ast.ObjectProperty{}, err
	}
	key := ast.PropertyKey{Kind: ast.PropertyKeyIdentifier, Identifier: name.Value}
	return ast.ObjectProperty{Kind: ast.ObjectPropertyMatch, Property: ast.Property{Key: key, Value: v}}, nil
}
