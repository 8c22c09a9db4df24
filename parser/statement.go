package parser

import (
	"strconv"
	"strings"

	"damasc/assign"
	"damasc/ast"
	"damasc/bag"
	"damasc/lexer"
	"damasc/value"
)

// Statement is the common interface of every parsed top-level
// statement (§4.7's abstract statement list, over the concrete
// surface in §6.1). `.exit`, `.help`, `.bags` and bare `.bag` aren't in
// spec.md's concrete grammar but Exit/Help/TellBag/ListBags are named
// as abstract statements with no other way to reach them;
// original_source's repl.rs handles all four, so this parser exposes
// them the same way.
type Statement interface {
	statementNode()
}

type Clear struct{}
type Exit struct{}
type Help struct{}
type TellBag struct{}
type ListBags struct{}

func (*Clear) statementNode()    {}
func (*Exit) statementNode()     {}
func (*Help) statementNode()     {}
func (*TellBag) statementNode()  {}
func (*ListBags) statementNode() {}

// UseBag is `.bag <name>` (switch, or create with the unconditional
// guard if new) or `.bag <name> as <pattern> [where <expr>] [limit
// <N>]` (switch, creating with the given guard if new).
type UseBag struct {
	Name      string
	Predicate *bag.Predicate // nil means AnyGuard() if the bag is new
}

func (*UseBag) statementNode() {}

type Import struct{ Filename string }
type Export struct{ Filename string }

func (*Import) statementNode() {}
func (*Export) statementNode() {}

type Insert struct{ Expression ast.Expr }
type Pop struct{ Expression ast.Expr }
type Literal struct{ Expression ast.Expr }
type Inspect struct{ Expression ast.Expr }
type Format struct{ Expression ast.Expr }
type Eval struct{ Expression ast.Expr }

func (*Insert) statementNode()  {}
func (*Pop) statementNode()     {}
func (*Literal) statementNode() {}
func (*Inspect) statementNode() {}
func (*Format) statementNode()  {}
func (*Eval) statementNode()    {}

// Pattern is `.pattern <pattern>`, reporting the parsed pattern back
// rather than matching it against anything.
type Pattern struct{ Pattern ast.Pattern }

func (*Pattern) statementNode() {}

type Deletion struct{ Query bag.DeletionQuery }
type QueryStatement struct{ Query bag.Query }

func (*Deletion) statementNode()       {}
func (*QueryStatement) statementNode() {}

// AssignSet is `let pattern = expr, ...`: on success every binding is
// folded into the environment, all-or-nothing (the driver merges the
// result of assign.Set.Evaluate).
type AssignSet struct{ Set assign.Set }

// MatchSet is `pattern = expr, ...`: same evaluation as AssignSet but
// the environment is left untouched; only the bindings are reported.
type MatchSet struct{ Set assign.Set }

func (*AssignSet) statementNode() {}
func (*MatchSet) statementNode()  {}

// ParseStatement parses one line of input into a Statement.
func ParseStatement(input string) (Statement, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return nil, &ParseError{Message: "empty statement"}
	}
	if strings.HasPrefix(trimmed, ".") {
		return parseDotCommand(trimmed)
	}
	if strings.HasPrefix(trimmed, "let ") {
		p := New(strings.TrimPrefix(trimmed, "let "))
		assignments, err := p.parseAssignmentList()
		if err != nil {
			return nil, err
		}
		return &AssignSet{Set: assign.Set{Assignments: assignments}}, nil
	}
	if stmt, err := tryParseMatchSet(trimmed); err == nil {
		return stmt, nil
	}
	expr, err := ParseExpression(trimmed)
	if err != nil {
		return nil, err
	}
	return &Eval{Expression: expr}, nil
}

func tryParseMatchSet(trimmed string) (Statement, error) {
	p := New(trimmed)
	assignments, err := p.parseAssignmentList()
	if err != nil {
		return nil, err
	}
	return &MatchSet{Set: assign.Set{Assignments: assignments}}, nil
}

func (p *Parser) parseAssignmentList() ([]assign.Assignment, error) {
	var out []assign.Assignment
	for {
		pat, err := p.parsePattern()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.ASSIGN); err != nil {
			return nil, err
		}
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		out = append(out, assign.Assignment{Pattern: pat, Expression: expr})
		if p.current.Type == lexer.COMMA {
			p.advance()
			continue
		}
		break
	}
	if p.current.Type != lexer.EOF {
		return nil, p.errorf("unexpected trailing input: %q", p.current.Value)
	}
	return out, nil
}

func parseDotCommand(trimmed string) (Statement, error) {
	p := New(trimmed)
	if _, err := p.expect(lexer.DOT); err != nil {
		return nil, err
	}
	cmdTok, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}

	switch cmdTok.Value {
	case "clear":
		return finish(p, &Clear{})
	case "exit":
		return finish(p, &Exit{})
	case "help":
		return finish(p, &Help{})
	case "bags":
		return finish(p, &ListBags{})
	case "bag":
		return p.parseUseBag()
	case "load":
		name, err := p.expect(lexer.IDENT)
		if err != nil {
			return nil, err
		}
		return finish(p, &Import{Filename: name.Value})
	case "dump":
		name, err := p.expect(lexer.IDENT)
		if err != nil {
			return nil, err
		}
		return finish(p, &Export{Filename: name.Value})
	case "inspect":
		e, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return finish(p, &Inspect{Expression: e})
	case "format":
		e, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return finish(p, &Format{Expression: e})
	case "insert":
		e, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return finish(p, &Insert{Expression: e})
	case "pop":
		e, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return finish(p, &Pop{Expression: e})
	case "pattern":
		pat, err := p.parsePattern()
		if err != nil {
			return nil, err
		}
		return finish(p, &Pattern{Pattern: pat})
	case "literal":
		e, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return finish(p, &Literal{Expression: e})
	case "delete":
		return p.parseDeletion()
	case "query":
		return p.parseQuery()
	default:
		return nil, p.errorf("unknown statement .%s", cmdTok.Value)
	}
}

func finish(p *Parser, stmt Statement) (Statement, error) {
	if p.current.Type != lexer.EOF {
		return nil, p.errorf("unexpected trailing input: %q", p.current.Value)
	}
	return stmt, nil
}

func (p *Parser) parseUseBag() (Statement, error) {
	// Bare ".bag" with no name reports the current bag rather than
	// switching; original_source's parser never builds a TellBag at
	// all, leaving it dead code behind repl.rs's handling of it, so
	// this fills the same gap .exit/.help/.bags already fill.
	if p.current.Type == lexer.EOF {
		return &TellBag{}, nil
	}
	name, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	if p.current.Type != lexer.AS {
		return finish(p, &UseBag{Name: name.Value})
	}
	p.advance()
	pred, err := p.parsePredicateClauses()
	if err != nil {
		return nil, err
	}
	return finish(p, &UseBag{Name: name.Value, Predicate: &pred})
}

// parsePredicateClauses parses `<pattern> [where <expr>] [limit <N>]`,
// the shared tail of `.bag ... as`, `.delete` and `.query`.
func (p *Parser) parsePredicateClauses() (bag.Predicate, error) {
	pat, err := p.parsePattern()
	if err != nil {
		return bag.Predicate{}, err
	}
	guard := ast.Expr(&ast.Literal{Value: value.Boolean(true)})
	if p.current.Type == lexer.WHERE {
		p.advance()
		guard, err = p.parseExpression()
		if err != nil {
			return bag.Predicate{}, err
		}
	}
	var limit *int
	if p.current.Type == lexer.LIMIT {
		p.advance()
		tok, err := p.expect(lexer.INT)
		if err != nil {
			return bag.Predicate{}, err
		}
		n, err := strconv.Atoi(tok.Value)
		if err != nil {
			return bag.Predicate{}, p.errorf("invalid limit %q", tok.Value)
		}
		limit = &n
	}
	return bag.Predicate{Pattern: pat, Guard: guard, Limit: limit}, nil
}

func (p *Parser) parseDeletion() (Statement, error) {
	pred, err := p.parsePredicateClauses()
	if err != nil {
		return nil, err
	}
	return finish(p, &Deletion{Query: bag.DeletionQuery{Predicate: pred}})
}

func (p *Parser) parseQuery() (Statement, error) {
	pat, err := p.parsePattern()
	if err != nil {
		return nil, err
	}
	projection := ast.Expr(&ast.Identifier{Name: "$"})
	if p.current.Type == lexer.INTO {
		p.advance()
		projection, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}
	guard := ast.Expr(&ast.Literal{Value: value.Boolean(true)})
	if p.current.Type == lexer.WHERE {
		p.advance()
		guard, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}
	var limit *int
	if p.current.Type == lexer.LIMIT {
		p.advance()
		tok, err := p.expect(lexer.INT)
		if err != nil {
			return nil, err
		}
		n, err := strconv.Atoi(tok.Value)
		if err != nil {
			return nil, p.errorf("invalid limit %q", tok.Value)
		}
		limit = &n
	}
	q := bag.Query{
		Predicate: bag.Predicate{
			Pattern: &ast.Capture{Name: "$", Inner: pat},
			Guard:   guard,
			Limit:   limit,
		},
		Projection: projection,
	}
	return finish(p, &QueryStatement{Query: q})
}
