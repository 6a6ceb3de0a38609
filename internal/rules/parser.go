package rules

import "fmt"

// Expr is a compiled boolean rule. The interpreter walks this tree directly;
// no host-language evaluation is ever involved.
type Expr interface {
	isExpr()
}

type Lit struct{ Value bool }

type Var struct{ Name string }

type Not struct{ X Expr }

type And struct{ Left, Right Expr }

type Or struct{ Left, Right Expr }

func (Lit) isExpr() {}
func (Var) isExpr() {}
func (Not) isExpr() {}
func (And) isExpr() {}
func (Or) isExpr()  {}

// Compile parses a rule expression into its AST.
func Compile(rule string) (Expr, error) {
	toks, err := tokenize(rule)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	expr, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokEOF {
		t := p.peek()
		return nil, fmt.Errorf("rules: unexpected token %q at position %d", t.text, t.pos)
	}
	return expr, nil
}

// Precedence, loosest first: OR, AND, NOT.
type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek() token {
	return p.toks[p.pos]
}

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) parseOr() (Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokOr {
		p.next()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = Or{Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokAnd {
		p.next()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = And{Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseUnary() (Expr, error) {
	if p.peek().kind == tokNot {
		p.next()
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return Not{X: x}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (Expr, error) {
	t := p.next()
	switch t.kind {
	case tokIdent:
		return Var{Name: t.text}, nil
	case tokTrue:
		return Lit{Value: true}, nil
	case tokFalse:
		return Lit{Value: false}, nil
	case tokLParen:
		expr, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if closing := p.next(); closing.kind != tokRParen {
			return nil, fmt.Errorf("rules: missing closing parenthesis at position %d", closing.pos)
		}
		return expr, nil
	case tokEOF:
		return nil, fmt.Errorf("rules: unexpected end of expression")
	default:
		return nil, fmt.Errorf("rules: unexpected token %q at position %d", t.text, t.pos)
	}
}
