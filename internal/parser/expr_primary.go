package parser

import (
	"pycst/internal/cst"
	"pycst/internal/diag"
	"pycst/internal/token"
)

// ParsePrimary parses an atom and its trailers: .name, (args), [index].
func (p *Parser) ParsePrimary() (cst.Expr, error) {
	atom, err := p.ParseAtom()
	if err != nil {
		return nil, err
	}
	return p.parseTrailers(atom)
}

func (p *Parser) parseTrailers(atom cst.Expr) (cst.Expr, error) {
	var trailers []cst.Trailer
	for {
		var (
			t   cst.Trailer
			err error
		)
		switch p.lx.Peek().Kind {
		case token.Dot:
			t, err = p.parseAttribute()
		case token.LParen:
			t, err = p.parseCall()
		case token.LBracket:
			t, err = p.parseSubscript()
		default:
			if len(trailers) == 0 {
				return atom, nil
			}
			return &cst.Primary{Atom: atom, Trailers: trailers}, nil
		}
		if err != nil {
			return nil, err
		}
		trailers = append(trailers, t)
	}
}

func (p *Parser) parseAttribute() (*cst.Attribute, error) {
	dot := p.advance()
	name, err := p.expectName()
	if err != nil {
		return nil, err
	}
	return &cst.Attribute{Dot: dot, Name: name}, nil
}

func (p *Parser) parseCall() (*cst.Call, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	call := &cst.Call{LParen: p.advance()}
	args, commas, err := p.parseArgs()
	if err != nil {
		return nil, err
	}
	call.Args, call.Commas = args, commas
	if call.RParen, err = p.expect(token.RParen, diag.SynExpectRParen); err != nil {
		return nil, err
	}
	return call, nil
}

// parseArgs parses call or class arguments up to ')'. The closing paren is left for the caller.
// A lone unparenthesized generator is accepted as the only argument.
func (p *Parser) parseArgs() ([]*cst.Arg, []token.Token, error) {
	var (
		args   []*cst.Arg
		commas []token.Token
	)
	for !p.at(token.RParen) {
		arg, err := p.parseArg()
		if err != nil {
			return nil, nil, err
		}
		if p.atCompFor() && arg.Star == nil && arg.Name == nil {
			if len(args) > 0 {
				return nil, nil, p.unexpected(diag.SynBadArguments, "generator argument must be parenthesized")
			}
			clauses, err := p.parseCompClauses()
			if err != nil {
				return nil, nil, err
			}
			arg.Value = &cst.GeneratorExp{Elt: arg.Value, Clauses: clauses}
			if !p.at(token.RParen) {
				return nil, nil, p.unexpected(diag.SynBadArguments, "generator argument must be parenthesized")
			}
		}
		args = append(args, arg)
		if !p.at(token.Comma) {
			break
		}
		commas = append(commas, p.advance())
	}
	return args, commas, nil
}

func (p *Parser) parseArg() (*cst.Arg, error) {
	switch {
	case p.atAny(token.Star, token.DoubleStar):
		star := p.advancePtr()
		value, err := p.ParseTest()
		if err != nil {
			return nil, err
		}
		return &cst.Arg{Star: star, Value: value}, nil
	case p.at(token.Name) && p.lx.Peek2().Kind == token.Assign:
		name := p.advancePtr()
		assign := p.advancePtr()
		value, err := p.ParseTest()
		if err != nil {
			return nil, err
		}
		return &cst.Arg{Name: name, Assign: assign, Value: value}, nil
	}
	if !p.canStartExpr() {
		return nil, p.unexpected(diag.SynBadArguments, "expected argument")
	}
	value, err := p.ParseNamedExpression()
	if err != nil {
		return nil, err
	}
	return &cst.Arg{Value: value}, nil
}

func (p *Parser) parseSubscript() (*cst.Subscript, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	sub := &cst.Subscript{LBracket: p.advance()}
	index, err := p.parseSlices()
	if err != nil {
		return nil, err
	}
	sub.Index = index
	if sub.RBracket, err = p.expect(token.RBracket, diag.SynExpectRBracket); err != nil {
		return nil, err
	}
	return sub, nil
}

// parseSlices: slice | slice (',' slice)* [',']
func (p *Parser) parseSlices() (cst.Expr, error) {
	first, err := p.parseSliceItem()
	if err != nil {
		return nil, err
	}
	if !p.at(token.Comma) {
		return first, nil
	}
	s := &cst.Slices{Elts: []cst.Expr{first}}
	for p.at(token.Comma) {
		s.Commas = append(s.Commas, p.advance())
		if p.at(token.RBracket) {
			break
		}
		x, err := p.parseSliceItem()
		if err != nil {
			return nil, err
		}
		s.Elts = append(s.Elts, x)
	}
	return s, nil
}

// parseSliceItem: expr | [lower] ':' [upper] [':' [step]]
func (p *Parser) parseSliceItem() (cst.Expr, error) {
	var lower cst.Expr
	if !p.at(token.Colon) {
		x, err := p.parseStarNamedExpression()
		if err != nil {
			return nil, err
		}
		if !p.at(token.Colon) {
			return x, nil
		}
		lower = x
	}

	s := &cst.Slice{Lower: lower, Colon: p.advance()}
	if !p.atAny(token.Colon, token.Comma, token.RBracket) {
		upper, err := p.ParseTest()
		if err != nil {
			return nil, err
		}
		s.Upper = upper
	}
	if p.at(token.Colon) {
		s.Colon2 = p.advancePtr()
		if !p.atAny(token.Comma, token.RBracket) {
			step, err := p.ParseTest()
			if err != nil {
				return nil, err
			}
			s.Step = step
		}
	}
	return s, nil
}

// ParseAwait parses "await primary" or a bare primary.
func (p *Parser) ParseAwait() (cst.Expr, error) {
	if !p.at(token.KwAwait) {
		return p.ParsePrimary()
	}
	await := p.advance()
	x, err := p.ParsePrimary()
	if err != nil {
		return nil, err
	}
	return &cst.AwaitExpr{Await: await, X: x}, nil
}

// ParsePower parses "x ** y"; the exponent binds a unary operand, so the operator is right-associative.
func (p *Parser) ParsePower() (cst.Expr, error) {
	x, err := p.ParseAwait()
	if err != nil {
		return nil, err
	}
	if !p.at(token.DoubleStar) {
		return x, nil
	}
	op := p.advance()
	// a ** b ** c уходит в рекурсию через показатель
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()
	y, err := p.ParseUnary()
	if err != nil {
		return nil, err
	}
	return &cst.BinaryExpr{X: x, Op: op, Y: y}, nil
}
