package parser

import (
	"pycst/internal/cst"
	"pycst/internal/diag"
	"pycst/internal/token"
)

// ParseAtom parses a name, literal, or a parenthesized, list, set or dict display.
func (p *Parser) ParseAtom() (cst.Expr, error) {
	switch p.lx.Peek().Kind {
	case token.Name:
		return &cst.Name{Tok: p.advance()}, nil
	case token.Number:
		return &cst.Number{Tok: p.advance()}, nil
	case token.String:
		return p.parseStrings(), nil
	case token.KwNone, token.KwTrue, token.KwFalse, token.Ellipsis:
		return &cst.Constant{Tok: p.advance()}, nil
	case token.LParen:
		return p.nested(p.parseParenAtom)
	case token.LBracket:
		return p.nested(p.parseListAtom)
	case token.LBrace:
		return p.nested(p.parseBraceAtom)
	}
	return nil, p.unexpected(diag.SynExpectExpression, "expected expression")
}

// nested runs parse one nesting level deeper.
func (p *Parser) nested(parse func() (cst.Expr, error)) (cst.Expr, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()
	return parse()
}

// parseStrings склеивает подряд идущие строковые литералы в один узел.
func (p *Parser) parseStrings() *cst.StringLit {
	lit := &cst.StringLit{}
	for p.at(token.String) {
		lit.Parts = append(lit.Parts, p.advance())
	}
	return lit
}

// ( ) | ( yield ) | ( expr ) | ( expr, ... ) | ( expr for ... )
func (p *Parser) parseParenAtom() (cst.Expr, error) {
	lp := p.advance()
	if p.at(token.RParen) {
		rp := p.advance()
		return &cst.Tuple{LParen: &lp, RParen: &rp}, nil
	}
	if p.at(token.KwYield) {
		y, err := p.parseYieldExpr()
		if err != nil {
			return nil, err
		}
		rp, err := p.expect(token.RParen, diag.SynExpectRParen)
		if err != nil {
			return nil, err
		}
		return &cst.Paren{LParen: lp, X: y, RParen: rp}, nil
	}

	first, err := p.parseStarNamedExpression()
	if err != nil {
		return nil, err
	}
	if p.atCompFor() {
		clauses, err := p.parseCompClauses()
		if err != nil {
			return nil, err
		}
		rp, err := p.expect(token.RParen, diag.SynExpectRParen)
		if err != nil {
			return nil, err
		}
		return &cst.GeneratorExp{LParen: &lp, Elt: first, Clauses: clauses, RParen: &rp}, nil
	}
	if !p.at(token.Comma) {
		rp, err := p.expect(token.RParen, diag.SynExpectRParen)
		if err != nil {
			return nil, err
		}
		return &cst.Paren{LParen: lp, X: first, RParen: rp}, nil
	}

	elts, commas, err := p.parseExprListTail(first, token.RParen)
	if err != nil {
		return nil, err
	}
	rp, err := p.expect(token.RParen, diag.SynExpectRParen)
	if err != nil {
		return nil, err
	}
	return &cst.Tuple{LParen: &lp, Elts: elts, Commas: commas, RParen: &rp}, nil
}

// [ ] | [ expr, ... ] | [ expr for ... ]
func (p *Parser) parseListAtom() (cst.Expr, error) {
	lb := p.advance()
	if p.at(token.RBracket) {
		return &cst.List{LBracket: lb, RBracket: p.advance()}, nil
	}
	first, err := p.parseStarNamedExpression()
	if err != nil {
		return nil, err
	}
	if p.atCompFor() {
		clauses, err := p.parseCompClauses()
		if err != nil {
			return nil, err
		}
		rb, err := p.expect(token.RBracket, diag.SynExpectRBracket)
		if err != nil {
			return nil, err
		}
		return &cst.ListComp{LBracket: lb, Elt: first, Clauses: clauses, RBracket: rb}, nil
	}
	elts, commas, err := p.parseExprListTail(first, token.RBracket)
	if err != nil {
		return nil, err
	}
	rb, err := p.expect(token.RBracket, diag.SynExpectRBracket)
	if err != nil {
		return nil, err
	}
	return &cst.List{LBracket: lb, Elts: elts, Commas: commas, RBracket: rb}, nil
}

// { } | { k: v, **m } | { k: v for ... } | { x, y } | { x for ... }
func (p *Parser) parseBraceAtom() (cst.Expr, error) {
	lb := p.advance()
	if p.at(token.RBrace) {
		return &cst.Dict{LBrace: lb, RBrace: p.advance()}, nil
	}

	var first *cst.DictItem
	if p.at(token.DoubleStar) {
		star := p.advancePtr()
		value, err := p.ParseBitOr()
		if err != nil {
			return nil, err
		}
		first = &cst.DictItem{Unpack: star, Value: value}
	} else {
		x, err := p.parseStarNamedExpression()
		if err != nil {
			return nil, err
		}
		if !p.at(token.Colon) {
			return p.parseSetTail(lb, x)
		}
		colon := p.advancePtr()
		value, err := p.ParseTest()
		if err != nil {
			return nil, err
		}
		if p.atCompFor() {
			clauses, err := p.parseCompClauses()
			if err != nil {
				return nil, err
			}
			rb, err := p.expect(token.RBrace, diag.SynExpectRBrace)
			if err != nil {
				return nil, err
			}
			return &cst.DictComp{LBrace: lb, Key: x, Colon: *colon, Value: value, Clauses: clauses, RBrace: rb}, nil
		}
		first = &cst.DictItem{Key: x, Colon: colon, Value: value}
	}

	dict := &cst.Dict{LBrace: lb, Items: []*cst.DictItem{first}}
	for p.at(token.Comma) {
		dict.Commas = append(dict.Commas, p.advance())
		if p.at(token.RBrace) {
			break
		}
		item, err := p.parseDictItem()
		if err != nil {
			return nil, err
		}
		dict.Items = append(dict.Items, item)
	}
	rb, err := p.expect(token.RBrace, diag.SynExpectRBrace)
	if err != nil {
		return nil, err
	}
	dict.RBrace = rb
	return dict, nil
}

func (p *Parser) parseDictItem() (*cst.DictItem, error) {
	if p.at(token.DoubleStar) {
		star := p.advancePtr()
		value, err := p.ParseBitOr()
		if err != nil {
			return nil, err
		}
		return &cst.DictItem{Unpack: star, Value: value}, nil
	}
	key, err := p.ParseTest()
	if err != nil {
		return nil, err
	}
	if !p.at(token.Colon) {
		return nil, p.unexpected(diag.SynExpectColon, "expected ':' in dict display")
	}
	colon := p.advancePtr()
	value, err := p.ParseTest()
	if err != nil {
		return nil, err
	}
	return &cst.DictItem{Key: key, Colon: colon, Value: value}, nil
}

func (p *Parser) parseSetTail(lb token.Token, first cst.Expr) (cst.Expr, error) {
	if p.atCompFor() {
		clauses, err := p.parseCompClauses()
		if err != nil {
			return nil, err
		}
		rb, err := p.expect(token.RBrace, diag.SynExpectRBrace)
		if err != nil {
			return nil, err
		}
		return &cst.SetComp{LBrace: lb, Elt: first, Clauses: clauses, RBrace: rb}, nil
	}
	elts, commas, err := p.parseExprListTail(first, token.RBrace)
	if err != nil {
		return nil, err
	}
	rb, err := p.expect(token.RBrace, diag.SynExpectRBrace)
	if err != nil {
		return nil, err
	}
	return &cst.Set{LBrace: lb, Elts: elts, Commas: commas, RBrace: rb}, nil
}

// parseExprListTail дочитывает ", expr" до закрывающей скобки; висячая запятая допустима.
func (p *Parser) parseExprListTail(first cst.Expr, closer token.Kind) ([]cst.Expr, []token.Token, error) {
	elts := []cst.Expr{first}
	var commas []token.Token
	for p.at(token.Comma) {
		commas = append(commas, p.advance())
		if p.at(closer) {
			break
		}
		x, err := p.parseStarNamedExpression()
		if err != nil {
			return nil, nil, err
		}
		elts = append(elts, x)
	}
	return elts, commas, nil
}

func (p *Parser) atCompFor() bool {
	return p.at(token.KwFor) || (p.at(token.KwAsync) && p.lx.Peek2().Kind == token.KwFor)
}

// parseCompClauses: ([async] for targets in disjunction (if disjunction)*)+
func (p *Parser) parseCompClauses() ([]*cst.CompFor, error) {
	var clauses []*cst.CompFor
	for p.atCompFor() {
		c := &cst.CompFor{Async: p.eat(token.KwAsync), For: p.advance()}
		target, err := p.parseTargetList()
		if err != nil {
			return nil, err
		}
		c.Target = target
		if c.In, err = p.expect(token.KwIn, diag.SynExpectIn); err != nil {
			return nil, err
		}
		if c.Iter, err = p.ParseOr(); err != nil {
			return nil, err
		}
		for p.at(token.KwIf) {
			ifTok := p.advance()
			cond, err := p.ParseOr()
			if err != nil {
				return nil, err
			}
			c.Ifs = append(c.Ifs, &cst.CompIf{If: ifTok, Cond: cond})
		}
		clauses = append(clauses, c)
	}
	return clauses, nil
}
