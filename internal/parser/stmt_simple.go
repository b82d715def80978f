package parser

import (
	"pycst/internal/cst"
	"pycst/internal/diag"
	"pycst/internal/token"
)

func (p *Parser) parseReturn() (*cst.Return, error) {
	ret := &cst.Return{Return: p.advance()}
	if p.canStartExpr() {
		value, err := p.ParseStarExpressions()
		if err != nil {
			return nil, err
		}
		ret.Value = value
	}
	return ret, nil
}

// raise [exc [from cause]]
func (p *Parser) parseRaise() (*cst.Raise, error) {
	r := &cst.Raise{Raise: p.advance()}
	if !p.canStartExpr() {
		return r, nil
	}
	exc, err := p.ParseTest()
	if err != nil {
		return nil, err
	}
	r.Exc = exc
	if p.at(token.KwFrom) {
		r.From = p.advancePtr()
		cause, err := p.ParseTest()
		if err != nil {
			return nil, err
		}
		r.Cause = cause
	}
	return r, nil
}

func (p *Parser) parseNameList() ([]token.Token, []token.Token, error) {
	var names, commas []token.Token
	for {
		name, err := p.expectName()
		if err != nil {
			return nil, nil, err
		}
		names = append(names, name)
		if !p.at(token.Comma) {
			return names, commas, nil
		}
		commas = append(commas, p.advance())
	}
}

func (p *Parser) parseGlobal() (*cst.Global, error) {
	g := &cst.Global{Global: p.advance()}
	var err error
	if g.Names, g.Commas, err = p.parseNameList(); err != nil {
		return nil, err
	}
	return g, nil
}

func (p *Parser) parseNonlocal() (*cst.Nonlocal, error) {
	n := &cst.Nonlocal{Nonlocal: p.advance()}
	var err error
	if n.Names, n.Commas, err = p.parseNameList(); err != nil {
		return nil, err
	}
	return n, nil
}

// assert test [, msg]
func (p *Parser) parseAssert() (*cst.Assert, error) {
	a := &cst.Assert{Assert: p.advance()}
	test, err := p.ParseTest()
	if err != nil {
		return nil, err
	}
	a.Test = test
	if p.at(token.Comma) {
		a.Comma = p.advancePtr()
		msg, err := p.ParseTest()
		if err != nil {
			return nil, err
		}
		a.Msg = msg
	}
	return a, nil
}

func (p *Parser) parseDel() (*cst.Del, error) {
	d := &cst.Del{Del: p.advance()}
	targets, err := p.parseExprList(p.ParseBitOr)
	if err != nil {
		return nil, err
	}
	if err := p.checkTarget(targets, true); err != nil {
		return nil, err
	}
	d.Targets = targets
	return d, nil
}

// type Name[params] = value
func (p *Parser) parseTypeAlias() (*cst.TypeAlias, error) {
	ta := &cst.TypeAlias{Type: p.advance(), Name: p.advance()}
	if p.at(token.LBracket) {
		tp, err := p.parseTypeParams()
		if err != nil {
			return nil, err
		}
		ta.TypeParams = tp
	}
	var err error
	if ta.Assign, err = p.expect(token.Assign, diag.SynExpectAssign); err != nil {
		return nil, err
	}
	if ta.Value, err = p.ParseTest(); err != nil {
		return nil, err
	}
	return ta, nil
}
