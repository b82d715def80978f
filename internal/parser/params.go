package parser

import (
	"pycst/internal/cst"
	"pycst/internal/diag"
	"pycst/internal/token"
)

// parseParameters parses a def or lambda parameter list up to closer, which is left unconsumed.
// Annotations are only allowed in def.
func (p *Parser) parseParameters(closer token.Kind, annotations bool) (*cst.Parameters, error) {
	params := &cst.Parameters{}
	for !p.at(closer) {
		param, err := p.parseParam(closer, annotations)
		if err != nil {
			return nil, err
		}
		params.Items = append(params.Items, param)
		if !p.at(token.Comma) {
			break
		}
		params.Commas = append(params.Commas, p.advance())
	}
	return params, nil
}

func (p *Parser) parseParam(closer token.Kind, annotations bool) (*cst.Param, error) {
	param := &cst.Param{}
	switch p.lx.Peek().Kind {
	case token.Slash:
		param.Prefix = p.advancePtr()
		return param, nil
	case token.Star:
		param.Prefix = p.advancePtr()
		if p.atAny(token.Comma, closer) {
			return param, nil
		}
	case token.DoubleStar:
		param.Prefix = p.advancePtr()
	}
	if !p.at(token.Name) {
		return nil, p.unexpected(diag.SynBadParameters, "expected parameter name")
	}
	param.Name = p.advancePtr()

	if annotations && p.at(token.Colon) {
		param.Colon = p.advancePtr()
		var (
			ann cst.Expr
			err error
		)
		// *args: *Ts
		if param.Prefix != nil && param.Prefix.Kind == token.Star && p.at(token.Star) {
			ann, err = p.parseStarred()
		} else {
			ann, err = p.ParseTest()
		}
		if err != nil {
			return nil, err
		}
		param.Annotation = ann
	}
	if p.at(token.Assign) {
		if param.Prefix != nil {
			return nil, p.unexpected(diag.SynBadParameters, "variadic parameter cannot have a default")
		}
		param.Assign = p.advancePtr()
		def, err := p.ParseTest()
		if err != nil {
			return nil, err
		}
		param.Default = def
	}
	return param, nil
}

// parseTypeParams: '[' T, *Ts, **P, T: bound = default ']'
func (p *Parser) parseTypeParams() (*cst.TypeParams, error) {
	tp := &cst.TypeParams{LBracket: p.advance()}
	for !p.at(token.RBracket) {
		param, err := p.parseTypeParam()
		if err != nil {
			return nil, err
		}
		tp.Params = append(tp.Params, param)
		if !p.at(token.Comma) {
			break
		}
		tp.Commas = append(tp.Commas, p.advance())
	}
	if len(tp.Params) == 0 {
		return nil, p.unexpected(diag.SynExpectIdentifier, "expected type parameter")
	}
	var err error
	if tp.RBracket, err = p.expect(token.RBracket, diag.SynExpectRBracket); err != nil {
		return nil, err
	}
	return tp, nil
}

func (p *Parser) parseTypeParam() (*cst.TypeParam, error) {
	param := &cst.TypeParam{Star: p.eat(token.Star)}
	if param.Star == nil {
		param.Star = p.eat(token.DoubleStar)
	}
	name, err := p.expectName()
	if err != nil {
		return nil, err
	}
	param.Name = name
	if p.at(token.Colon) {
		if param.Star != nil {
			return nil, p.unexpected(diag.SynUnexpectedToken, "variadic type parameter cannot have a bound")
		}
		param.Colon = p.advancePtr()
		bound, err := p.ParseTest()
		if err != nil {
			return nil, err
		}
		param.Bound = bound
	}
	if p.at(token.Assign) {
		param.Assign = p.advancePtr()
		var def cst.Expr
		if p.at(token.Star) {
			def, err = p.parseStarred()
		} else {
			def, err = p.ParseTest()
		}
		if err != nil {
			return nil, err
		}
		param.Default = def
	}
	return param, nil
}
