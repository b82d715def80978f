package parser

import (
	"pycst/internal/cst"
	"pycst/internal/diag"
	"pycst/internal/token"
)

// parseMaybeMatch decides whether a leading "match" name starts a match statement.
// Most kinds after "match" settle it on their own. "match(" and "match[" are parsed
// as an expression first and converted when they end in ':' NEWLINE. After an
// operator that is also a prefix ("match -x:" against "match - x") the subject is
// tried first and the line is re-read as a simple statement if no ':' follows.
func (p *Parser) parseMaybeMatch() (cst.Stmt, error) {
	switch p.lx.Peek2().Kind {
	case token.Minus, token.Plus, token.Star, token.KwNot:
		var (
			match   token.Token
			subject cst.Expr
		)
		ok, err := p.speculate(func() error {
			match = p.advance()
			var err error
			if subject, err = p.parseSubject(); err != nil {
				return err
			}
			if !p.at(token.Colon) {
				return p.unexpected(diag.SynExpectColon, "expected ':'")
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		if ok {
			return p.parseMatchBody(match, subject)
		}
		return p.parseSimpleStatements()
	case token.Name, token.Number, token.String, token.KwNone, token.KwTrue, token.KwFalse,
		token.LBrace, token.Tilde, token.KwAwait, token.KwLambda, token.Ellipsis:
		match := p.advance()
		subject, err := p.parseSubject()
		if err != nil {
			return nil, err
		}
		return p.parseMatchBody(match, subject)
	case token.LParen, token.LBracket:
		x, err := p.ParseStarExpressions()
		if err != nil {
			return nil, err
		}
		if p.at(token.Colon) && p.lx.Peek2().Kind == token.Newline {
			if match, subject, ok := matchSubjectOf(x); ok {
				return p.parseMatchBody(match, subject)
			}
		}
		stmt, err := p.parseExprStatement(x)
		if err != nil {
			return nil, err
		}
		return p.finishSimpleStatements(stmt)
	}
	return p.parseSimpleStatements()
}

// matchSubjectOf turns match(a, b) or match[a] back into the keyword and its subject.
func matchSubjectOf(x cst.Expr) (token.Token, cst.Expr, bool) {
	prim, ok := x.(*cst.Primary)
	if !ok || len(prim.Trailers) != 1 {
		return token.Token{}, nil, false
	}
	name, ok := prim.Atom.(*cst.Name)
	if !ok {
		return token.Token{}, nil, false
	}
	switch t := prim.Trailers[0].(type) {
	case *cst.Call:
		elts := make([]cst.Expr, 0, len(t.Args))
		for _, arg := range t.Args {
			switch {
			case arg.Name != nil:
				return token.Token{}, nil, false
			case arg.Star != nil:
				if arg.Star.Kind != token.Star {
					return token.Token{}, nil, false
				}
				elts = append(elts, &cst.Starred{Star: *arg.Star, X: arg.Value})
			default:
				elts = append(elts, arg.Value)
			}
		}
		if len(elts) == 1 && len(t.Commas) == 0 {
			if gen, ok := elts[0].(*cst.GeneratorExp); ok && gen.LParen == nil {
				gen.LParen, gen.RParen = &t.LParen, &t.RParen
				return name.Tok, gen, true
			}
			if _, ok := elts[0].(*cst.Starred); !ok {
				return name.Tok, &cst.Paren{LParen: t.LParen, X: elts[0], RParen: t.RParen}, true
			}
		}
		return name.Tok, &cst.Tuple{LParen: &t.LParen, Elts: elts, Commas: t.Commas, RParen: &t.RParen}, true
	case *cst.Subscript:
		list := &cst.List{LBracket: t.LBracket, RBracket: t.RBracket}
		switch idx := t.Index.(type) {
		case *cst.Slice:
			return token.Token{}, nil, false
		case *cst.Slices:
			for _, elt := range idx.Elts {
				if _, ok := elt.(*cst.Slice); ok {
					return token.Token{}, nil, false
				}
			}
			list.Elts, list.Commas = idx.Elts, idx.Commas
		default:
			list.Elts = []cst.Expr{idx}
		}
		return name.Tok, list, true
	}
	return token.Token{}, nil, false
}

// finishSimpleStatements continues a logical line whose first statement is already parsed.
func (p *Parser) finishSimpleStatements(first cst.Stmt) (*cst.SimpleStatements, error) {
	ss := &cst.SimpleStatements{Stmts: []cst.Stmt{first}}
	for p.at(token.Semicolon) {
		ss.Semicolons = append(ss.Semicolons, p.advance())
		if p.at(token.Newline) {
			break
		}
		stmt, err := p.parseSimpleStatement()
		if err != nil {
			return nil, err
		}
		ss.Stmts = append(ss.Stmts, stmt)
	}
	var err error
	if ss.Newline, err = p.expect(token.Newline, diag.SynExpectNewline); err != nil {
		return nil, err
	}
	return ss, nil
}

// parseSubject: star_named_expression (',' star_named_expression)* [',']
func (p *Parser) parseSubject() (cst.Expr, error) {
	return p.parseExprList(p.parseStarNamedExpression)
}

func (p *Parser) parseMatchBody(match token.Token, subject cst.Expr) (*cst.Match, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	m := &cst.Match{Match: match, Subject: subject}
	var err error
	if m.Colon, err = p.expect(token.Colon, diag.SynExpectColon); err != nil {
		return nil, err
	}
	if m.Newline, err = p.expect(token.Newline, diag.SynExpectNewline); err != nil {
		return nil, err
	}
	if m.Indent, err = p.expect(token.Indent, diag.SynExpectIndent); err != nil {
		return nil, err
	}
	for p.atSoft(token.SoftCase) {
		c, err := p.parseCase()
		if err != nil {
			return nil, err
		}
		m.Cases = append(m.Cases, c)
	}
	if len(m.Cases) == 0 {
		return nil, p.unexpected(diag.SynExpectPattern, "expected 'case' block")
	}
	if m.Dedent, err = p.expect(token.Dedent, diag.SynExpectDedent); err != nil {
		return nil, err
	}
	return m, nil
}

// case pattern [if guard]: body
func (p *Parser) parseCase() (*cst.MatchCase, error) {
	c := &cst.MatchCase{Case: p.advance()}
	var err error
	if c.Pattern, err = p.parseCasePattern(); err != nil {
		return nil, err
	}
	if p.at(token.KwIf) {
		c.If = p.advancePtr()
		if c.Guard, err = p.ParseNamedExpression(); err != nil {
			return nil, err
		}
	}
	if c.Colon, c.Body, err = p.parseClauseHead(); err != nil {
		return nil, err
	}
	return c, nil
}
