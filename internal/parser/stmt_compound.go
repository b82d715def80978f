package parser

import (
	"pycst/internal/cst"
	"pycst/internal/diag"
	"pycst/internal/token"
)

func (p *Parser) parseIf() (*cst.If, error) {
	s := &cst.If{If: p.advance()}
	var err error
	if s.Test, err = p.ParseNamedExpression(); err != nil {
		return nil, err
	}
	if s.Colon, s.Body, err = p.parseClauseHead(); err != nil {
		return nil, err
	}
	for p.at(token.KwElif) {
		elif := &cst.Elif{Elif: p.advance()}
		if elif.Test, err = p.ParseNamedExpression(); err != nil {
			return nil, err
		}
		if elif.Colon, elif.Body, err = p.parseClauseHead(); err != nil {
			return nil, err
		}
		s.Elifs = append(s.Elifs, elif)
	}
	if s.Else, err = p.parseElse(); err != nil {
		return nil, err
	}
	return s, nil
}

// parseElse parses an optional "else: suite"; nil when absent.
func (p *Parser) parseElse() (*cst.ElseClause, error) {
	if !p.at(token.KwElse) {
		return nil, nil
	}
	e := &cst.ElseClause{Else: p.advance()}
	var err error
	if e.Colon, e.Body, err = p.parseClauseHead(); err != nil {
		return nil, err
	}
	return e, nil
}

func (p *Parser) parseWhile() (*cst.While, error) {
	s := &cst.While{While: p.advance()}
	var err error
	if s.Test, err = p.ParseNamedExpression(); err != nil {
		return nil, err
	}
	if s.Colon, s.Body, err = p.parseClauseHead(); err != nil {
		return nil, err
	}
	if s.Else, err = p.parseElse(); err != nil {
		return nil, err
	}
	return s, nil
}

func (p *Parser) parseFor(async *token.Token) (*cst.For, error) {
	s := &cst.For{Async: async, For: p.advance()}
	var err error
	if s.Target, err = p.parseTargetList(); err != nil {
		return nil, err
	}
	if err = p.checkTarget(s.Target, true); err != nil {
		return nil, err
	}
	if s.In, err = p.expect(token.KwIn, diag.SynExpectIn); err != nil {
		return nil, err
	}
	if s.Iter, err = p.ParseStarExpressions(); err != nil {
		return nil, err
	}
	if s.Colon, s.Body, err = p.parseClauseHead(); err != nil {
		return nil, err
	}
	if s.Else, err = p.parseElse(); err != nil {
		return nil, err
	}
	return s, nil
}

// parseWith handles both "with a as b, c:" and the parenthesized "with (a as b, c,):".
// A leading '(' that turns out to be part of the first context expression is
// reinterpreted as a parenthesized atom followed by its trailers.
func (p *Parser) parseWith(async *token.Token) (*cst.With, error) {
	s := &cst.With{Async: async, With: p.advance()}
	var err error
	if p.at(token.LParen) {
		if err = p.parseWithGroup(s); err != nil {
			return nil, err
		}
		if s.LParen == nil {
			if err = p.parseWithItemsTail(s); err != nil {
				return nil, err
			}
		}
	} else {
		item, err := p.parseWithItem()
		if err != nil {
			return nil, err
		}
		s.Items = append(s.Items, item)
		if err = p.parseWithItemsTail(s); err != nil {
			return nil, err
		}
	}
	if s.Colon, s.Body, err = p.parseClauseHead(); err != nil {
		return nil, err
	}
	return s, nil
}

func (p *Parser) parseWithItemsTail(s *cst.With) error {
	for p.at(token.Comma) {
		s.Commas = append(s.Commas, p.advance())
		item, err := p.parseWithItem()
		if err != nil {
			return err
		}
		s.Items = append(s.Items, item)
	}
	return nil
}

func (p *Parser) parseWithGroup(s *cst.With) error {
	if err := p.enter(); err != nil {
		return err
	}
	defer p.leave()

	lp := p.advance()
	var (
		items  []*cst.WithItem
		commas []token.Token
		hasAs  bool
	)
	for !p.at(token.RParen) {
		item, err := p.parseWithItem()
		if err != nil {
			return err
		}
		hasAs = hasAs || item.As != nil
		items = append(items, item)
		if !p.at(token.Comma) {
			break
		}
		commas = append(commas, p.advance())
	}
	rp, err := p.expect(token.RParen, diag.SynExpectRParen)
	if err != nil {
		return err
	}
	if p.at(token.Colon) && len(items) > 0 {
		s.LParen, s.Items, s.Commas, s.RParen = &lp, items, commas, &rp
		return nil
	}
	if hasAs {
		return p.unexpected(diag.SynExpectColon, "expected ':'")
	}

	// (a, b).method() as c:
	var atom cst.Expr
	if len(items) == 1 && len(commas) == 0 {
		atom = &cst.Paren{LParen: lp, X: items[0].Context, RParen: rp}
	} else {
		elts := make([]cst.Expr, len(items))
		for i, item := range items {
			elts[i] = item.Context
		}
		atom = &cst.Tuple{LParen: &lp, Elts: elts, Commas: commas, RParen: &rp}
	}
	ctx, err := p.parseTrailers(atom)
	if err != nil {
		return err
	}
	item := &cst.WithItem{Context: ctx}
	if err := p.parseWithAs(item); err != nil {
		return err
	}
	s.Items = append(s.Items, item)
	return nil
}

func (p *Parser) parseWithItem() (*cst.WithItem, error) {
	ctx, err := p.ParseTest()
	if err != nil {
		return nil, err
	}
	item := &cst.WithItem{Context: ctx}
	if err := p.parseWithAs(item); err != nil {
		return nil, err
	}
	return item, nil
}

func (p *Parser) parseWithAs(item *cst.WithItem) error {
	if !p.at(token.KwAs) {
		return nil
	}
	item.As = p.advancePtr()
	target, err := p.ParseBitOr()
	if err != nil {
		return err
	}
	if err := p.checkTarget(target, true); err != nil {
		return err
	}
	item.Target = target
	return nil
}

// try: handlers are all "except" or all "except*"; at least one handler or a finally.
func (p *Parser) parseTry() (*cst.Try, error) {
	s := &cst.Try{Try: p.advance()}
	var err error
	if s.Colon, s.Body, err = p.parseClauseHead(); err != nil {
		return nil, err
	}
	for p.at(token.KwExcept) {
		h, err := p.parseExceptHandler()
		if err != nil {
			return nil, err
		}
		if len(s.Handlers) > 0 && (h.Star == nil) != (s.Handlers[0].Star == nil) {
			return nil, p.errorAt(diag.SynMixedExcept, h.Except.Span, "cannot mix 'except' and 'except*'")
		}
		s.Handlers = append(s.Handlers, h)
	}
	if len(s.Handlers) > 0 {
		if s.Else, err = p.parseElse(); err != nil {
			return nil, err
		}
	}
	if p.at(token.KwFinally) {
		f := &cst.FinallyClause{Finally: p.advance()}
		if f.Colon, f.Body, err = p.parseClauseHead(); err != nil {
			return nil, err
		}
		s.Finally = f
	}
	if len(s.Handlers) == 0 && s.Finally == nil {
		return nil, p.unexpected(diag.SynExpectExcept, "expected 'except' or 'finally' block")
	}
	return s, nil
}

func (p *Parser) parseExceptHandler() (*cst.ExceptHandler, error) {
	h := &cst.ExceptHandler{Except: p.advance(), Star: p.eat(token.Star)}
	var err error
	if !p.at(token.Colon) {
		if h.Type, err = p.ParseTest(); err != nil {
			return nil, err
		}
		if p.at(token.KwAs) {
			h.As = p.advancePtr()
			name, err := p.expectName()
			if err != nil {
				return nil, err
			}
			h.Name = &name
		}
	} else if h.Star != nil {
		return nil, p.unexpected(diag.SynExpectExpression, "expected exception type after 'except*'")
	}
	if h.Colon, h.Body, err = p.parseClauseHead(); err != nil {
		return nil, err
	}
	return h, nil
}

// parseDecorated parses "@expr NEWLINE" lines followed by a def or class.
func (p *Parser) parseDecorated() (cst.Stmt, error) {
	var decorators []*cst.Decorator
	for p.at(token.At) {
		d := &cst.Decorator{At: p.advance()}
		var err error
		if d.X, err = p.ParseNamedExpression(); err != nil {
			return nil, err
		}
		if d.Newline, err = p.expect(token.Newline, diag.SynExpectNewline); err != nil {
			return nil, err
		}
		decorators = append(decorators, d)
	}
	switch p.lx.Peek().Kind {
	case token.KwDef:
		return p.parseFunctionDef(decorators, nil)
	case token.KwClass:
		return p.parseClassDef(decorators)
	case token.KwAsync:
		return p.parseAsync(decorators)
	}
	return nil, p.unexpected(diag.SynUnexpectedToken, "expected function or class definition after decorator")
}

// [async] def name[T](params) [-> returns]: body
func (p *Parser) parseFunctionDef(decorators []*cst.Decorator, async *token.Token) (*cst.FunctionDef, error) {
	fn := &cst.FunctionDef{Decorators: decorators, Async: async, Def: p.advance()}
	var err error
	if fn.Name, err = p.expectName(); err != nil {
		return nil, err
	}
	if p.at(token.LBracket) {
		if fn.TypeParams, err = p.parseTypeParams(); err != nil {
			return nil, err
		}
	}
	if fn.LParen, err = p.expect(token.LParen, diag.SynUnexpectedToken); err != nil {
		return nil, err
	}
	if !p.at(token.RParen) {
		if fn.Params, err = p.parseParameters(token.RParen, true); err != nil {
			return nil, err
		}
	}
	if fn.RParen, err = p.expect(token.RParen, diag.SynExpectRParen); err != nil {
		return nil, err
	}
	if p.at(token.Arrow) {
		fn.Arrow = p.advancePtr()
		if fn.Returns, err = p.ParseTest(); err != nil {
			return nil, err
		}
	}
	if fn.Colon, fn.Body, err = p.parseClauseHead(); err != nil {
		return nil, err
	}
	return fn, nil
}

// class Name[T](bases, key=value): body
func (p *Parser) parseClassDef(decorators []*cst.Decorator) (*cst.ClassDef, error) {
	c := &cst.ClassDef{Decorators: decorators, Class: p.advance()}
	var err error
	if c.Name, err = p.expectName(); err != nil {
		return nil, err
	}
	if p.at(token.LBracket) {
		if c.TypeParams, err = p.parseTypeParams(); err != nil {
			return nil, err
		}
	}
	if p.at(token.LParen) {
		c.LParen = p.advancePtr()
		if c.Args, c.Commas, err = p.parseArgs(); err != nil {
			return nil, err
		}
		rp, err := p.expect(token.RParen, diag.SynExpectRParen)
		if err != nil {
			return nil, err
		}
		c.RParen = &rp
	}
	if c.Colon, c.Body, err = p.parseClauseHead(); err != nil {
		return nil, err
	}
	return c, nil
}
