package parser

import (
	"pycst/internal/cst"
	"pycst/internal/diag"
	"pycst/internal/token"
)

// ParseStatement parses one compound statement or one logical line of simple statements.
func (p *Parser) ParseStatement() (cst.Stmt, error) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.Indent:
		return nil, p.errorAt(diag.SynUnexpectedIndent, tok.Span, "unexpected indent")
	case token.KwIf:
		return p.parseIf()
	case token.KwWhile:
		return p.parseWhile()
	case token.KwFor:
		return p.parseFor(nil)
	case token.KwTry:
		return p.parseTry()
	case token.KwWith:
		return p.parseWith(nil)
	case token.KwDef:
		return p.parseFunctionDef(nil, nil)
	case token.KwClass:
		return p.parseClassDef(nil)
	case token.At:
		return p.parseDecorated()
	case token.KwAsync:
		return p.parseAsync(nil)
	case token.Name:
		if tok.IsSoft(token.SoftMatch) {
			return p.parseMaybeMatch()
		}
	}
	return p.parseSimpleStatements()
}

func (p *Parser) parseAsync(decorators []*cst.Decorator) (cst.Stmt, error) {
	switch p.lx.Peek2().Kind {
	case token.KwDef:
		return p.parseFunctionDef(decorators, p.advancePtr())
	case token.KwFor:
		if decorators == nil {
			return p.parseFor(p.advancePtr())
		}
	case token.KwWith:
		if decorators == nil {
			return p.parseWith(p.advancePtr())
		}
	}
	p.advance()
	if decorators != nil {
		return nil, p.unexpected(diag.SynUnexpectedToken, "expected 'def' after 'async'")
	}
	return nil, p.unexpected(diag.SynUnexpectedToken, "expected 'def', 'for' or 'with' after 'async'")
}

// parseSimpleStatements: stmt (';' stmt)* [';'] NEWLINE
func (p *Parser) parseSimpleStatements() (*cst.SimpleStatements, error) {
	ss := &cst.SimpleStatements{}
	for {
		stmt, err := p.parseSimpleStatement()
		if err != nil {
			return nil, err
		}
		ss.Stmts = append(ss.Stmts, stmt)
		if !p.at(token.Semicolon) {
			break
		}
		ss.Semicolons = append(ss.Semicolons, p.advance())
		if p.at(token.Newline) {
			break
		}
	}
	var err error
	if ss.Newline, err = p.expect(token.Newline, diag.SynExpectNewline); err != nil {
		return nil, err
	}
	return ss, nil
}

func (p *Parser) parseSimpleStatement() (cst.Stmt, error) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.KwPass:
		return &cst.Pass{Tok: p.advance()}, nil
	case token.KwBreak:
		return &cst.Break{Tok: p.advance()}, nil
	case token.KwContinue:
		return &cst.Continue{Tok: p.advance()}, nil
	case token.KwReturn:
		return p.parseReturn()
	case token.KwRaise:
		return p.parseRaise()
	case token.KwGlobal:
		return p.parseGlobal()
	case token.KwNonlocal:
		return p.parseNonlocal()
	case token.KwAssert:
		return p.parseAssert()
	case token.KwDel:
		return p.parseDel()
	case token.KwImport:
		return p.parseImport()
	case token.KwFrom:
		return p.parseImportFrom()
	case token.Name:
		if tok.IsSoft(token.SoftType) && p.lx.Peek2().Kind == token.Name {
			return p.parseTypeAlias()
		}
	}
	if !p.canStartExpr() && !p.at(token.KwYield) {
		return nil, p.unexpected(diag.SynExpectStatement, "expected statement")
	}
	first, err := p.parseExprOrYield()
	if err != nil {
		return nil, err
	}
	return p.parseExprStatement(first)
}

func (p *Parser) parseExprOrYield() (cst.Expr, error) {
	if p.at(token.KwYield) {
		return p.parseYieldExpr()
	}
	return p.ParseStarExpressions()
}

// parseExprStatement finishes an expression, assignment, augmented or annotated assignment
// whose leading expression has been parsed.
func (p *Parser) parseExprStatement(first cst.Expr) (cst.Stmt, error) {
	switch k := p.lx.Peek().Kind; {
	case k == token.Assign:
		if err := p.checkTarget(first, true); err != nil {
			return nil, err
		}
		as := &cst.Assign{Targets: []cst.Expr{first}}
		for {
			as.Assigns = append(as.Assigns, p.advance())
			value, err := p.parseExprOrYield()
			if err != nil {
				return nil, err
			}
			if !p.at(token.Assign) {
				as.Value = value
				return as, nil
			}
			if err := p.checkTarget(value, true); err != nil {
				return nil, err
			}
			as.Targets = append(as.Targets, value)
		}

	case k == token.Colon:
		if err := p.checkSingleTarget(first); err != nil {
			return nil, err
		}
		ann := &cst.AnnAssign{Target: first, Colon: p.advance()}
		annotation, err := p.ParseTest()
		if err != nil {
			return nil, err
		}
		ann.Annotation = annotation
		if p.at(token.Assign) {
			ann.Assign = p.advancePtr()
			value, err := p.parseExprOrYield()
			if err != nil {
				return nil, err
			}
			ann.Value = value
		}
		return ann, nil

	case k.IsAugAssign():
		if err := p.checkSingleTarget(first); err != nil {
			return nil, err
		}
		aug := &cst.AugAssign{Target: first, Op: p.advance()}
		value, err := p.parseExprOrYield()
		if err != nil {
			return nil, err
		}
		aug.Value = value
		return aug, nil
	}
	return &cst.ExprStmt{X: first}, nil
}

// checkTarget reports whether x may appear left of '='. Sequences and starred elements
// are allowed when multi is set.
func (p *Parser) checkTarget(x cst.Expr, multi bool) error {
	switch t := x.(type) {
	case *cst.Name:
		return nil
	case *cst.Primary:
		if isStoreTrailer(t) {
			return nil
		}
	case *cst.Paren:
		return p.checkTarget(t.X, multi)
	case *cst.Tuple:
		if multi {
			return p.checkTargets(t.Elts)
		}
	case *cst.List:
		if multi {
			return p.checkTargets(t.Elts)
		}
	}
	return p.errorAt(diag.SynInvalidTarget, x.Span(), "cannot assign to "+describeExpr(x))
}

func (p *Parser) checkTargets(elts []cst.Expr) error {
	for _, elt := range elts {
		if st, ok := elt.(*cst.Starred); ok {
			elt = st.X
		}
		if err := p.checkTarget(elt, true); err != nil {
			return err
		}
	}
	return nil
}

// checkSingleTarget is used by annotated and augmented assignments: a name, attribute or subscript.
func (p *Parser) checkSingleTarget(x cst.Expr) error {
	if paren, ok := x.(*cst.Paren); ok {
		x = paren.X
	}
	return p.checkTarget(x, false)
}

func isStoreTrailer(x *cst.Primary) bool {
	switch x.Trailers[len(x.Trailers)-1].(type) {
	case *cst.Attribute, *cst.Subscript:
		return true
	}
	return false
}

func describeExpr(x cst.Expr) string {
	switch x := x.(type) {
	case *cst.Number, *cst.StringLit, *cst.Constant:
		return "literal"
	case *cst.Primary:
		if _, ok := x.Trailers[len(x.Trailers)-1].(*cst.Call); ok {
			return "function call"
		}
	case *cst.Starred:
		return "starred expression here"
	case *cst.Lambda:
		return "lambda"
	case *cst.Compare:
		return "comparison"
	case *cst.YieldExpr:
		return "yield expression"
	case *cst.NamedExpr:
		return "named expression"
	case *cst.ListComp, *cst.SetComp, *cst.DictComp, *cst.GeneratorExp:
		return "comprehension"
	}
	return "expression"
}

// parseSuite parses the body after a clause colon: an indented block or a simple line.
func (p *Parser) parseSuite() (cst.Suite, error) {
	if !p.at(token.Newline) {
		return p.parseSimpleStatements()
	}
	return p.parseBlock()
}

func (p *Parser) parseBlock() (*cst.Block, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	b := &cst.Block{Newline: p.advance()}
	var err error
	if b.Indent, err = p.expect(token.Indent, diag.SynExpectIndent); err != nil {
		return nil, err
	}
	if b.Body, err = p.ParseStatements(); err != nil {
		return nil, err
	}
	if b.Dedent, err = p.expect(token.Dedent, diag.SynExpectDedent); err != nil {
		return nil, err
	}
	return b, nil
}

// parseClauseHead parses "':' suite" shared by every clause.
func (p *Parser) parseClauseHead() (token.Token, cst.Suite, error) {
	colon, err := p.expect(token.Colon, diag.SynExpectColon)
	if err != nil {
		return token.Token{}, nil, err
	}
	body, err := p.parseSuite()
	if err != nil {
		return token.Token{}, nil, err
	}
	return colon, body, nil
}
