package parser

import (
	"pycst/internal/cst"
	"pycst/internal/diag"
	"pycst/internal/token"
)

// ParseUnary parses prefix +, - and ~.
func (p *Parser) ParseUnary() (cst.Expr, error) {
	if !p.atAny(token.Plus, token.Minus, token.Tilde) {
		return p.ParsePower()
	}
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	op := p.advance()
	x, err := p.ParseUnary()
	if err != nil {
		return nil, err
	}
	return &cst.UnaryExpr{Op: op, X: x}, nil
}

// parseBinary folds a left-associative level: next (op next)*.
func (p *Parser) parseBinary(next func() (cst.Expr, error), ops ...token.Kind) (cst.Expr, error) {
	x, err := next()
	if err != nil {
		return nil, err
	}
	for p.atAny(ops...) {
		op := p.advance()
		y, err := next()
		if err != nil {
			return nil, err
		}
		x = &cst.BinaryExpr{X: x, Op: op, Y: y}
	}
	return x, nil
}

func (p *Parser) ParseTerm() (cst.Expr, error) {
	return p.parseBinary(p.ParseUnary, token.Star, token.Slash, token.DoubleSlash, token.Percent, token.At)
}

func (p *Parser) ParseSum() (cst.Expr, error) {
	return p.parseBinary(p.ParseTerm, token.Plus, token.Minus)
}

func (p *Parser) ParseShift() (cst.Expr, error) {
	return p.parseBinary(p.ParseSum, token.Shl, token.Shr)
}

func (p *Parser) ParseBitAnd() (cst.Expr, error) {
	return p.parseBinary(p.ParseShift, token.Amp)
}

func (p *Parser) ParseBitXor() (cst.Expr, error) {
	return p.parseBinary(p.ParseBitAnd, token.Caret)
}

func (p *Parser) ParseBitOr() (cst.Expr, error) {
	return p.parseBinary(p.ParseBitXor, token.Pipe)
}

// ParseComparison parses a comparison chain. A single operand is returned as is.
func (p *Parser) ParseComparison() (cst.Expr, error) {
	left, err := p.ParseBitOr()
	if err != nil {
		return nil, err
	}
	var ops []*cst.CompareOp
	for {
		op, ok := p.compareOp()
		if !ok {
			break
		}
		right, err := p.ParseBitOr()
		if err != nil {
			return nil, err
		}
		op.Right = right
		ops = append(ops, op)
	}
	if len(ops) == 0 {
		return left, nil
	}
	return &cst.Compare{Left: left, Ops: ops}, nil
}

// compareOp съедает оператор сравнения, включая "not in" и "is not".
func (p *Parser) compareOp() (*cst.CompareOp, bool) {
	switch p.lx.Peek().Kind {
	case token.Lt, token.LtEq, token.Gt, token.GtEq, token.EqEq, token.NotEq, token.KwIn:
		return &cst.CompareOp{Op: p.advance()}, true
	case token.KwIs:
		return &cst.CompareOp{Op: p.advance(), Op2: p.eat(token.KwNot)}, true
	case token.KwNot:
		if p.lx.Peek2().Kind != token.KwIn {
			return nil, false
		}
		return &cst.CompareOp{Op: p.advance(), Op2: p.advancePtr()}, true
	}
	return nil, false
}

func (p *Parser) ParseNot() (cst.Expr, error) {
	if !p.at(token.KwNot) {
		return p.ParseComparison()
	}
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	not := p.advance()
	x, err := p.ParseNot()
	if err != nil {
		return nil, err
	}
	return &cst.NotExpr{Not: not, X: x}, nil
}

func (p *Parser) parseBool(next func() (cst.Expr, error), op token.Kind) (cst.Expr, error) {
	x, err := next()
	if err != nil {
		return nil, err
	}
	for p.at(op) {
		tok := p.advance()
		y, err := next()
		if err != nil {
			return nil, err
		}
		x = &cst.BoolExpr{X: x, Op: tok, Y: y}
	}
	return x, nil
}

func (p *Parser) ParseAnd() (cst.Expr, error) { return p.parseBool(p.ParseNot, token.KwAnd) }

func (p *Parser) ParseOr() (cst.Expr, error) { return p.parseBool(p.ParseAnd, token.KwOr) }

// ParseConditional parses "body if test else orelse".
func (p *Parser) ParseConditional() (cst.Expr, error) {
	body, err := p.ParseOr()
	if err != nil {
		return nil, err
	}
	if !p.at(token.KwIf) {
		return body, nil
	}
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	x := &cst.IfExpr{Body: body, If: p.advance()}
	if x.Test, err = p.ParseOr(); err != nil {
		return nil, err
	}
	if x.Else, err = p.expect(token.KwElse, diag.SynUnexpectedToken); err != nil {
		return nil, err
	}
	if x.OrElse, err = p.ParseTest(); err != nil {
		return nil, err
	}
	return x, nil
}

// ParseTest parses a full expression without walrus or starred forms: a lambda or a conditional.
func (p *Parser) ParseTest() (cst.Expr, error) {
	if p.at(token.KwLambda) {
		return p.ParseLambda()
	}
	return p.ParseConditional()
}

func (p *Parser) ParseLambda() (cst.Expr, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	x := &cst.Lambda{Lambda: p.advance()}
	if !p.at(token.Colon) {
		params, err := p.parseParameters(token.Colon, false)
		if err != nil {
			return nil, err
		}
		x.Params = params
	}
	var err error
	if x.Colon, err = p.expect(token.Colon, diag.SynExpectColon); err != nil {
		return nil, err
	}
	if x.Body, err = p.ParseTest(); err != nil {
		return nil, err
	}
	return x, nil
}

// ParseNamedExpression parses "name := value" or a plain expression.
func (p *Parser) ParseNamedExpression() (cst.Expr, error) {
	if !p.at(token.Name) || p.lx.Peek2().Kind != token.ColonAssign {
		return p.ParseTest()
	}
	x := &cst.NamedExpr{Target: &cst.Name{Tok: p.advance()}, Walrus: p.advance()}
	value, err := p.ParseTest()
	if err != nil {
		return nil, err
	}
	x.Value = value
	return x, nil
}

// parseStarNamedExpression is an element of a display or call: *x or a named expression.
func (p *Parser) parseStarNamedExpression() (cst.Expr, error) {
	if p.at(token.Star) {
		return p.parseStarred()
	}
	return p.ParseNamedExpression()
}

func (p *Parser) parseStarred() (cst.Expr, error) {
	star := p.advance()
	x, err := p.ParseBitOr()
	if err != nil {
		return nil, err
	}
	return &cst.Starred{Star: star, X: x}, nil
}

func (p *Parser) parseStarExpression() (cst.Expr, error) {
	if p.at(token.Star) {
		return p.parseStarred()
	}
	return p.ParseTest()
}

// ParseStarExpressions parses an expression list; a comma makes it an unparenthesized tuple.
func (p *Parser) ParseStarExpressions() (cst.Expr, error) {
	return p.parseExprList(p.parseStarExpression)
}

// parseTargetList parses for-targets: star targets at bitwise-or level.
func (p *Parser) parseTargetList() (cst.Expr, error) {
	return p.parseExprList(func() (cst.Expr, error) {
		if p.at(token.Star) {
			return p.parseStarred()
		}
		return p.ParseBitOr()
	})
}

func (p *Parser) parseExprList(next func() (cst.Expr, error)) (cst.Expr, error) {
	first, err := next()
	if err != nil {
		return nil, err
	}
	if !p.at(token.Comma) {
		return first, nil
	}
	tup := &cst.Tuple{Elts: []cst.Expr{first}}
	for p.at(token.Comma) {
		tup.Commas = append(tup.Commas, p.advance())
		if !p.canStartExpr() {
			break
		}
		x, err := next()
		if err != nil {
			return nil, err
		}
		tup.Elts = append(tup.Elts, x)
	}
	return tup, nil
}

// canStartExpr reports whether the next token may begin an expression.
func (p *Parser) canStartExpr() bool {
	switch p.lx.Peek().Kind {
	case token.Name, token.Number, token.String, token.KwNone, token.KwTrue, token.KwFalse, token.Ellipsis,
		token.LParen, token.LBracket, token.LBrace, token.Minus, token.Plus, token.Tilde,
		token.KwNot, token.KwLambda, token.KwAwait, token.Star:
		return true
	}
	return false
}

// parseYieldExpr: yield [from expr | expressions]
func (p *Parser) parseYieldExpr() (*cst.YieldExpr, error) {
	y := &cst.YieldExpr{Yield: p.advance()}
	var err error
	switch {
	case p.at(token.KwFrom):
		y.From = p.advancePtr()
		y.Value, err = p.ParseTest()
	case p.canStartExpr():
		y.Value, err = p.ParseStarExpressions()
	}
	if err != nil {
		return nil, err
	}
	return y, nil
}
