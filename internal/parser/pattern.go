package parser

import (
	"pycst/internal/cst"
	"pycst/internal/diag"
	"pycst/internal/token"
)

// parseCasePattern parses the pattern of a case clause, where a bare comma makes an open sequence.
func (p *Parser) parseCasePattern() (cst.Pattern, error) {
	first, err := p.parseMaybeStarPattern()
	if err != nil {
		return nil, err
	}
	if !p.at(token.Comma) {
		if _, ok := first.(*cst.MatchStar); ok {
			return &cst.MatchSequence{Patterns: []cst.Pattern{first}}, nil
		}
		return first, nil
	}
	seq := &cst.MatchSequence{Patterns: []cst.Pattern{first}}
	for p.at(token.Comma) {
		seq.Commas = append(seq.Commas, p.advance())
		if p.atAny(token.Colon, token.KwIf) {
			break
		}
		x, err := p.parseMaybeStarPattern()
		if err != nil {
			return nil, err
		}
		seq.Patterns = append(seq.Patterns, x)
	}
	return seq, nil
}

func (p *Parser) parseMaybeStarPattern() (cst.Pattern, error) {
	if !p.at(token.Star) {
		return p.ParsePattern()
	}
	star := p.advance()
	name, err := p.expectName()
	if err != nil {
		return nil, err
	}
	return &cst.MatchStar{Star: star, Name: name}, nil
}

// ParsePattern parses "or_pattern [as name]".
func (p *Parser) ParsePattern() (cst.Pattern, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	x, err := p.parseOrPattern()
	if err != nil {
		return nil, err
	}
	if !p.at(token.KwAs) {
		return x, nil
	}
	as := p.advance()
	name, err := p.expectName()
	if err != nil {
		return nil, err
	}
	if name.IsSoft(token.SoftWildcard) {
		return nil, p.errorAt(diag.SynInvalidTarget, name.Span, "cannot use '_' as a target")
	}
	return &cst.MatchAs{Pattern: x, As: as, Name: name}, nil
}

func (p *Parser) parseOrPattern() (cst.Pattern, error) {
	x, err := p.parseClosedPattern()
	if err != nil {
		return nil, err
	}
	for p.at(token.Pipe) {
		pipe := p.advance()
		y, err := p.parseClosedPattern()
		if err != nil {
			return nil, err
		}
		x = &cst.MatchOr{X: x, Pipe: pipe, Y: y}
	}
	return x, nil
}

func (p *Parser) parseClosedPattern() (cst.Pattern, error) {
	switch p.lx.Peek().Kind {
	case token.Number, token.Minus, token.String, token.KwNone, token.KwTrue, token.KwFalse:
		lit, err := p.parseLiteralExpr()
		if err != nil {
			return nil, err
		}
		return &cst.MatchLiteral{Value: lit}, nil
	case token.Name:
		return p.parseNamePattern()
	case token.LParen:
		return p.parseGroupPattern()
	case token.LBracket:
		return p.parseSequencePattern()
	case token.LBrace:
		return p.parseMappingPattern()
	}
	return nil, p.unexpected(diag.SynExpectPattern, "expected pattern")
}

// parseLiteralExpr parses a literal usable in a pattern: strings, None/True/False,
// and signed numbers with an optional complex part such as -1+2j.
func (p *Parser) parseLiteralExpr() (cst.Expr, error) {
	switch p.lx.Peek().Kind {
	case token.String:
		return p.parseStrings(), nil
	case token.KwNone, token.KwTrue, token.KwFalse:
		return &cst.Constant{Tok: p.advance()}, nil
	}

	var x cst.Expr
	if p.at(token.Minus) {
		minus := p.advance()
		num, err := p.expect(token.Number, diag.SynExpectPattern)
		if err != nil {
			return nil, err
		}
		x = &cst.UnaryExpr{Op: minus, X: &cst.Number{Tok: num}}
	} else {
		num, err := p.expect(token.Number, diag.SynExpectPattern)
		if err != nil {
			return nil, err
		}
		x = &cst.Number{Tok: num}
	}
	if p.atAny(token.Plus, token.Minus) && p.lx.Peek2().Kind == token.Number {
		op := p.advance()
		x = &cst.BinaryExpr{X: x, Op: op, Y: &cst.Number{Tok: p.advance()}}
	}
	return x, nil
}

// parseNamePattern: '_' | capture | dotted value | class pattern.
func (p *Parser) parseNamePattern() (cst.Pattern, error) {
	name := p.advance()
	if !p.atAny(token.Dot, token.LParen) {
		if name.IsSoft(token.SoftWildcard) {
			return &cst.MatchWildcard{Tok: name}, nil
		}
		return &cst.MatchCapture{Name: name}, nil
	}
	value, err := p.parseDottedValue(name)
	if err != nil {
		return nil, err
	}
	if p.at(token.LParen) {
		return p.parseClassPattern(value)
	}
	return &cst.MatchValue{Value: value}, nil
}

// parseDottedValue builds name.attr.attr as an expression.
func (p *Parser) parseDottedValue(name token.Token) (cst.Expr, error) {
	var trailers []cst.Trailer
	for p.at(token.Dot) {
		attr, err := p.parseAttribute()
		if err != nil {
			return nil, err
		}
		trailers = append(trailers, attr)
	}
	if len(trailers) == 0 {
		return &cst.Name{Tok: name}, nil
	}
	return &cst.Primary{Atom: &cst.Name{Tok: name}, Trailers: trailers}, nil
}

func (p *Parser) parseClassPattern(cls cst.Expr) (*cst.MatchClass, error) {
	mc := &cst.MatchClass{Cls: cls, LParen: p.advance()}
	seenKeyword := false
	for !p.at(token.RParen) {
		arg := &cst.PatternArg{}
		if p.at(token.Name) && p.lx.Peek2().Kind == token.Assign {
			arg.Name = p.advancePtr()
			arg.Assign = p.advancePtr()
			seenKeyword = true
		} else if seenKeyword {
			return nil, p.unexpected(diag.SynExpectPattern, "positional pattern follows keyword pattern")
		}
		pat, err := p.ParsePattern()
		if err != nil {
			return nil, err
		}
		arg.Pattern = pat
		mc.Args = append(mc.Args, arg)
		if !p.at(token.Comma) {
			break
		}
		mc.Commas = append(mc.Commas, p.advance())
	}
	var err error
	if mc.RParen, err = p.expect(token.RParen, diag.SynExpectRParen); err != nil {
		return nil, err
	}
	return mc, nil
}

// ( ) | ( p ) | ( p, ... )
func (p *Parser) parseGroupPattern() (cst.Pattern, error) {
	lp := p.advance()
	if p.at(token.RParen) {
		rp := p.advance()
		return &cst.MatchSequence{Open: &lp, Close: &rp}, nil
	}
	first, err := p.parseMaybeStarPattern()
	if err != nil {
		return nil, err
	}
	_, isStar := first.(*cst.MatchStar)
	if !p.at(token.Comma) && !isStar {
		rp, err := p.expect(token.RParen, diag.SynExpectRParen)
		if err != nil {
			return nil, err
		}
		return &cst.MatchGroup{LParen: lp, Pattern: first, RParen: rp}, nil
	}
	seq := &cst.MatchSequence{Open: &lp, Patterns: []cst.Pattern{first}}
	if err := p.parsePatternListTail(seq, token.RParen); err != nil {
		return nil, err
	}
	rp, err := p.expect(token.RParen, diag.SynExpectRParen)
	if err != nil {
		return nil, err
	}
	seq.Close = &rp
	return seq, nil
}

func (p *Parser) parseSequencePattern() (cst.Pattern, error) {
	lb := p.advance()
	seq := &cst.MatchSequence{Open: &lb}
	if !p.at(token.RBracket) {
		first, err := p.parseMaybeStarPattern()
		if err != nil {
			return nil, err
		}
		seq.Patterns = append(seq.Patterns, first)
		if err := p.parsePatternListTail(seq, token.RBracket); err != nil {
			return nil, err
		}
	}
	rb, err := p.expect(token.RBracket, diag.SynExpectRBracket)
	if err != nil {
		return nil, err
	}
	seq.Close = &rb
	return seq, nil
}

func (p *Parser) parsePatternListTail(seq *cst.MatchSequence, closer token.Kind) error {
	for p.at(token.Comma) {
		seq.Commas = append(seq.Commas, p.advance())
		if p.at(closer) {
			break
		}
		x, err := p.parseMaybeStarPattern()
		if err != nil {
			return err
		}
		seq.Patterns = append(seq.Patterns, x)
	}
	return nil
}

// { key: p, ..., **rest }
func (p *Parser) parseMappingPattern() (cst.Pattern, error) {
	mm := &cst.MatchMapping{LBrace: p.advance()}
	for !p.at(token.RBrace) {
		item, err := p.parseMappingItem()
		if err != nil {
			return nil, err
		}
		mm.Items = append(mm.Items, item)
		if !p.at(token.Comma) {
			break
		}
		mm.Commas = append(mm.Commas, p.advance())
		if item.Rest != nil && !p.at(token.RBrace) {
			return nil, p.unexpected(diag.SynExpectRBrace, "'**' pattern must be last")
		}
	}
	var err error
	if mm.RBrace, err = p.expect(token.RBrace, diag.SynExpectRBrace); err != nil {
		return nil, err
	}
	return mm, nil
}

func (p *Parser) parseMappingItem() (*cst.MappingItem, error) {
	if p.at(token.DoubleStar) {
		rest := p.advancePtr()
		name, err := p.expectName()
		if err != nil {
			return nil, err
		}
		return &cst.MappingItem{Rest: rest, Name: &name}, nil
	}

	var (
		key cst.Expr
		err error
	)
	if p.at(token.Name) {
		key, err = p.parseDottedValue(p.advance())
	} else {
		key, err = p.parseLiteralExpr()
	}
	if err != nil {
		return nil, err
	}
	item := &cst.MappingItem{Key: key}
	if !p.at(token.Colon) {
		return nil, p.unexpected(diag.SynExpectColon, "expected ':' in mapping pattern")
	}
	item.Colon = p.advancePtr()
	if item.Pattern, err = p.ParsePattern(); err != nil {
		return nil, err
	}
	return item, nil
}
