package cst

import (
	"pycst/internal/source"
	"pycst/internal/token"
)

type (
	// MatchAs is "pattern as name".
	MatchAs struct {
		Pattern Pattern
		As      token.Token
		Name    token.Token
	}

	// MatchOr is "x | y", folded left.
	MatchOr struct {
		X    Pattern
		Pipe token.Token
		Y    Pattern
	}

	// MatchWildcard is the lone '_'.
	MatchWildcard struct{ Tok token.Token }

	// MatchCapture binds the subject to a name.
	MatchCapture struct{ Name token.Token }

	// MatchLiteral is a number (optionally signed or complex), a string, None, True or False.
	MatchLiteral struct{ Value Expr }

	// MatchValue is a dotted name compared by equality.
	MatchValue struct{ Value Expr }

	// MatchGroup is a parenthesized pattern.
	MatchGroup struct {
		LParen  token.Token
		Pattern Pattern
		RParen  token.Token
	}

	// MatchSequence is [p, ...], (p, ...) or an open sequence at the top of a case.
	MatchSequence struct {
		Open     *token.Token
		Patterns []Pattern
		Commas   []token.Token
		Close    *token.Token
	}

	// MatchStar is *name or *_ inside a sequence.
	MatchStar struct {
		Star token.Token
		Name token.Token
	}

	MatchMapping struct {
		LBrace token.Token
		Items  []*MappingItem
		Commas []token.Token
		RBrace token.Token
	}

	// MappingItem is "key: pattern" or "**rest".
	MappingItem struct {
		Key     Expr
		Colon   *token.Token
		Pattern Pattern
		Rest    *token.Token
		Name    *token.Token
	}

	// MatchClass is Cls(p, key=p).
	MatchClass struct {
		Cls    Expr
		LParen token.Token
		Args   []*PatternArg
		Commas []token.Token
		RParen token.Token
	}

	PatternArg struct {
		Name    *token.Token
		Assign  *token.Token
		Pattern Pattern
	}
)

func (*MatchAs) patternNode()       {}
func (*MatchOr) patternNode()       {}
func (*MatchWildcard) patternNode() {}
func (*MatchCapture) patternNode()  {}
func (*MatchLiteral) patternNode()  {}
func (*MatchValue) patternNode()    {}
func (*MatchGroup) patternNode()    {}
func (*MatchSequence) patternNode() {}
func (*MatchStar) patternNode()     {}
func (*MatchMapping) patternNode()  {}
func (*MatchClass) patternNode()    {}

func (x *MatchAs) Elements() []Element {
	return []Element{{Node: x.Pattern}, {Tok: &x.As}, {Tok: &x.Name}}
}

func (x *MatchOr) Elements() []Element {
	return []Element{{Node: x.X}, {Tok: &x.Pipe}, {Node: x.Y}}
}

func (x *MatchWildcard) Elements() []Element { return []Element{{Tok: &x.Tok}} }
func (x *MatchCapture) Elements() []Element  { return []Element{{Tok: &x.Name}} }
func (x *MatchLiteral) Elements() []Element  { return []Element{{Node: x.Value}} }
func (x *MatchValue) Elements() []Element    { return []Element{{Node: x.Value}} }

func (x *MatchGroup) Elements() []Element {
	return []Element{{Tok: &x.LParen}, {Node: x.Pattern}, {Tok: &x.RParen}}
}

func (x *MatchSequence) Elements() []Element {
	var e elems
	e.tok(x.Open)
	sep(&e, x.Patterns, x.Commas)
	e.tok(x.Close)
	return e
}

func (x *MatchStar) Elements() []Element {
	return []Element{{Tok: &x.Star}, {Tok: &x.Name}}
}

func (x *MatchMapping) Elements() []Element {
	var e elems
	e.tok(&x.LBrace)
	sep(&e, x.Items, x.Commas)
	e.tok(&x.RBrace)
	return e
}

func (x *MappingItem) Elements() []Element {
	var e elems
	e.node(x.Key)
	e.tok(x.Colon)
	e.node(x.Pattern)
	e.tok(x.Rest)
	e.tok(x.Name)
	return e
}

func (x *MatchClass) Elements() []Element {
	var e elems
	e.node(x.Cls)
	e.tok(&x.LParen)
	sep(&e, x.Args, x.Commas)
	e.tok(&x.RParen)
	return e
}

func (x *PatternArg) Elements() []Element {
	var e elems
	e.tok(x.Name)
	e.tok(x.Assign)
	e.node(x.Pattern)
	return e
}

func (x *MatchAs) Span() source.Span       { return spanOf(x) }
func (x *MatchOr) Span() source.Span       { return spanOf(x) }
func (x *MatchWildcard) Span() source.Span { return x.Tok.Span }
func (x *MatchCapture) Span() source.Span  { return x.Name.Span }
func (x *MatchLiteral) Span() source.Span  { return x.Value.Span() }
func (x *MatchValue) Span() source.Span    { return x.Value.Span() }
func (x *MatchGroup) Span() source.Span    { return spanOf(x) }
func (x *MatchSequence) Span() source.Span { return spanOf(x) }
func (x *MatchStar) Span() source.Span     { return spanOf(x) }
func (x *MatchMapping) Span() source.Span  { return spanOf(x) }
func (x *MappingItem) Span() source.Span   { return spanOf(x) }
func (x *MatchClass) Span() source.Span    { return spanOf(x) }
func (x *PatternArg) Span() source.Span    { return spanOf(x) }
