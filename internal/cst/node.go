package cst

import (
	"pycst/internal/source"
	"pycst/internal/token"
)

// Node is implemented by every tree node.
type Node interface {
	Span() source.Span
	// Elements returns the node's direct constituents in source order.
	Elements() []Element
}

// Element is one direct constituent of a node: exactly one of Tok and Node is set.
type Element struct {
	Tok  *token.Token
	Node Node
}

// Span returns the span of the token or node.
func (e Element) Span() source.Span {
	if e.Tok != nil {
		return e.Tok.Span
	}
	return e.Node.Span()
}

// Expr is an expression node.
type Expr interface {
	Node
	exprNode()
}

// Stmt is a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Suite is the body of a compound statement clause: *SimpleStatements or *Block.
type Suite interface {
	Stmt
	suiteNode()
}

// Pattern is a node of a match-case pattern.
type Pattern interface {
	Node
	patternNode()
}

// Trailer is a postfix part of a Primary: *Attribute, *Call or *Subscript.
type Trailer interface {
	Node
	trailerNode()
}

func spanOf(n Node) source.Span {
	els := n.Elements()
	if len(els) == 0 {
		return source.Span{}
	}
	first, last := els[0].Span(), els[len(els)-1].Span()
	return source.Span{File: first.File, Start: first.Start, End: last.End}
}

// elems collects elements, skipping absent optional parts.
type elems []Element

func (e *elems) tok(t *token.Token) {
	if t != nil {
		*e = append(*e, Element{Tok: t})
	}
}

func (e *elems) toks(ts []token.Token) {
	for i := range ts {
		*e = append(*e, Element{Tok: &ts[i]})
	}
}

func (e *elems) node(n Node) {
	if n != nil {
		*e = append(*e, Element{Node: n})
	}
}

// sep interleaves items with the separators between (and possibly after) them.
func sep[T Node](e *elems, items []T, seps []token.Token) {
	for i := range items {
		e.node(items[i])
		if i < len(seps) {
			e.tok(&seps[i])
		}
	}
	for i := len(items); i < len(seps); i++ {
		e.tok(&seps[i])
	}
}

func nodes[T Node](e *elems, items []T) {
	for i := range items {
		e.node(items[i])
	}
}
