package cst

import "pycst/internal/token"

// Inspect traverses the tree rooted at n in depth-first order. It calls f(n) and,
// if f returns true, visits the children of n.
func Inspect(n Node, f func(Node) bool) {
	if n == nil || !f(n) {
		return
	}
	for _, el := range n.Elements() {
		if el.Node != nil {
			Inspect(el.Node, f)
		}
	}
}

// Visitor's Visit method is invoked for each node encountered by Walk.
// If the result visitor w is not nil, Walk visits each of the children
// of node with the visitor w, followed by a call of w.Visit(nil).
type Visitor interface {
	Visit(node Node) (w Visitor)
}

// Walk traverses the tree in depth-first order, the way go/ast.Walk does.
func Walk(v Visitor, n Node) {
	if n == nil {
		return
	}
	if v = v.Visit(n); v == nil {
		return
	}
	for _, el := range n.Elements() {
		if el.Node != nil {
			Walk(v, el.Node)
		}
	}
	v.Visit(nil)
}

// Children returns the direct child nodes of n.
func Children(n Node) []Node {
	var out []Node
	for _, el := range n.Elements() {
		if el.Node != nil {
			out = append(out, el.Node)
		}
	}
	return out
}

// Tokens returns every token under n in source order.
func Tokens(n Node) []token.Token {
	var out []token.Token
	eachToken(n, func(t *token.Token) { out = append(out, *t) })
	return out
}

func eachToken(n Node, fn func(*token.Token)) {
	for _, el := range n.Elements() {
		if el.Tok != nil {
			fn(el.Tok)
			continue
		}
		eachToken(el.Node, fn)
	}
}

// EachToken calls fn for every token under n in source order.
func EachToken(n Node, fn func(*token.Token)) {
	if n != nil {
		eachToken(n, fn)
	}
}
