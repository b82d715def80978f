package cst_test

import (
	"testing"

	"pycst/internal/cst"
	"pycst/internal/source"
	"pycst/internal/token"
)

func tok(kind token.Kind, text string, start uint32) token.Token {
	return token.Token{Kind: kind, Text: text, Span: source.Span{Start: start, End: start + uint32(len(text))}}
}

// a ** b
func powerExpr() *cst.BinaryExpr {
	op := tok(token.DoubleStar, "**", 2)
	op.Leading = []token.Trivia{{Kind: token.TriviaWhitespace, Text: " ", Span: source.Span{Start: 1, End: 2}}}
	b := tok(token.Name, "b", 5)
	b.Leading = []token.Trivia{{Kind: token.TriviaWhitespace, Text: " ", Span: source.Span{Start: 4, End: 5}}}
	return &cst.BinaryExpr{
		X:  &cst.Name{Tok: tok(token.Name, "a", 0)},
		Op: op,
		Y:  &cst.Name{Tok: b},
	}
}

func TestSpanFromElements(t *testing.T) {
	e := powerExpr()
	if sp := e.Span(); sp.Start != 0 || sp.End != 6 {
		t.Fatalf("span %v, want [0,6)", sp)
	}
	if err := cst.CheckSpans(e); err != nil {
		t.Fatal(err)
	}
}

func TestTokensAndChildren(t *testing.T) {
	e := powerExpr()
	toks := cst.Tokens(e)
	if len(toks) != 3 || toks[0].Text != "a" || toks[1].Text != "**" || toks[2].Text != "b" {
		t.Fatalf("tokens: %+v", toks)
	}
	if n := len(cst.Children(e)); n != 2 {
		t.Fatalf("children: %d", n)
	}

	var names []string
	cst.Inspect(e, func(n cst.Node) bool {
		if name, ok := n.(*cst.Name); ok {
			names = append(names, name.Tok.Text)
		}
		return true
	})
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Fatalf("Inspect visited %v", names)
	}
}

func TestOptionalPartsAreSkipped(t *testing.T) {
	ret := &cst.Return{Return: tok(token.KwReturn, "return", 0)}
	if els := ret.Elements(); len(els) != 1 {
		t.Fatalf("bare return has %d elements", len(els))
	}
	tuple := &cst.Tuple{
		Elts:   []cst.Expr{&cst.Name{Tok: tok(token.Name, "x", 0)}},
		Commas: []token.Token{tok(token.Comma, ",", 1)},
	}
	if sp := tuple.Span(); sp.Start != 0 || sp.End != 2 {
		t.Fatalf("one-element tuple span %v", sp)
	}
}

func TestCheckSpansDetectsDisorder(t *testing.T) {
	bad := &cst.BinaryExpr{
		X:  &cst.Name{Tok: tok(token.Name, "b", 5)},
		Op: tok(token.Plus, "+", 2),
		Y:  &cst.Name{Tok: tok(token.Name, "a", 0)},
	}
	if err := cst.CheckSpans(bad); err == nil {
		t.Fatal("expected span check failure")
	}
}

func TestCompareOperator(t *testing.T) {
	in := tok(token.KwIn, "in", 6)
	op := &cst.CompareOp{Op: tok(token.KwNot, "not", 2), Op2: &in, Right: &cst.Name{Tok: tok(token.Name, "y", 9)}}
	if got := op.Operator(); got != "not in" {
		t.Fatalf("Operator() = %q", got)
	}
}

type depthVisitor struct {
	depth *int
	max   *int
	cur   int
}

func (v depthVisitor) Visit(n cst.Node) cst.Visitor {
	if n == nil {
		return nil
	}
	*v.depth++
	if v.cur+1 > *v.max {
		*v.max = v.cur + 1
	}
	return depthVisitor{depth: v.depth, max: v.max, cur: v.cur + 1}
}

func TestWalk(t *testing.T) {
	var visited, depth int
	cst.Walk(depthVisitor{depth: &visited, max: &depth}, powerExpr())
	if visited != 3 || depth != 2 {
		t.Fatalf("visited %d nodes, depth %d; want 3 and 2", visited, depth)
	}
}
