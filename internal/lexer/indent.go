package lexer

import (
	"fmt"

	"pycst/internal/diag"
	"pycst/internal/token"
)

// measureIndent сравнивает ширину отступа новой логической строки с вершиной стека.
// Indent и Dedent имеют нулевую ширину и забирают leading trivia строки.
func (lx *Lexer) measureIndent() (token.Token, bool) {
	width := lx.lineWidth
	top := lx.indents[len(lx.indents)-1]
	lx.lineStart = false

	switch {
	case width == top:
		return token.Token{}, false

	case width > top:
		lx.indents = append(lx.indents, width)
		return token.Token{Kind: token.Indent, Span: lx.emptySpan(), Leading: lx.takeHold()}, true
	}

	n := 0
	for len(lx.indents) > 1 && lx.indents[len(lx.indents)-1] > width {
		lx.indents = lx.indents[:len(lx.indents)-1]
		n++
	}
	if lx.indents[len(lx.indents)-1] != width {
		return lx.fail(diag.LexInconsistentDedent, lx.emptySpan(), "",
			fmt.Sprintf("unindent to width %d does not match any outer indentation level", width)), true
	}

	first := token.Token{Kind: token.Dedent, Span: lx.emptySpan(), Leading: lx.takeHold()}
	for i := 1; i < n; i++ {
		lx.pending = append(lx.pending, token.Token{Kind: token.Dedent, Span: lx.emptySpan()})
	}
	return first, true
}
