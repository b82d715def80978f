package format

import (
	"io"

	"pycst/internal/cst"
	"pycst/internal/token"
)

// Options controls printing. The zero value prints losslessly.
type Options struct {
	// DropComments omits comment trivia; everything else is kept.
	DropComments bool
}

type printer struct {
	w *Writer
}

// Print writes the exact source text of node, trivia included, to out.
func Print(out io.Writer, node cst.Node) error {
	return Fprint(out, node, Options{})
}

// Fprint is Print with options.
func Fprint(out io.Writer, node cst.Node, opt Options) error {
	_, err := out.Write(Bytes(node, opt))
	return err
}

// Bytes prints node into a new buffer.
func Bytes(node cst.Node, opt Options) []byte {
	pr := printer{w: NewWriter(sizeHint(node), opt)}
	pr.printNode(node)
	return pr.w.Bytes()
}

// Source reconstructs the full text of a parsed module.
func Source(mod *cst.Module) string {
	return string(Bytes(mod, Options{}))
}

func (p *printer) printNode(n cst.Node) {
	if n == nil {
		return
	}
	cst.EachToken(n, func(tok *token.Token) {
		p.w.WriteToken(tok)
	})
}

// sizeHint берёт длину исходника по спану корня: trivia перед первым токеном не входит в спан,
// поэтому это лишь оценка.
func sizeHint(n cst.Node) int {
	if n == nil {
		return 0
	}
	sp := n.Span()
	return int(sp.End-sp.Start) + 64
}
