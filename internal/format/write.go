package format

import (
	"pycst/internal/token"
)

// Writer accumulates printed tokens together with their leading trivia.
type Writer struct {
	opt Options
	buf []byte
	// atLineStart is true when the last written byte was a line break.
	atLineStart bool
}

// NewWriter creates a writer with room for sizeHint bytes.
func NewWriter(sizeHint int, opt Options) *Writer {
	return &Writer{
		opt:         opt,
		buf:         make([]byte, 0, sizeHint),
		atLineStart: true,
	}
}

// Bytes returns the accumulated output.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Len reports the number of bytes written so far.
func (w *Writer) Len() int { return len(w.buf) }

// WriteString appends s verbatim.
func (w *Writer) WriteString(s string) {
	if s == "" {
		return
	}
	w.buf = append(w.buf, s...)
	w.updateLineState(s[len(s)-1])
}

// WriteToken appends the token's leading trivia and then its text.
func (w *Writer) WriteToken(tok *token.Token) {
	for i := range tok.Leading {
		w.writeTrivia(&tok.Leading[i])
	}
	w.WriteString(tok.Text)
}

func (w *Writer) writeTrivia(tv *token.Trivia) {
	if tv.Kind == token.TriviaComment && w.opt.DropComments {
		return
	}
	w.WriteString(tv.Text)
}

func (w *Writer) updateLineState(last byte) {
	w.atLineStart = last == '\n' || last == '\r'
}

// AtLineStart reports whether the output currently ends with a line break (or is empty).
func (w *Writer) AtLineStart() bool { return w.atLineStart }
