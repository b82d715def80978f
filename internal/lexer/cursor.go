package lexer

import (
	"unicode/utf8"

	"fortio.org/safecast"

	"pycst/internal/source"
)

// Cursor - позиция чтения в файле. Все методы безопасны за концом файла:
// байты там читаются как 0, руны как utf8.RuneError с размером 0.
type Cursor struct {
	File *source.File
	Off  uint32
	src  []byte
}

// NewCursor starts at offset 0. FileSet guarantees the content fits uint32.
func NewCursor(f *source.File) Cursor {
	return Cursor{File: f, src: f.Content}
}

func (c *Cursor) EOF() bool { return int(c.Off) >= len(c.src) }

func (c *Cursor) Peek() byte { return c.PeekAt(0) }

// PeekAt returns the byte n positions ahead.
func (c *Cursor) PeekAt(n uint32) byte {
	if i := int(c.Off) + int(n); i < len(c.src) {
		return c.src[i]
	}
	return 0
}

func (c *Cursor) Bump() byte {
	b := c.Peek()
	if !c.EOF() {
		c.Off++
	}
	return b
}

// Eat consumes b if it is next.
func (c *Cursor) Eat(b byte) bool {
	if !c.EOF() && c.src[c.Off] == b {
		c.Off++
		return true
	}
	return false
}

// PeekRune decodes the rune at the cursor; ASCII skips the decoder.
func (c *Cursor) PeekRune() (rune, int) {
	if c.EOF() {
		return utf8.RuneError, 0
	}
	if b := c.src[c.Off]; b < utf8.RuneSelf {
		return rune(b), 1
	}
	return utf8.DecodeRune(c.src[c.Off:])
}

// BumpRune skips one rune; invalid UTF-8 is skipped a byte at a time.
func (c *Cursor) BumpRune() {
	_, size := c.PeekRune()
	if n, err := safecast.Conv[uint32](size); err == nil {
		c.Off += n
	}
}

// LineBreakLen is 2 for "\r\n", 1 for a lone '\n' or '\r', 0 otherwise.
func (c *Cursor) LineBreakLen() uint32 {
	switch c.Peek() {
	case '\n':
		return 1
	case '\r':
		if c.PeekAt(1) == '\n' {
			return 2
		}
		return 1
	}
	return 0
}

// EatLineBreak consumes a line break at the cursor and returns its length.
func (c *Cursor) EatLineBreak() uint32 {
	n := c.LineBreakLen()
	c.Off += n
	return n
}

// Mark - сохранённая позиция для SpanFrom, TextFrom и Reset.
type Mark uint32

func (c *Cursor) Mark() Mark { return Mark(c.Off) }

func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{File: c.File.ID, Start: uint32(m), End: c.Off}
}

func (c *Cursor) TextFrom(m Mark) string {
	return string(c.src[m:c.Off])
}

func (c *Cursor) Reset(m Mark) { c.Off = uint32(m) }
