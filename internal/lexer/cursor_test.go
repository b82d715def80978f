package lexer

import (
	"testing"
	"unicode/utf8"

	"pycst/internal/source"
)

func createFile(content string) *source.File {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.py", []byte(content))
	return fs.Get(id)
}

// TestCursorSequentialReading проверяет последовательное чтение: "a\nb" → a, \n, b, EOF
func TestCursorSequentialReading(t *testing.T) {
	c := NewCursor(createFile("a\nb"))
	for _, want := range []byte("a\nb") {
		if c.EOF() {
			t.Fatalf("unexpected EOF before %q", want)
		}
		if got := c.Peek(); got != want {
			t.Fatalf("Peek: got %q, want %q", got, want)
		}
		if got := c.Bump(); got != want {
			t.Fatalf("Bump: got %q, want %q", got, want)
		}
	}
	if !c.EOF() {
		t.Fatal("expected EOF at end")
	}
	if c.Peek() != 0 || c.Bump() != 0 || c.PeekAt(1) != 0 {
		t.Fatal("expected zero bytes past EOF")
	}
}

func TestCursorMarkAndSpan(t *testing.T) {
	c := NewCursor(createFile("hello world"))
	c.Bump()
	m := c.Mark()
	for range 4 {
		c.Bump()
	}
	sp := c.SpanFrom(m)
	if sp.Start != 1 || sp.End != 5 {
		t.Fatalf("span: got %v", sp)
	}
	if got := c.TextFrom(m); got != "ello" {
		t.Fatalf("TextFrom: got %q", got)
	}
	c.Reset(m)
	if c.Off != 1 {
		t.Fatalf("Reset: got offset %d", c.Off)
	}
	if !c.Eat('e') || c.Eat('x') {
		t.Fatal("Eat mismatch")
	}
}

func TestCursorLineBreakLen(t *testing.T) {
	cases := []struct {
		in   string
		want uint32
	}{
		{"\n", 1},
		{"\r\n", 2},
		{"\r", 1},
		{"\rx", 1},
		{"x", 0},
		{"", 0},
	}
	for _, tc := range cases {
		c := NewCursor(createFile(tc.in))
		if got := c.LineBreakLen(); got != tc.want {
			t.Errorf("LineBreakLen(%q) = %d, want %d", tc.in, got, tc.want)
		}
		if got := c.EatLineBreak(); got != tc.want || c.Off != tc.want {
			t.Errorf("EatLineBreak(%q) = %d, offset %d", tc.in, got, c.Off)
		}
	}
}

func TestCursorRunes(t *testing.T) {
	c := NewCursor(createFile("aж\xffz"))
	want := []struct {
		r    rune
		size int
	}{
		{'a', 1},
		{'ж', 2},
		{utf8.RuneError, 1},
		{'z', 1},
		{utf8.RuneError, 0},
	}
	for i, w := range want {
		r, n := c.PeekRune()
		if r != w.r || n != w.size {
			t.Fatalf("rune %d: got %q/%d, want %q/%d", i, r, n, w.r, w.size)
		}
		c.BumpRune()
	}
	if c.Off != 5 {
		t.Fatalf("offset %d after all runes, want 5", c.Off)
	}
}

func TestCursorBumpRuneOffsets(t *testing.T) {
	src := "😀\xe2\x82é"
	c := NewCursor(createFile(src))
	// 4-байтная руна, обрезанная последовательность по байту, é из двух байт, EOF
	for _, want := range []uint32{4, 5, 6, 8, 8, 8} {
		c.BumpRune()
		if c.Off != want {
			t.Fatalf("offset %d, want %d", c.Off, want)
		}
	}
	if int(c.Off) != len(src) || !c.EOF() {
		t.Fatalf("cursor past end: %d of %d", c.Off, len(src))
	}
}

func TestCharClasses(t *testing.T) {
	for _, b := range []byte("_azAZ") {
		if !isIdentStartByte(b) {
			t.Errorf("isIdentStartByte(%q) = false", b)
		}
	}
	for _, b := range []byte("@[`{09") {
		if isIdentStartByte(b) {
			t.Errorf("isIdentStartByte(%q) = true", b)
		}
	}
	for _, b := range []byte("09afAF") {
		if !isHex(b) {
			t.Errorf("isHex(%q) = false", b)
		}
	}
	for _, b := range []byte("gG@`") {
		if isHex(b) {
			t.Errorf("isHex(%q) = true", b)
		}
	}
	if !isIdentStartRune('ж') || isIdentStartRune('€') || !isIdentContinueRune('\u0301') {
		t.Error("unicode identifier classes")
	}
}
