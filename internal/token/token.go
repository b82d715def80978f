package token

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"pycst/internal/source"
)

// Token represents a single source token with its location and leading trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsLiteral reports whether the token is a number or string literal.
func (t Token) IsLiteral() bool {
	return t.Kind == Number || t.Kind == String
}

// IsKeyword reports whether the token is a hard keyword.
func (t Token) IsKeyword() bool { return t.Kind.IsKeyword() }

// IsPunctOrOp reports whether the token is an operator or delimiter.
func (t Token) IsPunctOrOp() bool { return t.Kind.IsOperator() }

// IsName reports whether the token is an identifier.
func (t Token) IsName() bool { return t.Kind == Name }

// IsSoft reports whether the token is the Name spelling the soft keyword kw.
func (t Token) IsSoft(kw string) bool {
	return t.Kind == Name && t.Value() == kw
}

// Value returns the identifier in NFKC normal form, which is how names compare.
// Non-Name tokens return Text unchanged.
func (t Token) Value() string {
	if t.Kind != Name || isASCII(t.Text) {
		return t.Text
	}
	return norm.NFKC.String(t.Text)
}

// Source returns the leading trivia text followed by the token text,
// i.e. exactly the bytes this token accounts for in the input.
func (t Token) Source() string {
	if len(t.Leading) == 0 {
		return t.Text
	}
	var b strings.Builder
	for _, tv := range t.Leading {
		b.WriteString(tv.Text)
	}
	b.WriteString(t.Text)
	return b.String()
}

// FullSpan returns the span covering leading trivia and the token itself.
func (t Token) FullSpan() source.Span {
	if len(t.Leading) == 0 {
		return t.Span
	}
	return t.Leading[0].Span.Cover(t.Span)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}
