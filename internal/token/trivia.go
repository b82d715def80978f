package token

import "pycst/internal/source"

// TriviaKind classifies non-semantic source text.
type TriviaKind uint8

const (
	// TriviaWhitespace is a run of spaces (and form feeds).
	TriviaWhitespace TriviaKind = iota
	// TriviaTab is a run of tab characters.
	TriviaTab
	// TriviaNewline is one line break that does not end a logical line.
	TriviaNewline
	// TriviaContinuation is a backslash followed by its line break.
	TriviaContinuation
	// TriviaComment is '#' up to, not including, the line break.
	TriviaComment
)

func (k TriviaKind) String() string {
	switch k {
	case TriviaWhitespace:
		return "Whitespace"
	case TriviaTab:
		return "Tab"
	case TriviaNewline:
		return "Newline"
	case TriviaContinuation:
		return "Continuation"
	case TriviaComment:
		return "Comment"
	default:
		return "Unknown"
	}
}

// NewlineStyle is the literal form of a line break.
type NewlineStyle uint8

const (
	NoNewline NewlineStyle = iota
	LF                     // "\n"
	CRLF                   // "\r\n"
	CR                     // "\r"
)

func (s NewlineStyle) String() string {
	switch s {
	case LF:
		return "LF"
	case CRLF:
		return "CRLF"
	case CR:
		return "CR"
	default:
		return "none"
	}
}

// StyleOf returns the style of the line break that text ends with.
func StyleOf(text string) NewlineStyle {
	n := len(text)
	switch {
	case n >= 2 && text[n-2] == '\r' && text[n-1] == '\n':
		return CRLF
	case n >= 1 && text[n-1] == '\n':
		return LF
	case n >= 1 && text[n-1] == '\r':
		return CR
	default:
		return NoNewline
	}
}

// Trivia is a typed, non-semantic span attached to the token that follows it.
type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}

// Newline returns the line break style for newline and continuation trivia.
func (tv Trivia) Newline() NewlineStyle {
	if tv.Kind != TriviaNewline && tv.Kind != TriviaContinuation {
		return NoNewline
	}
	return StyleOf(tv.Text)
}
