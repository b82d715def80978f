package lexer_test

import (
	"testing"

	"pycst/internal/diag"
	"pycst/internal/lexer"
	"pycst/internal/source"
	"pycst/internal/token"
)

func TestIndentSimpleBlock(t *testing.T) {
	tokens := expectTokens(t, "if x:\n    y\nz\n",
		token.KwIf, token.Name, token.Colon, token.Newline,
		token.Indent, token.Name, token.Newline,
		token.Dedent, token.Name, token.Newline, token.EOF)

	indent := tokens[4]
	if indent.Span.Start != 10 || !indent.Span.Empty() || indent.Text != "" {
		t.Fatalf("Indent should be zero-width at the first token: %+v", indent)
	}
	if len(indent.Leading) != 1 || indent.Leading[0].Text != "    " {
		t.Fatalf("Indent should carry the line's leading trivia: %+v", indent.Leading)
	}
	if len(tokens[5].Leading) != 0 {
		t.Fatalf("first token after Indent has leading trivia: %+v", tokens[5].Leading)
	}
}

func TestDedentPopsSeveralLevels(t *testing.T) {
	expectTokens(t, "a:\n  b:\n    c\nd\n",
		token.Name, token.Colon, token.Newline,
		token.Indent, token.Name, token.Colon, token.Newline,
		token.Indent, token.Name, token.Newline,
		token.Dedent, token.Dedent, token.Name, token.Newline, token.EOF)

	expectTokens(t, "a:\n  b:\n    c\n  d\n",
		token.Name, token.Colon, token.Newline,
		token.Indent, token.Name, token.Colon, token.Newline,
		token.Indent, token.Name, token.Newline,
		token.Dedent, token.Name, token.Newline,
		token.Dedent, token.EOF)
}

func TestInconsistentDedent(t *testing.T) {
	tok, _ := expectLexError(t, "if x:\n    y\n  z\n", diag.LexInconsistentDedent)
	if tok.Span.Start != 14 {
		t.Fatalf("error should point at the misaligned line, got %v", tok.Span)
	}
}

func TestDedentAtEOF(t *testing.T) {
	tokens := expectTokens(t, "if x:\n  y",
		token.KwIf, token.Name, token.Colon, token.Newline,
		token.Indent, token.Name, token.Newline, token.Dedent, token.EOF)
	for _, tok := range tokens[6:8] {
		if !tok.Span.Empty() || tok.Span.Start != 9 {
			t.Fatalf("synthetic %s at %v", tok.Kind, tok.Span)
		}
	}
}

func TestBlankAndCommentLinesDoNotIndent(t *testing.T) {
	tokens := expectTokens(t, "if x:\n\n  # c\n  y\n",
		token.KwIf, token.Name, token.Colon, token.Newline,
		token.Indent, token.Name, token.Newline, token.Dedent, token.EOF)
	kinds := []token.TriviaKind{
		token.TriviaNewline, token.TriviaWhitespace, token.TriviaComment, token.TriviaNewline, token.TriviaWhitespace,
	}
	lead := tokens[4].Leading
	if len(lead) != len(kinds) {
		t.Fatalf("Indent leading: %+v", lead)
	}
	for i := range kinds {
		if lead[i].Kind != kinds[i] {
			t.Errorf("trivia %d: got %v, want %v", i, lead[i].Kind, kinds[i])
		}
	}
}

func TestTabWidth(t *testing.T) {
	// один таб равен восьми пробелам
	expectTokens(t, "if x:\n\ty\n        z\n",
		token.KwIf, token.Name, token.Colon, token.Newline,
		token.Indent, token.Name, token.Newline,
		token.Name, token.Newline, token.Dedent, token.EOF)
	// "  \t" доходит до 8
	expectTokens(t, "if x:\n  \ty\n\tz\n",
		token.KwIf, token.Name, token.Colon, token.Newline,
		token.Indent, token.Name, token.Newline,
		token.Name, token.Newline, token.Dedent, token.EOF)
}

func TestCustomTabSize(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("tab.py", []byte("if x:\n\ty\n    z\n"))
	lx := lexer.New(fs.Get(id), lexer.Options{TabSize: 4})
	got := kindsOf(collectAllTokens(lx))
	want := []token.Kind{
		token.KwIf, token.Name, token.Colon, token.Newline,
		token.Indent, token.Name, token.Newline,
		token.Name, token.Newline, token.Dedent, token.EOF,
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestFormFeedResetsWidth(t *testing.T) {
	expectTokens(t, "x\n  \fy\n", token.Name, token.Newline, token.Name, token.Newline, token.EOF)
}

func TestBracketsSuppressNewlines(t *testing.T) {
	tokens := expectTokens(t, "(a,\n b)\n",
		token.LParen, token.Name, token.Comma, token.Name, token.RParen, token.Newline, token.EOF)
	lead := tokens[3].Leading
	if len(lead) != 2 || lead[0].Kind != token.TriviaNewline || lead[1].Kind != token.TriviaWhitespace {
		t.Fatalf("newline inside brackets should be trivia: %+v", lead)
	}
	expectTokens(t, "if x:\n  f(\n1)\n  y\n",
		token.KwIf, token.Name, token.Colon, token.Newline,
		token.Indent, token.Name, token.LParen, token.Number, token.RParen, token.Newline,
		token.Name, token.Newline, token.Dedent, token.EOF)
}

func TestBracketErrors(t *testing.T) {
	tok, _ := expectLexError(t, "(]", diag.LexBracketMismatch)
	if tok.Text != "]" || tok.Span.Start != 1 {
		t.Fatalf("mismatch token: %+v", tok)
	}
	expectLexError(t, "a)", diag.LexBracketMismatch)
	expectLexError(t, "[(])", diag.LexBracketMismatch)

	tok, _ = expectLexError(t, "x = [1, {2\n", diag.LexUnclosedBracket)
	if tok.Span.Start != 8 || tok.Span.End != 9 {
		t.Fatalf("unclosed should point at the innermost opener, got %v", tok.Span)
	}
}
