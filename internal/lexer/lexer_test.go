package lexer_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"pycst/internal/diag"
	"pycst/internal/lexer"
	"pycst/internal/source"
	"pycst/internal/token"
)

// testReporter собирает все диагностики, полученные от лексера
type testReporter struct {
	diagnostics []diag.Diagnostic
}

func (r *testReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	r.diagnostics = append(r.diagnostics, diag.Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Primary:  primary,
		Notes:    notes,
	})
}

func makeTestLexer(input string) (*lexer.Lexer, *testReporter) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.py", []byte(input))
	reporter := &testReporter{}
	return lexer.New(fs.Get(fileID), lexer.Options{Reporter: reporter}), reporter
}

// collectAllTokens собирает все токены до EOF или Error включительно
func collectAllTokens(lx *lexer.Lexer) []token.Token {
	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind.IsEOF() {
			return tokens
		}
	}
}

func kindsOf(tokens []token.Token) []token.Kind {
	kinds := make([]token.Kind, len(tokens))
	for i, tok := range tokens {
		kinds[i] = tok.Kind
	}
	return kinds
}

func tokensToString(tokens []token.Token) string {
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = fmt.Sprintf("%s(%q)", tok.Kind, tok.Text)
	}
	return strings.Join(parts, " ")
}

// expectTokens проверяет полную последовательность видов токенов, включая Newline и EOF
func expectTokens(t *testing.T, input string, expected ...token.Kind) []token.Token {
	t.Helper()
	lx, reporter := makeTestLexer(input)
	tokens := collectAllTokens(lx)
	got := kindsOf(tokens)
	if len(got) != len(expected) {
		t.Fatalf("input %q: expected %d tokens, got %d\ntokens: %s\ndiagnostics: %v",
			input, len(expected), len(got), tokensToString(tokens), reporter.diagnostics)
	}
	for i := range got {
		if got[i] != expected[i] {
			t.Fatalf("input %q: token %d: expected %v, got %v\ntokens: %s",
				input, i, expected[i], got[i], tokensToString(tokens))
		}
	}
	return tokens
}

func expectLexError(t *testing.T, input string, code diag.Code) (token.Token, *lexer.Error) {
	t.Helper()
	lx, reporter := makeTestLexer(input)
	tokens := collectAllTokens(lx)
	last := tokens[len(tokens)-1]
	if last.Kind != token.Error {
		t.Fatalf("input %q: expected Error token, got %s", input, tokensToString(tokens))
	}
	var lexErr *lexer.Error
	if !errors.As(lx.Err(), &lexErr) {
		t.Fatalf("input %q: Err() = %v, want *lexer.Error", input, lx.Err())
	}
	if lexErr.Code != code {
		t.Fatalf("input %q: code %s, want %s (%s)", input, lexErr.Code.ID(), code.ID(), lexErr.Msg)
	}
	if len(reporter.diagnostics) != 1 || reporter.diagnostics[0].Code != code {
		t.Fatalf("input %q: expected one reported %s, got %v", input, code.ID(), reporter.diagnostics)
	}
	if again := lx.Next(); again.Kind != token.Error || again.Span != last.Span {
		t.Fatalf("input %q: error is not sticky, got %s", input, again.Kind)
	}
	return last, lexErr
}

func TestPlusAssignScenario(t *testing.T) {
	tokens := expectTokens(t, "+=", token.PlusAssign, token.Newline, token.EOF)
	tok := tokens[0]
	if tok.Span.Start != 0 || tok.Span.End != 2 || tok.Text != "+=" {
		t.Fatalf("PlusAssign: span %v text %q", tok.Span, tok.Text)
	}
	if nl := tokens[1]; !nl.Span.Empty() || nl.Span.Start != 2 || nl.Text != "" {
		t.Fatalf("synthetic Newline: span %v text %q", nl.Span, nl.Text)
	}
}

func TestOperatorsMaximalMunch(t *testing.T) {
	cases := []struct {
		in   string
		want []token.Kind
	}{
		{"**=", []token.Kind{token.DoubleStarAssign}},
		{"** *= *", []token.Kind{token.DoubleStar, token.StarAssign, token.Star}},
		{"***", []token.Kind{token.DoubleStar, token.Star}},
		{"-> -= -", []token.Kind{token.Arrow, token.MinusAssign, token.Minus}},
		{"//= // /= /", []token.Kind{token.DoubleSlashAssign, token.DoubleSlash, token.SlashAssign, token.Slash}},
		{"<<= << <= <", []token.Kind{token.ShlAssign, token.Shl, token.LtEq, token.Lt}},
		{">>= >> >= >", []token.Kind{token.ShrAssign, token.Shr, token.GtEq, token.Gt}},
		{"== = != :=", []token.Kind{token.EqEq, token.Assign, token.NotEq, token.ColonAssign}},
		{"%= % @= @", []token.Kind{token.PercentAssign, token.Percent, token.AtAssign, token.At}},
		{"&= & |= | ^= ^ ~", []token.Kind{token.AmpAssign, token.Amp, token.PipeAssign, token.Pipe, token.CaretAssign, token.Caret, token.Tilde}},
		{"~=", []token.Kind{token.Tilde, token.Assign}},
		{"... . ..", []token.Kind{token.Ellipsis, token.Dot, token.Dot, token.Dot}},
		{", ; :", []token.Kind{token.Comma, token.Semicolon, token.Colon}},
		{"a.b", []token.Kind{token.Name, token.Dot, token.Name}},
	}
	for _, tc := range cases {
		want := append(append([]token.Kind{}, tc.want...), token.Newline, token.EOF)
		expectTokens(t, tc.in, want...)
	}
}

func TestBangOnlyInNotEq(t *testing.T) {
	tok, err := expectLexError(t, "a ! b", diag.LexUnknownChar)
	if tok.Span.Start != 2 || tok.Span.End != 3 {
		t.Fatalf("span %v", tok.Span)
	}
	if err.Offset() != 2 {
		t.Fatalf("offset %d", err.Offset())
	}
}

func TestInvalidCharacters(t *testing.T) {
	for _, in := range []string{"$", "a ? b", "x = `y`", "€"} {
		expectLexError(t, in, diag.LexUnknownChar)
	}
}

func TestIdentifiersAndKeywords(t *testing.T) {
	tokens := expectTokens(t, "foo _bar café None match if",
		token.Name, token.Name, token.Name, token.KwNone, token.Name, token.KwIf, token.Newline, token.EOF)
	if tokens[2].Text != "café" {
		t.Fatalf("unicode name: %q", tokens[2].Text)
	}
	if !tokens[4].IsSoft(token.SoftMatch) {
		t.Fatal("match should be a soft keyword Name")
	}
}

func TestIdentifierNormalization(t *testing.T) {
	tokens := expectTokens(t, "ﬁle = 1", token.Name, token.Assign, token.Number, token.Newline, token.EOF)
	if tokens[0].Text != "ﬁle" || tokens[0].Value() != "file" {
		t.Fatalf("text %q value %q", tokens[0].Text, tokens[0].Value())
	}
}

func TestNewlineStyles(t *testing.T) {
	tokens := expectTokens(t, "a\r\nb\rc\n",
		token.Name, token.Newline, token.Name, token.Newline, token.Name, token.Newline, token.EOF)
	styles := []token.NewlineStyle{token.CRLF, token.CR, token.LF}
	for i, idx := range []int{1, 3, 5} {
		if got := token.StyleOf(tokens[idx].Text); got != styles[i] {
			t.Errorf("newline %d: got %v, want %v", i, got, styles[i])
		}
	}
}

func TestLeadingTriviaAtEdges(t *testing.T) {
	tokens := expectTokens(t, "# head\nx  # tail", token.Name, token.Newline, token.EOF)

	x := tokens[0]
	if len(x.Leading) != 2 || x.Leading[0].Kind != token.TriviaComment || x.Leading[1].Kind != token.TriviaNewline {
		t.Fatalf("leading of x: %+v", x.Leading)
	}
	nl := tokens[1]
	if nl.Span.Start != 8 || !nl.Span.Empty() || len(nl.Leading) != 0 {
		t.Fatalf("synthetic newline: %+v", nl)
	}
	eof := tokens[2]
	if eof.Span.Start != 16 || len(eof.Leading) != 2 ||
		eof.Leading[0].Text != "  " || eof.Leading[1].Text != "# tail" {
		t.Fatalf("EOF trivia: %+v", eof)
	}
	if again, _ := makeTestLexer(""); again.Next().Kind != token.EOF {
		t.Fatal("empty input should produce EOF")
	}
}

func TestEOFRepeats(t *testing.T) {
	lx, _ := makeTestLexer("x\n")
	collectAllTokens(lx)
	for range 3 {
		if tok := lx.Next(); tok.Kind != token.EOF || len(tok.Leading) != 0 {
			t.Fatalf("expected bare EOF, got %+v", tok)
		}
	}
	if lx.Err() != nil {
		t.Fatalf("unexpected error %v", lx.Err())
	}
}

func TestPeekAndPeek2(t *testing.T) {
	lx, _ := makeTestLexer("type X = int")
	if p := lx.Peek(); !p.IsSoft(token.SoftType) {
		t.Fatalf("Peek: %s", p.Kind)
	}
	if p := lx.Peek2(); p.Text != "X" {
		t.Fatalf("Peek2: %q", p.Text)
	}
	if n := lx.Next(); n.Text != "type" {
		t.Fatalf("Next: %q", n.Text)
	}
	if p := lx.Peek2(); p.Kind != token.Assign {
		t.Fatalf("Peek2 after Next: %s %q", p.Kind, p.Text)
	}
	if n := lx.Next(); n.Text != "X" {
		t.Fatalf("Next: %q", n.Text)
	}
}

func TestUnreadReplaysTokens(t *testing.T) {
	lx, _ := makeTestLexer("a - b\n")
	a, minus := lx.Next(), lx.Next()
	if peek := lx.Peek(); peek.Text != "b" {
		t.Fatalf("Peek: %q", peek.Text)
	}
	lx.Unread(a, minus)
	var got []string
	for tok := lx.Next(); tok.Kind != token.EOF; tok = lx.Next() {
		got = append(got, tok.Kind.String())
	}
	want := []string{token.Name.String(), token.Minus.String(), token.Name.String(), token.Newline.String()}
	if strings.Join(got, " ") != strings.Join(want, " ") {
		t.Fatalf("after Unread: %v, want %v", got, want)
	}
	lx.Unread()
	if tok := lx.Next(); tok.Kind != token.EOF {
		t.Fatalf("empty Unread changed the stream: %s", tok.Kind)
	}
}

func TestLineContinuation(t *testing.T) {
	tokens := expectTokens(t, "x = 1 + \\\n  2\n",
		token.Name, token.Assign, token.Number, token.Plus, token.Number, token.Newline, token.EOF)
	lead := tokens[4].Leading
	if len(lead) != 3 || lead[1].Kind != token.TriviaContinuation || lead[1].Text != "\\\n" {
		t.Fatalf("continuation trivia: %+v", lead)
	}
	if lead[1].Newline() != token.LF {
		t.Fatalf("continuation style %v", lead[1].Newline())
	}
	expectLexError(t, "x \\ y", diag.LexBadContinuation)
	expectLexError(t, "x \\", diag.LexBadContinuation)
}

func TestTokenize(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.py", []byte("a = (1,\n 2)\n"))
	toks, err := lexer.Tokenize(fs.Get(id), lexer.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(toks) != 9 || toks[len(toks)-1].Kind != token.EOF {
		t.Fatalf("got %s", tokensToString(toks))
	}

	id = fs.AddVirtual("bad.py", []byte("a = (1]\n"))
	toks, err = lexer.Tokenize(fs.Get(id), lexer.Options{})
	var lexErr *lexer.Error
	if !errors.As(err, &lexErr) || lexErr.Code != diag.LexBracketMismatch {
		t.Fatalf("expected bracket mismatch, got %v", err)
	}
	if toks[len(toks)-1].Kind != token.Error {
		t.Fatal("Tokenize should end with the Error token")
	}
}
