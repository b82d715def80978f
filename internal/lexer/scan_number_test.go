package lexer_test

import (
	"testing"

	"pycst/internal/diag"
	"pycst/internal/token"
)

func TestNumbersValid(t *testing.T) {
	for _, in := range []string{
		"0", "7", "1_000", "0_0",
		"0b1010", "0B1_0", "0o17", "0O7_7", "0xdead_BEEF", "0XfF",
		"3.14", ".5", "1.", "1e10", "1E+10", "1.5e-3", "1_0.0_1", "2j", "1.5J", ".5e1j",
	} {
		tokens := expectTokens(t, in, token.Number, token.Newline, token.EOF)
		if tokens[0].Text != in {
			t.Errorf("number %q lexed as %q", in, tokens[0].Text)
		}
	}
}

func TestNumbersBadGrouping(t *testing.T) {
	cases := []struct {
		in   string
		text string
	}{
		{"0b_1", "0b_"},
		{"0b1__0", "0b1__"},
		{"0b1_", "0b1_"},
		{"0b102", "0b102"},
		{"0o8", "0o8"},
		{"0x", "0x"},
		{"0xfg", "0xfg"},
		{"1__0", "1__"},
		{"1_", "1_"},
		{"1.5_", "1.5_"},
	}
	for _, tc := range cases {
		tok, _ := expectLexError(t, tc.in, diag.LexBadNumber)
		if tok.Text != tc.text {
			t.Errorf("%q: error token text %q, want %q", tc.in, tok.Text, tc.text)
		}
	}
}

func TestNumberFollowedByKeyword(t *testing.T) {
	tokens := expectTokens(t, "1if x else 2",
		token.Number, token.KwIf, token.Name, token.KwElse, token.Number, token.Newline, token.EOF)
	if tokens[0].Text != "1" {
		t.Fatalf("got %q", tokens[0].Text)
	}
	tokens = expectTokens(t, "1else", token.Number, token.KwElse, token.Newline, token.EOF)
	if tokens[0].Text != "1" {
		t.Fatalf("exponent without digits must not be consumed, got %q", tokens[0].Text)
	}
}
