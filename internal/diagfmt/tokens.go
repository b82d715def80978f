package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"pycst/internal/source"
	"pycst/internal/token"
)

// TokenOutput is one token of the JSON dump. Leading carries trivia text, so
// joining leading and text over all tokens gives the input back.
type TokenOutput struct {
	Kind    string         `json:"kind"`
	Text    string         `json:"text,omitempty"`
	Start   uint32         `json:"start"`
	End     uint32         `json:"end"`
	Line    uint32         `json:"line,omitempty"`
	Col     uint32         `json:"col,omitempty"`
	Leading []TriviaOutput `json:"leading,omitempty"`
}

type TriviaOutput struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
}

// eachToken calls fn up to and including the first EOF or Error token.
func eachToken(tokens []token.Token, fn func(i int, tok *token.Token) error) error {
	for i := range tokens {
		if err := fn(i, &tokens[i]); err != nil {
			return err
		}
		if tokens[i].Kind.IsEOF() {
			break
		}
	}
	return nil
}

// triviaSummary renders leading trivia as `Whitespace " ", Comment "# x"`.
func triviaSummary(tok *token.Token) string {
	parts := make([]string, len(tok.Leading))
	for i, tv := range tok.Leading {
		parts[i] = tv.Kind.String() + " " + strconv.Quote(tv.Text)
	}
	return strings.Join(parts, ", ")
}

// FormatTokensPretty prints one token per line: index, position, kind, text
// and the trivia in front of it.
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	return eachToken(tokens, func(i int, tok *token.Token) error {
		start, end := fs.Resolve(tok.Span)
		line := fmt.Sprintf("%4d  %d:%d-%d:%d  %-14s %q", i+1, start.Line, start.Col, end.Line, end.Col, tok.Kind, tok.Text)
		if len(tok.Leading) > 0 {
			line += "  after " + triviaSummary(tok)
		}
		_, err := fmt.Fprintln(w, line)
		return err
	})
}

// FormatTokensTable prints the tokens as a table.
func FormatTokensTable(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	rows := make([][]string, 0, len(tokens))
	_ = eachToken(tokens, func(i int, tok *token.Token) error {
		start, _ := fs.Resolve(tok.Span)
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			fmt.Sprintf("%d:%d", start.Line, start.Col),
			tok.Kind.String(),
			strconv.Quote(tok.Text),
			triviaSummary(tok),
		})
		return nil
	})

	table := tablewriter.NewWriter(w)
	table.Header("#", "Pos", "Kind", "Text", "Leading")
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}

// FormatTokensJSON writes the tokens as a JSON array; line and column are
// filled only when fs is non-nil.
func FormatTokensJSON(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	out := make([]TokenOutput, 0, len(tokens))
	_ = eachToken(tokens, func(_ int, tok *token.Token) error {
		o := TokenOutput{
			Kind:  tok.Kind.String(),
			Text:  tok.Text,
			Start: tok.Span.Start,
			End:   tok.Span.End,
		}
		if fs != nil {
			pos, _ := fs.Resolve(tok.Span)
			o.Line, o.Col = pos.Line, pos.Col
		}
		for _, tv := range tok.Leading {
			o.Leading = append(o.Leading, TriviaOutput{Kind: tv.Kind.String(), Text: tv.Text})
		}
		out = append(out, o)
		return nil
	})

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
