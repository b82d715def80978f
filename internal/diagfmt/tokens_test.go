package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"pycst/internal/lexer"
	"pycst/internal/source"
	"pycst/internal/token"
)

func lexAll(t *testing.T, src string) ([]token.Token, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.py", []byte(src))
	lx := lexer.New(fs.Get(id), lexer.Options{})
	var toks []token.Token
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind.IsEOF() {
			break
		}
	}
	return toks, fs
}

func TestFormatTokensPretty(t *testing.T) {
	toks, fs := lexAll(t, "x = 1\n")
	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, toks, fs); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != len(toks) {
		t.Fatalf("%d lines for %d tokens:\n%s", len(lines), len(toks), buf.String())
	}
	if !strings.Contains(lines[1], `"="`) || !strings.Contains(lines[1], `after Whitespace " "`) {
		t.Errorf("line for '=': %q", lines[1])
	}
	if !strings.Contains(lines[0], "1:1-1:2") {
		t.Errorf("line for 'x': %q", lines[0])
	}
}

func TestFormatTokensJSONIsLossless(t *testing.T) {
	src := "# c\nif a:  \\\n  b\n"
	toks, fs := lexAll(t, src)
	var buf bytes.Buffer
	if err := FormatTokensJSON(&buf, toks, fs); err != nil {
		t.Fatal(err)
	}
	var out []TokenOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(out) != len(toks) {
		t.Fatalf("got %d tokens, want %d", len(out), len(toks))
	}
	if out[0].Text != "if" || len(out[0].Leading) != 2 || out[0].Leading[0].Text != "# c" {
		t.Errorf("first token %+v", out[0])
	}
	if out[0].Line != 2 || out[0].Col != 1 {
		t.Errorf("first token at %d:%d", out[0].Line, out[0].Col)
	}
	var rebuilt strings.Builder
	for _, o := range out {
		for _, tv := range o.Leading {
			rebuilt.WriteString(tv.Text)
		}
		rebuilt.WriteString(o.Text)
	}
	if rebuilt.String() != src {
		t.Errorf("rebuilt %q, want %q", rebuilt.String(), src)
	}
	if out[len(out)-1].Kind != token.EOF.String() {
		t.Errorf("last token %+v", out[len(out)-1])
	}
}

func TestFormatTokensTable(t *testing.T) {
	toks, fs := lexAll(t, "a.b\n")
	var buf bytes.Buffer
	if err := FormatTokensTable(&buf, toks, fs); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(strings.ToUpper(out), "KIND") {
		t.Errorf("table lacks header:\n%s", out)
	}
	for _, want := range []string{"Name", `"a"`, "1:2"} {
		if !strings.Contains(out, want) {
			t.Errorf("table lacks %q:\n%s", want, out)
		}
	}
}
