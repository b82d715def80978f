package fuzztests

import (
	"strings"
	"testing"

	"pycst/internal/diag"
	"pycst/internal/lexer"
	"pycst/internal/source"
	"pycst/internal/token"
)

const maxFuzzInput = 1 << 16 // 64 KiB

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}

// FuzzLexerTokens checks that the token stream accounts for every input byte:
// without a lexical error the concatenated trivia and token texts equal the
// input, with one the stream is a prefix of the input ending in an Error token.
func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.py", input))

		bag := diag.NewBag(64)
		lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})

		var b strings.Builder
		var last token.Token
		for {
			last = lx.Next()
			b.WriteString(last.Source())
			if last.Kind.IsEOF() {
				break
			}
		}

		got := b.String()
		if lx.Err() == nil {
			if got != string(input) {
				t.Fatalf("tokens do not reproduce input\ngot:  %q\nwant: %q", got, input)
			}
			if bag.Len() != 0 {
				t.Fatalf("diagnostics without lexical error: %v", bag.Items())
			}
			return
		}
		if last.Kind != token.Error {
			t.Fatalf("lexical error %v but last token is %v", lx.Err(), last.Kind)
		}
		if !strings.HasPrefix(string(input), got) {
			t.Fatalf("tokens are not a prefix of input\ngot:  %q\ninput: %q", got, input)
		}
		if !bag.HasErrors() {
			t.Fatalf("lexical error %v not reported", lx.Err())
		}
	})
}
