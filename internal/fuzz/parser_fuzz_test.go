package fuzztests

import (
	"testing"
	"time"

	"pycst/internal/cst"
	"pycst/internal/diag"
	"pycst/internal/format"
	"pycst/internal/parser"
	"pycst/internal/source"
)

const parseTimeout = 5 * time.Second

func parseInput(input []byte) (*cst.Module, *diag.Bag, error) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("fuzz.py", input))
	bag := diag.NewBag(16)
	mod, err := parser.ParseFile(file, parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	return mod, bag, err
}

// FuzzParserRoundTrip checks that every accepted input prints back unchanged
// with consistent spans, and that every rejected input is reported.
func FuzzParserRoundTrip(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		mod, bag, err := parseInput(input)
		if err != nil {
			if mod != nil {
				t.Fatalf("module returned together with error %v", err)
			}
			if !bag.HasErrors() {
				t.Fatalf("error %v not reported", err)
			}
			return
		}
		if got := format.Source(mod); got != string(input) {
			t.Fatalf("printed tree differs from input\ngot:  %q\nwant: %q", got, input)
		}
		if err := cst.CheckSpans(mod); err != nil {
			t.Fatalf("span invariant: %v", err)
		}
	})
}

// FuzzParserTerminates: каждая ветка грамматики обязана продвигать курсор,
// иначе разбор зависнет. Зависание ловим по таймеру.
func FuzzParserTerminates(f *testing.F) {
	addCorpusSeeds(f)
	for _, s := range []string{
		"if x:\nif y:\n",
		"match x:\n    case\n",
		"def f(*, **):\n",
		"@\n",
		"[[[[[[[[[[[[[[[[[[[[[[[[",
		"x = not not not not not not not not not",
		"with (a as b, c as d\n",
	} {
		f.Add([]byte(s))
	}

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)
		finished := make(chan struct{})
		go func() {
			_, _, _ = parseInput(input)
			close(finished)
		}()
		select {
		case <-finished:
		case <-time.After(parseTimeout):
			t.Fatalf("no result after %v for %d bytes: %.200q", parseTimeout, len(input), input)
		}
	})
}
