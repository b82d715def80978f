package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"pycst/internal/diag"
	"pycst/internal/diagfmt"
	"pycst/internal/driver"
	"pycst/internal/source"
)

// printDiagnostics печатает диагностики в stderr в человекочитаемом виде.
func printDiagnostics(bag *diag.Bag, fs *source.FileSet) {
	if bag == nil || (!bag.HasErrors() && !bag.HasWarnings()) {
		return
	}
	bag.Sort()
	diagfmt.Pretty(os.Stderr, bag, fs, diagfmt.PrettyOpts{
		Color:     state.color,
		Context:   2,
		ShowNotes: true,
	})
}

// checkSummary - итог check для вывода одной строкой.
type checkSummary struct {
	files   int
	failed  int
	cached  int
	bytes   int64
	tokens  int
	elapsed time.Duration
}

func summarize(fs *source.FileSet, results []driver.FileResult, elapsed time.Duration) checkSummary {
	s := checkSummary{files: len(results), elapsed: elapsed}
	for i := range results {
		r := &results[i]
		if r.Failed() {
			s.failed++
		}
		if r.Cached {
			s.cached++
		}
		s.tokens += r.Tokens
		if f := fs.Get(r.FileID); f != nil && !f.Virtual() {
			s.bytes += int64(len(f.Content))
		}
	}
	return s
}

func (s checkSummary) write(w io.Writer) {
	status := "ok"
	if s.failed > 0 {
		status = fmt.Sprintf("%s failed", humanize.Comma(int64(s.failed)))
	}
	fmt.Fprintf(w, "%s: %s %s, %s, %s tokens in %s",
		status,
		humanize.Comma(int64(s.files)), plural(s.files, "file", "files"),
		humanize.Bytes(uint64(s.bytes)),
		humanize.Comma(int64(s.tokens)),
		s.elapsed.Round(time.Millisecond))
	if s.cached > 0 {
		fmt.Fprintf(w, " (%s cached)", humanize.Comma(int64(s.cached)))
	}
	fmt.Fprintln(w)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
