package diagfmt

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"pycst/internal/diag"
	"pycst/internal/source"
)

// ShortOpts configures the one-line-per-diagnostic output.
type ShortOpts struct {
	PathMode     PathMode
	IncludeNotes bool
}

// Short writes each diagnostic as "path:line:col: severity CODE message", the
// form editors and grep understand. Notes follow their diagnostic with
// severity "note". Order is the bag's order.
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts ShortOpts) error {
	bw := bufio.NewWriter(w)
	for _, d := range bag.Items() {
		writeShortLine(bw, fs, opts.PathMode, d.Primary, d.Severity.Label(), d.Code, d.Message)
		if !opts.IncludeNotes {
			continue
		}
		for _, n := range d.Notes {
			writeShortLine(bw, fs, opts.PathMode, n.Span, "note", d.Code, n.Msg)
		}
	}
	return bw.Flush()
}

func writeShortLine(w *bufio.Writer, fs *source.FileSet, mode PathMode, span source.Span, label string, code diag.Code, msg string) {
	path := "<unknown>"
	var line, col uint32
	if fs != nil {
		if f := fs.Get(span.File); f != nil {
			path = formatPath(f, fs, mode)
			start, _ := fs.Resolve(span)
			line, col = start.Line, start.Col
		}
	}
	fmt.Fprintf(w, "%s:%d:%d: %s %s %s\n", path, line, col, label, code.ID(), oneLine(msg))
}

func oneLine(msg string) string {
	return strings.TrimSpace(strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ").Replace(msg))
}
