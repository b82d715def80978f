package format

import (
	"bytes"
	"fmt"

	"pycst/internal/cst"
	"pycst/internal/diag"
	"pycst/internal/parser"
	"pycst/internal/source"
	"pycst/internal/token"
)

// CheckRoundTrip parses sf, prints the tree and compares the result with the original bytes.
// The printed text is parsed again and must yield the same token kinds.
func CheckRoundTrip(sf *source.File, maxDiag int) (ok bool, msg string) {
	bag := diag.NewBag(maxDiag)
	mod, err := parser.ParseFile(sf, parser.Options{Reporter: &diag.BagReporter{Bag: bag}})
	if err != nil {
		return false, "roundtrip: initial parse failed: " + err.Error()
	}

	printed := Bytes(mod, Options{})
	if !bytes.Equal(printed, sf.Content) {
		at := firstDiff(printed, sf.Content)
		return false, fmt.Sprintf("roundtrip: printed text differs from source at byte %d", at)
	}

	fs2 := source.NewFileSetWithBase("")
	fid := fs2.AddVirtual(sf.Path, printed)
	mod2, err := parser.ParseFile(fs2.Get(fid), parser.Options{})
	if err != nil {
		return false, "roundtrip: reparse failed: " + err.Error()
	}
	if !sameKinds(cst.Tokens(mod), cst.Tokens(mod2)) {
		return false, "roundtrip: token kinds differ after reparse"
	}
	if err := cst.CheckSpans(mod); err != nil {
		return false, "roundtrip: " + err.Error()
	}
	return true, "roundtrip: OK"
}

func sameKinds(a, b []token.Token) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Kind != b[i].Kind {
			return false
		}
	}
	return true
}

func firstDiff(a, b []byte) int {
	n := min(len(a), len(b))
	for i := range n {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}
