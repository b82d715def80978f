package diagfmt

import (
	"bytes"
	"testing"

	"pycst/internal/diag"
	"pycst/internal/source"
)

func TestShort(t *testing.T) {
	fs := source.NewFileSetWithBase("/work")
	fileID := fs.AddVirtual("/work/pkg/mod.py", []byte("a\nif x\n    pass\n"))

	bag := diag.NewBag(4)
	bag.Add(diag.NewError(diag.SynExpectColon, source.Span{File: fileID, Start: 6, End: 7}, "expected ':'\nafter condition").
		WithNote(source.Span{File: fileID, Start: 2, End: 4}, "block starts here"))
	bag.Add(diag.New(diag.SevWarning, diag.IOCacheError, source.Span{File: 99}, "cache unavailable"))

	tests := []struct {
		name  string
		notes bool
		want  string
	}{
		{
			name: "without notes",
			want: "pkg/mod.py:2:5: error SYN2004 expected ':' after condition\n" +
				"<unknown>:0:0: warning IO4002 cache unavailable\n",
		},
		{
			name:  "with notes",
			notes: true,
			want: "pkg/mod.py:2:5: error SYN2004 expected ':' after condition\n" +
				"pkg/mod.py:2:1: note SYN2004 block starts here\n" +
				"<unknown>:0:0: warning IO4002 cache unavailable\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := Short(&buf, bag, fs, ShortOpts{PathMode: PathModeRelative, IncludeNotes: tt.notes})
			if err != nil {
				t.Fatalf("Short() error: %v", err)
			}
			if buf.String() != tt.want {
				t.Errorf("got:\n%s\nwant:\n%s", buf.String(), tt.want)
			}
		})
	}
}
