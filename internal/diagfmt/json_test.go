package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"pycst/internal/diag"
	"pycst/internal/source"
)

func decodeJSON(t *testing.T, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	t.Helper()
	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, opts); err != nil {
		t.Fatalf("JSON() error: %v", err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	return out
}

func TestJSONFields(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.py", []byte("def main():\n    x = \"unterminated\n"))
	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.LexUnterminatedString, source.Span{File: fileID, Start: 20, End: 33}, "unterminated string literal").
		WithNote(source.Span{File: fileID, Start: 0, End: 3}, "inside this def"))

	tests := []struct {
		name      string
		opts      JSONOpts
		wantLine  uint32
		wantNotes int
	}{
		{"positions and notes", JSONOpts{IncludePositions: true, IncludeNotes: true, PathMode: PathModeBasename}, 2, 1},
		{"bytes only", JSONOpts{PathMode: PathModeBasename}, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := decodeJSON(t, bag, fs, tt.opts)
			if out.Count != 1 || out.Total != 1 || out.Errors != 1 || out.Warnings != 0 {
				t.Fatalf("counters %+v", out)
			}
			d := out.Diagnostics[0]
			if d.Severity != "ERROR" || d.Code != "LEX1002" || d.Title == "" {
				t.Errorf("header %+v", d)
			}
			if d.Location.File != "test.py" || d.Location.StartByte != 20 || d.Location.EndByte != 33 {
				t.Errorf("location %+v", d.Location)
			}
			if d.Location.StartLine != tt.wantLine {
				t.Errorf("start_line %d, want %d", d.Location.StartLine, tt.wantLine)
			}
			if tt.wantLine != 0 && d.Location.StartCol != 9 {
				t.Errorf("start_col %d, want 9", d.Location.StartCol)
			}
			if len(d.Notes) != tt.wantNotes {
				t.Errorf("notes %+v", d.Notes)
			}
		})
	}
}

func TestJSONMaxKeepsTotals(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.py", []byte("test content"))
	bag := diag.NewBag(10)
	for i := range 5 {
		sev := diag.SevError
		if i%2 == 1 {
			sev = diag.SevWarning
		}
		bag.Add(diag.New(sev, diag.LexUnknownChar, source.Span{File: fileID, Start: uint32(i), End: uint32(i + 1)}, "bad"))
	}

	out := decodeJSON(t, bag, fs, JSONOpts{Max: 3})
	if out.Count != 3 || len(out.Diagnostics) != 3 {
		t.Errorf("count %d, entries %d, want 3", out.Count, len(out.Diagnostics))
	}
	if out.Total != 5 || out.Errors != 3 || out.Warnings != 2 {
		t.Errorf("totals %+v", out)
	}
}

func TestJSONEmptyBag(t *testing.T) {
	var buf bytes.Buffer
	if err := JSON(&buf, diag.NewBag(1), source.NewFileSet(), JSONOpts{}); err != nil {
		t.Fatal(err)
	}
	var raw map[string]any
	if err := json.Unmarshal(buf.Bytes(), &raw); err != nil {
		t.Fatal(err)
	}
	if list, ok := raw["diagnostics"].([]any); !ok || len(list) != 0 {
		t.Errorf("diagnostics must be an empty array, got %v", raw["diagnostics"])
	}
}

func TestJSONPathModes(t *testing.T) {
	fs := source.NewFileSetWithBase("/home/user/project")
	fileID := fs.AddVirtual("/home/user/project/src/main.py", []byte("test"))
	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.LexUnknownChar, source.Span{File: fileID, Start: 0, End: 1}, "bad"))

	tests := []struct {
		mode PathMode
		want string
	}{
		{PathModeAbsolute, "/home/user/project/src/main.py"},
		{PathModeRelative, "src/main.py"},
		{PathModeBasename, "main.py"},
	}
	for _, tt := range tests {
		out := decodeJSON(t, bag, fs, JSONOpts{PathMode: tt.mode})
		if got := out.Diagnostics[0].Location.File; got != tt.want {
			t.Errorf("mode %d: file %q, want %q", tt.mode, got, tt.want)
		}
	}
}
