package source

import (
	"path/filepath"
	"testing"
)

func TestRelativePath(t *testing.T) {
	tmp := t.TempDir()
	base := filepath.Join(tmp, "base")

	tests := []struct {
		name   string
		target string
		want   string
	}{
		{"inside", filepath.Join(base, "nested", "file.py"), "nested/file.py"},
		{"escapes base", filepath.Join(tmp, "other", "file.py"), filepath.ToSlash(filepath.Join(tmp, "other", "file.py"))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RelativePath(tt.target, base)
			if err != nil {
				t.Fatalf("RelativePath: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDisplayPath(t *testing.T) {
	fs := NewFileSetWithBase("/home/user/project")
	long := fs.Get(fs.AddVirtual("/home/user/project/src/deeply/nested/main.py", nil))
	short := fs.Get(fs.AddVirtual("src/m.py", nil))
	repl := fs.Get(fs.AddVirtual("<repl:2>", nil))

	tests := []struct {
		file *File
		mode PathMode
		want string
	}{
		{long, PathAbsolute, "/home/user/project/src/deeply/nested/main.py"},
		{long, PathRelative, "src/deeply/nested/main.py"},
		{long, PathBasename, "main.py"},
		{long, PathAuto, "main.py"},
		{short, PathAuto, "src/m.py"},
		{repl, PathAbsolute, "<repl:2>"},
		{repl, PathRelative, "<repl:2>"},
	}
	for _, tt := range tests {
		if got := tt.file.DisplayPath(tt.mode, fs.BaseDir()); got != tt.want {
			t.Errorf("DisplayPath(%q, %d) = %q, want %q", tt.file.Path, tt.mode, got, tt.want)
		}
	}
}
