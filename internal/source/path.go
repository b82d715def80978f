package source

import (
	"path/filepath"
	"strings"
)

// PathMode selects how DisplayPath renders a file path.
type PathMode uint8

const (
	PathAuto PathMode = iota // as given when short or relative, else the base name
	PathAbsolute
	PathRelative // against the base dir; absolute when it would leave it
	PathBasename
)

// DisplayPath renders f.Path for output. Names in angle brackets such as
// "<repl:3>" are not paths and come back unchanged.
func (f *File) DisplayPath(mode PathMode, baseDir string) string {
	if strings.HasPrefix(f.Path, "<") {
		return f.Path
	}
	switch mode {
	case PathAbsolute:
		if abs, err := filepath.Abs(f.Path); err == nil {
			return normalizePath(abs)
		}
	case PathRelative:
		if rel, err := RelativePath(f.Path, baseDir); err == nil {
			return rel
		}
	case PathBasename:
		return filepath.Base(f.Path)
	case PathAuto:
		if len(f.Path) >= 40 && filepath.IsAbs(f.Path) {
			return filepath.Base(f.Path)
		}
	}
	return f.Path
}

// RelativePath returns path relative to baseDir, or its absolute form when
// the relative one would start with "..".
func RelativePath(path, baseDir string) (string, error) {
	rel, err := filepath.Rel(baseDir, path)
	if err != nil {
		return "", err
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		abs, err := filepath.Abs(path)
		if err != nil {
			return "", err
		}
		return normalizePath(abs), nil
	}
	return normalizePath(rel), nil
}

// normalizePath gives one spelling per path so diagnostics diff cleanly
// across platforms.
func normalizePath(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}
