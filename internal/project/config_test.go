package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	p := filepath.Join(dir, ConfigName)
	if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	p := writeConfig(t, dir, `
[parse]
max_depth = 50

[check]
exclude = ["build"]
jobs = 3

[diagnostics]
color = "OFF"
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Parse.MaxDepth != 50 || cfg.Parse.TabSize != 8 {
		t.Errorf("parse %+v", cfg.Parse)
	}
	if cfg.Check.Jobs != 3 || len(cfg.Check.Exclude) != 1 || cfg.Check.Include[0] != "*.py" {
		t.Errorf("check %+v", cfg.Check)
	}
	if cfg.Diagnostics.Color != "off" || cfg.Diagnostics.Max != 100 {
		t.Errorf("diagnostics %+v", cfg.Diagnostics)
	}
	if cfg.Root != dir {
		t.Errorf("root %q", cfg.Root)
	}
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name string
		body string
		want error
	}{
		{"unknown key", "[parse]\nmax_deep = 3\n", ErrUnknownKey},
		{"zero depth", "[parse]\nmax_depth = 0\n", ErrInvalidValue},
		{"tab too wide", "[parse]\ntab_size = 32\n", ErrInvalidValue},
		{"negative jobs", "[check]\njobs = -1\n", ErrInvalidValue},
		{"empty include", "[check]\ninclude = []\n", ErrInvalidValue},
		{"bad glob", "[check]\nexclude = [\"[\"]\n", ErrInvalidValue},
		{"bad color", "[diagnostics]\ncolor = \"sometimes\"\n", ErrInvalidValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := writeConfig(t, t.TempDir(), tt.body)
			_, err := Load(p)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Load: %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLoadSyntaxError(t *testing.T) {
	p := writeConfig(t, t.TempDir(), "[parse\n")
	if _, err := Load(p); err == nil {
		t.Fatal("expected TOML error")
	}
}

func TestDiscoverWalksUp(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "[check]\njobs = 2\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	cfg, err := Discover(nested)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Check.Jobs != 2 || cfg.Root != root {
		t.Fatalf("cfg %+v", cfg)
	}

	got, ok, err := FindProjectRoot(filepath.Join(nested, "x.py"))
	if err != nil || !ok || got != root {
		t.Fatalf("FindProjectRoot = %q, %v, %v", got, ok, err)
	}
}

func TestFindConfigStopsAtRepoRoot(t *testing.T) {
	outer := t.TempDir()
	writeConfig(t, outer, "[check]\njobs = 9\n")
	repo := filepath.Join(outer, "repo")
	nested := filepath.Join(repo, "pkg")
	if err := os.MkdirAll(filepath.Join(repo, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	if p, ok, err := FindConfig(nested); err != nil || ok {
		t.Fatalf("FindConfig = %q, %v, %v; want nothing past the repo root", p, ok, err)
	}
	root, ok, err := FindProjectRoot(nested)
	if err != nil || !ok || root != repo {
		t.Fatalf("FindProjectRoot = %q, %v, %v", root, ok, err)
	}
	cfg, err := Discover(nested)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Path != "" || cfg.Root != repo || cfg.Check.Jobs == 9 {
		t.Fatalf("cfg %+v", cfg)
	}
}

func TestSelects(t *testing.T) {
	c := Default().Check
	c.Exclude = append(c.Exclude, "gen/*.py", "*_pb2.py")
	tests := []struct {
		rel  string
		want bool
	}{
		{"main.py", true},
		{"pkg/mod.py", true},
		{"pkg/readme.md", false},
		{".venv/lib/site.py", false},
		{"a/__pycache__/x.py", false},
		{"gen/x.py", false},
		{"gen/sub/x.py", true},
		{"api/msg_pb2.py", false},
	}
	for _, tt := range tests {
		if got := c.Selects(tt.rel); got != tt.want {
			t.Errorf("Selects(%q) = %v", tt.rel, got)
		}
	}
	if !c.SkipsDir("x/node_modules") || c.SkipsDir("src") {
		t.Error("SkipsDir")
	}
}

func TestParseDigest(t *testing.T) {
	a := ParseConfig{MaxDepth: 200, TabSize: 8}
	b := ParseConfig{MaxDepth: 100, TabSize: 8}
	if a.Digest() == b.Digest() {
		t.Fatal("different settings share a digest")
	}
	if a.Digest() != (ParseConfig{MaxDepth: 200, TabSize: 8}).Digest() {
		t.Fatal("digest is not deterministic")
	}
	var content Digest
	if Combine(content, a.Digest()) == Combine(content, b.Digest()) {
		t.Fatal("Combine ignores parts")
	}
}
