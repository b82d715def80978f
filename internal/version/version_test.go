package version

import (
	"regexp"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestVersion_DefaultValues(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
}

func TestColored(t *testing.T) {
	origVersion, origNoColor := Version, color.NoColor
	defer func() { Version, color.NoColor = origVersion, origNoColor }()

	tests := []struct {
		version string
		noColor bool
		want    string
	}{
		{"1.2.3", true, "1.2.3"},
		{"0.1.0-dev", true, "0.1.0-dev"},
		{"1.2.3+build.7", true, "1.2.3+build.7"},
		{"nightly", false, "nightly"},
		{"1.2", false, "1.2"},
	}
	for _, tt := range tests {
		Version = tt.version
		color.NoColor = tt.noColor
		if got := Colored(); got != tt.want {
			t.Errorf("Colored() for %q (noColor=%v) = %q, want %q", tt.version, tt.noColor, got, tt.want)
		}
	}

	Version = "1.2.3-rc1"
	color.NoColor = false
	got := Colored()
	if !strings.HasPrefix(got, "\x1b[33;1m1") || !strings.HasSuffix(got, "-rc1") {
		t.Fatalf("Colored() = %q", got)
	}
	if plain := ansi.ReplaceAllString(got, ""); plain != Version {
		t.Fatalf("stripped = %q, want %q", plain, Version)
	}
}

var ansi = regexp.MustCompile("\x1b\\[[0-9;]*m")

func TestShortCommit(t *testing.T) {
	orig := GitCommit
	defer func() { GitCommit = orig }()

	tests := []struct {
		commit string
		want   string
	}{
		{"", ""},
		{"abc123", "abc123"},
		{"0123456789abcdef0123", "0123456789ab"},
		{"  abc  ", "abc"},
	}
	for _, tt := range tests {
		GitCommit = tt.commit
		if got := ShortCommit(); got != tt.want {
			t.Errorf("ShortCommit(%q) = %q, want %q", tt.commit, got, tt.want)
		}
	}
}

func TestCurrentPrefersLdflags(t *testing.T) {
	origV, origC, origD := Version, GitCommit, BuildDate
	defer func() { Version, GitCommit, BuildDate = origV, origC, origD }()

	Version, GitCommit, BuildDate = "  ", " deadbeef ", "2024-05-01"
	info := Current()
	if info.Version != "dev" || info.Commit != "deadbeef" || info.Built != "2024-05-01" {
		t.Fatalf("Current() = %+v", info)
	}
}
