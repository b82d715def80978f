package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"pycst/internal/driver"
	"pycst/internal/metrics"
	"pycst/internal/project"
	"pycst/internal/source"
	"pycst/internal/version"
)

// execute запускает rootCmd с args и возвращает stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	finishRun(rootCmd)
	return out.String(), err
}

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestParseSourceRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"comments", "# header\nclass A:\n    def f(self, *a, **k) -> None:  # note\n        return [x for x in a if x]\n"},
		{"bom and crlf", "\xEF\xBB\xBFimport os\r\nif os:\r\n    pass\r\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := writeSource(t, t.TempDir(), "m.py", tt.src)
			out, err := execute(t, "parse", "--format", "source", file)
			if err != nil {
				t.Fatal(err)
			}
			if out != tt.src {
				t.Fatalf("source output differs:\n%q\nwant\n%q", out, tt.src)
			}
		})
	}
}

func TestParseRoundTripFlag(t *testing.T) {
	file := writeSource(t, t.TempDir(), "m.py", "x = 1\n")
	out, err := execute(t, "parse", "--roundtrip", file)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "round trip ok") {
		t.Fatalf("unexpected output %q", out)
	}
	// флаги cobra живут между вызовами Execute
	parseCmd.Flags().Set("roundtrip", "false")
}

func TestCheckReportsFailures(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "ok.py", "pass\n")
	writeSource(t, dir, "pkg/bad.py", "def f(:\n    pass\n")

	out, err := execute(t, "check", "--ui", "off", "--format", "json", dir)
	var exit exitError
	if !errors.As(err, &exit) {
		t.Fatalf("err = %v, want exitError", err)
	}
	if !strings.Contains(out, `"code": "SYN`) || !strings.Contains(out, `"count": 1`) {
		t.Fatalf("json output missing syntax diagnostic:\n%s", out)
	}
}

func TestCheckShortFormat(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "bad.py", "if x\n    pass\n")
	t.Cleanup(func() { _ = checkCmd.Flags().Set("min-severity", "info") })

	out, err := execute(t, "check", "--ui", "off", "--format", "short", "--min-severity", "error", dir)
	var exit exitError
	if !errors.As(err, &exit) {
		t.Fatalf("err = %v, want exitError", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 1 || !strings.Contains(lines[0], "bad.py:1:5: error SYN2004") {
		t.Fatalf("short output:\n%s", out)
	}
}

func TestCheckRejectsUnknownSeverity(t *testing.T) {
	t.Cleanup(func() { _ = checkCmd.Flags().Set("min-severity", "info") })
	_, err := execute(t, "check", "--ui", "off", "--format", "short", "--min-severity", "fatal", t.TempDir())
	if err == nil || !strings.Contains(err.Error(), "unknown severity") {
		t.Fatalf("err = %v", err)
	}
}

func TestParseSwitch(t *testing.T) {
	tests := []struct {
		in      string
		want    switchMode
		wantErr bool
	}{
		{"", switchAuto, false},
		{"AUTO", switchAuto, false},
		{" on ", switchOn, false},
		{"never", switchOff, false},
		{"sometimes", switchAuto, true},
	}
	for _, tt := range tests {
		got, err := parseSwitch("--ui", tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("parseSwitch(%q) = %v, %v", tt.in, got, err)
		}
	}
	if !switchOn.resolve(nil) || switchOff.resolve(nil) {
		t.Fatal("explicit modes must not look at the file")
	}
}

func TestNeedsMore(t *testing.T) {
	tests := []struct {
		src  string
		last string
		want bool
	}{
		{"x = 1\n", "x = 1", false},
		{"if x:\n", "if x:", true},
		{"if x:  # why\n", "if x:  # why", true},
		{"if x:\n    y()\n", "    y()", true},
		{"if x:\n    y()\n\n", "", false},
		{"@dec\n", "@dec", true},
		{"f(1,\n", "f(1,", true},
		{"f(1,\n  2)\n", "  2)", false},
		{"s = \"\"\"doc\n", "s = \"\"\"doc", true},
		{"s = 'a:'\n", "s = 'a:'", false},
		{"x = 1 + \\\n", "x = 1 + \\", true},
		{"s = 'abc\n", "s = 'abc", false},
	}
	for _, tt := range tests {
		if got := needsMore(tt.src, tt.last); got != tt.want {
			t.Errorf("needsMore(%q) = %v, want %v", tt.src, got, tt.want)
		}
	}
}

func TestStripComment(t *testing.T) {
	tests := []struct{ in, want string }{
		{"x = 1  # c", "x = 1"},
		{"s = '#no'", "s = '#no'"},
		{`s = "a\"#" # c`, `s = "a\"#"`},
		{"# only", ""},
	}
	for _, tt := range tests {
		if got := stripComment(tt.in); got != tt.want {
			t.Errorf("stripComment(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLogLevel(t *testing.T) {
	tests := []struct {
		v    int
		want zerolog.Level
	}{
		{0, zerolog.WarnLevel},
		{1, zerolog.InfoLevel},
		{2, zerolog.DebugLevel},
		{5, zerolog.TraceLevel},
	}
	for _, tt := range tests {
		if got := logLevel(tt.v); got != tt.want {
			t.Errorf("logLevel(%d) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestApplyOverridesFromEnv(t *testing.T) {
	t.Setenv("PYCST_MAX_DIAGNOSTICS", "7")
	t.Setenv("PYCST_TAB_SIZE", "4")

	cfg := project.Default()
	applyOverrides(&cfg)
	if cfg.Diagnostics.Max != 7 {
		t.Errorf("max diagnostics = %d, want 7", cfg.Diagnostics.Max)
	}
	if cfg.Parse.TabSize != 4 {
		t.Errorf("tab size = %d, want 4", cfg.Parse.TabSize)
	}
	if cfg.Parse.MaxDepth != project.Default().Parse.MaxDepth {
		t.Errorf("max depth changed without override: %d", cfg.Parse.MaxDepth)
	}
}

func TestSummaryLine(t *testing.T) {
	fs := source.NewFileSet()
	a := fs.Add("a.py", bytes.Repeat([]byte("x"), 1500), 0)
	b := fs.Add("b.py", []byte("y\n"), 0)
	results := []driver.FileResult{
		{FileID: a, Result: metrics.ResultOK, Tokens: 1200, Cached: true},
		{FileID: b, Result: metrics.ResultSyntaxError, Tokens: 2},
	}

	var buf bytes.Buffer
	summarize(fs, results, 1234*time.Millisecond).write(&buf)
	want := "1 failed: 2 files, 1.5 kB, 1,202 tokens in 1.234s (1 cached)\n"
	if buf.String() != want {
		t.Fatalf("summary = %q, want %q", buf.String(), want)
	}

	// stdin и прочие виртуальные файлы в размер не входят
	stdin := fs.AddVirtual("<stdin>", bytes.Repeat([]byte("z"), 4096))
	buf.Reset()
	summarize(fs, []driver.FileResult{{FileID: stdin, Result: metrics.ResultOK, Tokens: 3}}, time.Second).write(&buf)
	want = "ok: 1 file, 0 B, 3 tokens in 1s\n"
	if buf.String() != want {
		t.Fatalf("summary = %q, want %q", buf.String(), want)
	}
}

func TestRenderVersionJSON(t *testing.T) {
	var buf bytes.Buffer
	info := version.Info{Version: "1.0.0", Built: "2024-01-01"}
	if err := renderVersionJSON(&buf, info, versionFields{commit: true}); err != nil {
		t.Fatal(err)
	}
	got := buf.String()
	if !strings.Contains(got, `"tool": "pycst"`) || !strings.Contains(got, `"git_commit": "unknown"`) {
		t.Fatalf("unexpected payload:\n%s", got)
	}
	if strings.Contains(got, "build_date") {
		t.Fatalf("build_date must be omitted:\n%s", got)
	}
}

func TestCheckTestdata(t *testing.T) {
	out, err := execute(t, "check", "--ui", "off", "--format", "sarif", filepath.Join("..", "..", "testdata"))
	if err != nil {
		t.Fatalf("check failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, `"executionSuccessful": true`) {
		t.Fatalf("sarif output:\n%s", out)
	}
}
