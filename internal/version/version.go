package version

import (
	"runtime/debug"
	"strings"

	"github.com/fatih/color"
)

// Version information for the pycst CLI.
// These variables can be overridden at build time via -ldflags.
var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// GitMessage is an optional git commit message.
	GitMessage = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)
)

// Colored раскрашивает major.minor.patch; суффикс остаётся как есть.
// Respects color.NoColor.
func Colored() string {
	core, suffix := Version, ""
	if i := strings.IndexAny(core, "-+"); i >= 0 {
		core, suffix = core[:i], core[i:]
	}
	parts := strings.SplitN(core, ".", 3)
	if len(parts) != 3 {
		return Version
	}
	return versionMajorColor.Sprint(parts[0]) + "." +
		versionMinorColor.Sprint(parts[1]) + "." +
		versionPatchColor.Sprint(parts[2]) + suffix
}

// ShortCommit returns the first 12 characters of the commit hash.
func ShortCommit() string {
	c := commit()
	if len(c) > 12 {
		return c[:12]
	}
	return c
}

// Info is the build metadata shown by `pycst version`.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"git_commit,omitempty"`
	Message string `json:"git_message,omitempty"`
	Built   string `json:"build_date,omitempty"`
}

// Current collects the ldflags values. Без -ldflags коммит и дата берутся из
// vcs-настроек сборки, если go build их записал.
func Current() Info {
	info := Info{
		Version: strings.TrimSpace(Version),
		Commit:  commit(),
		Message: strings.TrimSpace(GitMessage),
		Built:   strings.TrimSpace(BuildDate),
	}
	if info.Version == "" {
		info.Version = "dev"
	}
	if info.Built == "" {
		info.Built = buildSetting("vcs.time")
	}
	return info
}

func commit() string {
	if c := strings.TrimSpace(GitCommit); c != "" {
		return c
	}
	return buildSetting("vcs.revision")
}

func buildSetting(key string) string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range bi.Settings {
		if s.Key == key {
			return s.Value
		}
	}
	return ""
}
