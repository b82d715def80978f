package project

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Config is the contents of pycst.toml.
type Config struct {
	Parse       ParseConfig       `toml:"parse"`
	Check       CheckConfig       `toml:"check"`
	Diagnostics DiagnosticsConfig `toml:"diagnostics"`

	// Path and Root are filled by Load; empty for Default().
	Path string `toml:"-"`
	Root string `toml:"-"`
}

type ParseConfig struct {
	MaxDepth int    `toml:"max_depth"`
	TabSize  uint32 `toml:"tab_size"`
}

type CheckConfig struct {
	Include []string `toml:"include"`
	Exclude []string `toml:"exclude"`
	Jobs    int      `toml:"jobs"`
}

type DiagnosticsConfig struct {
	Max   int    `toml:"max"`
	Color string `toml:"color"`
}

var (
	// ErrUnknownKey indicates a key pycst does not understand.
	ErrUnknownKey = errors.New("unknown key")
	// ErrInvalidValue indicates a key with an out-of-range value.
	ErrInvalidValue = errors.New("invalid value")
)

// Default returns the configuration used when no pycst.toml is found.
func Default() Config {
	return Config{
		Parse: ParseConfig{MaxDepth: 200, TabSize: 8},
		Check: CheckConfig{
			Include: []string{"*.py"},
			Exclude: []string{".git", ".venv", "venv", "__pycache__", "node_modules"},
		},
		Diagnostics: DiagnosticsConfig{Max: 100, Color: "auto"},
	}
}

// Load parses path on top of Default(). Keys that are present are validated;
// absent keys keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, errors.Wrapf(err, "%s: failed to parse TOML", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.Wrapf(ErrUnknownKey, "%s: %s", path, undecoded[0].String())
	}

	invalid := func(key, why string) error {
		return errors.Wrapf(ErrInvalidValue, "%s: [%s] %s", path, key, why)
	}
	if meta.IsDefined("parse", "max_depth") && cfg.Parse.MaxDepth <= 0 {
		return Config{}, invalid("parse.max_depth", "must be positive")
	}
	if meta.IsDefined("parse", "tab_size") && (cfg.Parse.TabSize == 0 || cfg.Parse.TabSize > 16) {
		return Config{}, invalid("parse.tab_size", "must be in 1..16")
	}
	if meta.IsDefined("check", "jobs") && cfg.Check.Jobs < 0 {
		return Config{}, invalid("check.jobs", "must not be negative")
	}
	if meta.IsDefined("check", "include") && len(cfg.Check.Include) == 0 {
		return Config{}, invalid("check.include", "must not be empty")
	}
	for _, pat := range append(append([]string{}, cfg.Check.Include...), cfg.Check.Exclude...) {
		if _, err := filepath.Match(pat, ""); err != nil {
			return Config{}, invalid("check", "bad pattern "+pat)
		}
	}
	if meta.IsDefined("diagnostics", "max") && cfg.Diagnostics.Max <= 0 {
		return Config{}, invalid("diagnostics.max", "must be positive")
	}
	switch strings.ToLower(cfg.Diagnostics.Color) {
	case "auto", "on", "off":
		cfg.Diagnostics.Color = strings.ToLower(cfg.Diagnostics.Color)
	default:
		return Config{}, invalid("diagnostics.color", "expected auto|on|off")
	}

	cfg.Path = path
	cfg.Root = filepath.Dir(path)
	return cfg, nil
}

// Discover loads the pycst.toml governing startDir. Without one it returns
// Default() rooted at the enclosing repository, if any.
func Discover(startDir string) (Config, error) {
	configPath, ok, err := FindConfig(startDir)
	if err != nil {
		return Config{}, err
	}
	if ok {
		return Load(configPath)
	}
	cfg := Default()
	if root, found, err := FindProjectRoot(startDir); err != nil {
		return Config{}, err
	} else if found {
		cfg.Root = root
	}
	return cfg, nil
}

// Selects reports whether the slash-separated path rel is checked:
// no component matches an exclude pattern and the file matches an include pattern.
// Patterns without '/' match a single component, others match the whole path.
func (c CheckConfig) Selects(rel string) bool {
	rel = filepath.ToSlash(rel)
	for _, pat := range c.Exclude {
		if matchPattern(pat, rel, true) {
			return false
		}
	}
	for _, pat := range c.Include {
		if matchPattern(pat, rel, false) {
			return true
		}
	}
	return false
}

// SkipsDir reports whether a directory is excluded as a whole.
func (c CheckConfig) SkipsDir(rel string) bool {
	rel = filepath.ToSlash(rel)
	for _, pat := range c.Exclude {
		if matchPattern(pat, rel, true) {
			return true
		}
	}
	return false
}

func matchPattern(pat, rel string, anyComponent bool) bool {
	if strings.Contains(pat, "/") {
		ok, _ := path.Match(pat, rel)
		return ok
	}
	if !anyComponent {
		ok, _ := path.Match(pat, path.Base(rel))
		return ok
	}
	for _, part := range strings.Split(rel, "/") {
		if ok, _ := path.Match(pat, part); ok {
			return true
		}
	}
	return false
}
