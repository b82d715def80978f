package project

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// ConfigName is the project configuration file looked up by FindConfig.
const ConfigName = "pycst.toml"

// Маркеры корня репозитория: подъём вверх их не пересекает.
var repoMarkers = []string{".git", ".hg"}

// FindConfig looks for pycst.toml in startDir (a file or directory) and its
// parents. The search ends at the first repository root, so a config sitting
// above the checkout is never picked up.
func FindConfig(startDir string) (path string, ok bool, err error) {
	err = walkUp(startDir, func(dir string) (bool, error) {
		candidate := filepath.Join(dir, ConfigName)
		_, statErr := os.Stat(candidate)
		switch {
		case statErr == nil:
			path = candidate
			return true, nil
		case !os.IsNotExist(statErr):
			return true, errors.Wrapf(statErr, "failed to stat %q", candidate)
		}
		return isRepoRoot(dir), nil
	})
	if err != nil {
		return "", false, err
	}
	return path, path != "", nil
}

// FindProjectRoot returns the directory of the governing pycst.toml, or the
// enclosing repository root when there is no config.
func FindProjectRoot(startDir string) (root string, ok bool, err error) {
	configPath, found, err := FindConfig(startDir)
	if err != nil {
		return "", false, err
	}
	if found {
		return filepath.Dir(configPath), true, nil
	}
	err = walkUp(startDir, func(dir string) (bool, error) {
		if isRepoRoot(dir) {
			root = dir
			return true, nil
		}
		return false, nil
	})
	if err != nil {
		return "", false, err
	}
	return root, root != "", nil
}

// walkUp вызывает visit для каталога start и его предков, пока visit не попросит остановиться.
func walkUp(start string, visit func(dir string) (stop bool, err error)) error {
	if start == "" {
		start = "."
	}
	dir, err := filepath.Abs(start)
	if err != nil {
		return errors.Wrap(err, "failed to resolve start directory")
	}
	if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		stop, err := visit(dir)
		if stop || err != nil {
			return err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return nil
		}
		dir = parent
	}
}

func isRepoRoot(dir string) bool {
	for _, marker := range repoMarkers {
		if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
			return true
		}
	}
	return false
}
