package project

import (
	"errors"
	"fmt"
	"iter"
	"os"
	"path/filepath"
)

// ConfigFileName is the project configuration file looked up by FindConfig.
const ConfigFileName = "tanfmt.toml"

// ancestors yields dir and then each parent up to the filesystem root.
func ancestors(dir string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for {
			if !yield(dir) {
				return
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				return
			}
			dir = parent
		}
	}
}

func exists(path string) (bool, error) {
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, os.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("failed to stat %q: %w", path, err)
	}
}

// FindConfig walks up from start to the nearest tanfmt.toml. start may name
// a file. The walk does not leave a git checkout: a directory holding .git
// is the last one searched.
func FindConfig(start string) (path string, ok bool, err error) {
	if start == "" {
		start = "."
	}
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	for d := range ancestors(dir) {
		candidate := filepath.Join(d, ConfigFileName)
		found, err := exists(candidate)
		if err != nil || found {
			return candidate, found, err
		}
		if repo, err := exists(filepath.Join(d, ".git")); err != nil || repo {
			return "", false, err
		}
	}
	return "", false, nil
}

// FindProjectRoot returns the directory containing tanfmt.toml, if any.
func FindProjectRoot(start string) (root string, ok bool, err error) {
	configPath, ok, err := FindConfig(start)
	if err != nil || !ok {
		return "", ok, err
	}
	return filepath.Dir(configPath), true, nil
}
