package driver

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
)

// ErrNoSourceFiles is returned when the given paths contain no Tan files.
var ErrNoSourceFiles = errors.New("no source files found")

// FileFilter selects files when walking directories.
type FileFilter struct {
	Extensions []string // по умолчанию .tan
	Exclude    []string // имена директорий
}

func (f FileFilter) matches(path string) bool {
	exts := f.Extensions
	if len(exts) == 0 {
		exts = []string{".tan"}
	}
	lower := strings.ToLower(path)
	for _, ext := range exts {
		if strings.HasSuffix(lower, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}

func (f FileFilter) excluded(name string) bool {
	if slices.Contains(f.Exclude, name) {
		return true
	}
	for _, pattern := range f.Exclude {
		if ok, _ := filepath.Match(pattern, name); ok {
			return true
		}
	}
	return false
}

// CollectSourceFiles expands paths into a sorted, de-duplicated file list.
// Files named explicitly are always kept; directories are walked for files
// matching the filter, skipping excluded directory names.
func CollectSourceFiles(ctx context.Context, paths []string, filter FileFilter) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})
	addFile := func(path string) {
		path = filepath.Clean(path)
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			addFile(p)
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if d.IsDir() {
				if path != p && filter.excluded(d.Name()) {
					return filepath.SkipDir
				}
				return nil
			}
			if filter.matches(path) {
				addFile(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	return files, nil
}
