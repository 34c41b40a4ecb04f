package diagfmt

import (
	"path/filepath"

	"tanfmt/internal/source"
)

// autoPathLimit is the longest absolute path PathModeAuto prints unchanged.
const autoPathLimit = 48

func displayPath(f *source.File, fs *source.FileSet, mode PathMode) string {
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(f.Path); err == nil {
			return filepath.ToSlash(abs)
		}
		return f.Path
	case PathModeRelative:
		return f.DisplayPath(fs.BaseDir())
	case PathModeBasename:
		return source.BaseName(f.Path)
	}

	// auto: виртуальные и относительные пути как есть
	if f.Flags&source.FileVirtual != 0 || !filepath.IsAbs(f.Path) {
		return f.Path
	}
	if rel, err := source.RelativePath(f.Path, fs.BaseDir()); err == nil && !filepath.IsAbs(rel) {
		return rel
	}
	if len(f.Path) > autoPathLimit {
		return source.BaseName(f.Path)
	}
	return f.Path
}
