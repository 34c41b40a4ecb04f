package diagfmt

import "fmt"

// PathMode selects how file names appear in rendered diagnostics.
type PathMode uint8

const (
	PathModeAuto     PathMode = iota // относительный внутри BaseDir, иначе короткий
	PathModeAbsolute                 // всегда абсолютный
	PathModeRelative                 // относительно BaseDir
	PathModeBasename                 // только имя файла
)

var pathModeNames = [...]string{
	PathModeAuto:     "auto",
	PathModeAbsolute: "absolute",
	PathModeRelative: "relative",
	PathModeBasename: "basename",
}

func (m PathMode) String() string {
	if int(m) < len(pathModeNames) {
		return pathModeNames[m]
	}
	return fmt.Sprintf("PathMode(%d)", uint8(m))
}

// ParsePathMode accepts the names printed by PathMode.String.
func ParsePathMode(s string) (PathMode, error) {
	for i, name := range pathModeNames {
		if name == s {
			return PathMode(i), nil //nolint:gosec // i < len(pathModeNames)
		}
	}
	return PathModeAuto, fmt.Errorf("unknown path mode %q (want auto|absolute|relative|basename)", s)
}

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color     bool
	Context   int8 // строки контекста вокруг основной
	PathMode  PathMode
	ShowNotes bool
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	IncludePositions bool // добавить line/col
	PathMode         PathMode
	Max              int // обрезка вывода, не Bag
	IncludeNotes     bool
}
