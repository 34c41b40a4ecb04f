package dialect

import (
	"fmt"
	"strings"
)

// Dialect is a formatting profile.
type Dialect uint8

const (
	Code Dialect = iota
	Data
	Html
	Css

	dialectCount
)

func (d Dialect) String() string {
	switch d {
	case Code:
		return "code"
	case Data:
		return "data"
	case Html:
		return "html"
	case Css:
		return "css"
	default:
		return "unknown"
	}
}

func (d Dialect) GoString() string {
	return fmt.Sprintf("Dialect(%s)", d.String())
}

// Parse accepts a dialect name, case-insensitively.
func Parse(s string) (Dialect, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for d := Code; d < dialectCount; d++ {
		if d.String() == name {
			return d, nil
		}
	}
	return Code, fmt.Errorf("unknown dialect %q (want code, data, html or css)", s)
}

// DefaultDataSuffixes are the file suffixes treated as Data when no
// configuration says otherwise.
var DefaultDataSuffixes = []string{".data.tan"}

// ForPath picks a dialect from the file name. ok is false when the name says
// nothing and content-based detection should decide.
func ForPath(path string, dataSuffixes []string) (d Dialect, ok bool) {
	if dataSuffixes == nil {
		dataSuffixes = DefaultDataSuffixes
	}
	lower := strings.ToLower(path)
	for _, suf := range dataSuffixes {
		if suf != "" && strings.HasSuffix(lower, strings.ToLower(suf)) {
			return Data, true
		}
	}
	switch {
	case strings.HasSuffix(lower, ".html.tan"):
		return Html, true
	case strings.HasSuffix(lower, ".css.tan"):
		return Css, true
	}
	return Code, false
}
