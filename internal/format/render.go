package format

import (
	"regexp"
	"sort"
	"strings"

	"tanfmt/internal/expr"
	"tanfmt/internal/layout"
)

// renderer tracks the running indent of one Render call.
type renderer struct {
	opt    Options
	indent int
}

// Render turns a layout tree into text and normalizes whitespace: no
// trailing blanks on any line and exactly one final newline.
func Render(l *layout.Layout, opt Options) string {
	r := renderer{opt: opt.withDefaults()}
	return finish(r.render(l))
}

func (r *renderer) prefix() string {
	return strings.Repeat(" ", r.indent)
}

func (r *renderer) render(l *layout.Layout) string {
	if l == nil {
		return ""
	}
	switch l.Kind {
	case layout.KindItem:
		return l.Text
	case layout.KindRow:
		return strings.Join(r.renderAll(l.Children, ""), l.Sep)
	case layout.KindStack:
		return strings.Join(r.renderAll(l.Children, ""), "\n")
	case layout.KindIndent:
		w := l.Width
		if w <= 0 {
			w = r.opt.IndentWidth
		}
		r.indent += w
		lines := r.renderAll(l.Children, r.prefix())
		r.indent -= w
		return strings.Join(lines, "\n")
	case layout.KindApply:
		return r.prefix() + r.render(l.Child)
	case layout.KindAnn:
		return renderAnnotations(l.Annotations) + r.render(l.Child)
	case layout.KindSeparator:
		return ""
	default:
		return ""
	}
}

func (r *renderer) renderAll(children []*layout.Layout, prefix string) []string {
	out := make([]string, 0, len(children))
	for _, c := range children {
		out = append(out, prefix+r.render(c))
	}
	return out
}

// renderAnnotations: "#key " для true, иначе "#<value> "; ключи по порядку.
func renderAnnotations(ann map[string]*expr.Expr) string {
	keys := make([]string, 0, len(ann))
	for k := range ann {
		if k != expr.PositionKey {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var sb strings.Builder
	for _, k := range keys {
		v := ann[k]
		sb.WriteByte('#')
		if v != nil && v.Kind == expr.Bool && v.Bool {
			sb.WriteString(k)
		} else {
			sb.WriteString(expr.Compact(v))
		}
		sb.WriteByte(' ')
	}
	return sb.String()
}

var trailingBlanks = regexp.MustCompile(`[ \t]+\n`)

func finish(s string) string {
	s = trailingBlanks.ReplaceAllString(s, "\n")
	s = strings.TrimRight(s, " \t\n")
	return s + "\n"
}
