package layout

import (
	"sort"
	"strconv"
	"strings"

	"tanfmt/internal/expr"
)

// Dump renders the tree in an indented debug form, one node per line.
func (l *Layout) Dump() string {
	var sb strings.Builder
	dump(&sb, l, 0)
	return sb.String()
}

func dump(sb *strings.Builder, l *Layout, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	if l == nil {
		sb.WriteString("<nil>\n")
		return
	}
	sb.WriteString(l.Kind.String())
	switch l.Kind {
	case KindItem:
		sb.WriteByte(' ')
		sb.WriteString(strconv.Quote(l.Text))
	case KindRow:
		sb.WriteString(" sep=")
		sb.WriteString(strconv.Quote(l.Sep))
	case KindIndent:
		if l.Width > 0 {
			sb.WriteString(" width=")
			sb.WriteString(strconv.Itoa(l.Width))
		}
	case KindAnn:
		keys := make([]string, 0, len(l.Annotations))
		for k := range l.Annotations {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			sb.WriteByte(' ')
			sb.WriteString(k)
			sb.WriteByte('=')
			sb.WriteString(expr.Compact(l.Annotations[k]))
		}
	}
	sb.WriteByte('\n')

	for _, c := range l.Children {
		dump(sb, c, depth+1)
	}
	if l.Child != nil {
		dump(sb, l.Child, depth+1)
	}
}
