package expr

import (
	"strconv"
	"strings"
)

// Compact renders e on a single line. Lists print as (a b c); annotations
// and separators are omitted.
func Compact(e *Expr) string {
	var sb strings.Builder
	writeCompact(&sb, e)
	return sb.String()
}

func writeCompact(sb *strings.Builder, e *Expr) {
	if e == nil {
		sb.WriteString("()")
		return
	}
	switch e.Kind {
	case Unit:
		sb.WriteString("()")
	case Bool:
		sb.WriteString(strconv.FormatBool(e.Bool))
	case Int:
		sb.WriteString(strconv.FormatInt(e.Int, 10))
	case Float:
		sb.WriteString(FormatFloat(e.Float))
	case Symbol:
		sb.WriteString(e.Text)
	case String:
		sb.WriteString(QuoteString(e.Text))
	case KeySymbol:
		sb.WriteByte(':')
		sb.WriteString(e.Text)
	case Char:
		sb.WriteString(FormatChar(e.Char))
	case Comment:
		sb.WriteString(e.Text)
	case TextSeparator:
	case List:
		sb.WriteByte('(')
		first := true
		for _, item := range e.List {
			if item.Kind == TextSeparator {
				continue
			}
			if !first {
				sb.WriteByte(' ')
			}
			first = false
			writeCompact(sb, item)
		}
		sb.WriteByte(')')
	}
}

// Equal compares two nodes structurally. Positions are ignored, annotations
// are compared without the position key.
func Equal(a, b *Expr) bool {
	return equal(a, b, false)
}

// Equivalent is Equal that also ignores blank-line separators at any depth.
func Equivalent(a, b *Expr) bool {
	return equal(a, b, true)
}

func equal(a, b *Expr, skipSep bool) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind {
		// пустой список и Unit печатаются одинаково
		return isUnitLike(a) && isUnitLike(b)
	}
	switch a.Kind {
	case Bool:
		if a.Bool != b.Bool {
			return false
		}
	case Int:
		if a.Int != b.Int {
			return false
		}
	case Float:
		if a.Float != b.Float {
			return false
		}
	case Char:
		if a.Char != b.Char {
			return false
		}
	case Symbol, String, KeySymbol, Comment:
		if a.Text != b.Text {
			return false
		}
	case List:
		if !equalSeq(a.List, b.List, skipSep) {
			return false
		}
	}
	annA, annB := a.VisibleAnn(), b.VisibleAnn()
	if len(annA) != len(annB) {
		return false
	}
	for k, va := range annA {
		vb, ok := annB[k]
		if !ok || !equal(va, vb, skipSep) {
			return false
		}
	}
	return true
}

// EqualAll compares two node sequences with Equal.
func EqualAll(a, b []*Expr) bool {
	return equalSeq(a, b, false)
}

// EquivalentAll compares two node sequences with Equivalent.
func EquivalentAll(a, b []*Expr) bool {
	return equalSeq(a, b, true)
}

func equalSeq(a, b []*Expr, skipSep bool) bool {
	if skipSep {
		a, b = withoutSeparators(a), withoutSeparators(b)
	}
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !equal(a[i], b[i], skipSep) {
			return false
		}
	}
	return true
}

func withoutSeparators(items []*Expr) []*Expr {
	out := make([]*Expr, 0, len(items))
	for _, e := range items {
		if e == nil || e.Kind != TextSeparator {
			out = append(out, e)
		}
	}
	return out
}

func isUnitLike(e *Expr) bool {
	return e.Kind == Unit || (e.Kind == List && len(e.List) == 0)
}
