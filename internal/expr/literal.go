package expr

import (
	"math"
	"strconv"
	"strings"
)

var stringEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\t", `\t`,
	"\r", `\r`,
)

// QuoteString renders v as a Tan string literal.
func QuoteString(v string) string {
	return `"` + stringEscaper.Replace(v) + `"`
}

// UnquoteString decodes the body of a string literal (quotes included).
// Unknown escapes keep the escaped byte as is.
func UnquoteString(lit string) string {
	if len(lit) >= 2 && lit[0] == '"' && lit[len(lit)-1] == '"' {
		lit = lit[1 : len(lit)-1]
	}
	if !strings.Contains(lit, `\`) {
		return lit
	}
	var sb strings.Builder
	sb.Grow(len(lit))
	for i := 0; i < len(lit); i++ {
		c := lit[i]
		if c != '\\' || i+1 == len(lit) {
			sb.WriteByte(c)
			continue
		}
		i++
		switch lit[i] {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		default:
			sb.WriteByte(lit[i])
		}
	}
	return sb.String()
}

// FormatFloat always keeps a decimal separator so the value reads back as a float.
func FormatFloat(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "+Inf"
	case math.IsInf(v, -1):
		return "-Inf"
	case math.IsNaN(v):
		return "NaN"
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

// FormatChar renders a character node.
func FormatChar(c rune) string {
	return "(Char " + QuoteString(string(c)) + ")"
}
