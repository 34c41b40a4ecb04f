package arrange

import "tanfmt/internal/expr"

// Construct is the closed set of list forms the arranger knows about.
type Construct uint8

const (
	Call Construct = iota
	Quot
	Unquot
	Do
	If
	For
	Func
	Range
	Array
	Map
	Let
	Cond
)

var constructHeads = map[string]Construct{
	"quot":   Quot,
	"unquot": Unquot,
	"do":     Do,
	"if":     If,
	"for":    For,
	"Func":   Func,
	"Range":  Range,
	"Array":  Array,
	"Map":    Map,
	"let":    Let,
	"cond":   Cond,
}

// constructOf resolves a list head once. Anything that is not one of the
// special symbols is a call, and so is an annotated symbol.
func constructOf(head *expr.Expr) Construct {
	if head == nil || head.Kind != expr.Symbol || len(head.VisibleAnn()) > 0 {
		return Call
	}
	if c, ok := constructHeads[head.Text]; ok {
		return c
	}
	return Call
}

func (c Construct) String() string {
	switch c {
	case Call:
		return "call"
	case Quot:
		return "quot"
	case Unquot:
		return "unquot"
	case Do:
		return "do"
	case If:
		return "if"
	case For:
		return "for"
	case Func:
		return "Func"
	case Range:
		return "Range"
	case Array:
		return "Array"
	case Map:
		return "Map"
	case Let:
		return "let"
	case Cond:
		return "cond"
	default:
		return "unknown"
	}
}
