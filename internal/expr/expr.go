package expr

import (
	"tanfmt/internal/source"
)

// Kind is the discriminator of an expression node.
type Kind uint8

const (
	Unit Kind = iota
	Bool
	Int
	Float
	Symbol
	String
	KeySymbol
	Char
	Comment
	// TextSeparator marks a blank line between two items.
	TextSeparator
	List
)

func (k Kind) String() string {
	switch k {
	case Unit:
		return "Unit"
	case Bool:
		return "Bool"
	case Int:
		return "Int"
	case Float:
		return "Float"
	case Symbol:
		return "Symbol"
	case String:
		return "String"
	case KeySymbol:
		return "KeySymbol"
	case Char:
		return "Char"
	case Comment:
		return "Comment"
	case TextSeparator:
		return "TextSeparator"
	case List:
		return "List"
	default:
		return "Unknown"
	}
}

// PositionKey is the annotation key under which positions may be stored.
// It never takes part in annotation rendering.
const PositionKey = "range"

// Range is a 1-based line/column range of a node in its source file.
type Range struct {
	Start source.LineCol
	End   source.LineCol
}

// Expr is a parsed Tan expression.
type Expr struct {
	Kind Kind
	// Text holds the symbol name, the unescaped string value, the key symbol
	// name without ':' or the full comment text including ';'.
	Text  string
	Int   int64
	Float float64
	Bool  bool
	Char  rune
	List  []*Expr

	Span  source.Span
	Range *Range
	Ann   map[string]*Expr
}

func NewUnit() *Expr                 { return &Expr{Kind: Unit} }
func NewBool(v bool) *Expr           { return &Expr{Kind: Bool, Bool: v} }
func NewInt(v int64) *Expr           { return &Expr{Kind: Int, Int: v} }
func NewFloat(v float64) *Expr       { return &Expr{Kind: Float, Float: v} }
func NewSymbol(name string) *Expr    { return &Expr{Kind: Symbol, Text: name} }
func NewString(v string) *Expr       { return &Expr{Kind: String, Text: v} }
func NewKeySymbol(name string) *Expr { return &Expr{Kind: KeySymbol, Text: name} }
func NewChar(c rune) *Expr           { return &Expr{Kind: Char, Char: c} }
func NewComment(text string) *Expr   { return &Expr{Kind: Comment, Text: text} }
func NewSeparator() *Expr            { return &Expr{Kind: TextSeparator} }
func NewList(items ...*Expr) *Expr   { return &Expr{Kind: List, List: items} }

// At sets the node's range and returns the node, handy for building fixtures.
func (e *Expr) At(startLine, startCol, endLine, endCol uint32) *Expr {
	e.Range = &Range{
		Start: source.LineCol{Line: startLine, Col: startCol},
		End:   source.LineCol{Line: endLine, Col: endCol},
	}
	return e
}

// WithAnn adds an annotation and returns the node.
func (e *Expr) WithAnn(key string, value *Expr) *Expr {
	if e.Ann == nil {
		e.Ann = make(map[string]*Expr, 1)
	}
	e.Ann[key] = value
	return e
}

// StartLine returns the first line of the node, if known.
func (e *Expr) StartLine() (uint32, bool) {
	if e == nil || e.Range == nil {
		return 0, false
	}
	return e.Range.Start.Line, true
}

// SharesStartLine reports whether next starts on the line where anchor
// starts. Nodes without a range never share a line.
func SharesStartLine(anchor, next *Expr) bool {
	if anchor == nil || next == nil || anchor.Range == nil || next.Range == nil {
		return false
	}
	return anchor.Range.Start.Line == next.Range.Start.Line
}

// Head returns the symbol name in head position of a non-empty list.
func (e *Expr) Head() (string, bool) {
	if e == nil || e.Kind != List || len(e.List) == 0 || e.List[0].Kind != Symbol {
		return "", false
	}
	return e.List[0].Text, true
}

// IsComment reports whether e is a comment node.
func (e *Expr) IsComment() bool { return e != nil && e.Kind == Comment }

// VisibleAnn returns the annotations without the position key, or nil.
func (e *Expr) VisibleAnn() map[string]*Expr {
	if len(e.Ann) == 0 {
		return nil
	}
	if _, ok := e.Ann[PositionKey]; !ok {
		return e.Ann
	}
	if len(e.Ann) == 1 {
		return nil
	}
	out := make(map[string]*Expr, len(e.Ann)-1)
	for k, v := range e.Ann {
		if k != PositionKey {
			out[k] = v
		}
	}
	return out
}

// Walk visits e and all nested list items depth-first. Returning false from fn
// skips the children of the current node.
func Walk(e *Expr, fn func(*Expr) bool) {
	if e == nil || !fn(e) {
		return
	}
	for _, item := range e.List {
		Walk(item, fn)
	}
}
