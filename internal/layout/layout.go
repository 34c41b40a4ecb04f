package layout

import (
	"strings"

	"tanfmt/internal/expr"
)

// Kind is the discriminator of a layout node.
type Kind uint8

const (
	// KindItem is an atomic text token.
	KindItem Kind = iota
	// KindRow arranges children horizontally, joined by Sep.
	KindRow
	// KindStack arranges children vertically, one per line.
	KindStack
	// KindIndent is a vertical block indented by Width (or the default).
	KindIndent
	// KindApply renders its child prefixed by the current indent.
	KindApply
	// KindAnn prefixes its child with rendered annotations.
	KindAnn
	// KindSeparator is a blank line slot.
	KindSeparator
)

func (k Kind) String() string {
	switch k {
	case KindItem:
		return "Item"
	case KindRow:
		return "Row"
	case KindStack:
		return "Stack"
	case KindIndent:
		return "Indent"
	case KindApply:
		return "Apply"
	case KindAnn:
		return "Ann"
	case KindSeparator:
		return "Separator"
	default:
		return "Unknown"
	}
}

// Layout is one node of the layout tree. Every node is owned by exactly one
// parent.
type Layout struct {
	Kind Kind

	Text string // Item
	Sep  string // Row: " " or ""

	Children []*Layout // Row, Stack, Indent
	// Width is the explicit indent of an Indent node; 0 means the
	// formatter's default indent width.
	Width int

	Child *Layout // Apply, Ann

	Annotations map[string]*expr.Expr // Ann
}

func NewItem(text string) *Layout {
	return &Layout{Kind: KindItem, Text: text}
}

// NewRow joins children with a single space.
func NewRow(children ...*Layout) *Layout {
	return &Layout{Kind: KindRow, Sep: " ", Children: children}
}

// NewJoin joins children without a separator.
func NewJoin(children ...*Layout) *Layout {
	return &Layout{Kind: KindRow, Sep: "", Children: children}
}

func NewStack(children ...*Layout) *Layout {
	return &Layout{Kind: KindStack, Children: children}
}

// NewIndent indents children by the default width.
func NewIndent(children ...*Layout) *Layout {
	return &Layout{Kind: KindIndent, Children: children}
}

// NewAlign indents children by an explicit number of columns.
func NewAlign(width int, children ...*Layout) *Layout {
	return &Layout{Kind: KindIndent, Width: width, Children: children}
}

func NewApply(child *Layout) *Layout {
	return &Layout{Kind: KindApply, Child: child}
}

func NewAnn(ann map[string]*expr.Expr, child *Layout) *Layout {
	return &Layout{Kind: KindAnn, Annotations: ann, Child: child}
}

func NewSeparator() *Layout {
	return &Layout{Kind: KindSeparator}
}

// IsVertical reports whether l renders on more than one line by construction.
// Annotation wrappers are looked through.
func (l *Layout) IsVertical() bool {
	for l != nil && l.Kind == KindAnn {
		l = l.Child
	}
	return l != nil && (l.Kind == KindStack || l.Kind == KindIndent)
}

// Multiline reports whether l may render on more than one line: it holds a
// Stack or an Indent anywhere below rows and wrappers.
func (l *Layout) Multiline() bool {
	if l == nil {
		return false
	}
	switch l.Kind {
	case KindStack, KindIndent:
		return true
	case KindApply, KindAnn:
		return l.Child.Multiline()
	case KindRow:
		for _, c := range l.Children {
			if c.Multiline() {
				return true
			}
		}
	}
	return false
}

// IsComment reports whether l is a comment item.
func (l *Layout) IsComment() bool {
	return l != nil && l.Kind == KindItem && strings.HasPrefix(l.Text, ";")
}

// EndsWithComment reports whether l is a row whose last element is a comment,
// i.e. something that carries an inline comment.
func (l *Layout) EndsWithComment() bool {
	if l == nil || l.Kind != KindRow || len(l.Children) == 0 {
		return false
	}
	return l.Children[len(l.Children)-1].IsComment()
}
