package arrange

import (
	"strconv"

	"tanfmt/internal/dialect"
	"tanfmt/internal/expr"
	"tanfmt/internal/layout"
)

// Mode is context handed from a construct down to the lists nested in it.
type Mode uint8

const (
	ModeDefault Mode = iota
	// ModeLet marks binding values: richer constructs inside go vertical.
	ModeLet
	// ModeInline keeps parameter and binder lists on one line.
	ModeInline
)

func (m Mode) String() string {
	switch m {
	case ModeLet:
		return "let"
	case ModeInline:
		return "inline"
	default:
		return "default"
	}
}

// Arranger lays out one flat level of expressions. Nested lists get their
// own Arranger that inherits the dialect and the current mode.
type Arranger struct {
	dialect dialect.Dialect
	mode    Mode
	cur     *Cursor
}

func New(exprs []*expr.Expr, d dialect.Dialect) *Arranger {
	return &Arranger{dialect: d, mode: ModeDefault, cur: NewCursor(exprs)}
}

// Arrange lays out a whole document as a stack of top-level rows.
func Arrange(exprs []*expr.Expr, d dialect.Dialect) (*layout.Layout, error) {
	return New(exprs, d).Arrange()
}

// Arrange consumes the arranger's input. Arity violations anywhere in the
// tree are returned as *MalformedError.
func (a *Arranger) Arrange() (l *layout.Layout, err error) {
	defer func() {
		if r := recover(); r != nil {
			m, ok := r.(malformed)
			if !ok {
				panic(r)
			}
			l, err = nil, m.err
		}
	}()
	rows, _ := a.arrangeAll()
	return layout.NewStack(rows...), nil
}

// withMode runs fn with a temporarily changed mode.
func (a *Arranger) withMode(m Mode, fn func()) {
	old := a.mode
	a.mode = m
	defer func() { a.mode = old }()
	fn()
}

// layoutFromExpr maps a single node, recursing into non-empty lists.
func (a *Arranger) layoutFromExpr(e *expr.Expr) *layout.Layout {
	var l *layout.Layout
	switch e.Kind {
	case expr.Comment:
		l = layout.NewItem(e.Text)
	case expr.TextSeparator:
		l = layout.NewSeparator()
	case expr.String:
		l = layout.NewItem(expr.QuoteString(e.Text))
	case expr.Symbol:
		l = layout.NewItem(e.Text)
	case expr.Int:
		l = layout.NewItem(strconv.FormatInt(e.Int, 10))
	case expr.Float:
		l = layout.NewItem(expr.FormatFloat(e.Float))
	case expr.Bool:
		l = layout.NewItem(strconv.FormatBool(e.Bool))
	case expr.KeySymbol:
		l = layout.NewItem(":" + e.Text)
	case expr.Char:
		l = layout.NewItem(expr.FormatChar(e.Char))
	case expr.List:
		if len(e.List) == 0 {
			l = layout.NewItem("()")
			break
		}
		child := &Arranger{dialect: a.dialect, mode: a.mode, cur: NewCursor(e.List)}
		l = child.arrangeList(e)
	default:
		// Unit и всё неизвестное
		l = layout.NewItem("()")
	}

	if ann := e.VisibleAnn(); len(ann) > 0 {
		return layout.NewAnn(ann, l)
	}
	return l
}
