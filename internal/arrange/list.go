package arrange

import (
	"tanfmt/internal/dialect"
	"tanfmt/internal/expr"
	"tanfmt/internal/layout"
)

func item(text string) *layout.Layout { return layout.NewItem(text) }

// closing puts a delimiter on its own line at the indent of the block it closes.
func closing(text string) *layout.Layout { return layout.NewApply(item(text)) }

// arrangeList lays out a non-empty list; the cursor holds its items.
func (a *Arranger) arrangeList(list *expr.Expr) *layout.Layout {
	head, _ := a.cur.Next()
	c := constructOf(head)

	switch c {
	case Quot:
		return a.arrangeQuoting(head.Text, "'")
	case Unquot:
		return a.arrangeQuoting(head.Text, "$")
	case Do:
		return a.arrangeDo()
	case If, For, Func:
		return a.arrangeBlockForm(c, head.Text, list)
	case Range:
		return a.arrangeRange(head, list)
	case Array:
		return a.arrangeArray()
	case Map:
		return a.arrangeMap()
	case Let:
		return a.arrangeLet()
	case Cond:
		return a.arrangeCond()
	case Call:
		return a.arrangeCall(head)
	default:
		panic("arrange: unhandled construct " + c.String())
	}
}

// arrangeQuoting: 'x и $x всегда в одну строку.
func (a *Arranger) arrangeQuoting(name, prefix string) *layout.Layout {
	items, _ := a.arrangeAll()
	kept := make([]*layout.Layout, 0, len(items))
	for _, l := range items {
		switch {
		case l.Kind == layout.KindSeparator:
		case breaksLine(l):
			// комментарий съел бы всё, что идёт после 'x: пишем полную форму
			return layout.NewStack(item("("+name), layout.NewIndent(items...), closing(")"))
		default:
			kept = append(kept, l)
		}
	}
	return layout.NewJoin(item(prefix), layout.NewRow(kept...))
}

func (a *Arranger) arrangeDo() *layout.Layout {
	items, _ := a.arrangeAll()
	if len(items) == 0 {
		return item("(do)")
	}
	return layout.NewStack(item("(do"), layout.NewIndent(items...), closing(")"))
}

// arrangeBlockForm handles if, for and Func: the first argument stays on the
// header line, the rest goes into an indented block when needed.
func (a *Arranger) arrangeBlockForm(c Construct, name string, list *expr.Expr) *layout.Layout {
	var (
		first *layout.Layout
		ok    bool
	)
	a.skipSeparators()
	if c == For || c == Func {
		a.withMode(ModeInline, func() { first, ok = a.arrangeNext() })
	} else {
		first, ok = a.arrangeNext()
	}
	if !ok {
		fail(MalformedMissingArgument, c, list)
	}

	header := layout.NewRow(item("("+name), first)
	block, forceVertical := a.arrangeAll()
	forceVertical = forceVertical ||
		breaksLine(first) ||
		len(block) > 1 ||
		c == For ||
		a.mode == ModeLet

	if forceVertical {
		if len(block) == 0 {
			return layout.NewStack(header, closing(")"))
		}
		return layout.NewStack(header, layout.NewIndent(block...), closing(")"))
	}
	if len(block) == 0 {
		return layout.NewJoin(header, item(")"))
	}
	return layout.NewJoin(header, item(" "), block[0], item(")"))
}

// skipSeparators drops blank-line markers at the cursor position.
func (a *Arranger) skipSeparators() {
	for {
		e, ok := a.cur.Next()
		if !ok {
			return
		}
		if e.Kind != expr.TextSeparator {
			a.cur.PutBack(e)
			return
		}
	}
}

// arrangeRange: (Range a b s) → a..b|s. Parts that the short form cannot
// carry (comments, annotations) keep the list as a call.
func (a *Arranger) arrangeRange(head, list *expr.Expr) *layout.Layout {
	var (
		parts []string
		lossy bool
	)
	for _, e := range list.List[1:] {
		switch {
		case e.Kind == expr.TextSeparator:
		case e.IsComment():
			lossy = true
		default:
			lossy = lossy || !compactSafe(e)
			parts = append(parts, expr.Compact(e))
		}
	}
	if len(parts) < 2 || len(parts) > 3 {
		fail(MalformedRangeArity, Range, list)
	}
	if lossy {
		return a.arrangeCall(head)
	}
	text := parts[0] + ".." + parts[1]
	if len(parts) == 3 {
		text += "|" + parts[2]
	}
	return item(text)
}

// compactSafe reports whether expr.Compact prints e without losing text.
func compactSafe(e *expr.Expr) bool {
	safe := true
	expr.Walk(e, func(n *expr.Expr) bool {
		if n.IsComment() || len(n.VisibleAnn()) > 0 {
			safe = false
		}
		return safe
	})
	return safe
}

func (a *Arranger) arrangeArray() *layout.Layout {
	items, forceVertical := a.arrangeAllArray()
	if len(items) == 0 {
		return item("[]")
	}
	forceVertical = forceVertical || a.dialect == dialect.Data || items[0].IsVertical()
	if forceVertical {
		return layout.NewStack(item("["), layout.NewIndent(items...), closing("]"))
	}
	return layout.NewJoin(item("["), layout.NewRow(items...), item("]"))
}

func (a *Arranger) arrangeMap() *layout.Layout {
	pairs, forceVertical := a.arrangeAllPairs(Map)
	if len(pairs) == 0 {
		return item("{}")
	}
	forceVertical = forceVertical || len(pairs) > 2 || a.dialect == dialect.Data
	if forceVertical {
		return layout.NewStack(item("{"), layout.NewIndent(pairs...), closing("}"))
	}
	return layout.NewJoin(item("{"), layout.NewRow(pairs...), item("}"))
}

// letAlign is the width of "(let ". The Align is relative to the running
// indent, not to the column where "(let" was printed, so a let nested inside
// a row lines its later bindings up with the enclosing block instead.
const letAlign = len("(let ")

func (a *Arranger) arrangeLet() *layout.Layout {
	var (
		bindings      []*layout.Layout
		forceVertical bool
	)
	a.withMode(ModeLet, func() { bindings, forceVertical = a.arrangeAllPairs(Let) })

	switch {
	case len(bindings) == 0:
		return item("(let)")
	case forceVertical:
		return layout.NewStack(item("(let"), layout.NewIndent(bindings...), closing(")"))
	case len(bindings) > 1:
		rest := bindings[1:]
		rest[len(rest)-1] = layout.NewJoin(rest[len(rest)-1], item(")"))
		return layout.NewStack(
			layout.NewRow(item("(let"), bindings[0]),
			layout.NewAlign(letAlign, rest...),
		)
	default:
		return layout.NewJoin(item("(let "), layout.NewRow(bindings...), item(")"))
	}
}

// condAlign is the column the clauses of a multi-clause cond are aligned at.
const condAlign = 4

func (a *Arranger) arrangeCond() *layout.Layout {
	clauses, forceVertical := a.arrangeAllPairs(Cond)

	switch {
	case len(clauses) == 0:
		return item("(cond)")
	case forceVertical:
		return layout.NewStack(item("(cond"), layout.NewIndent(clauses...), closing(")"))
	case len(clauses) > 1:
		return layout.NewStack(item("(cond"), layout.NewAlign(condAlign, clauses...), closing(")"))
	default:
		return layout.NewJoin(item("(cond "), layout.NewRow(clauses...), item(")"))
	}
}

// arrangeCall is the generic (head args...) form. The head is laid out like
// any argument: annotations, nested lists and an inline comment included.
func (a *Arranger) arrangeCall(head *expr.Expr) *layout.Layout {
	a.cur.PutBack(head)
	if head.IsComment() || head.Kind == expr.TextSeparator {
		// комментарий или разделитель в голове — это уже аргумент
		args, _ := a.arrangeAll()
		return layout.NewStack(item("("), layout.NewIndent(args...), closing(")"))
	}

	headLayout, _ := a.arrangeNext()
	open := layout.NewJoin(item("("), headLayout)
	split := breaksLine(headLayout)

	args, forceVertical := a.arrangeAll()
	switch {
	case len(args) == 0 && split:
		return layout.NewStack(open, closing(")"))
	case len(args) == 0:
		return layout.NewJoin(open, item(")"))
	case forceVertical || split || headLayout.IsVertical():
		return layout.NewStack(open, layout.NewIndent(args...), closing(")"))
	default:
		return layout.NewJoin(open, item(" "), layout.NewRow(args...), item(")"))
	}
}
