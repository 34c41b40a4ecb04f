package arrange

import (
	"github.com/mattn/go-runewidth"

	"tanfmt/internal/expr"
	"tanfmt/internal/layout"
)

const (
	// arrayItemWidthLimit: an array item wider than this goes vertical.
	arrayItemWidthLimit = 8
	// arrayTotalWidthLimit: all items of an array together.
	arrayTotalWidthLimit = 32
)

// arrangeNext lays out the next node and glues to it a comment that starts
// on the source line where the node starts. A node laid out on several
// lines keeps no inline comment: the comment follows as its own row.
func (a *Arranger) arrangeNext() (*layout.Layout, bool) {
	e0, ok := a.cur.Next()
	if !ok {
		return nil, false
	}
	l := a.layoutFromExpr(e0)

	if e1, ok := a.cur.Next(); ok {
		if e1.IsComment() && expr.SharesStartLine(e0, e1) && !l.Multiline() {
			return layout.NewRow(l, a.layoutFromExpr(e1)), true
		}
		a.cur.PutBack(e1)
	}
	return l, true
}

// breaksLine: items that cannot share a line with what follows them.
func breaksLine(l *layout.Layout) bool {
	return l.IsComment() || l.EndsWithComment() || l.Kind == layout.KindSeparator
}

// arrangeAll lays out everything left in the cursor.
func (a *Arranger) arrangeAll() (items []*layout.Layout, forceVertical bool) {
	for {
		l, ok := a.arrangeNext()
		if !ok {
			return items, forceVertical
		}
		forceVertical = forceVertical || breaksLine(l)
		items = append(items, l)
	}
}

// arrangeAllArray is arrangeAll with width limits for array elements.
// Limits are ignored in ModeInline.
func (a *Arranger) arrangeAllArray() (items []*layout.Layout, forceVertical bool) {
	total := 0
	for {
		l, ok := a.arrangeNext()
		if !ok {
			break
		}
		forceVertical = forceVertical || breaksLine(l)
		if l.Kind == layout.KindItem {
			w := runewidth.StringWidth(l.Text)
			total += w
			if a.mode != ModeInline && w > arrayItemWidthLimit {
				forceVertical = true
			}
		}
		items = append(items, l)
	}
	if a.mode != ModeInline && total > arrayTotalWidthLimit {
		forceVertical = true
	}
	return items, forceVertical
}

// arrangeNextPair lays out a (key value) row. A comment on the line where
// the key starts becomes a third element, unless the pair spans lines. Standalone comments and
// separators in key position come back as rows of their own; so do
// comments found where the value was expected. standalone is set for all
// such cases.
func (a *Arranger) arrangeNextPair(c Construct) (rows []*layout.Layout, standalone, ok bool) {
	key, ok := a.cur.Next()
	if !ok {
		return nil, false, false
	}
	if key.IsComment() || key.Kind == expr.TextSeparator {
		return []*layout.Layout{a.layoutFromExpr(key)}, true, true
	}

	var pending []*expr.Expr
	value, ok := a.cur.Next()
	for ok && (value.IsComment() || value.Kind == expr.TextSeparator) {
		if value.IsComment() {
			pending = append(pending, value)
		}
		value, ok = a.cur.Next()
	}
	if !ok {
		fail(MalformedMissingValue, c, key)
	}

	keyLayout := a.layoutFromExpr(key)
	if len(pending) > 0 {
		// комментарий между ключом и значением: ключ уходит отдельной строкой
		if expr.SharesStartLine(key, pending[0]) && !keyLayout.Multiline() {
			keyLayout = layout.NewRow(keyLayout, a.layoutFromExpr(pending[0]))
			pending = pending[1:]
		}
		rows = append(rows, keyLayout)
		for _, cm := range pending {
			rows = append(rows, a.layoutFromExpr(cm))
		}
		a.cur.PutBack(value)
		valueRow, _ := a.arrangeNext()
		return append(rows, valueRow), true, true
	}

	valueLayout := a.layoutFromExpr(value)
	tuple := []*layout.Layout{keyLayout, valueLayout}
	if e, ok := a.cur.Next(); ok {
		if e.IsComment() && expr.SharesStartLine(key, e) && !keyLayout.Multiline() && !valueLayout.Multiline() {
			tuple = append(tuple, a.layoutFromExpr(e))
		} else {
			a.cur.PutBack(e)
		}
	}
	return []*layout.Layout{layout.NewRow(tuple...)}, false, true
}

// arrangeAllPairs collects pair rows. A pair with an inline comment or any
// standalone row forces the block vertical.
func (a *Arranger) arrangeAllPairs(c Construct) (rows []*layout.Layout, forceVertical bool) {
	for {
		pair, standalone, ok := a.arrangeNextPair(c)
		if !ok {
			return rows, forceVertical
		}
		if standalone || len(pair[0].Children) > 2 {
			forceVertical = true
		}
		rows = append(rows, pair...)
	}
}
