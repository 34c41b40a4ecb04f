package arrange

import "tanfmt/internal/expr"

// Cursor reads a slice of expressions left to right with a single slot of
// pushback.
type Cursor struct {
	items []*expr.Expr
	pos   int
	back  *expr.Expr
}

func NewCursor(items []*expr.Expr) *Cursor {
	return &Cursor{items: items}
}

// Next returns the next node, or false when the cursor is exhausted.
func (c *Cursor) Next() (*expr.Expr, bool) {
	if c.back != nil {
		e := c.back
		c.back = nil
		return e, true
	}
	if c.pos >= len(c.items) {
		return nil, false
	}
	e := c.items[c.pos]
	c.pos++
	return e, true
}

// PutBack makes e the result of the following Next. Only one node may be
// pending; a second PutBack without Next in between panics.
func (c *Cursor) PutBack(e *expr.Expr) {
	if c.back != nil {
		panic("arrange: Cursor.PutBack called twice without Next")
	}
	if e == nil {
		panic("arrange: Cursor.PutBack(nil)")
	}
	c.back = e
}

// Done reports whether nothing is left, pending pushback included.
func (c *Cursor) Done() bool {
	return c.back == nil && c.pos >= len(c.items)
}
