package dialect

import (
	"tanfmt/internal/expr"
	"tanfmt/internal/source"
)

// Hint is a small piece of evidence suggesting a particular dialect.
type Hint struct {
	Dialect Dialect
	Score   int
	Reason  string
	Span    source.Span
}

// Evidence aggregates per-file hints collected from top-level expressions.
type Evidence struct {
	hints []Hint
}

// NewEvidence creates a new Evidence container.
func NewEvidence() *Evidence {
	return &Evidence{
		hints: make([]Hint, 0, 16),
	}
}

// Add appends a hint to the evidence collection.
func (e *Evidence) Add(h Hint) {
	if e == nil {
		return
	}
	e.hints = append(e.hints, h)
}

// Hints returns the collected hints.
func (e *Evidence) Hints() []Hint {
	if e == nil {
		return nil
	}
	return e.hints
}

// codeHeads are heads that only make sense in executable code.
var codeHeads = map[string]struct{}{
	"let": {}, "do": {}, "if": {}, "for": {}, "Func": {}, "cond": {},
	"quot": {}, "unquot": {}, "use": {},
}

// Collect looks at top-level expressions: literals and aggregates vote for
// Data, special forms and calls vote for Code. Comments and separators are
// neutral.
func Collect(exprs []*expr.Expr) *Evidence {
	ev := NewEvidence()
	for _, e := range exprs {
		if e == nil {
			continue
		}
		switch e.Kind {
		case expr.Comment, expr.TextSeparator:
			continue
		case expr.List:
			head, ok := e.Head()
			switch {
			case ok && (head == "Array" || head == "Map"):
				ev.Add(Hint{Dialect: Data, Score: 1, Reason: "top-level " + head + " literal", Span: e.Span})
			case ok:
				if _, special := codeHeads[head]; special {
					ev.Add(Hint{Dialect: Code, Score: 3, Reason: "special form " + head, Span: e.Span})
				} else {
					ev.Add(Hint{Dialect: Code, Score: 2, Reason: "call to " + head, Span: e.Span})
				}
			default:
				ev.Add(Hint{Dialect: Code, Score: 1, Reason: "list with non-symbol head", Span: e.Span})
			}
		case expr.Symbol:
			ev.Add(Hint{Dialect: Code, Score: 1, Reason: "bare symbol", Span: e.Span})
		default:
			ev.Add(Hint{Dialect: Data, Score: 1, Reason: "top-level " + e.Kind.String() + " literal", Span: e.Span})
		}
	}
	return ev
}
