package dialect

import "tanfmt/internal/expr"

// Verdict is the outcome of weighing Evidence.
type Verdict struct {
	Dialect   Dialect
	CodeScore int
	DataScore int
	// Deciding is the first code hint when code evidence won, the first data
	// hint for a Data verdict, nil for a file without evidence.
	Deciding *Hint
}

// Verdict picks Data only when every hint votes for it: one call or special
// form anywhere makes the file code.
func (e *Evidence) Verdict() Verdict {
	v := Verdict{Dialect: Code}
	var firstCode, firstData *Hint
	for i, h := range e.Hints() {
		if h.Score <= 0 {
			continue
		}
		switch h.Dialect {
		case Data:
			v.DataScore += h.Score
			if firstData == nil {
				firstData = &e.hints[i]
			}
		default:
			v.CodeScore += h.Score
			if firstCode == nil {
				firstCode = &e.hints[i]
			}
		}
	}
	switch {
	case v.CodeScore > 0:
		v.Deciding = firstCode
	case v.DataScore > 0:
		v.Dialect, v.Deciding = Data, firstData
	}
	return v
}

// Classify is a shortcut for Collect(exprs).Verdict().Dialect.
func Classify(exprs []*expr.Expr) Dialect {
	return Collect(exprs).Verdict().Dialect
}
