package arrange

import (
	"fmt"

	"tanfmt/internal/expr"
	"tanfmt/internal/source"
)

// MalformedKind enumerates arity violations found while arranging.
type MalformedKind uint8

const (
	// MalformedMissingValue: a key in let/cond/Map has no value.
	MalformedMissingValue MalformedKind = iota + 1
	// MalformedMissingArgument: if/for/Func without any argument.
	MalformedMissingArgument
	// MalformedRangeArity: Range with fewer than two or more than three parts.
	MalformedRangeArity
)

func (k MalformedKind) String() string {
	switch k {
	case MalformedMissingValue:
		return "key without value"
	case MalformedMissingArgument:
		return "missing argument"
	case MalformedRangeArity:
		return "range needs a start, an end and an optional step"
	default:
		return "malformed input"
	}
}

// MalformedError reports input the arranger cannot lay out.
type MalformedError struct {
	Kind      MalformedKind
	Construct Construct
	// Range is the position of the offending node, nil when unknown.
	Range *expr.Range
	Span  source.Span
}

func (e *MalformedError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Range != nil {
		return fmt.Sprintf("malformed %s at %d:%d: %s", e.Construct, e.Range.Start.Line, e.Range.Start.Col, e.Kind)
	}
	return fmt.Sprintf("malformed %s: %s", e.Construct, e.Kind)
}

// malformed is the panic value used to unwind out of nested arrangers.
type malformed struct{ err *MalformedError }

func fail(kind MalformedKind, c Construct, at *expr.Expr) {
	err := &MalformedError{Kind: kind, Construct: c}
	if at != nil {
		err.Range = at.Range
		err.Span = at.Span
	}
	panic(malformed{err: err})
}
