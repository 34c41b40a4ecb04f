package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"tanfmt/internal/expr"
	"tanfmt/internal/source"
)

// CheckSpanInvariants runs a minimal set of position invariants on parsed
// expressions:
// 1) every node except separators has a non-empty span inside the file content
// 2) Range agrees with the span resolved through the file's line index
// 3) list items lie inside their list and start in source order
// 4) separators carry no Range
func CheckSpanInvariants(exprs []*expr.Expr, sf *source.File) error {
	if sf == nil {
		return fmt.Errorf("nil file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	return checkSeq(exprs, nil, sf, lenContent)
}

func checkSeq(items []*expr.Expr, parent *expr.Expr, sf *source.File, lenContent uint32) error {
	var prevStart uint32
	for _, e := range items {
		if e == nil {
			return fmt.Errorf("nil expression")
		}
		if e.Kind == expr.TextSeparator {
			if e.Range != nil {
				return fmt.Errorf("separator at %v has a range", e.Span)
			}
			continue
		}
		if err := checkNode(e, sf, lenContent); err != nil {
			return err
		}
		if parent != nil && !parent.Span.Contains(e.Span) {
			return fmt.Errorf("item span %v is outside list span %v", e.Span, parent.Span)
		}
		if e.Span.Start < prevStart {
			return fmt.Errorf("item span %v starts before previous item at %d", e.Span, prevStart)
		}
		prevStart = e.Span.Start
		if e.Kind == expr.List {
			if err := checkSeq(e.List, e, sf, lenContent); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkNode(e *expr.Expr, sf *source.File, lenContent uint32) error {
	sp := e.Span
	if sp.End <= sp.Start {
		return fmt.Errorf("empty %s span: %v", e.Kind, sp)
	}
	if sp.File != sf.ID {
		return fmt.Errorf("span file mismatch: got=%d want=%d", sp.File, sf.ID)
	}
	if sp.End > lenContent {
		return fmt.Errorf("span end beyond content: %d > %d", sp.End, lenContent)
	}
	if e.Range == nil {
		return fmt.Errorf("%s at %v has no range", e.Kind, sp)
	}
	start, end := sf.Resolve(sp)
	if e.Range.Start != start || e.Range.End != end {
		return fmt.Errorf("range %+v disagrees with span %v (%+v-%+v)", *e.Range, sp, start, end)
	}
	return nil
}
