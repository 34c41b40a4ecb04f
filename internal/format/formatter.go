package format

import (
	"errors"
	"fmt"

	"tanfmt/internal/arrange"
	"tanfmt/internal/diag"
	"tanfmt/internal/expr"
	"tanfmt/internal/parser"
	"tanfmt/internal/source"
)

// Format arranges and renders a document. Nothing is returned on error.
func Format(exprs []*expr.Expr, opt Options) (string, error) {
	opt = opt.withDefaults()
	l, err := arrange.Arrange(exprs, opt.Dialect)
	if err != nil {
		return "", err
	}
	return Render(l, opt), nil
}

// SyntaxError is returned by FormatFile when the source does not parse.
type SyntaxError struct {
	Path string
	Bag  *diag.Bag
}

func (e *SyntaxError) Error() string {
	if e == nil || e.Bag == nil || e.Bag.Len() == 0 {
		return "syntax error"
	}
	first := e.Bag.Items()[0]
	more := e.Bag.Len() - 1 + e.Bag.Dropped()
	if more == 0 {
		return fmt.Sprintf("%s: %s", e.Path, first.Message)
	}
	return fmt.Sprintf("%s: %s (and %d more)", e.Path, first.Message, more)
}

// FormatFile parses sf and formats it.
func FormatFile(sf *source.File, opt Options) ([]byte, error) {
	if sf == nil {
		return nil, errors.New("format: nil source file")
	}
	exprs, err := parseOnce(sf, 0)
	if err != nil {
		return nil, err
	}
	out, err := Format(exprs, opt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", sf.Path, err)
	}
	return []byte(out), nil
}

func parseOnce(sf *source.File, maxDiag int) ([]*expr.Expr, error) {
	bag := diag.NewBag(maxDiag)
	exprs, ok := parser.Parse(sf, bag)
	if !ok {
		return nil, &SyntaxError{Path: sf.Path, Bag: bag}
	}
	return exprs, nil
}

// CheckRoundTrip formats the file, re-parses the result and formats it
// again. It fails when the reparsed tree differs from the original (blank
// line markers aside) or when the second pass changes anything.
func CheckRoundTrip(sf *source.File, opt Options, maxDiag int) (ok bool, msg string) {
	orig, err := parseOnce(sf, maxDiag)
	if err != nil {
		return false, "fmt-check: initial parse failed: " + err.Error()
	}
	first, err := Format(orig, opt)
	if err != nil {
		return false, "fmt-check: formatter failed: " + err.Error()
	}

	fs2 := source.NewFileSetWithBase("")
	rebuilt := fs2.Get(fs2.AddVirtual(sf.Path, []byte(first)))
	again, err := parseOnce(rebuilt, maxDiag)
	if err != nil {
		return false, "fmt-check: reparse failed: " + err.Error()
	}
	if !expr.EquivalentAll(orig, again) {
		return false, "fmt-check: expressions differ after round-trip"
	}

	second, err := Format(again, opt)
	if err != nil {
		return false, "fmt-check: second pass failed: " + err.Error()
	}
	if second != first {
		return false, "fmt-check: formatting is not idempotent"
	}
	return true, "fmt-check: OK"
}
