package parser_test

import (
	"fmt"
	"strings"
	"testing"

	"tanfmt/internal/diag"
	"tanfmt/internal/expr"
	"tanfmt/internal/parser"
	"tanfmt/internal/source"
	"tanfmt/internal/testkit"
)

func parseSource(t *testing.T, src string) ([]*expr.Expr, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	sf := fs.Get(fs.AddVirtual("test.tan", []byte(src)))
	bag := diag.NewBag(100)
	exprs, _ := parser.Parse(sf, bag)
	if !bag.HasErrors() {
		if err := testkit.CheckSpanInvariants(exprs, sf); err != nil {
			t.Fatalf("span invariants for %q: %v", src, err)
		}
	}
	return exprs, bag
}

func diagnosticsSummary(bag *diag.Bag) string {
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

func compactAll(exprs []*expr.Expr) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		if e.Kind == expr.TextSeparator {
			parts[i] = "<sep>"
			continue
		}
		parts[i] = expr.Compact(e)
	}
	return strings.Join(parts, " ")
}

func TestDesugaring(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"()", "()"},
		{"(f x 1 2.5)", "(f x 1 2.5)"},
		{"[1 2 3]", "(Array 1 2 3)"},
		{"[]", "(Array)"},
		{"{:a 1 :b 2}", "(Map :a 1 :b 2)"},
		{"'(a b)", "(quot (a b))"},
		{"'$x", "(quot (unquot x))"},
		{"1..10", "(Range 1 10)"},
		{"0..n|2", "(Range 0 n 2)"},
		{"-1.5..2.0", "(Range -1.5 2.0)"},
		{`"a\tb"`, `"a\tb"`},
		{"0x10 1_000", "16 1000"},
		{"true false :key", "true false :key"},
	}
	for _, tt := range tests {
		exprs, bag := parseSource(t, tt.src)
		if bag.HasErrors() {
			t.Fatalf("%q: unexpected diagnostics: %s", tt.src, diagnosticsSummary(bag))
		}
		if got := compactAll(exprs); got != tt.want {
			t.Errorf("%q mismatch:\nwant %q\ngot  %q", tt.src, tt.want, got)
		}
	}
}

func TestUnitKind(t *testing.T) {
	exprs, _ := parseSource(t, "()")
	if exprs[0].Kind != expr.Unit {
		t.Fatalf("() kind = %s, want Unit", exprs[0].Kind)
	}
}

func TestSeparatorsAtAnyLevel(t *testing.T) {
	src := "(a)\n\n(b\n\n  c)\n(d)"
	exprs, bag := parseSource(t, src)
	if bag.HasErrors() {
		t.Fatal(diagnosticsSummary(bag))
	}
	if got, want := compactAll(exprs), "(a) <sep> (b c) (d)"; got != want {
		t.Fatalf("top level mismatch:\nwant %q\ngot  %q", want, got)
	}
	inner := exprs[2].List
	if len(inner) != 3 || inner[1].Kind != expr.TextSeparator {
		t.Fatalf("expected separator inside (b c), got %d items", len(inner))
	}
}

func TestCommentsAreNodes(t *testing.T) {
	exprs, _ := parseSource(t, "(foo 1 ; note\n 2)")
	items := exprs[0].List
	if len(items) != 4 {
		t.Fatalf("want 4 items, got %d", len(items))
	}
	c := items[2]
	if c.Kind != expr.Comment || c.Text != "; note" {
		t.Fatalf("comment = %s %q", c.Kind, c.Text)
	}
	if !expr.SharesStartLine(items[1], c) || expr.SharesStartLine(c, items[3]) {
		t.Fatal("comment line bookkeeping is wrong")
	}
}

func TestAnnotations(t *testing.T) {
	exprs, bag := parseSource(t, "#pub #Int #(min 1) x")
	if bag.HasErrors() {
		t.Fatal(diagnosticsSummary(bag))
	}
	e := exprs[0]
	if e.Kind != expr.Symbol || e.Text != "x" {
		t.Fatalf("annotated node = %s", expr.Compact(e))
	}
	if v := e.Ann["pub"]; v == nil || v.Kind != expr.Bool || !v.Bool {
		t.Fatal("missing #pub")
	}
	if v := e.Ann["type"]; v == nil || v.Text != "Int" {
		t.Fatal("missing type annotation")
	}
	if v := e.Ann["min"]; v == nil || expr.Compact(v) != "(min 1)" {
		t.Fatal("missing #(min 1)")
	}
}

func TestRanges(t *testing.T) {
	exprs, _ := parseSource(t, "(a\n  (b c))")
	inner := exprs[0].List[1]
	if inner.Range.Start != (source.LineCol{Line: 2, Col: 3}) {
		t.Fatalf("inner start = %+v", inner.Range.Start)
	}
	if inner.Range.End != (source.LineCol{Line: 2, Col: 8}) {
		t.Fatalf("inner end = %+v", inner.Range.End)
	}
}

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		src  string
		code diag.Code
	}{
		{"(a b", diag.SynUnclosedParen},
		{"[a b", diag.SynUnclosedBracket},
		{"{a b", diag.SynUnclosedBrace},
		{"a)", diag.SynUnexpectedClosing},
		{"(a ')", diag.SynDanglingPrefix},
		{"(a #pub)", diag.SynDanglingAnn},
		{"($ ;\n)", diag.SynDanglingPrefix},
		{"'; c\nx", diag.SynDanglingPrefix},
		{"(#pub ; c\n x)", diag.SynDanglingAnn},
		{"#(1 2) x", diag.SynUnexpectedToken},
	}
	for _, tt := range tests {
		_, bag := parseSource(t, tt.src)
		found := false
		for _, d := range bag.Items() {
			if d.Code == tt.code {
				found = true
			}
		}
		if !found {
			t.Errorf("%q: want %s, got %s", tt.src, tt.code.ID(), diagnosticsSummary(bag))
		}
	}
}

func TestMaxErrorsStopsParsing(t *testing.T) {
	fs := source.NewFileSet()
	sf := fs.Get(fs.AddVirtual("e.tan", []byte(") ) ) )")))
	bag := diag.NewBag(100)
	res := parser.ParseFile(newLexer(sf, bag), parser.Options{MaxErrors: 2, Reporter: diag.BagReporter{Bag: bag}})
	if res.Errors != 2 || bag.Len() != 2 {
		t.Fatalf("errors = %d, bag = %d; want 2", res.Errors, bag.Len())
	}
}
