package lexer_test

import (
	"testing"

	"tanfmt/internal/diag"
	"tanfmt/internal/lexer"
	"tanfmt/internal/source"
	"tanfmt/internal/token"
)

// makeTestLexer создаёт лексер для тестовой строки
func makeTestLexer(input string) (*lexer.Lexer, *diag.Bag) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.tan", []byte(input))
	bag := diag.NewBag(100)
	return lexer.New(fs.Get(id), lexer.Options{Reporter: diag.BagReporter{Bag: bag}}), bag
}

func collectAllTokens(input string) ([]token.Token, *diag.Bag) {
	lx, bag := makeTestLexer(input)
	return lx.All(), bag
}

type tk struct {
	kind token.Kind
	text string
}

func expectTokens(t *testing.T, input string, want []tk) {
	t.Helper()
	got, bag := collectAllTokens(input)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics for %q: %v", input, bag.Items())
	}
	if len(got) != len(want) {
		t.Fatalf("token count for %q: want %d, got %d (%v)", input, len(want), len(got), got)
	}
	for i, w := range want {
		if got[i].Kind != w.kind || got[i].Text != w.text {
			t.Errorf("token %d of %q: want %s %q, got %s %q", i, input, w.kind, w.text, got[i].Kind, got[i].Text)
		}
	}
}

func TestDelimitersAndPrefixes(t *testing.T) {
	expectTokens(t, "([{}]) 'x $y", []tk{
		{token.LParen, "("},
		{token.LBracket, "["},
		{token.LBrace, "{"},
		{token.RBrace, "}"},
		{token.RBracket, "]"},
		{token.RParen, ")"},
		{token.Quote, "'"},
		{token.Symbol, "x"},
		{token.Unquote, "$"},
		{token.Symbol, "y"},
	})
}

func TestAtomClassification(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
		text  string
	}{
		{"42", token.IntLit, "42"},
		{"-7", token.IntLit, "-7"},
		{"0xff", token.IntLit, "0xff"},
		{"1_000", token.IntLit, "1_000"},
		{"3.14", token.FloatLit, "3.14"},
		{"-0.5", token.FloatLit, "-0.5"},
		{"1e3", token.FloatLit, "1e3"},
		{"true", token.BoolLit, "true"},
		{"false", token.BoolLit, "false"},
		{":name", token.KeySymbol, "name"},
		{"foo-bar?", token.Symbol, "foo-bar?"},
		{"+", token.Symbol, "+"},
		{"-", token.Symbol, "-"},
		{"...", token.Symbol, "..."},
		{"1..10", token.RangeLit, "1..10"},
		{"0..n|2", token.RangeLit, "0..n|2"},
		{"Func", token.Symbol, "Func"},
	}
	for _, tt := range tests {
		expectTokens(t, tt.input, []tk{{tt.kind, tt.text}})
	}
}

func TestSymbolNFC(t *testing.T) {
	// "e" + combining acute → "é"
	expectTokens(t, "e\u0301", []tk{{token.Symbol, "\u00e9"}})
}

func TestStringsAndComments(t *testing.T) {
	expectTokens(t, "\"a \\\"b\\\"\\n\" ; trailing  \n\"multi\nline\"", []tk{
		{token.StringLit, "\"a \\\"b\\\"\\n\""},
		{token.Comment, "; trailing"},
		{token.StringLit, "\"multi\nline\""},
	})
}

func TestAnnotations(t *testing.T) {
	expectTokens(t, "#pub #(min 1) x", []tk{
		{token.Annotation, "pub"},
		{token.Hash, "#"},
		{token.LParen, "("},
		{token.Symbol, "min"},
		{token.IntLit, "1"},
		{token.RParen, ")"},
		{token.Symbol, "x"},
	})
}

func TestBlankBefore(t *testing.T) {
	toks, _ := collectAllTokens("a\nb\n\n  c\n \n\nd")
	want := []bool{false, false, true, true}
	if len(toks) != len(want) {
		t.Fatalf("want %d tokens, got %d", len(want), len(toks))
	}
	for i, w := range want {
		if toks[i].BlankBefore != w {
			t.Errorf("token %q BlankBefore = %v, want %v", toks[i].Text, toks[i].BlankBefore, w)
		}
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	lx, _ := makeTestLexer("(a)")
	if p := lx.Peek(); p.Kind != token.LParen {
		t.Fatalf("Peek = %s", p.Kind)
	}
	if n := lx.Next(); n.Kind != token.LParen {
		t.Fatalf("Next after Peek = %s", n.Kind)
	}
	lx.Next()
	lx.Next()
	for range 2 {
		if n := lx.Next(); n.Kind != token.EOF {
			t.Fatalf("want EOF, got %s", n.Kind)
		}
	}
}

func TestSpans(t *testing.T) {
	toks, _ := collectAllTokens("(foo \"s\")")
	if sp := toks[1].Span; sp.Start != 1 || sp.End != 4 {
		t.Fatalf("foo span = %v", sp)
	}
	if sp := toks[2].Span; sp.Start != 5 || sp.End != 8 {
		t.Fatalf("string span = %v", sp)
	}
}

func TestLexErrors(t *testing.T) {
	tests := []struct {
		input string
		code  diag.Code
	}{
		{"\"open", diag.LexUnterminatedString},
		{"\"bad \\q\"", diag.LexBadEscape},
		{"12abc", diag.LexBadNumber},
		{"1..|", diag.LexBadRange},
		{"# x", diag.LexUnknownChar},
	}
	for _, tt := range tests {
		_, bag := collectAllTokens(tt.input)
		items := bag.Items()
		if len(items) == 0 {
			t.Errorf("%q: expected diagnostic %s", tt.input, tt.code.ID())
			continue
		}
		if items[0].Code != tt.code {
			t.Errorf("%q: want %s, got %s", tt.input, tt.code.ID(), items[0].Code.ID())
		}
	}
}
