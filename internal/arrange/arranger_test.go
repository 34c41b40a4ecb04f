package arrange

import (
	"errors"
	"testing"

	"tanfmt/internal/dialect"
	"tanfmt/internal/expr"
	"tanfmt/internal/layout"
)

func sym(s string) *expr.Expr { return expr.NewSymbol(s) }

func list(items ...*expr.Expr) *expr.Expr { return expr.NewList(items...) }

func arrangeDump(t *testing.T, d dialect.Dialect, exprs ...*expr.Expr) string {
	t.Helper()
	l, err := Arrange(exprs, d)
	if err != nil {
		t.Fatalf("Arrange: %v", err)
	}
	return l.Dump()
}

func TestLetLayout(t *testing.T) {
	got := arrangeDump(t, dialect.Code, list(sym("let"), sym("x"), expr.NewInt(1), sym("y"), expr.NewInt(2)))
	want := `Stack
  Stack
    Row sep=" "
      Item "(let"
      Row sep=" "
        Item "x"
        Item "1"
    Indent width=5
      Row sep=""
        Row sep=" "
          Item "y"
          Item "2"
        Item ")"
`
	if got != want {
		t.Fatalf("layout mismatch:\nwant %s\ngot  %s", want, got)
	}
}

func TestConstructOf(t *testing.T) {
	tests := map[string]Construct{
		"quot": Quot, "unquot": Unquot, "do": Do, "if": If, "for": For,
		"Func": Func, "Range": Range, "Array": Array, "Map": Map,
		"let": Let, "cond": Cond, "print": Call, "func": Call,
	}
	for head, want := range tests {
		if got := constructOf(sym(head)); got != want {
			t.Errorf("constructOf(%s) = %s, want %s", head, got, want)
		}
	}
	if constructOf(expr.NewString("let")) != Call {
		t.Error("only symbols select special forms")
	}
	if constructOf(sym("do").WithAnn("pub", expr.NewBool(true))) != Call {
		t.Error("an annotated head is a call")
	}
	if constructOf(sym("do").WithAnn(expr.PositionKey, expr.NewString("1:1"))) != Do {
		t.Error("the position annotation does not count")
	}
}

func TestInlineCommentNeedsRange(t *testing.T) {
	// без позиций комментарий никогда не inline
	got := arrangeDump(t, dialect.Code, sym("a"), expr.NewComment("; c"))
	want := "Stack\n  Item \"a\"\n  Item \"; c\"\n"
	if got != want {
		t.Fatalf("layout mismatch:\nwant %q\ngot  %q", want, got)
	}

	got = arrangeDump(t, dialect.Code, sym("a").At(1, 1, 1, 2), expr.NewComment("; c").At(1, 3, 1, 6))
	want = "Stack\n  Row sep=\" \"\n    Item \"a\"\n    Item \"; c\"\n"
	if got != want {
		t.Fatalf("layout mismatch:\nwant %q\ngot  %q", want, got)
	}

	// комментарий на строке закрывающей скобки не относится к узлу
	multi := list(sym("foo").At(1, 2, 1, 5), sym("bar").At(2, 3, 2, 6)).At(1, 1, 2, 7)
	l, err := Arrange([]*expr.Expr{multi, expr.NewComment("; c").At(2, 8, 2, 11)}, dialect.Code)
	if err != nil {
		t.Fatal(err)
	}
	if len(l.Children) != 2 || !l.Children[1].IsComment() {
		t.Fatalf("comment must stay standalone, got %s", l.Dump())
	}
}

func TestInlineCommentSkipsMultilineLayout(t *testing.T) {
	do := list(sym("do").At(1, 2, 1, 4), sym("x").At(1, 5, 1, 6)).At(1, 1, 1, 7)
	l, err := Arrange([]*expr.Expr{do, expr.NewComment("; c").At(1, 8, 1, 11)}, dialect.Code)
	if err != nil {
		t.Fatal(err)
	}
	if len(l.Children) != 2 || !l.Children[1].IsComment() {
		t.Fatalf("a vertical form keeps no inline comment, got %s", l.Dump())
	}
}

func TestCallHeadLayout(t *testing.T) {
	head := sym("f").WithAnn("pub", expr.NewBool(true))
	l, err := Arrange([]*expr.Expr{list(head, sym("x"))}, dialect.Code)
	if err != nil {
		t.Fatal(err)
	}
	call := l.Children[0]
	open := call.Children[0]
	if open.Kind != layout.KindRow || open.Children[1].Kind != layout.KindAnn {
		t.Fatalf("head annotations lost: %s", call.Dump())
	}

	inner := list(sym("f").At(1, 3, 1, 4), expr.NewComment("; c").At(1, 5, 1, 8), sym("x").At(2, 2, 2, 3)).At(1, 2, 2, 4)
	l, err = Arrange([]*expr.Expr{list(inner, sym("y").At(2, 5, 2, 6)).At(1, 1, 2, 7)}, dialect.Code)
	if err != nil {
		t.Fatal(err)
	}
	if outer := l.Children[0]; outer.Kind != layout.KindStack {
		t.Fatalf("a vertical head must open an indented block: %s", outer.Dump())
	}
}

func TestRangeFallsBackToCall(t *testing.T) {
	rng := list(sym("Range"), expr.NewInt(1), expr.NewComment("; c"), expr.NewInt(2))
	l, err := Arrange([]*expr.Expr{rng}, dialect.Code)
	if err != nil {
		t.Fatal(err)
	}
	if got := l.Children[0]; got.Kind == layout.KindItem {
		t.Fatalf("comment dropped from range: %s", got.Dump())
	}

	_, err = Arrange([]*expr.Expr{list(sym("Range"), expr.NewInt(1), expr.NewComment("; c"))}, dialect.Code)
	var me *MalformedError
	if !errors.As(err, &me) || me.Kind != MalformedRangeArity {
		t.Fatalf("arity is checked before the fallback, got %v", err)
	}
}

func TestQuotingWithCommentIsFullForm(t *testing.T) {
	q := list(sym("quot"), sym("a").At(1, 7, 1, 8), expr.NewComment("; c").At(1, 9, 1, 12), sym("b").At(2, 2, 2, 3))
	l, err := Arrange([]*expr.Expr{q}, dialect.Code)
	if err != nil {
		t.Fatal(err)
	}
	got := l.Children[0]
	if got.Kind != layout.KindStack || got.Children[0].Text != "(quot" {
		t.Fatalf("want (quot ...) block, got %s", got.Dump())
	}
}

func TestAnnotationsWrapLayout(t *testing.T) {
	e := sym("x").WithAnn(expr.PositionKey, expr.NewString("1:1"))
	l, err := Arrange([]*expr.Expr{e}, dialect.Code)
	if err != nil {
		t.Fatal(err)
	}
	if l.Children[0].Kind != layout.KindItem {
		t.Fatal("position annotation alone must not produce Ann")
	}

	e.WithAnn("pub", expr.NewBool(true))
	l, _ = Arrange([]*expr.Expr{e}, dialect.Code)
	ann := l.Children[0]
	if ann.Kind != layout.KindAnn || len(ann.Annotations) != 1 {
		t.Fatalf("want Ann with one key, got %s", ann.Dump())
	}
}

func TestModeDoesNotLeakToSiblings(t *testing.T) {
	long := func() *expr.Expr {
		return list(sym("Array"), sym("abcdefghij"), sym("klmnopqrst"))
	}
	l, err := Arrange([]*expr.Expr{list(sym("Func"), long(), long())}, dialect.Code)
	if err != nil {
		t.Fatal(err)
	}
	fn := l.Children[0]
	header := fn.Children[0]
	params := header.Children[1]
	if params.IsVertical() {
		t.Fatal("parameter array must stay inline")
	}
	body := fn.Children[2]
	if !body.IsVertical() {
		t.Fatal("body array must not inherit inline mode")
	}
}

func TestMalformedErrorCarriesPosition(t *testing.T) {
	key := sym("x").At(2, 6, 2, 7)
	_, err := Arrange([]*expr.Expr{list(sym("let"), key).At(2, 1, 2, 9)}, dialect.Code)
	var me *MalformedError
	if !errors.As(err, &me) {
		t.Fatalf("want *MalformedError, got %v", err)
	}
	if me.Kind != MalformedMissingValue || me.Construct != Let || me.Range != key.Range {
		t.Fatalf("unexpected error %+v", me)
	}
	if got, want := me.Error(), "malformed let at 2:6: key without value"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}

func TestForeignPanicsPropagate(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("non-malformed panics must not be swallowed")
		}
	}()
	a := New(nil, dialect.Code)
	a.cur = nil
	_, _ = a.Arrange()
}
