package dialect

import (
	"testing"

	"tanfmt/internal/expr"
)

func TestParse(t *testing.T) {
	for in, want := range map[string]Dialect{"code": Code, "DATA": Data, " html ": Html, "css": Css} {
		got, err := Parse(in)
		if err != nil || got != want {
			t.Errorf("Parse(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := Parse("yaml"); err == nil {
		t.Error("expected error for unknown dialect")
	}
}

func TestForPath(t *testing.T) {
	tests := []struct {
		path string
		want Dialect
		ok   bool
	}{
		{"config.data.tan", Data, true},
		{"dir/Page.HTML.tan", Html, true},
		{"style.css.tan", Css, true},
		{"main.tan", Code, false},
	}
	for _, tt := range tests {
		got, ok := ForPath(tt.path, nil)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ForPath(%q) = %v, %v; want %v, %v", tt.path, got, ok, tt.want, tt.ok)
		}
	}
	if d, ok := ForPath("x.cfg", []string{".cfg"}); !ok || d != Data {
		t.Error("custom data suffix not honored")
	}
}

func TestClassify(t *testing.T) {
	arr := expr.NewList(expr.NewSymbol("Map"), expr.NewKeySymbol("a"), expr.NewInt(1))
	call := expr.NewList(expr.NewSymbol("print"), expr.NewString("hi"))

	if got := Classify([]*expr.Expr{expr.NewComment("; data"), arr, expr.NewInt(3)}); got != Data {
		t.Errorf("pure data file classified as %v", got)
	}
	if got := Classify([]*expr.Expr{arr, arr, arr, call}); got != Code {
		t.Errorf("file with a call classified as %v", got)
	}
	if got := Classify(nil); got != Code {
		t.Errorf("empty file classified as %v", got)
	}
}

func TestVerdict(t *testing.T) {
	ev := NewEvidence()
	ev.Add(Hint{Dialect: Data, Score: 3, Reason: "map"})
	ev.Add(Hint{Dialect: Code, Score: 1, Reason: "call"})
	v := ev.Verdict()
	if v.Dialect != Code || v.CodeScore != 1 || v.DataScore != 3 {
		t.Fatalf("verdict = %+v", v)
	}
	if v.Deciding == nil || v.Deciding.Reason != "call" {
		t.Fatalf("deciding hint = %+v", v.Deciding)
	}

	var empty Evidence
	if v := empty.Verdict(); v.Dialect != Code || v.Deciding != nil {
		t.Fatalf("empty verdict = %+v", v)
	}
}
