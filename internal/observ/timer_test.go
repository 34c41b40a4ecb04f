package observ

import (
	"strings"
	"testing"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	idx := tm.Begin("parse")
	tm.End(idx, "3 exprs")
	tm.End(42, "ignored")

	r := tm.Report()
	if len(r.Phases) != 1 || r.Phases[0].Name != "parse" || r.Phases[0].Note != "3 exprs" {
		t.Fatalf("unexpected report %+v", r)
	}
	if (&Timer{}).Report().Phases != nil {
		t.Fatal("empty timer must produce an empty report")
	}
}

func TestAggregate(t *testing.T) {
	var agg Aggregate
	agg.Add(Report{TotalMS: 3, Phases: []PhaseReport{{Name: "parse", DurationMS: 1, Count: 1}, {Name: "format", DurationMS: 2, Count: 1}}})
	agg.Add(Report{TotalMS: 2, Phases: []PhaseReport{{Name: "parse", DurationMS: 2, Count: 1}}})

	r := agg.Report()
	if r.TotalMS != 5 {
		t.Fatalf("TotalMS = %v, want 5", r.TotalMS)
	}
	if len(r.Phases) != 2 || r.Phases[0].Name != "parse" || r.Phases[0].DurationMS != 3 || r.Phases[0].Count != 2 {
		t.Fatalf("unexpected phases %+v", r.Phases)
	}
	if s := r.Summary(); !strings.Contains(s, "(2 files)") || !strings.Contains(s, "total") {
		t.Fatalf("summary:\n%s", s)
	}
}
