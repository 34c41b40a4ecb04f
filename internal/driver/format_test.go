package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"tanfmt/internal/dialect"
	"tanfmt/internal/format"
	"tanfmt/internal/observ"
)

func writeFile(t *testing.T, path, body string, mode os.FileMode) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), mode); err != nil {
		t.Fatal(err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestFormatPathsWritesChangedFiles(t *testing.T) {
	dir := t.TempDir()
	messy := filepath.Join(dir, "a.tan")
	clean := filepath.Join(dir, "b.tan")
	writeFile(t, messy, "(foo   1\n 2)", 0o600)
	writeFile(t, clean, "(f)\n", 0o644)

	results, err := FormatPaths(context.Background(), []string{dir}, FormatOptions{AutoDialect: true})
	if err != nil {
		t.Fatalf("FormatPaths: %v", err)
	}
	if len(results) != 2 || results[0].Path != messy || results[1].Path != clean {
		t.Fatalf("unexpected results %+v", results)
	}
	if !results[0].Changed || results[1].Changed {
		t.Fatalf("Changed flags = %v, %v", results[0].Changed, results[1].Changed)
	}
	if got := readFile(t, messy); got != "(foo 1 2)\n" {
		t.Fatalf("written content = %q", got)
	}
	info, err := os.Stat(messy)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("mode = %v, want 0600 preserved", info.Mode().Perm())
	}
}

func TestFormatPathsCheckAndStdout(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.tan")
	writeFile(t, path, "(let x 1 y 2)", 0o644)

	results, err := FormatPaths(context.Background(), []string{path}, FormatOptions{Check: true})
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !results[0].Changed || results[0].Formatted != nil {
		t.Fatalf("check result %+v", results[0])
	}

	results, err = FormatPaths(context.Background(), []string{path}, FormatOptions{Stdout: true})
	if err != nil {
		t.Fatalf("stdout: %v", err)
	}
	if got := string(results[0].Formatted); got != "(let x 1\n     y 2)\n" {
		t.Fatalf("stdout output = %q", got)
	}
	if got := readFile(t, path); got != "(let x 1 y 2)" {
		t.Fatalf("file must stay untouched, got %q", got)
	}
}

func TestFormatPathsSyntaxError(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.tan")
	good := filepath.Join(dir, "good.tan")
	writeFile(t, bad, "(foo \"bar", 0o644)
	writeFile(t, good, "(a  b)", 0o644)

	results, err := FormatPaths(context.Background(), []string{dir}, FormatOptions{})
	if err != nil {
		t.Fatalf("FormatPaths: %v", err)
	}
	var synErr *format.SyntaxError
	if !errors.As(results[0].Err, &synErr) {
		t.Fatalf("bad.tan error = %v, want *format.SyntaxError", results[0].Err)
	}
	if results[0].Bag == nil || results[0].FileSet == nil || !results[0].Bag.HasErrors() {
		t.Fatal("diagnostics must be returned for rendering")
	}
	if results[1].Err != nil || !results[1].Changed {
		t.Fatalf("good.tan must still be formatted: %+v", results[1])
	}
	if got := readFile(t, bad); got != "(foo \"bar" {
		t.Fatalf("bad file modified: %q", got)
	}
}

func TestFormatPathsMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m.tan")
	writeFile(t, path, "(let x)", 0o644)

	results, err := FormatPaths(context.Background(), []string{path}, FormatOptions{Check: true})
	if err != nil {
		t.Fatalf("FormatPaths: %v", err)
	}
	if results[0].Err == nil {
		t.Fatal("expected malformed input error")
	}
}

func TestFormatPathsDialectResolution(t *testing.T) {
	dir := t.TempDir()
	byName := filepath.Join(dir, "conf.data.tan")
	byContent := filepath.Join(dir, "list.tan")
	code := filepath.Join(dir, "code.tan")
	writeFile(t, byName, "(f [1 2])", 0o644)
	writeFile(t, byContent, "[1 2]", 0o644)
	writeFile(t, code, "(f [1 2])", 0o644)

	results, err := FormatPaths(context.Background(), []string{dir}, FormatOptions{AutoDialect: true, Stdout: true})
	if err != nil {
		t.Fatalf("FormatPaths: %v", err)
	}
	want := map[string]struct {
		d   dialect.Dialect
		out string
	}{
		byName:    {dialect.Data, "(f [\n    1\n    2\n])\n"},
		byContent: {dialect.Data, "[\n    1\n    2\n]\n"},
		code:      {dialect.Code, "(f [1 2])\n"},
	}
	for _, r := range results {
		w := want[r.Path]
		if r.Dialect != w.d || string(r.Formatted) != w.out {
			t.Errorf("%s: dialect %v output %q, want %v %q", r.Path, r.Dialect, r.Formatted, w.d, w.out)
		}
	}

	results, err = FormatPaths(context.Background(), []string{byContent}, FormatOptions{Stdout: true, Options: format.Options{Dialect: dialect.Code}})
	if err != nil {
		t.Fatal(err)
	}
	if string(results[0].Formatted) != "[1 2]\n" {
		t.Fatalf("explicit dialect ignored: %q", results[0].Formatted)
	}
}

func TestFormatPathsUsesCache(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "a.tan")
	writeFile(t, path, "(foo   1)", 0o644)
	opts := FormatOptions{Check: true, Cache: cache, AutoDialect: true}

	first, err := FormatPaths(context.Background(), []string{path}, opts)
	if err != nil || first[0].Cached {
		t.Fatalf("first run: %+v, %v", first, err)
	}
	second, err := FormatPaths(context.Background(), []string{path}, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second[0].Cached || !second[0].Changed {
		t.Fatalf("second run should hit the cache and still report a change: %+v", second[0])
	}

	opts.Check = false
	if _, err := FormatPaths(context.Background(), []string{path}, opts); err != nil {
		t.Fatal(err)
	}
	if got := readFile(t, path); got != "(foo 1)\n" {
		t.Fatalf("cached output not written: %q", got)
	}
}

type recordingSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *recordingSink) OnEvent(e Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
}

func TestFormatPathsProgressAndTimings(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.tan", "b.tan", "c.tan"} {
		writeFile(t, filepath.Join(dir, name), "(x)\n", 0o644)
	}
	sink := &recordingSink{}
	agg := &observ.Aggregate{}

	_, err := FormatPaths(context.Background(), []string{dir}, FormatOptions{Jobs: 2, Progress: sink, Timings: agg})
	if err != nil {
		t.Fatal(err)
	}

	queued, finished := 0, 0
	for _, e := range sink.events {
		switch e.Status {
		case StatusQueued:
			queued++
		case StatusDone, StatusChanged, StatusError:
			finished++
		}
	}
	if queued != 3 || finished != 3 {
		t.Fatalf("queued=%d finished=%d, want 3/3", queued, finished)
	}
	r := agg.Report()
	if len(r.Phases) != 3 || r.Phases[0].Name != "read" || r.Phases[0].Count != 3 {
		t.Fatalf("unexpected timings %+v", r.Phases)
	}
}

func TestFormatPathsCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := FormatPaths(ctx, []string{t.TempDir()}, FormatOptions{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestFormatPathsNoFiles(t *testing.T) {
	if _, err := FormatPaths(context.Background(), []string{t.TempDir()}, FormatOptions{}); !errors.Is(err, ErrNoSourceFiles) {
		t.Fatalf("err = %v, want ErrNoSourceFiles", err)
	}
}
