package driver

import (
	"context"
	"path/filepath"
	"testing"
)

func TestCollectSourceFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.tan"), "", 0o644)
	writeFile(t, filepath.Join(dir, "a.TAN"), "", 0o644)
	writeFile(t, filepath.Join(dir, "notes.txt"), "", 0o644)
	writeFile(t, filepath.Join(dir, "sub", "c.tan"), "", 0o644)
	writeFile(t, filepath.Join(dir, "vendor", "v.tan"), "", 0o644)
	writeFile(t, filepath.Join(dir, "build-1", "x.tan"), "", 0o644)
	explicit := filepath.Join(dir, "notes.txt")

	filter := FileFilter{Exclude: []string{"vendor", "build-*"}}
	files, err := CollectSourceFiles(context.Background(), []string{dir, explicit, filepath.Join(dir, "b.tan")}, filter)
	if err != nil {
		t.Fatalf("CollectSourceFiles: %v", err)
	}
	want := []string{
		filepath.Join(dir, "a.TAN"),
		filepath.Join(dir, "b.tan"),
		filepath.Join(dir, "notes.txt"),
		filepath.Join(dir, "sub", "c.tan"),
	}
	if len(files) != len(want) {
		t.Fatalf("files = %v, want %v", files, want)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("files[%d] = %s, want %s", i, files[i], want[i])
		}
	}
}

func TestCollectSourceFilesMissingPath(t *testing.T) {
	_, err := CollectSourceFiles(context.Background(), []string{filepath.Join(t.TempDir(), "nope")}, FileFilter{})
	if err == nil {
		t.Fatal("expected error for missing path")
	}
}
