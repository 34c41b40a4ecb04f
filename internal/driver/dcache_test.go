package driver

import (
	"crypto/sha256"
	"os"
	"path/filepath"
	"testing"

	"tanfmt/internal/project"
)

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	key := project.Combine(project.Digest{1}, "code", "4")

	var miss FormatPayload
	if ok, err := cache.Get(key, &miss); ok || err != nil {
		t.Fatalf("Get on empty cache = %v, %v", ok, err)
	}

	out := []byte("(a)\n")
	in := &FormatPayload{Dialect: 1, Output: out, OutputHash: sha256.Sum256(out)}
	if err := cache.Put(key, in); err != nil {
		t.Fatalf("Put: %v", err)
	}

	var got FormatPayload
	ok, err := cache.Get(key, &got)
	if err != nil || !ok {
		t.Fatalf("Get = %v, %v", ok, err)
	}
	if got.Schema != diskCacheSchemaVersion || got.Dialect != 1 || string(got.Output) != "(a)\n" {
		t.Fatalf("unexpected payload %+v", got)
	}

	entries, err := os.ReadDir(filepath.Join(cache.Dir(), "fmt"))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != key.Hex()+".mp" {
		t.Fatalf("temp files left behind: %v", entries)
	}
}

func TestDiskCacheRejectsCorruptOutput(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	key := project.Combine(project.Digest{2})
	if err := cache.Put(key, &FormatPayload{Output: []byte("x"), OutputHash: project.Digest{9}}); err != nil {
		t.Fatal(err)
	}
	var got FormatPayload
	if ok, _ := cache.Get(key, &got); ok {
		t.Fatal("payload with mismatching hash must be a miss")
	}
}

func TestDiskCacheDropAll(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cache")
	cache, err := OpenDiskCacheAt(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := cache.Put(project.Digest{3}, &FormatPayload{Canonical: true}); err != nil {
		t.Fatal(err)
	}
	if err := cache.DropAll(); err != nil {
		t.Fatalf("DropAll: %v", err)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Fatalf("cache dir still exists: %v", err)
	}
	var nilCache *DiskCache
	if ok, err := nilCache.Get(project.Digest{}, &FormatPayload{}); ok || err != nil {
		t.Fatal("nil cache must behave as always-miss")
	}
}
