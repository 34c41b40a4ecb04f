package project

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tanfmt/internal/dialect"
)

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
[format]
indent = 2
dialect = "data"

[files]
exclude = ["vendor"]
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Format.Indent != 2 {
		t.Errorf("indent = %d, want 2", cfg.Format.Indent)
	}
	d, auto, err := cfg.DialectChoice()
	if err != nil || auto || d != dialect.Data {
		t.Errorf("DialectChoice = %v, %v, %v; want data", d, auto, err)
	}
	if len(cfg.Files.Extensions) != 1 || cfg.Files.Extensions[0] != ".tan" {
		t.Errorf("extensions should keep the default, got %v", cfg.Files.Extensions)
	}
	if len(cfg.Files.Exclude) != 1 || cfg.Files.Exclude[0] != "vendor" {
		t.Errorf("exclude = %v", cfg.Files.Exclude)
	}
	if !cfg.Cache.Enabled {
		t.Error("cache should stay enabled by default")
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"indent", "[format]\nindent = 0\n", "indent"},
		{"dialect", "[format]\ndialect = \"yaml\"\n", "unknown dialect"},
		{"extensions", "[files]\nextensions = []\n", "extensions"},
		{"extension dot", "[files]\nextensions = [\"tan\"]\n", "must start with"},
		{"unknown key", "[format]\nwidth = 80\n", "unknown keys"},
		{"syntax", "[format\n", "failed to parse TOML"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tt.body)
			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("Load error = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestBadIndentIsSentinel(t *testing.T) {
	cfg := Default()
	cfg.Format.Indent = 40
	if err := cfg.Validate(); !errors.Is(err, ErrBadIndent) {
		t.Fatalf("Validate = %v, want ErrBadIndent", err)
	}
}

func TestLoadNearestWalksUp(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "[format]\nindent = 3\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	cfg, path, found, err := LoadNearest(nested)
	if err != nil || !found {
		t.Fatalf("LoadNearest = %v, %v", found, err)
	}
	if filepath.Dir(path) != root {
		t.Errorf("path = %s, want it under %s", path, root)
	}
	if cfg.Format.Indent != 3 {
		t.Errorf("indent = %d, want 3", cfg.Format.Indent)
	}

	gotRoot, ok, err := FindProjectRoot(filepath.Join(nested, "x.tan"))
	if err != nil || !ok || gotRoot != root {
		t.Errorf("FindProjectRoot = %q, %v, %v", gotRoot, ok, err)
	}
}

func TestFindConfigStopsAtRepository(t *testing.T) {
	outer := t.TempDir()
	writeConfig(t, outer, "[format]\nindent = 2\n")
	repo := filepath.Join(outer, "repo")
	if err := os.MkdirAll(filepath.Join(repo, ".git", "objects"), 0o755); err != nil {
		t.Fatal(err)
	}
	if _, ok, err := FindConfig(repo); err != nil || ok {
		t.Fatalf("FindConfig crossed the repository root: ok=%v err=%v", ok, err)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := Default().Encode(&buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	path := writeConfig(t, t.TempDir(), buf.String())
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load of encoded defaults: %v\n%s", err, buf.String())
	}
	if cfg.Format.Indent != 4 || cfg.Format.Dialect != DialectAuto {
		t.Errorf("unexpected config %+v", cfg)
	}
}

func TestCombineSeparatesParts(t *testing.T) {
	var content Digest
	a := Combine(content, "ab", "c")
	b := Combine(content, "a", "bc")
	if a == b {
		t.Fatal("Combine must distinguish part boundaries")
	}
	if a.IsZero() || len(a.Hex()) != 64 {
		t.Fatalf("unexpected digest %s", a.Hex())
	}
}
