package project

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"

	"tanfmt/internal/dialect"
)

// DialectAuto lets the driver pick a dialect per file.
const DialectAuto = "auto"

// Config mirrors tanfmt.toml.
type Config struct {
	Format FormatConfig `toml:"format"`
	Files  FilesConfig  `toml:"files"`
	Cache  CacheConfig  `toml:"cache"`
}

type FormatConfig struct {
	Indent  int    `toml:"indent"`
	Dialect string `toml:"dialect"`
}

type FilesConfig struct {
	Extensions   []string `toml:"extensions"`
	DataSuffixes []string `toml:"data_suffixes"`
	Exclude      []string `toml:"exclude"`
}

type CacheConfig struct {
	Enabled bool `toml:"enabled"`
}

var (
	// ErrBadIndent is returned for an indent outside 1..16.
	ErrBadIndent     = errors.New("format.indent must be between 1 and 16")
	ErrNoExtensions  = errors.New("files.extensions must not be empty")
	errBadExtension  = errors.New("extensions must start with '.'")
	errUnknownFields = errors.New("unknown keys")
)

// Default returns the configuration used when no tanfmt.toml exists.
func Default() Config {
	return Config{
		Format: FormatConfig{Indent: 4, Dialect: DialectAuto},
		Files: FilesConfig{
			Extensions:   []string{".tan"},
			DataSuffixes: append([]string(nil), dialect.DefaultDataSuffixes...),
			Exclude:      []string{".git"},
		},
		Cache: CacheConfig{Enabled: true},
	}
}

// Load decodes path over the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: %w: %s", path, errUnknownFields, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadNearest finds tanfmt.toml above startDir and loads it. Without a file
// it returns Default() and found=false.
func LoadNearest(startDir string) (cfg Config, path string, found bool, err error) {
	path, found, err = FindConfig(startDir)
	if err != nil {
		return Config{}, "", false, err
	}
	if !found {
		return Default(), "", false, nil
	}
	cfg, err = Load(path)
	return cfg, path, true, err
}

// Validate проверяет значения после слияния с умолчаниями.
func (c Config) Validate() error {
	if c.Format.Indent < 1 || c.Format.Indent > 16 {
		return ErrBadIndent
	}
	if _, _, err := c.DialectChoice(); err != nil {
		return fmt.Errorf("format.dialect: %w", err)
	}
	if len(c.Files.Extensions) == 0 {
		return ErrNoExtensions
	}
	for _, ext := range c.Files.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("files.extensions: %w: %q", errBadExtension, ext)
		}
	}
	return nil
}

// DialectChoice resolves format.dialect. auto is true for "auto" or an
// empty value.
func (c Config) DialectChoice() (d dialect.Dialect, auto bool, err error) {
	name := strings.TrimSpace(c.Format.Dialect)
	if name == "" || strings.EqualFold(name, DialectAuto) {
		return dialect.Code, true, nil
	}
	d, err = dialect.Parse(name)
	return d, false, err
}

// Encode writes c as TOML.
func (c Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}
