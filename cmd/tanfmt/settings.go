package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tanfmt/internal/diag"
	"tanfmt/internal/diagfmt"
	"tanfmt/internal/driver"
	"tanfmt/internal/format"
	"tanfmt/internal/project"
	"tanfmt/internal/source"
)

// settings merges tanfmt.toml with command-line overrides.
type settings struct {
	config     project.Config
	configPath string
	format     driver.FormatOptions
}

// addFormatFlags registers the flags shared by commands that format.
func addFormatFlags(cmd *cobra.Command) {
	cmd.Flags().String("dialect", "", "dialect override (auto|code|data|html|css)")
	cmd.Flags().Int("indent", 0, "indent width (default from tanfmt.toml, else 4)")
	cmd.Flags().Int("jobs", 0, "max parallel files (0 = GOMAXPROCS)")
}

func loadSettings(cmd *cobra.Command, paths []string) (*settings, error) {
	root := cmd.Root().PersistentFlags()
	configPath, err := root.GetString("config")
	if err != nil {
		return nil, err
	}
	maxDiagnostics, err := root.GetInt("max-diagnostics")
	if err != nil {
		return nil, err
	}

	var cfg project.Config
	if configPath != "" {
		if cfg, err = project.Load(configPath); err != nil {
			return nil, err
		}
	} else {
		start := "."
		if len(paths) > 0 {
			start = paths[0]
		}
		if cfg, configPath, _, err = project.LoadNearest(start); err != nil {
			return nil, err
		}
	}

	if f := cmd.Flags().Lookup("dialect"); f != nil && f.Changed {
		cfg.Format.Dialect = f.Value.String()
	}
	if f := cmd.Flags().Lookup("indent"); f != nil && f.Changed {
		if cfg.Format.Indent, err = cmd.Flags().GetInt("indent"); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	d, auto, err := cfg.DialectChoice()
	if err != nil {
		return nil, err
	}

	jobs := 0
	if cmd.Flags().Lookup("jobs") != nil {
		if jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
			return nil, err
		}
	}

	return &settings{
		config:     cfg,
		configPath: configPath,
		format: driver.FormatOptions{
			MaxDiagnostics: maxDiagnostics,
			Options:        format.Options{IndentWidth: cfg.Format.Indent, Dialect: d},
			AutoDialect:    auto,
			DataSuffixes:   cfg.Files.DataSuffixes,
			Filter: driver.FileFilter{
				Extensions: cfg.Files.Extensions,
				Exclude:    cfg.Files.Exclude,
			},
			Jobs: jobs,
		},
	}, nil
}

func useColor(cmd *cobra.Command, f *os.File) bool {
	colorFlag, _ := cmd.Root().PersistentFlags().GetString("color")
	switch strings.ToLower(colorFlag) {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(f)
	}
}

// pathMode reads --path-mode; unknown values fall back to auto with a warning.
func pathMode(cmd *cobra.Command) diagfmt.PathMode {
	value, _ := cmd.Root().PersistentFlags().GetString("path-mode")
	mode, err := diagfmt.ParsePathMode(value)
	if err != nil {
		driver.LoggerFromContext(cmd.Context()).Warn("ignoring --path-mode", "err", err)
	}
	return mode
}

func renderDiagnostics(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet) {
	if bag == nil || bag.Len() == 0 {
		return
	}
	opts := diagfmt.PrettyOpts{
		Color:     useColor(cmd, os.Stderr),
		Context:   1,
		PathMode:  pathMode(cmd),
		ShowNotes: true,
	}
	if err := diagfmt.Pretty(os.Stderr, bag, fs, opts); err != nil {
		panic(err)
	}
}

// reportFileError prints a per-file failure, with source excerpts when the
// file did not parse.
func reportFileError(cmd *cobra.Command, prefix string, res driver.FormatResult) {
	if res.Bag != nil && res.FileSet != nil {
		renderDiagnostics(cmd, res.Bag, res.FileSet)
		return
	}
	fmt.Fprintf(os.Stderr, "%s: %v\n", prefix, res.Err)
}
