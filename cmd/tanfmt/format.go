package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"tanfmt/internal/diagfmt"
	"tanfmt/internal/driver"
	"tanfmt/internal/observ"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [flags] <path> [path...]",
	Short: "Format Tan source files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFmt,
}

func init() {
	fmtCmd.Flags().Bool("check", false, "check if files are properly formatted")
	fmtCmd.Flags().String("format", "text", "output format (text|json)")
	fmtCmd.Flags().Bool("stdout", false, "print formatted code to stdout instead of rewriting files")
	fmtCmd.Flags().Bool("no-cache", false, "do not read or write the format cache")
	fmtCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	addFormatFlags(fmtCmd)
}

var (
	errFmtFailed  = errors.New("fmt: failed to format some files")
	errFmtChanges = errors.New("fmt: formatting changes required")
)

func runFmt(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	check, err := cmd.Flags().GetBool("check")
	if err != nil {
		return err
	}
	outputFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	writeToStdout, err := cmd.Flags().GetBool("stdout")
	if err != nil {
		return err
	}
	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return err
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return err
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}
	quiet, err := cmd.Flags().GetBool("quiet")
	if err != nil {
		return err
	}
	showTimings, err := cmd.Flags().GetBool("timings")
	if err != nil {
		return err
	}

	if writeToStdout && check {
		return fmt.Errorf("fmt: --stdout cannot be used with --check")
	}
	if writeToStdout && outputFormat != "text" {
		return fmt.Errorf("fmt: --stdout is only supported with text output")
	}
	if outputFormat != "text" && outputFormat != "json" {
		return fmt.Errorf("fmt: unsupported output format %q", outputFormat)
	}

	st, err := loadSettings(cmd, args)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	logger := driver.LoggerFromContext(ctx)
	if st.configPath != "" {
		logger.Debug("using config", "path", st.configPath)
	}

	opts := st.format
	opts.Check = check
	opts.Stdout = writeToStdout
	if st.config.Cache.Enabled && !noCache {
		cache, cacheErr := driver.OpenDiskCache("tanfmt")
		if cacheErr != nil {
			logger.Warn("format cache disabled", "err", cacheErr)
		} else {
			opts.Cache = cache
		}
	}
	var timings *observ.Aggregate
	if showTimings {
		timings = &observ.Aggregate{}
		opts.Timings = timings
	}

	files, err := driver.CollectSourceFiles(ctx, args, opts.Filter)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("fmt: %w", driver.ErrNoSourceFiles)
	}

	var results []driver.FormatResult
	if !writeToStdout && outputFormat == "text" && !quiet && shouldUseTUI(mode) {
		results, err = runFormatWithUI(ctx, "tanfmt fmt", files, opts)
	} else {
		results, err = driver.FormatFiles(ctx, files, opts)
	}
	if err != nil {
		return err
	}

	var hasErrors, hasChanges bool
	switch {
	case outputFormat == "json":
		if err := renderFmtJSON(results, check, pathMode(cmd)); err != nil {
			return err
		}
		for _, res := range results {
			hasErrors = hasErrors || res.Err != nil
			hasChanges = hasChanges || res.Changed
		}
	case writeToStdout:
		hasErrors = renderFmtStdout(cmd, results)
	default:
		hasErrors, hasChanges = renderFmtText(cmd, results, check, quiet)
	}

	if timings != nil {
		fmt.Fprint(os.Stderr, timings.Report().Summary())
	}

	if hasErrors {
		return errFmtFailed
	}
	if check && hasChanges {
		return errFmtChanges
	}
	return nil
}

func renderFmtStdout(cmd *cobra.Command, results []driver.FormatResult) (hasErrors bool) {
	for _, res := range results {
		if res.Err != nil {
			hasErrors = true
			reportFileError(cmd, "fmt", res)
			continue
		}
		_, _ = os.Stdout.Write(res.Formatted)
	}
	return hasErrors
}

func renderFmtText(cmd *cobra.Command, results []driver.FormatResult, check, quiet bool) (hasErrors, hasChanges bool) {
	for _, res := range results {
		if res.Err != nil {
			hasErrors = true
			reportFileError(cmd, "fmt", res)
			continue
		}
		if !res.Changed {
			continue
		}
		hasChanges = true
		if quiet {
			continue
		}
		var printErr error
		if check {
			_, printErr = fmt.Fprintln(os.Stdout, res.Path)
		} else {
			_, printErr = fmt.Fprintf(os.Stdout, "reformatted %s\n", res.Path)
		}
		if printErr != nil {
			panic(printErr)
		}
	}
	return hasErrors, hasChanges
}

func renderFmtJSON(results []driver.FormatResult, check bool, mode diagfmt.PathMode) error {
	type jsonResult struct {
		Path        string                   `json:"path"`
		Changed     bool                     `json:"changed"`
		Dialect     string                   `json:"dialect,omitempty"`
		Cached      bool                     `json:"cached,omitempty"`
		Error       string                   `json:"error,omitempty"`
		Diagnostics []diagfmt.DiagnosticJSON `json:"diagnostics,omitempty"`
		CheckRun    bool                     `json:"check"`
	}

	payload := make([]jsonResult, 0, len(results))
	for _, res := range results {
		jr := jsonResult{Path: res.Path, Changed: res.Changed, Cached: res.Cached, CheckRun: check}
		if res.Err != nil {
			jr.Error = res.Err.Error()
			if res.Bag != nil && res.FileSet != nil {
				out := diagfmt.BuildDiagnosticsOutput(res.Bag, res.FileSet, diagfmt.JSONOpts{
					IncludePositions: true,
					PathMode:         mode,
				})
				jr.Diagnostics = out.Diagnostics
			}
		} else {
			jr.Dialect = res.Dialect.String()
		}
		payload = append(payload, jr)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}
